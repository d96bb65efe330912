// internal/models/user.go
package models

import (
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// adminDomain is the email suffix that grants the simulated admin role.
// This is demo-data convenience, not an authorization boundary: the role is
// recomputed from the email on every login and registration and is never
// server-verified truth.
const adminDomain = "@admin.cl"

type User struct {
	ID           int       `json:"id" gorm:"primaryKey"`
	Name         string    `json:"nombre" gorm:"size:255"`
	Email        string    `json:"correo" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `json:"-" gorm:"size:255"`
	Role         Role      `json:"rol" gorm:"type:varchar(20)"`
	CreatedAt    time.Time `json:"createdAt,omitempty"`
}

func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashedPassword)
	return nil
}

func (u *User) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
}

// RoleForEmail derives the simulated role from the email's domain suffix.
func RoleForEmail(email string) Role {
	if strings.HasSuffix(email, adminDomain) {
		return RoleAdmin
	}
	return RoleUser
}

// NameForEmail is the local-mode display name: the mailbox part of the email.
func NameForEmail(email string) string {
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}
	return email
}
