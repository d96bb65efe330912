// internal/session/session.go
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/fullsound/fullsound/internal/models"
	"github.com/fullsound/fullsound/internal/remote"
	"github.com/fullsound/fullsound/internal/storage"
	"github.com/fullsound/fullsound/internal/utils"
)

// ErrNoSession reports that no user is logged in.
var ErrNoSession = errors.New("no hay usuario autenticado")

type LoginRequest struct {
	Email    string `json:"correo" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RegisterRequest struct {
	Name            string `json:"nombre" validate:"required"`
	Email           string `json:"correo" validate:"required,email,correo_dominio"`
	Password        string `json:"password" validate:"required,min=4,max=10"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
	Terms           bool   `json:"terminos" validate:"required"`
}

type AuthResult struct {
	User   models.User   `json:"user"`
	Token  string        `json:"token"`
	Source models.Source `json:"-"`
}

// Store keeps the simulated session: one current user and one opaque token
// in storage. Remote auth is attempted first; on any failure login succeeds
// locally for minimally well-formed input, with the role derived from the
// email's domain suffix. That derivation is recomputed every time and is a
// demo convenience, never a security boundary.
type Store struct {
	codec    *storage.Codec
	client   *remote.Client
	tokenTTL int // hours
	log      *logrus.Entry
	now      func() time.Time
}

func NewStore(codec *storage.Codec, client *remote.Client, tokenTTLHours int) *Store {
	return &Store{
		codec:    codec,
		client:   client,
		tokenTTL: tokenTTLHours,
		log:      logrus.WithField("component", "session"),
		now:      time.Now,
	}
}

func (s *Store) persist(user models.User, token string) {
	s.codec.Write(storage.KeyToken, token)
	s.codec.Write(storage.KeyUser, user)
}

// Login authenticates against the remote API when reachable and otherwise
// fabricates a local session. The local path never checks credentials
// against anything; any well-formed email and password pair succeeds.
func (s *Store) Login(ctx context.Context, req *LoginRequest) (AuthResult, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return AuthResult{}, fmt.Errorf("validation failed: %w", err)
	}

	if s.client != nil {
		if res, err := s.client.Login(ctx, req.Email, req.Password); err == nil {
			s.persist(res.User, res.Token)
			return AuthResult{User: res.User, Token: res.Token, Source: models.SourceAPI}, nil
		} else {
			s.log.WithError(err).Info("remote unavailable, simulating login")
		}
	}

	user := models.User{
		ID:    int(s.now().UnixMilli()),
		Name:  models.NameForEmail(req.Email),
		Email: req.Email,
		Role:  models.RoleForEmail(req.Email),
	}

	token, err := utils.GenerateJWT(user.ID, user.Name, user.Email, string(user.Role), s.tokenTTL)
	if err != nil {
		return AuthResult{}, fmt.Errorf("failed to generate token: %w", err)
	}

	s.persist(user, token)
	return AuthResult{User: user, Token: token, Source: models.SourceLocal}, nil
}

// Register creates a user remotely when possible, otherwise appends to the
// local user list. The local copy stores a bcrypt hash, though nothing ever
// checks it: local login always succeeds.
func (s *Store) Register(ctx context.Context, req *RegisterRequest) (models.User, models.Source, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return models.User{}, models.SourceLocal, fmt.Errorf("validation failed: %w", err)
	}

	if s.client != nil {
		if user, err := s.client.Register(ctx, req.Name, req.Email, req.Password); err == nil {
			return user, models.SourceAPI, nil
		} else {
			s.log.WithError(err).Info("remote unavailable, simulating registration")
		}
	}

	user := models.User{
		ID:        int(s.now().UnixMilli()),
		Name:      req.Name,
		Email:     req.Email,
		Role:      models.RoleForEmail(req.Email),
		CreatedAt: s.now(),
	}
	if err := user.SetPassword(req.Password); err != nil {
		return models.User{}, models.SourceLocal, fmt.Errorf("failed to hash password: %w", err)
	}

	users := []models.User{}
	s.codec.Read(storage.KeyLocalUsers, &users)
	users = append(users, user)
	s.codec.Write(storage.KeyLocalUsers, users)

	return user, models.SourceLocal, nil
}

// Logout tells the remote API best-effort and always clears the local
// session.
func (s *Store) Logout(ctx context.Context) {
	if s.client != nil {
		if err := s.client.Logout(ctx); err != nil {
			s.log.WithError(err).Info("remote unavailable, clearing session locally")
		}
	}
	s.codec.Delete(storage.KeyToken)
	s.codec.Delete(storage.KeyUser)
}

// CurrentUser returns the stored session user, or nil when none exists.
func (s *Store) CurrentUser() *models.User {
	var user models.User
	if !s.codec.Read(storage.KeyUser, &user) {
		return nil
	}
	return &user
}

// Token returns the stored session token, or "".
func (s *Store) Token() string {
	var token string
	s.codec.Read(storage.KeyToken, &token)
	return token
}

// IsAuthenticated only checks token presence. No expiry, no revocation.
func (s *Store) IsAuthenticated() bool {
	return s.Token() != ""
}

func (s *Store) IsAdmin(user *models.User) bool {
	return user != nil && user.Role == models.RoleAdmin
}

// RequireAuth returns the current user, invoking onFail and returning nil
// when no session exists.
func (s *Store) RequireAuth(onFail func()) *models.User {
	if !s.IsAuthenticated() {
		if onFail != nil {
			onFail()
		}
		return nil
	}
	return s.CurrentUser()
}

// RequireAdmin returns the current user when it holds the admin role,
// invoking onFail and returning nil otherwise.
func (s *Store) RequireAdmin(onFail func()) *models.User {
	user := s.RequireAuth(onFail)
	if user == nil {
		return nil
	}
	if !s.IsAdmin(user) {
		if onFail != nil {
			onFail()
		}
		return nil
	}
	return user
}

// Verify re-checks the session: against the API when reachable, otherwise
// by confirming both token and user are present. An unverifiable session is
// cleared.
func (s *Store) Verify(ctx context.Context) (models.User, models.Source, error) {
	if s.client != nil {
		if user, err := s.client.Verify(ctx); err == nil {
			s.codec.Write(storage.KeyUser, user)
			return user, models.SourceAPI, nil
		} else {
			s.log.WithError(err).Info("remote unavailable, verifying session locally")
		}
	}

	user := s.CurrentUser()
	if user != nil && s.Token() != "" {
		return *user, models.SourceLocal, nil
	}

	s.codec.Delete(storage.KeyToken)
	s.codec.Delete(storage.KeyUser)
	return models.User{}, models.SourceLocal, errors.New("token inválido")
}

// ForgotPassword and ResetPassword only do real work against the remote
// API; the local path pretends, which is all the demo needs.

// ForgotPassword returns the simulated reset token on the local path. The
// remote API delivers its token out of band, so that path returns "".
func (s *Store) ForgotPassword(ctx context.Context, email string) (string, models.Source) {
	if s.client != nil {
		if err := s.client.ForgotPassword(ctx, email); err == nil {
			return "", models.SourceAPI
		} else {
			s.log.WithError(err).Info("remote unavailable, simulating password recovery")
		}
	}
	return uuid.NewString(), models.SourceLocal
}

func (s *Store) ResetPassword(ctx context.Context, token, password string) models.Source {
	if s.client != nil {
		if err := s.client.ResetPassword(ctx, token, password); err == nil {
			return models.SourceAPI
		} else {
			s.log.WithError(err).Info("remote unavailable, simulating password reset")
		}
	}
	return models.SourceLocal
}
