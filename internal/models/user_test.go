// internal/models/user_test.go
package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoleForEmail(t *testing.T) {
	assert.Equal(t, RoleAdmin, RoleForEmail("jefa@admin.cl"))
	assert.Equal(t, RoleUser, RoleForEmail("alguien@gmail.com"))
	assert.Equal(t, RoleUser, RoleForEmail("alguien@duocuc.cl"))
	// The suffix check is literal: admin.cl elsewhere in the address does
	// not count.
	assert.Equal(t, RoleUser, RoleForEmail("admin.cl@gmail.com"))
}

func TestNameForEmail(t *testing.T) {
	assert.Equal(t, "maria", NameForEmail("maria@gmail.com"))
	assert.Equal(t, "sin-arroba", NameForEmail("sin-arroba"))
	assert.Equal(t, "@gmail.com", NameForEmail("@gmail.com"))
}

func TestPasswordHashing(t *testing.T) {
	var u User
	require.NoError(t, u.SetPassword("1234"))

	assert.NotEqual(t, "1234", u.PasswordHash)
	assert.NoError(t, u.CheckPassword("1234"))
	assert.Error(t, u.CheckPassword("4321"))
}

func TestCartTotal(t *testing.T) {
	items := []CartItem{
		{ID: 1, Price: 250000, Quantity: 1},
		{ID: 2, Price: 1000, Quantity: 3},
	}
	assert.Equal(t, float64(253000), CartTotal(items))
	assert.Zero(t, CartTotal(nil))
}

func TestNewCartItemDefaults(t *testing.T) {
	item := NewCartItem(Beat{ID: 5, Price: 100, DisplayPrice: "$100"})
	assert.Equal(t, 5, item.ID)
	assert.Equal(t, 1, item.Quantity)
	assert.Equal(t, "Beat", item.Title) // untitled beats get a placeholder
}
