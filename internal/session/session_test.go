// internal/session/session_test.go
package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fullsound/fullsound/internal/models"
	"github.com/fullsound/fullsound/internal/storage"
	"github.com/fullsound/fullsound/internal/utils"
)

func newSessionStore(t *testing.T) (*Store, *storage.Codec) {
	t.Helper()
	codec := storage.NewCodec(storage.NewMemoryBackend())
	return NewStore(codec, nil, 24), codec
}

func TestLocalLoginDerivesUserRole(t *testing.T) {
	store, _ := newSessionStore(t)

	result, err := store.Login(context.Background(), &LoginRequest{
		Email:    "maria@gmail.com",
		Password: "1234",
	})
	require.NoError(t, err)

	assert.Equal(t, models.SourceLocal, result.Source)
	assert.Equal(t, models.RoleUser, result.User.Role)
	assert.Equal(t, "maria", result.User.Name)
	assert.NotEmpty(t, result.Token)
}

func TestLocalLoginAdminDomain(t *testing.T) {
	store, _ := newSessionStore(t)

	result, err := store.Login(context.Background(), &LoginRequest{
		Email:    "jefa@admin.cl",
		Password: "1234",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, result.User.Role)
	assert.True(t, store.IsAdmin(&result.User))
}

func TestLoginTokenIsVerifiableJWT(t *testing.T) {
	store, _ := newSessionStore(t)

	result, err := store.Login(context.Background(), &LoginRequest{
		Email:    "maria@gmail.com",
		Password: "1234",
	})
	require.NoError(t, err)

	claims, err := utils.ValidateJWT(result.Token)
	require.NoError(t, err)
	assert.Equal(t, "maria@gmail.com", claims.Email)
	assert.Equal(t, "usuario", claims.Role)
}

func TestLoginRejectsMalformedInput(t *testing.T) {
	store, _ := newSessionStore(t)

	_, err := store.Login(context.Background(), &LoginRequest{Email: "no-es-correo", Password: "x"})
	assert.Error(t, err)

	_, err = store.Login(context.Background(), &LoginRequest{Email: "a@gmail.com"})
	assert.Error(t, err)

	assert.False(t, store.IsAuthenticated())
}

func TestLoginPersistsSession(t *testing.T) {
	store, _ := newSessionStore(t)

	assert.False(t, store.IsAuthenticated())
	assert.Nil(t, store.CurrentUser())

	_, err := store.Login(context.Background(), &LoginRequest{
		Email:    "maria@gmail.com",
		Password: "1234",
	})
	require.NoError(t, err)

	assert.True(t, store.IsAuthenticated())
	require.NotNil(t, store.CurrentUser())
	assert.Equal(t, "maria@gmail.com", store.CurrentUser().Email)
	assert.NotEmpty(t, store.Token())
}

func TestLogoutClearsSession(t *testing.T) {
	store, _ := newSessionStore(t)

	_, err := store.Login(context.Background(), &LoginRequest{
		Email:    "maria@gmail.com",
		Password: "1234",
	})
	require.NoError(t, err)

	store.Logout(context.Background())

	assert.False(t, store.IsAuthenticated())
	assert.Nil(t, store.CurrentUser())
	assert.Empty(t, store.Token())
}

func TestRegisterLocallyStoresHashedUser(t *testing.T) {
	store, codec := newSessionStore(t)

	user, source, err := store.Register(context.Background(), &RegisterRequest{
		Name:            "María",
		Email:           "maria@duocuc.cl",
		Password:        "1234",
		ConfirmPassword: "1234",
		Terms:           true,
	})
	require.NoError(t, err)

	assert.Equal(t, models.SourceLocal, source)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.NoError(t, user.CheckPassword("1234"))

	var stored []models.User
	require.True(t, codec.Read(storage.KeyLocalUsers, &stored))
	require.Len(t, stored, 1)
	assert.Equal(t, "maria@duocuc.cl", stored[0].Email)
	assert.NotEqual(t, "1234", stored[0].PasswordHash)
}

func TestRegisterValidation(t *testing.T) {
	store, _ := newSessionStore(t)
	ctx := context.Background()

	cases := []RegisterRequest{
		// Unrecognized mail domain.
		{Name: "x", Email: "x@hotmail.com", Password: "1234", ConfirmPassword: "1234", Terms: true},
		// Password too short.
		{Name: "x", Email: "x@gmail.com", Password: "123", ConfirmPassword: "123", Terms: true},
		// Password too long.
		{Name: "x", Email: "x@gmail.com", Password: "12345678901", ConfirmPassword: "12345678901", Terms: true},
		// Mismatched confirmation.
		{Name: "x", Email: "x@gmail.com", Password: "1234", ConfirmPassword: "4321", Terms: true},
		// Terms not accepted.
		{Name: "x", Email: "x@gmail.com", Password: "1234", ConfirmPassword: "1234"},
	}

	for i := range cases {
		_, _, err := store.Register(ctx, &cases[i])
		assert.Error(t, err, "case %d", i)
	}
}

func TestRegisterDoesNotLogIn(t *testing.T) {
	store, _ := newSessionStore(t)

	_, _, err := store.Register(context.Background(), &RegisterRequest{
		Name:            "María",
		Email:           "maria@gmail.com",
		Password:        "1234",
		ConfirmPassword: "1234",
		Terms:           true,
	})
	require.NoError(t, err)

	assert.False(t, store.IsAuthenticated())
}

func TestVerifyLocalSession(t *testing.T) {
	store, _ := newSessionStore(t)

	_, err := store.Login(context.Background(), &LoginRequest{
		Email:    "maria@gmail.com",
		Password: "1234",
	})
	require.NoError(t, err)

	user, source, err := store.Verify(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.SourceLocal, source)
	assert.Equal(t, "maria@gmail.com", user.Email)
}

func TestVerifyWithoutSessionClearsAndFails(t *testing.T) {
	store, codec := newSessionStore(t)

	// Leave a dangling user without a token.
	codec.Write(storage.KeyUser, models.User{ID: 1, Email: "x@gmail.com"})

	_, _, err := store.Verify(context.Background())
	assert.Error(t, err)
	assert.Nil(t, store.CurrentUser())
}

func TestForgotPasswordLocalMintsResetToken(t *testing.T) {
	store, _ := newSessionStore(t)

	token, source := store.ForgotPassword(context.Background(), "maria@gmail.com")
	assert.Equal(t, models.SourceLocal, source)
	assert.NotEmpty(t, token)
}

func TestRequireAuthAndAdmin(t *testing.T) {
	store, _ := newSessionStore(t)

	failed := 0
	onFail := func() { failed++ }

	assert.Nil(t, store.RequireAuth(onFail))
	assert.Equal(t, 1, failed)

	_, err := store.Login(context.Background(), &LoginRequest{
		Email:    "maria@gmail.com",
		Password: "1234",
	})
	require.NoError(t, err)

	require.NotNil(t, store.RequireAuth(onFail))
	assert.Equal(t, 1, failed)

	// A plain user fails the admin guard.
	assert.Nil(t, store.RequireAdmin(onFail))
	assert.Equal(t, 2, failed)

	_, err = store.Login(context.Background(), &LoginRequest{
		Email:    "jefa@admin.cl",
		Password: "1234",
	})
	require.NoError(t, err)
	assert.NotNil(t, store.RequireAdmin(onFail))
	assert.Equal(t, 2, failed)
}
