// internal/users/service_test.go
package users

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fullsound/fullsound/internal/models"
	"github.com/fullsound/fullsound/internal/storage"
)

func newUserService(t *testing.T) (*Service, *storage.Codec) {
	t.Helper()
	codec := storage.NewCodec(storage.NewMemoryBackend())
	return NewService(codec, nil), codec
}

func seedSession(codec *storage.Codec, email string) models.User {
	user := models.User{
		ID:    1,
		Name:  models.NameForEmail(email),
		Email: email,
		Role:  models.RoleForEmail(email),
	}
	codec.Write(storage.KeyUser, user)
	return user
}

func TestProfileWithoutSession(t *testing.T) {
	svc, _ := newUserService(t)

	_, _, err := svc.Profile(context.Background())
	assert.ErrorIs(t, err, ErrNoProfile)
}

func TestProfileReadsSessionUser(t *testing.T) {
	svc, codec := newUserService(t)
	seedSession(codec, "maria@gmail.com")

	user, source, err := svc.Profile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.SourceLocal, source)
	assert.Equal(t, "maria@gmail.com", user.Email)
}

func TestUpdateProfileRederivesRole(t *testing.T) {
	svc, codec := newUserService(t)
	seedSession(codec, "maria@gmail.com")

	user, _, err := svc.UpdateProfile(context.Background(), map[string]interface{}{
		"correo": "maria@admin.cl",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, user.Role)

	// The stored session user changed too.
	stored, _, err := svc.Profile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "maria@admin.cl", stored.Email)
	assert.Equal(t, models.RoleAdmin, stored.Role)
}

func TestUpdateProfileIgnoresUnknownAndEmptyFields(t *testing.T) {
	svc, codec := newUserService(t)
	seedSession(codec, "maria@gmail.com")

	user, _, err := svc.UpdateProfile(context.Background(), map[string]interface{}{
		"nombre": "",
		"rol":    "admin", // not locally mutable
	})
	require.NoError(t, err)
	assert.Equal(t, "maria", user.Name)
	assert.Equal(t, models.RoleUser, user.Role)
}

func TestListGetUpdateDeleteLocalUsers(t *testing.T) {
	svc, codec := newUserService(t)
	ctx := context.Background()

	codec.Write(storage.KeyLocalUsers, []models.User{
		{ID: 1, Name: "Uno", Email: "uno@gmail.com", Role: models.RoleUser},
		{ID: 2, Name: "Dos", Email: "dos@gmail.com", Role: models.RoleUser},
	})

	list, source := svc.List(ctx)
	assert.Equal(t, models.SourceLocal, source)
	assert.Len(t, list, 2)

	user, _, err := svc.Get(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "Dos", user.Name)

	_, _, err = svc.Get(ctx, 99)
	assert.ErrorIs(t, err, ErrNotFound)

	updated, _, err := svc.Update(ctx, 1, map[string]interface{}{"nombre": "Renombrado"})
	require.NoError(t, err)
	assert.Equal(t, "Renombrado", updated.Name)

	_, err = svc.Delete(ctx, 2)
	require.NoError(t, err)
	list, _ = svc.List(ctx)
	require.Len(t, list, 1)
	assert.Equal(t, 1, list[0].ID)

	// Deleting an unknown id succeeds silently.
	_, err = svc.Delete(ctx, 99)
	assert.NoError(t, err)
}

func TestChangePasswordLocalIsSimulated(t *testing.T) {
	svc, _ := newUserService(t)
	source := svc.ChangePassword(context.Background(), "vieja", "nueva")
	assert.Equal(t, models.SourceLocal, source)
}
