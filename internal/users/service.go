// internal/users/service.go
package users

import (
	"context"
	"errors"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/fullsound/fullsound/internal/models"
	"github.com/fullsound/fullsound/internal/remote"
	"github.com/fullsound/fullsound/internal/storage"
)

// ErrNotFound reports an unknown user id in local mode.
var ErrNotFound = errors.New("usuario no encontrado")

// ErrNoProfile reports a profile read with no active session.
var ErrNoProfile = errors.New("no hay usuario autenticado")

// Service manages the profile of the current session user and, for admins,
// the locally registered user list. Same two-tier policy as everything
// else: remote first, local on any failure.
type Service struct {
	codec  *storage.Codec
	client *remote.Client
	mtx    sync.Mutex
	log    *logrus.Entry
}

func NewService(codec *storage.Codec, client *remote.Client) *Service {
	return &Service{
		codec:  codec,
		client: client,
		log:    logrus.WithField("component", "users"),
	}
}

func (s *Service) readLocal() []models.User {
	users := []models.User{}
	s.codec.Read(storage.KeyLocalUsers, &users)
	return users
}

func (s *Service) Profile(ctx context.Context) (models.User, models.Source, error) {
	if s.client != nil {
		if user, err := s.client.Profile(ctx); err == nil {
			return user, models.SourceAPI, nil
		} else {
			s.log.WithError(err).Info("remote unavailable, reading profile locally")
		}
	}

	var user models.User
	if !s.codec.Read(storage.KeyUser, &user) {
		return models.User{}, models.SourceLocal, ErrNoProfile
	}
	return user, models.SourceLocal, nil
}

// UpdateProfile merges the given fields onto the session user. Only name
// and email are locally mutable; the role is re-derived when the email
// changes, keeping the domain convention authoritative.
func (s *Service) UpdateProfile(ctx context.Context, patch map[string]interface{}) (models.User, models.Source, error) {
	if s.client != nil {
		if user, err := s.client.UpdateProfile(ctx, patch); err == nil {
			s.codec.Write(storage.KeyUser, user)
			return user, models.SourceAPI, nil
		} else {
			s.log.WithError(err).Info("remote unavailable, updating profile locally")
		}
	}

	var user models.User
	if !s.codec.Read(storage.KeyUser, &user) {
		return models.User{}, models.SourceLocal, ErrNoProfile
	}

	applyPatch(&user, patch)
	s.codec.Write(storage.KeyUser, user)
	return user, models.SourceLocal, nil
}

func (s *Service) ChangePassword(ctx context.Context, current, next string) models.Source {
	if s.client != nil {
		if err := s.client.ChangePassword(ctx, current, next); err == nil {
			return models.SourceAPI
		} else {
			s.log.WithError(err).Info("remote unavailable, simulating password change")
		}
	}
	return models.SourceLocal
}

func (s *Service) List(ctx context.Context) ([]models.User, models.Source) {
	if s.client != nil {
		if users, err := s.client.ListUsers(ctx); err == nil {
			return users, models.SourceAPI
		} else {
			s.log.WithError(err).Info("remote unavailable, listing local users")
		}
	}

	s.mtx.Lock()
	defer s.mtx.Unlock()
	return s.readLocal(), models.SourceLocal
}

func (s *Service) Get(ctx context.Context, id int) (models.User, models.Source, error) {
	if s.client != nil {
		if user, err := s.client.GetUser(ctx, id); err == nil {
			return user, models.SourceAPI, nil
		} else {
			s.log.WithError(err).WithField("id", id).Info("remote unavailable, resolving user locally")
		}
	}

	s.mtx.Lock()
	defer s.mtx.Unlock()
	for _, u := range s.readLocal() {
		if u.ID == id {
			return u, models.SourceLocal, nil
		}
	}
	return models.User{}, models.SourceLocal, ErrNotFound
}

func (s *Service) Update(ctx context.Context, id int, patch map[string]interface{}) (models.User, models.Source, error) {
	if s.client != nil {
		if user, err := s.client.UpdateUser(ctx, id, patch); err == nil {
			return user, models.SourceAPI, nil
		} else {
			s.log.WithError(err).WithField("id", id).Info("remote unavailable, updating user locally")
		}
	}

	s.mtx.Lock()
	defer s.mtx.Unlock()

	users := s.readLocal()
	for i := range users {
		if users[i].ID == id {
			applyPatch(&users[i], patch)
			s.codec.Write(storage.KeyLocalUsers, users)
			return users[i], models.SourceLocal, nil
		}
	}
	return models.User{}, models.SourceLocal, ErrNotFound
}

func (s *Service) Delete(ctx context.Context, id int) (models.Source, error) {
	if s.client != nil {
		if err := s.client.DeleteUser(ctx, id); err == nil {
			return models.SourceAPI, nil
		} else {
			s.log.WithError(err).WithField("id", id).Info("remote unavailable, deleting user locally")
		}
	}

	s.mtx.Lock()
	defer s.mtx.Unlock()

	users := s.readLocal()
	kept := users[:0]
	for _, u := range users {
		if u.ID != id {
			kept = append(kept, u)
		}
	}
	s.codec.Write(storage.KeyLocalUsers, kept)
	return models.SourceLocal, nil
}

func applyPatch(u *models.User, patch map[string]interface{}) {
	if name, ok := patch["nombre"].(string); ok && name != "" {
		u.Name = name
	}
	if email, ok := patch["correo"].(string); ok && email != "" {
		u.Email = email
		u.Role = models.RoleForEmail(email)
	}
}
