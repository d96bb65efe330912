// internal/catalog/fallback_test.go
package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fullsound/fullsound/internal/models"
	"github.com/fullsound/fullsound/internal/storage"
)

// stubRemote serves canned answers, or fails every call when down is set.
type stubRemote struct {
	down  bool
	beats []models.Beat
}

var errDown = errors.New("connection refused")

func (s *stubRemote) List(ctx context.Context, filter models.BeatFilter) ([]models.Beat, error) {
	if s.down {
		return nil, errDown
	}
	return s.beats, nil
}

func (s *stubRemote) Get(ctx context.Context, id int) (models.Beat, error) {
	if s.down {
		return models.Beat{}, errDown
	}
	for _, b := range s.beats {
		if b.ID == id {
			return b, nil
		}
	}
	return models.Beat{}, ErrNotFound
}

func (s *stubRemote) Create(ctx context.Context, req *CreateBeatRequest) (models.Beat, error) {
	if s.down {
		return models.Beat{}, errDown
	}
	beat := models.Beat{ID: 100, Title: req.Title, Artist: req.Artist, Genre: req.Genre}
	s.beats = append(s.beats, beat)
	return beat, nil
}

func (s *stubRemote) Update(ctx context.Context, id int, req *UpdateBeatRequest) (models.Beat, error) {
	if s.down {
		return models.Beat{}, errDown
	}
	return models.Beat{ID: id, Title: req.Title}, nil
}

func (s *stubRemote) Delete(ctx context.Context, id int) error {
	if s.down {
		return errDown
	}
	return nil
}

func (s *stubRemote) Genres(ctx context.Context) ([]string, error) {
	if s.down {
		return nil, errDown
	}
	return []string{"Remoto"}, nil
}

func newFallback(t *testing.T, remote Catalog) (*FallbackCatalog, *LocalCatalog) {
	t.Helper()
	local := NewLocalCatalog(storage.NewCodec(storage.NewMemoryBackend()))
	return NewFallbackCatalog(remote, local), local
}

func TestFallbackPrefersRemote(t *testing.T) {
	remote := &stubRemote{beats: []models.Beat{{ID: 42, Title: "Remoto"}}}
	fallback, _ := newFallback(t, remote)

	beats, source, err := fallback.List(context.Background(), models.BeatFilter{})
	require.NoError(t, err)
	assert.Equal(t, models.SourceAPI, source)
	require.Len(t, beats, 1)
	assert.Equal(t, "Remoto", beats[0].Title)
}

func TestFallbackDropsToLocalOnRemoteError(t *testing.T) {
	fallback, _ := newFallback(t, &stubRemote{down: true})

	beats, source, err := fallback.List(context.Background(), models.BeatFilter{})
	require.NoError(t, err)
	assert.Equal(t, models.SourceLocal, source)
	assert.Len(t, beats, 9)
}

func TestFallbackWithoutRemoteIsLocal(t *testing.T) {
	fallback, _ := newFallback(t, nil)

	beat, source, err := fallback.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, models.SourceLocal, source)
	assert.Equal(t, "La melodia de Lampa", beat.Title)
}

func TestFallbackMirrorsRemoteCreate(t *testing.T) {
	remote := &stubRemote{}
	fallback, local := newFallback(t, remote)

	beat, source, err := fallback.Create(context.Background(), &CreateBeatRequest{
		Title: "Espejo", Artist: "a", Genre: "g", DisplayPrice: "$1",
	})
	require.NoError(t, err)
	assert.Equal(t, models.SourceAPI, source)
	assert.Equal(t, 100, beat.ID)

	// The local tier now holds the remote-created beat too.
	mirrored, err := local.Get(context.Background(), 100)
	require.NoError(t, err)
	assert.Equal(t, "Espejo", mirrored.Title)
}

func TestFallbackMirrorsRemoteDelete(t *testing.T) {
	remote := &stubRemote{}
	fallback, local := newFallback(t, remote)

	source, err := fallback.Delete(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, models.SourceAPI, source)

	_, err = local.Get(context.Background(), 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFallbackLocalCreateAfterRemoteFailure(t *testing.T) {
	fallback, local := newFallback(t, &stubRemote{down: true})

	beat, source, err := fallback.Create(context.Background(), &CreateBeatRequest{
		Title: "Local", Artist: "a", Genre: "g", DisplayPrice: "$1",
	})
	require.NoError(t, err)
	assert.Equal(t, models.SourceLocal, source)
	assert.Equal(t, 10, beat.ID)

	got, err := local.Get(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, "Local", got.Title)
}

func TestFallbackGetOrFirstUnknownID(t *testing.T) {
	fallback, _ := newFallback(t, &stubRemote{down: true})

	beat, source, err := fallback.GetOrFirst(context.Background(), 999)
	require.NoError(t, err)
	assert.Equal(t, models.SourceLocal, source)
	assert.Equal(t, 1, beat.ID)
}

func TestFallbackGenres(t *testing.T) {
	fallback, _ := newFallback(t, &stubRemote{})

	genres, source, err := fallback.Genres(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.SourceAPI, source)
	assert.Equal(t, []string{"Remoto"}, genres)
}
