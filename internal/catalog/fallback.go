// internal/catalog/fallback.go
package catalog

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/fullsound/fullsound/internal/models"
)

// FallbackCatalog tries the remote tier first and defers to the local tier
// on any failure. One attempt, no retry: a remote error means "work locally
// for this call". Results are tagged with the tier that served them.
// Successful remote writes are mirrored into the local store so the two
// tiers drift as little as possible.
type FallbackCatalog struct {
	remote Catalog
	local  *LocalCatalog
	log    *logrus.Entry
}

func NewFallbackCatalog(remote Catalog, local *LocalCatalog) *FallbackCatalog {
	return &FallbackCatalog{
		remote: remote,
		local:  local,
		log:    logrus.WithField("component", "catalog"),
	}
}

func (f *FallbackCatalog) List(ctx context.Context, filter models.BeatFilter) ([]models.Beat, models.Source, error) {
	if f.remote != nil {
		beats, err := f.remote.List(ctx, filter)
		if err == nil {
			return beats, models.SourceAPI, nil
		}
		f.log.WithError(err).Info("remote unavailable, listing beats locally")
	}
	beats, err := f.local.List(ctx, filter)
	return beats, models.SourceLocal, err
}

func (f *FallbackCatalog) Get(ctx context.Context, id int) (models.Beat, models.Source, error) {
	if f.remote != nil {
		beat, err := f.remote.Get(ctx, id)
		if err == nil {
			return beat, models.SourceAPI, nil
		}
		f.log.WithError(err).WithField("id", id).Info("remote unavailable, resolving beat locally")
	}
	beat, err := f.local.Get(ctx, id)
	return beat, models.SourceLocal, err
}

// GetOrFirst resolves an unknown id to the first catalog entry instead of
// failing; used where the UI must always have something to show.
func (f *FallbackCatalog) GetOrFirst(ctx context.Context, id int) (models.Beat, models.Source, error) {
	beat, source, err := f.Get(ctx, id)
	if err == nil {
		return beat, source, nil
	}
	fallback, err := f.local.GetOrFirst(ctx, id)
	return fallback, models.SourceLocal, err
}

func (f *FallbackCatalog) Create(ctx context.Context, req *CreateBeatRequest) (models.Beat, models.Source, error) {
	if f.remote != nil {
		beat, err := f.remote.Create(ctx, req)
		if err == nil {
			f.local.mirror(func(beats []models.Beat) []models.Beat {
				return append(beats, beat)
			})
			return beat, models.SourceAPI, nil
		}
		f.log.WithError(err).Info("remote unavailable, creating beat locally")
	}
	beat, err := f.local.Create(ctx, req)
	return beat, models.SourceLocal, err
}

func (f *FallbackCatalog) Update(ctx context.Context, id int, req *UpdateBeatRequest) (models.Beat, models.Source, error) {
	if f.remote != nil {
		beat, err := f.remote.Update(ctx, id, req)
		if err == nil {
			f.local.mirror(func(beats []models.Beat) []models.Beat {
				for i := range beats {
					if beats[i].ID == id {
						beats[i] = beat
					}
				}
				return beats
			})
			return beat, models.SourceAPI, nil
		}
		f.log.WithError(err).WithField("id", id).Info("remote unavailable, updating beat locally")
	}
	beat, err := f.local.Update(ctx, id, req)
	return beat, models.SourceLocal, err
}

func (f *FallbackCatalog) Delete(ctx context.Context, id int) (models.Source, error) {
	if f.remote != nil {
		if err := f.remote.Delete(ctx, id); err == nil {
			f.local.mirror(func(beats []models.Beat) []models.Beat {
				kept := beats[:0]
				for _, b := range beats {
					if b.ID != id {
						kept = append(kept, b)
					}
				}
				return kept
			})
			return models.SourceAPI, nil
		} else {
			f.log.WithError(err).WithField("id", id).Info("remote unavailable, deleting beat locally")
		}
	}
	return models.SourceLocal, f.local.Delete(ctx, id)
}

func (f *FallbackCatalog) Genres(ctx context.Context) ([]string, models.Source, error) {
	if f.remote != nil {
		genres, err := f.remote.Genres(ctx)
		if err == nil {
			return genres, models.SourceAPI, nil
		}
		f.log.WithError(err).Info("remote unavailable, deriving genres locally")
	}
	genres, err := f.local.Genres(ctx)
	return genres, models.SourceLocal, err
}
