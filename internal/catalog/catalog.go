// internal/catalog/catalog.go
package catalog

import (
	"context"
	"errors"

	"github.com/fullsound/fullsound/internal/models"
)

// ErrNotFound reports an unknown beat id. Only the local tier returns it
// directly; the fallback tier propagates it after the remote tier failed.
var ErrNotFound = errors.New("beat no encontrado")

// Catalog is the capability set both tiers implement.
type Catalog interface {
	List(ctx context.Context, filter models.BeatFilter) ([]models.Beat, error)
	Get(ctx context.Context, id int) (models.Beat, error)
	Create(ctx context.Context, req *CreateBeatRequest) (models.Beat, error)
	Update(ctx context.Context, id int, req *UpdateBeatRequest) (models.Beat, error)
	Delete(ctx context.Context, id int) error
	Genres(ctx context.Context) ([]string, error)
}

type CreateBeatRequest struct {
	Title        string  `json:"titulo" validate:"required"`
	Artist       string  `json:"artista" validate:"required"`
	Genre        string  `json:"genero" validate:"required"`
	DisplayPrice string  `json:"precio" validate:"required"`
	Price        float64 `json:"precioNumerico"`
	Description  string  `json:"descripcion"`
	AudioRef     string  `json:"fuente"`
	ImageRef     string  `json:"imagen"`
}

type UpdateBeatRequest struct {
	Title        string  `json:"titulo,omitempty"`
	Artist       string  `json:"artista,omitempty"`
	Genre        string  `json:"genero,omitempty"`
	DisplayPrice string  `json:"precio,omitempty"`
	Price        float64 `json:"precioNumerico,omitempty"`
	Description  string  `json:"descripcion,omitempty"`
	AudioRef     string  `json:"fuente,omitempty"`
	ImageRef     string  `json:"imagen,omitempty"`
}

// apply merges the non-zero request fields onto b.
func (r *UpdateBeatRequest) apply(b *models.Beat) {
	if r.Title != "" {
		b.Title = r.Title
	}
	if r.Artist != "" {
		b.Artist = r.Artist
	}
	if r.Genre != "" {
		b.Genre = r.Genre
	}
	if r.DisplayPrice != "" {
		b.DisplayPrice = r.DisplayPrice
		b.Price = models.NormalizePrice(r.DisplayPrice)
	}
	if r.Price > 0 {
		b.Price = r.Price
	}
	if r.Description != "" {
		b.Description = r.Description
	}
	if r.AudioRef != "" {
		b.AudioRef = r.AudioRef
	}
	if r.ImageRef != "" {
		b.ImageRef = r.ImageRef
	}
}

// uniqueGenres extracts genres in first-seen order, each exactly once.
func uniqueGenres(beats []models.Beat) []string {
	seen := make(map[string]bool, len(beats))
	genres := make([]string, 0, len(beats))
	for _, b := range beats {
		if b.Genre == "" || seen[b.Genre] {
			continue
		}
		seen[b.Genre] = true
		genres = append(genres, b.Genre)
	}
	return genres
}
