// internal/catalog/remote.go
package catalog

import (
	"context"
	"fmt"

	"github.com/fullsound/fullsound/internal/models"
	"github.com/fullsound/fullsound/internal/remote"
	"github.com/fullsound/fullsound/internal/utils"
)

// RemoteCatalog serves beats from the Fullsound API.
type RemoteCatalog struct {
	client *remote.Client
}

func NewRemoteCatalog(client *remote.Client) *RemoteCatalog {
	return &RemoteCatalog{client: client}
}

func (r *RemoteCatalog) List(ctx context.Context, filter models.BeatFilter) ([]models.Beat, error) {
	return r.client.ListBeats(ctx, filter)
}

func (r *RemoteCatalog) Get(ctx context.Context, id int) (models.Beat, error) {
	return r.client.GetBeat(ctx, id)
}

func (r *RemoteCatalog) Create(ctx context.Context, req *CreateBeatRequest) (models.Beat, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return models.Beat{}, fmt.Errorf("validation failed: %w", err)
	}
	return r.client.CreateBeat(ctx, models.Beat{
		Title:        req.Title,
		Artist:       req.Artist,
		Genre:        req.Genre,
		DisplayPrice: req.DisplayPrice,
		Price:        req.Price,
		Description:  req.Description,
		AudioRef:     req.AudioRef,
		ImageRef:     req.ImageRef,
	})
}

func (r *RemoteCatalog) Update(ctx context.Context, id int, req *UpdateBeatRequest) (models.Beat, error) {
	return r.client.UpdateBeat(ctx, id, models.Beat{
		Title:        req.Title,
		Artist:       req.Artist,
		Genre:        req.Genre,
		DisplayPrice: req.DisplayPrice,
		Price:        req.Price,
		Description:  req.Description,
		AudioRef:     req.AudioRef,
		ImageRef:     req.ImageRef,
	})
}

func (r *RemoteCatalog) Delete(ctx context.Context, id int) error {
	return r.client.DeleteBeat(ctx, id)
}

func (r *RemoteCatalog) Genres(ctx context.Context) ([]string, error) {
	return r.client.Genres(ctx)
}
