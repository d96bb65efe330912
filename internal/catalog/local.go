// internal/catalog/local.go
package catalog

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/fullsound/fullsound/internal/models"
	"github.com/fullsound/fullsound/internal/storage"
	"github.com/fullsound/fullsound/internal/utils"
)

// LocalCatalog serves beats from the codec-backed store, seeded with the
// static default catalog when storage holds nothing.
type LocalCatalog struct {
	codec *storage.Codec
	mtx   sync.Mutex
}

func NewLocalCatalog(codec *storage.Codec) *LocalCatalog {
	return &LocalCatalog{codec: codec}
}

func (l *LocalCatalog) read() []models.Beat {
	beats := models.DefaultCatalog()
	l.codec.Read(storage.KeyLocalBeats, &beats)

	// Stored beats created before price normalization may carry only the
	// display string.
	for i := range beats {
		if beats[i].Price == 0 && beats[i].DisplayPrice != "" {
			beats[i].Price = models.NormalizePrice(beats[i].DisplayPrice)
		}
	}
	return beats
}

func (l *LocalCatalog) write(beats []models.Beat) {
	l.codec.Write(storage.KeyLocalBeats, beats)
}

func (l *LocalCatalog) List(ctx context.Context, filter models.BeatFilter) ([]models.Beat, error) {
	l.mtx.Lock()
	defer l.mtx.Unlock()

	all := l.read()
	matched := make([]models.Beat, 0, len(all))
	for _, b := range all {
		if filter.Matches(b) {
			matched = append(matched, b)
		}
	}
	return matched, nil
}

func (l *LocalCatalog) Get(ctx context.Context, id int) (models.Beat, error) {
	l.mtx.Lock()
	defer l.mtx.Unlock()

	for _, b := range l.read() {
		if b.ID == id {
			return b, nil
		}
	}
	return models.Beat{}, ErrNotFound
}

// GetOrFirst is for callers that need a guaranteed result: an unknown id
// resolves to the first catalog entry instead of failing.
func (l *LocalCatalog) GetOrFirst(ctx context.Context, id int) (models.Beat, error) {
	beat, err := l.Get(ctx, id)
	if err == nil {
		return beat, nil
	}

	l.mtx.Lock()
	defer l.mtx.Unlock()
	beats := l.read()
	if len(beats) == 0 {
		return models.Beat{}, ErrNotFound
	}
	return beats[0], nil
}

func (l *LocalCatalog) Create(ctx context.Context, req *CreateBeatRequest) (models.Beat, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return models.Beat{}, fmt.Errorf("validation failed: %w", err)
	}

	l.mtx.Lock()
	defer l.mtx.Unlock()

	beats := l.read()
	beat := models.Beat{
		ID:           nextID(beats),
		Title:        req.Title,
		Artist:       req.Artist,
		Genre:        req.Genre,
		DisplayPrice: req.DisplayPrice,
		Price:        req.Price,
		Description:  req.Description,
		AudioRef:     req.AudioRef,
		ImageRef:     req.ImageRef,
	}
	if beat.Price == 0 {
		beat.Price = models.NormalizePrice(beat.DisplayPrice)
	}
	beat.ProductLink = "/producto/" + strconv.Itoa(beat.ID)

	beats = append(beats, beat)
	l.write(beats)
	return beat, nil
}

func (l *LocalCatalog) Update(ctx context.Context, id int, req *UpdateBeatRequest) (models.Beat, error) {
	l.mtx.Lock()
	defer l.mtx.Unlock()

	beats := l.read()
	for i := range beats {
		if beats[i].ID == id {
			req.apply(&beats[i])
			l.write(beats)
			return beats[i], nil
		}
	}
	return models.Beat{}, ErrNotFound
}

func (l *LocalCatalog) Delete(ctx context.Context, id int) error {
	l.mtx.Lock()
	defer l.mtx.Unlock()

	beats := l.read()
	kept := beats[:0]
	for _, b := range beats {
		if b.ID != id {
			kept = append(kept, b)
		}
	}
	l.write(kept)
	return nil
}

func (l *LocalCatalog) Genres(ctx context.Context) ([]string, error) {
	l.mtx.Lock()
	defer l.mtx.Unlock()

	return uniqueGenres(l.read()), nil
}

// mirror applies fn to the current local catalog under the lock.
func (l *LocalCatalog) mirror(fn func(beats []models.Beat) []models.Beat) {
	l.mtx.Lock()
	defer l.mtx.Unlock()
	l.write(fn(l.read()))
}

// nextID assigns one past the maximum numeric id. Ids arrive as integers
// from this package, but stored data may predate that, so existing ids are
// coerced with non-numeric treated as 0.
func nextID(beats []models.Beat) int {
	max := 0
	for _, b := range beats {
		if b.ID > max {
			max = b.ID
		}
	}
	return max + 1
}
