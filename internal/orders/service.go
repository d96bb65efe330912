// internal/orders/service.go
package orders

import (
	"sync"
	"time"

	"github.com/fullsound/fullsound/internal/models"
	"github.com/fullsound/fullsound/internal/storage"
)

// Service keeps the local order log. Orders only exist here: a checkout that
// fell back to local mode appends a pending order, and nothing ever moves it
// forward. There is no remote tier for orders.
type Service struct {
	codec *storage.Codec
	mtx   sync.Mutex
	now   func() time.Time
}

func NewService(codec *storage.Codec) *Service {
	return &Service{codec: codec, now: time.Now}
}

func (s *Service) read() []models.Order {
	orders := []models.Order{}
	s.codec.Read(storage.KeyOrders, &orders)
	return orders
}

// List returns every recorded order, oldest first.
func (s *Service) List() []models.Order {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return s.read()
}

// Record appends a pending order snapshotting the given cart state. The id
// is timestamp-derived, matching the rest of the locally minted ids.
func (s *Service) Record(items []models.CartItem, total float64, details models.JSONB) models.Order {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	now := s.now()
	order := models.Order{
		ID:              int(now.UnixMilli()),
		Items:           items,
		Total:           total,
		PurchaseDetails: details,
		Timestamp:       now,
		Status:          models.OrderStatusPending,
	}

	orders := append(s.read(), order)
	s.codec.Write(storage.KeyOrders, orders)
	return order
}
