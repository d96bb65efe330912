// internal/cart/service.go
package cart

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/fullsound/fullsound/internal/models"
	"github.com/fullsound/fullsound/internal/orders"
	"github.com/fullsound/fullsound/internal/remote"
)

// View is what cart reads return: the lines plus the derived total, tagged
// with the tier that served them.
type View struct {
	Items  []models.CartItem `json:"items"`
	Total  float64           `json:"total"`
	Source models.Source     `json:"-"`
}

// Service fronts the cart: remote endpoints are attempted first, the local
// store serves every failure. Remote successes are mirrored into the local
// store so a later offline read sees the same cart.
type Service struct {
	client *remote.Client
	store  *Store
	orders *orders.Service
	log    *logrus.Entry
}

func NewService(client *remote.Client, store *Store, orders *orders.Service) *Service {
	return &Service{
		client: client,
		store:  store,
		orders: orders,
		log:    logrus.WithField("component", "cart"),
	}
}

func (s *Service) localView(source models.Source) View {
	items := s.store.Items()
	return View{Items: items, Total: models.CartTotal(items), Source: source}
}

func (s *Service) mirrorRemote(c remote.Cart) View {
	s.store.replace(c.Items)
	return View{Items: c.Items, Total: c.Total, Source: models.SourceAPI}
}

func (s *Service) Get(ctx context.Context) View {
	if s.client != nil {
		if c, err := s.client.GetCart(ctx); err == nil {
			return s.mirrorRemote(c)
		} else {
			s.log.WithError(err).Info("remote unavailable, reading cart locally")
		}
	}
	return s.localView(models.SourceLocal)
}

func (s *Service) Add(ctx context.Context, beat models.Beat) View {
	if s.client != nil {
		if c, err := s.client.AddCartItem(ctx, models.NewCartItem(beat)); err == nil {
			return s.mirrorRemote(c)
		} else {
			s.log.WithError(err).Info("remote unavailable, adding to local cart")
		}
	}
	s.store.Add(beat)
	return s.localView(models.SourceLocal)
}

func (s *Service) Remove(ctx context.Context, id int) View {
	if s.client != nil {
		if c, err := s.client.RemoveCartItem(ctx, id); err == nil {
			return s.mirrorRemote(c)
		} else {
			s.log.WithError(err).Info("remote unavailable, removing from local cart")
		}
	}
	s.store.Remove(id)
	return s.localView(models.SourceLocal)
}

func (s *Service) SetQuantity(ctx context.Context, id, quantity int) View {
	if s.client != nil {
		if c, err := s.client.UpdateCartItem(ctx, id, quantity); err == nil {
			return s.mirrorRemote(c)
		} else {
			s.log.WithError(err).Info("remote unavailable, updating local cart")
		}
	}
	s.store.SetQuantity(id, quantity)
	return s.localView(models.SourceLocal)
}

// Clear empties the cart on both tiers. The local store is always cleared,
// even when the remote call succeeded.
func (s *Service) Clear(ctx context.Context) {
	if s.client != nil {
		if err := s.client.ClearCart(ctx); err != nil {
			s.log.WithError(err).Info("remote unavailable, clearing local cart only")
		}
	}
	s.store.Clear()
}

// Checkout turns the current cart into an order. Remote checkout is
// attempted first; the local path records a pending order in the order log.
// Either way the cart ends up empty.
func (s *Service) Checkout(ctx context.Context, details models.JSONB) (models.Order, models.Source, error) {
	if s.client != nil {
		if order, err := s.client.Checkout(ctx, details); err == nil {
			s.store.Clear()
			return order, models.SourceAPI, nil
		} else {
			s.log.WithError(err).Info("remote unavailable, simulating checkout locally")
		}
	}

	items := s.store.Items()
	order := s.orders.Record(items, models.CartTotal(items), details)
	s.store.Clear()
	return order, models.SourceLocal, nil
}
