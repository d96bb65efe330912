// internal/cart/store.go
package cart

import (
	"sync"

	"github.com/fullsound/fullsound/internal/models"
	"github.com/fullsound/fullsound/internal/storage"
)

// Store holds the cart line items, persisted wholesale through the codec on
// every mutation. Observers (header badge, cart page) subscribe for change
// signals; signals also fire when another writer touches the underlying
// storage key, giving eventually-consistent multi-writer sync.
type Store struct {
	codec *storage.Codec

	mtx  sync.Mutex
	subs map[int]chan struct{}
	next int

	stopWatch func()
}

func NewStore(codec *storage.Codec) *Store {
	s := &Store{
		codec: codec,
		subs:  make(map[int]chan struct{}),
	}

	ch, cancel := codec.Subscribe(storage.KeyCart)
	done := make(chan struct{})
	s.stopWatch = func() {
		cancel()
		close(done)
	}
	go func() {
		for {
			select {
			case <-ch:
				s.notify()
			case <-done:
				return
			}
		}
	}()

	return s
}

// Close stops the storage watcher.
func (s *Store) Close() {
	s.stopWatch()
}

// Items reads the current line items from storage. An unreadable or missing
// value is an empty cart.
func (s *Store) Items() []models.CartItem {
	items := []models.CartItem{}
	s.codec.Read(storage.KeyCart, &items)
	return items
}

// Add puts the beat in the cart with quantity 1. Adding a beat whose id is
// already present is a no-op: no duplicate line, no quantity bump. That is
// the storefront's intended behavior, not an accident.
func (s *Store) Add(beat models.Beat) []models.CartItem {
	s.mtx.Lock()
	items := s.Items()
	for _, it := range items {
		if it.ID == beat.ID {
			s.mtx.Unlock()
			return items
		}
	}
	items = append(items, models.NewCartItem(beat))
	s.codec.Write(storage.KeyCart, items)
	s.mtx.Unlock()

	s.notify()
	return items
}

// Remove drops the line with the given id. Unknown ids leave the cart
// unchanged.
func (s *Store) Remove(id int) []models.CartItem {
	s.mtx.Lock()
	items := s.Items()
	kept := items[:0]
	for _, it := range items {
		if it.ID != id {
			kept = append(kept, it)
		}
	}
	s.codec.Write(storage.KeyCart, kept)
	s.mtx.Unlock()

	s.notify()
	return kept
}

// SetQuantity overwrites the quantity of the line with the given id. The UI
// pins quantities at 1 but the operation accepts anything.
func (s *Store) SetQuantity(id, quantity int) []models.CartItem {
	s.mtx.Lock()
	items := s.Items()
	for i := range items {
		if items[i].ID == id {
			items[i].Quantity = quantity
		}
	}
	s.codec.Write(storage.KeyCart, items)
	s.mtx.Unlock()

	s.notify()
	return items
}

// Clear empties the cart.
func (s *Store) Clear() {
	s.mtx.Lock()
	s.codec.Write(storage.KeyCart, []models.CartItem{})
	s.mtx.Unlock()

	s.notify()
}

// replace overwrites the whole cart; used to mirror a remote cart state.
func (s *Store) replace(items []models.CartItem) {
	s.mtx.Lock()
	if items == nil {
		items = []models.CartItem{}
	}
	s.codec.Write(storage.KeyCart, items)
	s.mtx.Unlock()

	s.notify()
}

// Total is recomputed from the stored items on every call, never cached.
func (s *Store) Total() float64 {
	return models.CartTotal(s.Items())
}

// Subscribe registers a change observer. The returned cancel must be called
// when the observer goes away.
func (s *Store) Subscribe() (<-chan struct{}, func()) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	ch := make(chan struct{}, 1)
	id := s.next
	s.next++
	s.subs[id] = ch

	cancel := func() {
		s.mtx.Lock()
		defer s.mtx.Unlock()
		delete(s.subs, id)
	}
	return ch, cancel
}

func (s *Store) notify() {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	for _, ch := range s.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
