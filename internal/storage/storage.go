// internal/storage/storage.go
package storage

import (
	"encoding/json"

	"github.com/sirupsen/logrus"
)

// Well-known keys. One JSON document per key, mirroring the browser
// localStorage layout the storefront was built around.
const (
	KeyToken      = "token"
	KeyUser       = "user"
	KeyLocalUsers = "usuarios_locales"
	KeyOrders     = "ordenes_locales"
	KeyCart       = "fs_cart_v1"
	KeyLocalBeats = "fs_beats_local"
	KeyLocalCart  = "fs_carrito_local"
)

// Backend is the persistence port behind the codec. Implementations must be
// safe for concurrent use. Subscribe delivers coalesced change signals for a
// key; it is an eventually-consistent broadcast, not a correctness guarantee
// (last write wins).
type Backend interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte) error
	Delete(key string) error
	Subscribe(key string) (ch <-chan struct{}, cancel func())
}

// Codec serializes values to and from a Backend with a fail-silent policy:
// reads fall back to the caller's default, writes swallow errors. The
// storefront must never crash because storage is unavailable.
type Codec struct {
	backend Backend
}

func NewCodec(backend Backend) *Codec {
	return &Codec{backend: backend}
}

// Read unmarshals the value stored under key into out. On a missing key or
// a parse failure out is left untouched, so callers keep whatever default
// they initialized it with. The return value reports whether stored data was
// actually decoded.
func (c *Codec) Read(key string, out interface{}) bool {
	raw, ok := c.backend.Get(key)
	if !ok {
		return false
	}
	if err := json.Unmarshal(raw, out); err != nil {
		logrus.WithField("key", key).WithError(err).Debug("discarding unreadable stored value")
		return false
	}
	return true
}

// Write serializes value under key. Failures are swallowed.
func (c *Codec) Write(key string, value interface{}) {
	raw, err := json.Marshal(value)
	if err != nil {
		logrus.WithField("key", key).WithError(err).Debug("skipping unserializable value")
		return
	}
	if err := c.backend.Set(key, raw); err != nil {
		logrus.WithField("key", key).WithError(err).Debug("storage write failed")
	}
}

// Delete removes the value under key. Failures are swallowed.
func (c *Codec) Delete(key string) {
	if err := c.backend.Delete(key); err != nil {
		logrus.WithField("key", key).WithError(err).Debug("storage delete failed")
	}
}

// Subscribe exposes the backend's change signal for key.
func (c *Codec) Subscribe(key string) (<-chan struct{}, func()) {
	return c.backend.Subscribe(key)
}
