// internal/cart/service_test.go
package cart

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fullsound/fullsound/internal/models"
	"github.com/fullsound/fullsound/internal/orders"
	"github.com/fullsound/fullsound/internal/storage"
)

func newService(t *testing.T) (*Service, *orders.Service) {
	t.Helper()
	codec := storage.NewCodec(storage.NewMemoryBackend())
	store := NewStore(codec)
	t.Cleanup(store.Close)
	orderLog := orders.NewService(codec)
	return NewService(nil, store, orderLog), orderLog
}

func TestServiceLocalRoundTrip(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	view := svc.Add(ctx, models.Beat{ID: 1, Title: "Uno", Price: 250000})
	assert.Equal(t, models.SourceLocal, view.Source)
	require.Len(t, view.Items, 1)
	assert.Equal(t, float64(250000), view.Total)

	view = svc.Get(ctx)
	assert.Equal(t, models.SourceLocal, view.Source)
	assert.Len(t, view.Items, 1)
}

func TestServiceRemoveAndQuantity(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	svc.Add(ctx, models.Beat{ID: 1, Price: 100})
	svc.Add(ctx, models.Beat{ID: 2, Price: 200})

	view := svc.SetQuantity(ctx, 2, 4)
	assert.Equal(t, float64(900), view.Total)

	view = svc.Remove(ctx, 1)
	require.Len(t, view.Items, 1)
	assert.Equal(t, float64(800), view.Total)
}

func TestServiceClear(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	svc.Add(ctx, models.Beat{ID: 1, Price: 100})
	svc.Clear(ctx)

	assert.Empty(t, svc.Get(ctx).Items)
}

func TestServiceCheckoutRecordsPendingOrder(t *testing.T) {
	svc, orderLog := newService(t)
	ctx := context.Background()

	svc.Add(ctx, models.Beat{ID: 1, Title: "Uno", Price: 250000})

	details := models.JSONB{"nombre": "María", "correo": "maria@gmail.com"}
	order, source, err := svc.Checkout(ctx, details)
	require.NoError(t, err)

	assert.Equal(t, models.SourceLocal, source)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, float64(250000), order.Total)
	require.Len(t, order.Items, 1)
	assert.Equal(t, "María", order.PurchaseDetails["nombre"])
	assert.NotZero(t, order.ID)

	// The cart is empty afterwards and the order log kept the record.
	assert.Empty(t, svc.Get(ctx).Items)
	recorded := orderLog.List()
	require.Len(t, recorded, 1)
	assert.Equal(t, order.ID, recorded[0].ID)
}

func TestServiceCheckoutEmptyCart(t *testing.T) {
	svc, _ := newService(t)

	order, source, err := svc.Checkout(context.Background(), models.JSONB{})
	require.NoError(t, err)
	assert.Equal(t, models.SourceLocal, source)
	assert.Empty(t, order.Items)
	assert.Zero(t, order.Total)
}
