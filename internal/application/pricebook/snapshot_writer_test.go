package pricebook

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pricebook/backend/internal/domain/pricebook"
	"github.com/pricebook/backend/internal/infrastructure/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSnapshotWriter_Handle(t *testing.T) {
	products := []pricebook.Product{
		pricebook.NewProduct("a", pricebook.Fields{Name: "A", UnitCost: pricebook.Num(3)}, 1),
	}
	event := pricebook.NewCatalogChangedEvent(pricebook.EventTypeProductCreated, time.Now(), 7, products, "a")
	payload, err := pricebook.EncodeSnapshot(products)
	require.NoError(t, err)

	t.Run("saves the event snapshot under the key", func(t *testing.T) {
		store := new(MockSnapshotStore)
		store.On("Save", mock.Anything, testKey, payload).Return(nil)

		w := NewSnapshotWriter(store, testKey, "memory", nil, nil)
		require.NoError(t, w.Handle(context.Background(), event))
		store.AssertExpectations(t)
	})

	t.Run("save survives a cancelled request context", func(t *testing.T) {
		store := new(MockSnapshotStore)
		store.On("Save", mock.MatchedBy(func(ctx context.Context) bool { return ctx.Err() == nil }), testKey, payload).Return(nil)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		w := NewSnapshotWriter(store, testKey, "memory", nil, nil)
		require.NoError(t, w.Handle(ctx, event))
		store.AssertExpectations(t)
	})

	t.Run("reports failures and counts them", func(t *testing.T) {
		store := new(MockSnapshotStore)
		store.On("Save", mock.Anything, testKey, payload).Return(errors.New("bucket gone"))
		metrics, reader := newTestMetrics(t)

		w := NewSnapshotWriter(store, testKey, "s3", metrics, nil)
		err := w.Handle(context.Background(), event)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "revision 7")
		assert.Contains(t, err.Error(), "bucket gone")

		assert.Equal(t, int64(1), counterValue(t, reader,
			"pricebook_snapshot_write_failures_total", telemetry.AttrStoreDriver, "s3"))
	})

	t.Run("subscribes to every catalog event", func(t *testing.T) {
		w := NewSnapshotWriter(nil, testKey, "memory", nil, nil)
		assert.ElementsMatch(t, pricebook.CatalogEventTypes(), w.EventTypes())
	})
}

func TestCatalogMetricsHandler_Handle(t *testing.T) {
	metrics, reader := newTestMetrics(t)
	h := NewCatalogMetricsHandler(metrics)

	products := []pricebook.Product{pricebook.NewProduct("a", pricebook.Fields{Name: "A"}, 1)}
	require.NoError(t, h.Handle(context.Background(),
		pricebook.NewCatalogChangedEvent(pricebook.EventTypeProductDeleted, time.Now(), 1, products, "b")))
	require.NoError(t, h.Handle(context.Background(),
		pricebook.NewCatalogChangedEvent(pricebook.EventTypeProductDeleted, time.Now(), 2, nil, "a")))

	assert.Equal(t, int64(2), counterValue(t, reader,
		"pricebook_catalog_changes_total", telemetry.AttrEventType, pricebook.EventTypeProductDeleted))
}
