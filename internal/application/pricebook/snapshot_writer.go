package pricebook

import (
	"context"
	"fmt"

	"github.com/pricebook/backend/internal/domain/pricebook"
	"github.com/pricebook/backend/internal/domain/shared"
	"github.com/pricebook/backend/internal/infrastructure/logger"
	"github.com/pricebook/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// SnapshotWriter persists the collection carried by every catalog change
// event. Write failures are reported to the bus, which logs them; the
// in-memory collection is never rolled back.
type SnapshotWriter struct {
	store   pricebook.SnapshotStore
	key     string
	driver  string
	metrics *telemetry.BusinessMetrics
	logger  *zap.Logger
}

// NewSnapshotWriter creates a writer for key. metrics may be nil.
func NewSnapshotWriter(store pricebook.SnapshotStore, key, driver string, metrics *telemetry.BusinessMetrics, zapLogger *zap.Logger) *SnapshotWriter {
	if zapLogger == nil {
		zapLogger = zap.NewNop()
	}
	return &SnapshotWriter{
		store:   store,
		key:     key,
		driver:  driver,
		metrics: metrics,
		logger:  zapLogger,
	}
}

// EventTypes implements shared.EventHandler.
func (w *SnapshotWriter) EventTypes() []string {
	return pricebook.CatalogEventTypes()
}

// Handle implements shared.EventHandler.
func (w *SnapshotWriter) Handle(ctx context.Context, event shared.DomainEvent) error {
	changed, ok := event.(*pricebook.CatalogChangedEvent)
	if !ok {
		return nil
	}

	// the write must finish even when the triggering request goes away
	ctx = context.WithoutCancel(ctx)
	ctx, span := telemetry.StartServiceSpan(ctx, "snapshot", "save",
		telemetry.WithAttribute(telemetry.SpanAttrRevision, int64(changed.Revision)),
		telemetry.WithAttribute(telemetry.SpanAttrStoreDriver, w.driver),
	)
	defer span.End()

	payload, err := pricebook.EncodeSnapshot(changed.Snapshot)
	if err == nil {
		err = w.store.Save(ctx, w.key, payload)
	}
	if err != nil {
		telemetry.RecordError(span, err)
		if w.metrics != nil {
			w.metrics.RecordSnapshotFailure(ctx, w.driver)
		}
		return fmt.Errorf("failed to persist catalog revision %d: %w", changed.Revision, err)
	}

	logger.WithLogger(ctx, w.logger).Debug("Catalog snapshot saved",
		zap.Uint64("revision", changed.Revision),
		zap.Int("bytes", len(payload)),
	)
	return nil
}

var _ shared.EventHandler = (*SnapshotWriter)(nil)
