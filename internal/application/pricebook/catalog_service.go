package pricebook

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pricebook/backend/internal/domain/pricebook"
	"github.com/pricebook/backend/internal/domain/shared"
	"github.com/pricebook/backend/internal/infrastructure/logger"
	"github.com/pricebook/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// LoadSource reports where Load found the collection.
type LoadSource string

const (
	LoadedFromSnapshot LoadSource = "snapshot"
	LoadedFromSeed     LoadSource = "seed"
)

// CatalogService owns the in-memory product collection. Mutations are
// serialised and each one publishes a CatalogChangedEvent carrying the
// resulting collection before the lock is released, so subscribers see
// changes in order.
type CatalogService struct {
	mu         sync.RWMutex
	collection *pricebook.Collection
	revision   uint64

	store     pricebook.SnapshotStore
	key       string
	publisher shared.EventPublisher
	logger    *zap.Logger

	now   func() time.Time
	newID func() string
}

// CatalogOption configures a CatalogService.
type CatalogOption func(*CatalogService)

// WithClock overrides time.Now.
func WithClock(now func() time.Time) CatalogOption {
	return func(s *CatalogService) { s.now = now }
}

// WithIDGenerator overrides the UUID generator used for new products.
func WithIDGenerator(newID func() string) CatalogOption {
	return func(s *CatalogService) { s.newID = newID }
}

// NewCatalogService creates an empty service. Call Load before serving.
func NewCatalogService(
	store pricebook.SnapshotStore,
	key string,
	publisher shared.EventPublisher,
	zapLogger *zap.Logger,
	opts ...CatalogOption,
) *CatalogService {
	if zapLogger == nil {
		zapLogger = zap.NewNop()
	}
	s := &CatalogService{
		collection: pricebook.NewCollection(nil),
		store:      store,
		key:        key,
		publisher:  publisher,
		logger:     zapLogger,
		now:        time.Now,
		newID:      func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load reads the persisted collection. A missing, unreadable or empty
// snapshot is replaced by the seed catalog, which is then persisted
// through the usual change event. Load never fails.
func (s *CatalogService) Load(ctx context.Context) LoadSource {
	ctx, span := telemetry.StartServiceSpan(ctx, "catalog", "load")
	defer span.End()
	log := logger.WithLogger(ctx, s.logger).With(zap.String("snapshot_key", s.key))

	products, err := s.readSnapshot(ctx)
	if err == nil && len(products) > 0 {
		s.mu.Lock()
		s.collection = pricebook.NewCollection(products)
		s.mu.Unlock()
		log.Info("Catalog loaded", zap.Int("products", len(products)))
		return LoadedFromSnapshot
	}

	switch {
	case errors.Is(err, pricebook.ErrSnapshotNotFound):
		log.Info("No snapshot stored, using seed catalog")
	case err != nil:
		log.Warn("Snapshot unusable, using seed catalog", zap.Error(err))
	default:
		log.Warn("Snapshot is empty, using seed catalog")
	}

	seed := pricebook.SeedProducts(s.now().UnixMilli())
	s.mutate(ctx, pricebook.EventTypeCatalogReplaced, func(*pricebook.Collection) ([]string, bool) {
		s.collection = pricebook.NewCollection(seed)
		return nil, true
	})
	return LoadedFromSeed
}

func (s *CatalogService) readSnapshot(ctx context.Context) ([]pricebook.Product, error) {
	if s.store == nil {
		return nil, pricebook.ErrSnapshotNotFound
	}
	data, err := s.store.Load(ctx, s.key)
	if err != nil {
		return nil, err
	}
	return pricebook.DecodeSnapshot(data)
}

// mutate applies fn under the write lock. When fn reports a change the
// revision is bumped and the event published before the lock is released.
// fn returns the affected ids, or nil for a whole-collection change.
func (s *CatalogService) mutate(ctx context.Context, eventType string, fn func(c *pricebook.Collection) ([]string, bool)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids, changed := fn(s.collection)
	if !changed {
		return false
	}
	s.revision++
	if s.publisher == nil {
		return true
	}
	event := pricebook.NewCatalogChangedEvent(eventType, s.now(), s.revision, s.collection.Items(), ids...)
	if err := s.publisher.Publish(ctx, event); err != nil {
		logger.WithLogger(ctx, s.logger).Error("Failed to publish catalog event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
	}
	return true
}

// Revision counts committed mutations since the service was created.
func (s *CatalogService) Revision() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.revision
}

// List returns a copy of the whole collection, newest first.
func (s *CatalogService) List(ctx context.Context) []pricebook.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collection.Items()
}

// Filter returns the records matching query and category.
func (s *CatalogService) Filter(ctx context.Context, query string, category pricebook.Category) []pricebook.Product {
	return pricebook.Filter(s.List(ctx), query, category)
}

// Get returns one record.
func (s *CatalogService) Get(ctx context.Context, id string) (pricebook.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.collection.Get(id)
	if !ok {
		return pricebook.Product{}, pricebook.ErrProductNotFound
	}
	return p, nil
}

// Stats summarises the whole collection.
func (s *CatalogService) Stats(ctx context.Context) pricebook.Stats {
	return pricebook.ComputeStats(s.List(ctx))
}

// CatalogGauges implements telemetry.CatalogStatsProvider.
func (s *CatalogService) CatalogGauges(ctx context.Context) (int, float64) {
	st := s.Stats(ctx)
	return st.TotalItems, st.InventoryValue
}

// Create prepends a new record with a fresh id.
func (s *CatalogService) Create(ctx context.Context, fields pricebook.Fields) pricebook.Product {
	ctx, span := telemetry.StartServiceSpan(ctx, "catalog", "create")
	defer span.End()

	p := pricebook.NewProduct(s.newID(), fields, s.now().UnixMilli())
	s.mutate(ctx, pricebook.EventTypeProductCreated, func(c *pricebook.Collection) ([]string, bool) {
		c.Prepend(p)
		return []string{p.ID}, true
	})
	telemetry.SetAttribute(span, telemetry.SpanAttrProductID, p.ID)
	return p
}

// Update merges patch into a record. It reports false, with no error and
// no change, when id is unknown.
func (s *CatalogService) Update(ctx context.Context, id string, patch pricebook.Patch) (pricebook.Product, bool, error) {
	return s.Edit(ctx, id, func(f pricebook.Fields) (pricebook.Fields, error) {
		return f.Apply(patch)
	})
}

// Replace overwrites every editable field of a record.
func (s *CatalogService) Replace(ctx context.Context, id string, fields pricebook.Fields) (pricebook.Product, bool, error) {
	return s.Edit(ctx, id, func(pricebook.Fields) (pricebook.Fields, error) {
		return fields, nil
	})
}

// Edit runs fn on the current fields of a record and stores the result,
// all under the write lock. An error from fn leaves the record unchanged.
func (s *CatalogService) Edit(ctx context.Context, id string, fn func(pricebook.Fields) (pricebook.Fields, error)) (pricebook.Product, bool, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "catalog", "update",
		telemetry.WithAttribute(telemetry.SpanAttrProductID, id))
	defer span.End()

	var (
		out   pricebook.Product
		found bool
		err   error
	)
	s.mutate(ctx, pricebook.EventTypeProductUpdated, func(c *pricebook.Collection) ([]string, bool) {
		current, ok := c.Get(id)
		if !ok {
			return nil, false
		}
		found = true
		var fields pricebook.Fields
		if fields, err = fn(current.Fields); err != nil {
			return nil, false
		}
		out, _, _ = c.Replace(id, fields, s.now().UnixMilli())
		return []string{id}, true
	})
	if err != nil {
		telemetry.RecordError(span, err)
	}
	return out, found, err
}

// Delete removes a record and reports whether it existed.
func (s *CatalogService) Delete(ctx context.Context, id string) bool {
	ctx, span := telemetry.StartServiceSpan(ctx, "catalog", "delete",
		telemetry.WithAttribute(telemetry.SpanAttrProductID, id))
	defer span.End()

	return s.mutate(ctx, pricebook.EventTypeProductDeleted, func(c *pricebook.Collection) ([]string, bool) {
		return []string{id}, c.Delete(id)
	})
}

// PrependBatch inserts products at the front in their given order.
func (s *CatalogService) PrependBatch(ctx context.Context, products []pricebook.Product) {
	if len(products) == 0 {
		return
	}
	ids := make([]string, len(products))
	for i, p := range products {
		ids[i] = p.ID
	}
	s.mutate(ctx, pricebook.EventTypeBatchImported, func(c *pricebook.Collection) ([]string, bool) {
		c.Prepend(products...)
		return ids, true
	})
}
