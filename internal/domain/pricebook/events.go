package pricebook

import (
	"time"

	"github.com/pricebook/backend/internal/domain/shared"
)

const AggregateTypeCatalog = "Catalog"

const (
	EventTypeProductCreated  = "ProductCreated"
	EventTypeProductUpdated  = "ProductUpdated"
	EventTypeProductDeleted  = "ProductDeleted"
	EventTypeBatchImported   = "ProductBatchImported"
	EventTypeCatalogReplaced = "CatalogReplaced"
)

// CatalogEventTypes lists every event that changes the collection.
func CatalogEventTypes() []string {
	return []string{
		EventTypeProductCreated,
		EventTypeProductUpdated,
		EventTypeProductDeleted,
		EventTypeBatchImported,
		EventTypeCatalogReplaced,
	}
}

// CatalogChangedEvent is published after every successful mutation. It
// carries the full collection as it stood right after the change.
type CatalogChangedEvent struct {
	shared.BaseDomainEvent
	ProductIDs []string  `json:"product_ids"`
	Revision   uint64    `json:"revision"`
	Snapshot   []Product `json:"-"`
}

// NewCatalogChangedEvent creates a change event of the given type.
func NewCatalogChangedEvent(eventType string, at time.Time, revision uint64, snapshot []Product, ids ...string) *CatalogChangedEvent {
	return &CatalogChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, AggregateTypeCatalog, at),
		ProductIDs:      ids,
		Revision:        revision,
		Snapshot:        snapshot,
	}
}
