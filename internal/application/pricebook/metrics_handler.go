package pricebook

import (
	"context"

	"github.com/pricebook/backend/internal/domain/pricebook"
	"github.com/pricebook/backend/internal/domain/shared"
	"github.com/pricebook/backend/internal/infrastructure/telemetry"
)

// CatalogMetricsHandler feeds catalog change events into business metrics.
type CatalogMetricsHandler struct {
	metrics *telemetry.BusinessMetrics
}

// NewCatalogMetricsHandler creates the handler.
func NewCatalogMetricsHandler(metrics *telemetry.BusinessMetrics) *CatalogMetricsHandler {
	return &CatalogMetricsHandler{metrics: metrics}
}

// EventTypes implements shared.EventHandler.
func (h *CatalogMetricsHandler) EventTypes() []string {
	return pricebook.CatalogEventTypes()
}

// Handle implements shared.EventHandler.
func (h *CatalogMetricsHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	changed, ok := event.(*pricebook.CatalogChangedEvent)
	if !ok {
		return nil
	}
	stats := pricebook.ComputeStats(changed.Snapshot)
	h.metrics.RecordCatalogChange(ctx, changed.EventType(), stats.TotalItems, stats.InventoryValue)
	return nil
}

var _ shared.EventHandler = (*CatalogMetricsHandler)(nil)
