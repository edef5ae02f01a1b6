package telemetry

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// BusinessMetrics tracks catalog mutations, batch imports and recognition
// calls, and samples catalog-wide gauges.
type BusinessMetrics struct {
	meter  metric.Meter
	logger *zap.Logger

	catalogChangesTotal   *Counter
	productsImportedTotal *Counter
	recognitionTotal      *Counter
	snapshotFailuresTotal *Counter
	recognitionDuration   *Histogram

	catalogProducts       *Gauge
	catalogInventoryValue *FloatGauge

	stopChan    chan struct{}
	stopOnce    sync.Once
	collectOnce sync.Once

	statsProvider CatalogStatsProvider
}

// CatalogStatsProvider reports the current catalog size and inventory value
// for periodic gauge collection.
type CatalogStatsProvider interface {
	CatalogGauges(ctx context.Context) (products int, inventoryValue float64)
}

// BusinessMetricsConfig holds configuration for business metrics.
type BusinessMetricsConfig struct {
	Meter         metric.Meter
	Logger        *zap.Logger
	StatsProvider CatalogStatsProvider
}

// RecognitionOutcome labels a recognition attempt.
type RecognitionOutcome string

const (
	RecognitionSucceeded RecognitionOutcome = "success"
	RecognitionEmpty     RecognitionOutcome = "empty"
	RecognitionFailed    RecognitionOutcome = "failed"
	RecognitionRejected  RecognitionOutcome = "rejected"
)

// NewBusinessMetrics creates a new BusinessMetrics instance.
func NewBusinessMetrics(cfg BusinessMetricsConfig) (*BusinessMetrics, error) {
	if cfg.Meter == nil {
		return nil, ErrMeterNil
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	bm := &BusinessMetrics{
		meter:         cfg.Meter,
		logger:        logger,
		stopChan:      make(chan struct{}),
		statsProvider: cfg.StatsProvider,
	}

	var err error
	bm.catalogChangesTotal, err = NewCounter(cfg.Meter,
		"pricebook_catalog_changes_total",
		"Total number of catalog mutations by event type",
		"{changes}",
	)
	if err != nil {
		return nil, err
	}

	bm.productsImportedTotal, err = NewCounter(cfg.Meter,
		"pricebook_products_imported_total",
		"Total number of products materialized from confirmed reviews",
		"{products}",
	)
	if err != nil {
		return nil, err
	}

	bm.recognitionTotal, err = NewCounter(cfg.Meter,
		"pricebook_recognition_total",
		"Total number of price-sheet recognition attempts by outcome",
		"{requests}",
	)
	if err != nil {
		return nil, err
	}

	bm.snapshotFailuresTotal, err = NewCounter(cfg.Meter,
		"pricebook_snapshot_write_failures_total",
		"Total number of snapshot writes that failed",
		"{writes}",
	)
	if err != nil {
		return nil, err
	}

	bm.recognitionDuration, err = NewHistogram(cfg.Meter, HistogramOpts{
		Name:        "pricebook_recognition_duration_seconds",
		Description: "Latency of recognition model calls",
		Unit:        "s",
		Boundaries:  RecognitionDurationBuckets,
	})
	if err != nil {
		return nil, err
	}

	bm.catalogProducts, err = NewGauge(cfg.Meter,
		"pricebook_catalog_products",
		"Number of products in the catalog",
		"{products}",
	)
	if err != nil {
		return nil, err
	}

	bm.catalogInventoryValue, err = NewFloatGauge(cfg.Meter,
		"pricebook_catalog_inventory_value",
		"Sum of unit costs across the catalog",
		"{currency}",
	)
	if err != nil {
		return nil, err
	}

	return bm, nil
}

// RecordCatalogChange counts one mutation and refreshes the catalog gauges.
func (bm *BusinessMetrics) RecordCatalogChange(ctx context.Context, eventType string, products int, inventoryValue float64) {
	bm.catalogChangesTotal.Inc(ctx, AttrEventType.String(eventType))
	bm.RecordCatalogGauges(ctx, products, inventoryValue)
}

// RecordCatalogGauges sets the catalog size and inventory value gauges.
func (bm *BusinessMetrics) RecordCatalogGauges(ctx context.Context, products int, inventoryValue float64) {
	bm.catalogProducts.Record(ctx, int64(products))
	bm.catalogInventoryValue.Record(ctx, inventoryValue)
}

// RecordImport counts products created by confirming a review.
func (bm *BusinessMetrics) RecordImport(ctx context.Context, source string, rows int) {
	bm.productsImportedTotal.Add(ctx, int64(rows), AttrReviewSource.String(source))
}

// RecordRecognition counts a recognition attempt and, unless it was
// rejected before reaching the provider, its latency.
func (bm *BusinessMetrics) RecordRecognition(ctx context.Context, outcome RecognitionOutcome, d time.Duration) {
	bm.recognitionTotal.Inc(ctx, AttrOutcome.String(string(outcome)))
	if outcome != RecognitionRejected {
		bm.recognitionDuration.RecordDuration(ctx, d, AttrOutcome.String(string(outcome)))
	}
}

// RecordSnapshotFailure counts a failed snapshot write.
func (bm *BusinessMetrics) RecordSnapshotFailure(ctx context.Context, driver string) {
	bm.snapshotFailuresTotal.Inc(ctx, AttrStoreDriver.String(driver))
}

// StartPeriodicCollection samples the catalog gauges every interval
// (default 1 minute) until Stop is called or ctx is cancelled.
func (bm *BusinessMetrics) StartPeriodicCollection(ctx context.Context, interval time.Duration) {
	bm.collectOnce.Do(func() {
		if interval <= 0 {
			interval = time.Minute
		}
		go bm.runPeriodicCollection(ctx, interval)
	})
}

func (bm *BusinessMetrics) runPeriodicCollection(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	bm.collectCatalogGauges(ctx)

	for {
		select {
		case <-bm.stopChan:
			bm.logger.Info("Stopping periodic business metrics collection")
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			bm.collectCatalogGauges(ctx)
		}
	}
}

func (bm *BusinessMetrics) collectCatalogGauges(ctx context.Context) {
	if bm.statsProvider == nil {
		return
	}
	products, value := bm.statsProvider.CatalogGauges(ctx)
	bm.RecordCatalogGauges(ctx, products, value)
}

// Stop stops the periodic collection.
func (bm *BusinessMetrics) Stop() {
	bm.stopOnce.Do(func() {
		close(bm.stopChan)
	})
}

// ErrMeterNil is returned when meter is nil.
var ErrMeterNil = &MetricsError{Op: "NewBusinessMetrics", Err: "meter cannot be nil"}

// MetricsError represents a metrics-related error.
type MetricsError struct {
	Op  string
	Err string
}

func (e *MetricsError) Error() string {
	return e.Op + ": " + e.Err
}
