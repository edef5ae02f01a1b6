package telemetry_test

import (
	"context"
	"testing"
	"time"

	"github.com/pricebook/backend/internal/infrastructure/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.uber.org/zap/zaptest"
)

func TestNewMeterProvider_Disabled(t *testing.T) {
	ctx := context.Background()
	mp, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:     false,
		ServiceName: "pricebook-test",
	}, zaptest.NewLogger(t))
	require.NoError(t, err)

	assert.False(t, mp.IsEnabled())
	assert.NotNil(t, mp.Meter("test"))
	assert.NoError(t, mp.ForceFlush(ctx))
	assert.NoError(t, mp.Shutdown(ctx))
}

func TestNewMeterProvider_Enabled(t *testing.T) {
	ctx := context.Background()
	mp, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:           true,
		CollectorEndpoint: "localhost:14317",
		ServiceName:       "pricebook-test",
		Insecure:          true,
		ExportInterval:    time.Hour,
	}, zaptest.NewLogger(t))
	require.NoError(t, err)

	assert.True(t, mp.IsEnabled())
	// nothing listens on the endpoint; shutdown may report the failed export
	_ = mp.Shutdown(ctx)
}

func TestHistogram_Boundaries(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer provider.Shutdown(context.Background())

	h, err := telemetry.NewHistogram(provider.Meter("test"), telemetry.HistogramOpts{
		Name:       "recognition_seconds",
		Unit:       "s",
		Boundaries: telemetry.RecognitionDurationBuckets,
	})
	require.NoError(t, err)

	h.RecordDuration(context.Background(), 1500*time.Millisecond)
	h.Record(context.Background(), 45)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	hist := rm.ScopeMetrics[0].Metrics[0].Data.(metricdata.Histogram[float64])
	require.Len(t, hist.DataPoints, 1)
	assert.Equal(t, telemetry.RecognitionDurationBuckets, hist.DataPoints[0].Bounds)
	assert.Equal(t, uint64(2), hist.DataPoints[0].Count)
}

func TestCounterAndGauges(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer provider.Shutdown(context.Background())
	meter := provider.Meter("test")
	ctx := context.Background()

	c, err := telemetry.NewCounter(meter, "requests", "", "{request}")
	require.NoError(t, err)
	c.Add(ctx, 2, telemetry.AttrHTTPMethod.String("GET"))
	c.Inc(ctx, telemetry.AttrHTTPMethod.String("GET"))

	g, err := telemetry.NewGauge(meter, "products", "", "{products}")
	require.NoError(t, err)
	g.Record(ctx, 3)
	g.Record(ctx, 7)

	fg, err := telemetry.NewFloatGauge(meter, "value", "", "{currency}")
	require.NoError(t, err)
	fg.Record(ctx, 12.5)

	data := collect(t, reader)
	assert.Equal(t, int64(3), sumFor(t, data["requests"], telemetry.AttrHTTPMethod.String("GET")))
	assert.Equal(t, int64(7), data["products"].(metricdata.Gauge[int64]).DataPoints[0].Value)
	assert.Equal(t, 12.5, data["value"].(metricdata.Gauge[float64]).DataPoints[0].Value)
}
