package pricebook

import (
	"context"
	"io"
	"sync"
	"testing"

	"github.com/pricebook/backend/internal/domain/pricebook"
	"github.com/pricebook/backend/internal/domain/shared"
	"github.com/pricebook/backend/internal/infrastructure/telemetry"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

// MockSnapshotStore is a mock implementation of pricebook.SnapshotStore
type MockSnapshotStore struct {
	mock.Mock
}

func (m *MockSnapshotStore) Load(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockSnapshotStore) Save(ctx context.Context, key string, payload []byte) error {
	args := m.Called(ctx, key, payload)
	return args.Error(0)
}

func (m *MockSnapshotStore) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockSnapshotStore) Close() error {
	return m.Called().Error(0)
}

// MockRecognizer is a mock implementation of pricebook.Recognizer
type MockRecognizer struct {
	mock.Mock
}

func (m *MockRecognizer) Recognize(ctx context.Context, img pricebook.Image) ([]pricebook.CandidateRow, error) {
	args := m.Called(ctx, img)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]pricebook.CandidateRow), args.Error(1)
}

// MockSheetParser is a mock implementation of pricebook.SheetParser
type MockSheetParser struct {
	mock.Mock
}

func (m *MockSheetParser) Parse(r io.Reader) ([]pricebook.CandidateRow, error) {
	args := m.Called(r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]pricebook.CandidateRow), args.Error(1)
}

// recordingPublisher keeps every published catalog event in order.
type recordingPublisher struct {
	mu     sync.Mutex
	events []*pricebook.CatalogChangedEvent
}

func (p *recordingPublisher) Publish(_ context.Context, events ...shared.DomainEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, e := range events {
		if changed, ok := e.(*pricebook.CatalogChangedEvent); ok {
			p.events = append(p.events, changed)
		}
	}
	return nil
}

func (p *recordingPublisher) Events() []*pricebook.CatalogChangedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]*pricebook.CatalogChangedEvent(nil), p.events...)
}

func (p *recordingPublisher) Last() *pricebook.CatalogChangedEvent {
	events := p.Events()
	if len(events) == 0 {
		return nil
	}
	return events[len(events)-1]
}

func newTestMetrics(t *testing.T) (*telemetry.BusinessMetrics, *sdkmetric.ManualReader) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })

	bm, err := telemetry.NewBusinessMetrics(telemetry.BusinessMetricsConfig{Meter: mp.Meter("test")})
	require.NoError(t, err)
	return bm, reader
}

// counterValue sums every data point of an int64 counter whose attribute
// key equals value.
func counterValue(t *testing.T, reader *sdkmetric.ManualReader, name string, key attribute.Key, value string) int64 {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	var total int64
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != name {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok)
			for _, dp := range sum.DataPoints {
				if v, ok := dp.Attributes.Value(key); ok && v.AsString() == value {
					total += dp.Value
				}
			}
		}
	}
	return total
}
