package pricebook

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pricebook/backend/internal/domain/pricebook"
	"github.com/pricebook/backend/internal/infrastructure/logger"
	"github.com/pricebook/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
)

// ReviewSettings configures a ReviewService.
type ReviewSettings struct {
	TTL                time.Duration
	PlaceholderName    string
	RecognitionTimeout time.Duration
}

// ReviewService runs the batch import workflow: rows come from a photo or
// a CSV sheet, are corrected in an open review, and reach the catalog only
// on confirmation.
type ReviewService struct {
	store      pricebook.ReviewStore
	catalog    *CatalogService
	recognizer pricebook.Recognizer
	parser     pricebook.SheetParser
	metrics    *telemetry.BusinessMetrics
	logger     *zap.Logger
	settings   ReviewSettings

	// one recognition at a time
	inflight *semaphore.Weighted
	// serialises read-modify-write of open reviews
	editMu sync.Mutex

	now   func() time.Time
	newID func() string
}

// ReviewOption configures a ReviewService.
type ReviewOption func(*ReviewService)

// WithReviewClock overrides time.Now.
func WithReviewClock(now func() time.Time) ReviewOption {
	return func(s *ReviewService) { s.now = now }
}

// WithReviewIDGenerator overrides the UUID generator used for reviews and
// the products they create.
func WithReviewIDGenerator(newID func() string) ReviewOption {
	return func(s *ReviewService) { s.newID = newID }
}

// WithReviewMetrics records recognition and import metrics.
func WithReviewMetrics(metrics *telemetry.BusinessMetrics) ReviewOption {
	return func(s *ReviewService) { s.metrics = metrics }
}

// NewReviewService creates a ReviewService.
func NewReviewService(
	store pricebook.ReviewStore,
	catalog *CatalogService,
	recognizer pricebook.Recognizer,
	parser pricebook.SheetParser,
	settings ReviewSettings,
	zapLogger *zap.Logger,
	opts ...ReviewOption,
) *ReviewService {
	if zapLogger == nil {
		zapLogger = zap.NewNop()
	}
	if settings.PlaceholderName == "" {
		settings.PlaceholderName = "未命名商品"
	}
	s := &ReviewService{
		store:      store,
		catalog:    catalog,
		recognizer: recognizer,
		parser:     parser,
		logger:     zapLogger,
		settings:   settings,
		inflight:   semaphore.NewWeighted(1),
		now:        time.Now,
		newID:      func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// StartFromImage recognises a price-sheet photo and opens a review with the
// rows found. Only one recognition runs at a time; a second call fails
// with ErrRecognitionInFlight instead of waiting.
func (s *ReviewService) StartFromImage(ctx context.Context, img pricebook.Image) (*pricebook.Review, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "review", "recognize",
		telemetry.WithAttribute(telemetry.SpanAttrImageBytes, len(img.Data)))
	defer span.End()
	log := logger.WithLogger(ctx, s.logger)

	if !s.inflight.TryAcquire(1) {
		s.recordRecognition(ctx, telemetry.RecognitionRejected, 0)
		return nil, pricebook.ErrRecognitionInFlight
	}
	defer s.inflight.Release(1)

	callCtx := ctx
	if s.settings.RecognitionTimeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, s.settings.RecognitionTimeout)
		defer cancel()
	}

	start := time.Now()
	rows, err := s.recognizer.Recognize(callCtx, img)
	elapsed := time.Since(start)
	if err == nil && len(rows) == 0 {
		err = pricebook.ErrNothingRecognized
	}

	switch {
	case errors.Is(err, pricebook.ErrNothingRecognized):
		s.recordRecognition(ctx, telemetry.RecognitionEmpty, elapsed)
		log.Info("Recognition found no products", zap.Duration("elapsed", elapsed))
		return nil, pricebook.ErrNothingRecognized
	case err != nil:
		s.recordRecognition(ctx, telemetry.RecognitionFailed, elapsed)
		telemetry.RecordError(span, err)
		log.Warn("Recognition failed", zap.Duration("elapsed", elapsed), zap.Error(err))
		if errors.Is(err, pricebook.ErrRecognitionFailed) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", pricebook.ErrRecognitionFailed, err)
	}

	s.recordRecognition(ctx, telemetry.RecognitionSucceeded, elapsed)
	telemetry.SetAttribute(span, telemetry.SpanAttrRowCount, len(rows))
	return s.open(ctx, pricebook.ReviewSourceImage, rows)
}

// StartFromCSV parses a price sheet and opens a review with its rows.
func (s *ReviewService) StartFromCSV(ctx context.Context, r io.Reader) (*pricebook.Review, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "review", "parse_csv")
	defer span.End()

	rows, err := s.parser.Parse(r)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	telemetry.SetAttribute(span, telemetry.SpanAttrRowCount, len(rows))
	return s.open(ctx, pricebook.ReviewSourceCSV, rows)
}

func (s *ReviewService) open(ctx context.Context, source pricebook.ReviewSource, rows []pricebook.CandidateRow) (*pricebook.Review, error) {
	review, err := pricebook.NewReview(s.newID(), source, rows, s.now())
	if err != nil {
		return nil, err
	}
	if err := s.store.Put(ctx, review, s.settings.TTL); err != nil {
		return nil, fmt.Errorf("failed to open review: %w", err)
	}
	logger.WithLogger(ctx, s.logger).Info("Review opened",
		zap.String("review_id", review.ID),
		zap.String("source", string(source)),
		zap.Int("rows", len(review.Rows)),
	)
	return review, nil
}

// Get returns an open review.
func (s *ReviewService) Get(ctx context.Context, id string) (*pricebook.Review, error) {
	return s.store.Get(ctx, id)
}

// EditField replaces one field of one row. Each edit renews the review's
// expiry.
func (s *ReviewService) EditField(ctx context.Context, id string, index int, field string, value any) (*pricebook.Review, error) {
	return s.modify(ctx, id, func(r *pricebook.Review) error {
		return r.EditField(index, field, value)
	})
}

// RemoveRow drops one row from an open review.
func (s *ReviewService) RemoveRow(ctx context.Context, id string, index int) (*pricebook.Review, error) {
	return s.modify(ctx, id, func(r *pricebook.Review) error {
		return r.RemoveRow(index)
	})
}

func (s *ReviewService) modify(ctx context.Context, id string, fn func(*pricebook.Review) error) (*pricebook.Review, error) {
	s.editMu.Lock()
	defer s.editMu.Unlock()

	review, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(review); err != nil {
		return nil, err
	}
	if err := s.store.Put(ctx, review, s.settings.TTL); err != nil {
		return nil, fmt.Errorf("failed to save review: %w", err)
	}
	return review, nil
}

// Confirm closes the review and prepends every remaining row to the
// catalog as a new product, in row order. A review can be confirmed once.
func (s *ReviewService) Confirm(ctx context.Context, id string) ([]pricebook.Product, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "review", "confirm",
		telemetry.WithAttribute(telemetry.SpanAttrReviewID, id))
	defer span.End()

	s.editMu.Lock()
	review, err := s.store.Take(ctx, id)
	s.editMu.Unlock()
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	products := review.Materialize(s.newID, s.now().UnixMilli(), s.settings.PlaceholderName)
	s.catalog.PrependBatch(ctx, products)

	if s.metrics != nil {
		s.metrics.RecordImport(ctx, string(review.Source), len(products))
	}
	telemetry.SetAttributes(span,
		telemetry.SpanAttrRowCount, len(products),
		telemetry.SpanAttrSource, string(review.Source),
	)
	logger.WithLogger(ctx, s.logger).Info("Review confirmed",
		zap.String("review_id", id),
		zap.String("source", string(review.Source)),
		zap.Int("products", len(products)),
	)
	return products, nil
}

// Cancel discards an open review. The catalog is never touched.
func (s *ReviewService) Cancel(ctx context.Context, id string) error {
	s.editMu.Lock()
	defer s.editMu.Unlock()

	removed, err := s.store.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !removed {
		return pricebook.ErrReviewNotFound
	}
	return nil
}

func (s *ReviewService) recordRecognition(ctx context.Context, outcome telemetry.RecognitionOutcome, d time.Duration) {
	if s.metrics != nil {
		s.metrics.RecordRecognition(ctx, outcome, d)
	}
}
