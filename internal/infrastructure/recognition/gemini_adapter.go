package recognition

import (
	"context"
	"fmt"

	"github.com/pricebook/backend/internal/domain/pricebook"
	"github.com/pricebook/backend/internal/infrastructure/logger"
	"github.com/pricebook/backend/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

// GeminiAdapter implements pricebook.Recognizer with the Gemini API.
// Calls are not retried or cached.
type GeminiAdapter struct {
	config *GeminiConfig
	client *genai.Client
	logger *zap.Logger
}

var _ pricebook.Recognizer = (*GeminiAdapter)(nil)

// NewGeminiAdapter creates a new Gemini adapter
func NewGeminiAdapter(ctx context.Context, config *GeminiConfig, zapLogger *zap.Logger) (*GeminiAdapter, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if zapLogger == nil {
		zapLogger = zap.NewNop()
	}

	clientCfg := &genai.ClientConfig{
		APIKey:     config.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: config.HTTPClient,
	}
	if config.BaseURL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: config.BaseURL}
	}
	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiAdapter{
		config: config,
		client: client,
		logger: zapLogger.Named("gemini"),
	}, nil
}

// Recognize sends the photo and the price-sheet instruction in one request
// and decodes the structured JSON answer.
func (a *GeminiAdapter) Recognize(ctx context.Context, img pricebook.Image) ([]pricebook.CandidateRow, error) {
	ctx, span := telemetry.StartSpan(ctx, "gemini.generate_content",
		telemetry.WithSpanKind(trace.SpanKindClient),
		telemetry.WithAttribute(telemetry.SpanAttrModel, a.config.Model),
		telemetry.WithAttribute(telemetry.SpanAttrImageBytes, len(img.Data)),
	)
	defer span.End()

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.config.Timeout)
		defer cancel()
	}

	mimeType := img.MIMEType
	if mimeType == "" {
		mimeType = DefaultMIMEType
	}
	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromBytes(img.Data, mimeType),
			genai.NewPartFromText(priceSheetPrompt),
		}, genai.RoleUser),
	}
	cfg := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   priceSheetSchema(),
	}

	resp, err := a.client.Models.GenerateContent(ctx, a.config.Model, contents, cfg)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("%w: %v", pricebook.ErrRecognitionFailed, err)
	}

	rows, err := decodeRows(resp.Text())
	if err != nil {
		telemetry.RecordError(span, err)
		logger.WithLogger(ctx, a.logger).Warn("Unparseable recognition response", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", pricebook.ErrRecognitionFailed, err)
	}
	if len(rows) == 0 {
		return nil, pricebook.ErrNothingRecognized
	}

	telemetry.SetAttribute(span, telemetry.SpanAttrRowCount, len(rows))
	return rows, nil
}
