package recognition

import (
	"errors"
	"net/http"
	"time"
)

const defaultGeminiModel = "gemini-2.5-flash"

// GeminiConfig contains configuration for the Gemini API
type GeminiConfig struct {
	// APIKey is the Gemini Developer API key
	APIKey string
	// Model is the model name, e.g. gemini-2.5-flash
	Model string
	// BaseURL overrides the API endpoint (tests, proxies)
	BaseURL string
	// Timeout bounds a single call when the caller's context has no deadline
	Timeout time.Duration
	// HTTPClient is optional
	HTTPClient *http.Client
}

// Errors for configuration validation
var (
	ErrGeminiMissingAPIKey = errors.New("gemini: missing API key")
)

// Validate validates the configuration and fills defaults
func (c *GeminiConfig) Validate() error {
	if c.APIKey == "" {
		return ErrGeminiMissingAPIKey
	}
	if c.Model == "" {
		c.Model = defaultGeminiModel
	}
	if c.Timeout <= 0 {
		c.Timeout = 60 * time.Second
	}
	return nil
}
