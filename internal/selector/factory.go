package selector

import (
	"errors"
	"fmt"
	"log/slog"
)

// BackendType represents the type of selector backend.
type BackendType string

const (
	// BackendTypeGemini represents the Gemini-backed selector.
	BackendTypeGemini BackendType = "gemini"
	// BackendTypeStatic represents the deterministic local selector.
	BackendTypeStatic BackendType = "static"
)

// BackendConfig holds configuration for creating a selector backend.
type BackendConfig struct {
	Type      BackendType  // Type of backend to create
	APIKey    string       // API key (used by the Gemini backend)
	Model     string       // Model identifier (used by the Gemini backend)
	RateLimit int          // Requests per second (used by the Gemini backend)
	Logger    *slog.Logger // Logger for the backend
}

// defaultStaticStops caps the static backend's route length.
const defaultStaticStops = 4

// NewBackend creates a selector backend based on the provided configuration.
// Returns an error if the backend type is unsupported or misconfigured.
func NewBackend(config BackendConfig) (Selector, error) {
	switch config.Type {
	case BackendTypeGemini:
		if config.APIKey == "" {
			return nil, errors.New("API key is required for the Gemini backend")
		}
		if config.Model == "" {
			return nil, errors.New("model name is required for the Gemini backend")
		}
		if config.RateLimit == 0 {
			config.RateLimit = 1
			config.Logger.Warn("Rate limit for selector not set, set a default value", "value", config.RateLimit)
		}
		return NewGeminiSelector(config.APIKey, config.Model, config.RateLimit, config.Logger), nil
	case BackendTypeStatic:
		return NewStaticSelector(defaultStaticStops, config.Logger), nil
	default:
		return nil, fmt.Errorf("unsupported selector backend type: %s", config.Type)
	}
}
