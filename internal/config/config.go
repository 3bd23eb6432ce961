package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the configuration settings for the route generation service.
//
// Fields:
// - Env: The current environment (e.g., local, development, production).
// - Port: The port for the monitoring server (/healthz, /metrics).
// - APIPort: The port for the route generation HTTP API.
// - MapsAPIKey: The API key for the Google Maps services (geocoding, places, directions).
// - SelectorType: Which waypoint selector backend to use (gemini, static).
// - SelectorAPIKey: The API key for the Generative Language API.
// - SelectorModel: The model identifier for the Gemini backend.
// - SelectorRateLimit: Requests per second allowed against the selector backend.
// - AIEnabled: Availability flag for the whole route generation feature.
// - StageTimeout: The per-call deadline for each external stage.
// - PipelineTimeout: The overall deadline for one generation run.
// - MaxRetries: Bounded retries on transient geocode/place-search failures.
type Config struct {
	Env               string        // Env is the current environment: local, development, production.
	Port              int           // Port is the monitoring server port.
	APIPort           int           // APIPort is the route generation API port.
	MapsAPIKey        string        // The API key for the Google Maps services.
	SelectorType      string        // SelectorType specifies which selector backend to use.
	SelectorAPIKey    string        // The API key for the Generative Language API.
	SelectorModel     string        // The Gemini model identifier.
	SelectorRateLimit int           // Requests per second against the selector backend.
	AIEnabled         bool          // AIEnabled gates route generation as a whole.
	StageTimeout      time.Duration // Per-stage external call deadline.
	PipelineTimeout   time.Duration // Overall pipeline deadline.
	MaxRetries        uint64        // Transient-failure retries for geocode and place search.
}

// MustLoad loads the configuration from environment variables and returns a
// Config struct. It panics when a numeric or duration value is malformed.
func MustLoad() *Config {
	_ = godotenv.Load()

	healthPort, err := strconv.Atoi(setDefaultEnv("ROUTEGEN_HEALTH_PORT", "8080"))
	if err != nil {
		panic("failed to parse port for monitoring server from configuration")
	}

	apiPort, err := strconv.Atoi(setDefaultEnv("ROUTEGEN_API_PORT", "8081"))
	if err != nil {
		panic("failed to parse port for the API server from configuration")
	}

	stageTimeout, err := time.ParseDuration(setDefaultEnv("ROUTEGEN_STAGE_TIMEOUT", "10s"))
	if err != nil {
		panic("failed to parse stage timeout from configuration")
	}

	pipelineTimeout, err := time.ParseDuration(setDefaultEnv("ROUTEGEN_PIPELINE_TIMEOUT", "60s"))
	if err != nil {
		panic("failed to parse pipeline timeout from configuration")
	}

	retries, err := strconv.ParseUint(setDefaultEnv("ROUTEGEN_MAX_RETRIES", "2"), 10, 64)
	if err != nil {
		panic("failed to parse max retries from configuration, must be an integer")
	}

	rateLimit, err := strconv.Atoi(setDefaultEnv("ROUTEGEN_SELECTOR_RATE_LIMIT", "1"))
	if err != nil {
		panic("failed to parse selector rate limit from configuration, must be an integer")
	}

	aiEnabled, err := strconv.ParseBool(setDefaultEnv("ROUTEGEN_AI_ENABLED", "true"))
	if err != nil {
		panic("failed to parse AI enabled flag from configuration, must be a boolean")
	}

	return &Config{
		Env:               setDefaultEnv("ROUTEGEN_ENV", "production"),
		Port:              healthPort,
		APIPort:           apiPort,
		MapsAPIKey:        os.Getenv("ROUTEGEN_MAPS_API_KEY"),
		SelectorType:      setDefaultEnv("ROUTEGEN_SELECTOR_TYPE", "gemini"),
		SelectorAPIKey:    os.Getenv("ROUTEGEN_SELECTOR_API_KEY"),
		SelectorModel:     setDefaultEnv("ROUTEGEN_SELECTOR_MODEL", "gemini-1.5-flash"),
		SelectorRateLimit: rateLimit,
		AIEnabled:         aiEnabled,
		StageTimeout:      stageTimeout,
		PipelineTimeout:   pipelineTimeout,
		MaxRetries:        retries,
	}
}

func setDefaultEnv(key, override string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		value = override
	}

	return value
}
