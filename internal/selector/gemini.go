package selector

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/pawpath/routegen/internal/faults"
	"github.com/pawpath/routegen/internal/models"
	"golang.org/x/time/rate"
)

// GeminiBaseURL is the Generative Language API base URL.
const GeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// HTTPClient defines the interface for making HTTP requests.
// This allows for easy mocking in tests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// GeminiSelector asks a Gemini model to pick and order waypoints from the
// candidate places. The model's output is untrusted and goes through strict
// schema validation before anything downstream sees it.
type GeminiSelector struct {
	client  HTTPClient    // HTTP client for making requests
	baseURL string        // Base URL for the Generative Language API
	model   string        // Model identifier, e.g. "gemini-1.5-flash"
	apiKey  string        // API key with Generative Language access
	log     *slog.Logger  // Logger for logging operations
	limiter *rate.Limiter // Rate limiter
}

// Wire shapes for the generateContent endpoint.
type geminiRequest struct {
	Contents         []geminiContent        `json:"contents"`
	GenerationConfig geminiGenerationConfig `json:"generationConfig"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenerationConfig struct {
	ResponseMIMEType string `json:"responseMimeType,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

// NewGeminiSelector creates a Gemini-backed waypoint selector.
func NewGeminiSelector(apiKey, model string, rateLimit int, log *slog.Logger) *GeminiSelector {
	const timeout = 30

	return &GeminiSelector{
		client: &http.Client{
			Timeout: timeout * time.Second,
		},
		baseURL: GeminiBaseURL,
		model:   model,
		apiKey:  apiKey,
		log:     log,
		limiter: rate.NewLimiter(rate.Limit(rateLimit), rateLimit),
	}
}

// NewGeminiSelectorWithClient allows injecting a custom HTTP client.
func NewGeminiSelectorWithClient(
	client HTTPClient,
	apiKey, model string,
	limiter *rate.Limiter,
	log *slog.Logger,
) *GeminiSelector {
	return &GeminiSelector{
		client:  client,
		baseURL: GeminiBaseURL,
		model:   model,
		apiKey:  apiKey,
		log:     log,
		limiter: limiter,
	}
}

// Select sends the candidates and preferences to the model and validates the
// returned proposal. Transport and API failures map to ErrTransient; any
// output that fails schema validation maps to ErrMalformedSelection. No
// retry happens here: a caller wanting a different route calls again.
func (gs *GeminiSelector) Select(
	ctx context.Context,
	origin models.Coordinates,
	candidates []models.Place,
	prefs models.RoutePreferences,
) (*Proposal, error) {
	if err := gs.limiter.Wait(ctx); err != nil {
		return nil, faults.Wrapf(faults.ErrTransient, err, "rate limit wait interrupted")
	}

	prompt := buildPrompt(origin, candidates, prefs)
	gs.log.DebugContext(ctx, "Requesting waypoint selection", "model", gs.model, "candidates", len(candidates))

	payload := geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
		GenerationConfig: geminiGenerationConfig{
			ResponseMIMEType: "application/json",
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode selection request: %w", err)
	}

	reqURL := fmt.Sprintf("%s/models/%s:generateContent?key=%s", gs.baseURL, gs.model, gs.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := gs.client.Do(req)
	if err != nil {
		return nil, faults.Wrapf(faults.ErrTransient, err, "failed to execute selection request")
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, faults.Wrapf(faults.ErrTransient, err, "failed to read selection response")
	}

	if resp.StatusCode != http.StatusOK {
		gs.log.ErrorContext(ctx, "Selection API error", "status", resp.StatusCode, "body", string(respBody))
		return nil, faults.Wrapf(faults.ErrTransient, nil,
			"selection API returned status %d", resp.StatusCode)
	}

	var apiResp geminiResponse
	if err = json.Unmarshal(respBody, &apiResp); err != nil {
		return nil, faults.Wrapf(faults.ErrMalformedSelection, err, "failed to decode selection response")
	}
	if len(apiResp.Candidates) == 0 || len(apiResp.Candidates[0].Content.Parts) == 0 {
		return nil, faults.Wrapf(faults.ErrMalformedSelection, nil, "selection response has no candidates")
	}

	text := apiResp.Candidates[0].Content.Parts[0].Text
	gs.log.DebugContext(ctx, "Selection raw proposal", "body", text)

	var raw rawProposal
	if err = json.Unmarshal([]byte(stripCodeFence(text)), &raw); err != nil {
		return nil, faults.Wrapf(faults.ErrMalformedSelection, err, "proposal is not valid JSON")
	}

	return buildProposal(raw, prefs)
}

// buildPrompt renders the structured prompt: origin, requested distance,
// required categories, freeform wishes, and the candidate list with
// coordinates, ratings and distances.
func buildPrompt(origin models.Coordinates, candidates []models.Place, prefs models.RoutePreferences) string {
	var sb strings.Builder

	sb.WriteString("You plan dog walking routes. Pick an ordered sequence of waypoints ")
	sb.WriteString("from the candidate places below, starting at the origin.\n\n")
	fmt.Fprintf(&sb, "Origin: %f,%f\n", origin.Latitude, origin.Longitude)
	fmt.Fprintf(&sb, "Requested distance: %.1f km\n", prefs.RequestedDistanceKm)
	if prefs.Circular {
		sb.WriteString("The route must be circular: the final waypoint must repeat the origin coordinates.\n")
	}
	if len(prefs.MustInclude) > 0 {
		sb.WriteString("The route must visit at least one place of each category: ")
		for i, cat := range prefs.MustInclude {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(string(cat))
		}
		sb.WriteString("\n")
	}
	for _, pref := range prefs.Freeform {
		fmt.Fprintf(&sb, "User preference: %s\n", pref)
	}

	sb.WriteString("\nCandidate places:\n")
	for _, place := range candidates {
		fmt.Fprintf(&sb, "- %s (%s) at %f,%f", place.Name, place.Category,
			place.Location.Latitude, place.Location.Longitude)
		if place.Rated {
			fmt.Fprintf(&sb, ", rated %.1f by %d", place.Rating, place.RatingCount)
		}
		fmt.Fprintf(&sb, ", %.0fm from origin\n", place.DistanceFromOrigin)
	}

	sb.WriteString("\nRespond with a single JSON object, no prose, in this shape:\n")
	sb.WriteString(`{"routeName": string, "waypoints": [{"lat": number, "lng": number, ` +
		`"name": string, "role": "start"|"poi"|"end", "category": string}], ` +
		`"estimatedDistance": string, "highlights": string}` + "\n")
	sb.WriteString("The first waypoint must be the origin with role \"start\".\n")

	return sb.String()
}

// stripCodeFence removes a markdown code fence the model sometimes wraps
// around its JSON despite the response MIME type.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
