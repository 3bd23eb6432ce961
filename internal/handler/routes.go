// Package handler exposes the route generation pipeline over HTTP.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pawpath/routegen/internal/faults"
	"github.com/pawpath/routegen/internal/models"
)

// RouteGenerator is the operation the UI layer consumes. The authenticated
// identity is passed in per request, never read from ambient state.
type RouteGenerator interface {
	GenerateRoute(
		ctx context.Context,
		identity string,
		locationText string,
		prefs models.RoutePreferences,
	) (*models.RouteRecommendation, error)
}

// RouteHandler handles HTTP requests for route generation.
type RouteHandler struct {
	generator RouteGenerator
	log       *slog.Logger
}

// NewRouteHandler creates a new RouteHandler.
func NewRouteHandler(generator RouteGenerator, log *slog.Logger) *RouteHandler {
	return &RouteHandler{generator: generator, log: log}
}

// RegisterRoutes registers the route generation endpoint on the given router.
func (h *RouteHandler) RegisterRoutes(r *gin.Engine) {
	v1 := r.Group("/v1")
	v1.Use(requestID())
	v1.POST("/routes/generate", h.GenerateRoute)
}

// generateRouteRequest is the request body for route generation.
type generateRouteRequest struct {
	Location    string             `json:"location" binding:"required"`
	Preferences preferencesPayload `json:"preferences" binding:"required"`
}

type preferencesPayload struct {
	DistanceKm  float64  `json:"distance_km" binding:"required"`
	MustInclude []string `json:"must_include"`
	Preferences []string `json:"preferences"`
	Circular    bool     `json:"circular"`
}

// GenerateRoute handles POST /v1/routes/generate. Regeneration is the same
// call repeated: the pipeline never caches, so the client simply posts the
// identical payload again for a different route.
func (h *RouteHandler) GenerateRoute(c *gin.Context) {
	identity := bearerIdentity(c)

	var req generateRouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "detail": err.Error()})
		return
	}

	prefs := models.RoutePreferences{
		RequestedDistanceKm: req.Preferences.DistanceKm,
		Freeform:            req.Preferences.Preferences,
		Circular:            req.Preferences.Circular,
	}
	for _, cat := range req.Preferences.MustInclude {
		prefs.MustInclude = append(prefs.MustInclude, models.Category(cat))
	}

	rec, err := h.generator.GenerateRoute(c.Request.Context(), identity, req.Location, prefs)
	if err != nil {
		status := statusFor(err)
		h.log.WarnContext(c.Request.Context(), "Route generation failed",
			"request_id", c.GetString(requestIDKey), "status", status, "error", err)
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, rec)
}

// statusFor maps the fault taxonomy onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, faults.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, faults.ErrFeatureDisabled):
		return http.StatusForbidden
	case errors.Is(err, faults.ErrInvalidInput),
		errors.Is(err, faults.ErrInsufficientWaypoints),
		errors.Is(err, faults.ErrMalformedSelection):
		return http.StatusBadRequest
	case errors.Is(err, faults.ErrGeocodeNotFound), errors.Is(err, faults.ErrNoRouteFound):
		return http.StatusNotFound
	case errors.Is(err, faults.ErrTransient):
		return http.StatusGatewayTimeout
	default:
		return http.StatusBadGateway
	}
}

// bearerIdentity extracts the authenticated identity from the Authorization
// header. An empty result means unauthenticated; the pipeline rejects it.
func bearerIdentity(c *gin.Context) string {
	auth := c.GetHeader("Authorization")
	token, found := strings.CutPrefix(auth, "Bearer ")
	if !found {
		return ""
	}
	return strings.TrimSpace(token)
}

const requestIDKey = "request_id"

// requestID tags every request with an ID for log correlation.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}
