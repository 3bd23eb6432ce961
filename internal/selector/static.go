package selector

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pawpath/routegen/internal/models"
)

// StaticSelector is a deterministic selector for local development and
// environments without Generative Language access. It walks the top-ranked
// candidates in order and loops back to the origin when a circular route was
// requested.
type StaticSelector struct {
	log      *slog.Logger
	maxStops int
}

// NewStaticSelector returns a selector that picks the first maxStops
// candidates from the ranked list.
func NewStaticSelector(maxStops int, log *slog.Logger) *StaticSelector {
	return &StaticSelector{log: log, maxStops: maxStops}
}

// Select builds a proposal from the candidate ranking without consulting any
// external service.
func (ss *StaticSelector) Select(
	_ context.Context,
	origin models.Coordinates,
	candidates []models.Place,
	prefs models.RoutePreferences,
) (*Proposal, error) {
	stops := candidates
	if len(stops) > ss.maxStops {
		stops = stops[:ss.maxStops]
	}

	waypoints := []models.Waypoint{
		{Location: origin, Name: "Start", Role: models.RoleStart},
	}
	for _, place := range stops {
		waypoints = append(waypoints, models.Waypoint{
			Location: place.Location,
			Name:     place.Name,
			Role:     models.RolePOI,
			Category: place.Category,
			PlaceID:  place.PlaceID,
		})
	}

	if prefs.Circular || len(waypoints) < 2 {
		waypoints = append(waypoints, models.Waypoint{
			Location: origin,
			Name:     "Back to start",
			Role:     models.RoleEnd,
		})
	} else {
		waypoints[len(waypoints)-1].Role = models.RoleEnd
	}

	return &Proposal{
		RouteName:         "Nearby favourites walk",
		Waypoints:         waypoints,
		EstimatedDistance: fmt.Sprintf("%.1f km", prefs.RequestedDistanceKm),
		Highlights:        "A straightforward loop past the closest well-rated stops.",
	}, nil
}
