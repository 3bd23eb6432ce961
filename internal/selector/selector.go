package selector

import (
	"context"

	"github.com/pawpath/routegen/internal/models"
)

// Proposal is a validated waypoint sequence plus the descriptive fields the
// oracle produced alongside it.
type Proposal struct {
	RouteName         string
	Waypoints         []models.Waypoint
	EstimatedDistance string
	Highlights        string
}

// Selector proposes an ordered waypoint sequence for the given candidates
// and preferences. Implementations may be nondeterministic; the interface is
// pure at the type level, so a repeated call with identical arguments is how
// callers ask for a different route. Implementations never retry internally.
type Selector interface {
	Select(
		ctx context.Context,
		origin models.Coordinates,
		candidates []models.Place,
		prefs models.RoutePreferences,
	) (*Proposal, error)
}
