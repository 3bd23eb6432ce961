package directions

import (
	"context"

	"github.com/pawpath/routegen/internal/models"
)

// Calculator turns an ordered waypoint sequence into a walkable path with
// measured distance, duration and turn-by-turn steps.
type Calculator interface {
	Calculate(ctx context.Context, waypoints []models.Waypoint) (*models.DirectionsResult, error)
}
