package places

import (
	"context"

	"github.com/pawpath/routegen/internal/models"
)

// SearchResult holds the per-category search results plus the merged,
// deduplicated, ranked candidate list the selector works from.
type SearchResult struct {
	Parks    []models.Place
	Cafes    []models.Place
	DogParks []models.Place
	Merged   []models.Place
}

// Finder runs the category searches around an origin and aggregates them.
type Finder interface {
	FindPOIs(ctx context.Context, origin models.Coordinates, radiusMeters float64) (*SearchResult, error)
}
