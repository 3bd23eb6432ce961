package geocode

import (
	"context"

	"github.com/pawpath/routegen/internal/models"
)

// Geocoder resolves free-text location input into coordinates and a
// canonical formatted address.
type Geocoder interface {
	Resolve(ctx context.Context, locationText string) (*models.GeocodeResult, error)
}
