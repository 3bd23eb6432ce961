package geocode

import (
	"context"
	"log/slog"

	"github.com/pawpath/routegen/internal/faults"
	"github.com/pawpath/routegen/internal/gmaps"
	"github.com/pawpath/routegen/internal/models"
	"googlemaps.github.io/maps"
)

// GoogleGeocoder resolves locations through the Google Maps Geocoding API.
type GoogleGeocoder struct {
	client GeocodeAPI   // client is the Google Maps API client
	log    *slog.Logger // log is the logger for logging operations
}

// GeocodeAPI is the slice of the Google Maps client used by the geocoder.
// Narrowed to one method so tests can substitute a mock.
type GeocodeAPI interface {
	Geocode(ctx context.Context, r *maps.GeocodingRequest) ([]maps.GeocodingResult, error)
}

// NewGoogleGeocoder returns a geocoder backed by the given Maps API client.
func NewGoogleGeocoder(client GeocodeAPI, log *slog.Logger) *GoogleGeocoder {
	return &GoogleGeocoder{client: client, log: log}
}

// Resolve geocodes the given location text and returns the first
// (highest-confidence) match. The upstream failure modes are mapped onto the
// fault taxonomy: zero matches become ErrGeocodeNotFound, key errors become
// ErrGeocodeDenied, malformed requests become ErrInvalidInput and anything
// network-level becomes ErrTransient.
func (g *GoogleGeocoder) Resolve(ctx context.Context, locationText string) (*models.GeocodeResult, error) {
	g.log.DebugContext(ctx, "Geocoding location", "location", locationText)

	req := maps.GeocodingRequest{Address: locationText}
	results, err := g.client.Geocode(ctx, &req)
	if err != nil {
		switch gmaps.Classify(err) {
		case gmaps.ClassDenied:
			return nil, faults.Wrap(faults.ErrGeocodeDenied, err)
		case gmaps.ClassInvalid:
			return nil, faults.Wrap(faults.ErrInvalidInput, err)
		case gmaps.ClassZeroResults, gmaps.ClassNotFound:
			return nil, faults.Wrap(faults.ErrGeocodeNotFound, err)
		default:
			return nil, faults.Wrapf(faults.ErrTransient, err, "geocoding request failed")
		}
	}

	if len(results) == 0 {
		return nil, faults.Wrapf(faults.ErrGeocodeNotFound, nil, "no matches for %q", locationText)
	}

	top := results[0]
	coords := models.Coordinates{
		Latitude:  top.Geometry.Location.Lat,
		Longitude: top.Geometry.Location.Lng,
	}
	if !coords.Valid() {
		// Out-of-range coordinates from upstream are a data fault, not ours.
		return nil, faults.Wrapf(faults.ErrTransient, nil,
			"upstream returned out-of-range coordinates (%f, %f)", coords.Latitude, coords.Longitude)
	}

	g.log.DebugContext(ctx, "Location resolved",
		"location", locationText, "address", top.FormattedAddress)

	return &models.GeocodeResult{
		Location:         coords,
		FormattedAddress: top.FormattedAddress,
		PlaceID:          top.PlaceID,
	}, nil
}
