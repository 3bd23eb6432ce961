package directions

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pawpath/routegen/internal/faults"
	"github.com/pawpath/routegen/internal/gmaps"
	"github.com/pawpath/routegen/internal/models"
	"googlemaps.github.io/maps"
)

// DirectionsAPI is the slice of the Google Maps client used by the calculator.
type DirectionsAPI interface {
	Directions(ctx context.Context, r *maps.DirectionsRequest) ([]maps.Route, []maps.GeocodedWaypoint, error)
}

// GoogleCalculator computes walking routes through the Google Directions API.
type GoogleCalculator struct {
	client DirectionsAPI
	log    *slog.Logger
}

// NewGoogleCalculator returns a calculator backed by the given Maps API client.
func NewGoogleCalculator(client DirectionsAPI, log *slog.Logger) *GoogleCalculator {
	return &GoogleCalculator{client: client, log: log}
}

// Calculate requests walking directions through the whole waypoint sequence:
// first waypoint as origin, last as destination, everything between as
// intermediate stops in their given order. Every leg of the response is
// aggregated into one DirectionsResult; the service returns one leg per
// intermediate stop, so a single-leg shortcut would drop data.
func (gc *GoogleCalculator) Calculate(
	ctx context.Context,
	waypoints []models.Waypoint,
) (*models.DirectionsResult, error) {
	if len(waypoints) < 2 {
		return nil, faults.Wrapf(faults.ErrInsufficientWaypoints, nil,
			"got %d waypoints", len(waypoints))
	}

	origin := waypoints[0]
	destination := waypoints[len(waypoints)-1]
	intermediate := waypoints[1 : len(waypoints)-1]

	req := &maps.DirectionsRequest{
		Origin:      formatLatLng(origin.Location),
		Destination: formatLatLng(destination.Location),
		Mode:        maps.TravelModeWalking,
	}
	for _, wp := range intermediate {
		req.Waypoints = append(req.Waypoints, formatLatLng(wp.Location))
	}

	gc.log.DebugContext(ctx, "Requesting walking directions",
		"waypoints", len(waypoints), "origin", req.Origin, "destination", req.Destination)

	routes, geocoded, err := gc.client.Directions(ctx, req)
	if err != nil {
		switch gmaps.Classify(err) {
		case gmaps.ClassZeroResults:
			return nil, faults.Wrap(faults.ErrNoRouteFound, err)
		case gmaps.ClassNotFound:
			return nil, faults.Wrap(faults.ErrWaypointNotLocated, err)
		case gmaps.ClassDenied:
			return nil, faults.Wrap(faults.ErrDirectionsDenied, err)
		case gmaps.ClassInvalid:
			return nil, faults.Wrap(faults.ErrDirectionsInvalid, err)
		default:
			return nil, faults.Wrapf(faults.ErrTransient, err, "directions request failed")
		}
	}

	for i, gwp := range geocoded {
		if gwp.GeocoderStatus != "" && gwp.GeocoderStatus != "OK" {
			return nil, faults.Wrapf(faults.ErrWaypointNotLocated, nil,
				"waypoint %d: geocoder status %s", i, gwp.GeocoderStatus)
		}
	}

	if len(routes) == 0 {
		return nil, faults.Wrapf(faults.ErrNoRouteFound, nil, "directions returned no routes")
	}

	return aggregateLegs(routes[0]), nil
}

// aggregateLegs folds every leg of the route into a single result. Totals
// are the sums of the per-leg values and steps keep leg order, concatenated
// without reordering.
func aggregateLegs(route maps.Route) *models.DirectionsResult {
	result := &models.DirectionsResult{
		EncodedOverviewPath: route.OverviewPolyline.Points,
	}

	for i, leg := range route.Legs {
		if i == 0 {
			result.StartAddress = leg.StartAddress
		}
		result.EndAddress = leg.EndAddress
		result.TotalDistanceMeters += leg.Distance.Meters
		result.TotalDurationSecs += int(leg.Duration.Seconds())

		for _, step := range leg.Steps {
			result.Steps = append(result.Steps, models.DirectionStep{
				DistanceMeters:  step.Distance.Meters,
				DurationSeconds: int(step.Duration.Seconds()),
				Instruction:     step.HTMLInstructions,
				Start: models.Coordinates{
					Latitude:  step.StartLocation.Lat,
					Longitude: step.StartLocation.Lng,
				},
				End: models.Coordinates{
					Latitude:  step.EndLocation.Lat,
					Longitude: step.EndLocation.Lng,
				},
				EncodedPath: step.Polyline.Points,
			})
		}
	}

	return result
}

func formatLatLng(c models.Coordinates) string {
	return fmt.Sprintf("%f,%f", c.Latitude, c.Longitude)
}
