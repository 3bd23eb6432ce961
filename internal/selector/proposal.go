package selector

import (
	"github.com/pawpath/routegen/internal/faults"
	"github.com/pawpath/routegen/internal/models"
)

// maxWaypoints caps the oracle's output so a runaway proposal never reaches
// the directions service, which has its own waypoint limit.
const maxWaypoints = 25

// rawProposal is the wire shape the oracle is asked to produce.
type rawProposal struct {
	RouteName         string        `json:"routeName"`
	Waypoints         []rawWaypoint `json:"waypoints"`
	EstimatedDistance string        `json:"estimatedDistance"`
	Highlights        string        `json:"highlights"`
}

// rawWaypoint uses pointer coordinates so a missing field is distinguishable
// from a genuine zero.
type rawWaypoint struct {
	Lat      *float64 `json:"lat"`
	Lng      *float64 `json:"lng"`
	Name     string   `json:"name"`
	Role     string   `json:"role,omitempty"`
	Category string   `json:"category,omitempty"`
}

// buildProposal validates the oracle output and converts it into an
// immutable Proposal. Every violation maps to ErrMalformedSelection: missing
// or out-of-range coordinates, fewer than two waypoints, an oversized
// sequence, or mismatched start/end coordinates on a circular request.
// Roles are assigned positionally so the sequence always has exactly one
// start and one end.
func buildProposal(raw rawProposal, prefs models.RoutePreferences) (*Proposal, error) {
	if len(raw.Waypoints) < 2 {
		return nil, faults.Wrapf(faults.ErrMalformedSelection, nil,
			"proposal has %d waypoints, need at least 2", len(raw.Waypoints))
	}
	if len(raw.Waypoints) > maxWaypoints {
		return nil, faults.Wrapf(faults.ErrMalformedSelection, nil,
			"proposal has %d waypoints, cap is %d", len(raw.Waypoints), maxWaypoints)
	}

	waypoints := make([]models.Waypoint, 0, len(raw.Waypoints))
	for i, rwp := range raw.Waypoints {
		if rwp.Lat == nil || rwp.Lng == nil {
			return nil, faults.Wrapf(faults.ErrMalformedSelection, nil,
				"waypoint %d is missing coordinates", i)
		}
		coords := models.Coordinates{Latitude: *rwp.Lat, Longitude: *rwp.Lng}
		if !coords.Valid() {
			return nil, faults.Wrapf(faults.ErrMalformedSelection, nil,
				"waypoint %d has out-of-range coordinates (%f, %f)", i, coords.Latitude, coords.Longitude)
		}

		role := models.RolePOI
		switch i {
		case 0:
			role = models.RoleStart
		case len(raw.Waypoints) - 1:
			role = models.RoleEnd
		}

		waypoints = append(waypoints, models.Waypoint{
			Location: coords,
			Name:     rwp.Name,
			Role:     role,
			Category: parseCategory(rwp.Category),
		})
	}

	if prefs.Circular && !waypoints[0].Location.Equal(waypoints[len(waypoints)-1].Location) {
		return nil, faults.Wrapf(faults.ErrMalformedSelection, nil,
			"circular route requested but start and end coordinates differ")
	}

	return &Proposal{
		RouteName:         raw.RouteName,
		Waypoints:         waypoints,
		EstimatedDistance: raw.EstimatedDistance,
		Highlights:        raw.Highlights,
	}, nil
}

func parseCategory(s string) models.Category {
	switch models.Category(s) {
	case models.CategoryPark, models.CategoryCafe, models.CategoryDogPark, models.CategoryOther:
		return models.Category(s)
	case "":
		return ""
	default:
		return models.CategoryOther
	}
}
