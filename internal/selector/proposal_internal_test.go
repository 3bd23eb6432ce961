package selector

import (
	"testing"

	"github.com/pawpath/routegen/internal/faults"
	"github.com/pawpath/routegen/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(f float64) *float64 { return &f }

func TestBuildProposal(t *testing.T) {
	prefs := models.RoutePreferences{RequestedDistanceKm: 2}

	t.Run("valid proposal gets positional roles", func(t *testing.T) {
		raw := rawProposal{
			RouteName: "Riverside loop",
			Waypoints: []rawWaypoint{
				{Lat: ptr(51.34), Lng: ptr(-2.25), Name: "Start"},
				{Lat: ptr(51.35), Lng: ptr(-2.24), Name: "Riverside Green", Category: "park"},
				{Lat: ptr(51.36), Lng: ptr(-2.23), Name: "Finish"},
			},
			EstimatedDistance: "2.1 km",
			Highlights:        "A shady river path.",
		}

		proposal, err := buildProposal(raw, prefs)

		require.NoError(t, err)
		require.Len(t, proposal.Waypoints, 3)
		assert.Equal(t, models.RoleStart, proposal.Waypoints[0].Role)
		assert.Equal(t, models.RolePOI, proposal.Waypoints[1].Role)
		assert.Equal(t, models.RoleEnd, proposal.Waypoints[2].Role)
		assert.Equal(t, models.CategoryPark, proposal.Waypoints[1].Category)
	})

	t.Run("missing lng is rejected", func(t *testing.T) {
		raw := rawProposal{
			Waypoints: []rawWaypoint{
				{Lat: ptr(51.34), Lng: ptr(-2.25), Name: "Start"},
				{Lat: ptr(51.35), Name: "Broken"},
			},
		}

		_, err := buildProposal(raw, prefs)

		require.ErrorIs(t, err, faults.ErrMalformedSelection)
	})

	t.Run("out-of-range coordinates are rejected", func(t *testing.T) {
		raw := rawProposal{
			Waypoints: []rawWaypoint{
				{Lat: ptr(51.34), Lng: ptr(-2.25)},
				{Lat: ptr(95.0), Lng: ptr(-2.25)},
			},
		}

		_, err := buildProposal(raw, prefs)

		require.ErrorIs(t, err, faults.ErrMalformedSelection)
	})

	t.Run("fewer than two waypoints is rejected", func(t *testing.T) {
		raw := rawProposal{Waypoints: []rawWaypoint{{Lat: ptr(51.34), Lng: ptr(-2.25)}}}

		_, err := buildProposal(raw, prefs)

		require.ErrorIs(t, err, faults.ErrMalformedSelection)
	})

	t.Run("oversized sequence is rejected", func(t *testing.T) {
		raw := rawProposal{}
		for range maxWaypoints + 1 {
			raw.Waypoints = append(raw.Waypoints, rawWaypoint{Lat: ptr(51.34), Lng: ptr(-2.25)})
		}

		_, err := buildProposal(raw, prefs)

		require.ErrorIs(t, err, faults.ErrMalformedSelection)
	})

	t.Run("circular request with open ends is rejected", func(t *testing.T) {
		circular := models.RoutePreferences{RequestedDistanceKm: 2, Circular: true}
		raw := rawProposal{
			Waypoints: []rawWaypoint{
				{Lat: ptr(51.34), Lng: ptr(-2.25)},
				{Lat: ptr(51.35), Lng: ptr(-2.24)},
			},
		}

		_, err := buildProposal(raw, circular)

		require.ErrorIs(t, err, faults.ErrMalformedSelection)
	})

	t.Run("circular request with matching ends passes", func(t *testing.T) {
		circular := models.RoutePreferences{RequestedDistanceKm: 2, Circular: true}
		raw := rawProposal{
			Waypoints: []rawWaypoint{
				{Lat: ptr(51.34), Lng: ptr(-2.25)},
				{Lat: ptr(51.35), Lng: ptr(-2.24)},
				{Lat: ptr(51.34), Lng: ptr(-2.25)},
			},
		}

		proposal, err := buildProposal(raw, circular)

		require.NoError(t, err)
		assert.True(t, proposal.Waypoints[0].Location.Equal(proposal.Waypoints[2].Location))
	})

	t.Run("unknown category maps to other", func(t *testing.T) {
		raw := rawProposal{
			Waypoints: []rawWaypoint{
				{Lat: ptr(51.34), Lng: ptr(-2.25)},
				{Lat: ptr(51.35), Lng: ptr(-2.24), Category: "viewpoint"},
			},
		}

		proposal, err := buildProposal(raw, prefs)

		require.NoError(t, err)
		assert.Equal(t, models.CategoryOther, proposal.Waypoints[1].Category)
	})
}
