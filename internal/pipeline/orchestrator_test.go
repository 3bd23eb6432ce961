package pipeline_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/pawpath/routegen/internal/faults"
	"github.com/pawpath/routegen/internal/metrics"
	"github.com/pawpath/routegen/internal/models"
	"github.com/pawpath/routegen/internal/pipeline"
	"github.com/pawpath/routegen/internal/places"
	"github.com/pawpath/routegen/internal/selector"
	"github.com/pawpath/routegen/test/mocks"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type pipelineMocks struct {
	geocoder   *mocks.Geocoder
	finder     *mocks.Finder
	selector   *mocks.Selector
	calculator *mocks.Calculator
}

func newOrchestrator(t *testing.T, opts pipeline.Options) (*pipeline.Orchestrator, pipelineMocks) {
	t.Helper()

	pm := pipelineMocks{
		geocoder:   mocks.NewGeocoder(t),
		finder:     mocks.NewFinder(t),
		selector:   mocks.NewSelector(t),
		calculator: mocks.NewCalculator(t),
	}
	orch := pipeline.New(
		slog.Default(),
		pm.geocoder,
		pm.finder,
		pm.selector,
		pm.calculator,
		metrics.NewMetrics(prometheus.NewRegistry()),
		opts,
	)

	return orch, pm
}

func defaultOptions() pipeline.Options {
	return pipeline.Options{
		AIEnabled:       true,
		StageTimeout:    time.Second,
		PipelineTimeout: 5 * time.Second,
		MaxRetries:      2,
	}
}

func validPrefs() models.RoutePreferences {
	return models.RoutePreferences{RequestedDistanceKm: 2}
}

var bradfordOnAvon = models.Coordinates{Latitude: 51.3471, Longitude: -2.2510}

func geocodeResult() *models.GeocodeResult {
	return &models.GeocodeResult{
		Location:         bradfordOnAvon,
		FormattedAddress: "Bradford on Avon, UK",
		PlaceID:          "place-boa",
	}
}

func searchResult() *places.SearchResult {
	merged := []models.Place{
		{PlaceID: "p1", Name: "Barton Farm Country Park", Category: models.CategoryPark,
			Location: models.Coordinates{Latitude: 51.344, Longitude: -2.256}, Rating: 4.7, Rated: true},
		{PlaceID: "c1", Name: "Lock Inn Cafe", Category: models.CategoryCafe,
			Location: models.Coordinates{Latitude: 51.345, Longitude: -2.247}, Rating: 4.5, Rated: true},
	}
	return &places.SearchResult{Merged: merged}
}

func proposalFor(waypoints []models.Waypoint) *selector.Proposal {
	return &selector.Proposal{
		RouteName:         "Canal and Park Loop",
		Waypoints:         waypoints,
		EstimatedDistance: "2 km",
		Highlights:        "A riverside loop past the country park with a cafe stop.",
	}
}

func circularWaypoints() []models.Waypoint {
	return []models.Waypoint{
		{Name: "Start", Role: models.RoleStart, Location: bradfordOnAvon},
		{Name: "Barton Farm Country Park", Role: models.RolePOI, Category: models.CategoryPark,
			Location: models.Coordinates{Latitude: 51.344, Longitude: -2.256}},
		{Name: "Lock Inn Cafe", Role: models.RolePOI, Category: models.CategoryCafe,
			Location: models.Coordinates{Latitude: 51.345, Longitude: -2.247}},
		{Name: "Start", Role: models.RoleEnd, Location: bradfordOnAvon},
	}
}

func directionsResult() *models.DirectionsResult {
	return &models.DirectionsResult{
		TotalDistanceMeters: 2300,
		TotalDurationSecs:   1800,
		StartAddress:        "Bradford on Avon, UK",
		EndAddress:          "Bradford on Avon, UK",
	}
}

func TestGenerateRoute_Gates(t *testing.T) {
	ctx := context.Background()

	t.Run("feature disabled short-circuits before any stage", func(t *testing.T) {
		opts := defaultOptions()
		opts.AIEnabled = false
		orch, pm := newOrchestrator(t, opts)

		rec, err := orch.GenerateRoute(ctx, "user-1", "Bradford on Avon", validPrefs())

		require.Error(t, err)
		assert.ErrorIs(t, err, faults.ErrFeatureDisabled)
		assert.Nil(t, rec)
		pm.geocoder.AssertNotCalled(t, "Resolve")
		pm.finder.AssertNotCalled(t, "FindPOIs")
		pm.selector.AssertNotCalled(t, "Select")
		pm.calculator.AssertNotCalled(t, "Calculate")
	})

	t.Run("missing identity is rejected", func(t *testing.T) {
		orch, pm := newOrchestrator(t, defaultOptions())

		rec, err := orch.GenerateRoute(ctx, "", "Bradford on Avon", validPrefs())

		require.Error(t, err)
		assert.ErrorIs(t, err, faults.ErrUnauthorized)
		assert.Nil(t, rec)
		pm.geocoder.AssertNotCalled(t, "Resolve")
	})

	t.Run("location text shorter than two characters is rejected", func(t *testing.T) {
		orch, pm := newOrchestrator(t, defaultOptions())

		_, err := orch.GenerateRoute(ctx, "user-1", "  a  ", validPrefs())

		require.Error(t, err)
		assert.ErrorIs(t, err, faults.ErrInvalidInput)
		pm.geocoder.AssertNotCalled(t, "Resolve")
	})

	t.Run("distance outside the allowed range is rejected", func(t *testing.T) {
		orch, pm := newOrchestrator(t, defaultOptions())
		prefs := models.RoutePreferences{RequestedDistanceKm: 11}

		_, err := orch.GenerateRoute(ctx, "user-1", "Bradford on Avon", prefs)

		require.Error(t, err)
		assert.ErrorIs(t, err, faults.ErrInvalidInput)
		pm.geocoder.AssertNotCalled(t, "Resolve")
	})
}

func TestGenerateRoute_Success(t *testing.T) {
	ctx := context.Background()
	orch, pm := newOrchestrator(t, defaultOptions())

	prefs := models.RoutePreferences{
		RequestedDistanceKm: 2,
		MustInclude:         []models.Category{models.CategoryCafe},
		Circular:            true,
	}

	pm.geocoder.On("Resolve", mock.Anything, "Bradford on Avon").
		Return(geocodeResult(), nil).Once()
	pm.finder.On("FindPOIs", mock.Anything, bradfordOnAvon, 2000.0).
		Return(searchResult(), nil).Once()
	pm.selector.On("Select", mock.Anything, bradfordOnAvon, searchResult().Merged, prefs).
		Return(proposalFor(circularWaypoints()), nil).Once()
	pm.calculator.On("Calculate", mock.Anything, circularWaypoints()).
		Return(directionsResult(), nil).Once()

	rec, err := orch.GenerateRoute(ctx, "user-1", "Bradford on Avon", prefs)

	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "Canal and Park Loop", rec.RouteName)
	assert.Equal(t, "2.3 km", rec.EstimatedDistance)
	require.Len(t, rec.Waypoints, 4)
	assert.True(t, rec.Waypoints[0].Location.Equal(rec.Waypoints[len(rec.Waypoints)-1].Location),
		"circular route must start and end at the same point")

	var hasCafe bool
	for _, wp := range rec.Waypoints {
		if wp.Category == models.CategoryCafe {
			hasCafe = true
		}
	}
	assert.True(t, hasCafe, "route must include a cafe stop")
	require.NotNil(t, rec.Directions)
	assert.Equal(t, 2300, rec.Directions.TotalDistanceMeters)
}

func TestGenerateRoute_DefaultRouteName(t *testing.T) {
	ctx := context.Background()
	orch, pm := newOrchestrator(t, defaultOptions())

	proposal := proposalFor(circularWaypoints())
	proposal.RouteName = ""

	pm.geocoder.On("Resolve", mock.Anything, mock.Anything).Return(geocodeResult(), nil).Once()
	pm.finder.On("FindPOIs", mock.Anything, mock.Anything, mock.Anything).Return(searchResult(), nil).Once()
	pm.selector.On("Select", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(proposal, nil).Once()
	pm.calculator.On("Calculate", mock.Anything, mock.Anything).Return(directionsResult(), nil).Once()

	rec, err := orch.GenerateRoute(ctx, "user-1", "Bradford on Avon", validPrefs())

	require.NoError(t, err)
	assert.Equal(t, "Walk near Bradford on Avon, UK", rec.RouteName)
}

func TestGenerateRoute_StageFailures(t *testing.T) {
	ctx := context.Background()

	t.Run("geocode not found aborts before later stages", func(t *testing.T) {
		orch, pm := newOrchestrator(t, defaultOptions())

		pm.geocoder.On("Resolve", mock.Anything, mock.Anything).
			Return(nil, faults.Wrapf(faults.ErrGeocodeNotFound, nil, "no results")).Once()

		rec, err := orch.GenerateRoute(ctx, "user-1", "Nowheresville", validPrefs())

		require.Error(t, err)
		assert.ErrorIs(t, err, faults.ErrGeocodeNotFound)
		assert.Nil(t, rec)
		pm.finder.AssertNotCalled(t, "FindPOIs")
		pm.selector.AssertNotCalled(t, "Select")
		pm.calculator.AssertNotCalled(t, "Calculate")
	})

	t.Run("transient geocode failures are retried", func(t *testing.T) {
		orch, pm := newOrchestrator(t, defaultOptions())

		pm.geocoder.On("Resolve", mock.Anything, mock.Anything).
			Return(nil, faults.Wrap(faults.ErrTransient, errors.New("i/o timeout"))).Once()
		pm.geocoder.On("Resolve", mock.Anything, mock.Anything).
			Return(geocodeResult(), nil).Once()
		pm.finder.On("FindPOIs", mock.Anything, mock.Anything, mock.Anything).Return(searchResult(), nil).Once()
		pm.selector.On("Select", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(proposalFor(circularWaypoints()), nil).Once()
		pm.calculator.On("Calculate", mock.Anything, mock.Anything).Return(directionsResult(), nil).Once()

		rec, err := orch.GenerateRoute(ctx, "user-1", "Bradford on Avon", validPrefs())

		require.NoError(t, err)
		require.NotNil(t, rec)
		pm.geocoder.AssertNumberOfCalls(t, "Resolve", 2)
	})

	t.Run("non-transient geocode failure is not retried", func(t *testing.T) {
		orch, pm := newOrchestrator(t, defaultOptions())

		pm.geocoder.On("Resolve", mock.Anything, mock.Anything).
			Return(nil, faults.Wrap(faults.ErrGeocodeDenied, errors.New("REQUEST_DENIED"))).Once()

		_, err := orch.GenerateRoute(ctx, "user-1", "Bradford on Avon", validPrefs())

		require.Error(t, err)
		assert.ErrorIs(t, err, faults.ErrGeocodeDenied)
		pm.geocoder.AssertNumberOfCalls(t, "Resolve", 1)
	})

	t.Run("malformed selection aborts the run", func(t *testing.T) {
		orch, pm := newOrchestrator(t, defaultOptions())

		pm.geocoder.On("Resolve", mock.Anything, mock.Anything).Return(geocodeResult(), nil).Once()
		pm.finder.On("FindPOIs", mock.Anything, mock.Anything, mock.Anything).Return(searchResult(), nil).Once()
		pm.selector.On("Select", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(nil, faults.Wrapf(faults.ErrMalformedSelection, nil, "prose instead of JSON")).Once()

		rec, err := orch.GenerateRoute(ctx, "user-1", "Bradford on Avon", validPrefs())

		require.Error(t, err)
		assert.ErrorIs(t, err, faults.ErrMalformedSelection)
		assert.Nil(t, rec)
		pm.calculator.AssertNotCalled(t, "Calculate")
	})

	t.Run("no walking route aborts the run", func(t *testing.T) {
		orch, pm := newOrchestrator(t, defaultOptions())

		pm.geocoder.On("Resolve", mock.Anything, mock.Anything).Return(geocodeResult(), nil).Once()
		pm.finder.On("FindPOIs", mock.Anything, mock.Anything, mock.Anything).Return(searchResult(), nil).Once()
		pm.selector.On("Select", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(proposalFor(circularWaypoints()), nil).Once()
		pm.calculator.On("Calculate", mock.Anything, mock.Anything).
			Return(nil, faults.Wrapf(faults.ErrNoRouteFound, nil, "ZERO_RESULTS")).Once()

		rec, err := orch.GenerateRoute(ctx, "user-1", "Bradford on Avon", validPrefs())

		require.Error(t, err)
		assert.ErrorIs(t, err, faults.ErrNoRouteFound)
		assert.Nil(t, rec)
	})
}

func TestGenerateRoute_Deadlines(t *testing.T) {
	ctx := context.Background()

	t.Run("pipeline deadline during retry backoff keeps the transient kind", func(t *testing.T) {
		opts := defaultOptions()
		opts.PipelineTimeout = 200 * time.Millisecond
		opts.MaxRetries = 5
		orch, pm := newOrchestrator(t, opts)

		pm.geocoder.On("Resolve", mock.Anything, mock.Anything).
			Return(nil, faults.Wrap(faults.ErrTransient, errors.New("i/o timeout")))

		rec, err := orch.GenerateRoute(ctx, "user-1", "Bradford on Avon", validPrefs())

		require.Error(t, err)
		assert.True(t, faults.Transient(err), "deadline expiry must surface as a transient fault, got %v", err)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
		assert.Nil(t, rec)
		pm.finder.AssertNotCalled(t, "FindPOIs")
		pm.selector.AssertNotCalled(t, "Select")
		pm.calculator.AssertNotCalled(t, "Calculate")
	})

	t.Run("slow stage is cut off by the per-stage deadline", func(t *testing.T) {
		opts := defaultOptions()
		opts.StageTimeout = 50 * time.Millisecond
		opts.MaxRetries = 0
		orch, pm := newOrchestrator(t, opts)

		pm.geocoder.On("Resolve", mock.Anything, mock.Anything).
			Return(func(sctx context.Context, _ string) (*models.GeocodeResult, error) {
				<-sctx.Done()
				return nil, sctx.Err()
			})

		rec, err := orch.GenerateRoute(ctx, "user-1", "Bradford on Avon", validPrefs())

		require.Error(t, err)
		assert.True(t, faults.Transient(err), "stage timeout must surface as a transient fault, got %v", err)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
		assert.Nil(t, rec)
		pm.finder.AssertNotCalled(t, "FindPOIs")
	})
}

func TestGenerateRoute_MustIncludeRetry(t *testing.T) {
	ctx := context.Background()

	prefs := models.RoutePreferences{
		RequestedDistanceKm: 2,
		MustInclude:         []models.Category{models.CategoryCafe},
	}

	parkOnly := []models.Waypoint{
		{Name: "Start", Role: models.RoleStart, Location: bradfordOnAvon},
		{Name: "Barton Farm Country Park", Role: models.RolePOI, Category: models.CategoryPark,
			Location: models.Coordinates{Latitude: 51.344, Longitude: -2.256}},
		{Name: "End", Role: models.RoleEnd, Location: models.Coordinates{Latitude: 51.346, Longitude: -2.250}},
	}

	t.Run("selector is asked once more when a required category is missing", func(t *testing.T) {
		orch, pm := newOrchestrator(t, defaultOptions())

		pm.geocoder.On("Resolve", mock.Anything, mock.Anything).Return(geocodeResult(), nil).Once()
		pm.finder.On("FindPOIs", mock.Anything, mock.Anything, mock.Anything).Return(searchResult(), nil).Once()
		pm.selector.On("Select", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(proposalFor(parkOnly), nil).Once()
		pm.selector.On("Select", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(proposalFor(circularWaypoints()), nil).Once()
		pm.calculator.On("Calculate", mock.Anything, circularWaypoints()).
			Return(directionsResult(), nil).Once()

		rec, err := orch.GenerateRoute(ctx, "user-1", "Bradford on Avon", prefs)

		require.NoError(t, err)
		require.NotNil(t, rec)
		pm.selector.AssertNumberOfCalls(t, "Select", 2)
	})

	t.Run("second proposal is accepted even if still missing the category", func(t *testing.T) {
		orch, pm := newOrchestrator(t, defaultOptions())

		pm.geocoder.On("Resolve", mock.Anything, mock.Anything).Return(geocodeResult(), nil).Once()
		pm.finder.On("FindPOIs", mock.Anything, mock.Anything, mock.Anything).Return(searchResult(), nil).Once()
		pm.selector.On("Select", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(proposalFor(parkOnly), nil).Twice()
		pm.calculator.On("Calculate", mock.Anything, parkOnly).
			Return(directionsResult(), nil).Once()

		rec, err := orch.GenerateRoute(ctx, "user-1", "Bradford on Avon", prefs)

		require.NoError(t, err)
		require.NotNil(t, rec)
		pm.selector.AssertNumberOfCalls(t, "Select", 2)
	})

	t.Run("first proposal stands when the second attempt fails", func(t *testing.T) {
		orch, pm := newOrchestrator(t, defaultOptions())

		pm.geocoder.On("Resolve", mock.Anything, mock.Anything).Return(geocodeResult(), nil).Once()
		pm.finder.On("FindPOIs", mock.Anything, mock.Anything, mock.Anything).Return(searchResult(), nil).Once()
		pm.selector.On("Select", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(proposalFor(parkOnly), nil).Once()
		pm.selector.On("Select", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(nil, faults.Wrap(faults.ErrTransient, errors.New("timeout"))).Once()
		pm.calculator.On("Calculate", mock.Anything, parkOnly).
			Return(directionsResult(), nil).Once()

		rec, err := orch.GenerateRoute(ctx, "user-1", "Bradford on Avon", prefs)

		require.NoError(t, err)
		require.NotNil(t, rec)
	})
}
