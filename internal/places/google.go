package places

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"sort"
	"sync"

	"github.com/pawpath/routegen/internal/faults"
	"github.com/pawpath/routegen/internal/geo"
	"github.com/pawpath/routegen/internal/gmaps"
	"github.com/pawpath/routegen/internal/models"
	"googlemaps.github.io/maps"
)

// MaxRadiusMeters is the largest search radius the Places API accepts.
// Larger values are rejected before any network call is made.
const MaxRadiusMeters = 50000

// ratingGap is the rating difference above which a higher-rated place
// outranks a closer one.
const ratingGap = 0.5

// PlacesAPI is the slice of the Google Maps client used by the finder.
type PlacesAPI interface {
	NearbySearch(ctx context.Context, r *maps.NearbySearchRequest) (maps.PlacesSearchResponse, error)
}

// GoogleFinder searches for walk-worthy places through the Google Places
// NearbySearch API: parks, dog-friendly cafes and dog parks, each as its own
// category search.
type GoogleFinder struct {
	client PlacesAPI
	log    *slog.Logger
}

// NewGoogleFinder returns a finder backed by the given Maps API client.
func NewGoogleFinder(client PlacesAPI, log *slog.Logger) *GoogleFinder {
	return &GoogleFinder{client: client, log: log}
}

// categorySearch describes one branch of the concurrent fan-out.
type categorySearch struct {
	category  models.Category
	placeType maps.PlaceType
	keyword   string
}

// branchResult captures one branch's outcome; the join inspects all of them.
type branchResult struct {
	places []models.Place
	err    error
}

// FindPOIs runs the three category searches concurrently, waits for all of
// them, and merges the survivors. A branch returning zero results is a
// success with an empty list; the aggregate call fails only when every
// branch failed. Distance from origin is computed for every result.
func (f *GoogleFinder) FindPOIs(
	ctx context.Context,
	origin models.Coordinates,
	radiusMeters float64,
) (*SearchResult, error) {
	if radiusMeters <= 0 || radiusMeters > MaxRadiusMeters {
		return nil, faults.Wrapf(faults.ErrInvalidInput, nil,
			"search radius %.0fm outside (0, %d]", radiusMeters, MaxRadiusMeters)
	}

	searches := []categorySearch{
		{category: models.CategoryPark, placeType: maps.PlaceTypePark},
		{category: models.CategoryCafe, placeType: maps.PlaceTypeCafe, keyword: "dog friendly"},
		{category: models.CategoryDogPark, keyword: "dog park"},
	}

	results := make([]branchResult, len(searches))
	var wgr sync.WaitGroup
	for i, search := range searches {
		wgr.Add(1)
		go func(idx int, search categorySearch) {
			defer wgr.Done()
			places, err := f.searchCategory(ctx, origin, radiusMeters, search)
			results[idx] = branchResult{places: places, err: err}
		}(i, search)
	}
	wgr.Wait()

	failed := 0
	for i, res := range results {
		if res.err != nil {
			failed++
			f.log.WarnContext(ctx, "Category search failed",
				"category", searches[i].category, "error", res.err)
		}
	}
	if failed == len(searches) {
		return nil, f.aggregateFailure(results)
	}

	merged := mergeAndRank(results[0].places, results[1].places, results[2].places)

	f.log.DebugContext(ctx, "Place search finished",
		"parks", len(results[0].places),
		"cafes", len(results[1].places),
		"dog_parks", len(results[2].places),
		"merged", len(merged))

	return &SearchResult{
		Parks:    results[0].places,
		Cafes:    results[1].places,
		DogParks: results[2].places,
		Merged:   merged,
	}, nil
}

// searchCategory performs a single nearby search and converts the response.
// Zero results are not an error; hard upstream errors fail the branch.
func (f *GoogleFinder) searchCategory(
	ctx context.Context,
	origin models.Coordinates,
	radiusMeters float64,
	search categorySearch,
) ([]models.Place, error) {
	req := &maps.NearbySearchRequest{
		Location: &maps.LatLng{Lat: origin.Latitude, Lng: origin.Longitude},
		Radius:   uint(radiusMeters),
		Keyword:  search.keyword,
	}
	if search.placeType != "" {
		req.Type = search.placeType
	}

	resp, err := f.client.NearbySearch(ctx, req)
	if err != nil {
		switch gmaps.Classify(err) {
		case gmaps.ClassZeroResults:
			return nil, nil
		case gmaps.ClassDenied:
			return nil, faults.Wrap(faults.ErrPlaceSearchDenied, err)
		case gmaps.ClassInvalid:
			return nil, faults.Wrap(faults.ErrPlaceSearchInvalid, err)
		default:
			return nil, faults.Wrapf(faults.ErrTransient, err, "nearby search failed")
		}
	}

	places := make([]models.Place, 0, len(resp.Results))
	for _, result := range resp.Results {
		location := models.Coordinates{
			Latitude:  result.Geometry.Location.Lat,
			Longitude: result.Geometry.Location.Lng,
		}
		places = append(places, models.Place{
			PlaceID:            result.PlaceID,
			Name:               result.Name,
			Location:           location,
			Category:           search.category,
			Vicinity:           result.Vicinity,
			Rating:             float64(result.Rating),
			RatingCount:        result.UserRatingsTotal,
			Rated:              result.Rating > 0 || result.UserRatingsTotal > 0,
			DistanceFromOrigin: geo.DistanceMeters(origin, location),
		})
	}

	return places, nil
}

// aggregateFailure picks the fault kind to surface when every branch failed:
// a permission failure wins over a malformed request, which wins over a
// transient one.
func (f *GoogleFinder) aggregateFailure(results []branchResult) error {
	var firstInvalid, firstTransient error
	for _, res := range results {
		switch {
		case errors.Is(res.err, faults.ErrPlaceSearchDenied):
			return res.err
		case errors.Is(res.err, faults.ErrPlaceSearchInvalid) && firstInvalid == nil:
			firstInvalid = res.err
		case firstTransient == nil:
			firstTransient = res.err
		}
	}
	if firstInvalid != nil {
		return firstInvalid
	}
	return firstTransient
}

// mergeAndRank merges the category lists keyed by place ID, keeping the
// first occurrence, then sorts the merged list by the ranking rule:
// a rating gap above 0.5 lets the higher-rated place win, otherwise
// distance from origin decides, and unrated places sort after rated ones.
func mergeAndRank(lists ...[]models.Place) []models.Place {
	seen := make(map[string]bool)
	var merged []models.Place
	for _, list := range lists {
		for _, place := range list {
			if seen[place.PlaceID] {
				continue
			}
			seen[place.PlaceID] = true
			merged = append(merged, place)
		}
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return rankLess(merged[i], merged[j])
	})

	return merged
}

func rankLess(a, b models.Place) bool {
	switch {
	case a.Rated && !b.Rated:
		return true
	case !a.Rated && b.Rated:
		return false
	case a.Rated && b.Rated && math.Abs(a.Rating-b.Rating) > ratingGap:
		return a.Rating > b.Rating
	default:
		return a.DistanceFromOrigin < b.DistanceFromOrigin
	}
}
