package models

// Category classifies a point of interest by the kind of stop it offers
// on a walk.
type Category string

const (
	CategoryPark    Category = "park"
	CategoryCafe    Category = "cafe"
	CategoryDogPark Category = "dog_park"
	CategoryOther   Category = "other"
)

// GeocodeResult is the resolved form of a free-text location: coordinates
// plus the canonical formatted address reported by the upstream service.
// Created once per geocoding call and never mutated.
type GeocodeResult struct {
	Location         Coordinates `json:"location"`
	FormattedAddress string      `json:"formatted_address"`
	PlaceID          string      `json:"place_id,omitempty"` // Upstream place identifier, when available.
}

// Place is a point of interest returned by a category search.
// Places are deduplicated by PlaceID across searches.
type Place struct {
	PlaceID            string      `json:"place_id"` // Unique key across all category searches.
	Name               string      `json:"name"`
	Location           Coordinates `json:"location"`
	Category           Category    `json:"category"`
	Vicinity           string      `json:"vicinity,omitempty"`
	Rating             float64     `json:"rating,omitempty"`       // 0 when the place has no rating.
	RatingCount        int         `json:"rating_count,omitempty"` // Number of ratings behind Rating.
	Rated              bool        `json:"rated"`                  // Distinguishes "no rating" from a genuine 0.
	DistanceFromOrigin float64     `json:"distance_from_origin"`   // Meters, computed via haversine.
}

// RoutePreferences captures what the user asked for: how far they want to
// walk, which categories the route must visit, any freeform wishes, and
// whether the route should loop back to its start.
type RoutePreferences struct {
	RequestedDistanceKm float64    `json:"distance_km"`
	MustInclude         []Category `json:"must_include,omitempty"`
	Freeform            []string   `json:"preferences,omitempty"` // Ordered freeform wishes, e.g. "off-leash".
	Circular            bool       `json:"circular"`
}

// DistanceValid reports whether the requested distance is inside the
// supported range of 1 to 10 kilometers inclusive.
func (p RoutePreferences) DistanceValid() bool {
	return p.RequestedDistanceKm >= 1 && p.RequestedDistanceKm <= 10
}
