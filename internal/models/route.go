package models

// Role marks the position of a waypoint inside a route sequence.
type Role string

const (
	RoleStart Role = "start"
	RolePOI   Role = "poi"
	RoleEnd   Role = "end"
)

// Waypoint is one stop in a proposed route. A well-formed sequence has
// exactly one start and one end; a circular route has equal start and end
// coordinates.
type Waypoint struct {
	Location Coordinates `json:"location"`
	Name     string      `json:"name"`
	Role     Role        `json:"role"`
	Category Category    `json:"category,omitempty"`
	PlaceID  string      `json:"place_id,omitempty"`
}

// DirectionStep is a single turn-by-turn instruction inside a walking route.
type DirectionStep struct {
	DistanceMeters  int         `json:"distance_meters"`
	DurationSeconds int         `json:"duration_seconds"`
	Instruction     string      `json:"instruction"` // HTML instruction text from the directions service.
	Start           Coordinates `json:"start"`
	End             Coordinates `json:"end"`
	EncodedPath     string      `json:"encoded_path"` // Encoded polyline for this step.
}

// DirectionsResult is the aggregate of every leg returned by the directions
// service for one waypoint sequence. Totals equal the sum of the per-leg
// values and Steps preserves leg order, concatenated without reordering.
type DirectionsResult struct {
	TotalDistanceMeters int             `json:"total_distance_meters"`
	TotalDurationSecs   int             `json:"total_duration_seconds"`
	StartAddress        string          `json:"start_address"`
	EndAddress          string          `json:"end_address"`
	EncodedOverviewPath string          `json:"encoded_overview_path"`
	Steps               []DirectionStep `json:"steps"`
}

// RouteRecommendation is the terminal output of a successful pipeline run.
// It is assembled exactly once, by the orchestrator, and never partially
// populated.
type RouteRecommendation struct {
	RouteName         string            `json:"route_name"`
	Waypoints         []Waypoint        `json:"waypoints"`
	EstimatedDistance string            `json:"estimated_distance"` // Display string, e.g. "2.3 km".
	Highlights        string            `json:"highlights"`
	Directions        *DirectionsResult `json:"directions,omitempty"`
}
