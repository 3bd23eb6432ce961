// Package faults defines the error taxonomy shared by every pipeline stage.
//
// Each fault is a sentinel error so callers classify failures with errors.Is
// regardless of how many times a stage has wrapped the original cause.
// Validation and authorization faults are raised locally and never reach an
// external service; upstream faults keep their kind while gaining a stable,
// user-presentable message.
package faults

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput covers bad location text, an out-of-range requested
	// distance, an oversized search radius, or a malformed waypoint count.
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnauthorized is returned when no authenticated identity was supplied.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrFeatureDisabled is returned while route generation is switched off.
	ErrFeatureDisabled = errors.New("route generation is disabled")

	// ErrGeocodeNotFound means the location service reported zero matches.
	ErrGeocodeNotFound = errors.New("location not found")
	// ErrGeocodeDenied means the location service rejected our credentials.
	ErrGeocodeDenied = errors.New("location service denied the request")

	// ErrPlaceSearchDenied is raised only when every category search failed
	// with a permission error.
	ErrPlaceSearchDenied = errors.New("place search denied the request")
	// ErrPlaceSearchInvalid is raised only when every category search failed
	// with a malformed request.
	ErrPlaceSearchInvalid = errors.New("place search rejected the request")

	// ErrMalformedSelection means the waypoint selector returned a proposal
	// that failed schema validation and was discarded.
	ErrMalformedSelection = errors.New("selector returned a malformed proposal")

	// ErrInsufficientWaypoints means fewer than two waypoints were offered
	// to the route calculator.
	ErrInsufficientWaypoints = errors.New("route needs at least two waypoints")
	// ErrNoRouteFound means the directions service found no viable path.
	ErrNoRouteFound = errors.New("no walkable route found")
	// ErrWaypointNotLocated means the directions service could not resolve
	// one or more waypoint coordinates.
	ErrWaypointNotLocated = errors.New("a route waypoint could not be located")
	// ErrDirectionsDenied means the directions service rejected our credentials.
	ErrDirectionsDenied = errors.New("directions service denied the request")
	// ErrDirectionsInvalid means the directions request itself was malformed.
	ErrDirectionsInvalid = errors.New("directions service rejected the request")

	// ErrTransient is a generic network-level failure the caller may retry.
	ErrTransient = errors.New("temporary upstream failure")
)

// Wrap attaches a taxonomy sentinel to an upstream cause so that both remain
// visible to errors.Is. A nil cause yields the bare sentinel.
func Wrap(kind, cause error) error {
	if cause == nil {
		return kind
	}
	return fmt.Errorf("%w: %w", kind, cause)
}

// Wrapf is Wrap with additional formatted context between kind and cause.
func Wrapf(kind, cause error, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	if cause == nil {
		return fmt.Errorf("%w: %s", kind, msg)
	}
	return fmt.Errorf("%w: %s: %w", kind, msg, cause)
}

// Transient reports whether err is retryable at the network level.
func Transient(err error) bool {
	return errors.Is(err, ErrTransient)
}
