// Package gmaps classifies errors returned by the Google Maps Web Service
// client so each pipeline stage can map them onto the fault taxonomy.
package gmaps

import "strings"

// Class is the coarse category of a Maps API failure.
type Class int

const (
	// ClassNetwork covers transport failures, timeouts and unknown upstream
	// errors. Retryable.
	ClassNetwork Class = iota
	// ClassDenied covers key and permission errors.
	ClassDenied
	// ClassInvalid covers malformed requests.
	ClassInvalid
	// ClassNotFound covers unresolvable locations referenced by the request.
	ClassNotFound
	// ClassZeroResults covers an explicit empty result status.
	ClassZeroResults
)

// Classify inspects the error text produced by googlemaps.github.io/maps,
// which embeds the API status token (e.g. "maps: REQUEST_DENIED - ...").
// Anything unrecognized is treated as a network-level failure.
func Classify(err error) Class {
	if err == nil {
		return ClassNetwork
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, "REQUEST_DENIED"), strings.Contains(msg, "OVER_DAILY_LIMIT"):
		return ClassDenied
	case strings.Contains(msg, "INVALID_REQUEST"), strings.Contains(msg, "MAX_WAYPOINTS_EXCEEDED"):
		return ClassInvalid
	case strings.Contains(msg, "NOT_FOUND"):
		return ClassNotFound
	case strings.Contains(msg, "ZERO_RESULTS"):
		return ClassZeroResults
	default:
		return ClassNetwork
	}
}
