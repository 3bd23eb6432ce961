// Package pipeline coordinates the four-stage route generation run:
// geocoding, place search, waypoint selection and directions calculation.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/pawpath/routegen/internal/directions"
	"github.com/pawpath/routegen/internal/faults"
	"github.com/pawpath/routegen/internal/geocode"
	"github.com/pawpath/routegen/internal/metrics"
	"github.com/pawpath/routegen/internal/models"
	"github.com/pawpath/routegen/internal/places"
	"github.com/pawpath/routegen/internal/selector"
)

// metersPerKm converts the requested walk distance into a search radius:
// the radius must cover the whole requested loop.
const metersPerKm = 1000

// Options carries the gates and deadlines the orchestrator enforces. The
// availability flag lives here, as injected configuration, never read from
// ambient process state at call time.
type Options struct {
	AIEnabled       bool          // Gates the whole feature before any work happens.
	StageTimeout    time.Duration // Deadline for each external call.
	PipelineTimeout time.Duration // Deadline for the whole run.
	MaxRetries      uint64        // Transient retries for the geocode and place-search stages.
}

// Orchestrator validates input, sequences the stages and assembles the
// final recommendation. It holds no request state; every run is fresh and
// nothing is cached between calls, so "show me another route" is simply the
// same call again.
type Orchestrator struct {
	log        *slog.Logger
	geocoder   geocode.Geocoder
	finder     places.Finder
	selector   selector.Selector
	calculator directions.Calculator
	metrics    *metrics.Metrics
	opts       Options
}

// New creates an Orchestrator from the four stage implementations.
func New(
	log *slog.Logger,
	geocoder geocode.Geocoder,
	finder places.Finder,
	sel selector.Selector,
	calculator directions.Calculator,
	m *metrics.Metrics,
	opts Options,
) *Orchestrator {
	return &Orchestrator{
		log:        log,
		geocoder:   geocoder,
		finder:     finder,
		selector:   sel,
		calculator: calculator,
		metrics:    m,
		opts:       opts,
	}
}

// GenerateRoute runs the full pipeline for one request. Validation and
// authorization are resolved locally before any network call; every stage
// failure aborts the run and keeps its taxonomy kind. There is no partial
// result: the recommendation exists only as the output of a fully
// successful run.
func (o *Orchestrator) GenerateRoute(
	ctx context.Context,
	identity string,
	locationText string,
	prefs models.RoutePreferences,
) (rec *models.RouteRecommendation, err error) {
	defer func() {
		o.metrics.RoutesGenerated.WithLabelValues(outcomeLabel(err)).Inc()
	}()

	if !o.opts.AIEnabled {
		return nil, faults.ErrFeatureDisabled
	}
	if identity == "" {
		return nil, faults.Wrapf(faults.ErrUnauthorized, nil, "no authenticated identity")
	}

	trimmed := strings.TrimSpace(locationText)
	if len(trimmed) < 2 {
		return nil, faults.Wrapf(faults.ErrInvalidInput, nil, "location text too short")
	}
	if !prefs.DistanceValid() {
		return nil, faults.Wrapf(faults.ErrInvalidInput, nil,
			"requested distance %.1f km outside [1, 10]", prefs.RequestedDistanceKm)
	}

	ctx, cancel := context.WithTimeout(ctx, o.opts.PipelineTimeout)
	defer cancel()

	o.log.InfoContext(ctx, "Generating route",
		"identity", identity, "location", trimmed, "distance_km", prefs.RequestedDistanceKm)

	var geoRes *models.GeocodeResult
	err = o.retryTransient(ctx, "geocode", func(sctx context.Context) error {
		var rerr error
		geoRes, rerr = o.geocoder.Resolve(sctx, trimmed)
		return rerr
	})
	if err != nil {
		return nil, err
	}

	radius := prefs.RequestedDistanceKm * metersPerKm
	var found *places.SearchResult
	err = o.retryTransient(ctx, "place_search", func(sctx context.Context) error {
		var rerr error
		found, rerr = o.finder.FindPOIs(sctx, geoRes.Location, radius)
		return rerr
	})
	if err != nil {
		return nil, err
	}

	proposal, err := o.selectWaypoints(ctx, geoRes.Location, found.Merged, prefs)
	if err != nil {
		return nil, err
	}

	var dirRes *models.DirectionsResult
	err = o.runStage(ctx, "directions", func(sctx context.Context) error {
		var rerr error
		dirRes, rerr = o.calculator.Calculate(sctx, proposal.Waypoints)
		return rerr
	})
	if err != nil {
		return nil, err
	}

	routeName := proposal.RouteName
	if routeName == "" {
		routeName = fmt.Sprintf("Walk near %s", geoRes.FormattedAddress)
	}

	rec = &models.RouteRecommendation{
		RouteName:         routeName,
		Waypoints:         proposal.Waypoints,
		EstimatedDistance: formatDistance(dirRes.TotalDistanceMeters),
		Highlights:        proposal.Highlights,
		Directions:        dirRes,
	}

	o.log.InfoContext(ctx, "Route generated",
		"route", rec.RouteName,
		"waypoints", len(rec.Waypoints),
		"distance_m", dirRes.TotalDistanceMeters)

	return rec, nil
}

// selectWaypoints runs the selector stage and re-invokes the oracle once
// when the proposal skipped a required category. The second proposal is
// accepted as-is; if the second attempt fails outright, the first valid
// proposal stands.
func (o *Orchestrator) selectWaypoints(
	ctx context.Context,
	origin models.Coordinates,
	candidates []models.Place,
	prefs models.RoutePreferences,
) (*selector.Proposal, error) {
	var proposal *selector.Proposal
	err := o.runStage(ctx, "select", func(sctx context.Context) error {
		var rerr error
		proposal, rerr = o.selector.Select(sctx, origin, candidates, prefs)
		return rerr
	})
	if err != nil {
		if errors.Is(err, faults.ErrMalformedSelection) {
			o.metrics.SelectorRejections.Inc()
		}
		return nil, err
	}

	missing := missingCategories(proposal.Waypoints, prefs.MustInclude)
	if len(missing) == 0 {
		return proposal, nil
	}

	o.log.WarnContext(ctx, "Proposal skipped required categories, asking once more",
		"missing", missing)

	var second *selector.Proposal
	err = o.runStage(ctx, "select", func(sctx context.Context) error {
		var rerr error
		second, rerr = o.selector.Select(sctx, origin, candidates, prefs)
		return rerr
	})
	if err != nil {
		if errors.Is(err, faults.ErrMalformedSelection) {
			o.metrics.SelectorRejections.Inc()
		}
		o.log.WarnContext(ctx, "Second selection attempt failed, keeping first proposal", "error", err)
		return proposal, nil
	}

	return second, nil
}

// runStage executes one external call under the per-stage deadline and
// records its duration and outcome.
func (o *Orchestrator) runStage(ctx context.Context, stage string, fn func(context.Context) error) error {
	sctx, cancel := context.WithTimeout(ctx, o.opts.StageTimeout)
	defer cancel()

	start := time.Now()
	err := fn(sctx)
	o.metrics.StageSeconds.WithLabelValues(stage).Observe(time.Since(start).Seconds())
	if err != nil {
		o.metrics.UpstreamErrors.WithLabelValues(stage).Inc()
	}

	return err
}

// retryTransient is runStage plus a small bounded exponential backoff,
// retrying only network-level failures. Everything else is permanent and
// propagates unchanged in kind.
func (o *Orchestrator) retryTransient(ctx context.Context, stage string, fn func(context.Context) error) error {
	operation := func() error {
		err := o.runStage(ctx, stage, fn)
		if err != nil && !faults.Transient(err) {
			return backoff.Permanent(err)
		}
		return err
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), o.opts.MaxRetries), ctx)

	err := backoff.Retry(operation, policy)
	if err != nil && !faults.Transient(err) &&
		(errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled)) {
		// A deadline hit while backoff was sleeping surfaces the bare context
		// error; keep the taxonomy kind so callers see a retryable timeout.
		return faults.Wrapf(faults.ErrTransient, err, "%s stage gave up waiting", stage)
	}

	return err
}

// missingCategories returns the required categories absent from the
// waypoint sequence.
func missingCategories(waypoints []models.Waypoint, required []models.Category) []models.Category {
	present := make(map[models.Category]bool, len(waypoints))
	for _, wp := range waypoints {
		present[wp.Category] = true
	}

	var missing []models.Category
	for _, cat := range required {
		if !present[cat] {
			missing = append(missing, cat)
		}
	}

	return missing
}

func formatDistance(meters int) string {
	return fmt.Sprintf("%.1f km", float64(meters)/metersPerKm)
}

// outcomeLabel maps a run result onto the metric status label.
func outcomeLabel(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, faults.ErrFeatureDisabled):
		return "feature_disabled"
	case errors.Is(err, faults.ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, faults.ErrInvalidInput), errors.Is(err, faults.ErrInsufficientWaypoints):
		return "invalid_input"
	case errors.Is(err, faults.ErrMalformedSelection):
		return "malformed_selection"
	case errors.Is(err, faults.ErrTransient):
		return "transient"
	default:
		return "upstream_failure"
	}
}
