// Package reconcile plans the create and update operations that would bring
// the remote datastore in line with field-collected station data. It computes
// field-level deltas instead of whole-record overwrites: remote-curated
// values (a human-edited address) survive, while genuinely stale notes and
// coordinates are caught.
//
// One parametrized algorithm serves every resource type; which fields
// participate, and under which of the three generic policies, is declared in
// the resource schema.
package reconcile

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/guangfu250923/fieldsync/pkg/geocode"
	"github.com/guangfu250923/fieldsync/pkg/logging"
	"github.com/guangfu250923/fieldsync/pkg/remote"
	"github.com/guangfu250923/fieldsync/pkg/resources"
	"github.com/guangfu250923/fieldsync/pkg/stations"
)

// Reconciler plans operations for one or more resource runs.
type Reconciler struct {
	baseURL string
	lookup  geocode.Lookup
	logger  *zerolog.Logger
}

// Option configures a Reconciler.
type Option func(*Reconciler)

// WithBaseURL sets the datastore base URL embedded in operation targets.
func WithBaseURL(url string) Option {
	return func(r *Reconciler) {
		if url != "" {
			r.baseURL = url
		}
	}
}

// WithLookup provides the coordinate-to-address lookup backing the
// fill-if-empty policy. Without one the policy is skipped entirely.
func WithLookup(lookup geocode.Lookup) Option {
	return func(r *Reconciler) {
		r.lookup = lookup
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(r *Reconciler) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// New creates a Reconciler.
func New(opts ...Option) *Reconciler {
	r := &Reconciler{
		baseURL: remote.DefaultBaseURL,
		logger:  logging.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Reconcile classifies every source station against the remote set and plans
// the resulting operations. The source set drives iteration in its normalized
// order, so every field-collected record is considered exactly once and two
// runs over identical inputs emit identical plans.
func (r *Reconciler) Reconcile(ctx context.Context, source, remoteSet *stations.Set, res *resources.Resource) *Plan {
	plan := &Plan{}

	for _, src := range source.List() {
		rem, matched := remoteSet.Get(src.Name)
		if !matched {
			plan.append(r.planCreate(ctx, src, res))
			plan.Counters.Created++
			continue
		}

		if rem.RemoteID == "" {
			// An update cannot be targeted without a remote identifier, and
			// promoting to a create would duplicate the record. Skip.
			r.logger.Warn().
				Str("resource", string(res.Type)).
				Str("name", src.Name).
				Msg("skipping matched record: missing identifier")
			plan.Counters.Skipped++
			continue
		}

		delta, reasons := r.computeDelta(ctx, src, rem, res)
		if len(delta) == 0 {
			// No-op diffs are not emitted; the log stays minimal and safe
			// to replay.
			r.logger.Debug().
				Str("resource", string(res.Type)).
				Str("name", src.Name).
				Msg("no changes")
			plan.Counters.Skipped++
			continue
		}

		r.logger.Info().
			Str("resource", string(res.Type)).
			Str("name", src.Name).
			Strs("fields", reasons).
			Msg("planning update")
		plan.append(PlannedOperation{
			HTTPMethod:  "PATCH",
			URL:         res.Endpoint(r.baseURL) + "/" + rem.RemoteID,
			RequestBody: delta,
			Name:        src.Name,
			Action:      ActionUpdate,
			Reasons:     reasons,
		})
		plan.Counters.Updated++
	}

	return plan
}

// computeDelta applies the resource's field policies in declared order and
// returns the update payload, empty when nothing needs to change.
func (r *Reconciler) computeDelta(ctx context.Context, src, rem stations.Station, res *resources.Resource) (map[string]any, []string) {
	delta := make(map[string]any)
	var reasons []string

	for _, fp := range res.Policies {
		switch fp.Policy {
		case resources.PolicyOverwrite:
			value := sourceValue(src, fp.Field)
			if !stations.TextEqual(value, rem.Field(fp.Field)) {
				delta[fp.Field] = value
				reasons = append(reasons, fp.Field)
			}

		case resources.PolicyFillIfEmpty:
			// Only ever fills a blank or placeholder remote value; a lookup
			// failure leaves the field out rather than writing a guess.
			if !stations.IsBlank(rem.Field(fp.Field)) {
				continue
			}
			if address, ok := r.resolveAddress(ctx, src); ok {
				delta[fp.Field] = address
				reasons = append(reasons, fp.Field)
			}

		case resources.PolicyCoordinates:
			if src.Coordinates != nil && !src.Coordinates.Equal(rem.Coordinates) {
				delta["coordinates"] = src.Coordinates
				reasons = append(reasons, "coordinates")
			}
		}
	}

	return delta, reasons
}

// planCreate builds a full creation payload: the canonical station's fields
// merged with the resource's declared defaults, plus a geocoded address when
// one can be resolved.
func (r *Reconciler) planCreate(ctx context.Context, src stations.Station, res *resources.Resource) PlannedOperation {
	r.logger.Info().
		Str("resource", string(res.Type)).
		Str("name", src.Name).
		Msg("planning create")

	payload := map[string]any{
		"name":        src.Name,
		"notes":       src.Notes,
		"coordinates": src.Coordinates,
	}
	for key, value := range res.CreateDefaults {
		payload[key] = value
	}

	address, _ := r.resolveAddress(ctx, src)
	payload[res.AddressField] = address
	for _, alias := range res.AddressAliases {
		payload[alias] = address
	}

	return PlannedOperation{
		HTTPMethod:  "POST",
		URL:         res.Endpoint(r.baseURL) + "/",
		RequestBody: payload,
		Name:        src.Name,
		Action:      ActionCreate,
	}
}

// resolveAddress lazily invokes the lookup, only when the caller actually
// needs an address and the station can be placed.
func (r *Reconciler) resolveAddress(ctx context.Context, src stations.Station) (string, bool) {
	if r.lookup == nil || src.Coordinates == nil {
		return "", false
	}
	address, err := r.lookup(ctx, src.Coordinates.Lat, src.Coordinates.Lng)
	if err != nil || address == "" {
		return "", false
	}
	return address, true
}

// sourceValue maps a policy field name to the canonical station value
// backing it.
func sourceValue(src stations.Station, field string) any {
	switch field {
	case "notes":
		return src.Notes
	case "info_source":
		return src.Source
	}
	return src.Field(field)
}
