// Package source normalizes raw placemark records into the canonical
// station set for one resource type. It is a pure transformation: no network,
// no storage, only diagnostics for the records it drops.
package source

import (
	"github.com/rs/zerolog"

	"github.com/guangfu250923/fieldsync/pkg/logging"
	"github.com/guangfu250923/fieldsync/pkg/placemarks"
	"github.com/guangfu250923/fieldsync/pkg/resources"
	"github.com/guangfu250923/fieldsync/pkg/stations"
)

// Normalize filters placemarks by the resource's predicate and converts the
// survivors to canonical stations, in input order. That order is load-bearing:
// it becomes the iteration order for operation emission, which is what makes
// two runs over the same input produce identical plans.
//
// Records are dropped, with a diagnostic, when they have no usable
// coordinates (a station that cannot be placed cannot be reconciled or
// created) or when their name was already accepted earlier in the run
// (first occurrence wins; field data has no disambiguation key to merge on).
func Normalize(pms []placemarks.Placemark, res *resources.Resource, logger *zerolog.Logger) *stations.Set {
	if logger == nil {
		logger = logging.Default()
	}

	set := stations.NewSet()
	for _, p := range pms {
		if !res.Filter.Match(p) {
			continue
		}

		lat, lng, ok := p.Coordinates()
		if !ok {
			logger.Warn().
				Str("resource", string(res.Type)).
				Str("name", p.Name).
				Msg("skipping record without coordinates")
			continue
		}

		station := stations.Station{
			Name:        p.Name,
			Notes:       stations.CleanText(p.Description),
			Source:      stations.FieldSource,
			Coordinates: &stations.Coordinates{Lat: lat, Lng: lng},
		}
		if !set.Add(station) {
			logger.Warn().
				Str("resource", string(res.Type)).
				Str("name", p.Name).
				Msg("skipping duplicate name")
		}
	}
	return set
}
