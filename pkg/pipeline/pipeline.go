// Package pipeline orchestrates one resource type end to end: normalize the
// field-collected records, fetch and normalize the remote collection, dump
// both snapshots, reconcile, and emit the operation log. Pipelines run
// strictly sequentially, one resource finishing before the next begins, and
// share no mutable state.
package pipeline

import (
	"context"
	stderrors "errors"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/guangfu250923/fieldsync/pkg/errors"
	"github.com/guangfu250923/fieldsync/pkg/logging"
	"github.com/guangfu250923/fieldsync/pkg/placemarks"
	"github.com/guangfu250923/fieldsync/pkg/reconcile"
	"github.com/guangfu250923/fieldsync/pkg/remote"
	"github.com/guangfu250923/fieldsync/pkg/resources"
	"github.com/guangfu250923/fieldsync/pkg/save"
	"github.com/guangfu250923/fieldsync/pkg/snapshot"
	"github.com/guangfu250923/fieldsync/pkg/source"
)

// Pipeline wires the stages for resource runs.
type Pipeline struct {
	client     *remote.Client
	reconciler *reconcile.Reconciler
	outputDir  string
	logger     *zerolog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithClient sets the remote datastore client.
func WithClient(client *remote.Client) Option {
	return func(p *Pipeline) {
		if client != nil {
			p.client = client
		}
	}
}

// WithReconciler sets the reconciler.
func WithReconciler(r *reconcile.Reconciler) Option {
	return func(p *Pipeline) {
		if r != nil {
			p.reconciler = r
		}
	}
}

// WithOutputDir sets the directory receiving snapshots and operation logs.
// Filenames within it are fixed per resource by the schema.
func WithOutputDir(dir string) Option {
	return func(p *Pipeline) {
		if dir != "" {
			p.outputDir = dir
		}
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(p *Pipeline) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// New creates a Pipeline.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		client:     remote.New(),
		reconciler: reconcile.New(),
		outputDir:  ".",
		logger:     logging.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Result summarizes one resource run.
type Result struct {
	Resource    resources.Type
	SourceCount int
	RemoteCount int
	Plan        *reconcile.Plan

	// Paths of the artifacts actually written; empty when an output was
	// skipped (no data) or failed.
	SourceFile string
	DBFile     string
	PlanFile   string
}

// Run executes the pipeline for one resource against already-read placemark
// records. Every failure past the input file degrades: a failed fetch
// reconciles against an empty remote set, a failed snapshot or log write
// loses that artifact only.
func (p *Pipeline) Run(ctx context.Context, res *resources.Resource, pms []placemarks.Placemark) Result {
	result := Result{Resource: res.Type}

	src := source.Normalize(pms, res, p.logger)
	result.SourceCount = src.Len()
	p.logger.Info().
		Str("resource", string(res.Type)).
		Int("count", src.Len()).
		Msg("normalized source records")

	result.SourceFile = p.write(res, res.SourceFile, func(path string) error {
		return snapshot.WriteSource(path, src)
	})

	remoteSet, err := p.client.FetchStations(ctx, res)
	if err != nil {
		// Degraded state: every source record will plan as a create.
		p.logger.Error().
			Str("resource", string(res.Type)).
			Err(err).
			Msg("remote fetch failed; reconciling against empty set")
	}
	result.RemoteCount = remoteSet.Len()

	result.DBFile = p.write(res, res.DBFile, func(path string) error {
		return snapshot.WriteDB(path, remoteSet, res.SnapshotColumns)
	})

	if src.Len() == 0 {
		p.logger.Warn().
			Str("resource", string(res.Type)).
			Msg("no source records; skipping reconciliation")
		result.Plan = &reconcile.Plan{}
		return result
	}

	result.Plan = p.reconciler.Reconcile(ctx, src, remoteSet, res)
	result.PlanFile = p.write(res, res.PlanFile, func(path string) error {
		return save.Emit(path, result.Plan)
	})

	p.logger.Info().
		Str("resource", string(res.Type)).
		Int("updated", result.Plan.Counters.Updated).
		Int("created", result.Plan.Counters.Created).
		Int("skipped", result.Plan.Counters.Skipped).
		Int("operations", len(result.Plan.Operations)).
		Msg("reconciliation complete")
	return result
}

// RunAll executes the given resources in order, one completed run at a time.
func (p *Pipeline) RunAll(ctx context.Context, all []*resources.Resource, pms []placemarks.Placemark) []Result {
	results := make([]Result, 0, len(all))
	for _, res := range all {
		results = append(results, p.Run(ctx, res, pms))
	}
	return results
}

// write produces one output artifact, reporting but never propagating
// failure. It returns the written path, or "" when nothing was written.
func (p *Pipeline) write(res *resources.Resource, file string, writeFn func(path string) error) string {
	path := filepath.Join(p.outputDir, file)
	err := writeFn(path)
	switch {
	case err == nil:
		p.logger.Info().
			Str("resource", string(res.Type)).
			Str("path", path).
			Msg("wrote output")
		return path
	case stderrors.Is(err, errors.ErrNoData):
		p.logger.Warn().
			Str("resource", string(res.Type)).
			Str("path", path).
			Msg("no data to write")
	default:
		p.logger.Error().
			Str("resource", string(res.Type)).
			Str("path", path).
			Err(err).
			Msg("failed to write output")
	}
	return ""
}
