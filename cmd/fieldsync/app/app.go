// Package app provides the application context for the fieldsync CLI:
// configuration, logging, and the wired pipeline dependencies. Commands only
// talk to an App; nothing below this package reads flags or environment.
package app

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/guangfu250923/fieldsync/pkg/geocode"
	"github.com/guangfu250923/fieldsync/pkg/logging"
	"github.com/guangfu250923/fieldsync/pkg/pipeline"
	"github.com/guangfu250923/fieldsync/pkg/reconcile"
	"github.com/guangfu250923/fieldsync/pkg/remote"
	"github.com/guangfu250923/fieldsync/pkg/resources"
)

// App holds the CLI's wired dependencies.
type App struct {
	version string
	commit  string
	date    string

	config *Config
	logger *zerolog.Logger
	runID  string

	registry *resources.Registry
}

// New creates an App: configuration loaded, logger installed, schemas parsed.
func New(version, commit, date string) (*App, error) {
	config, err := LoadConfig()
	if err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	logger := NewLogger(config).With().Str("run_id", runID).Logger()
	logging.SetDefault(logger)

	registry, err := resources.Load()
	if err != nil {
		return nil, err
	}

	return &App{
		version:  version,
		commit:   commit,
		date:     date,
		config:   config,
		logger:   &logger,
		runID:    runID,
		registry: registry,
	}, nil
}

// Version returns the version string.
func (a *App) Version() string {
	return fmt.Sprintf("%s (commit %s, built %s)", a.version, a.commit, a.date)
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// Registry returns the loaded resource schemas.
func (a *App) Registry() *resources.Registry {
	return a.registry
}

// Pipeline wires a pipeline from the configuration: remote client, geocoder,
// reconciler, and output directory.
func (a *App) Pipeline() *pipeline.Pipeline {
	client := remote.New(
		remote.WithBaseURL(a.config.BaseURL),
		remote.WithTimeout(a.config.HTTPTimeout),
		remote.WithLogger(a.logger),
	)

	geocoder := geocode.New(a.config.GoogleMapsAPIKey,
		geocode.WithTimeout(a.config.HTTPTimeout),
		geocode.WithLogger(a.logger),
	)
	if !geocoder.Enabled() {
		a.logger.Warn().Msg("GOOGLE_MAPS_API_KEY not set; address fill is disabled")
	}

	reconciler := reconcile.New(
		reconcile.WithBaseURL(a.config.BaseURL),
		reconcile.WithLookup(geocoder.Lookup),
		reconcile.WithLogger(a.logger),
	)

	return pipeline.New(
		pipeline.WithClient(client),
		pipeline.WithReconciler(reconciler),
		pipeline.WithOutputDir(a.config.OutputDir),
		pipeline.WithLogger(a.logger),
	)
}

// ExitOnError prints the error and exits non-zero. Only input-file failures
// and configuration problems reach this; everything else degrades in place.
func ExitOnError(err error) {
	if err == nil {
		return
	}
	fmt.Fprintln(os.Stderr, "fieldsync:", err)
	os.Exit(1)
}
