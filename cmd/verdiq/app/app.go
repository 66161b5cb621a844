// Package app provides the application context and dependency management
// for the verdiq CLI: configuration loading, logger setup, and lazy
// construction of the pipeline instance the commands share.
package app

import (
	"sync"

	"github.com/rs/zerolog"

	verdiq "github.com/factbench/verdiq"
	"github.com/factbench/verdiq/pkg/errors"
)

// App represents the verdiq application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string

	// Configuration
	config *Config

	// Logger
	logger *zerolog.Logger

	// Pipeline instance (lazy-initialized, singleton)
	mu       sync.Mutex
	pipeline verdiq.Pipeline
}

// New creates a new App instance with the given version information.
func New(version, commit, date string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
	}

	config, err := LoadConfig()
	if err != nil {
		return nil, errors.WrapResource("load", "config", "", err)
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// Pipeline returns the pipeline instance, creating it lazily. The
// extra options are only honored on first construction.
func (a *App) Pipeline(extra ...verdiq.Option) (verdiq.Pipeline, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.pipeline != nil {
		return a.pipeline, nil
	}

	opts := append(a.buildPipelineOptions(), extra...)
	p, err := verdiq.New(opts...)
	if err != nil {
		return nil, errors.WrapResource("create", "pipeline", "", err)
	}

	a.pipeline = p
	return p, nil
}

// buildPipelineOptions constructs pipeline options from the app
// configuration.
func (a *App) buildPipelineOptions() []verdiq.Option {
	opts := []verdiq.Option{
		verdiq.WithWorkspace(a.config.Workspace),
		verdiq.WithProjectRoot(a.config.ProjectRoot),
		verdiq.WithLogger(a.logger),
	}
	if a.config.SourceDir != "" {
		opts = append(opts, verdiq.WithSourceDir(a.config.SourceDir))
	}
	if a.config.DeployedURL != "" {
		opts = append(opts, verdiq.WithDeployedURL(a.config.DeployedURL))
	}
	return opts
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithPipeline sets a custom pipeline instance (useful for testing).
func WithPipeline(p verdiq.Pipeline) Option {
	return func(a *App) error {
		a.pipeline = p
		return nil
	}
}
