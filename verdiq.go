// Package verdiq orchestrates the product-data quality pipeline: four
// extraction producers fan out concurrently, then validation, scoring,
// and recommendation run over the collected artifacts, and a sequential
// deployment gate consumes the verdict.
package verdiq

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/factbench/verdiq/internal/deploy"
	"github.com/factbench/verdiq/internal/producers"
	"github.com/factbench/verdiq/internal/workspace"
	"github.com/factbench/verdiq/pkg/logging"
)

// Pipeline runs the extraction, validation, and deployment phases.
type Pipeline interface {
	// Run executes the full pipeline for a source: producer fan-out,
	// validation, then the deployment gate unless configured off. The
	// returned Result is non-nil even when err is non-nil.
	Run(ctx context.Context, source string) (*Result, error)

	// Validate runs the validation phase over the artifacts already in
	// the workspace and persists the validation summary.
	Validate(ctx context.Context) (*Validation, error)

	// Deploy runs the deployment gate against the last persisted
	// validation summary.
	Deploy(ctx context.Context) (*deploy.State, error)
}

// pipeline is the internal implementation of the Pipeline interface.
type pipeline struct {
	config *config
	store  *workspace.Store
	logger *zerolog.Logger
}

// New creates a new Pipeline with the given options.
func New(opts ...Option) (Pipeline, error) {
	p := &pipeline{
		config: defaultConfig(),
	}

	if err := p.options(opts...); err != nil {
		return nil, fmt.Errorf("applying options: %w", err)
	}

	if p.config.logger == nil {
		p.config.logger = logging.Default()
	}
	p.logger = p.config.logger
	p.store = workspace.New(p.config.workspaceDir, p.logger)

	if len(p.config.producers) == 0 && p.config.sourceDir != "" {
		p.config.producers = producers.ForStore(p.config.sourceDir, p.store, p.logger)
	}

	return p, nil
}

// options applies each option to the pipeline config.
func (p *pipeline) options(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(p.config); err != nil {
			return err
		}
	}
	return nil
}

// gate builds the deployment gate from the pipeline's configuration.
func (p *pipeline) gate() *deploy.Gate {
	return deploy.New(deploy.Config{
		Store:       p.store,
		ProjectRoot: p.config.projectRoot,
		Runner:      p.config.runner,
		Logger:      p.logger,
		DeployedURL: p.config.deployedURL,
	})
}
