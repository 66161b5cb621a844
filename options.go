package verdiq

import (
	"errors"

	"github.com/rs/zerolog"

	"github.com/factbench/verdiq/internal/deploy"
	"github.com/factbench/verdiq/internal/producers"
)

// Option is a function that configures a Pipeline instance.
type Option func(*config) error

// config holds the assembled pipeline configuration.
type config struct {
	workspaceDir string
	projectRoot  string
	sourceDir    string
	producers    []producers.Producer
	retry        producers.RetryPolicy
	runner       deploy.CommandRunner
	logger       *zerolog.Logger
	skipDeploy   bool
	deployedURL  string
}

func defaultConfig() *config {
	return &config{
		workspaceDir: "extraction-workspace",
		projectRoot:  ".",
		retry:        producers.DefaultRetryPolicy(),
	}
}

// WithWorkspace sets the artifact store root directory.
func WithWorkspace(dir string) Option {
	return func(c *config) error {
		if dir == "" {
			return errors.New("workspace directory cannot be empty")
		}
		c.workspaceDir = dir
		return nil
	}
}

// WithProjectRoot sets the publish project directory that holds the
// dataset, build tooling, and publish script.
func WithProjectRoot(dir string) Option {
	return func(c *config) error {
		if dir == "" {
			return errors.New("project root cannot be empty")
		}
		c.projectRoot = dir
		return nil
	}
}

// WithSourceDir points the default file-backed producers at a
// directory of pre-extracted artifacts.
func WithSourceDir(dir string) Option {
	return func(c *config) error {
		c.sourceDir = dir
		return nil
	}
}

// WithProducers replaces the default producers.
func WithProducers(ps ...producers.Producer) Option {
	return func(c *config) error {
		c.producers = ps
		return nil
	}
}

// WithRetryPolicy sets the producer retry policy.
func WithRetryPolicy(policy producers.RetryPolicy) Option {
	return func(c *config) error {
		if policy.MaxAttempts < 1 {
			return errors.New("retry policy needs at least one attempt")
		}
		c.retry = policy
		return nil
	}
}

// WithCommandRunner sets the runner used for external build and
// publish tools.
func WithCommandRunner(runner deploy.CommandRunner) Option {
	return func(c *config) error {
		c.runner = runner
		return nil
	}
}

// WithLogger sets the pipeline logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(c *config) error {
		c.logger = logger
		return nil
	}
}

// WithSkipDeploy disables the deployment phase; the pipeline stops
// after validation.
func WithSkipDeploy(skip bool) Option {
	return func(c *config) error {
		c.skipDeploy = skip
		return nil
	}
}

// WithDeployedURL overrides the URL recorded on successful publish.
func WithDeployedURL(url string) Option {
	return func(c *config) error {
		c.deployedURL = url
		return nil
	}
}
