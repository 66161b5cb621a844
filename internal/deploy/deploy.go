// Package deploy implements the deployment gate: a sequential state
// machine that takes a validated workspace through pre-checks,
// artifact integration, build, build verification, and publish. A
// failed stage halts the machine; nothing rolls forward past a
// failure, and retry is an operator decision.
package deploy

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/factbench/verdiq/internal/workspace"
	"github.com/factbench/verdiq/pkg/logging"
)

// Status is a deployment state machine status.
type Status string

// Deployment statuses. ABORTED is reserved for pre-check failure;
// every later stage failure is FAILED.
const (
	StatusPending Status = "PENDING"
	StatusAborted Status = "ABORTED"
	StatusFailed  Status = "FAILED"
	StatusSuccess Status = "SUCCESS"
)

// Fixed locations under the project root.
const (
	dataDir          = "src/data"
	productsFile     = "products.json"
	reviewsFile      = "review_summary.json"
	comparisonFile   = "comparison_table.json"
	assetDir         = "src/assets/images/products"
	buildOutputDir   = "dist"
	publishScript    = "scripts/publish.sh"
	manifestFile     = "package.json"
	dependenciesDir  = "node_modules"
	placeholderImage = "/assets/images/products/placeholder.svg"
)

// CredentialEnvVar supplies the publish credential. Its absence is a
// warning, not an abort.
const CredentialEnvVar = "PUBLISH_TOKEN"

// DefaultDeployedURL is where a successful publish lands.
const DefaultDeployedURL = "https://factbench.github.io/VerdIQ/"

// State is the deployment report: one attempt's pre-check outcomes,
// per-stage statuses, and accumulated errors and warnings. A fresh
// State is created per attempt.
type State struct {
	DeploymentDate   string          `json:"deployment_date"`
	PreChecks        map[string]bool `json:"pre_deployment_checks"`
	BuildStatus      Status          `json:"build_status"`
	DeploymentStatus Status          `json:"deployment_status"`
	Errors           []string        `json:"errors"`
	Warnings         []string        `json:"warnings"`
	DeployedURL      string          `json:"deployed_url"`
}

func (s *State) addError(msg string) {
	s.Errors = append(s.Errors, msg)
}

func (s *State) addWarning(msg string) {
	s.Warnings = append(s.Warnings, msg)
}

// Config wires a Gate to its collaborators. Store and ProjectRoot are
// required; the rest default sensibly.
type Config struct {
	Store       *workspace.Store
	ProjectRoot string
	Runner      CommandRunner
	Logger      *zerolog.Logger
	DeployedURL string
}

// Gate executes the deployment state machine.
type Gate struct {
	store       *workspace.Store
	projectRoot string
	runner      CommandRunner
	logger      *zerolog.Logger
	deployedURL string
}

// New returns a gate for the given configuration.
func New(cfg Config) *Gate {
	if cfg.Runner == nil {
		cfg.Runner = ExecRunner{}
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.Default()
	}
	if cfg.DeployedURL == "" {
		cfg.DeployedURL = DefaultDeployedURL
	}
	return &Gate{
		store:       cfg.Store,
		projectRoot: cfg.ProjectRoot,
		runner:      cfg.Runner,
		logger:      cfg.Logger,
		deployedURL: cfg.DeployedURL,
	}
}

// Execute runs the five stages in order, halting at the first failure.
// The returned state always carries a terminal status; the deployment
// report is persisted to the store regardless of outcome.
func (g *Gate) Execute(ctx context.Context) *State {
	state := &State{
		DeploymentDate:   time.Now().UTC().Format(time.RFC3339),
		PreChecks:        map[string]bool{},
		BuildStatus:      StatusPending,
		DeploymentStatus: StatusPending,
		DeployedURL:      g.deployedURL,
	}
	defer g.saveReport(state)

	if !g.preChecks(state) {
		state.DeploymentStatus = StatusAborted
		g.logger.Error().Msg("pre-deployment checks failed, aborting")
		return state
	}

	stages := []struct {
		name string
		run  func(context.Context, *State) bool
	}{
		{"integrate", g.integrate},
		{"build", g.build},
		{"verify", g.verify},
		{"publish", g.publish},
	}
	for _, stage := range stages {
		g.logger.Info().Str("stage", stage.name).Msg("running deployment stage")
		if !stage.run(ctx, state) {
			state.DeploymentStatus = StatusFailed
			g.logger.Error().Str("stage", stage.name).Msg("deployment stage failed")
			return state
		}
	}

	state.DeploymentStatus = StatusSuccess
	g.logger.Info().Str("url", state.DeployedURL).Msg("deployment succeeded")
	return state
}

func (g *Gate) saveReport(state *State) {
	if err := g.store.SaveDeploymentReport(state); err != nil {
		g.logger.Warn().Err(err).Msg("could not persist deployment report")
	}
}
