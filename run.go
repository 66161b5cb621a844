package verdiq

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/factbench/verdiq/internal/deploy"
	"github.com/factbench/verdiq/internal/producers"
	"github.com/factbench/verdiq/pkg/recommend"
	"github.com/factbench/verdiq/pkg/reconcile"
	"github.com/factbench/verdiq/pkg/score"
	"github.com/factbench/verdiq/pkg/validate"
)

// Run executes the full pipeline. Every phase failure is recorded in
// the result rather than propagated; the returned error only reflects
// a failure to assemble or persist the run report itself. The result
// is always non-nil and the orchestration report is always persisted.
func (p *pipeline) Run(ctx context.Context, source string) (*Result, error) {
	result := &Result{
		Date:          time.Now().UTC().Format(time.RFC3339),
		Source:        source,
		OverallStatus: "RUNNING",
	}

	// A failed producer degrades validation rather than halting the run;
	// the missing artifact surfaces as a FAIL category report.
	p.runExtraction(ctx, source, result)

	validation, err := p.Validate(ctx)
	if err != nil {
		result.addPhase("validation", PhaseFailed, err)
	} else {
		result.Validation = validation
		result.addPhase("validation", PhaseSuccess, nil)
	}

	p.runDeployment(ctx, result, validation)

	result.OverallStatus = overallStatus(result)
	if err := p.store.SaveReport(result); err != nil {
		return result, fmt.Errorf("persisting orchestration report: %w", err)
	}
	return result, nil
}

// runExtraction fans the producers out as concurrent tasks and waits
// for all of them before any artifact is read.
func (p *pipeline) runExtraction(ctx context.Context, source string, result *Result) {
	if len(p.config.producers) == 0 {
		result.addPhase("extraction", PhaseSkipped, nil)
		return
	}

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs = map[string]error{}
	)
	for _, producer := range p.config.producers {
		wg.Add(1)
		go func(producer producers.Producer) {
			defer wg.Done()
			if err := producers.Run(ctx, producer, source, p.config.retry); err != nil {
				mu.Lock()
				errs[string(producer.Category())] = err
				mu.Unlock()
			}
		}(producer)
	}
	wg.Wait()

	for _, producer := range p.config.producers {
		name := string(producer.Category())
		if err := errs[name]; err != nil {
			result.addPhase(name, PhaseFailed, err)
		} else {
			result.addPhase(name, PhaseSuccess, nil)
		}
	}
}

// Validate implements Pipeline. Validators and the reconciler never
// fail; only persisting the summary can.
func (p *pipeline) Validate(_ context.Context) (*Validation, error) {
	bundle := p.store.LoadBundle()

	reports := validate.Bundle(bundle)
	reconciliation := reconcile.Bundle(bundle)
	card := score.Compute(reports)
	summary := score.NewSummary(reports, card)

	v := &Validation{
		Reports:         reports,
		Reconciliation:  reconciliation,
		Score:           card,
		Summary:         summary,
		Recommendations: recommend.Build(reports, reconciliation),
	}

	p.logger.Info().
		Str("status", string(summary.OverallStatus)).
		Float64("score", summary.DataQualityScore).
		Int("critical_issues", summary.CriticalIssues).
		Msg("validation completed")

	if err := p.store.SaveValidationSummary(summary); err != nil {
		return v, err
	}
	return v, nil
}

// Deploy implements Pipeline.
func (p *pipeline) Deploy(ctx context.Context) (*deploy.State, error) {
	state := p.gate().Execute(ctx)
	if state.DeploymentStatus != deploy.StatusSuccess {
		return state, fmt.Errorf("deployment %s: %w",
			state.DeploymentStatus, errors.Join(stateErrors(state)...))
	}
	return state, nil
}

func (p *pipeline) runDeployment(ctx context.Context, result *Result, validation *Validation) {
	switch {
	case p.config.skipDeploy:
		result.addPhase("deployment", PhaseSkipped, nil)
		return
	case validation == nil || validation.Summary.OverallStatus == validate.StatusFail:
		result.addPhase("deployment", PhaseSkipped,
			errors.New("validation did not pass"))
		return
	}

	state := p.gate().Execute(ctx)
	result.Deployment = state
	if state.DeploymentStatus == deploy.StatusSuccess {
		result.addPhase("deployment", PhaseSuccess, nil)
	} else {
		result.addPhase("deployment", PhaseFailed,
			fmt.Errorf("deployment %s", state.DeploymentStatus))
	}
}

// overallStatus condenses the phases into SUCCESS or FAILED. A skipped
// deployment does not fail the run; a skipped deployment caused by a
// failing verdict does, through the validation verdict itself.
func overallStatus(result *Result) string {
	for _, phase := range result.Phases {
		if phase.Status == PhaseFailed {
			return "FAILED"
		}
	}
	if v := result.Validation; v != nil && v.Summary.OverallStatus == validate.StatusFail {
		return "FAILED"
	}
	return "SUCCESS"
}

func stateErrors(state *deploy.State) []error {
	errs := make([]error, 0, len(state.Errors))
	for _, e := range state.Errors {
		errs = append(errs, errors.New(e))
	}
	return errs
}
