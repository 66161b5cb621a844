package verdiq

import (
	"fmt"
	"io"

	"github.com/factbench/verdiq/internal/deploy"
	"github.com/factbench/verdiq/pkg/recommend"
	"github.com/factbench/verdiq/pkg/reconcile"
	"github.com/factbench/verdiq/pkg/score"
	"github.com/factbench/verdiq/pkg/validate"
)

// PhaseStatus is the outcome of one pipeline phase.
type PhaseStatus string

// Phase outcomes.
const (
	PhaseSuccess PhaseStatus = "SUCCESS"
	PhaseFailed  PhaseStatus = "FAILED"
	PhaseSkipped PhaseStatus = "SKIPPED"
)

// Phase records one pipeline phase's outcome.
type Phase struct {
	Name   string      `json:"name"`
	Status PhaseStatus `json:"status"`
	Error  string      `json:"error,omitempty"`
}

// Validation bundles everything the validation phase computes.
type Validation struct {
	Reports         *validate.Reports `json:"reports"`
	Reconciliation  *reconcile.Result `json:"reconciliation"`
	Score           *score.Card       `json:"score"`
	Summary         *score.Summary    `json:"summary"`
	Recommendations recommend.List    `json:"recommendations"`
}

// Result is the orchestration report of one full pipeline run. It is
// persisted to the workspace as orchestration_report.json and is
// always produced, even when a phase fails.
type Result struct {
	Date          string        `json:"orchestration_date"`
	Source        string        `json:"source"`
	Phases        []Phase       `json:"phases"`
	Validation    *Validation   `json:"validation,omitempty"`
	Deployment    *deploy.State `json:"deployment,omitempty"`
	OverallStatus string        `json:"overall_status"`
}

// Failed reports whether the run ended in failure.
func (r *Result) Failed() bool {
	return r.OverallStatus == "FAILED"
}

func (r *Result) addPhase(name string, status PhaseStatus, err error) {
	p := Phase{Name: name, Status: status}
	if err != nil {
		p.Error = err.Error()
	}
	r.Phases = append(r.Phases, p)
}

// WriteSummary renders the human-readable run summary. It is written
// unconditionally, failure or not, and always ends with the overall
// status line.
func (r *Result) WriteSummary(w io.Writer) {
	fmt.Fprintf(w, "\n%s\n", divider)
	fmt.Fprintf(w, "Pipeline summary for %s\n", r.Source)
	fmt.Fprintf(w, "%s\n", divider)

	for _, phase := range r.Phases {
		fmt.Fprintf(w, "%-12s %s\n", phase.Name, phase.Status)
		if phase.Error != "" {
			fmt.Fprintf(w, "%-12s   %s\n", "", phase.Error)
		}
	}

	if v := r.Validation; v != nil && v.Summary != nil {
		fmt.Fprintf(w, "\nVerdict: %s (score %.2f/100)\n", v.Summary.OverallStatus, v.Summary.DataQualityScore)
		if n := len(v.Recommendations); n > 0 {
			fmt.Fprintf(w, "Recommendations: %d\n", n)
		}
	}
	if d := r.Deployment; d != nil {
		fmt.Fprintf(w, "Deployment: %s\n", d.DeploymentStatus)
		for _, e := range d.Errors {
			fmt.Fprintf(w, "  - %s\n", e)
		}
		if d.DeploymentStatus == deploy.StatusSuccess {
			fmt.Fprintf(w, "Live at: %s\n", d.DeployedURL)
		}
	}

	fmt.Fprintf(w, "\nOverall Status: %s\n", r.OverallStatus)
}

const divider = "============================================================"
