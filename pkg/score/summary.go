package score

import (
	"github.com/factbench/verdiq/pkg/artifacts"
	"github.com/factbench/verdiq/pkg/validate"
)

// Summary is the persisted validation summary document consumed by the
// deployment gate and by operators.
type Summary struct {
	OverallStatus    validate.Status                        `json:"overall_status"`
	DataQualityScore float64                                `json:"data_quality_score"`
	CategoryStatuses map[artifacts.Category]validate.Status `json:"category_statuses"`
	CriticalIssues   int                                    `json:"critical_issues"`
	ImportantIssues  int                                    `json:"important_issues"`
}

// NewSummary condenses a validation run into its summary document.
func NewSummary(reports *validate.Reports, card *Card) *Summary {
	s := &Summary{
		OverallStatus:    card.Overall,
		DataQualityScore: card.Composite,
		CategoryStatuses: map[artifacts.Category]validate.Status{},
		CriticalIssues:   reports.CountSeverity(validate.SeverityCritical),
		ImportantIssues:  reports.CountSeverity(validate.SeverityImportant),
	}
	for _, r := range reports.All() {
		if r != nil {
			s.CategoryStatuses[r.Category] = r.Status
		}
	}
	return s
}

// Acceptable reports whether the summary clears the deployment
// pre-checks: a non-FAIL verdict and a score at or above the floor.
func (s *Summary) Acceptable() bool {
	return s.OverallStatus != validate.StatusFail && s.DataQualityScore >= MinimumDeployableScore
}
