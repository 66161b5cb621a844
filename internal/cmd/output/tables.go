package output

import (
	"fmt"
	"sort"
	"strings"

	"github.com/olekukonko/tablewriter/tw"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/factbench/verdiq/internal/deploy"
	"github.com/factbench/verdiq/pkg/recommend"
	"github.com/factbench/verdiq/pkg/score"
	"github.com/factbench/verdiq/pkg/validate"
)

// ScorecardToTableData renders the per-category validation outcome.
func ScorecardToTableData(reports *validate.Reports, card *score.Card) Data {
	caser := cases.Title(language.English)

	data := Data{
		Headers:         []string{"Category", "Status", "Coverage", "Score", "Issues"},
		ColumnAlignment: []tw.Align{tw.AlignLeft, tw.AlignCenter, tw.AlignRight, tw.AlignRight, tw.AlignRight},
	}
	for _, r := range reports.All() {
		if r == nil {
			continue
		}
		row := []string{
			caser.String(string(r.Category)),
			string(r.Status),
			fmt.Sprintf("%.0f%%", r.Coverage),
			"",
			fmt.Sprintf("%d", len(r.Issues)),
		}
		if entry := card.ByCategory(r.Category); entry != nil {
			row[3] = fmt.Sprintf("%.2f", entry.Score)
		}
		data.Rows = append(data.Rows, row)
	}
	data.Rows = append(data.Rows, []string{
		"Overall",
		string(card.Overall),
		"",
		fmt.Sprintf("%.2f", card.Composite),
		"",
	})
	return data
}

// RecommendationsToTableData renders the prioritized action list.
func RecommendationsToTableData(list recommend.List) Data {
	caser := cases.Title(language.English)

	data := Data{
		Headers:         []string{"Priority", "Category", "Action", "Affected"},
		ColumnAlignment: []tw.Align{tw.AlignCenter, tw.AlignLeft, tw.AlignLeft, tw.AlignRight},
	}
	for _, r := range list {
		affected := ""
		if r.Count > 0 {
			affected = fmt.Sprintf("%d", r.Count)
		}
		data.Rows = append(data.Rows, []string{
			string(r.Priority),
			caser.String(string(r.Category)),
			r.Action,
			affected,
		})
	}
	return data
}

// DeploymentToTableData renders a deployment report.
func DeploymentToTableData(state *deploy.State) Data {
	caser := cases.Title(language.English)

	data := Data{
		Headers:         []string{"Check", "Result"},
		ColumnAlignment: []tw.Align{tw.AlignLeft, tw.AlignCenter},
	}
	for _, name := range sortedCheckNames(state.PreChecks) {
		result := "FAIL"
		if state.PreChecks[name] {
			result = "OK"
		}
		data.Rows = append(data.Rows, []string{
			caser.String(strings.ReplaceAll(name, "_", " ")),
			result,
		})
	}
	data.Rows = append(data.Rows,
		[]string{"Build", string(state.BuildStatus)},
		[]string{"Deployment", string(state.DeploymentStatus)},
	)
	return data
}

func sortedCheckNames(checks map[string]bool) []string {
	names := make([]string, 0, len(checks))
	for name := range checks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
