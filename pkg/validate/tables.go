package validate

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/factbench/verdiq/pkg/artifacts"
)

// minComparisonProducts is the smallest comparison table considered
// complete.
const minComparisonProducts = 8

// Tables validates the tables artifact. A missing comparison table fails
// the category; too few rows or an absent required column caps it at
// PARTIAL. Rows with empty cells are recorded but never change the
// status on their own.
func Tables(a *artifacts.TablesArtifact) *Report {
	if a == nil {
		return missingArtifactReport(artifacts.CategoryTables)
	}

	details := &TablesDetails{}
	report := &Report{
		Category: artifacts.CategoryTables,
		Tables:   details,
	}

	table := a.ComparisonTable
	if table == nil {
		report.Status = StatusFail
		report.Issues = append(report.Issues, Issue{
			Severity:    SeverityCritical,
			Description: "no comparison table found",
		})
		return report
	}

	details.HasComparisonTable = true
	details.ComparisonProducts = len(table.Data)
	report.TotalProducts = len(table.Data)

	for _, row := range table.Data {
		name := row[artifacts.ComparisonColumnProduct]
		if name == "" {
			name = "Unknown"
		}
		var empty []string
		for _, col := range sortedKeys(row) {
			if strings.TrimSpace(row[col]) == "" {
				empty = append(empty, col)
			}
		}
		if len(empty) > 0 {
			details.EmptyCells = append(details.EmptyCells, EmptyCells{Product: name, EmptyFields: empty})
			report.Issues = append(report.Issues, Issue{
				Product:     name,
				Severity:    SeverityOptional,
				Description: fmt.Sprintf("empty cells: %s", strings.Join(empty, ", ")),
			})
		}
	}
	sort.Slice(details.EmptyCells, func(i, j int) bool {
		return details.EmptyCells[i].Product < details.EmptyCells[j].Product
	})

	for _, col := range artifacts.RequiredComparisonColumns() {
		if !slices.Contains(table.Headers, col) {
			details.MissingColumns = append(details.MissingColumns, col)
		}
	}
	if len(details.MissingColumns) > 0 {
		report.Issues = append(report.Issues, Issue{
			Severity:    SeverityImportant,
			Description: fmt.Sprintf("missing columns in comparison table: %s", strings.Join(details.MissingColumns, ", ")),
		})
	}

	switch {
	case details.ComparisonProducts == 0:
		report.Status = StatusFail
		report.Issues = append(report.Issues, Issue{
			Severity:    SeverityCritical,
			Description: "comparison table has no rows",
		})
	case details.ComparisonProducts < minComparisonProducts || len(details.MissingColumns) > 0:
		report.Status = StatusPartial
		if details.ComparisonProducts < minComparisonProducts {
			report.Issues = append(report.Issues, Issue{
				Severity:    SeverityImportant,
				Description: fmt.Sprintf("only %d products in comparison table (expected %d+)", details.ComparisonProducts, minComparisonProducts),
			})
		}
	default:
		report.Status = StatusPass
	}

	return report
}
