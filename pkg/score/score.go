// Package score turns a set of category validation reports into a
// weighted quality score and an overall verdict. Scoring is pure and
// deterministic: the same reports always produce the same scorecard.
package score

import (
	"math"

	"github.com/factbench/verdiq/pkg/artifacts"
	"github.com/factbench/verdiq/pkg/validate"
)

// MinimumDeployableScore is the composite score floor below which the
// overall verdict is forced to FAIL regardless of category statuses.
const MinimumDeployableScore = 60.0

// Category weights. They sum to 1 so a perfect run scores 100.
const (
	weightImages  = 0.25
	weightText    = 0.30
	weightTables  = 0.25
	weightReviews = 0.20
)

// Base points per validation status, before coverage scaling.
var statusPoints = map[validate.Status]float64{
	validate.StatusPass:    100,
	validate.StatusPartial: 70,
	validate.StatusFail:    30,
}

// CategoryScore is the scored outcome of one category.
type CategoryScore struct {
	Category artifacts.Category `json:"category"`
	Status   validate.Status    `json:"status"`
	Score    float64            `json:"score"`
	Weight   float64            `json:"weight"`
}

// Card is the scorecard for one validation run: per-category scores,
// the weighted composite, and the overall verdict.
type Card struct {
	Categories []CategoryScore `json:"categories"`
	Composite  float64         `json:"overall_score"`
	Overall    validate.Status `json:"overall_status"`
}

// ByCategory returns the score entry for the given category, or nil.
func (c *Card) ByCategory(category artifacts.Category) *CategoryScore {
	for i := range c.Categories {
		if c.Categories[i].Category == category {
			return &c.Categories[i]
		}
	}
	return nil
}

// Deployable reports whether the scorecard clears the deployment floor
// without any category failing.
func (c *Card) Deployable() bool {
	return c.Overall != validate.StatusFail
}

// Compute scores a full set of category reports. Each category score is
// the status base points scaled by the category's coverage ratio; the
// tables category has no per-product coverage, so its multiplier is
// fixed at 1. Scores and the composite are rounded to two decimals.
// The overall verdict is PASS only when every category passes, FAIL
// when any category fails or the rounded composite falls below
// MinimumDeployableScore, and PARTIAL otherwise.
func Compute(reports *validate.Reports) *Card {
	card := &Card{}

	composite := 0.0
	allPass := true
	anyFail := false

	for _, entry := range []struct {
		report *validate.Report
		weight float64
	}{
		{reports.Images, weightImages},
		{reports.Text, weightText},
		{reports.Tables, weightTables},
		{reports.Reviews, weightReviews},
	} {
		s := scoreCategory(entry.report)
		composite += s * entry.weight
		card.Categories = append(card.Categories, CategoryScore{
			Category: entry.report.Category,
			Status:   entry.report.Status,
			Score:    s,
			Weight:   entry.weight,
		})

		switch entry.report.Status {
		case validate.StatusFail:
			anyFail = true
			allPass = false
		case validate.StatusPartial:
			allPass = false
		}
	}

	card.Composite = round2(composite)

	switch {
	case anyFail:
		card.Overall = validate.StatusFail
	case allPass:
		card.Overall = validate.StatusPass
	default:
		card.Overall = validate.StatusPartial
	}
	if card.Composite < MinimumDeployableScore {
		card.Overall = validate.StatusFail
	}

	return card
}

func scoreCategory(r *validate.Report) float64 {
	multiplier := r.CoverageRatio()
	if r.Category == artifacts.CategoryTables {
		multiplier = 1
	}
	return round2(statusPoints[r.Status] * multiplier)
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
