// Package recommend turns validation and reconciliation findings into
// a prioritized action list. The transform is pure and stateless; the
// same reports always yield the same recommendations in the same order.
package recommend

import (
	"fmt"
	"sort"

	"github.com/factbench/verdiq/pkg/artifacts"
	"github.com/factbench/verdiq/pkg/reconcile"
	"github.com/factbench/verdiq/pkg/validate"
)

// Priority orders recommendations by urgency.
type Priority string

// Recommendation priorities, most urgent first.
const (
	PriorityCritical Priority = "CRITICAL"
	PriorityHigh     Priority = "HIGH"
	PriorityMedium   Priority = "MEDIUM"
	PriorityLow      Priority = "LOW"
)

// SampleCap bounds the number of product identities attached to a
// recommendation. Count always reflects the full affected set.
const SampleCap = 5

var priorityRank = map[Priority]int{
	PriorityCritical: 0,
	PriorityHigh:     1,
	PriorityMedium:   2,
	PriorityLow:      3,
}

// Recommendation is one prioritized action. Sample holds at most
// SampleCap affected product identities; Count is the true size of the
// affected set.
type Recommendation struct {
	Priority Priority           `json:"priority"`
	Category artifacts.Category `json:"category"`
	Action   string             `json:"action"`
	Count    int                `json:"count,omitempty"`
	Sample   []string           `json:"sample,omitempty"`
}

// List is an ordered recommendation list.
type List []Recommendation

// ByPriority returns the recommendations carrying the given priority,
// preserving order.
func (l List) ByPriority(p Priority) List {
	var out List
	for _, r := range l {
		if r.Priority == p {
			out = append(out, r)
		}
	}
	return out
}

// Build converts the category validation reports, plus an optional
// reconciliation result, into a prioritized action list. Reconciliation
// findings only ever produce MEDIUM or LOW advisories. The list is
// sorted by priority, then category, then action.
func Build(reports *validate.Reports, rec *reconcile.Result) List {
	var list List

	add := func(p Priority, c artifacts.Category, action string, affected []string) {
		r := Recommendation{Priority: p, Category: c, Action: action, Count: len(affected)}
		if len(affected) > SampleCap {
			r.Sample = affected[:SampleCap]
		} else {
			r.Sample = affected
		}
		list = append(list, r)
	}

	if images := reports.Images; images != nil && images.Images != nil {
		d := images.Images
		if len(d.ProductsWithoutImages) > 0 {
			add(PriorityHigh, artifacts.CategoryImages,
				fmt.Sprintf("find images for %d products with no images", len(d.ProductsWithoutImages)),
				d.ProductsWithoutImages)
		}
		if len(d.ProductsWithSingleImage) > 0 {
			add(PriorityMedium, artifacts.CategoryImages,
				fmt.Sprintf("add additional images for %d products with only one", len(d.ProductsWithSingleImage)),
				d.ProductsWithSingleImage)
		}
		if len(d.MissingMainImages) > 0 {
			add(PriorityLow, artifacts.CategoryImages,
				fmt.Sprintf("designate a %s for %d products", artifacts.MainImageFilename, len(d.MissingMainImages)),
				d.MissingMainImages)
		}
	}

	if text := reports.Text; text != nil && text.Text != nil {
		d := text.Text
		if len(d.MissingDescriptions) > 0 {
			add(PriorityHigh, artifacts.CategoryText,
				fmt.Sprintf("write full descriptions for %d products", len(d.MissingDescriptions)),
				d.MissingDescriptions)
		}
		if len(d.MissingFeatures) > 0 {
			add(PriorityMedium, artifacts.CategoryText,
				fmt.Sprintf("add pros or highlights for %d products", len(d.MissingFeatures)),
				d.MissingFeatures)
		}
		if len(d.MissingTaglines) > 0 {
			add(PriorityLow, artifacts.CategoryText,
				fmt.Sprintf("add taglines for %d products", len(d.MissingTaglines)),
				d.MissingTaglines)
		}
	}

	if tables := reports.Tables; tables != nil && tables.Tables != nil {
		d := tables.Tables
		if !d.HasComparisonTable {
			add(PriorityCritical, artifacts.CategoryTables, "extract a comparison table, none was found", nil)
		} else {
			if len(d.MissingColumns) > 0 {
				add(PriorityHigh, artifacts.CategoryTables,
					fmt.Sprintf("add missing comparison columns: %v", d.MissingColumns), nil)
			}
			if d.ComparisonProducts > 0 && d.ComparisonProducts < 8 {
				add(PriorityMedium, artifacts.CategoryTables,
					fmt.Sprintf("expand comparison table from %d rows", d.ComparisonProducts), nil)
			}
			if len(d.EmptyCells) > 0 {
				products := make([]string, 0, len(d.EmptyCells))
				for _, e := range d.EmptyCells {
					products = append(products, e.Product)
				}
				add(PriorityLow, artifacts.CategoryTables,
					fmt.Sprintf("fill empty comparison cells for %d products", len(products)), products)
			}
		}
	}

	if reviews := reports.Reviews; reviews != nil && reviews.Reviews != nil {
		d := reviews.Reviews
		if len(d.ProductsWithoutReviews) > 0 {
			add(PriorityHigh, artifacts.CategoryReviews,
				fmt.Sprintf("collect reviews for %d products", len(d.ProductsWithoutReviews)),
				d.ProductsWithoutReviews)
		}
		if len(d.ProductsWithoutReviewLinks) > 0 {
			add(PriorityMedium, artifacts.CategoryReviews,
				fmt.Sprintf("add external review links for %d products", len(d.ProductsWithoutReviewLinks)),
				d.ProductsWithoutReviewLinks)
		}
	}

	if rec != nil {
		var missing, mismatched []string
		for _, f := range rec.Findings {
			switch f.Kind {
			case reconcile.KindMissingFromSource:
				missing = append(missing, f.Product)
			case reconcile.KindNamingMismatch:
				mismatched = append(mismatched, f.Product)
			}
		}
		if missing = dedupe(missing); len(missing) > 0 {
			add(PriorityMedium, artifacts.CategoryValidation,
				fmt.Sprintf("re-run extraction for %d products missing from at least one source", len(missing)),
				missing)
		}
		if mismatched = dedupe(mismatched); len(mismatched) > 0 {
			add(PriorityLow, artifacts.CategoryValidation,
				fmt.Sprintf("align product naming across sources for %d products", len(mismatched)),
				mismatched)
		}
	}

	sort.SliceStable(list, func(i, j int) bool {
		if priorityRank[list[i].Priority] != priorityRank[list[j].Priority] {
			return priorityRank[list[i].Priority] < priorityRank[list[j].Priority]
		}
		if list[i].Category != list[j].Category {
			return list[i].Category < list[j].Category
		}
		return list[i].Action < list[j].Action
	})

	return list
}

func dedupe(in []string) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
