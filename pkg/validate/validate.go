// Package validate implements the per-category completeness validators.
// Each validator is a pure function from one extraction artifact to a
// CategoryValidationReport; validators never mutate the artifact and never
// fail past their own boundary. A missing artifact produces a FAIL report
// with a single critical issue rather than an error.
package validate

import (
	"github.com/factbench/verdiq/pkg/artifacts"
)

// Status is a category validation verdict.
type Status string

// Validation statuses.
const (
	StatusPass    Status = "PASS"
	StatusPartial Status = "PARTIAL"
	StatusFail    Status = "FAIL"
)

// Severity classifies an issue's impact on publishability.
type Severity string

// Issue severities.
const (
	SeverityCritical  Severity = "critical"
	SeverityImportant Severity = "important"
	SeverityOptional  Severity = "optional"
)

// Issue is one per-product (or per-category) validation finding.
type Issue struct {
	Product     string   `json:"product,omitempty"`
	Severity    Severity `json:"severity"`
	Description string   `json:"issue"`
}

// EmptyCells records the blank fields found in one comparison-table row.
type EmptyCells struct {
	Product     string   `json:"product"`
	EmptyFields []string `json:"empty_fields"`
}

// ImagesDetails carries the images-specific metrics.
type ImagesDetails struct {
	ProductsWithImages      int      `json:"products_with_images"`
	ProductsWithoutImages   []string `json:"products_without_images,omitempty"`
	ProductsWithSingleImage []string `json:"products_with_single_image,omitempty"`
	MissingMainImages       []string `json:"missing_main_images,omitempty"`
	TotalImages             int      `json:"total_images"`
}

// TextDetails carries the text-specific metrics.
type TextDetails struct {
	CompleteProducts    int      `json:"complete_products"`
	MissingDescriptions []string `json:"missing_descriptions,omitempty"`
	MissingFeatures     []string `json:"missing_features,omitempty"`
	MissingTaglines     []string `json:"missing_taglines,omitempty"`
	HasMethodology      bool     `json:"has_methodology"`
	HasBuyingGuide      bool     `json:"has_buying_guide"`
	HasFAQ              bool     `json:"has_faq"`
}

// TablesDetails carries the tables-specific metrics.
type TablesDetails struct {
	HasComparisonTable bool         `json:"has_comparison_table"`
	ComparisonProducts int          `json:"comparison_products"`
	MissingColumns     []string     `json:"missing_columns,omitempty"`
	EmptyCells         []EmptyCells `json:"empty_cells,omitempty"`
}

// ReviewsDetails carries the reviews-specific metrics.
type ReviewsDetails struct {
	ProductsWithReviews        int      `json:"products_with_reviews"`
	ProductsWithoutReviews     []string `json:"products_without_reviews,omitempty"`
	ProductsWithoutReviewLinks []string `json:"products_without_review_links,omitempty"`
	TotalReviews               int      `json:"total_reviews"`
	TotalReviewLinks           int      `json:"total_review_links"`
}

// Report is a CategoryValidationReport: the immutable result of validating
// one category artifact. Coverage is a percentage in [0,100]; for the
// tables category no natural coverage exists and the field stays zero
// (the scorer substitutes a 1.0 multiplier there).
type Report struct {
	Category      artifacts.Category `json:"category"`
	Status        Status             `json:"status"`
	TotalProducts int                `json:"total_products"`
	Coverage      float64            `json:"coverage_percentage"`
	Issues        []Issue            `json:"issues,omitempty"`

	Images  *ImagesDetails  `json:"images,omitempty"`
	Text    *TextDetails    `json:"text,omitempty"`
	Tables  *TablesDetails  `json:"tables,omitempty"`
	Reviews *ReviewsDetails `json:"reviews,omitempty"`
}

// CoverageRatio returns the coverage scaled to [0,1].
func (r *Report) CoverageRatio() float64 {
	return r.Coverage / 100
}

// CountSeverity returns how many issues carry the given severity.
func (r *Report) CountSeverity(sev Severity) int {
	n := 0
	for _, issue := range r.Issues {
		if issue.Severity == sev {
			n++
		}
	}
	return n
}

// Reports groups the four category reports of one validation run, in
// canonical category order.
type Reports struct {
	Images  *Report `json:"images"`
	Text    *Report `json:"text"`
	Tables  *Report `json:"tables"`
	Reviews *Report `json:"reviews"`
}

// All returns the reports in canonical category order.
func (rs *Reports) All() []*Report {
	return []*Report{rs.Images, rs.Text, rs.Tables, rs.Reviews}
}

// ByCategory returns the report for the given extraction category, or nil.
func (rs *Reports) ByCategory(c artifacts.Category) *Report {
	switch c {
	case artifacts.CategoryImages:
		return rs.Images
	case artifacts.CategoryText:
		return rs.Text
	case artifacts.CategoryTables:
		return rs.Tables
	case artifacts.CategoryReviews:
		return rs.Reviews
	default:
		return nil
	}
}

// CountSeverity sums issue counts of the given severity across all
// category reports.
func (rs *Reports) CountSeverity(sev Severity) int {
	n := 0
	for _, r := range rs.All() {
		if r != nil {
			n += r.CountSeverity(sev)
		}
	}
	return n
}

// Bundle validates all four artifacts of a bundle.
func Bundle(b *artifacts.Bundle) *Reports {
	return &Reports{
		Images:  Images(b.Images),
		Text:    Text(b.Text),
		Tables:  Tables(b.Tables),
		Reviews: Reviews(b.Reviews),
	}
}

// missingArtifactReport builds the fixed FAIL report used when a
// category artifact is absent or unreadable. All coverage metrics stay
// at zero.
func missingArtifactReport(category artifacts.Category) *Report {
	return &Report{
		Category: category,
		Status:   StatusFail,
		Issues: []Issue{{
			Severity:    SeverityCritical,
			Description: "artifact not found",
		}},
	}
}

// percentage computes n/total scaled to [0,100], defined as 0 when
// total is zero.
func percentage(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) / float64(total) * 100
}
