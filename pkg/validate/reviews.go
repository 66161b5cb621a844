package validate

import (
	"github.com/factbench/verdiq/pkg/artifacts"
)

// Review coverage thresholds, in percent.
const (
	reviewCoverageFail    = 50
	reviewCoveragePartial = 80
)

// Reviews validates the reviews artifact. Coverage counts products with
// user reviews or an expert review; below 50% fails the category, below
// 80% is PARTIAL. Products lacking external review links are recorded as
// important issues but never change the status on their own.
func Reviews(a *artifacts.ReviewsArtifact) *Report {
	if a == nil {
		return missingArtifactReport(artifacts.CategoryReviews)
	}

	details := &ReviewsDetails{}
	report := &Report{
		Category: artifacts.CategoryReviews,
		Reviews:  details,
	}

	for _, id := range sortedKeys(a.Products) {
		product := a.Products[id]
		report.TotalProducts++

		if product.HasReviews() {
			details.ProductsWithReviews++
			details.TotalReviews += len(product.UserReviews)
		} else {
			details.ProductsWithoutReviews = append(details.ProductsWithoutReviews, id)
			report.Issues = append(report.Issues, Issue{
				Product:     id,
				Severity:    SeverityCritical,
				Description: "no reviews found",
			})
		}

		if len(product.ReviewLinks) > 0 {
			details.TotalReviewLinks += len(product.ReviewLinks)
		} else {
			details.ProductsWithoutReviewLinks = append(details.ProductsWithoutReviewLinks, id)
			report.Issues = append(report.Issues, Issue{
				Product:     id,
				Severity:    SeverityImportant,
				Description: "no review links found",
			})
		}
	}

	report.Coverage = percentage(details.ProductsWithReviews, report.TotalProducts)

	switch {
	case report.TotalProducts == 0:
		report.Status = StatusFail
		report.Issues = append(report.Issues, Issue{
			Severity:    SeverityCritical,
			Description: "no products in artifact",
		})
	case report.Coverage < reviewCoverageFail:
		report.Status = StatusFail
	case report.Coverage < reviewCoveragePartial:
		report.Status = StatusPartial
	default:
		report.Status = StatusPass
	}

	return report
}
