package validate

import (
	"github.com/factbench/verdiq/pkg/artifacts"
)

// minDescriptionLength is the shortest description considered complete.
const minDescriptionLength = 100

// Text validates the text artifact. A short or missing description is
// critical and fails the category; missing pros/highlights is important
// and caps the category at PARTIAL; a missing tagline is recorded but
// never changes the status.
func Text(a *artifacts.TextArtifact) *Report {
	if a == nil {
		return missingArtifactReport(artifacts.CategoryText)
	}

	details := &TextDetails{
		HasMethodology: a.Sections.Methodology != "",
		HasBuyingGuide: a.Sections.BuyingGuide != "",
		HasFAQ:         a.Sections.FAQ != "",
	}
	report := &Report{
		Category: artifacts.CategoryText,
		Text:     details,
	}

	for _, id := range sortedKeys(a.Products) {
		product := a.Products[id]
		report.TotalProducts++
		complete := true

		if len(product.Description) < minDescriptionLength {
			details.MissingDescriptions = append(details.MissingDescriptions, id)
			complete = false
			report.Issues = append(report.Issues, Issue{
				Product:     id,
				Severity:    SeverityCritical,
				Description: "missing or short description",
			})
		}

		if !product.Features.HasAny() {
			details.MissingFeatures = append(details.MissingFeatures, id)
			complete = false
			report.Issues = append(report.Issues, Issue{
				Product:     id,
				Severity:    SeverityImportant,
				Description: "missing features/pros",
			})
		}

		if product.Tagline == "" {
			details.MissingTaglines = append(details.MissingTaglines, id)
			report.Issues = append(report.Issues, Issue{
				Product:     id,
				Severity:    SeverityOptional,
				Description: "missing tagline",
			})
		}

		if complete {
			details.CompleteProducts++
		}
	}

	report.Coverage = percentage(details.CompleteProducts, report.TotalProducts)

	switch {
	case report.TotalProducts == 0:
		report.Status = StatusFail
		report.Issues = append(report.Issues, Issue{
			Severity:    SeverityCritical,
			Description: "no products in artifact",
		})
	case len(details.MissingDescriptions) > 0:
		report.Status = StatusFail
	case len(details.MissingFeatures) > 0:
		report.Status = StatusPartial
	default:
		report.Status = StatusPass
	}

	return report
}
