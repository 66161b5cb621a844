package validate

import (
	"fmt"
	"sort"

	"github.com/factbench/verdiq/pkg/artifacts"
)

// Images validates the images artifact. PASS requires every product to
// have at least two downloaded images; a single image downgrades to
// PARTIAL, a product with none fails the category outright.
func Images(a *artifacts.ImagesArtifact) *Report {
	if a == nil {
		return missingArtifactReport(artifacts.CategoryImages)
	}

	details := &ImagesDetails{}
	report := &Report{
		Category: artifacts.CategoryImages,
		Images:   details,
	}

	for _, id := range sortedKeys(a.Products) {
		product := a.Products[id]
		report.TotalProducts++
		details.TotalImages += product.DownloadedCount

		switch {
		case product.DownloadedCount == 0:
			details.ProductsWithoutImages = append(details.ProductsWithoutImages, id)
			report.Issues = append(report.Issues, Issue{
				Product:     id,
				Severity:    SeverityCritical,
				Description: "no images found",
			})
		case product.DownloadedCount == 1:
			details.ProductsWithSingleImage = append(details.ProductsWithSingleImage, id)
			report.Issues = append(report.Issues, Issue{
				Product:     id,
				Severity:    SeverityImportant,
				Description: "only one image found",
			})
		default:
			details.ProductsWithImages++
		}

		if product.DownloadedCount > 0 && !product.HasMain() {
			details.MissingMainImages = append(details.MissingMainImages, id)
			report.Issues = append(report.Issues, Issue{
				Product:     id,
				Severity:    SeverityOptional,
				Description: fmt.Sprintf("no %s among downloaded images", artifacts.MainImageFilename),
			})
		}
	}

	report.Coverage = percentage(details.ProductsWithImages, report.TotalProducts)

	switch {
	case report.TotalProducts == 0:
		report.Status = StatusFail
		report.Issues = append(report.Issues, Issue{
			Severity:    SeverityCritical,
			Description: "no products in artifact",
		})
	case len(details.ProductsWithoutImages) > 0:
		report.Status = StatusFail
	case len(details.ProductsWithSingleImage) > 0:
		report.Status = StatusPartial
	default:
		report.Status = StatusPass
	}

	return report
}

// sortedKeys returns map keys in lexical order so reports and issue
// lists are deterministic run to run.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
