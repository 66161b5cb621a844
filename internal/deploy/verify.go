package deploy

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Build-output paths that must exist after a successful build.
var essentialOutputs = []string{
	"index.html",
	"best-robotic-pool-cleaners/index.html",
	"assets/css/style.css",
}

// listingPage is the product-listing page inspected by the soft
// content checks.
const listingPage = "best-robotic-pool-cleaners/index.html"

// verify checks the build output. Missing essential files are hard
// failures; the content checks on the listing page only ever add
// warnings.
func (g *Gate) verify(ctx context.Context, state *State) bool {
	if err := ctx.Err(); err != nil {
		state.addError(err.Error())
		return false
	}

	outDir := filepath.Join(g.projectRoot, buildOutputDir)
	if !exists(outDir) {
		state.addError("build output directory not found")
		return false
	}

	var missing []string
	for _, rel := range essentialOutputs {
		if !exists(filepath.Join(outDir, rel)) {
			missing = append(missing, rel)
		}
	}
	if len(missing) > 0 {
		state.addError(fmt.Sprintf("missing files in build: %s", strings.Join(missing, ", ")))
		return false
	}

	g.checkListingContent(filepath.Join(outDir, listingPage), state)
	return true
}

// checkListingContent runs the soft content checks: presence of the
// call-to-action styling, price-check text, product image paths, and
// badge/review keywords.
func (g *Gate) checkListingContent(path string, state *State) {
	data, err := os.ReadFile(path)
	if err != nil {
		state.addWarning("could not read listing page for content checks")
		return
	}
	content := string(data)
	lower := strings.ToLower(content)

	checks := []struct {
		name   string
		passed bool
	}{
		{"cta_buttons", strings.Contains(content, "#ef4444") || strings.Contains(content, "cta-primary")},
		{"check_price_text", strings.Contains(content, "Check Price")},
		{"product_images", strings.Contains(content, `src="assets/images/products/`) ||
			strings.Contains(content, `src="/assets/images/products/`)},
		{"badges", strings.Contains(lower, "badge")},
		{"reviews", strings.Contains(lower, "review")},
	}
	for _, check := range checks {
		if !check.passed {
			state.addWarning("content check failed: " + check.name)
		}
	}
}
