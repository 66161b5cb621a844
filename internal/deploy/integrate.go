package deploy

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/factbench/verdiq/internal/workspace"
	"github.com/factbench/verdiq/pkg/artifacts"
	verrors "github.com/factbench/verdiq/pkg/errors"
)

// PublishedProduct is one entry of the canonical publishable dataset,
// merged from all four extraction artifacts. Field names follow the
// consuming site's camelCase convention.
type PublishedProduct struct {
	ID             string                  `json:"id"`
	Name           string                  `json:"name"`
	Badge          string                  `json:"badge"`
	Rating         float64                 `json:"rating"`
	UserRatings    int                     `json:"userRatings"`
	Tagline        string                  `json:"tagline"`
	Description    string                  `json:"description"`
	Features       artifacts.Features      `json:"features"`
	Specifications map[string]string       `json:"specifications"`
	AffiliateLink  string                  `json:"affiliateLink"`
	ImageURL       string                  `json:"imageUrl"`
	Price          string                  `json:"price"`
	ExpertReview   *artifacts.ExpertReview `json:"expertReview,omitempty"`
	ReviewLinks    []string                `json:"reviewLinks"`
}

// publishedDataset is the products.json document shape.
type publishedDataset struct {
	Products []PublishedProduct `json:"products"`
}

// Comparison columns that never become product specifications.
var nonSpecColumns = map[string]bool{
	artifacts.ComparisonColumnProduct: true,
	"Rating":                          true,
	"Badge":                           true,
}

// integrate merges the artifacts into the publishable dataset under the
// project root. The previous products.json is backed up before being
// overwritten; any error fails the stage with that backup intact.
func (g *Gate) integrate(ctx context.Context, state *State) bool {
	if err := g.integrateArtifacts(ctx); err != nil {
		state.addError("data integration failed: " + err.Error())
		return false
	}
	return true
}

func (g *Gate) integrateArtifacts(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	bundle := g.store.LoadBundle()
	if bundle.Text == nil {
		return verrors.NewArtifactNotFoundError(
			string(artifacts.CategoryText),
			g.store.ArtifactPath(artifacts.CategoryText),
		)
	}

	dataPath := filepath.Join(g.projectRoot, dataDir)
	if err := os.MkdirAll(dataPath, 0o755); err != nil {
		return verrors.WrapIO("create", dataPath, err)
	}

	products := g.mergeProducts(bundle)
	data, err := json.MarshalIndent(publishedDataset{Products: products}, "", "  ")
	if err != nil {
		return verrors.WrapParse("json", productsFile, err)
	}
	if err := workspace.BackupAndWrite(filepath.Join(dataPath, productsFile), data); err != nil {
		return &verrors.IntegrationError{Step: "update products", Err: err}
	}
	g.logger.Info().Int("products", len(products)).Msg("updated publishable dataset")

	if err := g.copyImages(bundle); err != nil {
		return &verrors.IntegrationError{Step: "copy images", Err: err}
	}
	if err := g.writeReviewSummary(bundle, dataPath); err != nil {
		return &verrors.IntegrationError{Step: "integrate reviews", Err: err}
	}
	if err := g.writeComparisonTable(bundle, dataPath); err != nil {
		return &verrors.IntegrationError{Step: "update comparison table", Err: err}
	}
	return nil
}

// mergeProducts builds the canonical product list. The text artifact
// drives membership; reviews, images, and comparison rows attach by
// identity.
func (g *Gate) mergeProducts(bundle *artifacts.Bundle) []PublishedProduct {
	ids := make([]string, 0, len(bundle.Text.Products))
	for id := range bundle.Text.Products {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	products := make([]PublishedProduct, 0, len(ids))
	for _, id := range ids {
		text := bundle.Text.Products[id]

		p := PublishedProduct{
			ID:             id,
			Name:           text.Name,
			Badge:          text.Badge,
			Tagline:        text.Tagline,
			Description:    text.Description,
			Features:       text.Features,
			Specifications: map[string]string{},
			AffiliateLink:  "#",
			ImageURL:       placeholderImage,
			Price:          text.Price,
		}
		for k, v := range text.Specifications {
			p.Specifications[k] = v
		}

		if bundle.Reviews != nil {
			if reviews, ok := bundle.Reviews.Products[id]; ok {
				p.Rating = reviews.Summary.OverallRating
				p.UserRatings = reviews.Summary.TotalReviews
				p.ExpertReview = reviews.ExpertReview
				p.ReviewLinks = reviews.ReviewLinks
			}
		}
		if bundle.Images != nil {
			if images, ok := bundle.Images.Products[id]; ok && len(images.Images) > 0 {
				p.ImageURL = fmt.Sprintf("/%s/%s.jpg", strings.TrimPrefix(assetDir, "src/"), id)
			}
		}
		g.foldComparisonRow(bundle, &p)

		products = append(products, p)
	}
	return products
}

// foldComparisonRow copies extra columns from the product's comparison
// row into its specifications, matching rows by normalized name.
func (g *Gate) foldComparisonRow(bundle *artifacts.Bundle, p *PublishedProduct) {
	if bundle.Tables == nil || bundle.Tables.ComparisonTable == nil {
		return
	}
	key := artifacts.MatchKey(p.Name)
	for _, row := range bundle.Tables.ComparisonTable.Data {
		if artifacts.MatchKey(row[artifacts.ComparisonColumnProduct]) != key {
			continue
		}
		for col, value := range row {
			if !nonSpecColumns[col] && value != "" {
				p.Specifications[col] = value
			}
		}
		return
	}
}

// copyImages stages each product's primary image into the publish-asset
// directory, preferring the canonical main image over first-found.
func (g *Gate) copyImages(bundle *artifacts.Bundle) error {
	if bundle.Images == nil {
		return nil
	}

	sourceDir := filepath.Join(g.store.CategoryDir(artifacts.CategoryImages), "products")
	targetDir := filepath.Join(g.projectRoot, assetDir)
	if err := os.MkdirAll(targetDir, 0o755); err != nil {
		return verrors.WrapIO("create", targetDir, err)
	}

	copied := 0
	for _, id := range sortedProductIDs(bundle.Images) {
		productDir := filepath.Join(sourceDir, id)
		source := filepath.Join(productDir, artifacts.MainImageFilename)
		if !exists(source) {
			source = firstImage(productDir)
			if source == "" {
				continue
			}
		}
		if err := copyFile(source, filepath.Join(targetDir, id+".jpg")); err != nil {
			return err
		}
		copied++
	}
	g.logger.Info().Int("images", copied).Msg("staged product images")
	return nil
}

func (g *Gate) writeReviewSummary(bundle *artifacts.Bundle, dataPath string) error {
	if bundle.Reviews == nil {
		return nil
	}

	summaries := map[string]artifacts.ReviewSummary{}
	for id, product := range bundle.Reviews.Products {
		summaries[id] = product.Summary
	}
	doc := map[string]any{
		"products":      summaries,
		"total_reviews": bundle.Reviews.TotalReviews,
	}
	return g.store.WriteJSON(filepath.Join(dataPath, reviewsFile), doc)
}

func (g *Gate) writeComparisonTable(bundle *artifacts.Bundle, dataPath string) error {
	if bundle.Tables == nil || bundle.Tables.ComparisonTable == nil {
		return nil
	}
	return g.store.WriteJSON(filepath.Join(dataPath, comparisonFile), bundle.Tables.ComparisonTable)
}

func sortedProductIDs(a *artifacts.ImagesArtifact) []string {
	ids := make([]string, 0, len(a.Products))
	for id := range a.Products {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// firstImage returns the first jpg or png in dir, or "".
func firstImage(dir string) string {
	for _, pattern := range []string{"*.jpg", "*.png"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err == nil && len(matches) > 0 {
			sort.Strings(matches)
			return matches[0]
		}
	}
	return ""
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return verrors.WrapIO("read", src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return verrors.WrapIO("create", dst, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return verrors.WrapIO("copy", dst, err)
	}
	return out.Close()
}
