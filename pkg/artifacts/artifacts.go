// Package artifacts defines the fixed-schema documents produced by the
// extraction collaborators, one per category. Artifacts are immutable once
// written; the validation and deployment stages only ever read them.
package artifacts

import "slices"

// Category identifies one extraction category.
type Category string

// String returns the string representation of a category.
func (c Category) String() string {
	return string(c)
}

// The four extraction categories, plus the validation output partition.
const (
	CategoryImages     Category = "images"
	CategoryText       Category = "text"
	CategoryTables     Category = "tables"
	CategoryReviews    Category = "reviews"
	CategoryValidation Category = "validation"
)

// Categories returns the four extraction categories in canonical order.
func Categories() []Category {
	return []Category{CategoryImages, CategoryText, CategoryTables, CategoryReviews}
}

// IsValid returns true if the category is one of the defined constants.
func (c Category) IsValid() bool {
	return c == CategoryValidation || slices.Contains(Categories(), c)
}

// Bundle groups the four category artifacts for one extraction run.
// A nil field means that category's artifact was missing or unreadable.
type Bundle struct {
	Images  *ImagesArtifact
	Text    *TextArtifact
	Tables  *TablesArtifact
	Reviews *ReviewsArtifact
}

// ProductIDs returns the union of product identifiers observed in any
// of the bundle's per-product artifacts, unordered.
func (b *Bundle) ProductIDs() []string {
	seen := map[string]struct{}{}
	if b.Images != nil {
		for id := range b.Images.Products {
			seen[id] = struct{}{}
		}
	}
	if b.Text != nil {
		for id := range b.Text.Products {
			seen[id] = struct{}{}
		}
	}
	if b.Reviews != nil {
		for id := range b.Reviews.Products {
			seen[id] = struct{}{}
		}
	}
	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	return ids
}
