// Package reconcile cross-references product identities between the
// four extraction artifacts. Reconciliation is advisory: it surfaces
// products missing from a source and naming drift between sources, but
// it never changes a category validation status.
package reconcile

import (
	"fmt"
	"sort"

	"github.com/factbench/verdiq/pkg/artifacts"
)

// Kind classifies a reconciliation finding.
type Kind string

// Finding kinds.
const (
	KindMissingFromSource Kind = "missing_from_source"
	KindNamingMismatch    Kind = "naming_mismatch"
)

// Finding is one advisory cross-source observation.
type Finding struct {
	Kind     Kind               `json:"kind"`
	Product  string             `json:"product"`
	Category artifacts.Category `json:"category,omitempty"`
	Detail   string             `json:"detail"`
}

// Presence records where one product identity was seen and under which
// display name per source.
type Presence struct {
	Key   string                        `json:"key"`
	Name  string                        `json:"name"`
	Names map[artifacts.Category]string `json:"names"`
}

// In reports whether the product was present in the given source.
func (p *Presence) In(c artifacts.Category) bool {
	_, ok := p.Names[c]
	return ok
}

// Result is a full reconciliation: the identity union across sources
// plus all advisory findings, both in deterministic order.
type Result struct {
	Products []Presence `json:"products"`
	Findings []Finding  `json:"findings,omitempty"`
}

// Complete reports whether every product was seen in every source with
// consistent naming.
func (r *Result) Complete() bool {
	return len(r.Findings) == 0
}

// Bundle reconciles the product identities of all artifacts in the
// bundle. Identities are matched by artifacts.MatchKey, so punctuation
// and case differences never split a product in two. Nil artifacts are
// skipped entirely rather than reported as missing everywhere.
func Bundle(b *artifacts.Bundle) *Result {
	byKey := map[string]*Presence{}
	var present []artifacts.Category

	record := func(c artifacts.Category, name string) {
		key := artifacts.MatchKey(name)
		if key == "" {
			return
		}
		p, ok := byKey[key]
		if !ok {
			p = &Presence{Key: key, Name: name, Names: map[artifacts.Category]string{}}
			byKey[key] = p
		}
		if _, seen := p.Names[c]; !seen {
			p.Names[c] = name
		}
	}

	if b.Images != nil {
		present = append(present, artifacts.CategoryImages)
		for id := range b.Images.Products {
			record(artifacts.CategoryImages, id)
		}
	}
	if b.Text != nil {
		present = append(present, artifacts.CategoryText)
		for id, product := range b.Text.Products {
			name := product.Name
			if name == "" {
				name = id
			}
			record(artifacts.CategoryText, name)
		}
	}
	if b.Tables != nil {
		present = append(present, artifacts.CategoryTables)
		if b.Tables.ComparisonTable != nil {
			for _, row := range b.Tables.ComparisonTable.Data {
				record(artifacts.CategoryTables, row[artifacts.ComparisonColumnProduct])
			}
		}
	}
	if b.Reviews != nil {
		present = append(present, artifacts.CategoryReviews)
		for id, product := range b.Reviews.Products {
			name := product.ProductName
			if name == "" {
				name = id
			}
			record(artifacts.CategoryReviews, name)
		}
	}

	result := &Result{}
	keys := make([]string, 0, len(byKey))
	for k := range byKey {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		p := byKey[key]
		result.Products = append(result.Products, *p)

		for _, c := range present {
			if !p.In(c) {
				result.Findings = append(result.Findings, Finding{
					Kind:     KindMissingFromSource,
					Product:  p.Name,
					Category: c,
					Detail:   fmt.Sprintf("not found in %s artifact", c),
				})
			}
		}

		textName, hasText := p.Names[artifacts.CategoryText]
		reviewsName, hasReviews := p.Names[artifacts.CategoryReviews]
		if hasText && hasReviews && artifacts.Normalize(textName) != artifacts.Normalize(reviewsName) {
			result.Findings = append(result.Findings, Finding{
				Kind:    KindNamingMismatch,
				Product: p.Name,
				Detail:  fmt.Sprintf("text calls it %q, reviews call it %q", textName, reviewsName),
			})
		}
	}

	return result
}
