package artifacts

// Features holds the bullet-point content extracted for a product.
type Features struct {
	Pros       []string `json:"pros,omitempty"`
	Cons       []string `json:"cons,omitempty"`
	Highlights []string `json:"highlights,omitempty"`
}

// HasAny reports whether the product has either pros or highlights.
// Cons alone do not count as usable feature content.
func (f Features) HasAny() bool {
	return len(f.Pros) > 0 || len(f.Highlights) > 0
}

// ProductText holds the text extraction result for one product.
type ProductText struct {
	Name           string            `json:"name"`
	Tagline        string            `json:"tagline,omitempty"`
	Description    string            `json:"description"`
	Badge          string            `json:"badge,omitempty"`
	Price          string            `json:"price,omitempty"`
	Features       Features          `json:"features"`
	Specifications map[string]string `json:"specifications,omitempty"`
}

// Sections holds the page-level editorial content.
type Sections struct {
	Methodology string `json:"methodology,omitempty"`
	BuyingGuide string `json:"buyingGuide,omitempty"`
	FAQ         string `json:"faq,omitempty"`
}

// TextArtifact is the text category document
// (text/complete_text_content.json).
type TextArtifact struct {
	Products map[string]ProductText `json:"products"`
	Sections Sections               `json:"sections"`
}
