package artifacts

// ReviewSummary is the aggregate rating for a product.
type ReviewSummary struct {
	OverallRating float64 `json:"overall_rating"`
	TotalReviews  int     `json:"total_reviews"`
}

// UserReview is one end-user review.
type UserReview struct {
	Author string  `json:"author,omitempty"`
	Rating float64 `json:"rating,omitempty"`
	Text   string  `json:"text,omitempty"`
	Source string  `json:"source,omitempty"`
}

// ExpertReview is an editorial review. A nil pointer means no expert
// review was extracted for the product.
type ExpertReview struct {
	Verdict string  `json:"verdict,omitempty"`
	Score   float64 `json:"score,omitempty"`
	Source  string  `json:"source,omitempty"`
}

// ProductReviews holds the review extraction result for one product.
type ProductReviews struct {
	ProductName  string        `json:"product_name,omitempty"`
	Summary      ReviewSummary `json:"summary"`
	ExpertReview *ExpertReview `json:"expert_review,omitempty"`
	UserReviews  []UserReview  `json:"user_reviews"`
	ReviewLinks  []string      `json:"review_links"`
}

// HasReviews reports whether the product carries user reviews or an
// expert review. Review links alone do not count.
func (p ProductReviews) HasReviews() bool {
	return len(p.UserReviews) > 0 || p.ExpertReview != nil
}

// ReviewsArtifact is the reviews category document
// (reviews/all_reviews_data.json).
type ReviewsArtifact struct {
	Products     map[string]ProductReviews `json:"products"`
	TotalReviews int                       `json:"total_reviews"`
}
