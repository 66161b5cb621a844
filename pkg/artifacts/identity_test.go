package artifacts_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/factbench/verdiq/pkg/artifacts"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"lowercases", "Dolphin Nautilus CC Plus", "dolphin nautilus cc plus"},
		{"trims", "  polaris 9550  ", "polaris 9550"},
		{"collapses whitespace", "Aiper\t Seagull   Pro", "aiper seagull pro"},
		{"empty", "", ""},
		{"only whitespace", "   \t ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, artifacts.Normalize(tt.in))
		})
	}
}

func TestMatchKey(t *testing.T) {
	assert.Equal(t, artifacts.MatchKey("Dolphin E-10"), artifacts.MatchKey("dolphin e10"))
	assert.Equal(t, artifacts.MatchKey("Polaris 9550 Sport"), artifacts.MatchKey("POLARIS  9550-sport"))
	assert.NotEqual(t, artifacts.MatchKey("Dolphin E10"), artifacts.MatchKey("Dolphin E20"))
}

func TestSameIdentity(t *testing.T) {
	assert.True(t, artifacts.SameIdentity("Dolphin  Nautilus", "dolphin nautilus "))
	assert.False(t, artifacts.SameIdentity("Dolphin Nautilus", "Dolphin Nautilus CC"))
}

func TestBundleProductIDs(t *testing.T) {
	bundle := &artifacts.Bundle{
		Images: &artifacts.ImagesArtifact{Products: map[string]artifacts.ProductImages{
			"dolphin-nautilus": {DownloadedCount: 3},
		}},
		Text: &artifacts.TextArtifact{Products: map[string]artifacts.ProductText{
			"dolphin-nautilus": {Name: "Dolphin Nautilus"},
			"polaris-9550":     {Name: "Polaris 9550"},
		}},
		Reviews: &artifacts.ReviewsArtifact{Products: map[string]artifacts.ProductReviews{
			"aiper-seagull": {ProductName: "Aiper Seagull"},
		}},
	}

	ids := bundle.ProductIDs()
	assert.ElementsMatch(t, []string{"dolphin-nautilus", "polaris-9550", "aiper-seagull"}, ids)
}

func TestProductImagesHasMain(t *testing.T) {
	withMain := artifacts.ProductImages{Images: []artifacts.ImageFile{{Filename: "main.jpg"}, {Filename: "side.jpg"}}}
	withoutMain := artifacts.ProductImages{Images: []artifacts.ImageFile{{Filename: "angle.jpg"}}}

	assert.True(t, withMain.HasMain())
	assert.False(t, withoutMain.HasMain())
}

func TestProductReviewsHasReviews(t *testing.T) {
	assert.True(t, artifacts.ProductReviews{UserReviews: []artifacts.UserReview{{Text: "great"}}}.HasReviews())
	assert.True(t, artifacts.ProductReviews{ExpertReview: &artifacts.ExpertReview{Verdict: "solid"}}.HasReviews())
	assert.False(t, artifacts.ProductReviews{ReviewLinks: []string{"https://example.com"}}.HasReviews())
}
