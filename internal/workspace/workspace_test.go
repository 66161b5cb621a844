package workspace_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/factbench/verdiq/internal/workspace"
	"github.com/factbench/verdiq/pkg/artifacts"
	"github.com/factbench/verdiq/pkg/errors"
	"github.com/factbench/verdiq/pkg/logging"
)

func newStore(t *testing.T) *workspace.Store {
	t.Helper()
	return workspace.New(t.TempDir(), &logging.Nop)
}

func TestArtifactPathsAreFixed(t *testing.T) {
	s := workspace.New("/data/run", &logging.Nop)

	assert.Equal(t, "/data/run/images/image_manifest.json", s.ArtifactPath(artifacts.CategoryImages))
	assert.Equal(t, "/data/run/text/complete_text_content.json", s.ArtifactPath(artifacts.CategoryText))
	assert.Equal(t, "/data/run/tables/all_tables_data.json", s.ArtifactPath(artifacts.CategoryTables))
	assert.Equal(t, "/data/run/reviews/all_reviews_data.json", s.ArtifactPath(artifacts.CategoryReviews))
	assert.Equal(t, "/data/run/validation/validation_summary.json", s.ArtifactPath(artifacts.CategoryValidation))
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	s := newStore(t)

	saved := &artifacts.ImagesArtifact{
		Products: map[string]artifacts.ProductImages{
			"dolphin": {DownloadedCount: 2, Images: []artifacts.ImageFile{{Filename: "main.jpg"}, {Filename: "side.jpg"}}},
		},
		TotalImages: 2,
	}
	require.NoError(t, s.SaveArtifact(artifacts.CategoryImages, saved))
	require.True(t, s.ArtifactExists(artifacts.CategoryImages))

	loaded, err := s.LoadImages()
	require.NoError(t, err)
	assert.Equal(t, saved, loaded)
}

func TestLoadMissingArtifact(t *testing.T) {
	s := newStore(t)

	_, err := s.LoadText()

	require.Error(t, err)
	assert.True(t, errors.IsArtifactNotFound(err))
}

func TestLoadMalformedArtifact(t *testing.T) {
	s := newStore(t)
	path := s.ArtifactPath(artifacts.CategoryTables)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := s.LoadTables()

	require.Error(t, err)
	assert.True(t, errors.IsArtifactMalformed(err))
	assert.False(t, errors.IsArtifactNotFound(err))
}

func TestLoadBundleToleratesBrokenCategories(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.SaveArtifact(artifacts.CategoryReviews, &artifacts.ReviewsArtifact{
		Products: map[string]artifacts.ProductReviews{"dolphin": {}},
	}))
	path := s.ArtifactPath(artifacts.CategoryImages)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("broken"), 0o644))

	b := s.LoadBundle()

	assert.Nil(t, b.Images)
	assert.Nil(t, b.Text)
	assert.Nil(t, b.Tables)
	require.NotNil(t, b.Reviews)
	assert.Contains(t, b.Reviews.Products, "dolphin")
}

func TestBackupAndWritePreservesPreviousContent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "products.json")
	previous := []byte(`{"version":1}`)
	require.NoError(t, os.WriteFile(path, previous, 0o644))

	require.NoError(t, workspace.BackupAndWrite(path, []byte(`{"version":2}`)))

	backup, err := os.ReadFile(path + workspace.BackupSuffix)
	require.NoError(t, err)
	assert.Equal(t, previous, backup)

	current, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"version":2}`, string(current))
}

func TestBackupAndWriteWithoutExistingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "products.json")

	require.NoError(t, workspace.BackupAndWrite(path, []byte(`{}`)))

	_, err := os.Stat(path + workspace.BackupSuffix)
	assert.True(t, os.IsNotExist(err))
}
