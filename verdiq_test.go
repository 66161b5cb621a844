package verdiq_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	verdiq "github.com/factbench/verdiq"
	"github.com/factbench/verdiq/internal/deploy"
	"github.com/factbench/verdiq/internal/workspace"
	"github.com/factbench/verdiq/pkg/artifacts"
	"github.com/factbench/verdiq/pkg/logging"
	"github.com/factbench/verdiq/pkg/validate"
)

type stubRunner struct{}

func (stubRunner) Run(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	return nil, nil
}

func writeArtifact(t *testing.T, dir string, category artifacts.Category, filename string, v any) {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	path := filepath.Join(dir, string(category), filename)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, data, 0o644))
}

// completeSourceDir stages four artifacts that validate clean.
func completeSourceDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	description := strings.Repeat("Strong suction and smart navigation for any pool. ", 3)
	products := map[string]artifacts.ProductText{}
	images := map[string]artifacts.ProductImages{}
	reviews := map[string]artifacts.ProductReviews{}
	rows := make([]map[string]string, 0, 8)
	for _, id := range []string{"p1", "p2", "p3", "p4", "p5", "p6", "p7", "p8"} {
		products[id] = artifacts.ProductText{
			Name:        "Cleaner " + id,
			Tagline:     "top pick",
			Description: description,
			Features:    artifacts.Features{Pros: []string{"quiet"}},
		}
		images[id] = artifacts.ProductImages{
			DownloadedCount: 2,
			Images:          []artifacts.ImageFile{{Filename: "main.jpg"}, {Filename: "side.jpg"}},
		}
		reviews[id] = artifacts.ProductReviews{
			ProductName: "Cleaner " + id,
			Summary:     artifacts.ReviewSummary{OverallRating: 4.4, TotalReviews: 120},
			UserReviews: []artifacts.UserReview{{Text: "great", Rating: 4.5}},
			ReviewLinks: []string{"https://example.com/r/" + id},
		}
		row := map[string]string{}
		for _, col := range artifacts.RequiredComparisonColumns() {
			row[col] = "value"
		}
		row[artifacts.ComparisonColumnProduct] = "Cleaner " + id
		rows = append(rows, row)
	}

	writeArtifact(t, dir, artifacts.CategoryImages, workspace.ImagesFile,
		&artifacts.ImagesArtifact{Products: images, TotalImages: 16})
	writeArtifact(t, dir, artifacts.CategoryText, workspace.TextFile,
		&artifacts.TextArtifact{Products: products})
	writeArtifact(t, dir, artifacts.CategoryTables, workspace.TablesFile,
		&artifacts.TablesArtifact{ComparisonTable: &artifacts.ComparisonTable{
			Headers: artifacts.RequiredComparisonColumns(),
			Data:    rows,
		}})
	writeArtifact(t, dir, artifacts.CategoryReviews, workspace.ReviewsFile,
		&artifacts.ReviewsArtifact{Products: reviews, TotalReviews: 960})
	return dir
}

func projectRoot(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "package.json"), []byte(`{}`), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "node_modules"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "scripts"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "scripts", "publish.sh"),
		[]byte("#!/bin/sh\nPUBLISH_TOKEN=x\n"), 0o755))
	for _, rel := range []string{
		"dist/index.html",
		"dist/best-robotic-pool-cleaners/index.html",
		"dist/assets/css/style.css",
	} {
		path := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("cta-primary Check Price badge review"), 0o644))
	}
	return root
}

func TestRunFullPipeline(t *testing.T) {
	ws := t.TempDir()
	p, err := verdiq.New(
		verdiq.WithWorkspace(ws),
		verdiq.WithProjectRoot(projectRoot(t)),
		verdiq.WithSourceDir(completeSourceDir(t)),
		verdiq.WithCommandRunner(stubRunner{}),
		verdiq.WithLogger(&logging.Nop),
	)
	require.NoError(t, err)

	result, err := p.Run(context.Background(), "https://example.com/pool-cleaners")
	require.NoError(t, err)

	assert.Equal(t, "SUCCESS", result.OverallStatus)
	assert.False(t, result.Failed())
	require.NotNil(t, result.Validation)
	assert.Equal(t, validate.StatusPass, result.Validation.Summary.OverallStatus)
	require.NotNil(t, result.Deployment)
	assert.Equal(t, deploy.StatusSuccess, result.Deployment.DeploymentStatus)

	assert.FileExists(t, filepath.Join(ws, "validation", workspace.ValidationFile))
	assert.FileExists(t, filepath.Join(ws, "validation", workspace.ReportFile))
}

func TestRunSkipDeploy(t *testing.T) {
	p, err := verdiq.New(
		verdiq.WithWorkspace(t.TempDir()),
		verdiq.WithProjectRoot(projectRoot(t)),
		verdiq.WithSourceDir(completeSourceDir(t)),
		verdiq.WithCommandRunner(stubRunner{}),
		verdiq.WithSkipDeploy(true),
		verdiq.WithLogger(&logging.Nop),
	)
	require.NoError(t, err)

	result, err := p.Run(context.Background(), "https://example.com/pool-cleaners")
	require.NoError(t, err)

	assert.Nil(t, result.Deployment)
	assert.Equal(t, "SUCCESS", result.OverallStatus)
	var deployment *verdiq.Phase
	for i := range result.Phases {
		if result.Phases[i].Name == "deployment" {
			deployment = &result.Phases[i]
		}
	}
	require.NotNil(t, deployment)
	assert.Equal(t, verdiq.PhaseSkipped, deployment.Status)
}

func TestRunFailingValidationSkipsDeployment(t *testing.T) {
	// Empty workspace, no producers: every category validates FAIL.
	p, err := verdiq.New(
		verdiq.WithWorkspace(t.TempDir()),
		verdiq.WithProjectRoot(projectRoot(t)),
		verdiq.WithCommandRunner(stubRunner{}),
		verdiq.WithLogger(&logging.Nop),
	)
	require.NoError(t, err)

	result, err := p.Run(context.Background(), "https://example.com/pool-cleaners")
	require.NoError(t, err)

	assert.True(t, result.Failed())
	assert.Nil(t, result.Deployment)
	assert.Equal(t, validate.StatusFail, result.Validation.Summary.OverallStatus)
}

func TestRunAlwaysWritesSummary(t *testing.T) {
	p, err := verdiq.New(
		verdiq.WithWorkspace(t.TempDir()),
		verdiq.WithCommandRunner(stubRunner{}),
		verdiq.WithLogger(&logging.Nop),
	)
	require.NoError(t, err)

	result, err := p.Run(context.Background(), "src")
	require.NoError(t, err)

	var buf bytes.Buffer
	result.WriteSummary(&buf)
	out := buf.String()
	assert.Contains(t, out, "Pipeline summary for src")
	assert.Contains(t, out, "Overall Status: FAILED")
}

func TestValidatePersistsSummary(t *testing.T) {
	ws := t.TempDir()
	p, err := verdiq.New(
		verdiq.WithWorkspace(ws),
		verdiq.WithSourceDir(completeSourceDir(t)),
		verdiq.WithSkipDeploy(true),
		verdiq.WithLogger(&logging.Nop),
	)
	require.NoError(t, err)

	// Stage artifacts first via a full run without deployment.
	_, err = p.Run(context.Background(), "src")
	require.NoError(t, err)

	v, err := p.Validate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, validate.StatusPass, v.Summary.OverallStatus)
	assert.Empty(t, v.Recommendations)
	assert.True(t, v.Reconciliation.Complete())
	assert.FileExists(t, filepath.Join(ws, "validation", workspace.ValidationFile))
}
