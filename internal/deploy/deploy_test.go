package deploy_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/factbench/verdiq/internal/deploy"
	"github.com/factbench/verdiq/internal/workspace"
	"github.com/factbench/verdiq/pkg/artifacts"
	"github.com/factbench/verdiq/pkg/logging"
	"github.com/factbench/verdiq/pkg/score"
	"github.com/factbench/verdiq/pkg/validate"
)

// fakeRunner satisfies CommandRunner and counts invocations per tool.
type fakeRunner struct {
	buildCalls    int
	publishCalls  int
	buildErr      error
	buildOutput   string
	publishErr    error
	publishOutput string
}

func (r *fakeRunner) Run(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	if name == "npm" {
		r.buildCalls++
		return []byte(r.buildOutput), r.buildErr
	}
	r.publishCalls++
	return []byte(r.publishOutput), r.publishErr
}

type fixture struct {
	store       *workspace.Store
	projectRoot string
	runner      *fakeRunner
}

// newFixture builds a workspace and project root that clear every
// pre-check and every hard verify check.
func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := workspace.New(t.TempDir(), &logging.Nop)
	require.NoError(t, store.SaveValidationSummary(&score.Summary{
		OverallStatus:    validate.StatusPass,
		DataQualityScore: 92.5,
	}))
	require.NoError(t, store.SaveArtifact(artifacts.CategoryImages, &artifacts.ImagesArtifact{
		Products: map[string]artifacts.ProductImages{
			"dolphin": {DownloadedCount: 1, Images: []artifacts.ImageFile{{Filename: "main.jpg"}}},
		},
	}))
	require.NoError(t, store.SaveArtifact(artifacts.CategoryText, &artifacts.TextArtifact{
		Products: map[string]artifacts.ProductText{
			"dolphin": {
				Name:        "Dolphin E10",
				Price:       "$599",
				Description: strings.Repeat("x", 120),
			},
		},
	}))
	require.NoError(t, store.SaveArtifact(artifacts.CategoryTables, &artifacts.TablesArtifact{
		ComparisonTable: &artifacts.ComparisonTable{
			Headers: []string{"Product Name", "Rating", "Pool Size"},
			Data: []map[string]string{
				{"Product Name": "Dolphin E-10", "Rating": "4.5", "Pool Size": "30ft"},
			},
		},
	}))
	require.NoError(t, store.SaveArtifact(artifacts.CategoryReviews, &artifacts.ReviewsArtifact{
		Products: map[string]artifacts.ProductReviews{
			"dolphin": {
				Summary:     artifacts.ReviewSummary{OverallRating: 4.5, TotalReviews: 812},
				ReviewLinks: []string{"https://example.com/review"},
			},
		},
	}))

	projectRoot := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(projectRoot, "package.json"), []byte(`{}`), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(projectRoot, "node_modules"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(projectRoot, "scripts"), 0o755))
	require.NoError(t, os.WriteFile(
		filepath.Join(projectRoot, "scripts", "publish.sh"),
		[]byte("#!/bin/sh\nPUBLISH_TOKEN=stub\n"), 0o755))

	for _, rel := range []string{
		"dist/index.html",
		"dist/best-robotic-pool-cleaners/index.html",
		"dist/assets/css/style.css",
	} {
		path := filepath.Join(projectRoot, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("<html>cta-primary Check Price badge review</html>"), 0o644))
	}

	return &fixture{store: store, projectRoot: projectRoot, runner: &fakeRunner{}}
}

func (f *fixture) gate() *deploy.Gate {
	return deploy.New(deploy.Config{
		Store:       f.store,
		ProjectRoot: f.projectRoot,
		Runner:      f.runner,
		Logger:      &logging.Nop,
	})
}

func TestExecuteSucceeds(t *testing.T) {
	f := newFixture(t)

	state := f.gate().Execute(context.Background())

	assert.Equal(t, deploy.StatusSuccess, state.DeploymentStatus)
	assert.Equal(t, deploy.StatusSuccess, state.BuildStatus)
	assert.Equal(t, 1, f.runner.buildCalls)
	assert.Equal(t, 1, f.runner.publishCalls)
	assert.Empty(t, state.Errors)
	assert.Equal(t, deploy.DefaultDeployedURL, state.DeployedURL)
}

func TestExecuteAbortsWhenValidationMissing(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, os.Remove(f.store.ArtifactPath(artifacts.CategoryValidation)))

	state := f.gate().Execute(context.Background())

	assert.Equal(t, deploy.StatusAborted, state.DeploymentStatus)
	assert.Contains(t, state.Errors, "validation results not found")
	// No later stage may run after an abort.
	assert.Zero(t, f.runner.buildCalls)
	assert.Zero(t, f.runner.publishCalls)
}

func TestExecuteAbortsOnFailedValidation(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.store.SaveValidationSummary(&score.Summary{
		OverallStatus:    validate.StatusFail,
		DataQualityScore: 35,
	}))

	state := f.gate().Execute(context.Background())

	assert.Equal(t, deploy.StatusAborted, state.DeploymentStatus)
	assert.False(t, state.PreChecks["validation_passed"])
	assert.Zero(t, f.runner.buildCalls)
}

func TestExecuteAbortsOnMissingArtifact(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, os.Remove(f.store.ArtifactPath(artifacts.CategoryTables)))

	state := f.gate().Execute(context.Background())

	assert.Equal(t, deploy.StatusAborted, state.DeploymentStatus)
	assert.False(t, state.PreChecks["required_files_exist"])
}

func TestCredentialAbsenceIsWarningOnly(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, os.WriteFile(
		filepath.Join(f.projectRoot, "scripts", "publish.sh"),
		[]byte("#!/bin/sh\n"), 0o755))

	state := f.gate().Execute(context.Background())

	assert.Equal(t, deploy.StatusSuccess, state.DeploymentStatus)
	assert.False(t, state.PreChecks["credential_available"])
	assert.NotEmpty(t, state.Warnings)
}

func TestIntegrationBacksUpPreviousDataset(t *testing.T) {
	f := newFixture(t)
	previous := []byte(`{"products":[{"id":"old"}]}`)
	dataDir := filepath.Join(f.projectRoot, "src", "data")
	require.NoError(t, os.MkdirAll(dataDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "products.json"), previous, 0o644))
	// Make the run fail after integration so the backup guarantee is
	// checked on a failing path too.
	f.runner.buildErr = errors.New("exit status 1")
	f.runner.buildOutput = "module not found"

	state := f.gate().Execute(context.Background())

	assert.Equal(t, deploy.StatusFailed, state.DeploymentStatus)
	backup, err := os.ReadFile(filepath.Join(dataDir, "products.json.backup"))
	require.NoError(t, err)
	assert.Equal(t, previous, backup)
}

func TestIntegrationMergesSources(t *testing.T) {
	f := newFixture(t)

	state := f.gate().Execute(context.Background())
	require.Equal(t, deploy.StatusSuccess, state.DeploymentStatus)

	data, err := os.ReadFile(filepath.Join(f.projectRoot, "src", "data", "products.json"))
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, `"name": "Dolphin E10"`)
	assert.Contains(t, content, `"rating": 4.5`)
	assert.Contains(t, content, `"userRatings": 812`)
	// Comparison row matched despite the hyphenated name variant.
	assert.Contains(t, content, `"Pool Size": "30ft"`)
	assert.Contains(t, content, `"imageUrl": "/assets/images/products/dolphin.jpg"`)

	assert.FileExists(t, filepath.Join(f.projectRoot, "src", "data", "review_summary.json"))
	assert.FileExists(t, filepath.Join(f.projectRoot, "src", "data", "comparison_table.json"))
}

func TestBuildFailureRecordsOutput(t *testing.T) {
	f := newFixture(t)
	f.runner.buildErr = errors.New("exit status 2")
	f.runner.buildOutput = "error TS2304: cannot find name"

	state := f.gate().Execute(context.Background())

	assert.Equal(t, deploy.StatusFailed, state.DeploymentStatus)
	assert.Equal(t, deploy.StatusFailed, state.BuildStatus)
	require.NotEmpty(t, state.Errors)
	assert.Contains(t, state.Errors[0], "error TS2304")
	assert.Zero(t, f.runner.publishCalls)
}

func TestVerifyFailsOnMissingOutput(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, os.Remove(filepath.Join(f.projectRoot, "dist", "assets", "css", "style.css")))

	state := f.gate().Execute(context.Background())

	assert.Equal(t, deploy.StatusFailed, state.DeploymentStatus)
	require.NotEmpty(t, state.Errors)
	assert.Contains(t, state.Errors[0], "assets/css/style.css")
	assert.Zero(t, f.runner.publishCalls)
}

func TestVerifySoftChecksWarnOnly(t *testing.T) {
	f := newFixture(t)
	listing := filepath.Join(f.projectRoot, "dist", "best-robotic-pool-cleaners", "index.html")
	require.NoError(t, os.WriteFile(listing, []byte("<html>empty</html>"), 0o644))

	state := f.gate().Execute(context.Background())

	assert.Equal(t, deploy.StatusSuccess, state.DeploymentStatus)
	assert.NotEmpty(t, state.Warnings)
}

func TestPublishAuthFailureAddsCredentialError(t *testing.T) {
	f := newFixture(t)
	f.runner.publishErr = errors.New("exit status 1")
	f.runner.publishOutput = "remote: Authentication failed for origin"

	state := f.gate().Execute(context.Background())

	assert.Equal(t, deploy.StatusFailed, state.DeploymentStatus)
	found := false
	for _, e := range state.Errors {
		if strings.Contains(e, "PUBLISH_TOKEN") {
			found = true
		}
	}
	assert.True(t, found, "expected a credential error, got %v", state.Errors)
}

func TestExecutePersistsReport(t *testing.T) {
	f := newFixture(t)

	f.gate().Execute(context.Background())

	assert.FileExists(t, filepath.Join(
		f.store.Root(), "validation", workspace.DeploymentReportFile))
}
