package deploy

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/factbench/verdiq/pkg/artifacts"
	"github.com/factbench/verdiq/pkg/score"
	"github.com/factbench/verdiq/pkg/validate"
)

// Pre-check names, recorded in the deployment report.
const (
	checkValidationPassed      = "validation_passed"
	checkDataQualityAcceptable = "data_quality_acceptable"
	checkRequiredFilesExist    = "required_files_exist"
	checkDependenciesInstalled = "dependencies_installed"
	checkCredentialAvailable   = "credential_available"
)

// preChecks verifies the workspace and project are deployable. The
// credential check only ever produces a warning; the other named
// checks are required and any failure aborts the attempt.
func (g *Gate) preChecks(state *State) bool {
	checks := map[string]bool{
		checkValidationPassed:      false,
		checkDataQualityAcceptable: false,
		checkRequiredFilesExist:    false,
		checkDependenciesInstalled: false,
		checkCredentialAvailable:   false,
	}
	state.PreChecks = checks

	var summary score.Summary
	if err := g.store.LoadValidationSummary(&summary); err != nil {
		state.addError("validation results not found")
		return false
	}
	checks[checkValidationPassed] = summary.OverallStatus != validate.StatusFail
	checks[checkDataQualityAcceptable] = summary.DataQualityScore >= score.MinimumDeployableScore
	if summary.CriticalIssues > 0 {
		state.addWarning(fmt.Sprintf("found %d critical issues", summary.CriticalIssues))
	}

	checks[checkRequiredFilesExist] = true
	for _, c := range artifacts.Categories() {
		if !g.store.ArtifactExists(c) {
			checks[checkRequiredFilesExist] = false
		}
	}

	checks[checkDependenciesInstalled] = exists(filepath.Join(g.projectRoot, manifestFile)) &&
		exists(filepath.Join(g.projectRoot, dependenciesDir))

	checks[checkCredentialAvailable] = g.credentialAvailable()
	if !checks[checkCredentialAvailable] {
		state.addWarning("publish credential not found, manual publish may be required")
	}

	ok := checks[checkValidationPassed] &&
		checks[checkRequiredFilesExist] &&
		checks[checkDependenciesInstalled]
	if !ok {
		for _, name := range []string{checkValidationPassed, checkRequiredFilesExist, checkDependenciesInstalled} {
			if !checks[name] {
				state.addError("check failed: " + name)
			}
		}
	}
	return ok
}

// credentialAvailable looks for the publish credential in the
// environment, then for a token assignment inside the publish script.
func (g *Gate) credentialAvailable() bool {
	if os.Getenv(CredentialEnvVar) != "" {
		return true
	}
	data, err := os.ReadFile(filepath.Join(g.projectRoot, publishScript))
	if err != nil {
		return false
	}
	return strings.Contains(string(data), CredentialEnvVar+"=")
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
