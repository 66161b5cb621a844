// Package workspace is the artifact store: a directory tree holding one
// JSON document per extraction category plus the validation and
// deployment reports of each run. Producers each own their category
// file and the validators read a consistent snapshot after the fan-in
// barrier, so the store needs no locking.
package workspace

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/factbench/verdiq/pkg/artifacts"
	verrors "github.com/factbench/verdiq/pkg/errors"
	"github.com/factbench/verdiq/pkg/logging"
)

// Fixed artifact filenames, one per category directory.
const (
	ImagesFile     = "image_manifest.json"
	TextFile       = "complete_text_content.json"
	TablesFile     = "all_tables_data.json"
	ReviewsFile    = "all_reviews_data.json"
	ValidationFile = "validation_summary.json"

	// ReportFile records the orchestration outcome of a full run.
	ReportFile = "orchestration_report.json"

	// DeploymentReportFile records the outcome of a deployment attempt.
	DeploymentReportFile = "deployment_report.json"
)

const (
	dirPermissions  = 0o755
	filePermissions = 0o644
)

var artifactFiles = map[artifacts.Category]string{
	artifacts.CategoryImages:  ImagesFile,
	artifacts.CategoryText:    TextFile,
	artifacts.CategoryTables:  TablesFile,
	artifacts.CategoryReviews: ReviewsFile,
}

// Store reads and writes run artifacts under a single root directory.
type Store struct {
	root   string
	logger *zerolog.Logger
}

// New returns a store rooted at dir. The directory does not need to
// exist yet; writes create it on demand.
func New(dir string, logger *zerolog.Logger) *Store {
	if logger == nil {
		logger = logging.Default()
	}
	return &Store{root: dir, logger: logger}
}

// Root returns the store's root directory.
func (s *Store) Root() string {
	return s.root
}

// CategoryDir returns the directory holding a category's artifact.
func (s *Store) CategoryDir(c artifacts.Category) string {
	return filepath.Join(s.root, string(c))
}

// ArtifactPath returns the fixed path of a category's artifact file.
// The validation category maps to the validation summary.
func (s *Store) ArtifactPath(c artifacts.Category) string {
	if c == artifacts.CategoryValidation {
		return filepath.Join(s.CategoryDir(c), ValidationFile)
	}
	return filepath.Join(s.CategoryDir(c), artifactFiles[c])
}

// LoadImages loads the images artifact.
func (s *Store) LoadImages() (*artifacts.ImagesArtifact, error) {
	var a artifacts.ImagesArtifact
	if err := s.loadArtifact(artifacts.CategoryImages, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// LoadText loads the text artifact.
func (s *Store) LoadText() (*artifacts.TextArtifact, error) {
	var a artifacts.TextArtifact
	if err := s.loadArtifact(artifacts.CategoryText, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// LoadTables loads the tables artifact.
func (s *Store) LoadTables() (*artifacts.TablesArtifact, error) {
	var a artifacts.TablesArtifact
	if err := s.loadArtifact(artifacts.CategoryTables, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// LoadReviews loads the reviews artifact.
func (s *Store) LoadReviews() (*artifacts.ReviewsArtifact, error) {
	var a artifacts.ReviewsArtifact
	if err := s.loadArtifact(artifacts.CategoryReviews, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// LoadBundle loads all four category artifacts. A category that is
// missing or unreadable becomes a nil slot in the bundle, logged at
// warn level; the validators turn nil slots into FAIL reports, so a
// broken artifact never crashes a run.
func (s *Store) LoadBundle() *artifacts.Bundle {
	b := &artifacts.Bundle{}

	if a, err := s.LoadImages(); err != nil {
		s.warnLoad(artifacts.CategoryImages, err)
	} else {
		b.Images = a
	}
	if a, err := s.LoadText(); err != nil {
		s.warnLoad(artifacts.CategoryText, err)
	} else {
		b.Text = a
	}
	if a, err := s.LoadTables(); err != nil {
		s.warnLoad(artifacts.CategoryTables, err)
	} else {
		b.Tables = a
	}
	if a, err := s.LoadReviews(); err != nil {
		s.warnLoad(artifacts.CategoryReviews, err)
	} else {
		b.Reviews = a
	}

	return b
}

// ArtifactExists reports whether the category's artifact file exists.
func (s *Store) ArtifactExists(c artifacts.Category) bool {
	_, err := os.Stat(s.ArtifactPath(c))
	return err == nil
}

// SaveArtifact writes v as the category's artifact file, creating the
// category directory if needed.
func (s *Store) SaveArtifact(c artifacts.Category, v any) error {
	return s.WriteJSON(s.ArtifactPath(c), v)
}

// SaveValidationSummary writes the validation summary document.
func (s *Store) SaveValidationSummary(v any) error {
	return s.WriteJSON(s.ArtifactPath(artifacts.CategoryValidation), v)
}

// SaveReport writes the orchestration report alongside the validation
// summary.
func (s *Store) SaveReport(v any) error {
	return s.WriteJSON(filepath.Join(s.CategoryDir(artifacts.CategoryValidation), ReportFile), v)
}

// SaveDeploymentReport writes the deployment report alongside the
// validation summary.
func (s *Store) SaveDeploymentReport(v any) error {
	return s.WriteJSON(filepath.Join(s.CategoryDir(artifacts.CategoryValidation), DeploymentReportFile), v)
}

// LoadValidationSummary decodes the validation summary into v.
func (s *Store) LoadValidationSummary(v any) error {
	return s.loadArtifact(artifacts.CategoryValidation, v)
}

// WriteJSON marshals v with indentation and writes it to path,
// creating parent directories as needed.
func (s *Store) WriteJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return verrors.WrapParse("json", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), dirPermissions); err != nil {
		return verrors.WrapIO("create", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, filePermissions); err != nil {
		return verrors.WrapIO("write", path, err)
	}
	return nil
}

func (s *Store) loadArtifact(c artifacts.Category, v any) error {
	path := s.ArtifactPath(c)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return verrors.NewArtifactNotFoundError(string(c), path)
		}
		return verrors.NewArtifactError(string(c), path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return verrors.NewArtifactError(string(c), path, err)
	}
	return nil
}

func (s *Store) warnLoad(c artifacts.Category, err error) {
	s.logger.Warn().
		Str("category", string(c)).
		Err(err).
		Msg("artifact unavailable")
}
