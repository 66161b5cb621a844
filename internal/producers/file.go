package producers

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/factbench/verdiq/internal/workspace"
	"github.com/factbench/verdiq/pkg/artifacts"
	verrors "github.com/factbench/verdiq/pkg/errors"
)

// FileProducer surfaces a pre-extracted artifact: it reads the category
// file from a source directory laid out like the store and writes it
// into the store. This is the producer the pipeline uses when
// extraction already happened out of band.
type FileProducer struct {
	category artifacts.Category
	srcDir   string
	store    *workspace.Store
	logger   *zerolog.Logger
}

// NewFileProducer returns a producer that copies the category artifact
// from srcDir into the store.
func NewFileProducer(category artifacts.Category, srcDir string, store *workspace.Store, logger *zerolog.Logger) *FileProducer {
	return &FileProducer{category: category, srcDir: srcDir, store: store, logger: logger}
}

// Category implements Producer.
func (p *FileProducer) Category() artifacts.Category {
	return p.category
}

// Produce implements Producer. The artifact is decoded before being
// re-written so malformed source files surface here rather than at
// validation time.
func (p *FileProducer) Produce(ctx context.Context, source string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path := filepath.Join(p.srcDir, string(p.category), filepath.Base(p.store.ArtifactPath(p.category)))
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return verrors.NewArtifactNotFoundError(string(p.category), path)
		}
		return verrors.NewArtifactError(string(p.category), path, err)
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return verrors.NewArtifactError(string(p.category), path, err)
	}

	p.logger.Debug().
		Str("category", string(p.category)).
		Str("source", source).
		Str("path", path).
		Msg("artifact staged")
	return p.store.SaveArtifact(p.category, doc)
}

// ForStore returns one file producer per extraction category, all
// reading from srcDir.
func ForStore(srcDir string, store *workspace.Store, logger *zerolog.Logger) []Producer {
	categories := []artifacts.Category{
		artifacts.CategoryImages,
		artifacts.CategoryText,
		artifacts.CategoryTables,
		artifacts.CategoryReviews,
	}
	out := make([]Producer, 0, len(categories))
	for _, c := range categories {
		out = append(out, NewFileProducer(c, srcDir, store, logger))
	}
	return out
}
