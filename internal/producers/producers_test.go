package producers_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/factbench/verdiq/internal/producers"
	"github.com/factbench/verdiq/internal/workspace"
	"github.com/factbench/verdiq/pkg/artifacts"
	verrors "github.com/factbench/verdiq/pkg/errors"
	"github.com/factbench/verdiq/pkg/logging"
)

type flakyProducer struct {
	failures int
	calls    int
	err      error
}

func (p *flakyProducer) Category() artifacts.Category { return artifacts.CategoryImages }

func (p *flakyProducer) Produce(ctx context.Context, source string) error {
	p.calls++
	if p.calls <= p.failures {
		if p.err != nil {
			return p.err
		}
		return errors.New("transient failure")
	}
	return nil
}

func instantRetry(attempts int) producers.RetryPolicy {
	return producers.RetryPolicy{
		MaxAttempts: attempts,
		Backoff:     func(int) time.Duration { return 0 },
	}
}

func TestRunRetriesTransientFailures(t *testing.T) {
	p := &flakyProducer{failures: 2}

	err := producers.Run(context.Background(), p, "pool-cleaners", instantRetry(3))

	require.NoError(t, err)
	assert.Equal(t, 3, p.calls)
}

func TestRunExhaustsAttempts(t *testing.T) {
	p := &flakyProducer{failures: 5}

	err := producers.Run(context.Background(), p, "pool-cleaners", instantRetry(3))

	require.Error(t, err)
	assert.Equal(t, 3, p.calls)
}

func TestRunDoesNotRetryMissingArtifact(t *testing.T) {
	p := &flakyProducer{failures: 5, err: verrors.NewArtifactNotFoundError("images", "/missing")}

	err := producers.Run(context.Background(), p, "pool-cleaners", instantRetry(3))

	require.Error(t, err)
	assert.True(t, verrors.IsArtifactNotFound(err))
	assert.Equal(t, 1, p.calls)
}

func TestRunStopsOnCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p := &flakyProducer{failures: 5}

	err := producers.Run(ctx, p, "pool-cleaners", producers.RetryPolicy{
		MaxAttempts: 3,
		Backoff:     func(int) time.Duration { return time.Hour },
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, p.calls)
}

func TestFileProducerStagesArtifact(t *testing.T) {
	srcDir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(srcDir, "images"), 0o755))
	require.NoError(t, os.WriteFile(
		filepath.Join(srcDir, "images", workspace.ImagesFile),
		[]byte(`{"products":{"dolphin":{"downloaded_count":2}},"total_images":2}`),
		0o644,
	))
	store := workspace.New(t.TempDir(), &logging.Nop)

	p := producers.NewFileProducer(artifacts.CategoryImages, srcDir, store, &logging.Nop)
	require.NoError(t, p.Produce(context.Background(), "pool-cleaners"))

	loaded, err := store.LoadImages()
	require.NoError(t, err)
	assert.Equal(t, 2, loaded.Products["dolphin"].DownloadedCount)
}

func TestFileProducerMissingSource(t *testing.T) {
	store := workspace.New(t.TempDir(), &logging.Nop)
	p := producers.NewFileProducer(artifacts.CategoryText, t.TempDir(), store, &logging.Nop)

	err := p.Produce(context.Background(), "pool-cleaners")

	assert.True(t, verrors.IsArtifactNotFound(err))
}

func TestForStoreCoversAllCategories(t *testing.T) {
	store := workspace.New(t.TempDir(), &logging.Nop)

	ps := producers.ForStore(t.TempDir(), store, &logging.Nop)

	require.Len(t, ps, 4)
	seen := map[artifacts.Category]bool{}
	for _, p := range ps {
		seen[p.Category()] = true
	}
	assert.Len(t, seen, 4)
}
