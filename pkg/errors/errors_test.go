package errors_test

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/factbench/verdiq/pkg/errors"
)

func TestArtifactErrorMissing(t *testing.T) {
	err := errors.NewArtifactNotFoundError("images", "workspace/images/image_manifest.json")

	assert.True(t, errors.IsArtifactNotFound(err))
	assert.False(t, errors.IsArtifactMalformed(err))
	assert.Contains(t, err.Error(), "images artifact not found")
}

func TestArtifactErrorMalformed(t *testing.T) {
	cause := stderrors.New("unexpected end of JSON input")
	err := errors.NewArtifactError("tables", "workspace/tables/all_tables_data.json", cause)

	assert.True(t, errors.IsArtifactMalformed(err))
	assert.False(t, errors.IsArtifactNotFound(err))
	assert.ErrorIs(t, err, cause)
}

func TestParseErrorIsMalformed(t *testing.T) {
	cause := stderrors.New("invalid character '}'")
	err := errors.WrapParse("json", "reviews.json", cause)

	assert.True(t, errors.IsArtifactMalformed(err))
	assert.Contains(t, err.Error(), "reviews.json")
}

func TestProcessError(t *testing.T) {
	err := errors.NewProcessError("build", "npm run build", "module not found", 1, stderrors.New("exit status 1"))

	assert.True(t, errors.IsProcessFailure(err))
	assert.Contains(t, err.Error(), "npm run build")
	assert.Contains(t, err.Error(), "module not found")
	assert.False(t, err.AuthFailure())
}

func TestProcessErrorAuthFailure(t *testing.T) {
	tests := []struct {
		name   string
		output string
		want   bool
	}{
		{"token in output", "remote: Invalid TOKEN supplied", true},
		{"authentication in output", "fatal: Authentication failed", true},
		{"unrelated failure", "disk full", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := errors.NewProcessError("publish", "scripts/publish.sh", tt.output, 1, nil)
			assert.Equal(t, tt.want, err.AuthFailure())
		})
	}
}

func TestCredentialError(t *testing.T) {
	err := &errors.CredentialError{Source: "environment", Message: "PUBLISH_TOKEN not set"}

	assert.True(t, errors.IsCredentialUnavailable(err))
	assert.Contains(t, err.Error(), "environment")
}

func TestIntegrationErrorUnwrap(t *testing.T) {
	cause := stderrors.New("permission denied")
	err := errors.NewIntegrationError("images", cause)

	require.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "images")
}

func TestWrapHelpersNilPassthrough(t *testing.T) {
	assert.NoError(t, errors.WrapIO("read", "file", nil))
	assert.NoError(t, errors.WrapParse("json", "file", nil))
	assert.NoError(t, errors.WrapResource("load", "report", "", nil))
}
