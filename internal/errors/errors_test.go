package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCode_HTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		code Code
		want int
	}{
		{"not found", CodeNotFound, http.StatusNotFound},
		{"file missing", CodeFileMissing, http.StatusNotFound},
		{"not scanned", CodeNotScanned, http.StatusBadRequest},
		{"scan in progress", CodeScanInProgress, http.StatusConflict},
		{"validation", CodeValidation, http.StatusBadRequest},
		{"unauthorized", CodeUnauthorized, http.StatusUnauthorized},
		{"invalid credentials", CodeInvalidCredentials, http.StatusUnauthorized},
		{"unknown", Code("SOMETHING_ELSE"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.code.HTTPStatus())
		})
	}
}

func TestError_Is_MatchesByCode(t *testing.T) {
	err := NotScanned("library not ready")

	assert.True(t, Is(err, ErrNotScanned))
	assert.False(t, Is(err, ErrNotFound))
}

func TestError_Is_ThroughWrapping(t *testing.T) {
	inner := ScanInProgress("scan already in progress")
	wrapped := fmt.Errorf("trigger scan: %w", inner)

	assert.True(t, Is(wrapped, ErrScanInProgress))
}

func TestError_WithCause(t *testing.T) {
	cause := fmt.Errorf("open /music: no such file or directory")
	err := NotFound("music directory not found").WithCause(cause)

	require.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "no such file")
}

func TestError_DistinctStreamFailures(t *testing.T) {
	// Unknown song id and missing file must stay distinguishable.
	unknown := NotFound("song not found")
	missing := FileMissing("audio file not found on disk")

	assert.False(t, Is(unknown, ErrFileMissing))
	assert.False(t, Is(missing, ErrNotFound))
	assert.Equal(t, http.StatusNotFound, unknown.HTTPStatus())
	assert.Equal(t, http.StatusNotFound, missing.HTTPStatus())
}
