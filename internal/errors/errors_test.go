//nolint:revive // Package name matches the package it tests
package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSentinelErrors(t *testing.T) {
	assert.NotEqual(t, ErrValidation, ErrConnectivity)
	assert.NotEqual(t, ErrValidation, ErrNotFound)
	assert.NotEqual(t, ErrValidation, ErrCancelled)
}

func TestDetailErrorError(t *testing.T) {
	detail := &DetailError{
		Type:    "validation failed",
		Message: "Directory does not exist",
		Field:   "storagePath",
		Context: map[string]string{"Path": "/tmp/storage"},
		Hint:    "Pass an existing directory with --storage-path",
	}

	output := detail.Error()

	assert.Contains(t, output, "Error: validation failed")
	assert.Contains(t, output, "Field: storagePath")
	assert.Contains(t, output, "Path: /tmp/storage")
	assert.Contains(t, output, "Directory does not exist")
	assert.Contains(t, output, "Hint: Pass an existing directory with --storage-path")
}

func TestDetailErrorUnwrap(t *testing.T) {
	detail := &DetailError{
		Type:    "test",
		Message: "test message",
		Cause:   ErrValidation,
	}

	assert.True(t, errors.Is(detail, ErrValidation))
	assert.Equal(t, ErrValidation, detail.Unwrap())
}

func TestNewValidationError(t *testing.T) {
	err := NewValidationError("Invalid path", "destinationScriptPath", "Use a file path")

	require.NotNil(t, err)
	assert.True(t, errors.Is(err, ErrValidation))

	var detail *DetailError
	require.True(t, errors.As(err, &detail))
	assert.Equal(t, "validation failed", detail.Type)
	assert.Equal(t, "Invalid path", detail.Message)
	assert.Equal(t, "destinationScriptPath", detail.Field)
	assert.Equal(t, "Use a file path", detail.Hint)
}

func TestNewConnectivityError(t *testing.T) {
	err := NewConnectivityError("ping failed", map[string]string{"Registry": "http://localhost:4873"}, "")
	assert.True(t, errors.Is(err, ErrConnectivity))
	assert.Contains(t, err.Error(), "Registry: http://localhost:4873")
}

func TestExitCodeFromError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{name: "nil error returns success", err: nil, wantCode: ExitSuccess},
		{name: "validation error", err: ErrValidation, wantCode: ExitValidationError},
		{name: "wrapped validation error", err: fmt.Errorf("bad storage: %w", ErrValidation), wantCode: ExitValidationError},
		{name: "connectivity error", err: ErrConnectivity, wantCode: ExitConnectivityError},
		{name: "not found error", err: ErrNotFound, wantCode: ExitNotFound},
		{name: "cancelled", err: fmt.Errorf("prompt: %w", ErrCancelled), wantCode: ExitCancelled},
		{name: "explicit exit error", err: &ExitError{Err: errors.New("boom"), Code: 42}, wantCode: 42},
		{name: "unknown error", err: errors.New("boom"), wantCode: ExitGeneralError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantCode, ExitCodeFromError(tt.err))
		})
	}
}

func TestExitError_Unwrap(t *testing.T) {
	inner := errors.New("inner")
	exitErr := &ExitError{Err: inner, Code: ExitGeneralError}

	assert.Equal(t, "inner", exitErr.Error())
	assert.True(t, errors.Is(exitErr, inner))
}

func TestNewNotFoundError(t *testing.T) {
	err := NewNotFoundError("Couldn't get user options", "pass --storage-path")

	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, ExitNotFound, ExitCodeFromError(err))
	assert.Contains(t, err.Error(), "Hint: pass --storage-path")
}
