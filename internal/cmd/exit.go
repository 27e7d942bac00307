// Package cmd provides command implementations for bulk-npm-publish.
package cmd

import (
	"errors"
	"fmt"

	"github.com/opmodel/bulk-npm-publish/internal/cmdtypes"
	oerrors "github.com/opmodel/bulk-npm-publish/internal/errors"
	"github.com/opmodel/bulk-npm-publish/internal/options"
	"github.com/opmodel/bulk-npm-publish/internal/output"
)

// Exit codes, aliased from cmdtypes.
const (
	ExitSuccess           = cmdtypes.ExitSuccess
	ExitGeneralError      = cmdtypes.ExitGeneralError
	ExitValidationError   = cmdtypes.ExitValidationError
	ExitConnectivityError = cmdtypes.ExitConnectivityError
	ExitNotFound          = cmdtypes.ExitNotFound
	ExitCancelled         = cmdtypes.ExitCancelled
)

// ExitError is a type alias to cmdtypes.ExitError.
type ExitError = cmdtypes.ExitError

// reportResolutionError prints an option resolution failure and converts it
// into an exit error. A cancel keeps options.ErrCancel and gains
// ErrCancelled; running out of sources becomes a not found error.
func reportResolutionError(err error) *ExitError {
	switch {
	case errors.Is(err, options.ErrCancel):
		output.Info("exiting")
		return &ExitError{
			Code:    ExitCancelled,
			Err:     fmt.Errorf("%w: %w", err, oerrors.ErrCancelled),
			Printed: true,
		}
	case errors.Is(err, options.ErrNoOptions), errors.Is(err, options.ErrNoSlotSources):
		detail := oerrors.NewNotFoundError(err.Error(), options.ErrArgsMissing.Error())
		output.Error(err.Error())
		output.Info(options.ErrArgsMissing.Error())
		return &ExitError{Code: oerrors.ExitCodeFromError(detail), Err: detail, Printed: true}
	default:
		output.Error(err.Error())
		return &ExitError{Code: oerrors.ExitCodeFromError(err), Err: err, Printed: true}
	}
}
