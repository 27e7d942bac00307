// Package cmdtypes provides shared types for the cmd package.
// It is separate from internal/cmd so that helpers and tests can build a
// GlobalConfig without importing the commands.
package cmdtypes

import (
	"github.com/spf13/afero"

	oerrors "github.com/opmodel/bulk-npm-publish/internal/errors"
	"github.com/opmodel/bulk-npm-publish/internal/options"
	"github.com/opmodel/bulk-npm-publish/internal/registry"
)

// GlobalConfig holds CLI-wide dependencies resolved during PersistentPreRunE.
// It is passed explicitly into every sub-command constructor.
type GlobalConfig struct {
	// Fs is the filesystem storage is scanned on and the script written to.
	Fs afero.Fs

	// Registry pings registries and checks published packages.
	Registry *registry.Client

	// Prompter asks interactive questions. Nil disables interactive input.
	Prompter options.Prompter

	// GOOS selects platform defaults and the script line ending.
	GOOS string

	// EnvFile is the resolved --env-file path.
	EnvFile string

	Verbose bool
}

// Exit codes, aliased from internal/errors.
const (
	ExitSuccess           = oerrors.ExitSuccess
	ExitGeneralError      = oerrors.ExitGeneralError
	ExitValidationError   = oerrors.ExitValidationError
	ExitConnectivityError = oerrors.ExitConnectivityError
	ExitNotFound          = oerrors.ExitNotFound
	ExitCancelled         = oerrors.ExitCancelled
)

// ExitError is a type alias to internal/errors.ExitError.
type ExitError = oerrors.ExitError
