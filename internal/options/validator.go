package options

import (
	"context"
	"errors"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	oerrors "github.com/opmodel/bulk-npm-publish/internal/errors"
	"github.com/opmodel/bulk-npm-publish/internal/fsutil"
	"github.com/opmodel/bulk-npm-publish/internal/output"
	"github.com/opmodel/bulk-npm-publish/internal/registry"
)

// Validation failures. The messages are shown to the user verbatim.
var (
	ErrMissingPath       = errors.New("Missing path")
	ErrInvalidPath       = errors.New("Invalid path")
	ErrDirectoryNotExist = errors.New("Directory does not exist")
	ErrParentNotExist    = errors.New("Parent folder does not exist")
	ErrDirectoryExists   = errors.New("There is directory already exists with this path")
	ErrInvalidRegistry   = errors.New("Registry is not valid http(s) url")
	ErrPingRegistry      = errors.New("Ping registry failed, make sure the NPM registry support ping and accessible")
)

// Option field names used in FieldError.
const (
	FieldStoragePath           = "storagePath"
	FieldDestinationScriptPath = "destinationScriptPath"
	FieldPublishRegistry       = "publishOptions.registry"
	FieldOnlyNew               = "onlyNew"
)

// invalidPathChars cannot appear in a path outside its volume name.
const invalidPathChars = `<>:"|?*`

// FieldError reports which option failed validation and why.
type FieldError struct {
	Field string
	Err   error
}

// Error implements the error interface.
func (e *FieldError) Error() string {
	return e.Field + ": " + e.Err.Error()
}

// Unwrap exposes the validation reason and its error category.
func (e *FieldError) Unwrap() []error {
	category := oerrors.ErrValidation
	if errors.Is(e.Err, ErrPingRegistry) {
		category = oerrors.ErrConnectivity
	}
	return []error{e.Err, category}
}

// Pinger checks that a registry is reachable.
type Pinger interface {
	Ping(ctx context.Context, registry string) error
}

// Validator checks option fields against the filesystem and registries.
type Validator struct {
	fs                 afero.Fs
	pinger             Pinger
	configuredRegistry func() string
}

// NewValidator creates a Validator. configuredRegistry supplies the registry
// used by the only-new policy when none is given; nil uses the local npm
// configuration.
func NewValidator(fs afero.Fs, pinger Pinger, configuredRegistry func() string) *Validator {
	if configuredRegistry == nil {
		configuredRegistry = registry.Configured
	}
	return &Validator{
		fs:                 fs,
		pinger:             pinger,
		configuredRegistry: configuredRegistry,
	}
}

// Validate runs every field validator concurrently and returns the first
// failure as a *FieldError.
func (v *Validator) Validate(ctx context.Context, opts Options) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		storagePath := &opts.StoragePath
		if opts.storagePathAbsent {
			storagePath = nil
		}
		return fieldError(FieldStoragePath, v.ValidateStorageOption(storagePath))
	})
	g.Go(func() error {
		return fieldError(FieldDestinationScriptPath, v.ValidateDestinationPath(opts.DestinationScriptPath))
	})
	g.Go(func() error {
		return fieldError(FieldPublishRegistry, v.ValidateRegistryIfSpecified(opts.Publish.Registry))
	})
	g.Go(func() error {
		return fieldError(FieldOnlyNew, v.ValidateOnlyNewIfSpecified(gctx, opts.OnlyNew))
	})

	if err := g.Wait(); err != nil {
		output.Debug("options failed validation", "error", err)
		return err
	}
	return nil
}

// ValidateStorageOption reports a nil path as missing and otherwise
// defers to ValidateStorage.
func (v *Validator) ValidateStorageOption(path *string) error {
	if path == nil {
		return ErrMissingPath
	}
	return v.ValidateStorage(*path)
}

// ValidateStorage checks that path is a valid path to an existing directory.
func (v *Validator) ValidateStorage(path string) error {
	if !isValidPath(path) {
		return ErrInvalidPath
	}
	if !fsutil.PathIsDirectory(v.fs, path) {
		return ErrDirectoryNotExist
	}
	return nil
}

// ValidateDestinationPath checks that path names a file whose parent
// directory exists and that it is not itself an existing directory.
func (v *Validator) ValidateDestinationPath(path string) error {
	if !isValidPath(path) || strings.HasSuffix(path, "/") || strings.HasSuffix(path, `\`) {
		return ErrInvalidPath
	}
	if !fsutil.PathIsDirectory(v.fs, filepath.Dir(path)) {
		return ErrParentNotExist
	}
	if fsutil.PathIsDirectory(v.fs, path) {
		return ErrDirectoryExists
	}
	return nil
}

// ValidateRegistryIfSpecified accepts an empty registry or an http(s) URL.
func (v *Validator) ValidateRegistryIfSpecified(reg string) error {
	if reg == "" {
		return nil
	}
	if !registry.IsWebURL(reg) {
		return ErrInvalidRegistry
	}
	return nil
}

// ValidateOnlyNewIfSpecified accepts a disabled policy. When enabled, the
// effective registry must be an http(s) URL that answers a ping.
func (v *Validator) ValidateOnlyNewIfSpecified(ctx context.Context, policy OnlyNewPolicy) error {
	if !policy.Enabled {
		return nil
	}

	reg := policy.Registry
	if reg == "" {
		reg = v.configuredRegistry()
	}

	if !registry.IsWebURL(reg) {
		return ErrInvalidRegistry
	}

	if err := v.pinger.Ping(ctx, reg); err != nil {
		output.Debug("registry ping failed", "registry", reg, "error", err)
		return ErrPingRegistry
	}

	return nil
}

func fieldError(field string, err error) error {
	if err == nil {
		return nil
	}
	return &FieldError{Field: field, Err: err}
}

// isValidPath rejects blank paths, NUL bytes and characters that are not
// allowed in file names on any supported platform.
func isValidPath(path string) bool {
	if strings.TrimSpace(path) == "" || strings.ContainsRune(path, 0) {
		return false
	}
	rest := path[len(filepath.VolumeName(path)):]
	return !strings.ContainsAny(rest, invalidPathChars)
}
