package options

import (
	"context"
	"errors"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/opmodel/bulk-npm-publish/internal/output"
)

// DefaultEnvFile is read by the environment source when no file is given.
const DefaultEnvFile = ".env"

// Environment variable names read by EnvSource.
const (
	EnvStoragePath           = "STORAGE_PATH"
	EnvDestinationScriptPath = "PUBLISH_SCRIPT_DEST_PATH"
	EnvRegistryURL           = "REGISTRY_URL"
)

// ErrEnvParse is returned when the environment file could not be read.
var ErrEnvParse = errors.New("Error on parsing environment user options")

// EnvSource reads options from an env file, overridden by the process
// environment. It is deprecated in favour of flags and interactive input.
type EnvSource struct {
	path    string
	values  map[string]string
	loadErr error
}

// NewEnvSource reads the env file at path once. A missing or unreadable file
// is remembered and reported by Options.
func NewEnvSource(path string) *EnvSource {
	if path == "" {
		path = DefaultEnvFile
	}
	values, err := godotenv.Read(path)
	if err != nil {
		output.Debug("reading env file", "path", path, "error", err)
	}
	return &EnvSource{path: path, values: values, loadErr: err}
}

// Name implements Source.
func (s *EnvSource) Name() string {
	return "env"
}

// Options implements Source. Unset variables are left absent.
func (s *EnvSource) Options(_ context.Context) (Partial, error) {
	if s.loadErr != nil {
		return Partial{}, ErrEnvParse
	}

	output.Warn("Getting options from the environment file is deprecated, use the command-line flags or -i instead",
		"path", s.path)

	v := viper.New()
	for _, key := range []string{EnvStoragePath, EnvDestinationScriptPath, EnvRegistryURL} {
		if err := v.BindEnv(key); err != nil {
			return Partial{}, err
		}
		if value, ok := s.values[key]; ok {
			v.SetDefault(key, value)
		}
	}

	lookup := func(key string) *string {
		if !v.IsSet(key) {
			return nil
		}
		return String(v.GetString(key))
	}

	partial := Partial{
		StoragePath:           lookup(EnvStoragePath),
		DestinationScriptPath: lookup(EnvDestinationScriptPath),
	}
	if reg := lookup(EnvRegistryURL); reg != nil {
		partial.Publish = &PartialPublishOptions{Registry: reg}
	}
	return partial, nil
}
