// Package registry talks to npm compatible registries and resolves the
// registry configured for the local user.
package registry

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/viper"

	"github.com/opmodel/bulk-npm-publish/internal/output"
)

// DefaultRegistry is used when the user has not configured a registry.
const DefaultRegistry = "https://registry.npmjs.org/"

// Source indicates where the configured registry came from.
type Source string

const (
	// SourceEnv indicates the npm_config_registry environment variable.
	SourceEnv Source = "env"
	// SourceNpmrc indicates the registry key of the user npmrc file.
	SourceNpmrc Source = "npmrc"
	// SourceDefault indicates the public npm registry.
	SourceDefault Source = "default"
)

// ResolveOptions contains options for configured registry resolution.
type ResolveOptions struct {
	// Fs is used to read the npmrc file. Defaults to the OS filesystem.
	Fs afero.Fs

	// NpmrcPath overrides the npmrc location (empty uses
	// npm_config_userconfig, then ~/.npmrc).
	NpmrcPath string
}

// ResolveResult contains the resolved registry and its source.
type ResolveResult struct {
	Registry string
	Source   Source
	// Shadowed contains values that were overridden by higher precedence.
	Shadowed map[Source]string
}

// Resolve finds the registry configured for the local user using precedence:
// (1) npm_config_registry env, (2) registry key in npmrc, (3) DefaultRegistry.
func Resolve(opts ResolveOptions) ResolveResult {
	if opts.Fs == nil {
		opts.Fs = afero.NewOsFs()
	}

	v := viper.New()
	_ = v.BindEnv("registry", "npm_config_registry", "NPM_CONFIG_REGISTRY")
	_ = v.BindEnv("userconfig", "npm_config_userconfig", "NPM_CONFIG_USERCONFIG")

	result := ResolveResult{Shadowed: make(map[Source]string)}

	npmrcPath := opts.NpmrcPath
	if npmrcPath == "" {
		npmrcPath = v.GetString("userconfig")
	}
	if npmrcPath == "" {
		if home, err := os.UserHomeDir(); err == nil {
			npmrcPath = filepath.Join(home, ".npmrc")
		}
	}

	envValue := strings.TrimSpace(v.GetString("registry"))
	npmrcValue := ""
	if npmrcPath != "" {
		value, err := readNpmrcRegistry(opts.Fs, npmrcPath)
		if err != nil {
			output.Debug("cannot read npmrc", "path", npmrcPath, "error", err)
		}
		npmrcValue = value
	}

	switch {
	case envValue != "":
		result.Registry = envValue
		result.Source = SourceEnv
		if npmrcValue != "" {
			result.Shadowed[SourceNpmrc] = npmrcValue
		}
	case npmrcValue != "":
		result.Registry = npmrcValue
		result.Source = SourceNpmrc
	default:
		result.Registry = DefaultRegistry
		result.Source = SourceDefault
	}

	output.Debug("configured registry resolved",
		"registry", result.Registry,
		"source", result.Source,
	)

	return result
}

// Configured returns the registry configured for the local user.
// It is resolved on every call since the configuration can change between runs.
func Configured() string {
	return Resolve(ResolveOptions{}).Registry
}

// readNpmrcRegistry returns the value of the top-level "registry" key of an
// npmrc file. Only a subset of the npmrc format is read: lines starting with
// '#' or ';' are comments, surrounding quotes are trimmed and the last
// "registry" line wins. Scoped "@scope:registry" keys are ignored. Ini
// sections and "${VAR}" expansion are not recognized, values are taken
// literally.
func readNpmrcRegistry(fs afero.Fs, path string) (string, error) {
	f, err := fs.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	registry := ""
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, ";") {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		if strings.TrimSpace(key) != "registry" {
			continue
		}
		registry = strings.Trim(strings.TrimSpace(value), `"'`)
	}

	return registry, scanner.Err()
}
