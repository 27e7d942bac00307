// Package cmdutil provides shared command utilities. It centralizes flag
// groups, the discover pipeline shared by the generate and list commands,
// and user-facing error output.
package cmdutil

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/opmodel/bulk-npm-publish/internal/output"
)

// LogFlags holds the global logging flags.
type LogFlags struct {
	Verbose    bool
	Timestamps bool
}

// AddTo registers the logging flags as persistent flags on cmd.
func (f *LogFlags) AddTo(cmd *cobra.Command) {
	cmd.PersistentFlags().BoolVarP(&f.Verbose, "verbose", "v", false,
		"Enable verbose output")
	cmd.PersistentFlags().BoolVar(&f.Timestamps, "timestamps", true,
		"Show timestamps in log output")
}

// LogConfig builds the logger configuration. Timestamps are only forced
// when the flag was set explicitly.
func (f *LogFlags) LogConfig(cmd *cobra.Command) output.LogConfig {
	cfg := output.LogConfig{Verbose: f.Verbose}
	if cmd.Flags().Changed("timestamps") {
		cfg.Timestamps = output.BoolPtr(f.Timestamps)
	}
	return cfg
}

// FormatFlags holds the output format flag of listing commands.
type FormatFlags struct {
	Format string
}

// AddTo registers the format flag on cmd.
func (f *FormatFlags) AddTo(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.Format, "output", "o", string(output.FormatTable),
		fmt.Sprintf("Output format (%s)", strings.Join(output.ValidFormats(), ", ")))
}

// Parse returns the selected format.
func (f *FormatFlags) Parse() (output.OutputFormat, error) {
	format, ok := output.ParseOutputFormat(f.Format)
	if !ok {
		return "", fmt.Errorf("invalid output format %q (valid: %s)",
			f.Format, strings.Join(output.ValidFormats(), ", "))
	}
	return format, nil
}

// OnlyNewFlags holds the flags restricting output to unpublished packages.
type OnlyNewFlags struct {
	OnlyNew        bool
	RemoteRegistry string
}

// AddTo registers the only-new flags on cmd.
func (f *OnlyNewFlags) AddTo(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.OnlyNew, "only-new", false,
		"Only include packages missing from the registry")
	cmd.Flags().StringVar(&f.RemoteRegistry, "remote-registry", "",
		"Registry checked for already published packages (implies --only-new)")
}

// Enabled reports whether filtering was requested.
func (f *OnlyNewFlags) Enabled() bool {
	return f.OnlyNew || f.RemoteRegistry != ""
}
