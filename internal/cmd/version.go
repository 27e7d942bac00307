package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opmodel/bulk-npm-publish/internal/cmdtypes"
	"github.com/opmodel/bulk-npm-publish/internal/version"
)

// NewVersionCmd creates the version command.
func NewVersionCmd(_ *cmdtypes.GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long: `Show bulk-npm-publish version information.

Displays the version, commit and build date, and the Go toolchain and
platform the binary was built for.`,
		Args: cobra.NoArgs,
		RunE: runVersion,
	}
}

func runVersion(cmd *cobra.Command, _ []string) error {
	info := version.Get()
	_, err := fmt.Fprintln(cmd.OutOrStdout(), info.String())
	return err
}
