package cmd

import (
	"runtime"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/opmodel/bulk-npm-publish/internal/cmdtypes"
	"github.com/opmodel/bulk-npm-publish/internal/cmdutil"
	"github.com/opmodel/bulk-npm-publish/internal/options"
	"github.com/opmodel/bulk-npm-publish/internal/output"
	"github.com/opmodel/bulk-npm-publish/internal/registry"
)

const rootExamples = `  # Create publish script interactively
  bulk-npm-publish -i

  # Create ./publish.sh with the storage content of ~/new-storage
  bulk-npm-publish --sp ~/new-storage

  # Write the script somewhere else
  bulk-npm-publish --sp ~/new-storage -o /root/publish-script.sh

  # Publish to a custom registry
  bulk-npm-publish --sp ~/new-storage -r http://localhost:4873

  # Only packages missing from the configured registry
  bulk-npm-publish --sp ~/new-storage --only-new

  # Only packages missing from a given registry
  bulk-npm-publish --sp ~/new-storage --rg http://localhost:4873`

// NewRootCmd creates the root command wired to the host filesystem, the
// terminal and the npm registry client.
func NewRootCmd() *cobra.Command {
	return newRootCmd(&cmdtypes.GlobalConfig{
		Fs:       afero.NewOsFs(),
		Registry: registry.NewClient(),
		Prompter: options.NewHuhPrompter(false),
		GOOS:     runtime.GOOS,
	})
}

func newRootCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	var (
		logFlags cmdutil.LogFlags
		argFlags options.ArgFlags
	)

	rootCmd := &cobra.Command{
		Use:   "bulk-npm-publish",
		Short: "Generate a script that publishes every package of a local npm storage",
		Long: `bulk-npm-publish scans a local npm registry storage (such as a Verdaccio
storage directory) and writes a shell or batch script with one
"npm publish" command per package archive.

Options are read from the command line, asked interactively with -i, or
as a deprecated fallback read from an env file (STORAGE_PATH,
PUBLISH_SCRIPT_DEST_PATH, REGISTRY_URL).`,
		Example:       rootExamples,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			output.SetupLogging(logFlags.LogConfig(cmd))
			output.SetLogWriter(cmd.ErrOrStderr())
			cfg.Verbose = logFlags.Verbose
			output.Debug("initializing CLI", "envFile", cfg.EnvFile, "goos", cfg.GOOS)
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd.Context(), cfg, argFlags.Source())
		},
	}

	logFlags.AddTo(rootCmd)
	argFlags.AddTo(rootCmd)
	rootCmd.Flags().StringVar(&cfg.EnvFile, "env-file", options.DefaultEnvFile,
		"Env file read when no other option source is usable (deprecated)")

	rootCmd.AddCommand(NewListCmd(cfg))
	rootCmd.AddCommand(NewVersionCmd(cfg))

	return rootCmd
}
