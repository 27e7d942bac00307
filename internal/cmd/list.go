package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/opmodel/bulk-npm-publish/internal/cmdtypes"
	"github.com/opmodel/bulk-npm-publish/internal/cmdutil"
	oerrors "github.com/opmodel/bulk-npm-publish/internal/errors"
	"github.com/opmodel/bulk-npm-publish/internal/options"
	"github.com/opmodel/bulk-npm-publish/internal/output"
	"github.com/opmodel/bulk-npm-publish/internal/storage"
)

// NewListCmd creates the list command.
func NewListCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	var (
		storagePath string
		formatFlags cmdutil.FormatFlags
		onlyNew     cmdutil.OnlyNewFlags
	)

	cmd := &cobra.Command{
		Use:   "list [storage-path]",
		Short: "List the packages found in a storage",
		Long: `List the package archives found in a local npm storage without writing
a publish script.

With --only-new (or --remote-registry) packages already published to the
registry are left out.`,
		Example: `  # List a Verdaccio storage as a table
  bulk-npm-publish list ~/verdaccio/storage

  # Packages missing from a registry, as JSON
  bulk-npm-publish list ~/verdaccio/storage --rg http://localhost:4873 -o json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var path *string
			switch {
			case len(args) == 1:
				path = &args[0]
			case cmd.Flags().Changed(options.FlagStoragePath):
				path = &storagePath
			}
			return runList(cmd.Context(), cmd.OutOrStdout(), cfg, path, &formatFlags, &onlyNew)
		},
	}

	cmd.Flags().StringVar(&storagePath, options.FlagStoragePath, "",
		"Path of the storage to list")
	formatFlags.AddTo(cmd)
	onlyNew.AddTo(cmd)
	cmd.Flags().SetNormalizeFunc(options.NormalizeAliases)

	return cmd
}

func runList(ctx context.Context, w io.Writer, cfg *cmdtypes.GlobalConfig, storagePath *string,
	formatFlags *cmdutil.FormatFlags, onlyNew *cmdutil.OnlyNewFlags,
) error {
	if ctx == nil {
		ctx = context.Background()
	}

	format, err := formatFlags.Parse()
	if err != nil {
		return &ExitError{Code: ExitValidationError, Err: err}
	}

	validator := options.NewValidator(cfg.Fs, cfg.Registry, cfg.Registry.ConfiguredRegistry)
	policy := options.OnlyNewPolicy{Enabled: onlyNew.Enabled(), Registry: onlyNew.RemoteRegistry}
	if err := validator.ValidateStorageOption(storagePath); err != nil {
		return invalidOption(options.FieldStoragePath, err)
	}
	if err := validator.ValidateOnlyNewIfSpecified(ctx, policy); err != nil {
		return invalidOption(options.FieldOnlyNew, err)
	}

	result, err := cmdutil.Discover(ctx, cmdutil.DiscoverOpts{
		Fs:          cfg.Fs,
		StoragePath: *storagePath,
		OnlyNew:     policy.Enabled,
		Registry:    policy.Registry,
		Checker:     cfg.Registry,
	})
	if err != nil {
		output.Error("discovering packages", "error", err)
		return &ExitError{Code: ExitGeneralError, Err: err, Printed: true}
	}

	if err := writePackages(w, format, result.Packages); err != nil {
		return &ExitError{Code: ExitGeneralError, Err: err}
	}
	output.Debug("listed packages", "found", result.Found, "shown", len(result.Packages), "skipped", result.Skipped)
	return nil
}

func writePackages(w io.Writer, format output.OutputFormat, packages []storage.Package) error {
	switch format {
	case output.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(packages)
	case output.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(packages); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		return enc.Close()
	default:
		if len(packages) == 0 {
			_, err := fmt.Fprintln(w, "No packages found")
			return err
		}
		rows := make([]output.PackageRow, len(packages))
		for i, p := range packages {
			rows[i] = output.PackageRow{Scope: p.Scope, Name: p.Name, Version: p.Version, Path: p.Path}
		}
		_, err := fmt.Fprintln(w, output.RenderPackageTable(rows))
		return err
	}
}

func invalidOption(field string, err error) error {
	fieldErr := &options.FieldError{Field: field, Err: err}
	cmdutil.PrintValidationError("invalid options", fieldErr)
	return &ExitError{Code: oerrors.ExitCodeFromError(fieldErr), Err: fieldErr, Printed: true}
}
