package cmd

import (
	"context"

	"github.com/opmodel/bulk-npm-publish/internal/cmdtypes"
	"github.com/opmodel/bulk-npm-publish/internal/cmdutil"
	oerrors "github.com/opmodel/bulk-npm-publish/internal/errors"
	"github.com/opmodel/bulk-npm-publish/internal/options"
	"github.com/opmodel/bulk-npm-publish/internal/output"
	"github.com/opmodel/bulk-npm-publish/internal/publish"
)

// runGenerate resolves the options, discovers the packages to publish and
// writes the publish script.
func runGenerate(ctx context.Context, cfg *cmdtypes.GlobalConfig, args options.Source) error {
	if ctx == nil {
		ctx = context.Background()
	}

	validator := options.NewValidator(cfg.Fs, cfg.Registry, cfg.Registry.ConfiguredRegistry)
	defaults := options.Defaults(cfg.GOOS)

	slots := options.Slots{
		Args: args,
		Env:  options.NewEnvSource(cfg.EnvFile),
	}
	if cfg.Prompter != nil {
		slots.Interactive = options.NewInteractiveSource(cfg.Prompter, validator, defaults)
	}

	opts, err := options.NewResolver(defaults).ResolveSlots(ctx, slots)
	if err != nil {
		return reportResolutionError(err)
	}

	if err := validator.Validate(ctx, opts); err != nil {
		cmdutil.PrintValidationError("invalid options", err)
		return &ExitError{Code: oerrors.ExitCodeFromError(err), Err: err, Printed: true}
	}

	result, err := cmdutil.Discover(ctx, cmdutil.DiscoverOpts{
		Fs:          cfg.Fs,
		StoragePath: opts.StoragePath,
		OnlyNew:     opts.OnlyNew.Enabled,
		Registry:    opts.OnlyNew.Registry,
		Checker:     cfg.Registry,
	})
	if err != nil {
		output.Error("discovering packages", "error", err)
		return &ExitError{Code: ExitGeneralError, Err: err, Printed: true}
	}

	if result.Found == 0 {
		return nil
	}
	if len(result.Packages) == 0 {
		output.Info("All packages are already published, no script written", "packages", result.Found)
		return nil
	}

	script := publish.RenderScript(result.Packages, opts.Publish.Registry,
		opts.DestinationScriptPath, publish.NativeEOL(cfg.GOOS))
	if err := publish.WriteScript(cfg.Fs, opts.DestinationScriptPath, script); err != nil {
		output.Error("failed to write publish script", "path", opts.DestinationScriptPath, "error", err)
		return &ExitError{Code: ExitGeneralError, Err: err, Printed: true}
	}

	cmdutil.PrintSummary(result, opts.DestinationScriptPath)
	return nil
}
