package cmdutil

import (
	"context"
	"fmt"

	"github.com/spf13/afero"

	"github.com/opmodel/bulk-npm-publish/internal/output"
	"github.com/opmodel/bulk-npm-publish/internal/publish"
	"github.com/opmodel/bulk-npm-publish/internal/storage"
)

// DiscoverOpts holds the inputs for Discover.
type DiscoverOpts struct {
	Fs          afero.Fs
	StoragePath string

	// OnlyNew drops packages the registry already has.
	OnlyNew bool
	// Registry is checked when OnlyNew is set. Empty uses the checker's
	// configured registry.
	Registry string
	Checker  publish.Checker
}

// DiscoverResult is the outcome of Discover.
type DiscoverResult struct {
	// Found is the number of archives in storage.
	Found int
	// Packages survived filtering, sorted by path.
	Packages []storage.Package
	// Skipped is the number of packages dropped as already published.
	Skipped int
}

// Discover scans storage and, when requested, drops packages that are
// already published. It is shared by the generate and list commands.
func Discover(ctx context.Context, opts DiscoverOpts) (DiscoverResult, error) {
	packages := storage.NewScanner(opts.Fs).Scan(opts.StoragePath)
	output.Debug("scanned storage", "path", opts.StoragePath, "packages", len(packages))

	if len(packages) == 0 {
		output.Info("No packages found", "storage", opts.StoragePath)
	}

	result := DiscoverResult{Found: len(packages), Packages: packages}
	if !opts.OnlyNew || len(packages) == 0 {
		return result, nil
	}
	if opts.Checker == nil {
		return result, fmt.Errorf("no registry checker configured")
	}

	var unpublished []storage.Package
	err := output.RunWithSpinner(ctx, func(ctx context.Context) error {
		unpublished = publish.FilterUnpublished(ctx, packages, opts.Registry, opts.Checker)
		return nil
	}, output.WithTitle(fmt.Sprintf("Checking %d packages against the registry...", len(packages))))
	if err != nil {
		return result, err
	}

	storage.SortByPath(unpublished)
	result.Packages = unpublished
	result.Skipped = len(packages) - len(unpublished)
	return result, nil
}
