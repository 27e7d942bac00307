// Package publish turns discovered packages into a publish script, optionally
// dropping packages a registry already has.
package publish

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/opmodel/bulk-npm-publish/internal/output"
	"github.com/opmodel/bulk-npm-publish/internal/registry"
	"github.com/opmodel/bulk-npm-publish/internal/storage"
)

// MaxConcurrentChecks caps in-flight existence checks.
const MaxConcurrentChecks = 5

// Checker reports whether a package version is already in a registry.
type Checker interface {
	IsPublished(ctx context.Context, coords registry.Coordinates) (bool, error)
}

// FilterUnpublished returns the packages the registry does not have yet.
// An empty registry lets the checker use its configured one. A failed check
// is logged and the package is kept. The result order is not guaranteed to
// match the input order.
func FilterUnpublished(ctx context.Context, packages []storage.Package, reg string, checker Checker) []storage.Package {
	var (
		mu     sync.Mutex
		result = make([]storage.Package, 0, len(packages))
	)

	g := new(errgroup.Group)
	g.SetLimit(MaxConcurrentChecks)

	for _, pkg := range packages {
		pkg := pkg // per-iteration copy (pre-Go 1.22 loop semantics)
		g.Go(func() error {
			published, err := checker.IsPublished(ctx, registry.Coordinates{
				Scope:    pkg.Scope,
				Name:     pkg.Name,
				Version:  pkg.Version,
				Registry: reg,
			})
			if err != nil {
				output.Warn("couldn't check whether package is published, keeping it",
					"package", pkg.FullPackageName(), "error", err)
				published = false
			}

			output.PackageLogger("registry").Debug(output.FormatPackageLine(pkg.FullPackageName(), statusOf(published)))
			if published {
				return nil
			}

			mu.Lock()
			result = append(result, pkg)
			mu.Unlock()
			return nil
		})
	}

	// Checks never fail the group.
	_ = g.Wait()
	return result
}

func statusOf(published bool) string {
	if published {
		return output.StatusPublished
	}
	return output.StatusNew
}
