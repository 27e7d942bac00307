package options

import (
	"context"
	"errors"

	"github.com/opmodel/bulk-npm-publish/internal/output"
)

// Resolution failures.
var (
	// ErrCancel is returned when the user cancelled interactive input.
	ErrCancel = errors.New("cancel")

	// ErrNoSources is returned when Resolve is called without sources.
	ErrNoSources = errors.New("userOptionGetters not provided or has no items in it")

	// ErrNoSlotSources is returned when ResolveSlots has no source at all.
	ErrNoSlotSources = errors.New("One of the user option getter must be provided")

	// ErrNoOptions is returned when every source failed.
	ErrNoOptions = errors.New("Couldn't get user options")
)

// Slots names the sources of the modern pipeline. Args is consulted first,
// then Interactive. Env is the deprecated last resort and may be nil.
type Slots struct {
	Args        Source
	Interactive Source
	Env         Source
}

// Resolver merges the output of the first successful source onto defaults.
type Resolver struct {
	defaults Options
}

// NewResolver creates a Resolver layering results over defaults.
func NewResolver(defaults Options) *Resolver {
	return &Resolver{defaults: defaults}
}

// Resolve tries each source in order and returns the first success merged
// over the defaults. A cancelled source aborts the whole resolution with
// ErrCancel; any other failure is logged and the next source is tried. A
// result asking to defer to the interactive source counts as a miss.
func (r *Resolver) Resolve(ctx context.Context, sources ...Source) (Options, error) {
	if len(sources) == 0 {
		return Options{}, ErrNoSources
	}

	for _, src := range sources {
		opts, ok, err := r.try(ctx, src)
		if err != nil {
			return Options{}, err
		}
		if ok {
			return opts, nil
		}
	}

	return Options{}, ErrNoOptions
}

// ResolveSlots applies the named-slot policy: a successful Args result is
// returned unless it defers to the interactive source; otherwise Interactive
// is consulted, and finally Env.
func (r *Resolver) ResolveSlots(ctx context.Context, slots Slots) (Options, error) {
	if slots.Args == nil && slots.Interactive == nil && slots.Env == nil {
		return Options{}, ErrNoSlotSources
	}

	for _, src := range []Source{slots.Args, slots.Interactive, slots.Env} {
		if src == nil {
			continue
		}

		opts, ok, err := r.try(ctx, src)
		if err != nil {
			return Options{}, err
		}
		if ok {
			return opts, nil
		}
	}

	return Options{}, ErrNoOptions
}

// try consults one source. ok is false when the source missed; err is only
// set for a cancellation.
func (r *Resolver) try(ctx context.Context, src Source) (Options, bool, error) {
	partial, err := src.Options(ctx)
	if err != nil {
		if errors.Is(err, ErrCancelled) {
			output.Debug("option source cancelled", "source", src.Name())
			return Options{}, false, ErrCancel
		}
		output.Debug("couldn't get options from source", "source", src.Name(), "error", err)
		return Options{}, false, nil
	}

	if partial.Interactive {
		output.Debug("option source deferred to interactive input", "source", src.Name())
		return Options{}, false, nil
	}

	opts := Merge(partial, r.defaults)
	output.Debug("options resolved", "source", src.Name(), "storagePath", opts.StoragePath)
	return opts, true, nil
}
