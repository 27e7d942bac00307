package options

import (
	"context"
	"errors"
)

// ErrCancelled is returned by a Source when the user aborts input.
var ErrCancelled = errors.New("Cancelled")

// Source produces a partial set of options. A returned error means the
// source did not produce a value; ErrCancelled means the user aborted and no
// further source may be consulted.
type Source interface {
	// Name identifies the source in logs.
	Name() string

	// Options produces the partial options.
	Options(ctx context.Context) (Partial, error)
}

// sourceFunc adapts a function to the Source interface.
type sourceFunc struct {
	name string
	fn   func(ctx context.Context) (Partial, error)
}

// SourceFunc returns a Source named name that calls fn.
func SourceFunc(name string, fn func(ctx context.Context) (Partial, error)) Source {
	return sourceFunc{name: name, fn: fn}
}

func (s sourceFunc) Name() string {
	return s.name
}

func (s sourceFunc) Options(ctx context.Context) (Partial, error) {
	return s.fn(ctx)
}
