package options

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// ErrArgsMissing is returned by the argument source when neither the
// interactive flag nor a storage path was passed.
var ErrArgsMissing = errors.New("You must pass either -i (interactive input) or --sp (storage path, for args pass)")

// Flag names of the argument grammar.
const (
	FlagInteractive    = "interactive"
	FlagStoragePath    = "storage-path"
	FlagOutput         = "output"
	FlagRegistry       = "registry"
	FlagOnlyNew        = "only-new"
	FlagRemoteRegistry = "remote-registry"
)

// flagAliases maps short long-form aliases to their canonical flag names.
var flagAliases = map[string]string{
	"sp": FlagStoragePath,
	"rg": FlagRemoteRegistry,
}

// ArgFlags holds the option flags of the root command.
type ArgFlags struct {
	Interactive    bool
	StoragePath    string
	Output         string
	Registry       string
	OnlyNew        bool
	RemoteRegistry string
}

// AddTo registers the option flags on the given cobra command.
func (f *ArgFlags) AddTo(cmd *cobra.Command) {
	f.AddToFlagSet(cmd.Flags())
}

// AddToFlagSet registers the option flags on fs, including the --sp and
// --rg aliases.
func (f *ArgFlags) AddToFlagSet(fs *pflag.FlagSet) {
	fs.BoolVarP(&f.Interactive, FlagInteractive, "i", false,
		"Provide input interactively")
	fs.StringVar(&f.StoragePath, FlagStoragePath, "",
		"Path of the storage to publish (alias --sp)")
	fs.StringVarP(&f.Output, FlagOutput, "o", "",
		"Where the publish script will be created")
	fs.StringVarP(&f.Registry, FlagRegistry, "r", "",
		"Registry url to publish to")
	fs.BoolVar(&f.OnlyNew, FlagOnlyNew, false,
		"Publish only packages missing from the registry (see --remote-registry)")
	fs.StringVar(&f.RemoteRegistry, FlagRemoteRegistry, "",
		"Registry url checked for already published packages (alias --rg)")

	fs.SetNormalizeFunc(NormalizeAliases)
}

// NormalizeAliases maps the --sp and --rg aliases to their canonical flag names.
func NormalizeAliases(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	if canonical, ok := flagAliases[name]; ok {
		name = canonical
	}
	return pflag.NormalizedName(name)
}

// Partial converts the parsed flags into partial options.
func (f *ArgFlags) Partial() (Partial, error) {
	if f.Interactive {
		return Partial{Interactive: true}, nil
	}
	if f.StoragePath == "" {
		return Partial{}, ErrArgsMissing
	}

	p := Partial{
		StoragePath:           String(f.StoragePath),
		DestinationScriptPath: nonEmpty(f.Output),
	}
	if f.Registry != "" {
		p.Publish = &PartialPublishOptions{Registry: String(f.Registry)}
	}
	if f.OnlyNew || f.RemoteRegistry != "" {
		p.OnlyNew = &PartialOnlyNewPolicy{
			Enabled:  Bool(true),
			Registry: nonEmpty(f.RemoteRegistry),
		}
	}

	return p, nil
}

// Source returns the argument source backed by already parsed flags.
func (f *ArgFlags) Source() Source {
	return SourceFunc("args", func(context.Context) (Partial, error) {
		return f.Partial()
	})
}

// ParseArgs parses args with the option grammar and returns the argument
// source. A syntax error is returned by the source.
func ParseArgs(args []string) Source {
	var flags ArgFlags
	fs := pflag.NewFlagSet("args", pflag.ContinueOnError)
	fs.SetOutput(discard{})
	flags.AddToFlagSet(fs)

	parseErr := fs.Parse(args)

	return SourceFunc("args", func(context.Context) (Partial, error) {
		if parseErr != nil {
			return Partial{}, fmt.Errorf("parsing arguments: %w", parseErr)
		}
		return flags.Partial()
	})
}

// discard silences pflag usage output; the caller reports errors.
type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }
