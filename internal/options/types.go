// Package options resolves, defaults and validates the user options that
// drive publish script generation.
//
// Options come from one of several sources (command-line flags, interactive
// prompts, a deprecated environment file). A Resolver tries the sources in
// priority order, overlays the first successful partial result onto the
// platform defaults and returns the merged Options.
package options

// PublishOptions are passed through to every generated publish command.
type PublishOptions struct {
	// Registry is the registry to publish to. Empty uses the npm default.
	Registry string `json:"registry,omitempty"`
}

// OnlyNewPolicy restricts the script to packages missing from a registry.
type OnlyNewPolicy struct {
	Enabled bool `json:"enabled"`

	// Registry is checked for already published packages. Empty falls back
	// to the locally configured registry.
	Registry string `json:"registry,omitempty"`
}

// Options is the fully merged user intent.
type Options struct {
	StoragePath           string         `json:"storagePath"`
	DestinationScriptPath string         `json:"destinationScriptPath"`
	Publish               PublishOptions `json:"publishOptions"`
	OnlyNew               OnlyNewPolicy  `json:"onlyNew"`

	// storagePathAbsent is set by Merge when no source supplied a storage
	// path, as opposed to supplying an empty one.
	storagePathAbsent bool
}

// PartialPublishOptions is PublishOptions with every field optional.
type PartialPublishOptions struct {
	Registry *string
}

// PartialOnlyNewPolicy is OnlyNewPolicy with every field optional.
type PartialOnlyNewPolicy struct {
	Enabled  *bool
	Registry *string
}

// Partial is an unvalidated set of options produced by a Source.
// Nil fields are absent and keep their default when merged.
type Partial struct {
	StoragePath           *string
	DestinationScriptPath *string
	Publish               *PartialPublishOptions
	OnlyNew               *PartialOnlyNewPolicy

	// Interactive asks the resolver to ignore this result and defer to the
	// interactive source. Only the argument source sets it.
	Interactive bool
}

// String returns a pointer to s.
func String(s string) *string {
	return &s
}

// Bool returns a pointer to b.
func Bool(b bool) *bool {
	return &b
}

// nonEmpty returns a pointer to s, or nil when s is empty.
func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
