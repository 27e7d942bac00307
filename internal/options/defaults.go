package options

// DefaultScriptPath returns the default publish script location for goos.
func DefaultScriptPath(goos string) string {
	if goos == "windows" {
		return "./publish.bat"
	}
	return "./publish.sh"
}

// Defaults returns the platform defaults for the given operating system.
// Optional sub-objects are always present, possibly with empty fields.
func Defaults(goos string) Options {
	return Options{
		DestinationScriptPath: DefaultScriptPath(goos),
		Publish:               PublishOptions{},
		OnlyNew:               OnlyNewPolicy{Enabled: false},
	}
}

// Merge overlays the fields present in p onto defaults. Sub-objects are
// merged field by field, so a partial that only sets Publish.Registry keeps
// every other default in PublishOptions.
func Merge(p Partial, defaults Options) Options {
	result := defaults

	if p.StoragePath != nil {
		result.StoragePath = *p.StoragePath
	} else {
		result.storagePathAbsent = true
	}
	if p.DestinationScriptPath != nil {
		result.DestinationScriptPath = *p.DestinationScriptPath
	}

	result.Publish = mergePublish(defaults.Publish, p.Publish)
	result.OnlyNew = mergeOnlyNew(defaults.OnlyNew, p.OnlyNew)

	return result
}

func mergePublish(base PublishOptions, overlay *PartialPublishOptions) PublishOptions {
	if overlay == nil {
		return base
	}
	if overlay.Registry != nil {
		base.Registry = *overlay.Registry
	}
	return base
}

func mergeOnlyNew(base OnlyNewPolicy, overlay *PartialOnlyNewPolicy) OnlyNewPolicy {
	if overlay == nil {
		return base
	}
	if overlay.Enabled != nil {
		base.Enabled = *overlay.Enabled
	}
	if overlay.Registry != nil {
		base.Registry = *overlay.Registry
	}
	return base
}
