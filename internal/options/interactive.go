package options

import (
	"context"
	"fmt"
)

// Question is a single free-text prompt.
type Question struct {
	Title   string
	Initial string

	// Validate rejects an answer; the prompt is asked again until it passes.
	Validate func(string) error
}

// Prompter asks the user questions. Implementations return ErrCancelled when
// the user aborts.
type Prompter interface {
	Input(ctx context.Context, q Question) (string, error)
	Confirm(ctx context.Context, title string, initial bool) (bool, error)
}

// InteractiveSource asks for every option in a fixed order, validating each
// answer before moving on.
type InteractiveSource struct {
	prompter  Prompter
	validator *Validator
	defaults  Options
}

// NewInteractiveSource creates the interactive option source. defaults
// pre-fill the prompts.
func NewInteractiveSource(prompter Prompter, validator *Validator, defaults Options) *InteractiveSource {
	return &InteractiveSource{
		prompter:  prompter,
		validator: validator,
		defaults:  defaults,
	}
}

// Name implements Source.
func (s *InteractiveSource) Name() string {
	return "interactive"
}

// Options implements Source. The only-new registry is asked only when the
// user chose to publish new packages only.
func (s *InteractiveSource) Options(ctx context.Context) (Partial, error) {
	storagePath, err := s.prompter.Input(ctx, Question{
		Title:    "What's the storage path to publish?",
		Validate: s.validator.ValidateStorage,
	})
	if err != nil {
		return Partial{}, promptError("storage path", err)
	}

	destination, err := s.prompter.Input(ctx, Question{
		Title:    "Where the publish script will be created",
		Initial:  s.defaults.DestinationScriptPath,
		Validate: s.validator.ValidateDestinationPath,
	})
	if err != nil {
		return Partial{}, promptError("destination path", err)
	}

	publishRegistry, err := s.prompter.Input(ctx, Question{
		Title:    "What is the registry url you want to publish to",
		Initial:  s.defaults.Publish.Registry,
		Validate: s.validator.ValidateRegistryIfSpecified,
	})
	if err != nil {
		return Partial{}, promptError("publish registry", err)
	}

	onlyNew, err := s.prompter.Confirm(ctx, "Should publish only new packages", s.defaults.OnlyNew.Enabled)
	if err != nil {
		return Partial{}, promptError("only new", err)
	}

	onlyNewRegistry := ""
	if onlyNew {
		onlyNewRegistry, err = s.prompter.Input(ctx, Question{
			Title:   "What's the registry to check for published packages",
			Initial: s.defaults.OnlyNew.Registry,
			Validate: func(reg string) error {
				return s.validator.ValidateOnlyNewIfSpecified(ctx, OnlyNewPolicy{Enabled: true, Registry: reg})
			},
		})
		if err != nil {
			return Partial{}, promptError("only new registry", err)
		}
	}

	return Partial{
		StoragePath:           String(storagePath),
		DestinationScriptPath: String(destination),
		Publish:               &PartialPublishOptions{Registry: nonEmpty(publishRegistry)},
		OnlyNew: &PartialOnlyNewPolicy{
			Enabled:  Bool(onlyNew),
			Registry: nonEmpty(onlyNewRegistry),
		},
	}, nil
}

// promptError keeps ErrCancelled identifiable while naming the question.
func promptError(question string, err error) error {
	return fmt.Errorf("prompting %s: %w", question, err)
}
