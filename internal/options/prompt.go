package options

import (
	"context"
	"errors"

	"github.com/charmbracelet/huh"

	"github.com/opmodel/bulk-npm-publish/internal/output"
)

// ErrNoTerminal is returned by HuhPrompter when stdin or stdout is not a terminal.
var ErrNoTerminal = errors.New("interactive input requires a terminal")

// HuhPrompter asks questions on the terminal.
type HuhPrompter struct {
	isTerminal func() bool
	accessible bool
}

// NewHuhPrompter creates a terminal prompter. Accessible mode uses plain
// line-based prompts suited to screen readers.
func NewHuhPrompter(accessible bool) *HuhPrompter {
	return &HuhPrompter{
		isTerminal: output.IsInteractive,
		accessible: accessible,
	}
}

// Input implements Prompter.
func (p *HuhPrompter) Input(ctx context.Context, q Question) (string, error) {
	if !p.isTerminal() {
		return "", ErrNoTerminal
	}

	value := q.Initial
	input := huh.NewInput().
		Title(q.Title).
		Value(&value)
	if q.Validate != nil {
		input = input.Validate(q.Validate)
	}

	if err := p.run(ctx, input); err != nil {
		return "", err
	}
	return value, nil
}

// Confirm implements Prompter.
func (p *HuhPrompter) Confirm(ctx context.Context, title string, initial bool) (bool, error) {
	if !p.isTerminal() {
		return false, ErrNoTerminal
	}

	value := initial
	confirm := huh.NewConfirm().
		Title(title).
		Value(&value)

	if err := p.run(ctx, confirm); err != nil {
		return false, err
	}
	return value, nil
}

func (p *HuhPrompter) run(ctx context.Context, field huh.Field) error {
	err := huh.NewForm(huh.NewGroup(field)).
		WithAccessible(p.accessible).
		RunWithContext(ctx)
	if errors.Is(err, huh.ErrUserAborted) {
		output.Debug("user cancelled")
		return ErrCancelled
	}
	return err
}
