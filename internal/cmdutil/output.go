package cmdutil

import (
	"errors"
	"fmt"

	oerrors "github.com/opmodel/bulk-npm-publish/internal/errors"
	"github.com/opmodel/bulk-npm-publish/internal/options"
	"github.com/opmodel/bulk-npm-publish/internal/output"
)

// fieldHints suggest how to fix a failed option.
var fieldHints = map[string]string{
	options.FieldStoragePath:           "Pass an existing directory with --storage-path",
	options.FieldDestinationScriptPath: "Pass a file path in an existing directory with --output",
	options.FieldPublishRegistry:       "Pass an http(s) url with --registry",
	options.FieldOnlyNew:               "Pass a reachable registry with --remote-registry",
}

// ValidationDetail converts a failed option validation into a DetailError
// naming the option and a hint. Other errors are returned unchanged.
func ValidationDetail(err error) error {
	var fieldErr *options.FieldError
	if !errors.As(err, &fieldErr) {
		return err
	}

	hint := fieldHints[fieldErr.Field]
	if errors.Is(fieldErr, oerrors.ErrConnectivity) {
		return oerrors.NewConnectivityError(fieldErr.Err.Error(),
			map[string]string{"Field": fieldErr.Field}, hint)
	}
	return oerrors.NewValidationError(fieldErr.Err.Error(), fieldErr.Field, hint)
}

// PrintValidationError prints an option validation error in a user-friendly
// format. For other errors it falls back to the key-value log format.
func PrintValidationError(msg string, err error) {
	var detail *oerrors.DetailError
	if errors.As(ValidationDetail(err), &detail) {
		field := detail.Field
		if field == "" {
			field = detail.Context["Field"]
		}
		output.Error(fmt.Sprintf("%s: %s", msg, detail.Message), "option", field)
		if detail.Hint != "" {
			output.Info(detail.Hint)
		}
		return
	}
	output.Error(msg, "error", err)
}

// PrintSummary prints the outcome of a generate run.
func PrintSummary(result DiscoverResult, destination string) {
	msg := fmt.Sprintf("Publish script for %d packages written to %s", len(result.Packages), destination)
	output.Println(output.FormatCheckmark(msg))
	if result.Skipped > 0 {
		output.Println(output.StyleSummary.Render(
			fmt.Sprintf("  %d of %d packages skipped as already published", result.Skipped, result.Found)))
	}
}
