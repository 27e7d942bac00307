package publish

import (
	"fmt"

	"github.com/spf13/afero"
)

// WriteScript writes the rendered script to path, replacing any existing file.
func WriteScript(fs afero.Fs, path, content string) error {
	if err := afero.WriteFile(fs, path, []byte(content), 0o755); err != nil {
		return fmt.Errorf("writing publish script: %w", err)
	}
	return nil
}
