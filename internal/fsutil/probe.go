// Package fsutil answers filesystem questions used by option validation and
// the storage scanner.
package fsutil

import (
	"os"

	"github.com/spf13/afero"
)

// PathIsDirectory reports whether path exists and is a directory.
// Any stat failure, including an empty path, yields false. Symlinks are not
// followed when the filesystem supports lstat.
func PathIsDirectory(fs afero.Fs, path string) bool {
	if path == "" {
		return false
	}

	info, err := lstat(fs, path)
	if err != nil {
		return false
	}

	return info.IsDir()
}

func lstat(fs afero.Fs, path string) (os.FileInfo, error) {
	if l, ok := fs.(afero.Lstater); ok {
		info, _, err := l.LstatIfPossible(path)
		return info, err
	}
	return fs.Stat(path)
}
