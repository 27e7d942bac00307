package publish

import (
	"path/filepath"
	"strings"

	"github.com/opmodel/bulk-npm-publish/internal/storage"
)

// batchPrefix is put in front of every command of a .bat script so that the
// script continues after each npm invocation.
const batchPrefix = "CALL "

// NativeEOL returns the line ending of goos.
func NativeEOL(goos string) string {
	if goos == "windows" {
		return "\r\n"
	}
	return "\n"
}

// PublishCommand returns the npm command publishing one package.
//
//	npm publish storage/is/is-3.3.0.tgz --registry=http://localhost:4873
func PublishCommand(pkg storage.Package, reg string) string {
	cmd := "npm publish " + pkg.Path
	if reg != "" {
		cmd += " --registry=" + reg
	}
	return cmd
}

// RenderScript renders one publish command per package, joined with eol.
// Commands are prefixed with "CALL " when destPath is a .bat file.
func RenderScript(packages []storage.Package, reg, destPath, eol string) string {
	prefix := ""
	if strings.EqualFold(filepath.Ext(destPath), ".bat") {
		prefix = batchPrefix
	}

	lines := make([]string, len(packages))
	for i, pkg := range packages {
		lines[i] = prefix + PublishCommand(pkg, reg)
	}
	return strings.Join(lines, eol)
}
