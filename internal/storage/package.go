// Package storage discovers package archives in a local registry storage tree.
//
// The expected layout is:
//
//	<root>/<name>/<name>-<version>.tgz
//	<root>/<scope>/<name>/<name>-<version>.tgz
//
// Package identity is derived from directory and file names only; archive
// contents are never read.
package storage

import "strings"

// ArchiveExtension is the file extension of package archives.
const ArchiveExtension = ".tgz"

// Package is the identity of one archive found in storage.
//
// For @jest/core@26.6.3 stored at storage/@jest/core/core-26.6.3.tgz:
//
//	Package{
//		Name:         "core",
//		Scope:        "@jest",
//		Version:      "26.6.3",
//		FullFileName: "core-26.6.3.tgz",
//		Path:         "storage/@jest/core/core-26.6.3.tgz",
//	}
type Package struct {
	// Name is the unscoped package name.
	Name string `json:"name" yaml:"name"`

	// Scope is the scope directory name, empty for unscoped packages.
	Scope string `json:"scope,omitempty" yaml:"scope,omitempty"`

	// Version is the archive file name without the "<name>-" prefix and
	// the archive extension. It is never validated.
	Version string `json:"version" yaml:"version"`

	// FullFileName is the archive file name as found on disk.
	FullFileName string `json:"fullFileName" yaml:"fullFileName"`

	// Path is the archive path using forward slashes.
	Path string `json:"path" yaml:"path"`
}

// FullPackageName returns the canonical "[scope/]name@version" string.
func (p Package) FullPackageName() string {
	var b strings.Builder
	if p.Scope != "" {
		b.WriteString(p.Scope)
		b.WriteString("/")
	}
	b.WriteString(p.Name)
	b.WriteString("@")
	b.WriteString(p.Version)
	return b.String()
}

// VersionFromFileName strips "<name>-" from the front of fileName when
// present, then the archive extension when present. The remainder is
// returned as is, so a file that does not follow the naming convention
// yields its own name (minus the extension) as the version.
func VersionFromFileName(name, fileName string) string {
	version := strings.TrimPrefix(fileName, name+"-")
	return strings.TrimSuffix(version, ArchiveExtension)
}
