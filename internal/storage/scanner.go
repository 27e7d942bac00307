package storage

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"

	"github.com/opmodel/bulk-npm-publish/internal/output"
)

// node is one entry of the filtered storage tree.
type node struct {
	name     string
	path     string
	isDir    bool
	children []*node
}

// entryKind classifies a top-level storage entry by the kinds of its children.
type entryKind int

const (
	kindEmpty entryKind = iota
	// kindUnscoped holds archives of a single package.
	kindUnscoped
	// kindScope holds package directories.
	kindScope
	// kindMixed holds both archives and directories.
	kindMixed
)

func (k entryKind) String() string {
	switch k {
	case kindUnscoped:
		return "unscoped"
	case kindScope:
		return "scope"
	case kindMixed:
		return "mixed"
	default:
		return "empty"
	}
}

// classified is a top-level entry split into its archive and directory children.
type classified struct {
	entry    *node
	kind     entryKind
	archives []*node
	dirs     []*node
}

// Scanner walks a storage root and reconstructs package identities.
type Scanner struct {
	fs afero.Fs
}

// NewScanner creates a Scanner reading from fs.
func NewScanner(fs afero.Fs) *Scanner {
	return &Scanner{fs: fs}
}

// Scan returns every package archive found under root, ordered by path.
// A missing or empty root yields an empty result; unreadable directories
// are logged and skipped.
func (s *Scanner) Scan(root string) []Package {
	tree := s.buildTree(root)
	if tree == nil || len(tree.children) == 0 {
		output.Debug("no entries in storage", "path", root)
		return []Package{}
	}

	packages := make([]Package, 0)
	for _, top := range tree.children {
		if !top.isDir {
			output.Debug("ignoring archive at storage root", "path", top.path)
			continue
		}

		c := classify(top)
		output.Debug("classified storage entry", "entry", top.name, "kind", c.kind)

		switch c.kind {
		case kindUnscoped:
			packages = append(packages, unscopedPackages(c)...)
		case kindScope:
			packages = append(packages, scopedPackages(c)...)
		case kindMixed:
			packages = append(packages, unscopedPackages(c)...)
			packages = append(packages, scopedPackages(c)...)
		}
	}

	SortByPath(packages)
	return packages
}

// SortByPath orders packages by archive path.
func SortByPath(packages []Package) {
	sort.Slice(packages, func(i, j int) bool {
		return packages[i].Path < packages[j].Path
	})
}

// classify splits the children of a top-level entry by kind.
func classify(top *node) classified {
	c := classified{entry: top}
	for _, child := range top.children {
		if child.isDir {
			c.dirs = append(c.dirs, child)
		} else {
			c.archives = append(c.archives, child)
		}
	}

	switch {
	case len(c.archives) > 0 && len(c.dirs) > 0:
		c.kind = kindMixed
	case len(c.archives) > 0:
		c.kind = kindUnscoped
	case len(c.dirs) > 0:
		c.kind = kindScope
	default:
		c.kind = kindEmpty
	}

	return c
}

func unscopedPackages(c classified) []Package {
	name := c.entry.name
	packages := make([]Package, 0, len(c.archives))
	for _, archive := range c.archives {
		packages = append(packages, newPackage(name, "", archive))
	}
	return packages
}

func scopedPackages(c classified) []Package {
	scope := c.entry.name
	if !strings.HasPrefix(scope, "@") {
		output.Debug("scope directory without @ prefix", "scope", scope)
	}

	var packages []Package
	for _, pkgDir := range c.dirs {
		for _, child := range pkgDir.children {
			if child.isDir {
				continue
			}
			packages = append(packages, newPackage(pkgDir.name, scope, child))
		}
	}
	return packages
}

func newPackage(name, scope string, archive *node) Package {
	return Package{
		Name:         name,
		Scope:        scope,
		Version:      VersionFromFileName(name, archive.name),
		FullFileName: archive.name,
		Path:         archive.path,
	}
}

// buildTree reads the directory tree rooted at path, keeping every directory
// and only the files carrying the archive extension. It returns nil when path
// is not a readable directory.
func (s *Scanner) buildTree(path string) *node {
	entries, err := afero.ReadDir(s.fs, path)
	if err != nil {
		output.Debug("cannot read storage directory", "path", path, "error", err)
		return nil
	}

	root := &node{
		name:  filepath.Base(path),
		path:  filepath.ToSlash(filepath.Clean(path)),
		isDir: true,
	}

	for _, entry := range entries {
		childPath := filepath.Join(path, entry.Name())
		if entry.IsDir() {
			child := s.buildTree(childPath)
			if child != nil {
				root.children = append(root.children, child)
			}
			continue
		}

		if filepath.Ext(entry.Name()) != ArchiveExtension {
			continue
		}

		root.children = append(root.children, &node{
			name: entry.Name(),
			path: filepath.ToSlash(childPath),
		})
	}

	return root
}
