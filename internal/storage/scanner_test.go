package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opmodel/bulk-npm-publish/internal/testutil"
)

func TestScan_UnscopedRoundTrip(t *testing.T) {
	root := t.TempDir()
	path := testutil.WriteFile(t, root, filepath.Join("is", "is-3.3.0.tgz"), "")

	packages := NewScanner(afero.NewOsFs()).Scan(root)

	require.Len(t, packages, 1)
	assert.Equal(t, Package{
		Name:         "is",
		Version:      "3.3.0",
		FullFileName: "is-3.3.0.tgz",
		Path:         filepath.ToSlash(path),
	}, packages[0])
	assert.Empty(t, packages[0].Scope)
}

func TestScan_Scoped(t *testing.T) {
	root := t.TempDir()
	path := testutil.WriteFile(t, root, filepath.Join("@jest", "core", "core-26.6.3.tgz"), "")

	packages := NewScanner(afero.NewOsFs()).Scan(root)

	require.Len(t, packages, 1)
	assert.Equal(t, "@jest", packages[0].Scope)
	assert.Equal(t, "core", packages[0].Name)
	assert.Equal(t, "26.6.3", packages[0].Version)
	assert.Equal(t, filepath.ToSlash(path), packages[0].Path)
}

func TestScan_SameNameDifferentScopesDoNotCollide(t *testing.T) {
	root := t.TempDir()
	testutil.WriteFile(t, root, filepath.Join("@jest", "core", "core-1.0.0.tgz"), "")
	testutil.WriteFile(t, root, filepath.Join("@babel", "core", "core-1.0.0.tgz"), "")

	packages := NewScanner(afero.NewOsFs()).Scan(root)

	names := make([]string, 0, len(packages))
	for _, p := range packages {
		names = append(names, p.FullPackageName())
	}
	assert.ElementsMatch(t, []string{"@jest/core@1.0.0", "@babel/core@1.0.0"}, names)
}

func TestScan_MixedStorage(t *testing.T) {
	fs := afero.NewMemMapFs()
	files := []string{
		"/storage/is/is-3.3.0.tgz",
		"/storage/is/is-3.2.0.tgz",
		"/storage/is/package.json",
		"/storage/@jest/core/core-26.6.3.tgz",
		"/storage/@jest/core/index.json",
		"/storage/@jest/types/types-26.6.2.tgz",
		"/storage/.verdaccio-db.json",
	}
	for _, f := range files {
		require.NoError(t, fs.MkdirAll(filepath.Dir(f), 0o755))
		require.NoError(t, afero.WriteFile(fs, f, []byte{}, 0o644))
	}

	packages := NewScanner(fs).Scan("/storage")

	got := make([]string, 0, len(packages))
	for _, p := range packages {
		got = append(got, p.FullPackageName())
	}
	assert.ElementsMatch(t, []string{
		"is@3.3.0",
		"is@3.2.0",
		"@jest/core@26.6.3",
		"@jest/types@26.6.2",
	}, got)
}

func TestScan_EmptyStorage(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "a", "b", "c"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "@scope", "empty"), 0o755))
	testutil.WriteFile(t, root, filepath.Join("a", "package.json"), "{}")

	packages := NewScanner(afero.NewOsFs()).Scan(root)

	assert.NotNil(t, packages)
	assert.Empty(t, packages)
}

func TestScan_MissingRoot(t *testing.T) {
	packages := NewScanner(afero.NewOsFs()).Scan(filepath.Join(t.TempDir(), "missing"))

	assert.NotNil(t, packages)
	assert.Empty(t, packages)
}

func TestScan_ScopeWithoutAtPrefix(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/storage/group/pkg", 0o755))
	require.NoError(t, afero.WriteFile(fs, "/storage/group/pkg/pkg-1.0.0.tgz", []byte{}, 0o644))

	packages := NewScanner(fs).Scan("/storage")

	require.Len(t, packages, 1)
	assert.Equal(t, "group", packages[0].Scope)
	assert.Equal(t, "pkg", packages[0].Name)
}

// A file that does not follow <name>-<version>.tgz is kept with an opaque version.
func TestScan_NonConventionalFileName(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/storage/weird", 0o755))
	require.NoError(t, afero.WriteFile(fs, "/storage/weird/weird-.tgz", []byte{}, 0o644))

	packages := NewScanner(fs).Scan("/storage")

	require.Len(t, packages, 1)
	assert.Equal(t, "", packages[0].Version)
	assert.Equal(t, "weird-.tgz", packages[0].FullFileName)
}

func TestScan_ArchiveAtRootIgnored(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/storage", 0o755))
	require.NoError(t, afero.WriteFile(fs, "/storage/loose-1.0.0.tgz", []byte{}, 0o644))

	assert.Empty(t, NewScanner(fs).Scan("/storage"))
}

func TestClassify(t *testing.T) {
	archive := &node{name: "a-1.0.0.tgz"}
	dir := &node{name: "a", isDir: true}

	tests := []struct {
		name     string
		children []*node
		want     entryKind
	}{
		{name: "no children", children: nil, want: kindEmpty},
		{name: "archives only", children: []*node{archive}, want: kindUnscoped},
		{name: "directories only", children: []*node{dir}, want: kindScope},
		{name: "both", children: []*node{archive, dir}, want: kindMixed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := classify(&node{name: "top", isDir: true, children: tt.children})
			assert.Equal(t, tt.want, c.kind)
		})
	}
}
