package cmdutil

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/opmodel/bulk-npm-publish/internal/errors"
	"github.com/opmodel/bulk-npm-publish/internal/options"
	"github.com/opmodel/bulk-npm-publish/internal/output"
	"github.com/opmodel/bulk-npm-publish/internal/registry"
)

type publishedSet map[string]bool

func (s publishedSet) IsPublished(_ context.Context, coords registry.Coordinates) (bool, error) {
	return s[coords.Name], nil
}

func memStorage(t *testing.T, files ...string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	for _, f := range files {
		require.NoError(t, afero.WriteFile(fs, f, []byte("x"), 0o644))
	}
	return fs
}

func TestDiscover(t *testing.T) {
	fs := memStorage(t,
		"/storage/is/is-3.3.0.tgz",
		"/storage/lodash/lodash-4.17.21.tgz",
		"/storage/@jest/core/core-26.6.3.tgz",
	)

	t.Run("without filter", func(t *testing.T) {
		res, err := Discover(context.Background(), DiscoverOpts{Fs: fs, StoragePath: "/storage"})

		require.NoError(t, err)
		assert.Equal(t, 3, res.Found)
		assert.Len(t, res.Packages, 3)
		assert.Zero(t, res.Skipped)
	})

	t.Run("only new", func(t *testing.T) {
		res, err := Discover(context.Background(), DiscoverOpts{
			Fs:          fs,
			StoragePath: "/storage",
			OnlyNew:     true,
			Checker:     publishedSet{"lodash": true},
		})

		require.NoError(t, err)
		assert.Equal(t, 3, res.Found)
		assert.Equal(t, 1, res.Skipped)
		require.Len(t, res.Packages, 2)
		assert.Equal(t, "/storage/@jest/core/core-26.6.3.tgz", res.Packages[0].Path)
		assert.Equal(t, "/storage/is/is-3.3.0.tgz", res.Packages[1].Path)
	})

	t.Run("only new without checker", func(t *testing.T) {
		_, err := Discover(context.Background(), DiscoverOpts{Fs: fs, StoragePath: "/storage", OnlyNew: true})
		assert.Error(t, err)
	})

	t.Run("empty storage skips checks", func(t *testing.T) {
		res, err := Discover(context.Background(), DiscoverOpts{
			Fs:          afero.NewMemMapFs(),
			StoragePath: "/storage",
			OnlyNew:     true,
		})

		require.NoError(t, err)
		assert.Empty(t, res.Packages)
	})
}

func TestDiscover_LogsEmptyStorage(t *testing.T) {
	var buf bytes.Buffer
	output.SetupLogging(output.LogConfig{Timestamps: output.BoolPtr(false)})
	output.SetLogWriter(&buf)
	t.Cleanup(func() { output.SetupLogging(output.LogConfig{}) })

	for _, root := range []string{"/storage", "/missing"} {
		buf.Reset()
		fs := afero.NewMemMapFs()
		require.NoError(t, fs.MkdirAll("/storage", 0o755))

		res, err := Discover(context.Background(), DiscoverOpts{Fs: fs, StoragePath: root})

		require.NoError(t, err)
		assert.Zero(t, res.Found)
		assert.Contains(t, buf.String(), "INFO")
		assert.Contains(t, buf.String(), "No packages found")
		assert.Contains(t, buf.String(), root)
	}
}

func TestValidationDetail(t *testing.T) {
	t.Run("validation", func(t *testing.T) {
		err := ValidationDetail(&options.FieldError{Field: options.FieldStoragePath, Err: options.ErrDirectoryNotExist})

		var detail *oerrors.DetailError
		require.ErrorAs(t, err, &detail)
		assert.Equal(t, "Directory does not exist", detail.Message)
		assert.Equal(t, options.FieldStoragePath, detail.Field)
		assert.NotEmpty(t, detail.Hint)
		assert.Equal(t, oerrors.ExitValidationError, oerrors.ExitCodeFromError(err))
	})

	t.Run("ping failure", func(t *testing.T) {
		err := ValidationDetail(&options.FieldError{Field: options.FieldOnlyNew, Err: options.ErrPingRegistry})

		assert.ErrorIs(t, err, oerrors.ErrConnectivity)
		assert.Equal(t, oerrors.ExitConnectivityError, oerrors.ExitCodeFromError(err))
	})

	t.Run("other errors unchanged", func(t *testing.T) {
		plain := errors.New("boom")
		assert.Same(t, plain, ValidationDetail(plain))
	})
}

func TestPrintValidationError(t *testing.T) {
	var buf bytes.Buffer
	output.SetupLogging(output.LogConfig{})
	output.SetLogWriter(&buf)

	PrintValidationError("invalid options", &options.FieldError{Field: options.FieldPublishRegistry, Err: options.ErrInvalidRegistry})

	assert.Contains(t, buf.String(), "invalid options: Registry is not valid http(s) url")
	assert.Contains(t, buf.String(), options.FieldPublishRegistry)
	assert.Contains(t, buf.String(), "--registry")
}

func TestFormatFlags(t *testing.T) {
	cmd := &cobra.Command{Use: "test"}
	var f FormatFlags
	f.AddTo(cmd)

	format, err := f.Parse()
	require.NoError(t, err)
	assert.Equal(t, output.FormatTable, format)

	require.NoError(t, cmd.Flags().Set("output", "json"))
	format, err = f.Parse()
	require.NoError(t, err)
	assert.Equal(t, output.FormatJSON, format)

	require.NoError(t, cmd.Flags().Set("output", "xml"))
	_, err = f.Parse()
	assert.ErrorContains(t, err, "invalid output format")
}

func TestOnlyNewFlags_Enabled(t *testing.T) {
	assert.False(t, (&OnlyNewFlags{}).Enabled())
	assert.True(t, (&OnlyNewFlags{OnlyNew: true}).Enabled())
	assert.True(t, (&OnlyNewFlags{RemoteRegistry: "http://localhost:4873"}).Enabled())
}

func TestLogFlags_LogConfig(t *testing.T) {
	cmd := &cobra.Command{Use: "test"}
	var f LogFlags
	f.AddTo(cmd)

	assert.Nil(t, f.LogConfig(cmd).Timestamps, "unset flag keeps the default")

	require.NoError(t, cmd.ParseFlags([]string{"--timestamps=false"}))
	cfg := f.LogConfig(cmd)
	require.NotNil(t, cfg.Timestamps)
	assert.False(t, *cfg.Timestamps)
}
