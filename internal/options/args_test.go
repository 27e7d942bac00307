package options

import (
	"context"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    Partial
		wantErr string
	}{
		{
			name: "interactive short flag",
			args: []string{"-i"},
			want: Partial{Interactive: true},
		},
		{
			name: "interactive ignores other flags",
			args: []string{"--interactive", "--sp", "/storage"},
			want: Partial{Interactive: true},
		},
		{
			name: "storage path only",
			args: []string{"--sp", "/storage"},
			want: Partial{StoragePath: String("/storage")},
		},
		{
			name: "long storage path with output",
			args: []string{"--storage-path", "/storage", "-o", "/out/publish.sh"},
			want: Partial{
				StoragePath:           String("/storage"),
				DestinationScriptPath: String("/out/publish.sh"),
			},
		},
		{
			name: "custom registry",
			args: []string{"--sp", "/storage", "-r", "http://localhost:4873"},
			want: Partial{
				StoragePath: String("/storage"),
				Publish:     &PartialPublishOptions{Registry: String("http://localhost:4873")},
			},
		},
		{
			name: "only new with current registry",
			args: []string{"--sp", "/storage", "--only-new"},
			want: Partial{
				StoragePath: String("/storage"),
				OnlyNew:     &PartialOnlyNewPolicy{Enabled: Bool(true)},
			},
		},
		{
			name: "remote registry implies only new",
			args: []string{"--sp", "/storage", "--rg", "http://remote:4873"},
			want: Partial{
				StoragePath: String("/storage"),
				OnlyNew:     &PartialOnlyNewPolicy{Enabled: Bool(true), Registry: String("http://remote:4873")},
			},
		},
		{
			name:    "no flags",
			args:    nil,
			wantErr: ErrArgsMissing.Error(),
		},
		{
			name:    "output without storage",
			args:    []string{"-o", "publish.sh"},
			wantErr: ErrArgsMissing.Error(),
		},
		{
			name:    "unknown flag",
			args:    []string{"--nope"},
			wantErr: "unknown flag: --nope",
		},
		{
			name:    "storage path without value",
			args:    []string{"--sp"},
			wantErr: "flag needs an argument",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseArgs(tt.args).Options(context.Background())
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestArgFlags_AddToCobra(t *testing.T) {
	var flags ArgFlags
	cmd := &cobra.Command{Use: "test", RunE: func(*cobra.Command, []string) error { return nil }}
	flags.AddTo(cmd)

	require.NoError(t, cmd.ParseFlags([]string{"--sp", "/storage", "--rg", "http://remote:4873"}))

	assert.Equal(t, "/storage", flags.StoragePath)
	assert.Equal(t, "http://remote:4873", flags.RemoteRegistry)
	assert.NotNil(t, cmd.Flags().Lookup(FlagStoragePath))
	assert.NotNil(t, cmd.Flags().ShorthandLookup("i"))

	p, err := flags.Source().Options(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/storage", *p.StoragePath)
	assert.True(t, *p.OnlyNew.Enabled)
}

func TestParseArgs_MissingMessage(t *testing.T) {
	_, err := ParseArgs([]string{"--only-new"}).Options(context.Background())

	assert.ErrorIs(t, err, ErrArgsMissing)
	assert.EqualError(t, err, "You must pass either -i (interactive input) or --sp (storage path, for args pass)")
}
