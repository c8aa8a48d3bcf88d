package settings

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    BTree
		wantErr bool
	}{
		{
			name:  "empty_uses_defaults",
			input: "",
			want:  DefaultBTree(),
		},
		{
			name:  "explicit_geometry",
			input: "btree:\n  order: 6\n  nodes_per_level: 8\n  max_levels: 3\n",
			want:  BTree{Order: 6, NodesPerLevel: 8, MaxLevels: 3},
		},
		{
			name:  "partial_geometry",
			input: "btree:\n  order: 5\n",
			want:  BTree{Order: 5, NodesPerLevel: DefaultNodesPerLevel, MaxLevels: DefaultMaxLevels},
		},
		{
			name:    "order_too_small",
			input:   "btree:\n  order: 2\n",
			wantErr: true,
		},
		{
			name:    "bad_log_level",
			input:   "logger:\n  log_level: loud\n",
			wantErr: true,
		},
		{
			name:    "malformed_yaml",
			input:   "btree: [",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Decode(strings.NewReader(tt.input))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.BTree)
			assert.Equal(t, DefaultLogLevel, cfg.Logger.LogLevel)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tree.yaml")
	body := "btree:\n  order: 4\n  nodes_per_level: 6\n  max_levels: 2\nmetrics:\n  enabled: true\n  namespace: test\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.BTree.MemSize())
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "test", cfg.Metrics.Namespace)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.NoError(t, Validate(&cfg))
	assert.Equal(t, 40, cfg.BTree.MemSize())
}
