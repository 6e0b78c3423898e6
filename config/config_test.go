package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), FileName))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, 24.0, cfg.Collision.StepHeight)
	assert.Equal(t, 10.0, cfg.Editor.CloseThreshold)
}

func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	data := "name: episode1\nlog_level: debug\ncollision:\n    step_height: 32\neditor:\n    nested_mode: true\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "episode1", cfg.Name)
	assert.Equal(t, 32.0, cfg.Collision.StepHeight)
	assert.Equal(t, 8.0, cfg.Collision.PlayerRadius, "unset keys keep defaults")
	assert.True(t, cfg.Editor.NestedMode)
	assert.Equal(t, filepath.Join(dir, "levels"), cfg.LevelsPath(dir))
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"bad yaml", "collision: [1, 2"},
		{"negative radius", "collision:\n    player_radius: -1\n"},
		{"unknown log level", "log_level: loud\n"},
		{"zero pick radius", "editor:\n    vertex_pick_radius: 0\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), FileName)
			require.NoError(t, os.WriteFile(path, []byte(tt.data), 0o644))
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestFindProjectRootFrom(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, FileName), []byte("name: x\n"), 0o644))
	nested := filepath.Join(root, "levels", "e1")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	found, err := FindProjectRootFrom(nested)
	require.NoError(t, err)
	assert.Equal(t, root, found)

	_, err = FindProjectRootFrom(t.TempDir())
	assert.Error(t, err)
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in       string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, tt := range tests {
		level, err := ParseLogLevel(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.expected, level)
	}
}
