package formatter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const messy = `sectors:
  - id: 1
    ceiling_height: 128
    floor_height: 0
    vertices: [{x: 0, y: 0}, {x: 100, y: 0}, {x: 100, y: 100}, {x: 0, y: 100}]
`

func TestFormatThenCheck(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "e1m1.yaml")
	require.NoError(t, os.WriteFile(path, []byte(messy), 0o644))

	assert.Error(t, Check(dir))
	require.NoError(t, Format(dir))
	require.NoError(t, Check(dir))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "    - id: 1\n")

	again, err := Canonical(data)
	require.NoError(t, err)
	assert.Equal(t, string(data), string(again), "canonical form is stable")
}

func TestFormatRejectsBrokenFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.yaml"), []byte("sectors: {"), 0o644))

	assert.Error(t, Format(dir))
	assert.Error(t, Check(dir))
}
