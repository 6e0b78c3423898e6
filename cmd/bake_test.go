package cmd

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/bloodmagesoftware/sectored/geom"
	"github.com/bloodmagesoftware/sectored/level"
)

func square(x, y, size float64) []geom.Vec2 {
	return []geom.Vec2{geom.V2(x, y), geom.V2(x+size, y), geom.V2(x+size, y+size), geom.V2(x, y+size)}
}

func TestBakeLevel(t *testing.T) {
	w := level.NewWorld()
	w.Name = "room"
	_, err := w.AddSector(square(0, 0, 100), 0, 128)
	require.NoError(t, err)

	baked, err := bakeLevel(context.Background(), w)
	require.NoError(t, err)
	assert.Equal(t, "room", baked.Name)
	require.Len(t, baked.Sectors, 1)
	assert.Len(t, baked.Sectors[0].Triangles, 2)
	assert.Equal(t, 128.0, baked.Sectors[0].Ceiling)
}

func TestBakeLevelsIterator(t *testing.T) {
	dir := t.TempDir()
	w := level.NewWorld()
	_, err := w.AddSector(square(0, 0, 64), 0, 128)
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "act1"), 0755))
	require.NoError(t, w.Save(filepath.Join(dir, "act1", "start.yaml")))

	var paths []string
	for file, err := range bakeLevelsIterator(context.Background(), dir, time.Second) {
		require.NoError(t, err)
		paths = append(paths, file.RelPath)
		var baked bakedLevel
		require.NoError(t, yaml.Unmarshal(file.Data, &baked))
		assert.Len(t, baked.Sectors, 1)
	}
	assert.Equal(t, []string{filepath.Join("act1", "start.mesh.yaml")}, paths)
}

func TestBakeLevelsIteratorBrokenFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.yaml"), []byte("sectors: [{id: 1, vertices: nope}]"), 0644))

	var errs []error
	for file, err := range bakeLevelsIterator(context.Background(), dir, time.Second) {
		assert.Empty(t, file.RelPath, "broken level should not be yielded")
		errs = append(errs, err)
	}
	require.Len(t, errs, 1)
	assert.ErrorContains(t, errs[0], "broken.yaml")
}

func TestBakeLevelsIteratorIsReusable(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.yaml"), []byte("sectors: [{id: 1, vertices: nope}]"), 0644))
	seq := bakeLevelsIterator(context.Background(), dir, time.Second)
	for range seq {
	}

	require.NoError(t, os.Remove(filepath.Join(dir, "broken.yaml")))
	w := level.NewWorld()
	_, err := w.AddSector(square(0, 0, 64), 0, 128)
	require.NoError(t, err)
	require.NoError(t, w.Save(filepath.Join(dir, "ok.yaml")))

	count := 0
	for file, err := range seq {
		require.NoError(t, err)
		assert.Equal(t, "ok.mesh.yaml", file.RelPath)
		count++
	}
	assert.Equal(t, 1, count)
}
