package levels

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/milk9111/gridedit/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTwoLayerMap(t *testing.T) *Map {
	m := NewMap()
	m.AddLayer("floor")
	room := m.AddModule(mustModule(t, "room", 1, 2, 3, 2))
	room.Selected = true
	hall := m.AddModule(mustModule(t, "hall", 4, 2, 1, 3))
	hall.RotateCW()
	hall.MirrorVertical()
	hall.ToBeDeleted = true

	walls := m.AddLayer("walls")
	walls.ShowShadows = false
	m.AddModule(mustModule(t, "pillar", -3, 200, 1, 1))
	return m
}

func TestSaveLoadRoundTrip(t *testing.T) {
	for _, name := range []string{"castle.json", "castle.json.gz"} {
		t.Run(name, func(t *testing.T) {
			src := buildTwoLayerMap(t)
			path := filepath.Join(t.TempDir(), "maps", name)
			require.NoError(t, src.Save(path))
			assert.False(t, src.Dirty())
			assert.Equal(t, path, src.FileName)
			assert.Equal(t, "castle", src.MapName)

			dst := NewMap()
			require.NoError(t, dst.Load(path))
			assert.Equal(t, "castle", dst.MapName)
			assert.Equal(t, path, dst.FileName)
			assert.False(t, dst.Dirty())

			require.Equal(t, len(src.Layers()), len(dst.Layers()))
			for i, sl := range src.Layers() {
				dl := dst.Layers()[i]
				assert.Equal(t, sl.Name, dl.Name)
				assert.Equal(t, sl.Visible, dl.Visible)
				assert.Equal(t, sl.ShowShadows, dl.ShowShadows)
				require.Equal(t, sl.Len(), dl.Len())
				for j, sm := range sl.Modules() {
					assert.Equal(t, *sm, *dl.Modules()[j])
				}
			}
		})
	}
}

func TestSaveWritesCompressedData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "c.json.gz")
	require.NoError(t, buildTwoLayerMap(t).Save(path))
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(raw), 2)
	assert.Equal(t, []byte{0x1f, 0x8b}, raw[:2])
}

func TestLoadFailureLeavesMapUntouched(t *testing.T) {
	dir := t.TempDir()
	cases := map[string]string{
		"not_json.json":    "{ nope",
		"no_layers.json":   `{"version":1,"name":"x"}`,
		"zero_size.json":   `{"layers":[{"name":"a","modules":[{"definition":"r","x":0,"y":0,"width":0,"height":1}]}]}`,
		"bad_facing.json":  `{"layers":[{"name":"a","modules":[{"definition":"r","width":1,"height":1,"facing":["N","N","S","W"]}]}]}`,
		"bad_edge.json":    `{"layers":[{"name":"a","modules":[{"definition":"r","width":1,"height":1,"facing":["N","E","S","Q"]}]}]}`,
		"future.json":      `{"version":99,"layers":[]}`,
		"not_gzip.json.gz": `{"layers":[]}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

			m := buildTwoLayerMap(t)
			m.FileName = "keep.json"
			m.MapName = "keep"
			before, err := m.MarshalDocument()
			require.NoError(t, err)

			err = m.Load(path)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformed)

			after, err := m.MarshalDocument()
			require.NoError(t, err)
			assert.Equal(t, before, after)
			assert.Equal(t, "keep.json", m.FileName)
			assert.Equal(t, "keep", m.MapName)
			assert.True(t, m.Dirty())
		})
	}

	t.Run("missing_file", func(t *testing.T) {
		m := buildTwoLayerMap(t)
		err := m.Load(filepath.Join(dir, "absent.json"))
		require.Error(t, err)
		assert.ErrorIs(t, err, os.ErrNotExist)
		assert.Equal(t, 2, m.LayerCount())
	})
}

func TestSaveFailureKeepsState(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	m := buildTwoLayerMap(t)
	err := m.Save(filepath.Join(blocker, "sub", "x.json"))
	require.Error(t, err)
	assert.True(t, m.Dirty())
	assert.Equal(t, "", m.FileName)
	assert.Equal(t, DefaultMapName, m.MapName)

	assert.Error(t, m.Save(""))
}

func TestUnmarshalDefaultsMissingFacing(t *testing.T) {
	m, err := UnmarshalDocument([]byte(`{"layers":[{"modules":[{"definition":"r","x":2,"y":1,"width":2,"height":1}]}]}`))
	require.NoError(t, err)
	mod := m.CurrentLayer().ModuleAt(geom.TileCoord{X: 3, Y: 1})
	require.NotNil(t, mod)
	assert.Equal(t, Upright, mod.Facing)
	assert.NotEmpty(t, mod.ID)
	assert.Equal(t, "Background", m.Layers()[0].Name)
}

func TestMapNameFromPath(t *testing.T) {
	assert.Equal(t, "keep", MapNameFromPath("maps/keep.json"))
	assert.Equal(t, "keep", MapNameFromPath("/abs/keep.json.gz"))
	assert.Equal(t, "plain", MapNameFromPath("plain"))
	assert.Equal(t, "v1.2", MapNameFromPath("v1.2.json"))
}

func TestLoadMapFromFS(t *testing.T) {
	m, err := LoadMapFromFS("sample.json")
	require.NoError(t, err)
	assert.Equal(t, "sample", m.MapName)
	require.Equal(t, 2, m.LayerCount())
	hall := m.CurrentLayer().ModuleAt(geom.TileCoord{X: 6, Y: 3})
	require.NotNil(t, hall)
	assert.Equal(t, "corridor", hall.Definition)
	assert.Equal(t, West, hall.Facing.NorthEdge())

	_, err = LoadMapFromFS("missing.json")
	assert.Error(t, err)
}
