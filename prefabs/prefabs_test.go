package prefabs

import (
	"context"
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/milk9111/gridedit/geom"
	"github.com/milk9111/gridedit/levels"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"
)

func TestLoadDefinition(t *testing.T) {
	def, err := LoadDefinition("room")
	require.NoError(t, err)
	assert.Equal(t, "room", def.Name)
	assert.Equal(t, 3, def.Width)
	assert.Equal(t, 3, def.Height)
	assert.ElementsMatch(t, []levels.Edge{levels.North, levels.East, levels.South, levels.West}, def.Openings)

	_, err = LoadDefinition("prefabs/missing.yaml")
	assert.Error(t, err)
}

func TestYAMLColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.Color
		wantErr bool
	}{
		{in: `"#102030"`, want: color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 0xff}},
		{in: `"#10203040"`, want: color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 0x40}},
		{in: `tan`, want: colornames.Tan},
		{in: `DimGray`, want: colornames.Dimgray},
		{in: `"#12"`, wantErr: true},
		{in: `"#zz0000"`, wantErr: true},
		{in: `[1, 2]`, wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			var c YAMLColor
			err := yaml.Unmarshal([]byte(tc.in), &c)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, c.Color)
		})
	}
}

func TestDefinitionValidation(t *testing.T) {
	_, err := parseDefinition("flat.yaml", []byte("width: 0\nheight: 2\n"))
	assert.ErrorIs(t, err, levels.ErrInvalidSize)

	def, err := parseDefinition("nameless.yaml", []byte("width: 1\nheight: 2\nopenings: [\"N\"]\n"))
	require.NoError(t, err)
	assert.Equal(t, "nameless", def.Name)
	assert.Equal(t, colornames.Gray, def.RGBA())

	_, err = parseDefinition("bad.yaml", []byte("width: 1\nheight: 1\nopenings: [\"Q\"]\n"))
	assert.Error(t, err)
}

func TestDefinitionOpeningsFollowModule(t *testing.T) {
	def, err := LoadDefinition("corridor")
	require.NoError(t, err)
	mod, err := def.NewModule(geom.TileCoord{X: 1, Y: 1})
	require.NoError(t, err)
	assert.True(t, def.OpensTo(mod, levels.East))
	assert.False(t, def.OpensTo(mod, levels.North))

	mod.RotateCW()
	assert.True(t, def.OpensTo(mod, levels.North))
	assert.True(t, def.OpensTo(mod, levels.South))
	assert.False(t, def.OpensTo(mod, levels.East))
}

func TestCatalogEmbedded(t *testing.T) {
	c, err := LoadCatalog(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, []string{"corner", "corridor", "door", "hall", "pillar", "room"}, c.Names())

	def, err := c.Get("pillar")
	require.NoError(t, err)
	assert.Equal(t, 1, def.Width)

	_, err = c.Get("nope")
	assert.ErrorIs(t, err, ErrUnknownDefinition)
}

func TestCatalogDiskOverrideAndReload(t *testing.T) {
	dir := t.TempDir()
	roomPath := filepath.Join(dir, "room.yaml")
	require.NoError(t, os.WriteFile(roomPath, []byte("name: room\nwidth: 5\nheight: 4\n"), 0o644))
	statuePath := filepath.Join(dir, "statue.yml")
	require.NoError(t, os.WriteFile(statuePath, []byte("width: 2\nheight: 2\n"), 0o644))

	c, err := LoadCatalog(dir)
	require.NoError(t, err)
	room, err := c.Get("room")
	require.NoError(t, err)
	assert.Equal(t, 5, room.Width)
	_, err = c.Get("statue")
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(roomPath, []byte("name: room\nwidth: 6\nheight: 4\n"), 0o644))
	room, err = c.Reload(roomPath)
	require.NoError(t, err)
	assert.Equal(t, 6, room.Width)

	require.NoError(t, os.WriteFile(roomPath, []byte("width: -1\n"), 0o644))
	_, err = c.Reload(roomPath)
	assert.Error(t, err)
	room, err = c.Get("room")
	require.NoError(t, err)
	assert.Equal(t, 6, room.Width)

	require.NoError(t, os.Remove(roomPath))
	room, err = c.Reload(roomPath)
	require.NoError(t, err)
	assert.Equal(t, 3, room.Width)

	require.NoError(t, os.Remove(statuePath))
	_, err = c.Reload(statuePath)
	assert.ErrorIs(t, err, ErrUnknownDefinition)
	_, err = c.Get("statue")
	assert.ErrorIs(t, err, ErrUnknownDefinition)
}

func TestRunPattern(t *testing.T) {
	got, err := RunPattern(context.Background(), "row", map[string]any{"definition": "pillar", "count": 4, "step": 1})
	require.NoError(t, err)
	require.Len(t, got, 4)
	for i, p := range got {
		assert.Equal(t, Placement{Definition: "pillar", X: i, Y: 0}, p)
	}

	got, err = RunPattern(context.Background(), "scripts/row.tengo", nil)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "corridor", got[2].Definition)
	assert.Equal(t, 4, got[2].X)

	_, err = RunPattern(context.Background(), "missing", nil)
	assert.Error(t, err)
}

func TestPatternScriptErrors(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "scripts"), 0o755))
	write := func(name, src string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "scripts", name+".tengo"), []byte(src), 0o644))
	}
	write("nothing", "x := 1")
	write("scalar", "placements := 5")
	write("nodef", "placements := [{x: 1}]")
	write("syntax", "placements := [")
	write("spin", "for {}\nplacements := []")

	for _, name := range []string{"nothing", "scalar", "nodef", "syntax"} {
		t.Run(name, func(t *testing.T) {
			_, err := runPatternFrom(context.Background(), dir, name, nil)
			assert.Error(t, err)
		})
	}

	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()
		_, err := runPatternFrom(ctx, dir, "spin", nil)
		assert.Error(t, err)
	})
}

func TestCatalogPattern(t *testing.T) {
	c, err := LoadCatalog(t.TempDir())
	require.NoError(t, err)

	mods, err := c.Pattern(context.Background(), "cross", nil)
	require.NoError(t, err)
	require.Len(t, mods, 5)
	assert.Equal(t, "room", mods[0].Definition)
	assert.Equal(t, 3, mods[0].Width)
	north := mods[3]
	assert.Equal(t, geom.TileCoord{X: 3, Y: 0}, north.Position)
	assert.Equal(t, 1, north.Width)
	assert.Equal(t, 2, north.Height)

	l := levels.NewLayer("check")
	for _, m := range mods {
		require.False(t, l.IsRectangleOccupied(m.Rect()), "%s overlaps", m.Definition)
		l.Add(m)
	}

	_, err = c.Pattern(context.Background(), "row", map[string]any{"definition": "ghost"})
	assert.ErrorIs(t, err, ErrUnknownDefinition)
}

func TestWatcherReportsDefinitionAndScriptChanges(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "arch.yaml"), []byte("width: 1\nheight: 1\n"), 0o644))

	select {
	case ch := <-w.Changes:
		assert.Equal(t, "arch.yaml", filepath.Base(ch.Path))
		assert.False(t, ch.Script)
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported for definition file")
	}

	require.NoError(t, os.WriteFile(filepath.Join(dir, "loop.tengo"), []byte("placements := []"), 0o644))
	deadline := time.After(5 * time.Second)
	for {
		select {
		case ch := <-w.Changes:
			if filepath.Base(ch.Path) != "loop.tengo" {
				continue
			}
			assert.True(t, ch.Script)
			return
		case <-deadline:
			t.Fatal("no change reported for script file")
		}
	}
}

func TestWatcherCloseClosesChannels(t *testing.T) {
	w, err := NewWatcher(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, w.Close())
	_, ok := <-w.Changes
	assert.False(t, ok)
	_, ok = <-w.Errors
	assert.False(t, ok)

	_, err = NewWatcher(filepath.Join(t.TempDir(), "absent"))
	assert.Error(t, err)
}

func TestCatalogPatterns(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "scripts"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "scripts", "zigzag.tengo"), []byte("placements := []"), 0o644))
	c, err := LoadCatalog(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"cross", "row", "zigzag"}, c.Patterns())

	mods, err := c.Pattern(context.Background(), "zigzag", nil)
	require.NoError(t, err)
	assert.Empty(t, mods)
}
