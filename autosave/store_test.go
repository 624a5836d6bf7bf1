package autosave

import (
	"testing"
	"time"

	"github.com/milk9111/gridedit/geom"
	"github.com/milk9111/gridedit/levels"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTest(t *testing.T) *Store {
	t.Helper()
	s, err := OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleMap(t *testing.T) *levels.Map {
	t.Helper()
	m := levels.NewMap()
	m.MapName = "castle"
	mod, err := levels.NewModule("room", geom.TileCoord{X: 2, Y: 3}, 3, 3)
	require.NoError(t, err)
	m.AddModule(mod)
	return m
}

func TestPutGet(t *testing.T) {
	s := openTest(t)
	doc := []byte(`{"version":1,"layers":[]}`)
	require.NoError(t, s.Put("a", doc, 0))

	snap, err := s.Get("a")
	require.NoError(t, err)
	assert.Equal(t, "a", snap.Name)
	assert.Equal(t, doc, snap.Data)
	assert.False(t, snap.SavedAt.IsZero())

	require.NoError(t, s.Put("a", []byte(`{"layers":[{}]}`), 0))
	snap, err = s.Get("a")
	require.NoError(t, err)
	assert.Equal(t, `{"layers":[{}]}`, string(snap.Data))

	_, err = s.Get("b")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSnapshotMapRoundTrip(t *testing.T) {
	s := openTest(t)
	require.NoError(t, s.PutMap("castle", sampleMap(t), time.Hour))

	snap, err := s.Get("castle")
	require.NoError(t, err)
	m, err := snap.Map()
	require.NoError(t, err)
	assert.Equal(t, "castle", m.MapName)
	assert.True(t, m.CurrentLayer().IsTileOccupied(geom.TileCoord{X: 4, Y: 5}))
}

func TestNamesLatestDelete(t *testing.T) {
	s := openTest(t)
	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	tick := 0
	s.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}

	_, err := s.Latest()
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Put("zeta", []byte("1"), 0))
	require.NoError(t, s.Put("alpha", []byte("2"), 0))
	require.NoError(t, s.Put("mid", []byte("3"), 0))

	names, err := s.Names()
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "mid", "zeta"}, names)

	latest, err := s.Latest()
	require.NoError(t, err)
	assert.Equal(t, "mid", latest.Name)
	assert.Equal(t, base.Add(3*time.Minute), latest.SavedAt)

	require.NoError(t, s.Delete("mid"))
	require.NoError(t, s.Delete("mid"))
	latest, err = s.Latest()
	require.NoError(t, err)
	assert.Equal(t, "alpha", latest.Name)
}

func TestTTLExpires(t *testing.T) {
	s := openTest(t)
	require.NoError(t, s.Put("short", []byte("x"), time.Second))
	require.NoError(t, s.Put("long", []byte("y"), time.Hour))
	time.Sleep(2100 * time.Millisecond)

	_, err := s.Get("short")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.Get("long")
	assert.NoError(t, err)
}

func TestOpenOnDisk(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, s.Put("keep", []byte("doc"), 0))
	require.NoError(t, s.Close())
	require.NoError(t, s.Close())
	assert.Error(t, s.Put("late", []byte("x"), 0))

	s, err = Open(dir)
	require.NoError(t, err)
	defer s.Close()
	snap, err := s.Get("keep")
	require.NoError(t, err)
	assert.Equal(t, "doc", string(snap.Data))
}

func TestJournalTick(t *testing.T) {
	s := openTest(t)
	j := NewJournal(s, 30*time.Second, 0)
	m := sampleMap(t)
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	wrote, err := j.Tick(now, 0, m)
	require.NoError(t, err)
	assert.False(t, wrote, "no edits yet")

	wrote, err = j.Tick(now, 1, m)
	require.NoError(t, err)
	assert.True(t, wrote)

	wrote, err = j.Tick(now.Add(10*time.Second), 2, m)
	require.NoError(t, err)
	assert.False(t, wrote, "inside interval")

	wrote, err = j.Tick(now.Add(31*time.Second), 2, m)
	require.NoError(t, err)
	assert.True(t, wrote)

	wrote, err = j.Tick(now.Add(2*time.Minute), 2, m)
	require.NoError(t, err)
	assert.False(t, wrote, "nothing new")

	require.NoError(t, j.Discard("castle"))
	_, err = s.Get("castle")
	assert.ErrorIs(t, err, ErrNotFound)
}
