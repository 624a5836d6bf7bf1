package levels

import (
	"fmt"

	"github.com/milk9111/gridedit/geom"
)

// MaxMapSize is the nominal extent of a map, in tiles, on each axis. It sizes
// the scrollable canvas but does not clip placement.
const MaxMapSize = 128

const DefaultMapName = "untitled"

// Map is an ordered stack of layers. Index 0 is drawn first; later layers
// are drawn on top and cast shadows onto the ones below.
type Map struct {
	FileName string
	MapName  string

	layers  []*Layer
	current int
	dirty   bool
}

// MapStats aggregates layer statistics for the status readout.
type MapStats struct {
	Layers   int
	Modules  int
	Tiles    int
	Selected int
	PerLayer []LayerStats
}

func NewMap() *Map {
	return &Map{MapName: DefaultMapName}
}

func defaultLayerName(idx int) string {
	if idx == 0 {
		return "Background"
	}
	return fmt.Sprintf("Layer %d", idx)
}

// Layers returns the layers in draw order. The slice must not be modified by
// callers.
func (m *Map) Layers() []*Layer {
	return m.layers
}

func (m *Map) LayerCount() int {
	return len(m.layers)
}

// CurrentLayer returns the layer being edited, creating a default layer when
// the map has none.
func (m *Map) CurrentLayer() *Layer {
	if len(m.layers) == 0 {
		m.layers = append(m.layers, NewLayer(defaultLayerName(0)))
		m.current = 0
	}
	if m.current < 0 || m.current >= len(m.layers) {
		m.current = 0
	}
	return m.layers[m.current]
}

func (m *Map) CurrentIndex() int {
	return m.current
}

func (m *Map) SelectLayer(idx int) bool {
	if idx < 0 || idx >= len(m.layers) {
		return false
	}
	m.current = idx
	return true
}

// AddLayer appends a layer on top and makes it current. An empty name gets
// a default one.
func (m *Map) AddLayer(name string) *Layer {
	if name == "" {
		name = defaultLayerName(len(m.layers))
	}
	l := NewLayer(name)
	m.layers = append(m.layers, l)
	m.current = len(m.layers) - 1
	m.dirty = true
	return l
}

func (m *Map) DeleteLayer(idx int) bool {
	if idx < 0 || idx >= len(m.layers) {
		return false
	}
	m.layers = append(m.layers[:idx], m.layers[idx+1:]...)
	if m.current > idx || m.current >= len(m.layers) {
		m.current--
	}
	if m.current < 0 {
		m.current = 0
	}
	m.dirty = true
	return true
}

// MoveLayerUp swaps layer idx with the one drawn above it.
func (m *Map) MoveLayerUp(idx int) bool {
	if idx < 0 || idx >= len(m.layers)-1 {
		return false
	}
	m.layers[idx], m.layers[idx+1] = m.layers[idx+1], m.layers[idx]
	if m.current == idx {
		m.current = idx + 1
	} else if m.current == idx+1 {
		m.current = idx
	}
	m.dirty = true
	return true
}

// MoveLayerDown swaps layer idx with the one drawn below it.
func (m *Map) MoveLayerDown(idx int) bool {
	if idx <= 0 || idx >= len(m.layers) {
		return false
	}
	m.layers[idx], m.layers[idx-1] = m.layers[idx-1], m.layers[idx]
	if m.current == idx {
		m.current = idx - 1
	} else if m.current == idx-1 {
		m.current = idx
	}
	m.dirty = true
	return true
}

func (m *Map) RenameLayer(idx int, name string) bool {
	if idx < 0 || idx >= len(m.layers) || name == "" {
		return false
	}
	m.layers[idx].Name = name
	m.dirty = true
	return true
}

func (m *Map) SetLayerVisible(idx int, visible bool) bool {
	if idx < 0 || idx >= len(m.layers) {
		return false
	}
	m.layers[idx].Visible = visible
	m.dirty = true
	return true
}

func (m *Map) SetLayerShadows(idx int, show bool) bool {
	if idx < 0 || idx >= len(m.layers) {
		return false
	}
	m.layers[idx].ShowShadows = show
	m.dirty = true
	return true
}

// ShadowCasters returns the visible layers drawn above idx, nearest first.
func (m *Map) ShadowCasters(idx int) []*Layer {
	var out []*Layer
	for i := idx + 1; i < len(m.layers); i++ {
		if m.layers[i].Visible && m.layers[i].ShowShadows {
			out = append(out, m.layers[i])
		}
	}
	return out
}

// AddModule inserts a clone of mod into the current layer, so one instance
// can be stamped repeatedly without aliasing.
func (m *Map) AddModule(mod *Module) *Module {
	added := m.CurrentLayer().Add(mod)
	m.dirty = true
	return added
}

func (m *Map) AddModules(mods []*Module) []*Module {
	out := make([]*Module, 0, len(mods))
	for _, mod := range mods {
		out = append(out, m.AddModule(mod))
	}
	return out
}

// RemoveModule is a no-op when mod is not in the current layer.
func (m *Map) RemoveModule(mod *Module) bool {
	if mod == nil || !m.CurrentLayer().Remove(mod) {
		return false
	}
	m.dirty = true
	return true
}

func (m *Map) RemoveModuleAt(p geom.TileCoord) *Module {
	removed := m.CurrentLayer().RemoveAt(p)
	if removed != nil {
		m.dirty = true
	}
	return removed
}

// Clear drops every layer and resets the map metadata.
func (m *Map) Clear() {
	m.layers = nil
	m.current = 0
	m.FileName = ""
	m.MapName = DefaultMapName
	m.dirty = false
}

// Dirty reports unsaved changes.
func (m *Map) Dirty() bool {
	return m.dirty
}

// MarkDirty records an in-place edit of a module (move, rotate, mirror).
func (m *Map) MarkDirty() {
	m.dirty = true
}

// Extent returns the size in tiles of the scrollable area: the nominal
// MaxMapSize grown to include modules placed beyond it.
func (m *Map) Extent() (int, int) {
	w, h := MaxMapSize, MaxMapSize
	for _, l := range m.layers {
		for _, mod := range l.modules {
			r := mod.Rect()
			if r.X+r.Width > w {
				w = r.X + r.Width
			}
			if r.Y+r.Height > h {
				h = r.Y + r.Height
			}
		}
	}
	return w, h
}

// CanvasSize is Extent scaled to pixels.
func (m *Map) CanvasSize(zoom int) (int, int) {
	w, h := m.Extent()
	zoom = geom.ClampZoom(zoom)
	return w * zoom, h * zoom
}

func (m *Map) Stats() MapStats {
	s := MapStats{Layers: len(m.layers), PerLayer: make([]LayerStats, len(m.layers))}
	for i, l := range m.layers {
		ls := l.Stats()
		s.PerLayer[i] = ls
		s.Modules += ls.Modules
		s.Tiles += ls.Tiles
		s.Selected += ls.Selected
	}
	return s
}
