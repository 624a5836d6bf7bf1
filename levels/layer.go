package levels

import "github.com/milk9111/gridedit/geom"

// Layer is one slice of the map. Modules keep their insertion order so that
// hit-testing over overlapping modules is deterministic (first inserted wins).
type Layer struct {
	Name        string
	Visible     bool
	ShowShadows bool

	modules []*Module
}

// LayerStats is the summary shown by the layer list.
type LayerStats struct {
	Modules  int
	Tiles    int
	Selected int
}

func NewLayer(name string) *Layer {
	return &Layer{Name: name, Visible: true, ShowShadows: true}
}

// Modules returns the layer's modules in insertion order. The slice must not
// be modified by callers.
func (l *Layer) Modules() []*Module {
	return l.modules
}

func (l *Layer) Len() int {
	return len(l.modules)
}

func (l *Layer) IsTileOccupied(p geom.TileCoord) bool {
	return l.ModuleAt(p) != nil
}

func (l *Layer) IsRectangleOccupied(r geom.TileRect) bool {
	for _, m := range l.modules {
		if geom.Overlaps(m.Rect(), r) {
			return true
		}
	}
	return false
}

// ModuleAt returns the first inserted module covering p, or nil.
func (l *Layer) ModuleAt(p geom.TileCoord) *Module {
	for _, m := range l.modules {
		if m.Contains(p) {
			return m
		}
	}
	return nil
}

func (l *Layer) Contains(m *Module) bool {
	return l.indexOf(m) >= 0
}

func (l *Layer) indexOf(m *Module) int {
	for i, cur := range l.modules {
		if cur == m {
			return i
		}
	}
	return -1
}

// Add stores a clone of m and returns the stored instance.
func (l *Layer) Add(m *Module) *Module {
	c := m.Clone()
	c.InHand = false
	l.modules = append(l.modules, c)
	return c
}

// Remove deletes m from the layer. It reports false when m was not a member.
func (l *Layer) Remove(m *Module) bool {
	idx := l.indexOf(m)
	if idx < 0 {
		return false
	}
	l.modules = append(l.modules[:idx], l.modules[idx+1:]...)
	return true
}

func (l *Layer) RemoveAt(p geom.TileCoord) *Module {
	m := l.ModuleAt(p)
	if m == nil {
		return nil
	}
	l.Remove(m)
	return m
}

func (l *Layer) SelectedModules() []*Module {
	var out []*Module
	for _, m := range l.modules {
		if m.Selected {
			out = append(out, m)
		}
	}
	return out
}

func (l *Layer) ModulesToDelete() []*Module {
	var out []*Module
	for _, m := range l.modules {
		if m.ToBeDeleted {
			out = append(out, m)
		}
	}
	return out
}

func (l *Layer) ClearSelection() {
	for _, m := range l.modules {
		m.Selected = false
	}
}

func (l *Layer) ClearToBeDeleted() {
	for _, m := range l.modules {
		m.ToBeDeleted = false
	}
}

// SelectOverlapping replaces the selection with every module overlapping r
// and returns how many were selected.
func (l *Layer) SelectOverlapping(r geom.TileRect) int {
	n := 0
	for _, m := range l.modules {
		m.Selected = geom.Overlaps(m.Rect(), r)
		if m.Selected {
			n++
		}
	}
	return n
}

func (l *Layer) Stats() LayerStats {
	s := LayerStats{Modules: len(l.modules)}
	for _, m := range l.modules {
		s.Tiles += m.Rect().Area()
		if m.Selected {
			s.Selected++
		}
	}
	return s
}
