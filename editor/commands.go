package editor

import (
	"github.com/milk9111/gridedit/geom"
	"github.com/milk9111/gridedit/levels"
)

// Hand returns the staged modules. The modules are live; the slice is a copy.
func (s *Session) Hand() []*levels.Module {
	return append([]*levels.Module(nil), s.hand...)
}

// SetHand replaces the hand with clones of mods. Module positions are taken
// as offsets from the tile under the pointer.
func (s *Session) SetHand(mods ...*levels.Module) {
	hand := make([]*levels.Module, 0, len(mods))
	for _, mod := range mods {
		if mod == nil {
			continue
		}
		c := mod.Clone()
		c.Position = s.pointer.Add(mod.Position)
		c.Selected = false
		c.ToBeDeleted = false
		c.InHand = true
		hand = append(hand, c)
	}
	s.hand = hand
}

func (s *Session) ClearHand() {
	s.hand = nil
}

// PickDefinition stages a single module of the named definition and switches
// to Draw mode.
func (s *Session) PickDefinition(def string, width, height int) error {
	mod, err := levels.NewModule(def, geom.TileCoord{}, width, height)
	if err != nil {
		return err
	}
	if !s.drawing() {
		s.Transition(ModeDraw)
	}
	s.SetHand(mod)
	return nil
}

// CopySelection returns clones of the selected modules positioned relative to
// the selection's anchor bounding box, ready for SetHand.
func (s *Session) CopySelection() []*levels.Module {
	selected := s.m.CurrentLayer().SelectedModules()
	origin, ok := levels.BoundingBoxOrigin(selected)
	if !ok {
		return nil
	}
	out := make([]*levels.Module, len(selected))
	for i, mod := range selected {
		c := mod.Clone()
		c.Position = mod.Position.Sub(origin)
		c.Selected = false
		out[i] = c
	}
	return out
}

// SelectionRect returns the rectangle being dragged in Select mode.
func (s *Session) SelectionRect() (geom.TileRect, bool) {
	if s.rect == nil {
		return geom.TileRect{}, false
	}
	return *s.rect, true
}

// DeleteSelection removes every selected module from the current layer and
// returns how many were removed.
func (s *Session) DeleteSelection() int {
	n := 0
	for _, mod := range s.m.CurrentLayer().SelectedModules() {
		if s.m.RemoveModule(mod) {
			n++
		}
	}
	if n > 0 {
		s.changes++
	}
	return n
}

func (s *Session) RotateCW() {
	s.transformGroup(levels.RotateGroupCW)
}

func (s *Session) RotateCCW() {
	s.transformGroup(levels.RotateGroupCCW)
}

func (s *Session) MirrorHorizontal() {
	s.transformGroup(levels.MirrorGroupHorizontal)
}

func (s *Session) MirrorVertical() {
	s.transformGroup(levels.MirrorGroupVertical)
}

// transformGroup applies fn to the hand when it is non-empty, otherwise to
// the selection.
func (s *Session) transformGroup(fn func([]*levels.Module)) {
	if len(s.hand) > 0 {
		fn(s.hand)
		return
	}
	selected := s.m.CurrentLayer().SelectedModules()
	if len(selected) == 0 {
		return
	}
	fn(selected)
	s.m.MarkDirty()
	s.changes++
}

// NewMap clears the map and all transient session state.
func (s *Session) NewMap() {
	s.m.Clear()
	s.hand = nil
	s.rect = nil
	s.drag = dragNone
	s.mode = ModeSelect
	s.changes++
}

// Load replaces the map with the document at path. The session is reset to
// Select mode only when the load succeeds.
func (s *Session) Load(path string) error {
	if err := s.m.Load(path); err != nil {
		return err
	}
	s.resetTransient()
	return nil
}

// Replace swaps in a map decoded elsewhere, such as an autosave snapshot.
func (s *Session) Replace(m *levels.Map) {
	if m == nil {
		return
	}
	*s.m = *m
	s.resetTransient()
	s.m.MarkDirty()
	s.changes++
}

func (s *Session) resetTransient() {
	s.hand = nil
	s.rect = nil
	s.drag = dragNone
	s.mode = ModeSelect
}

func (s *Session) Save(path string) error {
	return s.m.Save(path)
}

// SelectLayer makes idx the current layer. Erase highlights and the drag
// rectangle do not carry over.
func (s *Session) SelectLayer(idx int) bool {
	if idx < 0 || idx >= s.m.LayerCount() {
		return false
	}
	s.m.CurrentLayer().ClearToBeDeleted()
	s.rect = nil
	s.drag = dragNone
	return s.m.SelectLayer(idx)
}

// AddLayer appends a layer and makes it current.
func (s *Session) AddLayer(name string) *levels.Layer {
	if s.m.LayerCount() > 0 {
		s.m.CurrentLayer().ClearToBeDeleted()
	}
	s.rect = nil
	s.drag = dragNone
	s.changes++
	return s.m.AddLayer(name)
}

func (s *Session) Stats() SessionStats {
	layer := s.m.CurrentLayer()
	ls := layer.Stats()
	return SessionStats{
		Mode:      s.mode,
		LayerName: layer.Name,
		Layer:     ls,
		Selected:  ls.Selected,
		InHand:    len(s.hand),
	}
}

// EditLayers applies a structural layer edit such as DeleteLayer or
// MoveLayerUp. Erase highlights and the drag rectangle are dropped because
// the current layer may change underneath them.
func (s *Session) EditLayers(edit func(m *levels.Map) bool) bool {
	if s.m.LayerCount() > 0 {
		s.m.CurrentLayer().ClearToBeDeleted()
	}
	if !edit(s.m) {
		return false
	}
	s.rect = nil
	s.drag = dragNone
	s.changes++
	return true
}

func (s *Session) ToggleLayerVisible(idx int) bool {
	return s.EditLayers(func(m *levels.Map) bool {
		if idx < 0 || idx >= m.LayerCount() {
			return false
		}
		return m.SetLayerVisible(idx, !m.Layers()[idx].Visible)
	})
}

func (s *Session) ToggleLayerShadows(idx int) bool {
	return s.EditLayers(func(m *levels.Map) bool {
		if idx < 0 || idx >= m.LayerCount() {
			return false
		}
		return m.SetLayerShadows(idx, !m.Layers()[idx].ShowShadows)
	})
}
