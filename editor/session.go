package editor

import (
	"github.com/milk9111/gridedit/geom"
	"github.com/milk9111/gridedit/levels"
)

type dragKind int

const (
	dragNone dragKind = iota
	dragSelect
	dragStamp
	dragErase
	dragMove
)

// Session interprets pointer, key and wheel events as edits of a Map. It is
// not safe for concurrent use; the input loop owns it.
type Session struct {
	m    *levels.Map
	mode Mode
	// hand holds staged modules in absolute tile space. They follow the
	// pointer and are never members of a layer.
	hand []*levels.Module

	rect   *geom.TileRect
	anchor geom.TileCoord

	pointer     geom.TileCoord
	primary     bool
	secondary   bool
	drag        dragKind
	pipetteHeld bool

	zoom    int
	changes uint64
}

// SessionStats is the status readout for the UI chrome.
type SessionStats struct {
	Mode      Mode
	LayerName string
	Layer     levels.LayerStats
	Selected  int
	InHand    int
}

// NewSession starts a session in Select mode. A nil map is replaced with an
// empty one.
func NewSession(m *levels.Map) *Session {
	if m == nil {
		m = levels.NewMap()
	}
	return &Session{m: m, mode: ModeSelect, zoom: geom.DefaultZoom}
}

func (s *Session) Map() *levels.Map {
	return s.m
}

func (s *Session) Mode() Mode {
	return s.mode
}

// Pointer returns the tile under the pointer as of the last event.
func (s *Session) Pointer() geom.TileCoord {
	return s.pointer
}

func (s *Session) Zoom() int {
	return s.zoom
}

// SetZoom sets the pixels-per-tile scale, clamped to the supported range.
func (s *Session) SetZoom(z int) {
	s.zoom = geom.ClampZoom(z)
}

// Changes counts committed edits. It only grows.
func (s *Session) Changes() uint64 {
	return s.changes
}

// Transition switches to mode and applies its entry side effects:
//
//	Draw, Paint: clear erase highlights and the selection, keep the hand
//	Select:      clear erase highlights, the hand and the selection
//	Erase:       clear erase highlights and the hand, keep the selection
//	Move:        clear the hand only
func (s *Session) Transition(mode Mode) {
	layer := s.m.CurrentLayer()
	switch mode {
	case ModeDraw, ModePaint:
		layer.ClearToBeDeleted()
		s.clearSelection()
	case ModeSelect:
		layer.ClearToBeDeleted()
		s.hand = nil
		s.clearSelection()
	case ModeErase:
		layer.ClearToBeDeleted()
		s.hand = nil
	case ModeMove:
		s.hand = nil
	default:
		return
	}
	s.mode = mode
	s.drag = dragNone
}

func (s *Session) clearSelection() {
	s.rect = nil
	s.m.CurrentLayer().ClearSelection()
}

func (s *Session) tileOf(ev PointerEvent) geom.TileCoord {
	return geom.PixelToTile(ev.X, ev.Y, s.zoom)
}

// PointerMove runs gesture logic only when the pointer enters a new tile.
func (s *Session) PointerMove(ev PointerEvent) {
	if tile := s.tileOf(ev); tile != s.pointer {
		s.enter(tile)
	}
}

func (s *Session) PointerDown(ev PointerEvent) {
	tile := s.tileOf(ev)
	if tile != s.pointer {
		s.enter(tile)
	}
	switch ev.Button {
	case ButtonPrimary:
		s.primary = true
		s.press(tile, ev.Mods)
	case ButtonSecondary:
		s.secondary = true
		if s.drawing() {
			s.removeAt(tile)
		}
	}
}

func (s *Session) PointerUp(ev PointerEvent) {
	tile := s.tileOf(ev)
	if tile != s.pointer {
		s.enter(tile)
	}
	switch ev.Button {
	case ButtonPrimary:
		if !s.primary {
			return
		}
		s.primary = false
		s.release()
	case ButtonSecondary:
		s.secondary = false
	}
}

func (s *Session) drawing() bool {
	return s.mode == ModeDraw || s.mode == ModePaint
}

// enter moves the pointer to tile, drags the hand along and continues any
// gesture in progress.
func (s *Session) enter(tile geom.TileCoord) {
	delta := tile.Sub(s.pointer)
	s.pointer = tile
	for _, h := range s.hand {
		h.Translate(delta)
	}

	switch s.mode {
	case ModeSelect:
		if s.drag == dragSelect {
			r := geom.RectFromCorners(s.anchor, tile)
			s.rect = &r
		}
	case ModeDraw, ModePaint:
		if s.secondary {
			s.removeAt(tile)
		}
		if s.drag == dragStamp {
			s.stamp(tile)
		}
	case ModeErase:
		s.highlight(tile)
		if s.drag == dragErase {
			s.removeAt(tile)
		}
	case ModeMove:
		if s.drag == dragMove {
			s.translateSelection(delta)
		}
	}
}

func (s *Session) press(tile geom.TileCoord, mods Mods) {
	layer := s.m.CurrentLayer()
	switch s.mode {
	case ModeSelect:
		if mod := layer.ModuleAt(tile); mod != nil && mod.Selected {
			s.mode = ModeMove
			s.drag = dragMove
			return
		}
		s.anchor = tile
		s.rect = &geom.TileRect{X: tile.X, Y: tile.Y, Width: 1, Height: 1}
		s.drag = dragSelect
	case ModeDraw, ModePaint:
		if mods.Has(ModPipette) || s.pipetteHeld {
			s.pipette(tile)
			return
		}
		if len(s.hand) == 0 {
			return
		}
		if layer.IsTileOccupied(tile) {
			s.mode = ModePaint
		}
		s.drag = dragStamp
		s.stamp(tile)
	case ModeErase:
		s.drag = dragErase
		s.removeAt(tile)
	case ModeMove:
		s.drag = dragMove
	}
}

func (s *Session) release() {
	if s.drag == dragSelect && s.rect != nil {
		s.m.CurrentLayer().SelectOverlapping(*s.rect)
		s.rect = nil
	}
	switch s.mode {
	case ModePaint:
		s.mode = ModeDraw
	case ModeMove:
		s.mode = ModeSelect
	}
	s.drag = dragNone
}

// stamp commits clones of the hand. In Paint mode the module under the
// pointer is removed first. Nothing is placed if any hand module would
// overlap an existing one.
func (s *Session) stamp(tile geom.TileCoord) {
	if s.mode == ModePaint {
		s.removeAt(tile)
	}
	layer := s.m.CurrentLayer()
	for _, h := range s.hand {
		if layer.IsRectangleOccupied(h.Rect()) {
			return
		}
	}
	s.m.AddModules(s.hand)
	s.changes++
}

func (s *Session) pipette(tile geom.TileCoord) bool {
	src := s.m.CurrentLayer().ModuleAt(tile)
	if src == nil {
		return false
	}
	c := src.Clone()
	c.Position = tile
	c.Selected = false
	c.ToBeDeleted = false
	c.InHand = true
	s.hand = []*levels.Module{c}
	return true
}

func (s *Session) highlight(tile geom.TileCoord) {
	layer := s.m.CurrentLayer()
	layer.ClearToBeDeleted()
	if mod := layer.ModuleAt(tile); mod != nil {
		mod.ToBeDeleted = true
	}
}

func (s *Session) removeAt(tile geom.TileCoord) {
	if s.m.RemoveModuleAt(tile) != nil {
		s.changes++
	}
}

func (s *Session) translateSelection(delta geom.TileCoord) {
	selected := s.m.CurrentLayer().SelectedModules()
	if len(selected) == 0 {
		return
	}
	for _, mod := range selected {
		mod.Translate(delta)
	}
	s.m.MarkDirty()
	s.changes++
}

// KeyDown handles command keys. Unknown keys are ignored.
func (s *Session) KeyDown(k Key) {
	switch k {
	case KeyCancel:
		s.Transition(ModeSelect)
	case KeyDelete:
		s.DeleteSelection()
	case KeyRotateCW:
		s.RotateCW()
	case KeyRotateCCW:
		s.RotateCCW()
	case KeyMirrorHorizontal:
		s.MirrorHorizontal()
	case KeyMirrorVertical:
		s.MirrorVertical()
	case KeyPipette:
		s.pipetteHeld = true
	case KeyModeSelect:
		s.Transition(ModeSelect)
	case KeyModeDraw:
		s.Transition(ModeDraw)
	case KeyModePaint:
		s.Transition(ModePaint)
	case KeyModeErase:
		s.Transition(ModeErase)
	case KeyModeMove:
		s.Transition(ModeMove)
	}
}

func (s *Session) KeyUp(k Key) {
	if k == KeyPipette {
		s.pipetteHeld = false
	}
}

// Wheel zooms by one step per event while the zoom modifier is held.
func (s *Session) Wheel(ev WheelEvent) {
	if !ev.Mods.Has(ModZoom) || ev.DeltaY == 0 {
		return
	}
	step := ZoomStep
	if ev.DeltaY < 0 {
		step = -step
	}
	s.SetZoom(s.zoom + step)
}
