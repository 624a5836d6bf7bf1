package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/gridedit/editor"
)

type keyBinding struct {
	key   ebiten.Key
	shift bool
	cmd   editor.Key
}

// keyBindings maps unmodified (or shift-modified) keys to session commands.
// Ctrl chords are handled separately by the game.
var keyBindings = []keyBinding{
	{key: ebiten.KeyEscape, cmd: editor.KeyCancel},
	{key: ebiten.KeyDelete, cmd: editor.KeyDelete},
	{key: ebiten.KeyBackspace, cmd: editor.KeyDelete},
	{key: ebiten.KeyR, cmd: editor.KeyRotateCW},
	{key: ebiten.KeyR, shift: true, cmd: editor.KeyRotateCCW},
	{key: ebiten.KeyH, cmd: editor.KeyMirrorHorizontal},
	{key: ebiten.KeyV, cmd: editor.KeyMirrorVertical},
	{key: ebiten.Key1, cmd: editor.KeyModeSelect},
	{key: ebiten.Key2, cmd: editor.KeyModeDraw},
	{key: ebiten.Key3, cmd: editor.KeyModePaint},
	{key: ebiten.Key4, cmd: editor.KeyModeErase},
	{key: ebiten.Key5, cmd: editor.KeyModeMove},
}

func resolveKey(k ebiten.Key, shift bool) editor.Key {
	for _, b := range keyBindings {
		if b.key == k && b.shift == shift {
			return b.cmd
		}
	}
	return editor.KeyNone
}

// canvasView converts screen coordinates into canvas pixels. The canvas
// starts at (Left, Top) on screen and is scrolled by (PanX, PanY).
type canvasView struct {
	Left, Top  int
	PanX, PanY int
}

func (v canvasView) toCanvas(sx, sy int) (int, int) {
	return sx - v.Left - v.PanX, sy - v.Top - v.PanY
}

func (v canvasView) toScreen(cx, cy int) (float32, float32) {
	return float32(cx + v.Left + v.PanX), float32(cy + v.Top + v.PanY)
}

// inside reports whether a screen point lies over the canvas rather than the
// surrounding chrome.
func (v canvasView) inside(sx, sy int) bool {
	return sx >= v.Left && sy >= v.Top
}

func modsFrom(ctrl, alt bool) editor.Mods {
	var m editor.Mods
	if alt {
		m |= editor.ModPipette
	}
	if ctrl {
		m |= editor.ModZoom
	}
	return m
}
