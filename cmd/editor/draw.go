package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/gridedit/geom"
	"github.com/milk9111/gridedit/levels"
)

func (g *EditorGame) Draw(screen *ebiten.Image) {
	screen.Fill(canvasBackground)

	zoom := g.session.Zoom()
	m := g.session.Map()
	g.drawGrid(screen, m, zoom)

	current := m.CurrentIndex()
	for i, layer := range m.Layers() {
		if !layer.Visible {
			continue
		}
		if i == current {
			for _, caster := range m.ShadowCasters(i) {
				for _, mod := range caster.Modules() {
					g.drawShadow(screen, mod, zoom)
				}
			}
		}
		alpha := uint8(255)
		if i != current {
			alpha = 110
		}
		for _, mod := range layer.Modules() {
			g.drawModule(screen, mod, zoom, alpha)
		}
	}

	for _, mod := range g.session.Hand() {
		g.drawModule(screen, mod, zoom, 150)
	}

	if r, ok := g.session.SelectionRect(); ok {
		x, y, w, h := g.screenRect(r, zoom)
		vector.FillRect(screen, x, y, w, h, selectionFill, false)
		vector.StrokeRect(screen, x, y, w, h, 1, selectionStroke, false)
	}

	if g.ui != nil && g.ui.UI != nil {
		g.ui.UI.Draw(screen)
	}
	g.drawStatus(screen)
}

func (g *EditorGame) screenRect(r geom.TileRect, zoom int) (x, y, w, h float32) {
	pr := geom.TileToPixel(r, zoom)
	x, y = g.view.toScreen(pr.X, pr.Y)
	return x, y, float32(pr.Width), float32(pr.Height)
}

func (g *EditorGame) drawGrid(screen *ebiten.Image, m *levels.Map, zoom int) {
	cols, rows := m.Extent()
	sw, sh := screen.Bounds().Dx(), screen.Bounds().Dy()
	x0, y0 := g.view.toScreen(0, 0)
	x1, y1 := g.view.toScreen(cols*zoom, rows*zoom)
	for c := 0; c <= cols; c++ {
		x := x0 + float32(c*zoom)
		if x < float32(g.view.Left) || x > float32(sw) {
			continue
		}
		vector.StrokeLine(screen, x, y0, x, y1, 1, gridColor, false)
	}
	for r := 0; r <= rows; r++ {
		y := y0 + float32(r*zoom)
		if y < float32(g.view.Top) || y > float32(sh) {
			continue
		}
		vector.StrokeLine(screen, x0, y, x1, y, 1, gridColor, false)
	}
}

func (g *EditorGame) drawShadow(screen *ebiten.Image, mod *levels.Module, zoom int) {
	x, y, w, h := g.screenRect(mod.Rect(), zoom)
	off := float32(zoom) / 6
	vector.FillRect(screen, x+off, y+off, w, h, shadowColor, false)
}

func withAlpha(c color.Color, a uint8) color.RGBA {
	r, gg, b, _ := c.RGBA()
	return color.RGBA{R: uint8(r >> 8), G: uint8(gg >> 8), B: uint8(b >> 8), A: a}
}

func (g *EditorGame) drawModule(screen *ebiten.Image, mod *levels.Module, zoom int, alpha uint8) {
	x, y, w, h := g.screenRect(mod.Rect(), zoom)

	def, err := g.catalog.Get(mod.Definition)
	fill := color.Color(missingDefinition)
	if err == nil {
		fill = def.RGBA()
	}
	vector.FillRect(screen, x, y, w, h, withAlpha(fill, alpha), false)
	vector.StrokeRect(screen, x, y, w, h, 1, withAlpha(moduleOutline, alpha), false)

	if err == nil {
		notch := float32(zoom) / 4
		openings := []struct {
			edge   levels.Edge
			nx, ny float32
			nw, nh float32
		}{
			{levels.North, x + w/2 - notch/2, y, notch, notch / 2},
			{levels.South, x + w/2 - notch/2, y + h - notch/2, notch, notch / 2},
			{levels.West, x, y + h/2 - notch/2, notch / 2, notch},
			{levels.East, x + w - notch/2, y + h/2 - notch/2, notch / 2, notch},
		}
		for _, o := range openings {
			if def.OpensTo(mod, o.edge) {
				vector.FillRect(screen, o.nx, o.ny, o.nw, o.nh, withAlpha(openingColor, alpha), false)
			}
		}
	}

	if mod.Selected {
		vector.StrokeRect(screen, x, y, w, h, 2, selectedOutline, false)
	}
	if mod.ToBeDeleted {
		vector.FillRect(screen, x, y, w, h, deleteOverlay, false)
	}
}

func (g *EditorGame) drawStatus(screen *ebiten.Image) {
	st := g.session.Stats()
	p := g.session.Pointer()
	dirty := ""
	if g.session.Map().Dirty() {
		dirty = "*"
	}
	line := fmt.Sprintf("%s%s | %s | layer %s: %d modules, %d tiles, %d selected | hand %d | zoom %d | (%d,%d)",
		g.session.Map().MapName, dirty, st.Mode, st.LayerName,
		st.Layer.Modules, st.Layer.Tiles, st.Selected, st.InHand, g.session.Zoom(), p.X, p.Y)
	if g.status != "" {
		line += " | " + g.status
	}
	ebitenutil.DebugPrintAt(screen, line, g.view.Left+8, screen.Bounds().Dy()-20)
}
