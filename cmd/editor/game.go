package main

import (
	"context"
	"errors"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/gridedit/autosave"
	"github.com/milk9111/gridedit/editor"
	"github.com/milk9111/gridedit/levels"
	"github.com/milk9111/gridedit/prefabs"
	"golang.design/x/clipboard"
)

// EditorGame adapts a Session to the ebiten game loop.
type EditorGame struct {
	session *editor.Session
	catalog *prefabs.Catalog
	watcher *prefabs.Watcher
	journal *autosave.Journal
	ui      *EditorUI

	mapsDir      string
	clipboardOK  bool
	view         canvasView
	isPanning    bool
	lastPanX     int
	lastPanY     int
	lastCursorX  int
	lastCursorY  int
	syncedLayers uint64
	syncedIndex  int
	status       string
}

func NewEditorGame(session *editor.Session, catalog *prefabs.Catalog, mapsDir string) *EditorGame {
	g := &EditorGame{
		session:      session,
		catalog:      catalog,
		mapsDir:      mapsDir,
		view:         canvasView{Left: leftPanelWidth, Top: toolbarHeight},
		syncedIndex:  -1,
		syncedLayers: ^uint64(0),
	}
	g.ui = BuildEditorUI(uiHandlers{
		onModeSelected: func(m editor.Mode) {
			// Implicit gesture switches are mirrored into the toolbar and
			// must not re-run the entry side effects.
			if m != g.session.Mode() {
				g.session.Transition(m)
			}
		},
		onLayerSelected: func(idx int) {
			if idx != g.session.Map().CurrentIndex() {
				g.session.SelectLayer(idx)
			}
		},
		onNewLayer: func() {
			g.session.AddLayer("")
		},
		onDeleteLayer: func(idx int) {
			g.session.EditLayers(func(m *levels.Map) bool { return m.DeleteLayer(idx) })
		},
		onMoveLayerUp: func(idx int) {
			g.session.EditLayers(func(m *levels.Map) bool { return m.MoveLayerUp(idx) })
		},
		onMoveLayerDown: func(idx int) {
			g.session.EditLayers(func(m *levels.Map) bool { return m.MoveLayerDown(idx) })
		},
		onToggleVisible: func(idx int) {
			g.session.ToggleLayerVisible(idx)
		},
		onToggleShadows: func(idx int) {
			g.session.ToggleLayerShadows(idx)
		},
		onPaletteSelected: g.pick,
		onOpen:            g.open,
		onSave:            g.save,
	}, paletteEntries(catalog.Names(), catalog.Patterns()), session.Mode())

	if fn := session.Map().FileName; fn != "" {
		g.ui.FileNameInput.SetText(fn)
	}
	return g
}

// pick stages a palette entry in the hand.
func (g *EditorGame) pick(entry PaletteEntry) {
	if entry.Pattern {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		mods, err := g.catalog.Pattern(ctx, entry.Name, nil)
		if err != nil {
			log.Printf("pattern %s: %v", entry.Name, err)
			g.status = "pattern failed: " + entry.Name
			return
		}
		g.stage(mods)
		return
	}
	def, err := g.catalog.Get(entry.Name)
	if err != nil {
		log.Printf("pick %s: %v", entry.Name, err)
		return
	}
	if err := g.session.PickDefinition(def.Name, def.Width, def.Height); err != nil {
		log.Printf("pick %s: %v", entry.Name, err)
	}
}

func (g *EditorGame) stage(mods []*levels.Module) {
	if len(mods) == 0 {
		return
	}
	if m := g.session.Mode(); m != editor.ModeDraw && m != editor.ModePaint {
		g.session.Transition(editor.ModeDraw)
	}
	g.session.SetHand(mods...)
}

func ctrlPressed() bool {
	return ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyMeta)
}

func altPressed() bool {
	return ebiten.IsKeyPressed(ebiten.KeyAlt)
}

func (g *EditorGame) typing() bool {
	if g.ui == nil || g.ui.UI == nil {
		return false
	}
	_, ok := g.ui.UI.GetFocusedWidget().(*widget.TextInput)
	return ok
}

func (g *EditorGame) Update() error {
	if !g.typing() {
		g.updateKeys()
	}

	g.ui.ToolBar.SetMode(g.session.Mode())
	if g.ui.UI != nil {
		g.ui.UI.Update()
	}

	g.updatePointer()
	g.drainWatcher()
	g.tickAutosave()
	g.syncLayers()
	return nil
}

func (g *EditorGame) updateKeys() {
	ctrl := ctrlPressed()
	shift := ebiten.IsKeyPressed(ebiten.KeyShift)

	if inpututil.IsKeyJustPressed(ebiten.KeyAlt) {
		g.session.KeyDown(editor.KeyPipette)
	}
	if inpututil.IsKeyJustReleased(ebiten.KeyAlt) {
		g.session.KeyUp(editor.KeyPipette)
	}

	if ctrl {
		switch {
		case inpututil.IsKeyJustPressed(ebiten.KeyS):
			g.save()
		case inpututil.IsKeyJustPressed(ebiten.KeyN):
			g.session.NewMap()
			g.ui.FileNameInput.SetText("")
			g.status = "new map"
		case inpututil.IsKeyJustPressed(ebiten.KeyC):
			g.copySelection()
		case inpututil.IsKeyJustPressed(ebiten.KeyV):
			g.paste()
		case inpututil.IsKeyJustPressed(ebiten.KeyL):
			g.session.AddLayer("")
		}
		return
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		g.cycleLayer(-1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyE) {
		g.cycleLayer(1)
	}
	for _, k := range inpututil.AppendJustPressedKeys(nil) {
		if cmd := resolveKey(k, shift); cmd != editor.KeyNone {
			g.session.KeyDown(cmd)
		}
	}
}

func (g *EditorGame) cycleLayer(step int) {
	n := g.session.Map().LayerCount()
	if n == 0 {
		return
	}
	idx := (g.session.Map().CurrentIndex() + step + n) % n
	g.session.SelectLayer(idx)
}

func (g *EditorGame) updatePointer() {
	sx, sy := ebiten.CursorPosition()
	cx, cy := g.view.toCanvas(sx, sy)
	mods := modsFrom(ctrlPressed(), altPressed())
	inside := g.view.inside(sx, sy)

	if inside && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonMiddle) {
		g.isPanning = true
		g.lastPanX, g.lastPanY = sx, sy
	}
	if g.isPanning && ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle) {
		g.view.PanX += sx - g.lastPanX
		g.view.PanY += sy - g.lastPanY
		g.lastPanX, g.lastPanY = sx, sy
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonMiddle) {
		g.isPanning = false
	}

	if inside {
		if _, wy := ebiten.Wheel(); wy != 0 {
			if mods.Has(editor.ModZoom) {
				g.session.Wheel(editor.WheelEvent{DeltaY: wy, Mods: mods})
			} else {
				g.view.PanY += int(wy * float64(g.session.Zoom()))
			}
		}
		if cx != g.lastCursorX || cy != g.lastCursorY {
			g.session.PointerMove(editor.PointerEvent{X: cx, Y: cy, Mods: mods})
			g.lastCursorX, g.lastCursorY = cx, cy
		}
	}

	buttons := []struct {
		mouse  ebiten.MouseButton
		button editor.Button
	}{
		{ebiten.MouseButtonLeft, editor.ButtonPrimary},
		{ebiten.MouseButtonRight, editor.ButtonSecondary},
	}
	for _, b := range buttons {
		ev := editor.PointerEvent{Button: b.button, X: cx, Y: cy, Mods: mods}
		if inside && inpututil.IsMouseButtonJustPressed(b.mouse) {
			g.session.PointerDown(ev)
		}
		// Releases outside the canvas still end the gesture.
		if inpututil.IsMouseButtonJustReleased(b.mouse) {
			g.session.PointerUp(ev)
		}
	}
}

// savePath picks where Ctrl+S writes: the File field, then the path the map
// was loaded from, then the map name under the maps directory.
func savePath(input, fileName, mapName, mapsDir string) string {
	input = strings.TrimSpace(input)
	if input == "" {
		if fileName != "" {
			return fileName
		}
		input = mapName
	}
	if filepath.Ext(input) == "" {
		input += ".json"
	}
	if filepath.Dir(input) == "." && !strings.HasPrefix(input, "."+string(filepath.Separator)) {
		return filepath.Join(mapsDir, input)
	}
	return input
}

func (g *EditorGame) save() {
	m := g.session.Map()
	path := savePath(g.ui.FileNameInput.GetText(), m.FileName, m.MapName, g.mapsDir)
	if err := g.session.Save(path); err != nil {
		log.Printf("Save failed: %v", err)
		g.status = "save failed"
		return
	}
	g.ui.FileNameInput.SetText(path)
	g.status = "saved " + path
	log.Printf("Saved %s", path)
	if g.journal != nil {
		if err := g.journal.Discard(m.MapName); err != nil {
			log.Printf("autosave discard: %v", err)
		}
	}
}

// open loads the map named in the File field. A failed load leaves the
// current map as it was.
func (g *EditorGame) open() {
	path := strings.TrimSpace(g.ui.FileNameInput.GetText())
	if path == "" {
		return
	}
	if filepath.Ext(path) == "" {
		path = savePath(path, "", "", g.mapsDir)
	}
	if err := g.session.Load(path); err != nil {
		log.Printf("Load failed: %v", err)
		g.status = "load failed"
		return
	}
	g.ui.FileNameInput.SetText(path)
	g.status = "opened " + path
	log.Printf("Loaded %s", path)
}

func (g *EditorGame) copySelection() {
	if !g.clipboardOK {
		return
	}
	data, err := encodeModules(g.session.CopySelection())
	if err != nil {
		if !errors.Is(err, errEmptyClipboard) {
			log.Printf("copy: %v", err)
		}
		return
	}
	clipboard.Write(clipboard.FmtText, data)
	g.status = "copied"
}

func (g *EditorGame) paste() {
	if !g.clipboardOK {
		return
	}
	mods, err := decodeModules(clipboard.Read(clipboard.FmtText))
	if err != nil {
		if !errors.Is(err, errEmptyClipboard) {
			log.Printf("paste: %v", err)
		}
		return
	}
	g.stage(mods)
}

func (g *EditorGame) drainWatcher() {
	if g.watcher == nil {
		return
	}
	changed := false
	for {
		select {
		case ch, ok := <-g.watcher.Changes:
			if !ok {
				g.watcher = nil
				g.refreshPalette(changed)
				return
			}
			if !ch.Script {
				if _, err := g.catalog.Reload(ch.Path); err != nil && !errors.Is(err, prefabs.ErrUnknownDefinition) {
					log.Printf("reload %s: %v", ch.Path, err)
					continue
				}
			}
			changed = true
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				g.refreshPalette(changed)
				return
			}
			log.Printf("prefab watcher: %v", err)
		default:
			g.refreshPalette(changed)
			return
		}
	}
}

func (g *EditorGame) refreshPalette(changed bool) {
	if !changed || g.ui.Palette == nil {
		return
	}
	g.ui.Palette.SetEntries(paletteEntries(g.catalog.Names(), g.catalog.Patterns()))
}

func (g *EditorGame) tickAutosave() {
	if g.journal == nil {
		return
	}
	wrote, err := g.journal.Tick(time.Now(), g.session.Changes(), g.session.Map())
	if err != nil {
		log.Printf("autosave: %v", err)
		return
	}
	if wrote {
		g.status = "autosaved"
	}
}

func (g *EditorGame) syncLayers() {
	changes := g.session.Changes()
	idx := g.session.Map().CurrentIndex()
	if changes == g.syncedLayers && idx == g.syncedIndex {
		return
	}
	g.syncedLayers, g.syncedIndex = changes, idx
	g.ui.LayerPanel.Sync(g.session.Map())
}

func (g *EditorGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}
