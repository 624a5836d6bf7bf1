package main

import (
	"fmt"

	"github.com/ebitenui/ebitenui/widget"
	"github.com/milk9111/gridedit/levels"
)

// LayerEntry is one row of the layer list.
type LayerEntry struct {
	Index   int
	Name    string
	Visible bool
	Shadows bool
	Modules int
}

func (e LayerEntry) label() string {
	flags := ""
	if !e.Visible {
		flags += " hidden"
	}
	if !e.Shadows {
		flags += " flat"
	}
	return fmt.Sprintf("%d. %s (%d)%s", e.Index+1, e.Name, e.Modules, flags)
}

// LayerPanel keeps the layer list in step with the map.
type LayerPanel struct {
	list    *widget.List
	entries []any

	onNew      func()
	onDelete   func(idx int)
	onMoveUp   func(idx int)
	onMoveDown func(idx int)
	onVisible  func(idx int)
	onShadows  func(idx int)
}

func NewLayerPanel() *LayerPanel {
	return &LayerPanel{}
}

func layerEntries(m *levels.Map) []LayerEntry {
	out := make([]LayerEntry, 0, m.LayerCount())
	for i, l := range m.Layers() {
		out = append(out, LayerEntry{
			Index:   i,
			Name:    l.Name,
			Visible: l.Visible,
			Shadows: l.ShowShadows,
			Modules: l.Len(),
		})
	}
	return out
}

// Sync rebuilds the list from the map and selects the current layer.
func (lp *LayerPanel) Sync(m *levels.Map) {
	if lp == nil || lp.list == nil {
		return
	}
	rows := layerEntries(m)
	entries := make([]any, len(rows))
	for i, r := range rows {
		entries[i] = r
	}
	lp.entries = entries
	lp.list.SetEntries(entries)
	if idx := m.CurrentIndex(); idx >= 0 && idx < len(entries) {
		lp.list.SetSelectedEntry(entries[idx])
	}
}

func (lp *LayerPanel) selected() (int, bool) {
	if lp == nil || lp.list == nil {
		return 0, false
	}
	e, ok := lp.list.SelectedEntry().(LayerEntry)
	if !ok {
		return 0, false
	}
	return e.Index, true
}
