package main

import (
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// PaletteEntry is a definition or a pattern script offered for staging.
type PaletteEntry struct {
	Name    string
	Pattern bool
}

func (e PaletteEntry) label() string {
	if e.Pattern {
		return "* " + e.Name
	}
	return e.Name
}

func paletteEntries(defs, patterns []string) []any {
	out := make([]any, 0, len(defs)+len(patterns))
	for _, d := range defs {
		out = append(out, PaletteEntry{Name: d})
	}
	for _, p := range patterns {
		out = append(out, PaletteEntry{Name: p, Pattern: true})
	}
	return out
}

func addPaletteSection(parent *widget.Container, fontFace *text.Face, entries []any, onPicked func(PaletteEntry)) *widget.List {
	parent.AddChild(widget.NewLabel(
		widget.LabelOpts.Text("Modules", fontFace, labelColor),
	))

	list := widget.NewList(
		widget.ListOpts.Entries(entries),
		widget.ListOpts.EntryLabelFunc(func(e any) string {
			if p, ok := e.(PaletteEntry); ok {
				return p.label()
			}
			return ""
		}),
		widget.ListOpts.EntrySelectedHandler(func(args *widget.ListEntrySelectedEventArgs) {
			if onPicked == nil {
				return
			}
			if p, ok := args.Entry.(PaletteEntry); ok {
				onPicked(p)
			}
		}),
	)
	list.GetWidget().MinHeight = 200
	parent.AddChild(list)
	return list
}
