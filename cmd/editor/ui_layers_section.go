package main

import (
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

func addLayersSection(
	parent *widget.Container,
	theme *widget.Theme,
	fontFace *text.Face,
	layerPanel *LayerPanel,
	onLayerSelected func(layerIndex int),
) {
	parent.AddChild(widget.NewLabel(
		widget.LabelOpts.Text("Layers", fontFace, labelColor),
	))

	layerList := widget.NewList(
		widget.ListOpts.Entries([]any{}),
		widget.ListOpts.EntryLabelFunc(func(e any) string {
			if entry, ok := e.(LayerEntry); ok {
				return entry.label()
			}
			return ""
		}),
		widget.ListOpts.EntrySelectedHandler(func(args *widget.ListEntrySelectedEventArgs) {
			entry, ok := args.Entry.(LayerEntry)
			if !ok || onLayerSelected == nil {
				return
			}
			onLayerSelected(entry.Index)
		}),
	)
	layerList.GetWidget().MinHeight = 140
	parent.AddChild(layerList)
	layerPanel.list = layerList

	row := func() *widget.Container {
		return widget.NewContainer(
			widget.ContainerOpts.Layout(
				widget.NewRowLayout(
					widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
					widget.RowLayoutOpts.Spacing(6),
				),
			),
		)
	}
	button := func(label string, onClick func()) *widget.Button {
		return widget.NewButton(
			widget.ButtonOpts.Image(theme.ButtonTheme.Image),
			widget.ButtonOpts.Text(label, fontFace, theme.ButtonTheme.TextColor),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				onClick()
			}),
		)
	}
	withSelected := func(fn func(int)) func() {
		return func() {
			if fn == nil {
				return
			}
			if idx, ok := layerPanel.selected(); ok {
				fn(idx)
			}
		}
	}

	editRow := row()
	editRow.AddChild(button("New", func() {
		if layerPanel.onNew != nil {
			layerPanel.onNew()
		}
	}))
	editRow.AddChild(button("Del", withSelected(layerPanel.onDelete)))
	editRow.AddChild(button("Up", withSelected(layerPanel.onMoveUp)))
	editRow.AddChild(button("Down", withSelected(layerPanel.onMoveDown)))
	parent.AddChild(editRow)

	flagRow := row()
	flagRow.AddChild(button("Visible", withSelected(layerPanel.onVisible)))
	flagRow.AddChild(button("Shadows", withSelected(layerPanel.onShadows)))
	parent.AddChild(flagRow)
}
