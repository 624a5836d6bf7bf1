package main

import (
	"image/color"

	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/colornames"
)

// addFileNameSection adds the map path field with Open and Save buttons.
// Both buttons read the path from the field when they run.
func addFileNameSection(parent *widget.Container, theme *widget.Theme, fontFace *text.Face, onOpen, onSave func()) *widget.TextInput {
	parent.AddChild(widget.NewLabel(
		widget.LabelOpts.Text("Map file", fontFace, labelColor),
	))

	pathInput := widget.NewTextInput(
		widget.TextInputOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(leftPanelWidth-12, 28),
		),
		widget.TextInputOpts.Image(&widget.TextInputImage{
			Idle:     solidNineSlice(colornames.Whitesmoke),
			Disabled: solidNineSlice(colornames.Lightgray),
		}),
		widget.TextInputOpts.Color(&widget.TextInputColor{
			Idle:     colornames.Black,
			Disabled: color.Gray{Y: 120},
			Caret:    colornames.Darkslategray,
		}),
		widget.TextInputOpts.Face(fontFace),
	)
	parent.AddChild(pathInput)

	actions := widget.NewContainer(
		widget.ContainerOpts.Layout(
			widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
				widget.RowLayoutOpts.Spacing(6),
			),
		),
	)
	for _, a := range []struct {
		label string
		fn    func()
	}{
		{"Open", onOpen},
		{"Save", onSave},
	} {
		fn := a.fn
		actions.AddChild(widget.NewButton(
			widget.ButtonOpts.Image(theme.ButtonTheme.Image),
			widget.ButtonOpts.Text(a.label, fontFace, theme.ButtonTheme.TextColor),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				if fn != nil {
					fn()
				}
			}),
		))
	}
	parent.AddChild(actions)
	return pathInput
}
