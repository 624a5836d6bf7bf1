package main

import (
	"image/color"

	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/gridedit/editor"
	"golang.org/x/image/colornames"
)

const toolbarHeight = 48

// ToolBar is the mode radio group shown above the canvas.
type ToolBar struct {
	group   *widget.RadioGroup
	buttons []*widget.Button
	modes   []editor.Mode
	active  editor.Mode
}

// SetMode reflects a mode change made outside the toolbar, such as an
// implicit Select to Move switch during a drag.
func (tb *ToolBar) SetMode(m editor.Mode) {
	if tb == nil || tb.group == nil {
		return
	}
	if m == tb.active {
		return
	}
	for i, mode := range tb.modes {
		if mode == m {
			tb.active = m
			tb.group.SetActive(tb.buttons[i])
			return
		}
	}
}

func buildToolBar(theme *widget.Theme, fontFace *text.Face, onModeSelected func(m editor.Mode), initial editor.Mode) (*widget.Container, *ToolBar) {
	modes := editor.Modes()
	buttonTextColor := &widget.ButtonTextColor{
		Idle:     colornames.Black,
		Hover:    colornames.Black,
		Pressed:  colornames.Mediumblue,
		Disabled: color.Gray{Y: 128},
	}

	toolbar := widget.NewContainer(
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(320, toolbarHeight),
		),
		widget.ContainerOpts.Layout(
			widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
				widget.RowLayoutOpts.Spacing(8),
			),
		),
		widget.ContainerOpts.BackgroundImage(solidNineSlice(toolbarBackground)),
	)

	buttons := make([]*widget.Button, 0, len(modes))
	for _, m := range modes {
		btn := widget.NewButton(
			widget.ButtonOpts.Image(theme.ButtonTheme.Image),
			widget.ButtonOpts.Text(m.String(), fontFace, buttonTextColor),
			widget.ButtonOpts.ToggleMode(),
			widget.ButtonOpts.WidgetOpts(
				widget.WidgetOpts.MinSize(56, 40),
			),
		)
		buttons = append(buttons, btn)
		toolbar.AddChild(btn)
	}

	elements := make([]widget.RadioGroupElement, 0, len(buttons))
	for _, b := range buttons {
		elements = append(elements, b)
	}

	tb := &ToolBar{buttons: buttons, modes: modes, active: -1}
	tb.group = widget.NewRadioGroup(
		widget.RadioGroupOpts.Elements(elements...),
		widget.RadioGroupOpts.ChangedHandler(func(args *widget.RadioGroupChangedEventArgs) {
			for idx, b := range buttons {
				if args.Active == b {
					tb.active = modes[idx]
					if onModeSelected != nil {
						onModeSelected(modes[idx])
					}
					return
				}
			}
		}),
	)

	tb.SetMode(initial)
	return toolbar, tb
}
