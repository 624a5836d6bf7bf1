package main

import (
	"image/color"

	"github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/colornames"
)

// Canvas styles. These are shared by every frame and never change.
var (
	canvasBackground  = color.RGBA{24, 24, 28, 255}
	gridColor         = color.RGBA{60, 60, 68, 255}
	shadowColor       = color.RGBA{0, 0, 0, 90}
	deleteOverlay     = color.RGBA{220, 40, 40, 140}
	selectionFill     = color.RGBA{30, 144, 255, 48}
	selectionStroke   = colornames.Dodgerblue
	selectedOutline   = colornames.Gold
	moduleOutline     = colornames.Black
	openingColor      = colornames.White
	missingDefinition = colornames.Magenta
)

// Chrome styles.
var (
	panelBackground   = color.RGBA{40, 40, 40, 255}
	toolbarBackground = color.RGBA{220, 220, 240, 255}
	labelColor        = &widget.LabelColor{Idle: colornames.White, Disabled: color.Gray{Y: 140}}
)

func solidNineSlice(c color.Color) *image.NineSlice {
	return image.NewNineSliceColor(c)
}

func newEditorTheme(fontFace *text.Face) *widget.Theme {
	listBackground := solidNineSlice(colornames.Gainsboro)
	return &widget.Theme{
		ListTheme: &widget.ListParams{
			EntryFace: fontFace,
			EntryColor: &widget.ListEntryColor{
				Unselected:          colornames.Black,
				Selected:            colornames.Navy,
				DisabledUnselected:  colornames.Gray,
				DisabledSelected:    colornames.Dimgray,
				SelectingBackground: colornames.Lightsteelblue,
				SelectedBackground:  colornames.Lightskyblue,
			},
			ScrollContainerImage: &widget.ScrollContainerImage{
				Idle: listBackground,
				Mask: listBackground,
			},
		},
		PanelTheme: &widget.PanelParams{
			BackgroundImage: solidNineSlice(panelBackground),
		},
		ButtonTheme: &widget.ButtonParams{
			Image: &widget.ButtonImage{
				Idle:    solidNineSlice(colornames.Darkgray),
				Hover:   solidNineSlice(colornames.Silver),
				Pressed: solidNineSlice(colornames.Slategray),
			},
			TextFace: fontFace,
			TextColor: &widget.ButtonTextColor{
				Idle: colornames.Black,
			},
		},
	}
}
