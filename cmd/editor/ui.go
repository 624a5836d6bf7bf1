package main

import (
	"bytes"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/gridedit/editor"
	"golang.org/x/image/font/gofont/goregular"
)

const leftPanelWidth = 220

// uiHandlers are the callbacks the chrome raises into the game.
type uiHandlers struct {
	onModeSelected    func(m editor.Mode)
	onLayerSelected   func(idx int)
	onNewLayer        func()
	onDeleteLayer     func(idx int)
	onMoveLayerUp     func(idx int)
	onMoveLayerDown   func(idx int)
	onToggleVisible   func(idx int)
	onToggleShadows   func(idx int)
	onPaletteSelected func(entry PaletteEntry)
	onOpen            func()
	onSave            func()
}

// EditorUI bundles the widgets the game updates after construction.
type EditorUI struct {
	UI            *ebitenui.UI
	ToolBar       *ToolBar
	LayerPanel    *LayerPanel
	FileNameInput *widget.TextInput
	Palette       *widget.List
}

func BuildEditorUI(h uiHandlers, palette []any, initialMode editor.Mode) *EditorUI {
	ui := &ebitenui.UI{}

	s, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		panic("Failed to load font: " + err.Error())
	}

	var fontFace text.Face = &text.GoTextFace{Source: s, Size: 14}
	ui.PrimaryTheme = newEditorTheme(&fontFace)

	layerPanel := NewLayerPanel()
	layerPanel.onNew = h.onNewLayer
	layerPanel.onDelete = h.onDeleteLayer
	layerPanel.onMoveUp = h.onMoveLayerUp
	layerPanel.onMoveDown = h.onMoveLayerDown
	layerPanel.onVisible = h.onToggleVisible
	layerPanel.onShadows = h.onToggleShadows

	leftPanel := widget.NewContainer(
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(leftPanelWidth, 400),
		),
		widget.ContainerOpts.BackgroundImage(solidNineSlice(panelBackground)),
		widget.ContainerOpts.Layout(
			widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionVertical),
				widget.RowLayoutOpts.Spacing(8),
			),
		),
	)
	fileNameInput := addFileNameSection(leftPanel, ui.PrimaryTheme, &fontFace, h.onOpen, h.onSave)
	addLayersSection(leftPanel, ui.PrimaryTheme, &fontFace, layerPanel, h.onLayerSelected)
	paletteList := addPaletteSection(leftPanel, &fontFace, palette, h.onPaletteSelected)

	toolbarContainer, toolBar := buildToolBar(ui.PrimaryTheme, &fontFace, h.onModeSelected, initialMode)

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	leftPanel.GetWidget().LayoutData = widget.AnchorLayoutData{
		HorizontalPosition: widget.AnchorLayoutPositionStart,
		VerticalPosition:   widget.AnchorLayoutPositionCenter,
		StretchVertical:    true,
	}
	toolbarContainer.GetWidget().LayoutData = widget.AnchorLayoutData{
		HorizontalPosition: widget.AnchorLayoutPositionCenter,
		VerticalPosition:   widget.AnchorLayoutPositionStart,
	}
	root.AddChild(leftPanel)
	root.AddChild(toolbarContainer)
	ui.Container = root

	return &EditorUI{
		UI:            ui,
		ToolBar:       toolBar,
		LayerPanel:    layerPanel,
		FileNameInput: fileNameInput,
		Palette:       paletteList,
	}
}
