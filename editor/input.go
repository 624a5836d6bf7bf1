package editor

// Button identifies a pointer button.
type Button int

const (
	ButtonPrimary Button = iota
	ButtonSecondary
	ButtonMiddle
)

// Mods is a bit set of modifier keys held during an event.
type Mods uint8

const (
	// ModPipette picks up the module under the pointer instead of stamping.
	ModPipette Mods = 1 << iota
	// ModZoom turns wheel motion into zoom steps.
	ModZoom
)

func (m Mods) Has(flag Mods) bool {
	return m&flag != 0
}

// Key identifies an editor command key. The input source maps physical keys
// onto these.
type Key int

const (
	KeyNone Key = iota
	KeyCancel
	KeyDelete
	KeyRotateCW
	KeyRotateCCW
	KeyMirrorHorizontal
	KeyMirrorVertical
	KeyPipette
	KeyModeSelect
	KeyModeDraw
	KeyModePaint
	KeyModeErase
	KeyModeMove
)

// PointerEvent carries a pointer position in canvas pixels.
type PointerEvent struct {
	Button Button
	X, Y   int
	Mods   Mods
}

// WheelEvent carries a wheel step. Positive DeltaY scrolls up.
type WheelEvent struct {
	DeltaY float64
	Mods   Mods
}

// ZoomStep is the number of pixels per tile added or removed by one wheel
// notch.
const ZoomStep = 4
