package editor

// Mode is the active editing mode of a Session.
type Mode int

const (
	ModeSelect Mode = iota
	ModeDraw
	ModePaint
	ModeErase
	ModeMove
)

func (m Mode) String() string {
	switch m {
	case ModeSelect:
		return "Select"
	case ModeDraw:
		return "Draw"
	case ModePaint:
		return "Paint"
	case ModeErase:
		return "Erase"
	case ModeMove:
		return "Move"
	default:
		return "Unknown"
	}
}

// Modes lists every mode in toolbar order.
func Modes() []Mode {
	return []Mode{ModeSelect, ModeDraw, ModePaint, ModeErase, ModeMove}
}

// ParseMode resolves a mode name as produced by String.
func ParseMode(s string) (Mode, bool) {
	for _, m := range Modes() {
		if m.String() == s {
			return m, true
		}
	}
	return ModeSelect, false
}
