package levels

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/milk9111/gridedit/geom"
)

var ErrInvalidSize = errors.New("levels: module size must be at least 1x1")

// Edge names one side of a module.
type Edge uint8

const (
	North Edge = iota
	East
	South
	West
)

var edgeNames = [...]string{"N", "E", "S", "W"}

func (e Edge) String() string {
	if int(e) < len(edgeNames) {
		return edgeNames[e]
	}
	return "?"
}

func (e Edge) MarshalText() ([]byte, error) {
	if int(e) >= len(edgeNames) {
		return nil, fmt.Errorf("levels: invalid edge %d", e)
	}
	return []byte(edgeNames[e]), nil
}

func (e *Edge) UnmarshalText(b []byte) error {
	edge, err := ParseEdge(string(b))
	if err != nil {
		return err
	}
	*e = edge
	return nil
}

func ParseEdge(s string) (Edge, error) {
	switch s {
	case "N", "n", "north":
		return North, nil
	case "E", "e", "east":
		return East, nil
	case "S", "s", "south":
		return South, nil
	case "W", "w", "west":
		return West, nil
	}
	return North, fmt.Errorf("levels: unknown edge %q", s)
}

// Orientation records, for each compass direction, which of the definition's
// original edges currently faces it. Index with North/East/South/West.
type Orientation [4]Edge

// Upright is the orientation of a freshly placed module.
var Upright = Orientation{North, East, South, West}

func (o Orientation) NorthEdge() Edge {
	return o[North]
}

// FacingOf returns the direction the definition's original edge now faces.
func (o Orientation) FacingOf(orig Edge) Edge {
	for dir, e := range o {
		if e == orig {
			return Edge(dir)
		}
	}
	return orig
}

// Valid reports whether o is a permutation of the four edges.
func (o Orientation) Valid() bool {
	var seen [4]bool
	for _, e := range o {
		if int(e) >= len(seen) || seen[e] {
			return false
		}
		seen[e] = true
	}
	return true
}

func (o Orientation) rotatedCW() Orientation {
	// the edge that faced west now faces north
	return Orientation{o[West], o[North], o[East], o[South]}
}

func (o Orientation) rotatedCCW() Orientation {
	return Orientation{o[East], o[South], o[West], o[North]}
}

// Module is one placed instance of a module definition.
type Module struct {
	ID         string
	Definition string
	Position   geom.TileCoord
	Width      int
	Height     int
	Facing     Orientation

	Selected    bool
	ToBeDeleted bool
	InHand      bool
}

// NewModule creates an upright module at pos. Sizes below 1x1 are refused.
func NewModule(def string, pos geom.TileCoord, width, height int) (*Module, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("%w: %s is %dx%d", ErrInvalidSize, def, width, height)
	}
	return &Module{
		ID:         uuid.NewString(),
		Definition: def,
		Position:   pos,
		Width:      width,
		Height:     height,
		Facing:     Upright,
	}, nil
}

// Rect is the occupied rectangle.
func (m *Module) Rect() geom.TileRect {
	return geom.TileRect{X: m.Position.X, Y: m.Position.Y, Width: m.Width, Height: m.Height}
}

func (m *Module) Contains(p geom.TileCoord) bool {
	return geom.Contains(m.Rect(), p)
}

// Clone returns an independent copy with a fresh ID.
func (m *Module) Clone() *Module {
	c := *m
	c.ID = uuid.NewString()
	return &c
}

func (m *Module) Translate(d geom.TileCoord) {
	m.Position = m.Position.Add(d)
}

func (m *Module) RotateCW() {
	m.Width, m.Height = m.Height, m.Width
	m.Facing = m.Facing.rotatedCW()
}

func (m *Module) RotateCCW() {
	m.Width, m.Height = m.Height, m.Width
	m.Facing = m.Facing.rotatedCCW()
}

// MirrorHorizontal flips the module left to right.
func (m *Module) MirrorHorizontal() {
	m.Facing[East], m.Facing[West] = m.Facing[West], m.Facing[East]
}

// MirrorVertical flips the module top to bottom.
func (m *Module) MirrorVertical() {
	m.Facing[North], m.Facing[South] = m.Facing[South], m.Facing[North]
}

// HasOpening reports whether one of the definition's openings (given in the
// definition's upright frame) currently faces dir.
func (m *Module) HasOpening(dir Edge, openings []Edge) bool {
	for _, e := range openings {
		if m.Facing.FacingOf(e) == dir {
			return true
		}
	}
	return false
}
