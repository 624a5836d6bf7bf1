package levels

import "github.com/milk9111/gridedit/geom"

// BoundingBoxOrigin returns the min corner of the modules' anchor points
// (their north-west corners). ok is false for an empty set.
func BoundingBoxOrigin(mods []*Module) (geom.TileCoord, bool) {
	lo, _, ok := anchorBounds(mods)
	return lo, ok
}

func anchorBounds(mods []*Module) (lo, hi geom.TileCoord, ok bool) {
	if len(mods) == 0 {
		return lo, hi, false
	}
	lo, hi = mods[0].Position, mods[0].Position
	for _, m := range mods[1:] {
		p := m.Position
		if p.X < lo.X {
			lo.X = p.X
		}
		if p.Y < lo.Y {
			lo.Y = p.Y
		}
		if p.X > hi.X {
			hi.X = p.X
		}
		if p.Y > hi.Y {
			hi.Y = p.Y
		}
	}
	return lo, hi, true
}

// RotateGroupCW turns the modules a quarter turn clockwise as one rigid body.
func RotateGroupCW(mods []*Module) {
	rotateGroup(mods, true)
}

// RotateGroupCCW turns the modules a quarter turn counter-clockwise as one
// rigid body.
func RotateGroupCCW(mods []*Module) {
	rotateGroup(mods, false)
}

func rotateGroup(mods []*Module, clockwise bool) {
	oldMin, oldMax, ok := anchorBounds(mods)
	if !ok {
		return
	}
	pivot := oldMin.Vector().Add(oldMax.Vector()).Mult(0.5)

	for _, m := range mods {
		// The corner that becomes the new north-west corner: south-west for a
		// clockwise turn, north-east for a counter-clockwise one.
		corner := geom.TileCoord{X: m.Position.X, Y: m.Position.Y + m.Height}
		if !clockwise {
			corner = geom.TileCoord{X: m.Position.X + m.Width, Y: m.Position.Y}
		}
		m.Position = geom.Snap(geom.RotateQuarter(corner.Vector(), pivot, clockwise))
		if clockwise {
			m.RotateCW()
		} else {
			m.RotateCCW()
		}
	}

	// Rounding the rotated corners shifts the whole group; pin the bounding
	// box origin back where it was so repeated turns do not walk.
	newMin, _, _ := anchorBounds(mods)
	delta := newMin.Sub(oldMin)
	for _, m := range mods {
		m.Position = m.Position.Sub(delta)
	}
}

// MirrorGroupHorizontal flips each module left to right in place.
func MirrorGroupHorizontal(mods []*Module) {
	for _, m := range mods {
		m.MirrorHorizontal()
	}
}

// MirrorGroupVertical flips each module top to bottom in place.
func MirrorGroupVertical(mods []*Module) {
	for _, m := range mods {
		m.MirrorVertical()
	}
}
