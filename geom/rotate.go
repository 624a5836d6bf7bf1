package geom

import (
	"math"

	"github.com/jakecoffman/cp"
)

var (
	quarterCW  = cp.ForAngle(math.Pi / 2)
	quarterCCW = cp.ForAngle(-math.Pi / 2)
)

// RotateQuarter turns p by 90 degrees around pivot. Tile space is y-down, so
// a positive angle is clockwise on screen.
func RotateQuarter(p, pivot cp.Vector, clockwise bool) cp.Vector {
	rot := quarterCCW
	if clockwise {
		rot = quarterCW
	}
	return p.Sub(pivot).Rotate(rot).Add(pivot)
}

// Snap rounds a point to the nearest tile, halves rounding up so that every
// point of a rigid group snaps in the same direction. Inputs are expected on
// the half-tile lattice; they are first pulled onto it to drop float noise
// from the rotation.
func Snap(v cp.Vector) TileCoord {
	return TileCoord{
		X: snapAxis(v.X),
		Y: snapAxis(v.Y),
	}
}

func snapAxis(f float64) int {
	half := math.Round(f*2) / 2
	return int(math.Floor(half + 0.5))
}

func (c TileCoord) Vector() cp.Vector {
	return cp.Vector{X: float64(c.X), Y: float64(c.Y)}
}
