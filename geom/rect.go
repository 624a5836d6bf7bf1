package geom

// TileCoord is a tile position on the grid.
type TileCoord struct {
	X, Y int
}

func (c TileCoord) Add(o TileCoord) TileCoord {
	return TileCoord{X: c.X + o.X, Y: c.Y + o.Y}
}

func (c TileCoord) Sub(o TileCoord) TileCoord {
	return TileCoord{X: c.X - o.X, Y: c.Y - o.Y}
}

// TileRect is an axis-aligned rectangle in tile units. X,Y is the top-left
// (north-west) tile.
type TileRect struct {
	X, Y          int
	Width, Height int
}

// PixelRect is a TileRect scaled to screen pixels.
type PixelRect struct {
	X, Y          int
	Width, Height int
}

func (r TileRect) Valid() bool {
	return r.Width >= 1 && r.Height >= 1
}

func (r TileRect) Origin() TileCoord {
	return TileCoord{X: r.X, Y: r.Y}
}

// Area returns the number of tiles covered by r.
func (r TileRect) Area() int {
	if !r.Valid() {
		return 0
	}
	return r.Width * r.Height
}

// Intersects reports whether r and other share at least one tile.
func (r TileRect) Intersects(other TileRect) bool {
	return r.X < other.X+other.Width &&
		r.X+r.Width > other.X &&
		r.Y < other.Y+other.Height &&
		r.Y+r.Height > other.Y
}

// Contains uses the half-open convention: the right and bottom edges are
// outside the rectangle.
func Contains(r TileRect, p TileCoord) bool {
	return p.X >= r.X && p.X < r.X+r.Width &&
		p.Y >= r.Y && p.Y < r.Y+r.Height
}

// Overlaps is true when the intersection of a and b has a positive area.
func Overlaps(a, b TileRect) bool {
	if !a.Valid() || !b.Valid() {
		return false
	}
	return a.Intersects(b)
}

// RectFromCorners builds the inclusive rectangle spanned by two tiles,
// normalized so the origin is always the min corner.
func RectFromCorners(a, b TileCoord) TileRect {
	x0, x1 := a.X, b.X
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	y0, y1 := a.Y, b.Y
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	return TileRect{X: x0, Y: y0, Width: x1 - x0 + 1, Height: y1 - y0 + 1}
}
