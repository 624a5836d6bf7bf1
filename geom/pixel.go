package geom

const (
	MinZoom     = 4
	MaxZoom     = 128
	DefaultZoom = 32
)

// ClampZoom keeps a zoom factor (pixels per tile) within [MinZoom, MaxZoom].
func ClampZoom(zoom int) int {
	if zoom < MinZoom {
		return MinZoom
	}
	if zoom > MaxZoom {
		return MaxZoom
	}
	return zoom
}

func TileToPixel(r TileRect, zoom int) PixelRect {
	zoom = ClampZoom(zoom)
	return PixelRect{
		X:      r.X * zoom,
		Y:      r.Y * zoom,
		Width:  r.Width * zoom,
		Height: r.Height * zoom,
	}
}

// PixelToTile resolves a pixel to the tile containing it. Any pixel inside a
// tile maps to that tile's coordinate, including at negative offsets.
func PixelToTile(px, py, zoom int) TileCoord {
	zoom = ClampZoom(zoom)
	return TileCoord{X: floorDiv(px, zoom), Y: floorDiv(py, zoom)}
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
