package geom

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"
)

func TestContainsHalfOpen(t *testing.T) {
	r := TileRect{X: 3, Y: 3, Width: 2, Height: 2}
	cases := []struct {
		name string
		p    TileCoord
		want bool
	}{
		{"origin", TileCoord{3, 3}, true},
		{"inner_corner", TileCoord{4, 4}, true},
		{"right_edge", TileCoord{5, 3}, false},
		{"bottom_edge", TileCoord{3, 5}, false},
		{"outside_corner", TileCoord{5, 5}, false},
		{"left_of", TileCoord{2, 3}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, Contains(r, c.p))
		})
	}
}

func TestContainsMatchesUnitOverlap(t *testing.T) {
	rects := []TileRect{
		{X: 0, Y: 0, Width: 1, Height: 1},
		{X: -2, Y: 1, Width: 3, Height: 2},
		{X: 5, Y: -4, Width: 1, Height: 6},
	}
	for _, r := range rects {
		for x := -6; x <= 8; x++ {
			for y := -6; y <= 8; y++ {
				p := TileCoord{X: x, Y: y}
				unit := TileRect{X: x, Y: y, Width: 1, Height: 1}
				assert.Equal(t, Contains(r, p), Overlaps(r, unit), "rect %+v point %+v", r, p)
			}
		}
	}
}

func TestOverlaps(t *testing.T) {
	a := TileRect{X: 0, Y: 0, Width: 3, Height: 3}
	assert.True(t, Overlaps(a, TileRect{X: 2, Y: 2, Width: 2, Height: 2}))
	assert.False(t, Overlaps(a, TileRect{X: 3, Y: 0, Width: 1, Height: 3}), "touching edges share no area")
	assert.False(t, Overlaps(a, TileRect{X: 1, Y: 1, Width: 0, Height: 1}), "degenerate rect")
	assert.True(t, Overlaps(a, TileRect{X: -5, Y: 1, Width: 20, Height: 1}))
}

func TestRectFromCornersNormalizes(t *testing.T) {
	want := TileRect{X: 0, Y: 0, Width: 3, Height: 3}
	assert.Equal(t, want, RectFromCorners(TileCoord{0, 0}, TileCoord{2, 2}))
	assert.Equal(t, want, RectFromCorners(TileCoord{2, 2}, TileCoord{0, 0}))
	assert.Equal(t, want, RectFromCorners(TileCoord{2, 0}, TileCoord{0, 2}))
	assert.Equal(t, TileRect{X: 4, Y: 4, Width: 1, Height: 1}, RectFromCorners(TileCoord{4, 4}, TileCoord{4, 4}))
}

func TestPixelToTileTruncatesTowardTopLeft(t *testing.T) {
	cases := []struct {
		px, py, zoom int
		want         TileCoord
	}{
		{0, 0, 32, TileCoord{0, 0}},
		{31, 31, 32, TileCoord{0, 0}},
		{32, 63, 32, TileCoord{1, 1}},
		{-1, -1, 32, TileCoord{-1, -1}},
		{-32, -33, 32, TileCoord{-1, -2}},
		{100, 7, 16, TileCoord{6, 0}},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, PixelToTile(c.px, c.py, c.zoom), "%d,%d@%d", c.px, c.py, c.zoom)
	}
}

func TestTileToPixelRoundTrip(t *testing.T) {
	r := TileRect{X: 2, Y: -1, Width: 3, Height: 2}
	px := TileToPixel(r, 16)
	assert.Equal(t, PixelRect{X: 32, Y: -16, Width: 48, Height: 32}, px)
	for dx := 0; dx < 16; dx++ {
		assert.Equal(t, TileCoord{2, -1}, PixelToTile(px.X+dx, px.Y+dx, 16))
	}
}

func TestClampZoom(t *testing.T) {
	assert.Equal(t, MinZoom, ClampZoom(0))
	assert.Equal(t, MinZoom, ClampZoom(-10))
	assert.Equal(t, MaxZoom, ClampZoom(1000))
	assert.Equal(t, 20, ClampZoom(20))
	// out-of-range zoom is clamped rather than dividing by zero
	assert.Equal(t, TileCoord{2, 0}, PixelToTile(8, 0, 0))
}

func TestRotateQuarterAndSnap(t *testing.T) {
	pivot := cp.Vector{X: 0.5, Y: 0.5}
	p := cp.Vector{X: 2, Y: 0}
	cw := RotateQuarter(p, pivot, true)
	assert.Equal(t, TileCoord{1, 2}, Snap(cw))
	back := RotateQuarter(cw, pivot, false)
	assert.Equal(t, TileCoord{2, 0}, Snap(back))

	// halves snap the same way on both sides of zero
	assert.Equal(t, TileCoord{0, 1}, Snap(cp.Vector{X: -0.5, Y: 0.5}))
	assert.Equal(t, TileCoord{-1, 0}, Snap(cp.Vector{X: -1.5000000000001, Y: -0.4999999999999}))
}
