package mandel

import "errors"

// ErrDegenerateSelection reports a drag with zero extent. The gesture
// is discarded; a zero-area viewport must never enter the history.
var ErrDegenerateSelection = errors.New("degenerate selection")

// PixelPoint is a position in raster coordinates.
type PixelPoint struct {
	X, Y int
}

// PixelSquare is an axis-aligned square in raster coordinates. Min is
// the top-left corner.
type PixelSquare struct {
	Min   PixelPoint
	Width int
}

// NormalizeSelection turns a free-form drag into a square anchored at
// origin. The side is the larger of |dx| and |dy|, and the square grows
// in the drag direction on each axis independently, so it always hugs
// the pointer's quadrant.
func NormalizeSelection(origin, current PixelPoint) PixelSquare {
	dx := current.X - origin.X
	dy := current.Y - origin.Y
	d := max(abs(dx), abs(dy))

	to := origin
	if dx >= 0 {
		to.X += d
	} else {
		to.X -= d
	}
	if dy >= 0 {
		to.Y += d
	} else {
		to.Y -= d
	}

	return PixelSquare{
		Min:   PixelPoint{X: min(origin.X, to.X), Y: min(origin.Y, to.Y)},
		Width: d,
	}
}

// ToViewport maps the square into v's plane coordinates as the next
// zoom target. The raster resolution carries over from v.
func (s PixelSquare) ToViewport(v Viewport) (Viewport, error) {
	if s.Width == 0 {
		return Viewport{}, ErrDegenerateSelection
	}
	return Viewport{
		Corner: v.CornerToComplex(s.Min.X, s.Min.Y),
		Side:   float64(s.Width) * v.Scale(),
		Pixels: v.Pixels,
	}, nil
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
