package mandel

import (
	"fmt"
	"math"
)

// Viewport is a square window into the complex plane tied to a square
// pixel raster. It is a value: zooming builds a new Viewport instead of
// mutating one, so renders in flight keep a consistent snapshot.
type Viewport struct {
	Corner complex128 // top-left of the window
	Side   float64    // side length in plane units
	Pixels int        // raster side length
}

// NewViewport validates the geometry. Side and Pixels must both be
// positive.
func NewViewport(corner complex128, side float64, pixels int) (Viewport, error) {
	if side <= 0 {
		return Viewport{}, fmt.Errorf("viewport side %v: want > 0", side)
	}
	if pixels <= 0 {
		return Viewport{}, fmt.Errorf("viewport pixels %d: want > 0", pixels)
	}
	return Viewport{Corner: corner, Side: side, Pixels: pixels}, nil
}

// RootViewport is the canonical whole-set view: corner (-2, 2i), side
// 4. Every zoom session starts here.
func RootViewport(pixels int) Viewport {
	return Viewport{Corner: complex(-2, 2), Side: 4, Pixels: pixels}
}

// Scale is the plane distance covered by one pixel.
func (v Viewport) Scale() float64 {
	return v.Side / float64(v.Pixels)
}

// PixelToComplex maps raster position (i, j) to the center of its
// pixel. Sampling at centers avoids biasing the image toward one edge.
// Raster rows grow downward while the imaginary axis grows upward, so j
// is subtracted.
func (v Viewport) PixelToComplex(i, j int) complex128 {
	d := v.Scale()
	return complex(
		real(v.Corner)+0.5*d+float64(i)*d,
		imag(v.Corner)-0.5*d-float64(j)*d,
	)
}

// CornerToComplex maps raster position (i, j) to its pixel's top-left
// corner rather than its center. Zoom selections anchor here so the new
// viewport starts exactly where the rubber band did.
func (v Viewport) CornerToComplex(i, j int) complex128 {
	d := v.Scale()
	return complex(
		real(v.Corner)+float64(i)*d,
		imag(v.Corner)-float64(j)*d,
	)
}

// GridRow produces the sample points of raster row j, left to right.
func (v Viewport) GridRow(j int) []complex128 {
	row := make([]complex128, v.Pixels)
	for i := range row {
		row[i] = v.PixelToComplex(i, j)
	}
	return row
}

// Grid materializes the full Pixels x Pixels sample matrix, indexed
// [row][column]. Renderers that walk rows should prefer GridRow.
func (v Viewport) Grid() [][]complex128 {
	grid := make([][]complex128, v.Pixels)
	for j := range grid {
		grid[j] = v.GridRow(j)
	}
	return grid
}

// PrecisionDigits is the number of fractional digits needed to tell
// adjacent pixels apart. Used for coordinate readouts only.
func (v Viewport) PrecisionDigits() int {
	return int(math.Abs(math.Floor(math.Log10(v.Scale()))))
}

// FormatPoint renders z at the viewport's precision, e.g.
// "(-0.743+0.131i)".
func (v Viewport) FormatPoint(z complex128) string {
	p := v.PrecisionDigits()
	sign := "+"
	if imag(z) < 0 {
		sign = ""
	}
	return fmt.Sprintf("(%.*f%s%.*fi)", p, real(z), sign, p, imag(z))
}
