package mandel

import (
	"errors"
	"fmt"
	"math"
)

// RGB is one color table entry.
type RGB struct {
	R, G, B uint8
}

// ErrColorOutOfRange reports a lookup past the end of a color table. It
// means the caller's iteration cap and the table depth disagree, which
// is a contract violation, so it is surfaced instead of clamped.
var ErrColorOutOfRange = errors.New("color index out of range")

// ColorTable maps an escape iteration count minus one to a color. The
// last entry is always black, the color of points that never escaped.
type ColorTable []RGB

// fadeFloor is the darkness the lowest table entries start from.
const fadeFloor = 0.05

// GenerateColorMap builds a table of depth colors: blue sweeping to
// green across the top half, green to red across the bottom half.
// intensity sets the peak channel value. depth must be at least 2 and
// intensity in [1,255].
func GenerateColorMap(depth, intensity int) (ColorTable, error) {
	if depth < 2 {
		return nil, fmt.Errorf("color map depth %d: want at least 2", depth)
	}
	if intensity < 1 || intensity > 255 {
		return nil, fmt.Errorf("color map intensity %d: want 1..255", intensity)
	}

	table := make(ColorTable, 0, depth)
	topSize := depth / 2
	bottomSize := depth - topSize

	// The deepest colors wrap back toward blue, so the first entries
	// ramp up from near black to hide the seam.
	fadeSpan := topSize / 3

	for i := 0; i < topSize; i += 1 {
		alpha := float64(i) / float64(topSize) * (math.Pi / 2)
		darkness := 1.0
		if i < fadeSpan {
			darkness = fadeFloor + (1-fadeFloor)*float64(i)/float64(fadeSpan)
		}
		table = append(table, RGB{
			G: channel(float64(intensity) * math.Sin(alpha) * darkness),
			B: channel(float64(intensity) * math.Cos(alpha) * darkness),
		})
	}
	for i := 0; i < bottomSize; i += 1 {
		alpha := float64(i) / float64(bottomSize) * (math.Pi / 2)
		table = append(table, RGB{
			R: channel(float64(intensity) * math.Sin(alpha)),
			G: channel(float64(intensity) * math.Cos(alpha)),
		})
	}

	// black sentinel for points that reached maxDepth without escaping
	table[depth-1] = RGB{}
	return table, nil
}

func channel(v float64) uint8 {
	return uint8(math.Round(v))
}

// Color returns entry n. Callers hold an iteration count in
// [1, Depth()] and pass count-1, so valid indices are [0, Depth()).
func (t ColorTable) Color(n int) (RGB, error) {
	if n < 0 || n >= len(t) {
		return RGB{}, fmt.Errorf("%w: index %d, depth %d", ErrColorOutOfRange, n, len(t))
	}
	return t[n], nil
}

// Depth is the number of entries, equal to the iteration cap the table
// serves.
func (t ColorTable) Depth() int {
	return len(t)
}
