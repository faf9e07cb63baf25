// Package render turns a viewport into a colored pixel buffer on a
// pool of row workers, with per-pixel progress reporting and
// cooperative cancellation.
package render

import (
	"errors"
	"fmt"

	"github.com/thuswm/Mandelbrot/mandel"
)

// ErrOutOfBounds reports a pixel index outside the buffer. It signals a
// logic bug in the caller and is never clamped away.
var ErrOutOfBounds = errors.New("pixel index out of bounds")

// Buffer is a square RGBA raster laid out the way streaming textures
// want it: row-major, four bytes per pixel in R, G, B, A order.
type Buffer struct {
	pixels int
	data   []byte
}

// NewBuffer allocates a pixels x pixels buffer, fully transparent.
func NewBuffer(pixels int) *Buffer {
	return &Buffer{
		pixels: pixels,
		data:   make([]byte, pixels*pixels*4),
	}
}

// Pixels is the raster side length.
func (b *Buffer) Pixels() int {
	return b.pixels
}

// Bytes exposes the raw pixel data for texture upload. The slice aliases
// the buffer; callers must not hold it across a new render.
func (b *Buffer) Bytes() []byte {
	return b.data
}

// Set paints pixel (i, j) opaque with c.
func (b *Buffer) Set(i, j int, c mandel.RGB) error {
	if i < 0 || i >= b.pixels || j < 0 || j >= b.pixels {
		return fmt.Errorf("%w: (%d, %d) in %dx%d", ErrOutOfBounds, i, j, b.pixels, b.pixels)
	}
	o := (j*b.pixels + i) * 4
	b.data[o] = c.R
	b.data[o+1] = c.G
	b.data[o+2] = c.B
	b.data[o+3] = 0xff
	return nil
}

// At reads back the color of pixel (i, j).
func (b *Buffer) At(i, j int) (mandel.RGB, error) {
	if i < 0 || i >= b.pixels || j < 0 || j >= b.pixels {
		return mandel.RGB{}, fmt.Errorf("%w: (%d, %d) in %dx%d", ErrOutOfBounds, i, j, b.pixels, b.pixels)
	}
	o := (j*b.pixels + i) * 4
	return mandel.RGB{R: b.data[o], G: b.data[o+1], B: b.data[o+2]}, nil
}
