package render

import (
	"errors"
	"testing"

	"github.com/thuswm/Mandelbrot/mandel"
)

func TestBufferSetAt(t *testing.T) {
	b := NewBuffer(4)

	c := mandel.RGB{R: 10, G: 20, B: 30}
	if err := b.Set(2, 3, c); err != nil {
		t.Fatalf("Set(2, 3): %v", err)
	}
	got, err := b.At(2, 3)
	if err != nil {
		t.Fatalf("At(2, 3): %v", err)
	}
	if got != c {
		t.Errorf("At(2, 3) = %+v, want %+v", got, c)
	}
}

func TestBufferBounds(t *testing.T) {
	b := NewBuffer(4)

	tests := []struct {
		name string
		i, j int
	}{
		{"negative column", -1, 0},
		{"negative row", 0, -1},
		{"column at edge", 4, 0},
		{"row at edge", 0, 4},
		{"far out", 100, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := b.Set(tt.i, tt.j, mandel.RGB{}); !errors.Is(err, ErrOutOfBounds) {
				t.Errorf("Set(%d, %d) = %v, want ErrOutOfBounds", tt.i, tt.j, err)
			}
			if _, err := b.At(tt.i, tt.j); !errors.Is(err, ErrOutOfBounds) {
				t.Errorf("At(%d, %d) = %v, want ErrOutOfBounds", tt.i, tt.j, err)
			}
		})
	}
}

func TestBufferByteLayout(t *testing.T) {
	// row-major RGBA, four bytes per pixel, opaque alpha
	b := NewBuffer(2)
	if err := b.Set(1, 0, mandel.RGB{R: 1, G: 2, B: 3}); err != nil {
		t.Fatal(err)
	}

	data := b.Bytes()
	if len(data) != 2*2*4 {
		t.Fatalf("len(Bytes()) = %d, want 16", len(data))
	}
	o := (0*2 + 1) * 4
	want := []byte{1, 2, 3, 0xff}
	for k, w := range want {
		if data[o+k] != w {
			t.Errorf("Bytes()[%d] = %d, want %d", o+k, data[o+k], w)
		}
	}
}
