package mandel

import (
	"math"
	"testing"
)

func TestNewViewportValidation(t *testing.T) {
	tests := []struct {
		name    string
		side    float64
		pixels  int
		wantErr bool
	}{
		{"valid", 4, 500, false},
		{"tiny side", 1e-12, 2, false},
		{"zero side", 0, 500, true},
		{"negative side", -1, 500, true},
		{"zero pixels", 4, 0, true},
		{"negative pixels", 4, -5, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewViewport(complex(-2, 2), tt.side, tt.pixels)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewViewport(side=%v, pixels=%d) err = %v, wantErr %v", tt.side, tt.pixels, err, tt.wantErr)
			}
		})
	}
}

func TestViewportScale(t *testing.T) {
	tests := []struct {
		side   float64
		pixels int
		want   float64
	}{
		{4, 500, 0.008},
		{4, 2, 2},
		{1, 4, 0.25},
		{0.25, 500, 0.0005},
	}
	for _, tt := range tests {
		v := Viewport{Corner: complex(-2, 2), Side: tt.side, Pixels: tt.pixels}
		if got := v.Scale(); got != tt.want {
			t.Errorf("Scale() with side %v, pixels %d = %v, want %v", tt.side, tt.pixels, got, tt.want)
		}
	}
}

func TestPixelToComplexCenters(t *testing.T) {
	// the 2x2 root view samples the centers of its four quadrants
	v := RootViewport(2)

	tests := []struct {
		i, j int
		want complex128
	}{
		{0, 0, complex(-1, 1)},
		{1, 0, complex(1, 1)},
		{0, 1, complex(-1, -1)},
		{1, 1, complex(1, -1)},
	}
	for _, tt := range tests {
		if got := v.PixelToComplex(tt.i, tt.j); got != tt.want {
			t.Errorf("PixelToComplex(%d, %d) = %v, want %v", tt.i, tt.j, got, tt.want)
		}
	}
}

func TestCornerToComplex(t *testing.T) {
	v := Viewport{Corner: complex(-2, 2), Side: 4, Pixels: 500}

	if got := v.CornerToComplex(0, 0); got != v.Corner {
		t.Errorf("CornerToComplex(0, 0) = %v, want %v", got, v.Corner)
	}
	// 100 pixels at scale 0.008 cover 0.8 plane units
	if got, want := v.CornerToComplex(100, 100), complex(-1.2, 1.2); got != want {
		t.Errorf("CornerToComplex(100, 100) = %v, want %v", got, want)
	}
}

func TestGridMatchesPixelToComplex(t *testing.T) {
	v := Viewport{Corner: complex(-0.75, 0.25), Side: 0.5, Pixels: 5}
	grid := v.Grid()

	if len(grid) != v.Pixels {
		t.Fatalf("len(grid) = %d, want %d", len(grid), v.Pixels)
	}
	for j, row := range grid {
		if len(row) != v.Pixels {
			t.Fatalf("len(grid[%d]) = %d, want %d", j, len(row), v.Pixels)
		}
		for i, c := range row {
			if want := v.PixelToComplex(i, j); c != want {
				t.Errorf("grid[%d][%d] = %v, want %v", j, i, c, want)
			}
		}
	}
}

func TestGridRowsDescendImaginaryAxis(t *testing.T) {
	v := RootViewport(8)
	for j := 1; j < v.Pixels; j += 1 {
		upper := v.PixelToComplex(0, j-1)
		lower := v.PixelToComplex(0, j)
		if imag(lower) >= imag(upper) {
			t.Errorf("row %d imag %v not below row %d imag %v", j, imag(lower), j-1, imag(upper))
		}
	}
}

func TestPrecisionDigits(t *testing.T) {
	tests := []struct {
		side   float64
		pixels int
		want   int
	}{
		{4, 500, 3},   // scale 0.008
		{4, 4, 0},     // scale 1
		{2, 4, 1},     // scale 0.5
		{4e-6, 400, 8}, // scale 1e-8
	}
	for _, tt := range tests {
		v := Viewport{Corner: 0, Side: tt.side, Pixels: tt.pixels}
		if got := v.PrecisionDigits(); got != tt.want {
			t.Errorf("PrecisionDigits() at scale %v = %d, want %d", v.Scale(), got, tt.want)
		}
	}
}

func TestFormatPoint(t *testing.T) {
	v := Viewport{Corner: complex(-2, 2), Side: 4, Pixels: 500} // 3 digits

	tests := []struct {
		z    complex128
		want string
	}{
		{complex(-0.5, 0.75), "(-0.500+0.750i)"},
		{complex(0.5, -0.75), "(0.500-0.750i)"},
		{complex(0, 0), "(0.000+0.000i)"},
	}
	for _, tt := range tests {
		if got := v.FormatPoint(tt.z); got != tt.want {
			t.Errorf("FormatPoint(%v) = %q, want %q", tt.z, got, tt.want)
		}
	}
}

func TestScaleRoundTrip(t *testing.T) {
	// side / pixels must be exact division, not accumulated stepping
	v := Viewport{Corner: complex(-2, 2), Side: 4, Pixels: 7}
	if got, want := v.Scale(), 4.0/7.0; math.Abs(got-want) != 0 {
		t.Errorf("Scale() = %v, want %v", got, want)
	}
}
