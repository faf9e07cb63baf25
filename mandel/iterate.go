// Package mandel holds the numeric core of the Mandelbrot explorer:
// the escape-time evaluator, the color table, viewport geometry, the
// zoom history and the drag-selection machinery. It is display-agnostic
// and free of side effects; the binaries under cmd wire it to a screen.
package mandel

// Iterate runs the escape-time loop z = z*z + c and returns the number
// of iterations before |z| exceeds 2, capped at maxDepth.
//
// The count advances before z does, so the result is always in
// [1, maxDepth]: even a point outside the radius-2 disk costs one
// iteration. A point that never escapes returns exactly maxDepth and is
// treated as inside the set by convention.
func Iterate(c complex128, maxDepth int) int {
	cre, cim := real(c), imag(c)
	var zre, zim float64
	n := 0
	// compare squared magnitude against 4 to skip the sqrt
	for zre*zre+zim*zim < 4 && n < maxDepth {
		n += 1
		zre, zim = zre*zre-zim*zim+cre, 2*zre*zim+cim
	}
	return n
}
