package mandel

import "errors"

// ErrAtRoot reports an attempt to zoom out past the initial viewport.
// The history is left unchanged.
var ErrAtRoot = errors.New("already at root viewport")

// History is the zoom trail, oldest first. It always holds at least the
// root view, so Current never fails. It is not safe for concurrent use;
// a single controller goroutine owns it, and render workers only ever
// see Viewport snapshots taken from it.
type History struct {
	stack []Viewport
}

// NewHistory starts a trail at the given root view.
func NewHistory(root Viewport) *History {
	return &History{stack: []Viewport{root}}
}

// Current returns the viewport on top of the stack.
func (h *History) Current() Viewport {
	return h.stack[len(h.stack)-1]
}

// ZoomIn pushes the next viewport.
func (h *History) ZoomIn(v Viewport) {
	h.stack = append(h.stack, v)
}

// ZoomOut discards the current viewport and returns the previous one.
// Returns ErrAtRoot, without mutating, when only the root remains.
func (h *History) ZoomOut() (Viewport, error) {
	if len(h.stack) == 1 {
		return Viewport{}, ErrAtRoot
	}
	h.stack = h.stack[:len(h.stack)-1]
	return h.Current(), nil
}

// Depth is the number of viewports on the trail.
func (h *History) Depth() int {
	return len(h.stack)
}
