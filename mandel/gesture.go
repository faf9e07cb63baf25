package mandel

// GestureTracker interprets raw press/move/release pointer positions as
// a rubber-band zoom drag. It has two states, idle and dragging; a
// press starts a drag and a release ends it.
type GestureTracker struct {
	dragging bool
	origin   PixelPoint
	square   PixelSquare
}

// Press starts a drag at p. A press during an active drag restarts the
// drag from p.
func (g *GestureTracker) Press(p PixelPoint) {
	g.dragging = true
	g.origin = p
	g.square = NormalizeSelection(p, p)
}

// Move updates the live selection and returns the normalized square for
// rubber-band preview. ok is false when no drag is active, in which
// case the move is ignored.
func (g *GestureTracker) Move(p PixelPoint) (square PixelSquare, ok bool) {
	if !g.dragging {
		return PixelSquare{}, false
	}
	g.square = NormalizeSelection(g.origin, p)
	return g.square, true
}

// Release ends the drag and returns the final square. ok is false when
// no drag was active. The square may still be degenerate; ToViewport
// rejects that case.
func (g *GestureTracker) Release(p PixelPoint) (square PixelSquare, ok bool) {
	if !g.dragging {
		return PixelSquare{}, false
	}
	g.dragging = false
	g.square = NormalizeSelection(g.origin, p)
	return g.square, true
}

// Dragging reports whether a drag is in progress.
func (g *GestureTracker) Dragging() bool {
	return g.dragging
}
