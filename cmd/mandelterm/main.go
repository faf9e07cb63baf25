// Command mandelterm explores the Mandelbrot set in a terminal. Cells
// are painted as half blocks, so every character cell carries two
// pixels vertically. Drag with the left button to zoom in, press u or
// right-click to zoom out, r to re-render, q or escape to quit.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"

	"github.com/thuswm/Mandelbrot/mandel"
	"github.com/thuswm/Mandelbrot/render"
)

type renderResult struct {
	generation uint64
	buf        *render.Buffer
	err        error
}

type termApp struct {
	screen   tcell.Screen
	engine   *render.Engine
	table    mandel.ColorTable
	maxDepth int

	history *mandel.History
	gesture mandel.GestureTracker
	band    mandel.PixelSquare
	pointer string

	generation uint64
	cancel     context.CancelFunc
	results    chan renderResult
	completed  atomic.Int64
	total      int64
	rendering  bool

	buf         *render.Buffer
	prevButtons tcell.ButtonMask
}

func main() {
	maxDepth := flag.Int("depth", 200, "iteration cap and color table size")
	intensity := flag.Int("intensity", 200, "color intensity, 1..255")
	workers := flag.Int("workers", 0, "render workers, 0 for one per CPU")
	flag.Parse()

	table, err := mandel.GenerateColorMap(*maxDepth, *intensity)
	if err != nil {
		log.Fatalf("color map: %v", err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("screen: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("screen init: %v", err)
	}
	screen.EnableMouse()
	screen.HideCursor()

	a := &termApp{
		screen:   screen,
		engine:   render.NewEngine(*workers),
		table:    table,
		maxDepth: *maxDepth,
		results:  make(chan renderResult, 4),
	}

	// one status row at the bottom, two pixels per cell elsewhere
	w, h := screen.Size()
	pixels := min(w, (h-1)*2)
	if pixels < 2 {
		screen.Fini()
		fmt.Fprintln(os.Stderr, "terminal too small")
		os.Exit(1)
	}
	a.history = mandel.NewHistory(mandel.RootViewport(pixels))

	a.run()
	screen.Fini()
}

func (a *termApp) run() {
	a.startRender(a.history.Current())

	for {
		a.draw()
		ev := a.screen.PollEvent()

		switch t := ev.(type) {
		case *tcell.EventKey:
			switch {
			case t.Key() == tcell.KeyEscape || t.Rune() == 'q':
				if a.cancel != nil {
					a.cancel()
				}
				return
			case t.Rune() == 'u':
				if prev, err := a.history.ZoomOut(); err == nil {
					a.startRender(prev)
				}
			case t.Rune() == 'r':
				a.startRender(a.history.Current())
			}
		case *tcell.EventMouse:
			a.handleMouse(t)
		case *tcell.EventResize:
			a.screen.Sync()
		case *tcell.EventInterrupt:
			a.drainResults()
		}
	}
}

// handleMouse reconstructs press/drag/release from button mask edges,
// since tcell reports state rather than transitions.
func (a *termApp) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	p := mandel.PixelPoint{X: x, Y: y * 2}
	buttons := ev.Buttons()
	pressed := buttons &^ a.prevButtons
	released := a.prevButtons &^ buttons
	a.prevButtons = buttons

	vp := a.history.Current()
	if p.X < vp.Pixels && p.Y < vp.Pixels {
		a.pointer = vp.FormatPoint(vp.PixelToComplex(p.X, p.Y))
	}

	switch {
	case pressed&tcell.Button1 != 0:
		a.gesture.Press(p)
	case released&tcell.Button1 != 0:
		square, ok := a.gesture.Release(p)
		if !ok {
			return
		}
		next, err := square.ToViewport(vp)
		if err != nil {
			return // degenerate drag, ignore
		}
		a.history.ZoomIn(next)
		a.startRender(next)
	case pressed&tcell.Button2 != 0:
		if prev, err := a.history.ZoomOut(); err == nil {
			a.startRender(prev)
		}
	case buttons&tcell.Button1 != 0:
		if square, ok := a.gesture.Move(p); ok {
			a.band = square
		}
	}
}

func (a *termApp) startRender(vp mandel.Viewport) {
	if a.cancel != nil {
		a.cancel()
	}
	a.generation += 1
	gen := a.generation
	a.completed.Store(0)
	a.total = int64(vp.Pixels) * int64(vp.Pixels)
	a.rendering = true

	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel

	var lastPercent atomic.Int64
	go func() {
		buf, err := a.engine.Render(ctx, vp, a.maxDepth, a.table,
			func(completed, total int64) {
				a.completed.Store(max(a.completed.Load(), completed))
				// wake the event loop once per whole percent
				pct := completed * 100 / total
				if pct > lastPercent.Swap(pct) {
					a.screen.PostEvent(tcell.NewEventInterrupt(nil))
				}
			})
		a.results <- renderResult{generation: gen, buf: buf, err: err}
		a.screen.PostEvent(tcell.NewEventInterrupt(nil))
	}()
}

func (a *termApp) drainResults() {
	for {
		select {
		case r := <-a.results:
			if r.generation != a.generation {
				continue // superseded
			}
			a.rendering = false
			if r.err != nil {
				if !errors.Is(r.err, context.Canceled) {
					log.Printf("render: %v", r.err)
				}
				continue
			}
			a.buf = r.buf
		default:
			return
		}
	}
}

func (a *termApp) draw() {
	if a.buf != nil {
		side := a.buf.Pixels()
		for cy := 0; cy < side/2; cy += 1 {
			for cx := 0; cx < side; cx += 1 {
				upper, _ := a.buf.At(cx, cy*2)
				lower, _ := a.buf.At(cx, cy*2+1)
				style := tcell.StyleDefault.
					Foreground(tcell.NewRGBColor(int32(upper.R), int32(upper.G), int32(upper.B))).
					Background(tcell.NewRGBColor(int32(lower.R), int32(lower.G), int32(lower.B)))
				a.screen.SetContent(cx, cy, '▀', nil, style)
			}
		}
	}

	if a.gesture.Dragging() && a.band.Width > 0 {
		a.drawBand()
	}

	a.drawStatus()
	a.screen.Show()
}

// drawBand marks the rubber-band border in red at cell resolution.
func (a *termApp) drawBand() {
	style := tcell.StyleDefault.Background(tcell.NewRGBColor(225, 0, 0))
	x0 := a.band.Min.X
	y0 := a.band.Min.Y / 2
	x1 := a.band.Min.X + a.band.Width
	y1 := (a.band.Min.Y + a.band.Width) / 2

	for x := x0; x <= x1; x += 1 {
		a.screen.SetContent(x, y0, ' ', nil, style)
		a.screen.SetContent(x, y1, ' ', nil, style)
	}
	for y := y0; y <= y1; y += 1 {
		a.screen.SetContent(x0, y, ' ', nil, style)
		a.screen.SetContent(x1, y, ' ', nil, style)
	}
}

func (a *termApp) drawStatus() {
	w, h := a.screen.Size()
	vp := a.history.Current()

	status := fmt.Sprintf("zoom %d  side %.3g  %s", a.history.Depth(), vp.Side, a.pointer)
	if a.rendering && a.total > 0 {
		status += fmt.Sprintf("  rendering %d%%", a.completed.Load()*100/a.total)
	}
	status += "  [drag: zoom in, u: zoom out, r: redraw, q: quit]"

	style := tcell.StyleDefault.
		Foreground(tcell.NewRGBColor(200, 200, 200)).
		Background(tcell.NewRGBColor(20, 20, 30))
	for x := 0; x < w; x += 1 {
		r := ' '
		if x < len(status) {
			r = rune(status[x])
		}
		a.screen.SetContent(x, h-1, r, nil, style)
	}
}
