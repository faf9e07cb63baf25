package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync/atomic"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/thuswm/Mandelbrot/mandel"
	"github.com/thuswm/Mandelbrot/render"
)

type appConfig struct {
	pixels   int
	maxDepth int
	table    mandel.ColorTable
	engine   *render.Engine
}

// renderResult carries a finished render back to the event loop. The
// generation stamp lets the loop drop results that a newer request has
// superseded.
type renderResult struct {
	generation uint64
	buf        *render.Buffer
	err        error
}

type app struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture

	cfg     appConfig
	history *mandel.History
	gesture mandel.GestureTracker

	// render controller state, owned by the event-loop goroutine
	// except for the atomics the workers touch
	generation uint64
	cancel     context.CancelFunc
	results    chan renderResult
	completed  atomic.Int64
	total      int64
	rendering  bool

	band    mandel.PixelSquare
	pointer string
}

func newApp(window *sdl.Window, renderer *sdl.Renderer, cfg appConfig) (*app, error) {
	// byte order matches render.Buffer: R, G, B, A
	texture, err := renderer.CreateTexture(
		sdl.PIXELFORMAT_ABGR8888,
		sdl.TEXTUREACCESS_STREAMING,
		int32(cfg.pixels), int32(cfg.pixels),
	)
	if err != nil {
		return nil, err
	}

	return &app{
		window:   window,
		renderer: renderer,
		texture:  texture,
		cfg:      cfg,
		history:  mandel.NewHistory(mandel.RootViewport(cfg.pixels)),
		results:  make(chan renderResult, 4),
	}, nil
}

func (a *app) close() {
	if a.cancel != nil {
		a.cancel()
	}
	a.texture.Destroy()
}

// startRender kicks off an asynchronous render of vp, canceling any
// render still in flight. Its result is dropped unless it is still the
// newest request when it lands.
func (a *app) startRender(vp mandel.Viewport) {
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

	go func() {
		buf, err := a.cfg.engine.Render(ctx, vp, a.cfg.maxDepth, a.cfg.table,
			func(completed, total int64) {
				a.completed.Store(max(a.completed.Load(), completed))
			})
		a.results <- renderResult{generation: gen, buf: buf, err: err}
	}()
}

// drainResults uploads the newest finished render, if any, to the
// texture. Stale and canceled renders are discarded.
func (a *app) drainResults() {
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
			if err := a.texture.Update(nil, r.buf.Bytes(), a.cfg.pixels*4); err != nil {
				log.Printf("texture update: %v", err)
			}
		default:
			return
		}
	}
}

func (a *app) handleMouseButton(e *sdl.MouseButtonEvent) {
	p := mandel.PixelPoint{X: int(e.X), Y: int(e.Y)}

	switch {
	case e.Button == sdl.BUTTON_LEFT && e.Type == sdl.MOUSEBUTTONDOWN:
		a.gesture.Press(p)
	case e.Button == sdl.BUTTON_LEFT && e.Type == sdl.MOUSEBUTTONUP:
		square, ok := a.gesture.Release(p)
		if !ok {
			return
		}
		next, err := square.ToViewport(a.history.Current())
		if err != nil {
			// zero-area drag, nothing to zoom into
			return
		}
		a.history.ZoomIn(next)
		a.startRender(next)
	case e.Button == sdl.BUTTON_RIGHT && e.Type == sdl.MOUSEBUTTONDOWN:
		prev, err := a.history.ZoomOut()
		if err != nil {
			log.Printf("zoom out: %v", err)
			return
		}
		a.startRender(prev)
	}
}

func (a *app) handleMouseMotion(e *sdl.MouseMotionEvent) {
	p := mandel.PixelPoint{X: int(e.X), Y: int(e.Y)}
	vp := a.history.Current()
	a.pointer = vp.FormatPoint(vp.PixelToComplex(p.X, p.Y))

	if square, ok := a.gesture.Move(p); ok {
		a.band = square
	}
}

func (a *app) draw() {
	a.renderer.SetDrawColor(0, 0, 0, 255)
	a.renderer.Clear()
	a.renderer.Copy(a.texture, nil, nil)

	if a.gesture.Dragging() && a.band.Width > 0 {
		a.renderer.SetDrawColor(225, 0, 0, 255)
		a.renderer.DrawRect(&sdl.Rect{
			X: int32(a.band.Min.X),
			Y: int32(a.band.Min.Y),
			W: int32(a.band.Width),
			H: int32(a.band.Width),
		})
	}

	a.renderer.Present()
	a.updateTitle()
}

func (a *app) updateTitle() {
	title := "Mandelbrot"
	if a.pointer != "" {
		title += " " + a.pointer
	}
	if a.rendering && a.total > 0 {
		pct := a.completed.Load() * 100 / a.total
		title += fmt.Sprintf(" rendering %d%%", pct)
	}
	a.window.SetTitle(title)
}
