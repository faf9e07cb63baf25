// Command mandelzoom is the windowed Mandelbrot explorer. Drag a
// rubber-band square with the left button to zoom in, right-click to
// zoom out, press r to re-render the current view, escape to quit.
package main

import (
	"flag"
	"log"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/thuswm/Mandelbrot/mandel"
	"github.com/thuswm/Mandelbrot/render"
)

func sdlInit(windowTitle string, size int32) (*sdl.Window, *sdl.Renderer, error) {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_TIMER); err != nil {
		return nil, nil, err
	}
	sdl.StopTextInput()

	window, err := sdl.CreateWindow(
		windowTitle,
		sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		size, size, sdl.WINDOW_OPENGL,
	)
	if err != nil {
		return nil, nil, err
	}

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		window.Destroy()
		return nil, nil, err
	}

	return window, renderer, nil
}

func sdlClose(window *sdl.Window, renderer *sdl.Renderer) {
	renderer.Destroy()
	window.Destroy()
	sdl.Quit()
}

func main() {
	pixels := flag.Int("pixels", 500, "image size in pixels (square)")
	maxDepth := flag.Int("depth", 200, "iteration cap and color table size")
	intensity := flag.Int("intensity", 200, "color intensity, 1..255")
	workers := flag.Int("workers", 0, "render workers, 0 for one per CPU")
	flag.Parse()

	table, err := mandel.GenerateColorMap(*maxDepth, *intensity)
	if err != nil {
		log.Fatalf("color map: %v", err)
	}

	window, renderer, err := sdlInit("Mandelbrot", int32(*pixels))
	if err != nil {
		log.Fatalf("sdl: %v", err)
	}
	defer sdlClose(window, renderer)

	a, err := newApp(window, renderer, appConfig{
		pixels:   *pixels,
		maxDepth: *maxDepth,
		table:    table,
		engine:   render.NewEngine(*workers),
	})
	if err != nil {
		log.Fatalf("app: %v", err)
	}
	defer a.close()

	a.startRender(a.history.Current())

	run := true
	for run {
		// poll with a timeout so in-flight render results and progress
		// get picked up between input events
		e := sdl.WaitEventTimeout(50)

		switch t := e.(type) {
		case *sdl.QuitEvent:
			run = false
		case *sdl.MouseButtonEvent:
			a.handleMouseButton(t)
		case *sdl.MouseMotionEvent:
			a.handleMouseMotion(t)
		case *sdl.KeyboardEvent:
			if t.Type == sdl.KEYDOWN {
				switch t.Keysym.Sym {
				case sdl.K_ESCAPE:
					run = false
				case sdl.K_r:
					a.startRender(a.history.Current())
				}
			}
		}

		a.drainResults()
		a.draw()
	}
}
