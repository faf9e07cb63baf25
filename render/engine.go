package render

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/thuswm/Mandelbrot/mandel"
)

// ProgressFunc receives cumulative completion counts after each pixel.
// Under parallel rendering calls arrive from several goroutines and out
// of raster order, but every count in [1, total] is delivered exactly
// once and the final one equals total. It must return quickly; a slow
// consumer stalls a worker.
type ProgressFunc func(completed, total int64)

// Engine renders viewports into pixel buffers. Rows are handed out to
// workers through an atomic cursor, so the per-pixel work needs no
// locking: the viewport and color table are read-only and every buffer
// cell is written once.
type Engine struct {
	workers int
}

// NewEngine sizes the worker pool. workers < 1 means one per CPU.
func NewEngine(workers int) *Engine {
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Engine{workers: workers}
}

// job is the shared state of one render pass.
type job struct {
	vp       mandel.Viewport
	maxDepth int
	table    mandel.ColorTable
	buf      *Buffer
	progress ProgressFunc

	nextRow atomic.Int64
	done    atomic.Int64
	total   int64
}

// Render paints the viewport into a fresh buffer. Every pixel is
// visited exactly once; its color is table entry Iterate(c, maxDepth)-1.
// Cancellation is checked between rows: a canceled render returns
// ctx.Err() and no buffer, so stale results can never be observed.
func (e *Engine) Render(ctx context.Context, vp mandel.Viewport, maxDepth int, table mandel.ColorTable, onProgress ProgressFunc) (*Buffer, error) {
	if maxDepth < 1 {
		return nil, fmt.Errorf("render max depth %d: want > 0", maxDepth)
	}
	if vp.Pixels < 1 {
		return nil, fmt.Errorf("render resolution %d: want > 0", vp.Pixels)
	}

	j := &job{
		vp:       vp,
		maxDepth: maxDepth,
		table:    table,
		buf:      NewBuffer(vp.Pixels),
		progress: onProgress,
		total:    int64(vp.Pixels) * int64(vp.Pixels),
	}

	errs := make(chan error, e.workers)
	var wg sync.WaitGroup
	for w := 0; w < e.workers; w += 1 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- j.run(ctx)
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return j.buf, nil
}

// run claims rows until none remain, scoring and painting each sample.
func (j *job) run(ctx context.Context) error {
	for {
		row := int(j.nextRow.Add(1) - 1)
		if row >= j.vp.Pixels {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		for i, c := range j.vp.GridRow(row) {
			n := mandel.Iterate(c, j.maxDepth)
			color, err := j.table.Color(n - 1)
			if err != nil {
				return err
			}
			if err := j.buf.Set(i, row, color); err != nil {
				return err
			}
			if j.progress != nil {
				j.progress(j.done.Add(1), j.total)
			}
		}
	}
}
