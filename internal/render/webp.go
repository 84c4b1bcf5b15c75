package render

import (
	"context"
	"image"
	"io"
	"runtime"
	"sync"

	"github.com/HugoSmits86/nativewebp"

	"github.com/flipdeck/flipdeck/internal/flip"
	"github.com/flipdeck/flipdeck/internal/session"
)

// Animate drives cfg through the script, rasterizes every frame and encodes
// the sequence as a looping animated WebP. It returns the frame count.
func Animate(ctx context.Context, cfg flip.Config, script session.Script, opts Options, w io.Writer) (int, error) {
	ctrl, err := flip.New(cfg)
	if err != nil {
		return 0, err
	}

	tick := script.Tick
	if tick <= 0 {
		tick = flip.DefaultTick
		script.Tick = tick
	}
	frameMS := uint(tick.Milliseconds())
	if frameMS == 0 {
		frameMS = 1
	}

	pts, err := session.New(ctrl).Collect(ctx, script)
	if err != nil {
		return 0, err
	}

	images := make([]image.Image, len(pts))
	durations := make([]uint, len(pts))
	rasterizeAll(pts, opts, images)
	for i := range durations {
		durations[i] = frameMS
	}

	ani := nativewebp.Animation{
		Images:    images,
		Durations: durations,
		Disposals: make([]uint, len(images)),
		LoopCount: 0,
	}
	if err := nativewebp.EncodeAll(w, &ani, nil); err != nil {
		return 0, err
	}
	return len(images), nil
}

// rasterizeAll fills images from pts, chunking the work across the CPUs.
// Collected frames are immutable, so each slot is written independently.
func rasterizeAll(pts []session.Point, opts Options, images []image.Image) {
	workers := runtime.NumCPU()
	if workers > len(pts) {
		workers = len(pts)
	}
	if workers < 2 {
		for i, p := range pts {
			images[i] = Rasterize(p.Frame, opts)
		}
		return
	}

	var wg sync.WaitGroup
	chunkSize := (len(pts) + workers - 1) / workers

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()

			start := worker * chunkSize
			end := start + chunkSize
			if end > len(pts) {
				end = len(pts)
			}

			for i := start; i < end; i++ {
				images[i] = Rasterize(pts[i].Frame, opts)
			}
		}(w)
	}

	wg.Wait()
}
