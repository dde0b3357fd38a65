package renderer

import (
	"fmt"
	"runtime"
	"time"

	"github.com/achilleasa/go-raytrace/log"
	"github.com/achilleasa/go-raytrace/scene"
	"github.com/achilleasa/go-raytrace/tracer"
	"github.com/achilleasa/go-raytrace/tracer/cpu"
	"github.com/chewxy/math32"
)

// A renderer that splits each frame into contiguous row blocks and renders
// them in parallel using a pool of cpu tracers.
type defaultRenderer struct {
	logger log.Logger

	options   Options
	scheduler tracer.BlockScheduler
	tracers   []tracer.Tracer

	// The shared RGB frame buffer. Tracers write to disjoint rows.
	frameBuffer []uint8

	// The last block assignment and frame statistics.
	blockAssignments []uint32
	stats            FrameStats
}

// Create a new renderer for the given scene using the specified block scheduler.
func NewDefault(sc *scene.Scene, scheduler tracer.BlockScheduler, opts Options) (Renderer, error) {
	if sc == nil {
		return nil, ErrSceneNotDefined
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	if opts.FrameW == 0 || opts.FrameH == 0 {
		return nil, ErrInvalidFrameDims
	}
	if opts.Epsilon < 0 || math32.IsNaN(opts.Epsilon) {
		return nil, ErrInvalidEpsilon
	}

	numWorkers := opts.NumWorkers
	if numWorkers == 0 {
		numWorkers = uint32(runtime.NumCPU())
	}
	// No point in spawning tracers that will never get any rows
	if numWorkers > opts.FrameH {
		numWorkers = opts.FrameH
	}

	cfg := cpu.DefaultConfig()
	if opts.MaxBounces != 0 {
		cfg.MaxBounces = opts.MaxBounces
	}
	if opts.Epsilon != 0 {
		cfg.Epsilon = opts.Epsilon
	}

	r := &defaultRenderer{
		logger:      log.New("renderer"),
		options:     opts,
		scheduler:   scheduler,
		frameBuffer: make([]uint8, 3*int(opts.FrameW)*int(opts.FrameH)),
	}

	for idx := uint32(0); idx < numWorkers; idx++ {
		tr := cpu.NewTracer(fmt.Sprintf("cpu-%d", idx), cfg)
		if err := tr.Setup(sc, opts.FrameW, opts.FrameH, r.frameBuffer); err != nil {
			tr.Close()
			r.Close()
			return nil, err
		}
		r.tracers = append(r.tracers, tr)
	}

	r.logger.Infof("using %d tracer(s) for %dx%d frame (max bounces: %d, epsilon: %g)", len(r.tracers), opts.FrameW, opts.FrameH, cfg.MaxBounces, cfg.Epsilon)
	return r, nil
}

// Render frame.
func (r *defaultRenderer) Render() error {
	if len(r.tracers) == 0 {
		return ErrNoTracers
	}

	start := time.Now()
	r.blockAssignments = r.scheduler.Schedule(r.tracers, r.options.FrameH)

	doneChan := make(chan uint32, len(r.tracers))
	errChan := make(chan error, len(r.tracers))

	var blockY uint32
	pending := 0
	for idx, tr := range r.tracers {
		blockH := r.blockAssignments[idx]
		if blockH == 0 {
			continue
		}

		r.logger.Debugf("assigning rows [%d, %d) to tracer %s", blockY, blockY+blockH, tr.Id())
		tr.Enqueue(tracer.BlockRequest{
			BlockY:   blockY,
			BlockH:   blockH,
			DoneChan: doneChan,
			ErrChan:  errChan,
		})
		blockY += blockH
		pending++
	}

	// Wait for all tracers to report back before returning so that no
	// tracer is still writing to the frame buffer.
	var firstErr error
	for ; pending > 0; pending-- {
		select {
		case <-doneChan:
		case err := <-errChan:
			r.logger.Errorf("tracer error: %v", err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	if firstErr != nil {
		return fmt.Errorf("%w: %v", ErrInterrupted, firstErr)
	}

	r.updateStats(time.Since(start))
	return nil
}

// Get the frame buffer contents.
func (r *defaultRenderer) Frame() []uint8 {
	return r.frameBuffer
}

// Shutdown renderer and any attached tracer.
func (r *defaultRenderer) Close() {
	for _, tr := range r.tracers {
		tr.Close()
	}
	r.tracers = nil
}

// Get render statistics.
func (r *defaultRenderer) Stats() FrameStats {
	return r.stats
}

func (r *defaultRenderer) updateStats(renderTime time.Duration) {
	r.stats = FrameStats{
		Tracers:    make([]TracerStat, 0, len(r.tracers)),
		RenderTime: renderTime,
	}

	for idx, tr := range r.tracers {
		blockH := r.blockAssignments[idx]
		if blockH == 0 {
			continue
		}
		trStats := tr.Stats()
		r.stats.Tracers = append(r.stats.Tracers, TracerStat{
			Id:           tr.Id(),
			BlockH:       blockH,
			FramePercent: 100.0 * float32(blockH) / float32(r.options.FrameH),
			RenderTime:   trStats.RenderTime,
			PrimaryHits:  trStats.PrimaryHits,
			Bounces:      trStats.Bounces,
		})
	}
}
