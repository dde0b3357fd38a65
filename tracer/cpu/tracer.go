package cpu

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/achilleasa/go-raytrace/log"
	"github.com/achilleasa/go-raytrace/scene"
	"github.com/achilleasa/go-raytrace/tracer"
)

var (
	ErrAlreadyAttached = errors.New("cpu tracer: tracer already attached to a scene")
	ErrTracerClosed    = errors.New("cpu tracer: tracer is not running")
	ErrFrameBufferSize = errors.New("cpu tracer: frame buffer size does not match frame dimensions")
	ErrBlockOutOfRange = errors.New("cpu tracer: block exceeds frame height")
)

type cpuTracer struct {
	logger log.Logger

	sync.Mutex
	wg sync.WaitGroup

	// The tracer id.
	id string

	// Kernel settings.
	config Config

	// The scene to be rendered and the render target.
	scene       *scene.Scene
	frameW      uint32
	frameH      uint32
	frameBuffer []uint8

	// A channel for receiving block requests from the renderer.
	blockReqChan chan tracer.BlockRequest

	// A channel for signaling the worker to exit.
	closeChan chan struct{}

	// Statistics for last rendered block.
	stats *tracer.Stats
}

// Create a new cpu tracer. Each tracer processes block requests sequentially
// on its own goroutine.
func NewTracer(id string, config Config) tracer.Tracer {
	return &cpuTracer{
		logger: log.New(fmt.Sprintf("cpu tracer (%s)", id)),
		id:     id,
		config: config,
		stats:  &tracer.Stats{},
	}
}

// Get tracer id.
func (tr *cpuTracer) Id() string {
	return tr.id
}

// All cpu tracers run on a single core.
func (tr *cpuTracer) SpeedEstimate() float32 {
	return 1.0
}

// Attach tracer to render target and start processing incoming block requests.
func (tr *cpuTracer) Setup(sc *scene.Scene, frameW, frameH uint32, frameBuffer []uint8) error {
	tr.Lock()
	defer tr.Unlock()

	if tr.closeChan != nil {
		return ErrAlreadyAttached
	}

	if uint64(len(frameBuffer)) != 3*uint64(frameW)*uint64(frameH) {
		return ErrFrameBufferSize
	}

	tr.scene = sc
	tr.frameW = frameW
	tr.frameH = frameH
	tr.frameBuffer = frameBuffer
	tr.startWorker()

	tr.logger.Debugf("attached to %dx%d frame (max bounces: %d, epsilon: %g)", frameW, frameH, tr.config.MaxBounces, tr.config.Epsilon)
	return nil
}

// Shutdown and cleanup tracer.
func (tr *cpuTracer) Close() {
	tr.Lock()
	defer tr.Unlock()

	// If the worker is running shut it down
	if tr.closeChan != nil {
		close(tr.closeChan)
		tr.wg.Wait()
		tr.closeChan = nil
	}

	tr.scene = nil
	tr.frameBuffer = nil
}

// Enqueue block request.
func (tr *cpuTracer) Enqueue(blockReq tracer.BlockRequest) {
	tr.Lock()
	running := tr.closeChan != nil
	reqChan := tr.blockReqChan
	tr.Unlock()

	if !running {
		blockReq.ErrChan <- ErrTracerClosed
		return
	}

	reqChan <- blockReq
}

// Retrieve last frame statistics.
func (tr *cpuTracer) Stats() *tracer.Stats {
	return tr.stats
}

// Spawn a go-routine to process block render requests. This method is meant
// to be called while holding tr.Lock()
func (tr *cpuTracer) startWorker() {
	tr.blockReqChan = make(chan tracer.BlockRequest, 1)
	tr.closeChan = make(chan struct{})

	reqChan := tr.blockReqChan
	closeChan := tr.closeChan
	tr.wg.Add(1)
	go func() {
		defer tr.wg.Done()
		for {
			select {
			case blockReq := <-reqChan:
				err := tr.renderBlock(blockReq)
				if err != nil {
					blockReq.ErrChan <- err
					continue
				}
				blockReq.DoneChan <- blockReq.BlockH
			case <-closeChan:
				return
			}
		}
	}()
}

// Render block and update the tracer stats.
func (tr *cpuTracer) renderBlock(blockReq tracer.BlockRequest) error {
	if uint64(blockReq.BlockY)+uint64(blockReq.BlockH) > uint64(tr.frameH) {
		return ErrBlockOutOfRange
	}

	start := time.Now()
	var primaryHits, bounces uint64
	for y := blockReq.BlockY; y < blockReq.BlockY+blockReq.BlockH; y++ {
		offset := 3 * y * tr.frameW
		for x := uint32(0); x < tr.frameW; x++ {
			sample := TracePixel(tr.scene, tr.scene.Camera.PrimaryRay(x, y), tr.config)
			if sample.Bounces > 0 {
				primaryHits++
				bounces += uint64(sample.Bounces)
			}

			tr.frameBuffer[offset+0] = Quantize(sample.Color[0])
			tr.frameBuffer[offset+1] = Quantize(sample.Color[1])
			tr.frameBuffer[offset+2] = Quantize(sample.Color[2])
			offset += 3
		}
	}

	*tr.stats = tracer.Stats{
		BlockH:      blockReq.BlockH,
		RenderTime:  time.Since(start),
		PrimaryHits: primaryHits,
		Bounces:     bounces,
	}
	tr.logger.Debugf("rendered rows [%d, %d) in %s", blockReq.BlockY, blockReq.BlockY+blockReq.BlockH, tr.stats.RenderTime)

	return nil
}
