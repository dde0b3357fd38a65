package tracer

import (
	"time"

	"github.com/achilleasa/go-raytrace/scene"
)

// A unit of work that is processed by a tracer.
type BlockRequest struct {
	// Block start row and height.
	BlockY uint32
	BlockH uint32

	// A channel to signal on block completion with the number of completed rows.
	DoneChan chan<- uint32

	// A channel to signal if an error occurs.
	ErrChan chan<- error
}

// Tracer statistics.
type Stats struct {
	// The rendered block height
	BlockH uint32

	// The time for rendering this block
	RenderTime time.Duration

	// Number of primary rays that hit a sphere.
	PrimaryHits uint64

	// Total number of traced bounces (including primary hits).
	Bounces uint64
}

type Tracer interface {
	// Get tracer id.
	Id() string

	// Shutdown and cleanup tracer.
	Close()

	// Get the tracers computation speed estimate compared to a
	// baseline (single core) implementation.
	SpeedEstimate() float32

	// Attach the tracer to a scene and a frame buffer and start processing
	// block requests. The frame buffer is shared between tracers; each
	// tracer only writes the rows of the blocks it is asked to render.
	Setup(sc *scene.Scene, frameW, frameH uint32, frameBuffer []uint8) error

	// Enqueue block request.
	Enqueue(BlockRequest)

	// Retrieve last frame statistics.
	Stats() *Stats
}
