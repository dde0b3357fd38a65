package renderer

type Renderer interface {
	// Render frame.
	Render() error

	// Get the frame buffer contents. The buffer holds 3 bytes (RGB) per
	// pixel in row-major order and is overwritten by the next call to Render.
	Frame() []uint8

	// Shutdown renderer and any attached tracer.
	Close()

	// Get render statistics.
	Stats() FrameStats
}
