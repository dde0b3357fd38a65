package renderer

type Options struct {
	// Frame dims.
	FrameW uint32
	FrameH uint32

	// Number of parallel tracers. If set to 0, one tracer per CPU is used.
	NumWorkers uint32

	// Max number of bounces per pixel and min distance for accepting
	// ray/sphere intersections. Zero values select the kernel defaults
	// (15 bounces, 0.001 epsilon).
	MaxBounces uint32
	Epsilon    float32
}
