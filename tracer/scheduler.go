package tracer

import "math"

// The BlockScheduler interface is implemented by all block scheduling algorithms.
type BlockScheduler interface {
	// Split frame into blocks of variable height and assign them to the
	// pool of tracers. Blocks are contiguous: tracer i renders the rows
	// immediately following the rows of tracer i-1.
	//
	// This function returns the block height assignment for each tracer
	// in the input list. The assignments always add up to frameH.
	Schedule(tracers []Tracer, frameH uint32) []uint32
}

// The naive scheduler distributes rows proportionally to each tracer's
// speed estimate.
type naiveScheduler struct{}

// Create a new naive scheduler instance.
func NaiveScheduler() BlockScheduler {
	return naiveScheduler{}
}

func (sch naiveScheduler) Schedule(tracers []Tracer, frameH uint32) []uint32 {
	weights := make([]float64, len(tracers))
	for idx, tr := range tracers {
		weights[idx] = float64(tr.SpeedEstimate())
	}
	return distributeRows(weights, frameH)
}

// The perfect scheduler assumes that the volume of tracing work between two
// subsequent frames is approximately the same.
type perfectScheduler struct {
	blockAssignment []uint32
}

// Create a new perfect scheduler instance
func PerfectScheduler() BlockScheduler {
	return &perfectScheduler{}
}

// When previous frame information is available the scheduler uses the
// following formula for estimating the workload for tracer w and frame i+1:
// w_i, f_i+1 = (blockH,w_i / time,w_i) / Σ(blockH_i-1 / time,i-1)
func (sch *perfectScheduler) Schedule(tracers []Tracer, frameH uint32) []uint32 {
	// If this is the first time we try to schedule or the number of tracers
	// has changed we need to reset the block assignments
	if len(sch.blockAssignment) != len(tracers) {
		sch.blockAssignment = NaiveScheduler().Schedule(tracers, frameH)
		return sch.blockAssignment
	}

	// Use last frame statistics
	weights := make([]float64, len(tracers))
	for idx, tr := range tracers {
		stats := tr.Stats()
		renderTime := float64(stats.RenderTime)
		if renderTime <= 0 {
			renderTime = 1
		}
		weights[idx] = float64(stats.BlockH) / renderTime
	}

	sch.blockAssignment = distributeRows(weights, frameH)
	return sch.blockAssignment
}

// Split frameH rows proportionally to the supplied weights. Every tracer gets
// at least one row as long as there are enough rows to go around. Rows lost
// to rounding are appended to the first tracer.
func distributeRows(weights []float64, frameH uint32) []uint32 {
	assignment := make([]uint32, len(weights))
	if len(weights) == 0 {
		return assignment
	}

	var total float64
	for _, w := range weights {
		total += w
	}

	var minRows float64 = 1.0
	if uint32(len(weights)) > frameH {
		minRows = 0
	}

	var scheduledRows uint32
	for idx, w := range weights {
		var rows float64
		if total > 0 {
			rows = math.Floor(w * float64(frameH) / total)
		}
		assignment[idx] = uint32(math.Max(minRows, rows))
		scheduledRows += assignment[idx]
	}

	// Take back rows from the tail if the minimum row guarantee overshot the frame
	for idx := len(assignment) - 1; scheduledRows > frameH && idx >= 0; idx-- {
		for assignment[idx] > 1 && scheduledRows > frameH {
			assignment[idx]--
			scheduledRows--
		}
	}

	// In case rows don't add up to the frame height append the missing ones to the first tracer
	assignment[0] += frameH - scheduledRows

	return assignment
}
