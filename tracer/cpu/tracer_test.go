package cpu

import (
	"errors"
	"testing"
	"time"

	"github.com/achilleasa/go-raytrace/scene"
	"github.com/achilleasa/go-raytrace/tracer"
	"github.com/achilleasa/go-raytrace/types"
)

func TestTracerBlockWorker(t *testing.T) {
	sc := scene.NewScene()
	sc.SetCamera(scene.NewCamera(-10))
	mat := sc.AddMaterial(scene.Material{Diffuse: types.XYZ(1, 1, 1)})
	if err := sc.AddSphere(scene.NewSphere(types.XYZ(1, 1, 0), 0.5, mat)); err != nil {
		t.Fatal(err)
	}
	sc.AddLight(scene.Light{Position: types.XYZ(1, 1, -4.5), Intensity: types.XYZ(1, 1, 1)})

	var frameW, frameH uint32 = 4, 3
	fb := make([]uint8, 3*frameW*frameH)
	tr := createTestTracer(t, sc, frameW, frameH, fb)
	defer tr.Close()

	// Render the bottom two rows only
	rows, err := renderBlock(tr, 1, 2)
	if err != nil {
		t.Fatal(err)
	}
	if rows != 2 {
		t.Fatalf("expected tracer to report 2 completed rows; got %d", rows)
	}

	// The sphere is only visible at pixel (1, 1) and is lit head-on
	for y := uint32(0); y < frameH; y++ {
		for x := uint32(0); x < frameW; x++ {
			offset := 3 * (y*frameW + x)
			var exp uint8
			if x == 1 && y == 1 {
				exp = 255
			}
			for ch := uint32(0); ch < 3; ch++ {
				if fb[offset+ch] != exp {
					t.Fatalf("expected pixel (%d, %d) channel %d to be %d; got %d", x, y, ch, exp, fb[offset+ch])
				}
			}
		}
	}

	stats := tr.Stats()
	if stats.BlockH != 2 {
		t.Fatalf("expected stats block height to be 2; got %d", stats.BlockH)
	}
	if stats.PrimaryHits != 1 {
		t.Fatalf("expected 1 primary hit; got %d", stats.PrimaryHits)
	}
}

func TestTracerSetupErrors(t *testing.T) {
	sc := scene.Default()
	tr := NewTracer("test", DefaultConfig())
	defer tr.Close()

	err := tr.Setup(sc, 2, 2, make([]uint8, 3))
	if err != ErrFrameBufferSize {
		t.Fatalf("expected to get %v; got %v", ErrFrameBufferSize, err)
	}

	fb := make([]uint8, 3*2*2)
	if err = tr.Setup(sc, 2, 2, fb); err != nil {
		t.Fatal(err)
	}

	err = tr.Setup(sc, 2, 2, fb)
	if err != ErrAlreadyAttached {
		t.Fatalf("expected to get %v; got %v", ErrAlreadyAttached, err)
	}

	_, err = renderBlock(tr, 1, 2)
	if err != ErrBlockOutOfRange {
		t.Fatalf("expected to get %v; got %v", ErrBlockOutOfRange, err)
	}
}

func TestEnqueueOnClosedTracer(t *testing.T) {
	tr := NewTracer("test", DefaultConfig())
	tr.Close()

	_, err := renderBlock(tr, 0, 1)
	if err != ErrTracerClosed {
		t.Fatalf("expected to get %v; got %v", ErrTracerClosed, err)
	}
}

func createTestTracer(t *testing.T, sc *scene.Scene, frameW, frameH uint32, fb []uint8) tracer.Tracer {
	tr := NewTracer("test", DefaultConfig())
	if err := tr.Setup(sc, frameW, frameH, fb); err != nil {
		t.Fatal(err)
	}
	return tr
}

func renderBlock(tr tracer.Tracer, blockY, blockH uint32) (uint32, error) {
	doneChan := make(chan uint32, 1)
	errChan := make(chan error, 1)
	tr.Enqueue(tracer.BlockRequest{
		BlockY:   blockY,
		BlockH:   blockH,
		DoneChan: doneChan,
		ErrChan:  errChan,
	})

	select {
	case rows := <-doneChan:
		return rows, nil
	case err := <-errChan:
		return 0, err
	case <-time.After(5 * time.Second):
		return 0, errTimeout
	}
}

var errTimeout = errors.New("timed out waiting for tracer")
