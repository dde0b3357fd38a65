package cpu

import (
	"github.com/achilleasa/go-raytrace/scene"
	"github.com/achilleasa/go-raytrace/types"
)

// Kernel configuration.
type Config struct {
	// Upper bound for the number of bounces traced per pixel.
	MaxBounces uint32

	// Minimum accepted intersection distance. It keeps reflected rays from
	// hitting the surface they originate from; its value depends on scene scale.
	Epsilon float32

	// Intersections further than this distance are ignored.
	FarClip float32
}

// Get the default kernel configuration.
func DefaultConfig() Config {
	return Config{
		MaxBounces: 15,
		Epsilon:    0.001,
		FarClip:    20000,
	}
}

// The result of tracing a single pixel.
type Sample struct {
	// Accumulated (unclamped) pixel color.
	Color types.Vec3

	// Number of traced bounces. A zero value indicates that the primary
	// ray did not hit anything.
	Bounces uint32
}

// The per-pixel trace state.
type pathState struct {
	ray         types.Ray
	coefficient float32
	bounces     uint32
	color       types.Vec3
}

func newPathState(ray types.Ray) pathState {
	return pathState{
		ray:         ray,
		coefficient: 1.0,
	}
}

// Trace one bounce and accumulate its direct lighting contribution. Returns
// false once the path terminates.
func (ps *pathState) step(sc *scene.Scene, cfg Config) bool {
	sphereIndex, dist, ok := NearestHit(sc, ps.ray, cfg)
	if !ok {
		return false
	}

	sphere := &sc.Spheres[sphereIndex]
	hitPoint := ps.ray.At(dist)
	normal := hitPoint.Sub(sphere.Position)
	if normal.LenSq() == 0 {
		return false
	}
	normal = normal.Normalize()

	mat := &sc.Materials[sphere.Material]
	for lightIndex := range sc.Lights {
		light := &sc.Lights[lightIndex]
		toLight := light.Position.Sub(hitPoint)

		// The light is behind the surface
		if normal.Dot(toLight) <= 0 {
			continue
		}

		lightDist := toLight.Len()
		if lightDist <= 0 {
			continue
		}
		toLight = toLight.Mul(1.0 / lightDist)

		lambert := toLight.Dot(normal) * ps.coefficient
		ps.color = ps.color.Add(mat.Diffuse.MulVec(light.Intensity).Mul(lambert))
	}

	ps.coefficient *= mat.Reflection
	ps.ray = types.Ray{
		Origin: hitPoint,
		Dir:    ps.ray.Dir.Reflect(normal),
	}
	ps.bounces++

	return ps.coefficient > 0 && ps.bounces < cfg.MaxBounces
}

// Trace a primary ray through the scene.
func TracePixel(sc *scene.Scene, ray types.Ray, cfg Config) Sample {
	ps := newPathState(ray)
	if cfg.MaxBounces > 0 {
		for ps.step(sc, cfg) {
		}
	}

	return Sample{
		Color:   ps.color,
		Bounces: ps.bounces,
	}
}

// Convert a color channel to an 8-bit value. Channels are scaled by 255,
// clamped to [0, 255] and truncated.
func Quantize(c float32) uint8 {
	v := c * 255.0
	if !(v > 0) {
		return 0
	}
	if v > 255.0 {
		return 255
	}
	return uint8(v)
}
