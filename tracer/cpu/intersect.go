package cpu

import (
	"github.com/achilleasa/go-raytrace/scene"
	"github.com/achilleasa/go-raytrace/types"
	"github.com/chewxy/math32"
)

// Intersect a ray with a sphere. The near root t0 of the ray/sphere quadratic
// is accepted only if epsilon < t0 < closest; in that case Intersect returns
// true and t0. Otherwise it returns false and leaves closest unchanged which
// allows callers to find the nearest hit with a single sweep over all spheres.
func Intersect(ray types.Ray, sphere *scene.Sphere, closest, epsilon float32) (bool, float32) {
	a := ray.Dir.Dot(ray.Dir)
	if a == 0 {
		return false, closest
	}

	toSphere := ray.Origin.Sub(sphere.Position)
	b := 2.0 * ray.Dir.Dot(toSphere)
	c := toSphere.Dot(toSphere) - sphere.Radius*sphere.Radius

	discriminant := b*b - 4*a*c
	if discriminant < 0 {
		return false, closest
	}

	sqrtDiscriminant := math32.Sqrt(discriminant)
	t0 := (-b - sqrtDiscriminant) / (2 * a)
	t1 := (-b + sqrtDiscriminant) / (2 * a)
	if t1 < t0 {
		t0 = t1
	}

	if t0 > epsilon && t0 < closest {
		return true, t0
	}
	return false, closest
}

// Find the sphere closest to the ray origin along the ray. The returned index
// points to the scene sphere list and is only meaningful if ok is true.
func NearestHit(sc *scene.Scene, ray types.Ray, cfg Config) (index int, dist float32, ok bool) {
	dist = cfg.FarClip
	for sphereIndex := range sc.Spheres {
		if hit, t := Intersect(ray, &sc.Spheres[sphereIndex], dist, cfg.Epsilon); hit {
			index, dist, ok = sphereIndex, t, true
		}
	}
	return index, dist, ok
}
