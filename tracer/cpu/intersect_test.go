package cpu

import (
	"math"
	"testing"

	"github.com/achilleasa/go-raytrace/scene"
	"github.com/achilleasa/go-raytrace/types"
)

const distTolerance = 1e-4

func TestIntersectAimedAtCenter(t *testing.T) {
	type spec struct {
		origin types.Vec3
		center types.Vec3
		radius float32
	}
	specs := []spec{
		{types.XYZ(3, 4, -20), types.XYZ(3, 4, 5), 2.5},
		{types.XYZ(0, 0, -2000), types.XYZ(0, 0, 0), 100},
		{types.XYZ(0, 0, 0), types.XYZ(10, 10, 10), 5},
		{types.XYZ(-7, 2, 1), types.XYZ(5, -3, 9), 0.5},
	}

	for index, s := range specs {
		sphere := scene.NewSphere(s.center, s.radius, 0)
		ray := types.Ray{Origin: s.origin, Dir: s.center.Sub(s.origin).Normalize()}

		hit, dist := Intersect(ray, &sphere, 20000, 0.001)
		if !hit {
			t.Fatalf("[spec %d] expected ray to hit sphere", index)
		}

		expDist := s.center.Sub(s.origin).Len() - s.radius
		if math.Abs(float64(dist-expDist)) > distTolerance {
			t.Fatalf("[spec %d] expected hit distance to be %f; got %f", index, expDist, dist)
		}
	}
}

func TestIntersectMiss(t *testing.T) {
	sphere := scene.NewSphere(types.XYZ(0, 0, 0), 1, 0)

	type spec struct {
		ray types.Ray
	}
	specs := []spec{
		// Pointing away from the sphere
		{types.Ray{Origin: types.XYZ(0, 0, -10), Dir: types.XYZ(0, 0, -1)}},
		// Passing by the sphere
		{types.Ray{Origin: types.XYZ(2, 0, -10), Dir: types.XYZ(0, 0, 1)}},
		// Starting on the surface and pointing outwards
		{types.Ray{Origin: types.XYZ(0, 0, -1), Dir: types.XYZ(0, 0, -1)}},
		// Starting on the surface and pointing inwards; near root is at the origin
		{types.Ray{Origin: types.XYZ(0, 0, -1), Dir: types.XYZ(0, 0, 1)}},
		// Starting inside the sphere; near root is behind the origin
		{types.Ray{Origin: types.XYZ(0, 0, 0), Dir: types.XYZ(0, 0, 1)}},
		// Degenerate direction
		{types.Ray{Origin: types.XYZ(0, 0, -10), Dir: types.XYZ(0, 0, 0)}},
	}

	for index, s := range specs {
		hit, dist := Intersect(s.ray, &sphere, 20000, 0.001)
		if hit {
			t.Fatalf("[spec %d] expected ray to miss sphere; got hit at %f", index, dist)
		}
		if dist != 20000 {
			t.Fatalf("[spec %d] expected closest distance to remain unchanged; got %f", index, dist)
		}
	}
}

func TestIntersectOnlyAcceptsCloserHits(t *testing.T) {
	sphere := scene.NewSphere(types.XYZ(0, 0, 0), 1, 0)
	ray := types.Ray{Origin: types.XYZ(0, 0, -10), Dir: types.XYZ(0, 0, 1)}

	hit, dist := Intersect(ray, &sphere, 5, 0.001)
	if hit || dist != 5 {
		t.Fatalf("expected farther hit to be rejected with closest distance 5; got %t, %f", hit, dist)
	}

	hit, dist = Intersect(ray, &sphere, 9, 0.001)
	if hit || dist != 9 {
		t.Fatalf("expected equidistant hit to be rejected with closest distance 9; got %t, %f", hit, dist)
	}

	hit, dist = Intersect(ray, &sphere, 9.5, 0.001)
	if !hit || dist != 9 {
		t.Fatalf("expected closer hit at 9; got %t, %f", hit, dist)
	}
}

func TestIntersectEpsilon(t *testing.T) {
	sphere := scene.NewSphere(types.XYZ(0, 0, 0), 1, 0)
	ray := types.Ray{Origin: types.XYZ(0, 0, -1.5), Dir: types.XYZ(0, 0, 1)}

	if hit, _ := Intersect(ray, &sphere, 20000, 0.001); !hit {
		t.Fatal("expected ray to hit sphere with a small epsilon")
	}

	if hit, _ := Intersect(ray, &sphere, 20000, 1); hit {
		t.Fatal("expected hit at 0.5 to be rejected with epsilon 1")
	}
}

func TestNearestHit(t *testing.T) {
	sc := scene.NewScene()
	sc.SetCamera(scene.NewCamera(-100))
	mat := sc.AddMaterial(scene.Material{Diffuse: types.XYZ(1, 1, 1)})
	for _, z := range []float32{30, 10, 20} {
		if err := sc.AddSphere(scene.NewSphere(types.XYZ(0, 0, z), 1, mat)); err != nil {
			t.Fatal(err)
		}
	}

	ray := types.Ray{Origin: types.XYZ(0, 0, 0), Dir: types.XYZ(0, 0, 1)}
	index, dist, ok := NearestHit(sc, ray, DefaultConfig())
	if !ok {
		t.Fatal("expected ray to hit a sphere")
	}
	if index != 1 {
		t.Fatalf("expected nearest sphere to be 1; got %d", index)
	}
	if dist != 9 {
		t.Fatalf("expected nearest hit distance to be 9; got %f", dist)
	}

	ray.Dir = types.XYZ(0, 0, -1)
	if _, _, ok = NearestHit(sc, ray, DefaultConfig()); ok {
		t.Fatal("expected ray pointing away from all spheres to miss")
	}

	cfg := DefaultConfig()
	cfg.FarClip = 5
	ray.Dir = types.XYZ(0, 0, 1)
	if _, _, ok = NearestHit(sc, ray, cfg); ok {
		t.Fatal("expected hits past the far clip distance to be ignored")
	}
}
