package scene

import "github.com/achilleasa/go-raytrace/types"

// The frame dimensions the default scene was composed for.
const (
	DefaultFrameW uint32 = 800
	DefaultFrameH uint32 = 600
)

// Build the compiled-in scene: three spheres (red, green and blue with
// increasing reflectivity) lit by three point lights.
func Default() *Scene {
	sc := NewScene()
	sc.SetCamera(NewCamera(-2000))

	red := sc.AddMaterial(Material{Diffuse: types.XYZ(1, 0, 0), Reflection: 0.2})
	green := sc.AddMaterial(Material{Diffuse: types.XYZ(0, 1, 0), Reflection: 0.5})
	blue := sc.AddMaterial(Material{Diffuse: types.XYZ(0, 0, 1), Reflection: 0.9})

	// The material indices are known to be valid so errors can be ignored.
	_ = sc.AddSphere(NewSphere(types.XYZ(200, 300, 0), 100, red))
	_ = sc.AddSphere(NewSphere(types.XYZ(400, 400, 0), 100, green))
	_ = sc.AddSphere(NewSphere(types.XYZ(500, 140, 0), 100, blue))

	sc.AddLight(Light{Position: types.XYZ(0, 240, -100), Intensity: types.XYZ(1, 1, 1)})
	sc.AddLight(Light{Position: types.XYZ(3200, 3000, -1000), Intensity: types.XYZ(0.6, 0.7, 1)})
	sc.AddLight(Light{Position: types.XYZ(600, 0, -100), Intensity: types.XYZ(0.3, 0.5, 1)})

	return sc
}
