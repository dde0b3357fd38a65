package scene

import "github.com/achilleasa/go-raytrace/types"

// Defines a scene material.
type Material struct {
	// Diffuse color. Channels are conventionally in [0, 1] but are not clamped.
	Diffuse types.Vec3

	// The fraction of light energy carried into the next bounce. A value of
	// 0 absorbs everything; values close to 1 behave like a mirror.
	Reflection float32
}

// A point light. Light intensity does not fall off with distance.
type Light struct {
	Position  types.Vec3
	Intensity types.Vec3
}
