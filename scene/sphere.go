package scene

import "github.com/achilleasa/go-raytrace/types"

// Defines a sphere primitive.
type Sphere struct {
	Position types.Vec3
	Radius   float32

	// Index into the scene material list.
	Material int
}

// Create new sphere primitive.
func NewSphere(position types.Vec3, radius float32, material int) Sphere {
	return Sphere{
		Position: position,
		Radius:   radius,
		Material: material,
	}
}
