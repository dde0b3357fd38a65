package scene

import (
	"fmt"

	"github.com/achilleasa/go-raytrace/types"
)

// The camera type generates primary rays. It is an orthographic camera: every
// pixel emits a ray from the point (x, y, Z) towards the same direction.
type Camera struct {
	// The Z coordinate of the image plane.
	Z float32

	// The direction of all primary rays. It should be unit length so that
	// ray distances are expressed in world units.
	Dir types.Vec3
}

// Create a camera looking down the +Z axis from the given plane.
func NewCamera(z float32) *Camera {
	return &Camera{
		Z:   z,
		Dir: types.XYZ(0, 0, 1),
	}
}

// Generate the primary ray for pixel (x, y).
func (c *Camera) PrimaryRay(x, y uint32) types.Ray {
	return types.Ray{
		Origin: types.XYZ(float32(x), float32(y), c.Z),
		Dir:    c.Dir,
	}
}

func (c *Camera) String() string {
	return fmt.Sprintf("orthographic camera (z: %3.3f, dir: %v)", c.Z, c.Dir)
}
