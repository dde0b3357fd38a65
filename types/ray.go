package types

// A ray with an origin and a direction. The direction is not guaranteed to be
// normalized.
type Ray struct {
	Origin Vec3
	Dir    Vec3
}

// Get the point along the ray at distance t (in units of the direction length).
func (r Ray) At(t float32) Vec3 {
	return r.Origin.Add(r.Dir.Mul(t))
}
