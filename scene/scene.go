package scene

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/olekukonko/tablewriter"
)

var (
	ErrNoCamera        = errors.New("scene: no camera defined")
	ErrNegativeRadius  = errors.New("scene: sphere radius must not be negative")
	ErrUnknownMaterial = errors.New("scene: sphere references unknown material")
)

// A scene is an immutable (once rendering starts) collection of spheres,
// materials and lights. Spheres reference materials by their index in the
// Materials list.
type Scene struct {
	Camera *Camera

	Spheres   []Sphere
	Materials []Material
	Lights    []Light
}

func NewScene() *Scene {
	return &Scene{
		Spheres:   make([]Sphere, 0),
		Materials: make([]Material, 0),
		Lights:    make([]Light, 0),
	}
}

// Attach a camera to the scene.
func (s *Scene) SetCamera(camera *Camera) {
	s.Camera = camera
}

// Add a material to the scene and return its index.
func (s *Scene) AddMaterial(material Material) int {
	s.Materials = append(s.Materials, material)
	return len(s.Materials) - 1
}

// Add a sphere to the scene. The sphere material must be added to the scene
// before the sphere.
func (s *Scene) AddSphere(sphere Sphere) error {
	if err := s.validateSphere(sphere); err != nil {
		return err
	}
	s.Spheres = append(s.Spheres, sphere)
	return nil
}

// Add a light to the scene.
func (s *Scene) AddLight(light Light) {
	s.Lights = append(s.Lights, light)
}

// Check that the scene is renderable.
func (s *Scene) Validate() error {
	if s.Camera == nil {
		return ErrNoCamera
	}

	for index, sphere := range s.Spheres {
		if err := s.validateSphere(sphere); err != nil {
			return fmt.Errorf("sphere %d: %w", index, err)
		}
	}

	return nil
}

func (s *Scene) validateSphere(sphere Sphere) error {
	if sphere.Radius < 0 {
		return ErrNegativeRadius
	}
	if sphere.Material < 0 || sphere.Material >= len(s.Materials) {
		return ErrUnknownMaterial
	}
	return nil
}

// Build a tabular representation of the scene contents.
func (s *Scene) Stats() string {
	var buf bytes.Buffer

	if s.Camera != nil {
		buf.WriteString(s.Camera.String())
		buf.WriteString("\n\n")
	}

	table := tablewriter.NewWriter(&buf)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Sphere", "Position", "Radius", "Material"})
	for index, sphere := range s.Spheres {
		table.Append([]string{
			fmt.Sprintf("%d", index),
			sphere.Position.String(),
			fmt.Sprintf("%3.3f", sphere.Radius),
			fmt.Sprintf("%d", sphere.Material),
		})
	}
	table.Render()

	table = tablewriter.NewWriter(&buf)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Material", "Diffuse", "Reflection"})
	for index, mat := range s.Materials {
		table.Append([]string{
			fmt.Sprintf("%d", index),
			mat.Diffuse.String(),
			fmt.Sprintf("%3.3f", mat.Reflection),
		})
	}
	table.Render()

	table = tablewriter.NewWriter(&buf)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Light", "Position", "Intensity"})
	for index, light := range s.Lights {
		table.Append([]string{
			fmt.Sprintf("%d", index),
			light.Position.String(),
			light.Intensity.String(),
		})
	}
	table.SetFooter([]string{"Total", fmt.Sprintf("%d spheres", len(s.Spheres)), fmt.Sprintf("%d lights", len(s.Lights))})
	table.Render()

	return buf.String()
}
