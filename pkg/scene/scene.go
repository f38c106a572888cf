package scene

import (
	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/geometry"
	"github.com/df07/go-sphere-tracer/pkg/material"
	"github.com/df07/go-sphere-tracer/pkg/renderer"
)

// DefaultWidth is the image width used when a scene does not pick one
const DefaultWidth = 400

// Scene contains all the elements needed for rendering
type Scene struct {
	Camera         *geometry.Camera
	World          *geometry.ShapeList // Objects in the scene
	TopColor       core.Vec3           // Background color straight up
	BottomColor    core.Vec3           // Background color straight down
	SamplingConfig renderer.SamplingConfig
	CameraConfig   geometry.CameraConfig
	Width          int // Recommended image width
	Height         int // Recommended image height
}

// New creates an empty scene viewed through a camera built from cameraConfig,
// with the blue-to-white sky and a width of DefaultWidth
func New(cameraConfig geometry.CameraConfig) *Scene {
	width := DefaultWidth
	return &Scene{
		Camera:         geometry.NewCamera(cameraConfig),
		World:          geometry.NewShapeList(),
		TopColor:       core.NewVec3(0.5, 0.7, 1.0), // Blue sky
		BottomColor:    core.NewVec3(1.0, 1.0, 1.0), // White horizon
		SamplingConfig: renderer.DefaultSamplingConfig(),
		CameraConfig:   cameraConfig,
		Width:          width,
		Height:         heightForAspect(width, cameraConfig.AspectRatio),
	}
}

// heightForAspect returns the image height matching width at the given aspect ratio
func heightForAspect(width int, aspectRatio float32) int {
	if aspectRatio <= 0 {
		return width
	}
	return max(1, int(float32(width)/aspectRatio+0.5))
}

// SetWidth changes the recommended image width and derives the height from the camera aspect ratio
func (s *Scene) SetWidth(width int) {
	s.Width = width
	s.Height = heightForAspect(width, s.CameraConfig.AspectRatio)
}

// AddSphere appends a sphere to the scene
func (s *Scene) AddSphere(center core.Vec3, radius float32, mat material.Material) {
	s.World.Add(geometry.NewSphere(center, radius, mat))
}

// Add appends any shape to the scene
func (s *Scene) Add(shape geometry.Shape) {
	s.World.Add(shape)
}

// Clear removes every object from the scene
func (s *Scene) Clear() {
	s.World.Clear()
}

// GetCamera returns the scene camera
func (s *Scene) GetCamera() *geometry.Camera {
	return s.Camera
}

// GetBackgroundColors returns the sky gradient endpoints
func (s *Scene) GetBackgroundColors() (topColor, bottomColor core.Vec3) {
	return s.TopColor, s.BottomColor
}

// GetWorld returns the aggregate of all scene objects
func (s *Scene) GetWorld() geometry.Shape {
	return s.World
}

// GetPrimitiveCount returns the number of objects in the scene
func (s *Scene) GetPrimitiveCount() int {
	return s.World.Len()
}
