package scene

import (
	"testing"

	"github.com/chewxy/math32"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/geometry"
	"github.com/df07/go-sphere-tracer/pkg/material"
	"github.com/df07/go-sphere-tracer/pkg/renderer"
)

func TestSingleSphereScene_CenterRay(t *testing.T) {
	s := NewSingleSphereScene()
	if s.GetPrimitiveCount() != 1 {
		t.Fatalf("Expected 1 sphere, got %d", s.GetPrimitiveCount())
	}

	ray := s.GetCamera().GetRay(0.5, 0.5, core.NewSeededSampler(1))
	hit, isHit := s.GetWorld().Hit(ray, 0.001, math32.Inf(1))
	if !isHit {
		t.Fatal("Expected center ray to hit the sphere")
	}
	if !hit.FrontFace {
		t.Error("Expected front face hit")
	}
	if math32.Abs(hit.Normal.Z-1) > 1e-5 {
		t.Errorf("Expected normal toward +z, got %v", hit.Normal)
	}
}

func TestDefaultScene_HasHollowGlass(t *testing.T) {
	s := NewDefaultScene()

	negative := 0
	for _, shape := range s.World.Shapes {
		sphere, ok := shape.(*geometry.Sphere)
		if !ok {
			t.Fatalf("Unexpected shape %T", shape)
		}
		if sphere.Radius < 0 {
			negative++
			if _, ok := sphere.Material.(material.Dielectric); !ok {
				t.Errorf("Hollow wall should be glass, got %T", sphere.Material)
			}
		}
	}
	if negative != 1 {
		t.Errorf("Expected one negative-radius sphere, got %d", negative)
	}
	if s.Height != 225 {
		t.Errorf("Expected 16:9 height 225, got %d", s.Height)
	}
}

func TestDefaultScene_CameraOverride(t *testing.T) {
	s := NewDefaultScene(geometry.CameraConfig{Aperture: 0.01})
	if s.CameraConfig.Aperture != 0.01 {
		t.Errorf("Expected aperture override, got %f", s.CameraConfig.Aperture)
	}
	if s.CameraConfig.VFov != 20 {
		t.Errorf("Expected default vfov to survive, got %f", s.CameraConfig.VFov)
	}
}

func TestSphereGridScene(t *testing.T) {
	a := NewSphereGridScene(7)
	b := NewSphereGridScene(7)

	if a.GetPrimitiveCount() != b.GetPrimitiveCount() {
		t.Fatalf("Same seed produced %d and %d spheres", a.GetPrimitiveCount(), b.GetPrimitiveCount())
	}
	for i := range a.World.Shapes {
		sa := a.World.Shapes[i].(*geometry.Sphere)
		sb := b.World.Shapes[i].(*geometry.Sphere)
		if *sa != *sb {
			t.Fatalf("Sphere %d differs between identical seeds", i)
		}
	}

	// Ground, three large spheres and most of the 22x22 grid
	if n := a.GetPrimitiveCount(); n < 400 || n > 4+22*22 {
		t.Errorf("Unexpected sphere count %d", n)
	}

	clearing := core.NewVec3(4, 0.2, 0)
	for _, shape := range a.World.Shapes {
		sphere := shape.(*geometry.Sphere)
		if sphere.Radius == 0.2 && sphere.Center.Subtract(clearing).Length() <= 0.9 {
			t.Errorf("Small sphere at %v intrudes on the clearing", sphere.Center)
		}
	}
}

func TestScene_AddClear(t *testing.T) {
	s := New(geometry.DefaultCameraConfig())
	s.AddSphere(core.NewVec3(0, 0, -1), 0.5, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)))
	s.Add(geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100, material.NewMetal(core.NewVec3(0.5, 0.5, 0.5), 0.2)))

	if s.GetPrimitiveCount() != 2 {
		t.Errorf("Expected 2 objects, got %d", s.GetPrimitiveCount())
	}
	s.Clear()
	if s.GetPrimitiveCount() != 0 {
		t.Errorf("Expected empty scene, got %d", s.GetPrimitiveCount())
	}

	top, bottom := s.GetBackgroundColors()
	if top != core.NewVec3(0.5, 0.7, 1.0) || bottom != core.NewVec3(1, 1, 1) {
		t.Errorf("Unexpected default sky %v / %v", top, bottom)
	}
}

func TestScene_SetWidth(t *testing.T) {
	s := NewSphereGridScene(1)
	s.SetWidth(300)
	if s.Width != 300 || s.Height != 200 {
		t.Errorf("Expected 300x200 for 3:2, got %dx%d", s.Width, s.Height)
	}
}

func TestDefaultScene_RendersThroughGlass(t *testing.T) {
	s := NewDefaultScene()
	rt := renderer.NewRaytracer(s, 32, 18)
	rt.SetSamplingConfig(renderer.SamplingConfig{SamplesPerPixel: 2, MaxDepth: 10})

	img, _ := rt.RenderPass()
	if lum := renderer.CalculateAverageLuminance(img); lum <= 0 {
		t.Errorf("Expected a lit image, got average luminance %f", lum)
	}
}
