package geometry

import (
	"testing"

	"github.com/chewxy/math32"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/material"
)

const tolerance = 1e-5

func vecAlmostEqual(a, b core.Vec3) bool {
	return math32.Abs(a.X-b.X) < tolerance &&
		math32.Abs(a.Y-b.Y) < tolerance &&
		math32.Abs(a.Z-b.Z) < tolerance
}

func TestSphere_Hit_Miss(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, nil)
	ray := core.NewRay(core.NewVec3(2, 0, 0), core.NewVec3(0, 1, 0))

	hit, isHit := sphere.Hit(ray, 0.001, 1000.0)
	if isHit {
		t.Errorf("Expected miss, but got hit at t=%f", hit.T)
	}
}

func TestSphere_Hit_FrontAndBackFace(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, nil)

	tests := []struct {
		name           string
		rayOrigin      core.Vec3
		rayDirection   core.Vec3
		expectedT      float32
		expectedFront  bool
		expectedNormal core.Vec3
	}{
		{
			name:           "front face hit",
			rayOrigin:      core.NewVec3(0, 0, 2),
			rayDirection:   core.NewVec3(0, 0, -1),
			expectedT:      1.0,
			expectedFront:  true,
			expectedNormal: core.NewVec3(0, 0, 1),
		},
		{
			name:           "back face hit",
			rayOrigin:      core.NewVec3(0, 0, 0),
			rayDirection:   core.NewVec3(0, 0, 1),
			expectedT:      1.0,
			expectedFront:  false,
			expectedNormal: core.NewVec3(0, 0, -1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(tt.rayOrigin, tt.rayDirection)
			hit, isHit := sphere.Hit(ray, 0.001, 1000.0)

			if !isHit {
				t.Fatal("Expected hit, but got miss")
			}
			if math32.Abs(hit.T-tt.expectedT) > tolerance {
				t.Errorf("Expected t=%f, got t=%f", tt.expectedT, hit.T)
			}
			if hit.FrontFace != tt.expectedFront {
				t.Errorf("Expected front face %t, got %t", tt.expectedFront, hit.FrontFace)
			}
			if !vecAlmostEqual(hit.Normal, tt.expectedNormal) {
				t.Errorf("Expected normal %v, got %v", tt.expectedNormal, hit.Normal)
			}
		})
	}
}

func TestSphere_RootsThroughCenter(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, nil)
	ray := core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1))

	a, b, _, discriminant := sphere.quadratic(ray)
	if discriminant <= 0 {
		t.Fatalf("Expected two real roots, got discriminant %f", discriminant)
	}

	sqrtD := math32.Sqrt(discriminant)
	t0 := (-b - sqrtD) / (2 * a)
	t1 := (-b + sqrtD) / (2 * a)

	// Closest approach to the center is at t=5
	if math32.Abs((t0+t1)/2-5) > tolerance {
		t.Errorf("Roots %f and %f are not symmetric about t=5", t0, t1)
	}
	if math32.Abs(t0-4) > tolerance || math32.Abs(t1-6) > tolerance {
		t.Errorf("Expected roots 4 and 6, got %f and %f", t0, t1)
	}

	hit, isHit := sphere.Hit(ray, 0.001, 1000.0)
	if !isHit || math32.Abs(hit.T-4) > tolerance {
		t.Errorf("Expected nearest hit at t=4, got %f (hit=%t)", hit.T, isHit)
	}
}

func TestSphere_Hit_Tangent(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, nil)
	ray := core.NewRay(core.NewVec3(1, 0, 5), core.NewVec3(0, 0, -1))

	if _, _, _, discriminant := sphere.quadratic(ray); discriminant != 0 {
		t.Fatalf("Expected zero discriminant for tangent ray, got %f", discriminant)
	}

	hit, isHit := sphere.Hit(ray, 0.001, 1000.0)
	if !isHit {
		t.Fatal("Expected tangent hit")
	}
	if !vecAlmostEqual(hit.Point, core.NewVec3(1, 0, 0)) {
		t.Errorf("Expected tangent point (1, 0, 0), got %v", hit.Point)
	}
}

func TestSphere_Hit_Interval(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, nil)
	ray := core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1))

	tests := []struct {
		name      string
		tMin      float32
		tMax      float32
		expectHit bool
		expectedT float32
	}{
		{"both roots inside", 0.001, 100, true, 4},
		{"near root excluded", 4.5, 100, true, 6},
		{"lower bound is open", 4, 100, true, 6},
		{"upper bound is closed", 0.001, 4, true, 4},
		{"both roots excluded", 0.001, 3.9, false, 0},
		{"interval past the sphere", 6, 100, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, isHit := sphere.Hit(ray, tt.tMin, tt.tMax)
			if isHit != tt.expectHit {
				t.Fatalf("Expected hit=%t, got %t", tt.expectHit, isHit)
			}
			if isHit && math32.Abs(hit.T-tt.expectedT) > tolerance {
				t.Errorf("Expected t=%f, got %f", tt.expectedT, hit.T)
			}
		})
	}
}

func TestSphere_NegativeRadiusFlipsNormal(t *testing.T) {
	inner := NewSphere(core.NewVec3(0, 0, 0), -1.0, nil)
	ray := core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1))

	hit, isHit := inner.Hit(ray, 0.001, 1000.0)
	if !isHit {
		t.Fatal("Expected hit on negative-radius sphere")
	}
	if math32.Abs(hit.T-4) > tolerance {
		t.Errorf("Expected t=4, got %f", hit.T)
	}

	// Outward normal points toward the center, so an outside ray sees a back face
	if hit.FrontFace {
		t.Error("Expected back face for ray entering a negative-radius sphere")
	}
	if !vecAlmostEqual(hit.Normal, core.NewVec3(0, 0, 1)) {
		t.Errorf("Expected normal facing the ray (0, 0, 1), got %v", hit.Normal)
	}
}

func TestSphere_HitCarriesMaterial(t *testing.T) {
	glass := material.NewDielectric(1.5)
	sphere := NewSphere(core.NewVec3(0, 0, -1), 0.5, glass)

	hit, isHit := sphere.Hit(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)), 0.001, 1000)
	if !isHit {
		t.Fatal("Expected hit")
	}
	if hit.Material != material.Material(glass) {
		t.Errorf("Expected material %v, got %v", glass, hit.Material)
	}
}
