package geometry

import (
	"testing"

	"github.com/chewxy/math32"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/material"
)

func TestShapeList_NearestHitWins(t *testing.T) {
	near := material.NewLambertian(core.NewVec3(1, 0, 0))
	far := material.NewLambertian(core.NewVec3(0, 0, 1))
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	orders := map[string]*ShapeList{
		"near first": NewShapeList(
			NewSphere(core.NewVec3(0, 0, -2), 0.5, near),
			NewSphere(core.NewVec3(0, 0, -5), 0.5, far),
		),
		"far first": NewShapeList(
			NewSphere(core.NewVec3(0, 0, -5), 0.5, far),
			NewSphere(core.NewVec3(0, 0, -2), 0.5, near),
		),
	}

	for name, list := range orders {
		t.Run(name, func(t *testing.T) {
			hit, isHit := list.Hit(ray, 0.001, math32.Inf(1))
			if !isHit {
				t.Fatal("Expected hit")
			}
			if math32.Abs(hit.T-1.5) > tolerance {
				t.Errorf("Expected nearest hit at t=1.5, got %f", hit.T)
			}
			if hit.Material != material.Material(near) {
				t.Errorf("Expected material of the nearest sphere, got %v", hit.Material)
			}
		})
	}
}

func TestShapeList_AddClear(t *testing.T) {
	list := NewShapeList()
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	if _, isHit := list.Hit(ray, 0.001, 1000); isHit {
		t.Error("Empty list should never be hit")
	}

	list.Add(NewSphere(core.NewVec3(0, 0, -1), 0.5, nil))
	list.Add(NewSphere(core.NewVec3(0, -100.5, -1), 100, nil))
	if list.Len() != 2 {
		t.Errorf("Expected 2 shapes, got %d", list.Len())
	}
	if _, isHit := list.Hit(ray, 0.001, 1000); !isHit {
		t.Error("Expected hit after adding shapes")
	}

	list.Clear()
	if list.Len() != 0 {
		t.Errorf("Expected empty list after clear, got %d", list.Len())
	}
	if _, isHit := list.Hit(ray, 0.001, 1000); isHit {
		t.Error("Cleared list should never be hit")
	}
}

func TestShapeList_RespectsUpperBound(t *testing.T) {
	list := NewShapeList(NewSphere(core.NewVec3(0, 0, -5), 0.5, nil))
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	if _, isHit := list.Hit(ray, 0.001, 2); isHit {
		t.Error("Hit beyond tMax should be ignored")
	}
}
