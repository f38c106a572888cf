package scene

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/geometry"
	"github.com/df07/go-sphere-tracer/pkg/material"
	"github.com/df07/go-sphere-tracer/pkg/renderer"
)

// Vec3Cfg is a vector written as a three-element JSON array
type Vec3Cfg [3]float32

func (v Vec3Cfg) Vec3() core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}

type CameraCfg struct {
	LookFrom      Vec3Cfg `json:"lookFrom"`
	LookAt        Vec3Cfg `json:"lookAt"`
	Up            Vec3Cfg `json:"up,omitempty"`            // defaults to +Y
	VFov          float32 `json:"vfov"`                    // degrees
	Aperture      float32 `json:"aperture,omitempty"`      // 0 for a pinhole
	FocusDistance float32 `json:"focusDistance,omitempty"` // 0 focuses on lookAt
}

type SkyCfg struct {
	Top    *Vec3Cfg `json:"top,omitempty"`
	Bottom *Vec3Cfg `json:"bottom,omitempty"`
}

// MaterialCfg is a tagged material: "lambertian" and "metal" read albedo,
// "metal" reads fuzz and "dielectric" reads refractiveIndex
type MaterialCfg struct {
	Type            string  `json:"type"`
	Albedo          Vec3Cfg `json:"albedo,omitempty"`
	Fuzz            float32 `json:"fuzz,omitempty"`
	RefractiveIndex float32 `json:"refractiveIndex,omitempty"`
}

type SphereCfg struct {
	Center   Vec3Cfg     `json:"center"`
	Radius   float32     `json:"radius"` // negative for the inner wall of a hollow shell
	Material MaterialCfg `json:"material"`
}

// Config describes a scene file
type Config struct {
	Width           int         `json:"width"`
	Height          int         `json:"height"`
	SamplesPerPixel int         `json:"samplesPerPixel,omitempty"`
	MaxDepth        int         `json:"maxDepth,omitempty"`
	Camera          CameraCfg   `json:"camera"`
	Sky             SkyCfg      `json:"sky,omitempty"`
	Spheres         []SphereCfg `json:"spheres"`
}

// Build returns the material described by the config
func (mc MaterialCfg) Build() (material.Material, error) {
	switch mc.Type {
	case "lambertian":
		return material.NewLambertian(mc.Albedo.Vec3()), nil
	case "metal":
		if mc.Fuzz < 0 {
			return nil, fmt.Errorf("metal fuzz must be >= 0, got %g", mc.Fuzz)
		}
		return material.NewMetal(mc.Albedo.Vec3(), mc.Fuzz), nil
	case "dielectric":
		if mc.RefractiveIndex <= 0 {
			return nil, fmt.Errorf("dielectric refractiveIndex must be > 0, got %g", mc.RefractiveIndex)
		}
		return material.NewDielectric(mc.RefractiveIndex), nil
	case "":
		return nil, errors.New("material type is required")
	}
	return nil, fmt.Errorf("unknown material type %q", mc.Type)
}

// Build returns the sphere described by the config
func (sc SphereCfg) Build() (*geometry.Sphere, error) {
	if sc.Radius == 0 {
		return nil, errors.New("sphere radius must be non-zero")
	}
	mat, err := sc.Material.Build()
	if err != nil {
		return nil, err
	}
	return geometry.NewSphere(sc.Center.Vec3(), sc.Radius, mat), nil
}

// Validate checks the settings that do not depend on individual objects
func (c *Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("image size must be positive, got %dx%d", c.Width, c.Height)
	}
	if c.SamplesPerPixel < 0 {
		return fmt.Errorf("samplesPerPixel must be >= 0, got %d", c.SamplesPerPixel)
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("maxDepth must be >= 0, got %d", c.MaxDepth)
	}
	if c.Camera.VFov <= 0 || c.Camera.VFov >= 180 {
		return fmt.Errorf("camera vfov must be in (0, 180), got %g", c.Camera.VFov)
	}
	if c.Camera.LookFrom == c.Camera.LookAt {
		return errors.New("camera lookFrom and lookAt must differ")
	}
	return nil
}

// Build turns the config into a renderable scene
func (c *Config) Build() (*Scene, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	up := c.Camera.Up.Vec3()
	if up == (core.Vec3{}) {
		up = core.NewVec3(0, 1, 0)
	}

	s := New(geometry.CameraConfig{
		LookFrom:      c.Camera.LookFrom.Vec3(),
		LookAt:        c.Camera.LookAt.Vec3(),
		Up:            up,
		VFov:          c.Camera.VFov,
		AspectRatio:   float32(c.Width) / float32(c.Height),
		Aperture:      c.Camera.Aperture,
		FocusDistance: c.Camera.FocusDistance,
	})
	s.Width, s.Height = c.Width, c.Height

	if c.Sky.Top != nil {
		s.TopColor = c.Sky.Top.Vec3()
	}
	if c.Sky.Bottom != nil {
		s.BottomColor = c.Sky.Bottom.Vec3()
	}

	sampling := renderer.DefaultSamplingConfig()
	if c.SamplesPerPixel > 0 {
		sampling.SamplesPerPixel = c.SamplesPerPixel
	}
	if c.MaxDepth > 0 {
		sampling.MaxDepth = c.MaxDepth
	}
	s.SamplingConfig = sampling

	for i, sc := range c.Spheres {
		sphere, err := sc.Build()
		if err != nil {
			return nil, fmt.Errorf("sphere %d: %w", i, err)
		}
		s.Add(sphere)
	}

	return s, nil
}

// ParseConfig decodes a scene config, rejecting unknown fields
func ParseConfig(r io.Reader) (*Config, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var cfg Config
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parsing scene config: %w", err)
	}
	return &cfg, nil
}

// LoadConfig reads a scene config from a JSON file
func LoadConfig(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cfg, err := ParseConfig(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// LoadScene reads and builds a scene from a JSON file
func LoadScene(path string) (*Scene, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}
	s, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}
