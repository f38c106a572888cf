package renderer

import (
	"image"
	"image/color"

	"github.com/chewxy/math32"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/geometry"
)

// hitEpsilon is the minimum hit distance, which keeps scattered rays from
// re-hitting the surface they start on
const hitEpsilon = 0.001

// DefaultSeed seeds the raytracer's sampler unless SetSeed is called
const DefaultSeed = 42

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	SamplesPerPixel int // Number of rays per pixel
	MaxDepth        int // Maximum ray bounce depth
}

// DefaultSamplingConfig returns sensible default values
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		SamplesPerPixel: 100,
		MaxDepth:        50,
	}
}

// Scene interface to avoid circular imports
type Scene interface {
	GetCamera() *geometry.Camera
	GetBackgroundColors() (topColor, bottomColor core.Vec3)
	GetWorld() geometry.Shape
}

// Raytracer handles the rendering process
type Raytracer struct {
	scene         Scene
	width         int
	height        int
	config        SamplingConfig
	sampler       core.Sampler
	logger        core.Logger
	progressEvery int // rows between progress lines
}

// NewRaytracer creates a new raytracer
func NewRaytracer(scene Scene, width, height int) *Raytracer {
	return &Raytracer{
		scene:         scene,
		width:         width,
		height:        height,
		config:        DefaultSamplingConfig(),
		sampler:       core.NewSeededSampler(DefaultSeed), // Deterministic for testing
		progressEvery: 1,
	}
}

// SetSamplingConfig updates the sampling configuration
func (rt *Raytracer) SetSamplingConfig(config SamplingConfig) {
	rt.config = config
}

// GetSamplingConfig returns the active sampling configuration
func (rt *Raytracer) GetSamplingConfig() SamplingConfig {
	return rt.config
}

// SetSeed replaces the sampler with one seeded by seed
func (rt *Raytracer) SetSeed(seed int64) {
	rt.sampler = core.NewSeededSampler(seed)
}

// SetSampler replaces the random source used for camera and material sampling
func (rt *Raytracer) SetSampler(sampler core.Sampler) {
	rt.sampler = sampler
}

// SetLogger enables progress output every everyRows scanlines. A nil logger is silent.
func (rt *Raytracer) SetLogger(logger core.Logger, everyRows int) {
	rt.logger = logger
	rt.progressEvery = max(1, everyRows)
}

// backgroundGradient returns a gradient color based on ray direction
func (rt *Raytracer) backgroundGradient(r core.Ray) core.Vec3 {
	topColor, bottomColor := rt.scene.GetBackgroundColors()

	unitDirection := r.Direction.Normalize()

	// Use the y-component to create a gradient (map from -1,1 to 0,1)
	t := 0.5 * (unitDirection.Y + 1.0)

	// Linear interpolation: (1-t)*bottom + t*top
	return bottomColor.Multiply(1.0 - t).Add(topColor.Multiply(t))
}

// RayColor returns the radiance carried back along r with at most depth bounces
func (rt *Raytracer) RayColor(r core.Ray, depth int) core.Vec3 {
	// If we've exceeded the ray bounce limit, no more light is gathered
	if depth <= 0 {
		return core.Vec3{X: 0, Y: 0, Z: 0}
	}

	hit, isHit := rt.scene.GetWorld().Hit(r, hitEpsilon, math32.Inf(1))
	if !isHit {
		return rt.backgroundGradient(r)
	}

	scatter, didScatter := hit.Material.Scatter(r, hit, rt.sampler)
	if !didScatter {
		return core.Vec3{X: 0, Y: 0, Z: 0} // Material absorbed the ray
	}

	return scatter.Attenuation.MultiplyVec(rt.RayColor(scatter.Scattered, depth-1))
}

// RenderPixel samples the pixel at column x and row y (row 0 is the top of the image)
// and returns the accumulated statistics
func (rt *Raytracer) RenderPixel(x, y int) PixelStats {
	camera := rt.scene.GetCamera()
	j := rt.height - 1 - y

	var ps PixelStats
	for sample := 0; sample < rt.config.SamplesPerPixel; sample++ {
		// Convert pixel coordinates to normalized coordinates with jitter
		s := (float32(x) + rt.sampler.Get1D()) / float32(rt.width)
		t := (float32(j) + rt.sampler.Get1D()) / float32(rt.height)

		ray := camera.GetRay(s, t, rt.sampler)
		ps.AddSample(rt.RayColor(ray, rt.config.MaxDepth))
	}
	return ps
}

// vec3ToColor applies gamma-2 correction and quantizes a linear color to 8 bits per channel
func vec3ToColor(colorVec core.Vec3) color.RGBA {
	// Negative channels would turn into NaN under the square root
	colorVec = colorVec.Clamp(0.0, math32.MaxFloat32).Sqrt().Clamp(0.0, 0.999)

	return color.RGBA{
		R: uint8(255.999 * colorVec.X),
		G: uint8(255.999 * colorVec.Y),
		B: uint8(255.999 * colorVec.Z),
		A: 255,
	}
}

// RenderPass renders every pixel with the configured sample count and returns an image
// whose rows run top to bottom
func (rt *Raytracer) RenderPass() (*image.RGBA, RenderStats) {
	img := image.NewRGBA(image.Rect(0, 0, rt.width, rt.height))
	stats := RenderStats{
		TotalPixels: rt.width * rt.height,
		MaxDepth:    rt.config.MaxDepth,
	}

	for y := 0; y < rt.height; y++ {
		if rt.logger != nil && y%rt.progressEvery == 0 {
			rt.logger.Printf("Scanlines remaining: %d", rt.height-y)
		}

		for x := 0; x < rt.width; x++ {
			ps := rt.RenderPixel(x, y)
			stats.TotalSamples += ps.SampleCount
			img.SetRGBA(x, y, vec3ToColor(ps.GetColor()))
		}
	}

	if stats.TotalPixels > 0 {
		stats.AverageSamples = float64(stats.TotalSamples) / float64(stats.TotalPixels)
	}
	if rt.logger != nil {
		rt.logger.Printf("Done: %d pixels, %d samples", stats.TotalPixels, stats.TotalSamples)
	}

	return img, stats
}
