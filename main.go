package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/go-sphere-tracer/pkg/output"
	"github.com/df07/go-sphere-tracer/pkg/renderer"
	"github.com/df07/go-sphere-tracer/pkg/scene"
)

// stdoutPath selects standard output as the render destination
const stdoutPath = "-"

func main() {
	// Parse command line flags
	sceneName := flag.String("scene", "default", "Built-in scene name or path to a .json scene file")
	configPath := flag.String("config", "", "Path to a JSON scene file (takes precedence over -scene)")
	width := flag.Int("width", 0, "Image width in pixels (0 = scene default, height follows the aspect ratio)")
	samples := flag.Int("samples", 0, "Samples per pixel (0 = scene default)")
	depth := flag.Int("depth", 0, "Maximum ray bounce depth (0 = scene default)")
	seed := flag.Int64("seed", renderer.DefaultSeed, "Random seed for reproducible renders")
	out := flag.String("out", "", "Output file, or '-' for stdout (default output/<scene>/render_<timestamp>.<format>)")
	format := flag.String("format", "", "Output format: 'png' or 'ppm' (default from -out extension, png for files, ppm for stdout)")
	progress := flag.Int("progress", 0, "Log progress every N scanlines to stderr (0 = silent)")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	// Show help if requested
	if *help {
		showHelp(os.Stdout)
		return
	}

	// Status lines must not mix with image data on stdout
	status := io.Writer(os.Stdout)
	if *out == stdoutPath {
		status = os.Stderr
	}

	if *width < 0 || *samples < 0 || *depth < 0 {
		fail(fmt.Errorf("-width, -samples and -depth must not be negative"))
	}

	fmt.Fprintln(status, "Starting Sphere Tracer...")

	selectedScene, err := createScene(*sceneName, *configPath)
	if err != nil {
		fail(err)
	}
	if *width > 0 {
		selectedScene.SetWidth(*width)
	}

	outFormat, err := resolveFormat(*format, *out)
	if err != nil {
		fail(err)
	}

	label := sceneLabel(*sceneName, *configPath)
	fmt.Fprintf(status, "Using %s scene (%d objects, %dx%d)...\n",
		label, selectedScene.GetPrimitiveCount(), selectedScene.Width, selectedScene.Height)

	// Create raytracer
	raytracer := renderer.NewRaytracer(selectedScene, selectedScene.Width, selectedScene.Height)
	raytracer.SetSamplingConfig(mergeSamplingConfig(selectedScene.SamplingConfig, *samples, *depth))
	raytracer.SetSeed(*seed)
	if *progress > 0 {
		raytracer.SetLogger(log.New(os.Stderr, "", log.LstdFlags), *progress)
	}

	// Render one pass
	startTime := time.Now()
	img, stats := raytracer.RenderPass()
	renderTime := time.Since(startTime)

	fmt.Fprintf(status, "Render completed in %v\n", renderTime)
	fmt.Fprintf(status, "Samples per pixel: %.1f, max depth %d\n", stats.AverageSamples, stats.MaxDepth)

	if *out == stdoutPath {
		if err := output.Encode(os.Stdout, img, outFormat); err != nil {
			fail(err)
		}
		return
	}

	filename := outputPath(*out, label, outFormat, time.Now())
	if err := output.SaveImage(filename, img, outFormat); err != nil {
		fail(err)
	}
	fmt.Fprintf(status, "Render saved as %s\n", filename)
}

func showHelp(w io.Writer) {
	fmt.Fprintln(w, "Sphere Tracer")
	fmt.Fprintln(w, "Usage: sphere-tracer [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	flag.CommandLine.SetOutput(w)
	flag.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Available scenes:")
	for _, info := range scene.ListScenes() {
		fmt.Fprintf(w, "  %-8s - %s\n", info.Name, info.Description)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output will be saved to output/<scene>/render_<timestamp>.<format> unless -out is given")
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

// createScene loads configPath when set, otherwise looks up name
func createScene(name, configPath string) (*scene.Scene, error) {
	if configPath != "" {
		return scene.LoadScene(configPath)
	}
	return scene.Create(name)
}

// mergeSamplingConfig applies the positive command line overrides to the scene's recommendation
func mergeSamplingConfig(base renderer.SamplingConfig, samples, depth int) renderer.SamplingConfig {
	if samples > 0 {
		base.SamplesPerPixel = samples
	}
	if depth > 0 {
		base.MaxDepth = depth
	}
	return base
}

// resolveFormat picks the output format from the flag, then the output file extension
func resolveFormat(formatFlag, out string) (output.Format, error) {
	if formatFlag != "" {
		return output.ParseFormat(formatFlag)
	}
	if out == stdoutPath {
		return output.FormatPPM, nil
	}
	if ext := filepath.Ext(out); ext != "" {
		return output.ParseFormat(ext)
	}
	return output.FormatPNG, nil
}

// sceneLabel names the scene for status lines and the default output directory
func sceneLabel(name, configPath string) string {
	if configPath != "" {
		name = configPath
	}
	base := filepath.Base(name)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// outputPath returns out, or a timestamped file under output/<label>/ when out is empty
func outputPath(out, label string, format output.Format, now time.Time) string {
	if out != "" {
		return out
	}
	timestamp := now.Format("20060102_150405")
	return filepath.Join("output", label, fmt.Sprintf("render_%s.%s", timestamp, format))
}
