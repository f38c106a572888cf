package scene

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// SceneInfo describes a built-in scene
type SceneInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type builtinScene struct {
	info   SceneInfo
	create func() *Scene
}

var builtinScenes = map[string]builtinScene{
	"single": {
		info:   SceneInfo{Name: "single", Description: "One diffuse sphere in front of a pinhole camera"},
		create: NewSingleSphereScene,
	},
	"default": {
		info:   SceneInfo{Name: "default", Description: "Diffuse, metal and hollow glass spheres with depth of field"},
		create: func() *Scene { return NewDefaultScene() },
	},
	"random": {
		info:   SceneInfo{Name: "random", Description: "Grid of small random-material spheres around three large ones"},
		create: func() *Scene { return NewSphereGridScene(DefaultSphereGridSeed) },
	},
}

// ListScenes returns the built-in scenes sorted by name
func ListScenes() []SceneInfo {
	scenes := make([]SceneInfo, 0, len(builtinScenes))
	for _, s := range builtinScenes {
		scenes = append(scenes, s.info)
	}
	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].Name < scenes[j].Name
	})
	return scenes
}

// Create returns the built-in scene with the given name, or loads a scene file
// when the name ends in .json
func Create(name string) (*Scene, error) {
	if s, ok := builtinScenes[name]; ok {
		return s.create(), nil
	}
	if strings.EqualFold(filepath.Ext(name), ".json") {
		return LoadScene(name)
	}
	if name == "" {
		return nil, fmt.Errorf("scene name is required")
	}
	return nil, fmt.Errorf("unknown scene %q", name)
}
