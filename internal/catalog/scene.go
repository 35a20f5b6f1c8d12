package catalog

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ugaemi/pawseek/internal/geom"
)

// Scene is a background the entities hide in.
type Scene int

const (
	SceneFarm Scene = iota
	SceneSavanna
	SceneForest
	SceneSnowyForest

	sceneCount
)

type sceneInfo struct {
	name  string
	size  geom.Size
	zone  geom.Rect // pixels of the background image
	image string
}

var scenes = [sceneCount]sceneInfo{
	SceneFarm: {
		name:  "farm",
		size:  geom.Size{Width: 1920, Height: 1080},
		zone:  geom.Rect{X: 0, Y: 614, Width: 1920, Height: 1080 - 614},
		image: "background-farm.jpg",
	},
	SceneSavanna: {
		name:  "savanna",
		size:  geom.Size{Width: 1920, Height: 1280},
		zone:  geom.Rect{X: 0, Y: 1280 - 272, Width: 1920, Height: 272},
		image: "background-savanna.jpg",
	},
	SceneForest: {
		name:  "forest",
		size:  geom.Size{Width: 1920, Height: 1017},
		zone:  geom.Rect{X: 0, Y: 1017 - 285, Width: 1920, Height: 285},
		image: "background-forest.jpg",
	},
	SceneSnowyForest: {
		name:  "snowy-forest",
		size:  geom.Size{Width: 1920, Height: 1807},
		zone:  geom.Rect{X: 0, Y: 1807 - 355, Width: 1920, Height: 355},
		image: "background-snowy-forest.jpg",
	},
}

// Valid reports whether s is a known scene.
func (s Scene) Valid() bool {
	return s >= 0 && s < sceneCount
}

func (s Scene) String() string {
	if !s.Valid() {
		return "unknown"
	}
	return scenes[s].name
}

// Size is the pixel size of the scene's background art.
func (s Scene) Size() geom.Size {
	if !s.Valid() {
		return geom.Size{}
	}
	return scenes[s].size
}

// Image is the background asset name.
func (s Scene) Image() string {
	if !s.Valid() {
		return ""
	}
	return scenes[s].image
}

// UsableZone is the region entities may be placed in, normalized to the
// scene size so it holds at any rendering resolution.
func (s Scene) UsableZone() geom.Rect {
	if !s.Valid() {
		return geom.Rect{}
	}
	return scenes[s].zone.Normalize(scenes[s].size)
}

// ParseScene resolves a scene by name. Underscores and spaces are accepted
// in place of dashes.
func ParseScene(name string) (Scene, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.NewReplacer("_", "-", " ", "-").Replace(name)
	for s := Scene(0); s < sceneCount; s++ {
		if scenes[s].name == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownScene, name)
}

// MarshalJSON serializes Scene as its name.
func (s Scene) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON deserializes Scene from its name.
func (s *Scene) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	parsed, err := ParseScene(str)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
