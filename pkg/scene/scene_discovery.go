package scene

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/df07/go-raytracer-bvh/pkg/loaders"
)

// builtInGroup is the group every built-in scene is listed under
const builtInGroup = "Built-in Scenes"

// defaultGridSize is the sphere grid resolution used when the scene is looked up by name
const defaultGridSize = 20

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string // Unique identifier
	Name        string // Scene name
	Description string // Optional description
	Group       string // Grouping category
	Type        string // "builtin" or "toml"
	FilePath    string // Path to the scene file (toml type only)
}

// SceneGroup represents a group of related scenes
type SceneGroup struct {
	Name   string
	Scenes []SceneInfo
}

type builtIn struct {
	info  SceneInfo
	build func(logger *zap.Logger) (*Scene, error)
}

var builtIns = []builtIn{
	{
		info: SceneInfo{ID: "default", Name: "Default Scene", Description: "Spheres, a block and a ground rectangle"},
		build: func(logger *zap.Logger) (*Scene, error) {
			return NewDefaultScene(logger)
		},
	},
	{
		info: SceneInfo{ID: "cornell-box", Name: "Cornell Box", Description: "Cornell box with two blocks"},
		build: func(logger *zap.Logger) (*Scene, error) {
			return NewCornellScene(logger)
		},
	},
	{
		info: SceneInfo{ID: "sphere-grid", Name: "Sphere Grid", Description: "20x20 grid of rainbow-colored metallic spheres"},
		build: func(logger *zap.Logger) (*Scene, error) {
			return NewSphereGridScene(logger, defaultGridSize)
		},
	},
}

// BuiltInScenes lists the scenes that can be created by ID
func BuiltInScenes() []SceneInfo {
	scenes := make([]SceneInfo, 0, len(builtIns))
	for _, b := range builtIns {
		info := b.info
		info.Group = builtInGroup
		info.Type = "builtin"
		scenes = append(scenes, info)
	}
	return scenes
}

func findBuiltIn(id string) (builtIn, bool) {
	for _, b := range builtIns {
		if b.info.ID == id {
			return b, true
		}
	}
	return builtIn{}, false
}

// Lookup creates the built-in scene with the given ID
func Lookup(id string, logger *zap.Logger) (*Scene, error) {
	b, ok := findBuiltIn(id)
	if !ok {
		return nil, fmt.Errorf("%w: unknown scene %q", ErrInvalidScene, id)
	}
	return b.build(logger)
}

// Resolve creates a scene from a built-in ID, a scene name in scenesDir or
// a path to a .toml file.
func Resolve(nameOrPath, scenesDir string, logger *zap.Logger) (*Scene, error) {
	if nameOrPath == "" {
		return nil, fmt.Errorf("%w: no scene given", ErrInvalidScene)
	}

	if strings.HasSuffix(strings.ToLower(nameOrPath), ".toml") {
		return LoadFile(nameOrPath, logger)
	}

	if b, ok := findBuiltIn(nameOrPath); ok {
		return b.build(logger)
	}

	if scenesDir != "" {
		path := filepath.Join(scenesDir, nameOrPath+".toml")
		if _, err := os.Stat(path); err == nil {
			return LoadFile(path, logger)
		}
	}

	return nil, fmt.Errorf("%w: unknown scene %q", ErrInvalidScene, nameOrPath)
}

// LoadFile reads a TOML scene file and builds it
func LoadFile(path string, logger *zap.Logger) (*Scene, error) {
	desc, err := loaders.LoadSceneFile(path)
	if err != nil {
		return nil, err
	}
	return FromDescription(desc, logger)
}

// ListSceneFiles scans dir for .toml scenes. A missing directory yields no
// scenes; files whose metadata cannot be read are skipped with a warning.
func ListSceneFiles(dir string, logger *zap.Logger) ([]SceneInfo, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if _, err := os.Stat(dir); err != nil {
		return []SceneInfo{}, nil
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.toml"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}

	var scenes []SceneInfo
	for _, filePath := range files {
		sceneInfo, err := ParseSceneMetadata(filePath)
		if err != nil {
			logger.Warn("failed to parse scene metadata", zap.String("path", filePath), zap.Error(err))
			continue
		}
		scenes = append(scenes, sceneInfo)
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].Name < scenes[j].Name
	})

	return scenes, nil
}

// ParseSceneMetadata reads the [meta] table of a scene file, falling back to
// names derived from the file name.
func ParseSceneMetadata(filePath string) (SceneInfo, error) {
	filename := filepath.Base(filePath)
	nameWithoutExt := strings.TrimSuffix(filename, filepath.Ext(filename))

	sceneInfo := SceneInfo{
		ID:       nameWithoutExt,
		Name:     titleCase(nameWithoutExt),
		Group:    "Scene Files",
		Type:     "toml",
		FilePath: filePath,
	}

	file, err := os.Open(filePath)
	if err != nil {
		return sceneInfo, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer file.Close()

	meta, err := loaders.ParseSceneMeta(file)
	if err != nil {
		return sceneInfo, err
	}

	if meta.Name != "" {
		sceneInfo.Name = meta.Name
	}
	if meta.Group != "" {
		sceneInfo.Group = meta.Group
	}
	sceneInfo.Description = meta.Description

	return sceneInfo, nil
}

// ListAllScenes returns both built-in and discovered scenes, grouped by
// category with the built-in group first.
func ListAllScenes(scenesDir string, logger *zap.Logger) ([]SceneGroup, error) {
	fileScenes, err := ListSceneFiles(scenesDir, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to list scene files: %w", err)
	}

	allScenes := append(BuiltInScenes(), fileScenes...)

	groupMap := make(map[string][]SceneInfo)
	for _, scene := range allScenes {
		groupMap[scene.Group] = append(groupMap[scene.Group], scene)
	}

	var groupNames []string
	for groupName := range groupMap {
		if groupName != builtInGroup {
			groupNames = append(groupNames, groupName)
		}
	}
	sort.Strings(groupNames)

	groups := []SceneGroup{{Name: builtInGroup, Scenes: groupMap[builtInGroup]}}
	for _, groupName := range groupNames {
		groups = append(groups, SceneGroup{Name: groupName, Scenes: groupMap[groupName]})
	}

	return groups, nil
}

// titleCase converts a filename-style string to title case
// e.g., "cornell-empty" -> "Cornell Empty"
func titleCase(s string) string {
	// Replace hyphens and underscores with spaces
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	// Title case each word
	words := strings.Fields(s)
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
		}
	}

	return strings.Join(words, " ")
}
