package scene

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestTitleCase(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"cornell-empty", "Cornell Empty"},
		{"three_spheres", "Three Spheres"},
		{"my-custom-scene", "My Custom Scene"},
		{"simple", "Simple"},
		{"UPPER-case", "Upper Case"},
		{"", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			assert.Equal(t, tc.expected, titleCase(tc.input))
		})
	}
}

const minimalScene = `
[[material]]
name = "white"
kind = "lambertian"
albedo = [0.5, 0.5, 0.5]

[[sphere]]
center = [0.0, 0.0, -1.0]
radius = 0.5
material = "white"
`

func writeScene(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParseSceneMetadata(t *testing.T) {
	dir := t.TempDir()

	t.Run("with meta table", func(t *testing.T) {
		path := writeScene(t, dir, "lit-room.toml", `
[meta]
name = "Lit Room"
description = "A room with a lamp"
group = "Rooms"
`+minimalScene)

		info, err := ParseSceneMetadata(path)
		require.NoError(t, err)
		assert.Equal(t, SceneInfo{
			ID:          "lit-room",
			Name:        "Lit Room",
			Description: "A room with a lamp",
			Group:       "Rooms",
			Type:        "toml",
			FilePath:    path,
		}, info)
	})

	t.Run("falls back to file name", func(t *testing.T) {
		path := writeScene(t, dir, "single_sphere.toml", minimalScene)

		info, err := ParseSceneMetadata(path)
		require.NoError(t, err)
		assert.Equal(t, "single_sphere", info.ID)
		assert.Equal(t, "Single Sphere", info.Name)
		assert.Equal(t, "Scene Files", info.Group)
		assert.Empty(t, info.Description)
	})

	t.Run("malformed file", func(t *testing.T) {
		path := writeScene(t, dir, "broken.toml", "[meta\nname = ")
		_, err := ParseSceneMetadata(path)
		require.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := ParseSceneMetadata(filepath.Join(dir, "absent.toml"))
		require.Error(t, err)
	})
}

func TestListSceneFiles(t *testing.T) {
	dir := t.TempDir()
	writeScene(t, dir, "zeta.toml", minimalScene)
	writeScene(t, dir, "alpha.toml", minimalScene)
	writeScene(t, dir, "broken.toml", "[meta\n")
	writeScene(t, dir, "notes.txt", "not a scene")

	observed, logs := observer.New(zap.WarnLevel)
	scenes, err := ListSceneFiles(dir, zap.New(observed))
	require.NoError(t, err)

	require.Len(t, scenes, 2)
	assert.Equal(t, "Alpha", scenes[0].Name)
	assert.Equal(t, "Zeta", scenes[1].Name)

	warnings := logs.FilterMessage("failed to parse scene metadata").All()
	require.Len(t, warnings, 1)
	assert.Equal(t, filepath.Join(dir, "broken.toml"), warnings[0].ContextMap()["path"])
}

func TestListSceneFiles_MissingDirectory(t *testing.T) {
	scenes, err := ListSceneFiles(filepath.Join(t.TempDir(), "nope"), nil)
	require.NoError(t, err)
	assert.Empty(t, scenes)
}

func TestListAllScenes(t *testing.T) {
	groups, err := ListAllScenes("../../scenes", nil)
	require.NoError(t, err)
	require.Len(t, groups, 3)

	assert.Equal(t, "Built-in Scenes", groups[0].Name)
	require.Len(t, groups[0].Scenes, len(builtIns))
	for _, info := range groups[0].Scenes {
		assert.Equal(t, "builtin", info.Type)
		assert.Empty(t, info.FilePath)
	}

	assert.Equal(t, "Cornell Variants", groups[1].Name)
	require.Len(t, groups[1].Scenes, 1)
	assert.Equal(t, "cornell-spheres", groups[1].Scenes[0].ID)

	assert.Equal(t, "Examples", groups[2].Name)
	require.Len(t, groups[2].Scenes, 1)
	assert.Equal(t, "Three Spheres", groups[2].Scenes[0].Name)
}

func TestResolve(t *testing.T) {
	dir := t.TempDir()
	path := writeScene(t, dir, "tiny.toml", "[meta]\nname = \"Tiny\"\n"+minimalScene)

	tests := []struct {
		name      string
		input     string
		scenesDir string
		expected  string
	}{
		{"built-in id", "cornell-box", dir, "cornell-box"},
		{"name in scenes directory", "tiny", dir, "Tiny"},
		{"explicit path", path, "", "Tiny"},
		{"repository scene", "three-spheres", "../../scenes", "Three Spheres"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Resolve(tt.input, tt.scenesDir, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, s.Name)
		})
	}

	for _, input := range []string{"", "teapot"} {
		_, err := Resolve(input, dir, nil)
		assert.ErrorIs(t, err, ErrInvalidScene, "input %q", input)
	}

	_, err := Resolve(filepath.Join(dir, "absent.toml"), dir, nil)
	assert.Error(t, err)
}
