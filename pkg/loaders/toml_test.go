package loaders

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"github.com/df07/go-raytracer-bvh/pkg/core"
	"github.com/df07/go-raytracer-bvh/pkg/material"
)

const boxScene = `
[meta]
name = "Boxes"
description = "Two cuboids and a floor"
group = "tests"

[camera]
look_from = [0.0, 2.0, -10.0]
look_at = [0, 0, 0]
vfov = 35.0
aspect_ratio = 1.5

[render]
width = 300
height = 200
samples = 4
mode = "albedo"
seed = 7
background_top = [0.2, 0.3, 1.0]

[[material]]
name = "white"
kind = "lambertian"
albedo = [0.73, 0.73, 0.73]

[[material]]
name = "steel"
kind = "metal"
albedo = [0.8, 0.8, 0.9]
fuzz = 0.2

[[sphere]]
center = [0.0, 1.0, 0.0]
radius = 1.0
material = "steel"

[[rect]]
plane = "xz"
a0 = -5.0
a1 = 5.0
b0 = -5.0
b1 = 5.0
k = 0.0
material = "white"

[[cuboid]]
min = [1.0, 0.0, 1.0]
max = [2.0, 3.0, 2.0]
material = "white"
`

func TestParseScene(t *testing.T) {
	desc, err := ParseScene(strings.NewReader(boxScene))
	require.NoError(t, err)

	assert.Equal(t, MetaDescription{Name: "Boxes", Description: "Two cuboids and a floor", Group: "tests"}, desc.Meta)
	assert.Equal(t, [3]float64{0, 2, -10}, desc.Camera.LookFrom)
	assert.Equal(t, 35.0, desc.Camera.VFov)
	assert.Equal(t, 300, desc.Render.Width)
	assert.Equal(t, "albedo", desc.Render.Mode)
	assert.Equal(t, int64(7), desc.Render.Seed)
	require.NotNil(t, desc.Render.BackgroundTop)
	assert.Nil(t, desc.Render.BackgroundBottom)

	require.Len(t, desc.Materials, 2)
	require.Len(t, desc.Spheres, 1)
	require.Len(t, desc.Rects, 1)
	require.Len(t, desc.Cuboids, 1)
	assert.Equal(t, "xz", desc.Rects[0].Plane)
	assert.Equal(t, core.NewVec3(2, 3, 2), Vec(desc.Cuboids[0].Max))
	assert.Equal(t, []string{"steel", "white"}, desc.MaterialNames())

	steel, err := desc.Materials[1].Material()
	require.NoError(t, err)
	assert.Equal(t, material.KindMetal, steel.Kind)
	assert.Equal(t, 0.2, steel.Fuzz)
}

func TestParseScene_UnknownKeys(t *testing.T) {
	input := boxScene + `
[[sphere]]
center = [0.0, 0.0, 0.0]
radius = 1.0
material = "white"
colour = "blue"

[lights]
count = 2
`
	_, err := ParseScene(strings.NewReader(input))
	require.Error(t, err)

	var unknown UnknownKeysError
	require.True(t, errors.As(err, &unknown))
	assert.Contains(t, unknown, "sphere.colour")
	assert.Contains(t, unknown, "lights.count")
	assert.Contains(t, err.Error(), "unknown scene keys")
}

func TestParseScene_Syntax(t *testing.T) {
	_, err := ParseScene(strings.NewReader("[meta\nname = 1"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to decode scene")
}

func TestValidate_AggregatesProblems(t *testing.T) {
	input := `
[render]
width = -1
mode = "wireframe"

[[material]]
name = "a"
kind = "lambertian"

[[material]]
name = "a"
kind = "glitter"

[[sphere]]
center = [0.0, 0.0, 0.0]
radius = 0.0
material = "a"

[[rect]]
plane = "xw"
material = "missing"

[[cuboid]]
min = [0.0, 0.0, 0.0]
max = [1.0, 1.0, 1.0]
material = "also-missing"
`
	_, err := ParseScene(strings.NewReader(input))
	require.Error(t, err)
	require.ErrorIs(t, err, ErrInvalidScene)
	require.ErrorIs(t, err, material.ErrInvalidMaterial)

	messages := make([]string, 0)
	for _, e := range multierr.Errors(err) {
		messages = append(messages, e.Error())
	}
	joined := strings.Join(messages, "\n")

	for _, want := range []string{
		`duplicate name "a"`,
		`unknown kind "glitter"`,
		"radius must be positive",
		`unknown plane "xw"`,
		`unknown material "missing"`,
		`unknown material "also-missing"`,
		"must not be negative",
		`unknown render mode "wireframe"`,
	} {
		assert.Contains(t, joined, want)
	}
	assert.Len(t, messages, 8)
}

func TestValidate_NoObjects(t *testing.T) {
	desc := &SceneDescription{}
	err := desc.Validate()
	require.ErrorIs(t, err, ErrInvalidScene)
	require.Contains(t, err.Error(), "no objects")
}

func TestParsePlane(t *testing.T) {
	tests := []struct {
		plane    string
		expected core.Axis
	}{
		{"xy", core.AxisZ},
		{"XZ", core.AxisY},
		{"yz", core.AxisX},
	}
	for _, tt := range tests {
		t.Run(tt.plane, func(t *testing.T) {
			axis, err := ParsePlane(tt.plane)
			require.NoError(t, err)
			require.Equal(t, tt.expected, axis)
		})
	}

	_, err := ParsePlane("zx")
	require.Error(t, err)
}

func TestLoadSceneFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "boxes.toml")
	require.NoError(t, os.WriteFile(path, []byte(boxScene), 0o644))

	desc, err := LoadSceneFile(path)
	require.NoError(t, err)
	require.Equal(t, "Boxes", desc.Meta.Name)

	_, err = LoadSceneFile(filepath.Join(dir, "missing.toml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadSceneFile_RejectsPaths(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		contains string
	}{
		{"empty", "", "cannot be empty"},
		{"wrong extension", "scenes/cornell.pbrt", "only .toml"},
		{"null byte", "scenes/a\x00.toml", "null bytes"},
		{"too long", "scenes/" + strings.Repeat("a", 600) + ".toml", "too long"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadSceneFile(tt.path)
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestParseSceneMeta_IgnoresBody(t *testing.T) {
	meta, err := ParseSceneMeta(strings.NewReader(boxScene + "\n[unknown]\nkey = 1\n"))
	require.NoError(t, err)
	require.Equal(t, "Boxes", meta.Name)
	require.Equal(t, "tests", meta.Group)
}
