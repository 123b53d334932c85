package renderer

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-raytracer-bvh/pkg/core"
)

func requireVecInDelta(t *testing.T, expected, actual core.Vec3, delta float64) {
	t.Helper()
	require.InDelta(t, expected.X, actual.X, delta, "x of %v", actual)
	require.InDelta(t, expected.Y, actual.Y, delta, "y of %v", actual)
	require.InDelta(t, expected.Z, actual.Z, delta, "z of %v", actual)
}

func TestCamera_GetRay_Viewport(t *testing.T) {
	camera := NewCamera(CameraConfig{
		LookFrom:    core.NewVec3(0, 0, 0),
		LookAt:      core.NewVec3(0, 0, -1),
		VUp:         core.NewVec3(0, 1, 0),
		VFov:        90,
		AspectRatio: 1,
	})

	tests := []struct {
		name      string
		s, t      float64
		direction core.Vec3
	}{
		{"center", 0.5, 0.5, core.NewVec3(0, 0, -1)},
		{"lower left", 0, 0, core.NewVec3(-1, -1, -1)},
		{"upper right", 1, 1, core.NewVec3(1, 1, -1)},
		{"right edge", 1, 0.5, core.NewVec3(1, 0, -1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := camera.GetRay(tt.s, tt.t, nil)
			requireVecInDelta(t, core.Vec3{}, ray.Origin, 1e-12)
			requireVecInDelta(t, tt.direction, ray.Direction, 1e-12)
		})
	}
}

func TestCamera_DefaultFocusDistance(t *testing.T) {
	camera := NewCamera(CameraConfig{
		LookFrom: core.NewVec3(0, 0, 5),
		LookAt:   core.NewVec3(0, 0, 0),
		VFov:     40,
	})

	ray := camera.GetRay(0.5, 0.5, nil)
	requireVecInDelta(t, core.NewVec3(0, 0, -5), ray.Direction, 1e-12)
}

func TestCamera_ApertureKeepsFocalPlaneSharp(t *testing.T) {
	camera := NewCamera(CameraConfig{
		LookFrom:    core.NewVec3(0, 0, 5),
		LookAt:      core.NewVec3(0, 0, 0),
		VUp:         core.NewVec3(0, 1, 0),
		VFov:        40,
		AspectRatio: 1,
		Aperture:    0.5,
	})
	random := rand.New(rand.NewSource(42))

	moved := 0
	for i := 0; i < 50; i++ {
		ray := camera.GetRay(0.5, 0.5, random)

		offset := ray.Origin.Subtract(core.NewVec3(0, 0, 5))
		require.LessOrEqual(t, offset.Length(), 0.25+1e-12)
		require.InDelta(t, 0.0, offset.Z, 1e-12)
		if offset.Length() > 0 {
			moved++
		}

		// Every lens sample passes through the same focal point
		requireVecInDelta(t, core.NewVec3(0, 0, 0), ray.At(1), 1e-9)
	}
	assert.Greater(t, moved, 0)
}

func TestMergeCameraConfig(t *testing.T) {
	base := DefaultCameraConfig()
	merged := MergeCameraConfig(base, CameraConfig{
		LookFrom: core.NewVec3(1, 2, 3),
		VFov:     60,
	})

	assert.Equal(t, core.NewVec3(1, 2, 3), merged.LookFrom)
	assert.Equal(t, 60.0, merged.VFov)
	assert.Equal(t, base.LookAt, merged.LookAt)
	assert.Equal(t, base.VUp, merged.VUp)
	assert.Equal(t, base.AspectRatio, merged.AspectRatio)
	assert.Equal(t, base, MergeCameraConfig(base, CameraConfig{}))
}
