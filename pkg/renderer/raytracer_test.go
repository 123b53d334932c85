package renderer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/df07/go-raytracer-bvh/pkg/core"
	"github.com/df07/go-raytracer-bvh/pkg/geometry"
	"github.com/df07/go-raytracer-bvh/pkg/material"
)

var background = core.NewVec3(0.2, 0.3, 0.4)

func testCamera() *Camera {
	return NewCamera(CameraConfig{
		LookFrom:    core.NewVec3(0, 0, 0),
		LookAt:      core.NewVec3(0, 0, -1),
		VUp:         core.NewVec3(0, 1, 0),
		VFov:        30,
		AspectRatio: 21.0 / 11.0,
	})
}

func testConfig(mode Mode) Config {
	return Config{
		Width:            21,
		Height:           11,
		Samples:          2,
		Mode:             mode,
		Seed:             42,
		BackgroundTop:    background,
		BackgroundBottom: background,
	}
}

func pixel(img *ImageData, x, y, samples int) core.Vec3 {
	return img.Get(x, y).Multiply(1 / float64(samples))
}

func TestRaytracer_Render_NormalMode(t *testing.T) {
	world := geometry.NewSphere(core.NewVec3(0, 0, -1), 0.25, nil)
	config := testConfig(ModeNormal)

	img, stats, err := NewRaytracer(world, testCamera(), config, nil).Render(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 231, stats.Pixels)
	assert.Equal(t, 462, stats.Rays)
	assert.Greater(t, stats.Hits, 0)
	assert.Less(t, stats.Hits, stats.Rays)

	// The sphere faces the camera in the middle of the frame
	center := pixel(img, 10, 5, config.Samples)
	assert.InDelta(t, 0.5, center.X, 0.1)
	assert.InDelta(t, 0.5, center.Y, 0.1)
	assert.InDelta(t, 1.0, center.Z, 0.1)

	// Corners see only the background
	requireVecInDelta(t, background, pixel(img, 0, 10, config.Samples), 1e-12)
	requireVecInDelta(t, background, pixel(img, 20, 0, config.Samples), 1e-12)
}

func TestRaytracer_Render_AlbedoMode(t *testing.T) {
	red := material.NewLambertian("red", core.NewVec3(1, 0, 0))
	world := geometry.NewHittableList(
		geometry.NewSphere(core.NewVec3(0, 0, -1), 0.25, red),
		geometry.NewSphere(core.NewVec3(100, 0, 0), 1, "no albedo"),
	)
	config := testConfig(ModeAlbedo)

	img, _, err := NewRaytracer(world, testCamera(), config, nil).Render(context.Background())
	require.NoError(t, err)

	center := pixel(img, 10, 5, config.Samples)
	assert.InDelta(t, 1.0, center.X, 0.05)
	assert.InDelta(t, 0.0, center.Y, 1e-12)
	assert.InDelta(t, 0.0, center.Z, 1e-12)
}

func TestRaytracer_Render_FallbackAlbedo(t *testing.T) {
	world := geometry.NewSphere(core.NewVec3(0, 0, -1), 0.25, "opaque")
	config := testConfig(ModeAlbedo)

	img, _, err := NewRaytracer(world, testCamera(), config, nil).Render(context.Background())
	require.NoError(t, err)

	center := pixel(img, 10, 5, config.Samples)
	assert.InDelta(t, 0.5, center.X, 0.03)
	assert.Equal(t, center.X, center.Y)
	assert.Equal(t, center.X, center.Z)
}

func TestRaytracer_Render_Deterministic(t *testing.T) {
	world := geometry.NewSphere(core.NewVec3(0, 0, -1), 0.25, nil)
	config := testConfig(ModeNormal)

	first, _, err := NewRaytracer(world, testCamera(), config, nil).Render(context.Background())
	require.NoError(t, err)
	second, _, err := NewRaytracer(world, testCamera(), config, nil).Render(context.Background())
	require.NoError(t, err)

	require.Equal(t, first, second)
}

func TestRaytracer_Render_InvalidConfig(t *testing.T) {
	world := geometry.NewSphere(core.NewVec3(0, 0, -1), 0.25, nil)

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.Width = 0 }},
		{"zero samples", func(c *Config) { c.Samples = 0 }},
		{"unknown mode", func(c *Config) { c.Mode = "wireframe" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := testConfig(ModeNormal)
			tt.mutate(&config)

			_, _, err := NewRaytracer(world, testCamera(), config, nil).Render(context.Background())
			require.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestRaytracer_Render_Cancelled(t *testing.T) {
	world := geometry.NewSphere(core.NewVec3(0, 0, -1), 0.25, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := NewRaytracer(world, testCamera(), testConfig(ModeNormal), nil).Render(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestRaytracer_Render_Logs(t *testing.T) {
	observed, logs := observer.New(zap.DebugLevel)
	world := geometry.NewSphere(core.NewVec3(0, 0, -1), 0.25, nil)

	_, stats, err := NewRaytracer(world, testCamera(), testConfig(ModeNormal), zap.New(observed)).Render(context.Background())
	require.NoError(t, err)

	finished := logs.FilterMessage("render finished").All()
	require.Len(t, finished, 1)
	assert.Equal(t, int64(stats.Rays), finished[0].ContextMap()["rays"])
	assert.Equal(t, 11, logs.FilterMessage("render progress").Len())
}

func TestConfig_Defaults(t *testing.T) {
	config := DefaultConfig()
	require.NoError(t, config.Validate())
	assert.InDelta(t, 400.0/225.0, config.AspectRatio(), 1e-12)
}
