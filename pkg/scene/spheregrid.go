package scene

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/df07/go-raytracer-bvh/pkg/core"
	"github.com/df07/go-raytracer-bvh/pkg/material"
	"github.com/df07/go-raytracer-bvh/pkg/renderer"
)

// oklchToRGB converts OKLCH color values to RGB
// L: lightness (0-1), C: chroma (0-0.4+), H: hue (0-360 degrees)
func oklchToRGB(l, c, h float64) core.Vec3 {
	// Convert hue from degrees to radians
	hRad := h * math.Pi / 180.0

	// Convert from OKLCH to OKLAB
	a := c * math.Cos(hRad)
	b := c * math.Sin(hRad)

	// First convert to LMS
	l_ := l + 0.3963377774*a + 0.2158037573*b
	m_ := l - 0.1055613458*a - 0.0638541728*b
	s_ := l - 0.0894841775*a - 1.2914855480*b

	// Cube the values
	l_ = l_ * l_ * l_
	m_ = m_ * m_ * m_
	s_ = s_ * s_ * s_

	// Convert LMS to linear RGB
	r := +4.0767416621*l_ - 3.3077115913*m_ + 0.2309699292*s_
	g := -1.2684380046*l_ + 2.6097574011*m_ - 0.3413193965*s_
	blue := -0.0041960863*l_ - 0.7034186147*m_ + 1.7076147010*s_

	return core.NewVec3(r, g, blue).Clamp(0, 1)
}

// NewSphereGridScene creates a scene with a gridSize x gridSize grid of metal
// spheres on a floor. It is the largest built-in scene and the default
// workload for BVH benchmarks.
func NewSphereGridScene(logger *zap.Logger, gridSize int, cameraOverrides ...renderer.CameraConfig) (*Scene, error) {
	if gridSize < 2 {
		return nil, fmt.Errorf("%w: sphere grid needs at least 2x2 spheres, got %d", ErrInvalidScene, gridSize)
	}

	cameraConfig := renderer.CameraConfig{
		LookFrom:      core.NewVec3(4.5, 6, 18),    // Position camera farther back and slightly lower
		LookAt:        core.NewVec3(4.5, 0.8, 4.5), // Look at center of grid, slightly lower
		VUp:           core.NewVec3(0, 1, 0),
		AspectRatio:   16.0 / 9.0,
		VFov:          40.0,
		Aperture:      0.02, // Small depth of field for some focus variation
		FocusDistance: 0.0,
	}
	if len(cameraOverrides) > 0 {
		cameraConfig = renderer.MergeCameraConfig(cameraConfig, cameraOverrides[0])
	}

	renderConfig := renderer.DefaultConfig()
	renderConfig.Width = 800
	renderConfig.Height = 450
	renderConfig.Mode = renderer.ModeAlbedo

	b := NewBuilder(fmt.Sprintf("sphere-grid-%d", gridSize), logger).SetCamera(cameraConfig).SetRender(renderConfig)

	// Sun-like light, high and to the side
	sun := b.AddMaterial(material.NewEmissive("sun", core.NewVec3(12.0, 11.5, 10.0)))
	b.AddSphere(core.NewVec3(20, 25, 20), 8, sun)

	ground := b.AddMaterial(material.NewLambertian("ground", core.NewVec3(0.5, 0.5, 0.5)))
	b.AddRect(NewGroundRect(core.NewVec3(4.5, 0, 4.5), 200, ground))

	// Calculate spacing and radius to fit grid in a 9x9 area
	targetArea := 9.0
	spacing := targetArea / float64(gridSize-1)

	// 35% of spacing, kept within a visible range
	sphereRadius := math.Max(0.02, math.Min(0.35, spacing*0.35))

	// OKLCH parameters for color variation
	baseLightness := 0.65
	minChroma := 0.05
	maxChroma := 0.25

	for i := 0; i < gridSize; i++ {
		for j := 0; j < gridSize; j++ {
			// Position sphere in grid, centered around x = z = 4.5
			x := float64(i)*spacing - targetArea/2.0 + 4.5
			z := float64(j)*spacing - targetArea/2.0 + 4.5
			position := core.NewVec3(x, sphereRadius, z)

			// Hue across X, chroma across Z, slight lightness variation
			hue := (float64(i) / float64(gridSize-1)) * 360.0
			chroma := minChroma + (float64(j)/float64(gridSize-1))*(maxChroma-minChroma)
			lightness := baseLightness + 0.1*math.Sin(float64(i+j)*0.5)

			roughness := 0.05 + 0.1*float64((i+j)%3)/2.0
			metal := b.AddMaterial(material.NewMetal(
				fmt.Sprintf("metal-%d-%d", i, j), oklchToRGB(lightness, chroma, hue), roughness))

			b.AddSphere(position, sphereRadius, metal)
		}
	}

	return b.BuildSeeded()
}
