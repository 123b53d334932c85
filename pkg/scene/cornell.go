package scene

import (
	"go.uber.org/zap"

	"github.com/df07/go-raytracer-bvh/pkg/core"
	"github.com/df07/go-raytracer-bvh/pkg/geometry"
	"github.com/df07/go-raytracer-bvh/pkg/material"
	"github.com/df07/go-raytracer-bvh/pkg/renderer"
)

// cornellSize is the edge length of the Cornell box
const cornellSize = 555.0

// NewCornellScene creates a classic Cornell box: five walls and a ceiling
// light made of rectangles, with two cuboids standing on the floor.
func NewCornellScene(logger *zap.Logger, cameraOverrides ...renderer.CameraConfig) (*Scene, error) {
	cameraConfig := renderer.CameraConfig{
		LookFrom:      core.NewVec3(278, 278, -800), // Position camera outside the box looking in
		LookAt:        core.NewVec3(278, 278, 0),    // Look at the center of the box
		VUp:           core.NewVec3(0, 1, 0),
		VFov:          40.0,
		AspectRatio:   1.0, // Square aspect ratio for Cornell box
		Aperture:      0.0, // No depth of field for Cornell box
		FocusDistance: 0.0, // Auto-calculate focus distance
	}
	if len(cameraOverrides) > 0 {
		cameraConfig = renderer.MergeCameraConfig(cameraConfig, cameraOverrides[0])
	}

	renderConfig := renderer.DefaultConfig()
	renderConfig.Width = 400
	renderConfig.Height = 400
	renderConfig.Mode = renderer.ModeAlbedo
	renderConfig.BackgroundTop = core.NewVec3(0, 0, 0) // Black background
	renderConfig.BackgroundBottom = core.NewVec3(0, 0, 0)

	b := NewBuilder("cornell-box", logger).SetCamera(cameraConfig).SetRender(renderConfig)

	// Create materials
	white := b.AddMaterial(material.NewLambertian("white", core.NewVec3(0.73, 0.73, 0.73)))
	red := b.AddMaterial(material.NewLambertian("red", core.NewVec3(0.65, 0.05, 0.05)))
	green := b.AddMaterial(material.NewLambertian("green", core.NewVec3(0.12, 0.45, 0.15)))
	light := b.AddMaterial(material.NewEmissive("light", core.NewVec3(15.0, 15.0, 15.0)))

	// Walls face into the box
	b.AddRect(geometry.NewYZRect(0, cornellSize, 0, cornellSize, cornellSize, green).Flip()) // right wall, x = 555
	b.AddRect(geometry.NewYZRect(0, cornellSize, 0, cornellSize, 0, red))                    // left wall, x = 0
	b.AddRect(geometry.NewXZRect(0, cornellSize, 0, cornellSize, 0, white))                  // floor
	b.AddRect(geometry.NewXZRect(0, cornellSize, 0, cornellSize, cornellSize, white).Flip()) // ceiling
	b.AddRect(geometry.NewXYRect(0, cornellSize, 0, cornellSize, cornellSize, white).Flip()) // back wall

	// Ceiling light, slightly below the ceiling
	b.AddRect(geometry.NewXZRect(213, 343, 227, 332, cornellSize-1, light).Flip())

	// Short and tall blocks
	b.AddCuboid(core.NewVec3(130, 0, 65), core.NewVec3(295, 165, 230), white)
	b.AddCuboid(core.NewVec3(265, 0, 295), core.NewVec3(430, 330, 460), white)

	return b.BuildSeeded()
}
