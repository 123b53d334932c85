package scene

import (
	"go.uber.org/zap"

	"github.com/df07/go-raytracer-bvh/pkg/core"
	"github.com/df07/go-raytracer-bvh/pkg/geometry"
	"github.com/df07/go-raytracer-bvh/pkg/material"
	"github.com/df07/go-raytracer-bvh/pkg/renderer"
)

// NewGroundRect creates a large square floor centered at the given point.
// It stands in for an infinite ground plane, which would have no bounding box.
func NewGroundRect(center core.Vec3, size float64, m *material.Material) *geometry.Rect {
	return geometry.NewXZRect(
		center.X-size/2, center.X+size/2,
		center.Z-size/2, center.Z+size/2,
		center.Y, m,
	)
}

// NewDefaultScene creates a default scene with spheres, a ground and a block
func NewDefaultScene(logger *zap.Logger, cameraOverrides ...renderer.CameraConfig) (*Scene, error) {
	cameraConfig := renderer.CameraConfig{
		LookFrom:      core.NewVec3(0, 0.75, 2), // Position camera higher and farther back
		LookAt:        core.NewVec3(0, 0.5, -1), // Look at the sphere center
		VUp:           core.NewVec3(0, 1, 0),
		AspectRatio:   16.0 / 9.0,
		VFov:          40.0,
		Aperture:      0.05,
		FocusDistance: 0.0, // Auto-calculate focus distance
	}
	if len(cameraOverrides) > 0 {
		cameraConfig = renderer.MergeCameraConfig(cameraConfig, cameraOverrides[0])
	}

	b := NewBuilder("default", logger).SetCamera(cameraConfig).SetRender(renderer.DefaultConfig())

	// Create materials
	lambertianGreen := b.AddMaterial(material.NewLambertian("ground", core.NewVec3(0.8, 0.8, 0.0).Multiply(0.6)))
	lambertianBlue := b.AddMaterial(material.NewLambertian("blue", core.NewVec3(0.1, 0.2, 0.5)))
	lambertianRed := b.AddMaterial(material.NewLambertian("red", core.NewVec3(0.65, 0.25, 0.2)))
	metalSilver := b.AddMaterial(material.NewMetal("silver", core.NewVec3(0.8, 0.8, 0.8), 0.0))
	metalGold := b.AddMaterial(material.NewMetal("gold", core.NewVec3(0.8, 0.6, 0.2), 0.3))
	materialGlass := b.AddMaterial(material.NewDielectric("glass", 1.5))
	sun := b.AddMaterial(material.NewEmissive("sun", core.NewVec3(15.0, 14.0, 13.0)))

	// Spheres in a row, two small glass ones in front
	b.AddSphere(core.NewVec3(0, 0.5, -1), 0.5, lambertianRed)
	b.AddSphere(core.NewVec3(-1, 0.5, -1), 0.5, metalSilver)
	b.AddSphere(core.NewVec3(1, 0.5, -1), 0.5, metalGold)
	b.AddSphere(core.NewVec3(0.5, 0.25, -0.5), 0.25, materialGlass)
	b.AddSphere(core.NewVec3(-0.5, 0.25, -0.5), 0.25, materialGlass)

	// A blue block behind the row
	b.AddCuboid(core.NewVec3(-0.4, 0, -2.6), core.NewVec3(0.4, 1.2, -1.8), lambertianBlue)

	// Large but finite ground for proper bounds
	b.AddRect(NewGroundRect(core.NewVec3(0, 0, 0), 100.0, lambertianGreen))

	// Distant sun: pos [30, 30.5, 15], r: 10
	b.AddSphere(core.NewVec3(30, 30.5, 15), 10, sun)

	return b.BuildSeeded()
}
