package scene

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/df07/go-raytracer-bvh/pkg/core"
	"github.com/df07/go-raytracer-bvh/pkg/geometry"
	"github.com/df07/go-raytracer-bvh/pkg/loaders"
	"github.com/df07/go-raytracer-bvh/pkg/renderer"
)

// FromDescription builds a scene from a decoded scene file. Camera and render
// settings the file leaves at zero keep their defaults.
func FromDescription(desc *loaders.SceneDescription, logger *zap.Logger) (*Scene, error) {
	if err := desc.Validate(); err != nil {
		return nil, err
	}

	name := desc.Meta.Name
	if name == "" {
		name = "unnamed"
	}

	b := NewBuilder(name, logger).
		SetCamera(cameraFromDescription(desc.Camera)).
		SetRender(renderFromDescription(desc.Render))

	for _, md := range desc.Materials {
		m, err := md.Material()
		if err != nil {
			return nil, err
		}
		b.AddMaterial(m)
	}

	for _, s := range desc.Spheres {
		m, _ := b.Material(s.Material)
		b.AddSphere(loaders.Vec(s.Center), s.Radius, m)
	}

	for i, r := range desc.Rects {
		axis, err := loaders.ParsePlane(r.Plane)
		if err != nil {
			return nil, fmt.Errorf("rect %d: %w", i, err)
		}
		m, _ := b.Material(r.Material)

		var rect *geometry.Rect
		switch axis {
		case core.AxisZ:
			rect = geometry.NewXYRect(r.A0, r.A1, r.B0, r.B1, r.K, m)
		case core.AxisY:
			rect = geometry.NewXZRect(r.A0, r.A1, r.B0, r.B1, r.K, m)
		default:
			rect = geometry.NewYZRect(r.A0, r.A1, r.B0, r.B1, r.K, m)
		}
		if r.Flip {
			rect = rect.Flip()
		}
		b.AddRect(rect)
	}

	for _, c := range desc.Cuboids {
		m, _ := b.Material(c.Material)
		b.AddCuboid(loaders.Vec(c.Min), loaders.Vec(c.Max), m)
	}

	return b.BuildSeeded()
}

func cameraFromDescription(c loaders.CameraDescription) renderer.CameraConfig {
	override := renderer.CameraConfig{
		LookFrom:      loaders.Vec(c.LookFrom),
		LookAt:        loaders.Vec(c.LookAt),
		VUp:           loaders.Vec(c.VUp),
		VFov:          c.VFov,
		AspectRatio:   c.AspectRatio,
		Aperture:      c.Aperture,
		FocusDistance: c.FocusDist,
	}
	config := renderer.MergeCameraConfig(renderer.DefaultCameraConfig(), override)

	// Let the builder derive the aspect ratio from the image size
	config.AspectRatio = c.AspectRatio
	return config
}

func renderFromDescription(r loaders.RenderDescription) renderer.Config {
	config := renderer.DefaultConfig()
	if r.Width > 0 {
		config.Width = r.Width
	}
	if r.Height > 0 {
		config.Height = r.Height
	}
	if r.Samples > 0 {
		config.Samples = r.Samples
	}
	if r.Mode != "" {
		config.Mode = renderer.Mode(r.Mode)
	}
	if r.Seed != 0 {
		config.Seed = r.Seed
	}
	if r.BackgroundTop != nil {
		config.BackgroundTop = loaders.Vec(*r.BackgroundTop)
	}
	if r.BackgroundBottom != nil {
		config.BackgroundBottom = loaders.Vec(*r.BackgroundBottom)
	}
	return config
}
