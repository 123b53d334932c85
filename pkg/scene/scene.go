package scene

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/df07/go-raytracer-bvh/pkg/core"
	"github.com/df07/go-raytracer-bvh/pkg/geometry"
	"github.com/df07/go-raytracer-bvh/pkg/material"
	"github.com/df07/go-raytracer-bvh/pkg/renderer"
)

// ErrInvalidScene is wrapped by every scene construction error
var ErrInvalidScene = errors.New("invalid scene")

// Scene owns the materials and primitives of a world together with the BVH
// built over them. Objects is the reference list the BVH was built from;
// construction reordered it in place.
type Scene struct {
	Name      string
	Materials []*material.Material
	Objects   []geometry.Hittable
	World     *geometry.BVHNode
	Camera    renderer.CameraConfig
	Render    renderer.Config

	linear *geometry.HittableList
}

// Hit returns the closest intersection using the BVH
func (s *Scene) Hit(ray core.Ray, interval core.Interval) (*core.HitRecord, bool) {
	return s.World.Hit(ray, interval)
}

// HitLinear returns the closest intersection by testing every object
func (s *Scene) HitLinear(ray core.Ray, interval core.Interval) (*core.HitRecord, bool) {
	return s.linear.Hit(ray, interval)
}

// Linear returns the brute-force view of the scene's objects
func (s *Scene) Linear() *geometry.HittableList {
	return s.linear
}

// Bounds returns the box enclosing every object
func (s *Scene) Bounds() core.AABB {
	box, _ := s.World.BoundingBox()
	return box
}

// Stats summarizes the scene's contents
type Stats struct {
	Objects   int
	Spheres   int
	Rects     int
	Cuboids   int
	Materials int
	BVH       geometry.BVHStats
}

// GetStats counts the scene's primitives by kind and describes its BVH
func (s *Scene) GetStats() Stats {
	stats := Stats{
		Objects:   len(s.Objects),
		Materials: len(s.Materials),
		BVH:       s.World.Stats(),
	}
	for _, object := range s.Objects {
		switch object.(type) {
		case *geometry.Sphere:
			stats.Spheres++
		case *geometry.Rect:
			stats.Rects++
		case *geometry.Cuboid:
			stats.Cuboids++
		}
	}
	return stats
}

// Builder collects materials and primitives and turns them into a Scene
type Builder struct {
	name      string
	materials []*material.Material
	byName    map[string]*material.Material
	objects   []geometry.Hittable
	camera    renderer.CameraConfig
	render    renderer.Config
	logger    *zap.Logger
	err       error
}

// NewBuilder starts an empty scene with default camera and render settings.
// A nil logger discards output.
func NewBuilder(name string, logger *zap.Logger) *Builder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Builder{
		name:   name,
		byName: make(map[string]*material.Material),
		camera: renderer.DefaultCameraConfig(),
		render: renderer.DefaultConfig(),
		logger: logger,
	}
}

func (b *Builder) fail(format string, args ...interface{}) {
	b.err = multierr.Append(b.err, fmt.Errorf("%w: %s", ErrInvalidScene, fmt.Sprintf(format, args...)))
}

// SetCamera replaces the camera configuration
func (b *Builder) SetCamera(config renderer.CameraConfig) *Builder {
	b.camera = config
	return b
}

// SetRender replaces the render configuration
func (b *Builder) SetRender(config renderer.Config) *Builder {
	b.render = config
	return b
}

// AddMaterial registers a material with the scene and returns it
func (b *Builder) AddMaterial(m *material.Material) *material.Material {
	if m == nil {
		b.fail("nil material")
		return nil
	}
	if _, exists := b.byName[m.Name]; exists {
		b.fail("duplicate material %q", m.Name)
		return m
	}
	if err := m.Validate(); err != nil {
		b.err = multierr.Append(b.err, err)
	}
	b.byName[m.Name] = m
	b.materials = append(b.materials, m)
	return m
}

// Material looks up a registered material by name
func (b *Builder) Material(name string) (*material.Material, bool) {
	m, ok := b.byName[name]
	return m, ok
}

// checkMaterial records an error unless m was registered with this builder
func (b *Builder) checkMaterial(kind string, m *material.Material) {
	if m == nil {
		b.fail("%s %d has no material", kind, len(b.objects))
		return
	}
	if b.byName[m.Name] != m {
		b.fail("%s %d uses unregistered material %q", kind, len(b.objects), m.Name)
	}
}

// AddSphere adds a sphere to the scene
func (b *Builder) AddSphere(center core.Vec3, radius float64, m *material.Material) *geometry.Sphere {
	if radius <= 0 {
		b.fail("sphere %d has non-positive radius %g", len(b.objects), radius)
	}
	b.checkMaterial("sphere", m)
	sphere := geometry.NewSphere(center, radius, m)
	b.objects = append(b.objects, sphere)
	return sphere
}

// AddRect adds an axis-aligned rectangle to the scene. Its material must be
// registered with this builder.
func (b *Builder) AddRect(rect *geometry.Rect) *geometry.Rect {
	m, _ := rect.Material.(*material.Material)
	b.checkMaterial("rect", m)
	b.objects = append(b.objects, rect)
	return rect
}

// AddCuboid adds an axis-aligned box spanned by two corners
func (b *Builder) AddCuboid(p0, p1 core.Vec3, m *material.Material) *geometry.Cuboid {
	b.checkMaterial("cuboid", m)
	cuboid := geometry.NewCuboid(p0, p1, m)
	b.objects = append(b.objects, cuboid)
	return cuboid
}

// Build validates the collected scene and builds its BVH. The camera takes
// the image aspect ratio unless it sets its own.
func (b *Builder) Build(random geometry.AxisChooser) (*Scene, error) {
	if b.err != nil {
		return nil, fmt.Errorf("scene %q: %w", b.name, b.err)
	}
	if err := b.render.Validate(); err != nil {
		return nil, fmt.Errorf("scene %q: %w", b.name, err)
	}

	camera := b.camera
	if camera.AspectRatio == 0 {
		camera.AspectRatio = b.render.AspectRatio()
	}

	start := time.Now()
	world, err := geometry.NewBVH(b.objects, random)
	if err != nil {
		return nil, fmt.Errorf("scene %q: %w", b.name, err)
	}

	s := &Scene{
		Name:      b.name,
		Materials: b.materials,
		Objects:   b.objects,
		World:     world,
		Camera:    camera,
		Render:    b.render,
		linear:    geometry.NewHittableList(b.objects...),
	}

	stats := world.Stats()
	b.logger.Info("scene built",
		zap.String("scene", b.name),
		zap.Int("objects", len(b.objects)),
		zap.Int("materials", len(b.materials)),
		zap.Int("bvh_nodes", stats.Nodes),
		zap.Int("bvh_max_depth", stats.MaxDepth),
		zap.Float64("bvh_avg_depth", stats.AvgDepth),
		zap.Duration("build_time", time.Since(start)))

	return s, nil
}

// BuildSeeded builds the scene drawing BVH axes from the render seed
func (b *Builder) BuildSeeded() (*Scene, error) {
	return b.Build(rand.New(rand.NewSource(b.render.Seed)))
}
