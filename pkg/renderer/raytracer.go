package renderer

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/df07/go-raytracer-bvh/pkg/core"
	"github.com/df07/go-raytracer-bvh/pkg/geometry"
)

// Mode selects how hits are coloured
type Mode string

const (
	// ModeNormal maps the hit normal from [-1, 1] to [0, 1]
	ModeNormal Mode = "normal"
	// ModeAlbedo shades the material albedo by the angle of incidence
	ModeAlbedo Mode = "albedo"
)

// ErrInvalidConfig is wrapped by every render configuration error
var ErrInvalidConfig = errors.New("invalid render config")

// rayEpsilon keeps camera rays from hitting surfaces at their own origin
const rayEpsilon = 1e-3

// Config contains rendering configuration
type Config struct {
	Width            int       // Image width
	Height           int       // Image height
	Samples          int       // Camera rays per pixel
	Mode             Mode      // Hit colouring
	Seed             int64     // Seed for pixel jitter and lens sampling
	BackgroundTop    core.Vec3 // Background colour straight up
	BackgroundBottom core.Vec3 // Background colour straight down
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		Width:            400,
		Height:           225,
		Samples:          8,
		Mode:             ModeNormal,
		Seed:             42,
		BackgroundTop:    core.NewVec3(0.5, 0.7, 1.0),
		BackgroundBottom: core.NewVec3(1.0, 1.0, 1.0),
	}
}

// Validate checks that the configuration can be rendered
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: image size %dx%d", ErrInvalidConfig, c.Width, c.Height)
	}
	if c.Samples <= 0 {
		return fmt.Errorf("%w: %d samples per pixel", ErrInvalidConfig, c.Samples)
	}
	switch c.Mode {
	case ModeNormal, ModeAlbedo:
	default:
		return fmt.Errorf("%w: unknown mode %q", ErrInvalidConfig, c.Mode)
	}
	return nil
}

// AspectRatio returns width / height
func (c Config) AspectRatio() float64 {
	return float64(c.Width) / float64(c.Height)
}

// albedoSource is satisfied by materials that expose a display colour
type albedoSource interface {
	AlbedoColor() core.Vec3
}

// fallbackAlbedo shades hits whose material has no colour
var fallbackAlbedo = core.NewVec3(0.5, 0.5, 0.5)

// Raytracer renders a world one camera ray per sample, sequentially
type Raytracer struct {
	world  geometry.Hittable
	camera *Camera
	config Config
	random *rand.Rand
	logger *zap.Logger
}

// NewRaytracer creates a new raytracer. A nil logger discards output.
func NewRaytracer(world geometry.Hittable, camera *Camera, config Config, logger *zap.Logger) *Raytracer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Raytracer{
		world:  world,
		camera: camera,
		config: config,
		random: rand.New(rand.NewSource(config.Seed)),
		logger: logger,
	}
}

// Render traces every pixel and returns the accumulated image. The image
// holds sums over Samples rays; WritePPM divides them out.
func (rt *Raytracer) Render(ctx context.Context) (*ImageData, RenderStats, error) {
	if err := rt.config.Validate(); err != nil {
		return nil, RenderStats{}, err
	}

	width, height := rt.config.Width, rt.config.Height
	img := NewImageData(width, height)
	stats := RenderStats{}
	start := time.Now()

	rt.logger.Info("render started",
		zap.Int("width", width),
		zap.Int("height", height),
		zap.Int("samples", rt.config.Samples),
		zap.String("mode", string(rt.config.Mode)))

	progressStep := max(height/10, 1)
	for j := height - 1; j >= 0; j-- {
		if err := ctx.Err(); err != nil {
			return nil, stats, fmt.Errorf("render cancelled: %w", err)
		}

		for i := 0; i < width; i++ {
			for sample := 0; sample < rt.config.Samples; sample++ {
				// Convert pixel coordinates to normalized coordinates with jitter
				s := (float64(i) + rt.random.Float64()) / float64(width)
				t := (float64(j) + rt.random.Float64()) / float64(height)

				color, hit := rt.rayColor(rt.camera.GetRay(s, t, rt.random))
				img.Add(i, j, color)

				stats.Rays++
				if hit {
					stats.Hits++
				}
			}
			stats.Pixels++
		}

		if done := height - j; done%progressStep == 0 {
			rt.logger.Debug("render progress",
				zap.Int("rows", done),
				zap.Int("of", height))
		}
	}

	stats.Duration = time.Since(start)
	rt.logger.Info("render finished",
		zap.Int("rays", stats.Rays),
		zap.Int("hits", stats.Hits),
		zap.Duration("duration", stats.Duration))

	return img, stats, nil
}

// rayColor returns the colour seen along ray and whether it hit anything
func (rt *Raytracer) rayColor(ray core.Ray) (core.Vec3, bool) {
	hit, isHit := rt.world.Hit(ray, core.NewInterval(rayEpsilon, math.Inf(1)))
	if !isHit {
		return rt.backgroundGradient(ray), false
	}

	switch rt.config.Mode {
	case ModeAlbedo:
		albedo := fallbackAlbedo
		if source, ok := hit.Material.(albedoSource); ok {
			albedo = source.AlbedoColor()
		}
		cosine := math.Abs(hit.Normal.Dot(ray.Direction.Normalize()))
		return albedo.Multiply(cosine), true
	default:
		return hit.Normal.Add(core.NewVec3(1, 1, 1)).Multiply(0.5), true
	}
}

// backgroundGradient returns a gradient color based on ray direction
func (rt *Raytracer) backgroundGradient(r core.Ray) core.Vec3 {
	// Normalize the ray direction to get consistent results
	unitDirection := r.Direction.Normalize()

	// Use the y-component to create a gradient (map from -1,1 to 0,1)
	t := 0.5 * (unitDirection.Y + 1.0)

	// Linear interpolation: (1-t)*bottom + t*top
	return rt.config.BackgroundBottom.Multiply(1.0 - t).Add(rt.config.BackgroundTop.Multiply(t))
}
