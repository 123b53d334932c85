package loaders

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"go.uber.org/multierr"

	"github.com/df07/go-raytracer-bvh/pkg/core"
	"github.com/df07/go-raytracer-bvh/pkg/material"
)

// ErrInvalidScene is wrapped by every scene description validation failure
var ErrInvalidScene = errors.New("invalid scene description")

// UnknownKeysError lists keys of a scene file that no field accepted
type UnknownKeysError []string

func (e UnknownKeysError) Error() string {
	return "unknown scene keys: [" + strings.Join(e, ", ") + "]"
}

// SceneDescription is the decoded form of a TOML scene file
type SceneDescription struct {
	Meta      MetaDescription       `toml:"meta"`
	Camera    CameraDescription     `toml:"camera"`
	Render    RenderDescription     `toml:"render"`
	Materials []MaterialDescription `toml:"material"`
	Spheres   []SphereDescription   `toml:"sphere"`
	Rects     []RectDescription     `toml:"rect"`
	Cuboids   []CuboidDescription   `toml:"cuboid"`
}

// MetaDescription holds the [meta] table used for scene discovery
type MetaDescription struct {
	Name        string `toml:"name"`
	Description string `toml:"description"`
	Group       string `toml:"group"`
}

// CameraDescription holds the [camera] table. Zero values select defaults.
type CameraDescription struct {
	LookFrom    [3]float64 `toml:"look_from"`
	LookAt      [3]float64 `toml:"look_at"`
	VUp         [3]float64 `toml:"vup"`
	VFov        float64    `toml:"vfov"`
	AspectRatio float64    `toml:"aspect_ratio"`
	Aperture    float64    `toml:"aperture"`
	FocusDist   float64    `toml:"focus_dist"`
}

// RenderDescription holds the [render] table. Zero values select defaults.
type RenderDescription struct {
	Width            int         `toml:"width"`
	Height           int         `toml:"height"`
	Samples          int         `toml:"samples"`
	Mode             string      `toml:"mode"`
	Seed             int64       `toml:"seed"`
	BackgroundTop    *[3]float64 `toml:"background_top"`
	BackgroundBottom *[3]float64 `toml:"background_bottom"`
}

// MaterialDescription is one [[material]] entry
type MaterialDescription struct {
	Name            string     `toml:"name"`
	Kind            string     `toml:"kind"`
	Albedo          [3]float64 `toml:"albedo"`
	Fuzz            float64    `toml:"fuzz"`
	RefractionIndex float64    `toml:"refraction_index"`
	Emission        [3]float64 `toml:"emission"`
}

// SphereDescription is one [[sphere]] entry
type SphereDescription struct {
	Center   [3]float64 `toml:"center"`
	Radius   float64    `toml:"radius"`
	Material string     `toml:"material"`
}

// RectDescription is one [[rect]] entry: [A0, A1] x [B0, B1] of Plane's
// two axes at K on the remaining one.
type RectDescription struct {
	Plane    string  `toml:"plane"`
	A0       float64 `toml:"a0"`
	A1       float64 `toml:"a1"`
	B0       float64 `toml:"b0"`
	B1       float64 `toml:"b1"`
	K        float64 `toml:"k"`
	Material string  `toml:"material"`
	Flip     bool    `toml:"flip"`
}

// CuboidDescription is one [[cuboid]] entry
type CuboidDescription struct {
	Min      [3]float64 `toml:"min"`
	Max      [3]float64 `toml:"max"`
	Material string     `toml:"material"`
}

// Vec converts a TOML triple into a vector
func Vec(v [3]float64) core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}

// LoadSceneFile reads and validates a TOML scene file
func LoadSceneFile(filename string) (*SceneDescription, error) {
	if err := validateFilePath(filename); err != nil {
		return nil, err
	}

	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer file.Close()

	desc, err := ParseScene(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return desc, nil
}

// ParseScene decodes and validates a TOML scene description.
// Keys no field accepts are reported as an UnknownKeysError.
func ParseScene(reader io.Reader) (*SceneDescription, error) {
	var desc SceneDescription
	meta, err := toml.NewDecoder(reader).Decode(&desc)
	if err != nil {
		return nil, fmt.Errorf("failed to decode scene: %w", err)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		var err UnknownKeysError
		for _, key := range undecoded {
			err = append(err, key.String())
		}
		return nil, err
	}

	if err := desc.Validate(); err != nil {
		return nil, err
	}
	return &desc, nil
}

// ParseSceneMeta decodes only the [meta] table, ignoring everything else
func ParseSceneMeta(reader io.Reader) (MetaDescription, error) {
	var desc struct {
		Meta MetaDescription `toml:"meta"`
	}
	if _, err := toml.NewDecoder(reader).Decode(&desc); err != nil {
		return MetaDescription{}, fmt.Errorf("failed to decode scene metadata: %w", err)
	}
	return desc.Meta, nil
}

// Validate reports every problem in the description at once
func (d *SceneDescription) Validate() error {
	var err error
	invalid := func(format string, args ...interface{}) {
		err = multierr.Append(err, fmt.Errorf("%w: %s", ErrInvalidScene, fmt.Sprintf(format, args...)))
	}

	names := make(map[string]bool, len(d.Materials))
	for i, m := range d.Materials {
		if names[m.Name] {
			invalid("material %d: duplicate name %q", i, m.Name)
		}
		names[m.Name] = true

		mat, matErr := m.Material()
		if matErr != nil {
			err = multierr.Append(err, fmt.Errorf("material %d: %w", i, matErr))
			continue
		}
		if matErr := mat.Validate(); matErr != nil {
			err = multierr.Append(err, fmt.Errorf("material %d: %w", i, matErr))
		}
	}

	reference := func(kind string, i int, name string) {
		if !names[name] {
			invalid("%s %d: unknown material %q", kind, i, name)
		}
	}

	for i, s := range d.Spheres {
		if s.Radius <= 0 {
			invalid("sphere %d: radius must be positive, got %g", i, s.Radius)
		}
		reference("sphere", i, s.Material)
	}
	for i, r := range d.Rects {
		if _, planeErr := ParsePlane(r.Plane); planeErr != nil {
			invalid("rect %d: %v", i, planeErr)
		}
		reference("rect", i, r.Material)
	}
	for i, c := range d.Cuboids {
		reference("cuboid", i, c.Material)
	}

	if len(d.Spheres)+len(d.Rects)+len(d.Cuboids) == 0 {
		invalid("scene has no objects")
	}

	r := d.Render
	if r.Width < 0 || r.Height < 0 {
		invalid("render size %dx%d must not be negative", r.Width, r.Height)
	}
	if r.Samples < 0 {
		invalid("render samples %d must not be negative", r.Samples)
	}
	switch r.Mode {
	case "", "normal", "albedo":
	default:
		invalid("unknown render mode %q", r.Mode)
	}
	if d.Camera.VFov < 0 || d.Camera.VFov >= 180 {
		invalid("camera vfov %g outside [0, 180)", d.Camera.VFov)
	}

	return err
}

// Material converts the entry into a material value
func (m MaterialDescription) Material() (*material.Material, error) {
	kind, err := material.ParseKind(m.Kind)
	if err != nil {
		return nil, err
	}
	return &material.Material{
		Name:            m.Name,
		Kind:            kind,
		Albedo:          Vec(m.Albedo),
		Fuzz:            m.Fuzz,
		RefractionIndex: m.RefractionIndex,
		Emission:        Vec(m.Emission),
	}, nil
}

// ParsePlane returns the fixed axis of a rectangle lying in the named plane
func ParsePlane(plane string) (core.Axis, error) {
	switch strings.ToLower(plane) {
	case "xy":
		return core.AxisZ, nil
	case "xz":
		return core.AxisY, nil
	case "yz":
		return core.AxisX, nil
	default:
		return 0, fmt.Errorf("unknown plane %q, expected one of xy, xz, yz", plane)
	}
}

// MaterialNames returns the declared material names in sorted order
func (d *SceneDescription) MaterialNames() []string {
	names := make([]string, 0, len(d.Materials))
	for _, m := range d.Materials {
		names = append(names, m.Name)
	}
	sort.Strings(names)
	return names
}

// validateFilePath rejects paths that cannot name a scene file
func validateFilePath(filename string) error {
	if filename == "" {
		return fmt.Errorf("filename cannot be empty")
	}

	// Check for null bytes (could indicate path manipulation)
	if strings.Contains(filename, "\x00") {
		return fmt.Errorf("invalid file path: null bytes not allowed")
	}

	cleanPath := filepath.Clean(filename)
	if !strings.HasSuffix(strings.ToLower(cleanPath), ".toml") {
		return fmt.Errorf("invalid file type: only .toml files are allowed")
	}

	if len(cleanPath) > 512 {
		return fmt.Errorf("file path too long: maximum 512 characters allowed")
	}

	return nil
}
