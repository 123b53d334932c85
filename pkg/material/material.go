package material

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"

	"github.com/df07/go-raytracer-bvh/pkg/core"
)

// Kind names the surface model a material describes
type Kind string

const (
	KindLambertian Kind = "lambertian"
	KindMetal      Kind = "metal"
	KindDielectric Kind = "dielectric"
	KindEmissive   Kind = "emissive"
)

// ErrInvalidMaterial is wrapped by every validation failure
var ErrInvalidMaterial = errors.New("invalid material")

// Material is a surface description owned by a scene.
// Geometry stores it as an opaque core.Material and never inspects it.
type Material struct {
	Name            string
	Kind            Kind
	Albedo          core.Vec3 // Reflectance for lambertian and metal, tint for dielectric
	Fuzz            float64   // Metal roughness in [0, 1]
	RefractionIndex float64   // Dielectric index of refraction
	Emission        core.Vec3 // Emitted radiance
}

// NewLambertian creates a perfectly diffuse material
func NewLambertian(name string, albedo core.Vec3) *Material {
	return &Material{Name: name, Kind: KindLambertian, Albedo: albedo}
}

// NewMetal creates a reflective material; fuzz is clamped to [0, 1]
func NewMetal(name string, albedo core.Vec3, fuzz float64) *Material {
	return &Material{Name: name, Kind: KindMetal, Albedo: albedo, Fuzz: min(max(fuzz, 0), 1)}
}

// NewDielectric creates a clear refractive material
func NewDielectric(name string, refractionIndex float64) *Material {
	return &Material{
		Name:            name,
		Kind:            KindDielectric,
		Albedo:          core.NewVec3(1, 1, 1),
		RefractionIndex: refractionIndex,
	}
}

// NewEmissive creates a light-emitting material
func NewEmissive(name string, emission core.Vec3) *Material {
	return &Material{Name: name, Kind: KindEmissive, Emission: emission}
}

// ParseKind converts a kind name into a Kind
func ParseKind(name string) (Kind, error) {
	switch kind := Kind(name); kind {
	case KindLambertian, KindMetal, KindDielectric, KindEmissive:
		return kind, nil
	default:
		return "", fmt.Errorf("%w: unknown kind %q", ErrInvalidMaterial, name)
	}
}

// Validate reports every problem with the material's parameters
func (m *Material) Validate() error {
	var err error
	if m.Name == "" {
		err = multierr.Append(err, fmt.Errorf("%w: missing name", ErrInvalidMaterial))
	}
	if _, kindErr := ParseKind(string(m.Kind)); kindErr != nil {
		err = multierr.Append(err, fmt.Errorf("material %q: %w", m.Name, kindErr))
	}
	if !nonNegative(m.Albedo) {
		err = multierr.Append(err, fmt.Errorf("%w: material %q has a negative albedo %v", ErrInvalidMaterial, m.Name, m.Albedo))
	}
	if !nonNegative(m.Emission) {
		err = multierr.Append(err, fmt.Errorf("%w: material %q has a negative emission %v", ErrInvalidMaterial, m.Name, m.Emission))
	}

	switch m.Kind {
	case KindMetal:
		if m.Fuzz < 0 || m.Fuzz > 1 {
			err = multierr.Append(err, fmt.Errorf("%w: material %q fuzz %g outside [0, 1]", ErrInvalidMaterial, m.Name, m.Fuzz))
		}
	case KindDielectric:
		if m.RefractionIndex <= 0 {
			err = multierr.Append(err, fmt.Errorf("%w: material %q needs a positive refraction index", ErrInvalidMaterial, m.Name))
		}
	}
	return err
}

// AlbedoColor returns the colour the debug renderer shades hits with.
// Emissive materials show their emission.
func (m *Material) AlbedoColor() core.Vec3 {
	if m.Kind == KindEmissive {
		return m.Emission.Clamp(0, 1)
	}
	return m.Albedo
}

// IsEmissive reports whether the material emits light
func (m *Material) IsEmissive() bool {
	return m.Kind == KindEmissive
}

func (m *Material) String() string {
	return fmt.Sprintf("%s(%s)", m.Name, m.Kind)
}

func nonNegative(v core.Vec3) bool {
	return v.X >= 0 && v.Y >= 0 && v.Z >= 0
}
