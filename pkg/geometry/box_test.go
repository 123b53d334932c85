package geometry

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/df07/go-raytracer-bvh/pkg/core"
)

func TestCuboid_Hit_NearFace(t *testing.T) {
	cuboid := NewCuboid(core.NewVec3(0, 0, 0), core.NewVec3(1, 1, 1), "white")
	ray := core.NewRay(core.NewVec3(0.5, 0.5, -5), core.NewVec3(0, 0, 1))

	hit, isHit := cuboid.Hit(ray, core.Forward)
	require.True(t, isHit)
	require.InDelta(t, 5.0, hit.T, 1e-12)
	require.Equal(t, core.NewVec3(0, 0, -1), hit.Normal)
	require.True(t, hit.FrontFace)
	require.Equal(t, "white", hit.Material)
}

func TestCuboid_Hit_EachFaceFromOutside(t *testing.T) {
	cuboid := NewCuboid(core.NewVec3(1, 1, 1), core.NewVec3(-1, -1, -1), nil)

	tests := []struct {
		name   string
		origin core.Vec3
		normal core.Vec3
	}{
		{"x-", core.NewVec3(-3, 0, 0), core.NewVec3(-1, 0, 0)},
		{"x+", core.NewVec3(3, 0, 0), core.NewVec3(1, 0, 0)},
		{"y-", core.NewVec3(0, -3, 0), core.NewVec3(0, -1, 0)},
		{"y+", core.NewVec3(0, 3, 0), core.NewVec3(0, 1, 0)},
		{"z-", core.NewVec3(0, 0, -3), core.NewVec3(0, 0, -1)},
		{"z+", core.NewVec3(0, 0, 3), core.NewVec3(0, 0, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(tt.origin, tt.origin.Negate())
			hit, isHit := cuboid.Hit(ray, core.Forward)

			require.True(t, isHit)
			require.InDelta(t, 2.0/3.0, hit.T, 1e-12)
			require.Equal(t, tt.normal, hit.Normal)
			require.True(t, hit.FrontFace)
		})
	}
}

func TestCuboid_Hit_FromInside(t *testing.T) {
	cuboid := NewCuboid(core.NewVec3(0, 0, 0), core.NewVec3(2, 2, 2), nil)
	ray := core.NewRay(core.NewVec3(1, 1, 1), core.NewVec3(1, 0, 0))

	hit, isHit := cuboid.Hit(ray, core.Forward)
	require.True(t, isHit)
	require.InDelta(t, 1.0, hit.T, 1e-12)
	require.False(t, hit.FrontFace)
	require.Equal(t, core.NewVec3(-1, 0, 0), hit.Normal)
}

func TestCuboid_Hit_Miss(t *testing.T) {
	cuboid := NewCuboid(core.NewVec3(0, 0, 0), core.NewVec3(1, 1, 1), nil)

	_, isHit := cuboid.Hit(core.NewRay(core.NewVec3(2, 2, -5), core.NewVec3(0, 0, 1)), core.Forward)
	require.False(t, isHit)

	// The cuboid lies entirely past tMax
	_, isHit = cuboid.Hit(core.NewRay(core.NewVec3(0.5, 0.5, -5), core.NewVec3(0, 0, 1)), core.NewInterval(0, 4.5))
	require.False(t, isHit)
}

func TestCuboid_BoundingBox(t *testing.T) {
	cuboid := NewCuboid(core.NewVec3(3, -1, 2), core.NewVec3(1, 1, 0), nil)

	box, ok := cuboid.BoundingBox()
	require.True(t, ok)
	require.Equal(t, core.NewVec3(1, -1, 0), box.Min)
	require.Equal(t, core.NewVec3(3, 1, 2), box.Max)

	for _, face := range cuboid.Faces() {
		faceBox, ok := face.BoundingBox()
		require.True(t, ok)
		// Faces are padded, so only their in-plane extent has to fit
		require.True(t, box.Pad(face.Axis, rectPadding).Contains(faceBox))
	}
}
