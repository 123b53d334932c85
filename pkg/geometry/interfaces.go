package geometry

import (
	"errors"

	"github.com/df07/go-raytracer-bvh/pkg/core"
)

var (
	// ErrEmptyScene is returned when a BVH is requested over no objects
	ErrEmptyScene = errors.New("cannot build a BVH over zero objects")
	// ErrUnbounded is returned when a BVH member has no bounding box
	ErrUnbounded = errors.New("object has no bounding box")
)

// Hittable is anything a ray can be intersected with.
//
// The set of implementations is closed: spheres, axis-aligned rectangles,
// cuboids, lists and BVH nodes. Hit only accepts parameters strictly inside
// interval. BoundingBox reports ok == false when the object has no box.
type Hittable interface {
	Hit(ray core.Ray, interval core.Interval) (*core.HitRecord, bool)
	BoundingBox() (core.AABB, bool)

	hittable()
}

// AxisChooser supplies the partition axis of every BVH node.
// *rand.Rand satisfies it.
type AxisChooser interface {
	Intn(n int) int
}

func (*Sphere) hittable()       {}
func (*Rect) hittable()         {}
func (*Cuboid) hittable()       {}
func (*HittableList) hittable() {}
func (*BVHNode) hittable()      {}
