package geometry

import (
	"github.com/df07/go-raytracer-bvh/pkg/core"
)

// rectPadding gives rectangles a non-zero thickness along their fixed axis so
// their bounding boxes take part in slab tests.
const rectPadding = 1e-4

// Rect is a rectangle lying in a coordinate plane.
//
// Axis is the fixed axis: the rectangle covers [U0, U1] x [V0, V1] of the two
// remaining axes (in x, y, z order) at Axis = K.
type Rect struct {
	Axis     core.Axis
	U0, U1   float64
	V0, V1   float64
	K        float64
	Material core.Material

	outward float64 // +1 or -1; sign of the outward normal along Axis
}

// NewXYRect creates a rectangle spanning x0..x1, y0..y1 in the plane z = k
func NewXYRect(x0, x1, y0, y1, k float64, material core.Material) *Rect {
	return newRect(core.AxisZ, x0, x1, y0, y1, k, material)
}

// NewXZRect creates a rectangle spanning x0..x1, z0..z1 in the plane y = k
func NewXZRect(x0, x1, z0, z1, k float64, material core.Material) *Rect {
	return newRect(core.AxisY, x0, x1, z0, z1, k, material)
}

// NewYZRect creates a rectangle spanning y0..y1, z0..z1 in the plane x = k
func NewYZRect(y0, y1, z0, z1, k float64, material core.Material) *Rect {
	return newRect(core.AxisX, y0, y1, z0, z1, k, material)
}

func newRect(axis core.Axis, u0, u1, v0, v1, k float64, material core.Material) *Rect {
	return &Rect{
		Axis:     axis,
		U0:       min(u0, u1),
		U1:       max(u0, u1),
		V0:       min(v0, v1),
		V1:       max(v0, v1),
		K:        k,
		Material: material,
		outward:  1,
	}
}

// planeAxes returns the two in-plane axes of a rectangle with the given fixed axis
func planeAxes(fixed core.Axis) (u, v core.Axis) {
	switch fixed {
	case core.AxisX:
		return core.AxisY, core.AxisZ
	case core.AxisY:
		return core.AxisX, core.AxisZ
	default:
		return core.AxisX, core.AxisY
	}
}

// Plane returns the name of the coordinate plane the rectangle lies in
func (r *Rect) Plane() string {
	u, v := planeAxes(r.Axis)
	return u.String() + v.String()
}

// Flip returns a copy of the rectangle whose outward normal points along the
// negative fixed axis.
func (r *Rect) Flip() *Rect {
	flipped := *r
	flipped.outward = -r.outward
	return &flipped
}

// OutwardNormal returns the geometric normal before it is turned against a ray
func (r *Rect) OutwardNormal() core.Vec3 {
	return core.Unit(r.Axis).Multiply(r.outward)
}

// Hit tests if a ray intersects with the rectangle
func (r *Rect) Hit(ray core.Ray, interval core.Interval) (*core.HitRecord, bool) {
	// A ray parallel to the plane gives t = ±Inf or NaN, neither of which
	// is surrounded by the interval.
	t := (r.K - ray.Origin.Axis(r.Axis)) / ray.Direction.Axis(r.Axis)
	if !interval.Surrounds(t) {
		return nil, false
	}

	uAxis, vAxis := planeAxes(r.Axis)
	u := ray.Origin.Axis(uAxis) + t*ray.Direction.Axis(uAxis)
	v := ray.Origin.Axis(vAxis) + t*ray.Direction.Axis(vAxis)
	if u < r.U0 || u > r.U1 || v < r.V0 || v > r.V1 {
		return nil, false
	}

	return core.NewHitRecord(ray, t, r.OutwardNormal(), r.Material), true
}

// BoundingBox returns the rectangle's box, padded along the fixed axis
func (r *Rect) BoundingBox() (core.AABB, bool) {
	uAxis, vAxis := planeAxes(r.Axis)
	low := core.Vec3{}.WithAxis(uAxis, r.U0).WithAxis(vAxis, r.V0).WithAxis(r.Axis, r.K)
	high := core.Vec3{}.WithAxis(uAxis, r.U1).WithAxis(vAxis, r.V1).WithAxis(r.Axis, r.K)
	return core.NewAABB(low, high).Pad(r.Axis, rectPadding), true
}
