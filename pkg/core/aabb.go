package core

// AABB represents an axis-aligned bounding box.
// Min is component-wise less than or equal to Max.
type AABB struct {
	Min Vec3 // Minimum corner
	Max Vec3 // Maximum corner
}

// NewAABB creates the box spanned by two opposite corners, in any order
func NewAABB(cornerA, cornerB Vec3) AABB {
	return AABB{Min: cornerA.Min(cornerB), Max: cornerA.Max(cornerB)}
}

// NewAABBFromPoints creates an AABB that bounds all given points
func NewAABBFromPoints(points ...Vec3) AABB {
	if len(points) == 0 {
		return AABB{}
	}

	box := AABB{Min: points[0], Max: points[0]}
	for _, point := range points[1:] {
		box.Min = box.Min.Min(point)
		box.Max = box.Max.Max(point)
	}
	return box
}

// Surrounding returns the smallest box enclosing both a and b
func Surrounding(a, b AABB) AABB {
	return AABB{Min: a.Min.Min(b.Min), Max: a.Max.Max(b.Max)}
}

// Union returns an AABB that bounds both this AABB and another
func (aabb AABB) Union(other AABB) AABB {
	return Surrounding(aabb, other)
}

// Hit tests if a ray overlaps this AABB within interval using the slab method.
//
// The entry/exit parameters of each axis slab tighten a running [tMin, tMax]
// and the ray misses once tMax <= tMin. A zero direction component yields
// signed infinities, which accept or reject the slab on their own. A NaN
// (origin on a slab plane with zero direction) fails both comparisons and
// leaves the running interval untouched.
func (aabb AABB) Hit(ray Ray, interval Interval) bool {
	tMin, tMax := interval.Min, interval.Max

	for axis := AxisX; axis <= AxisZ; axis++ {
		invD := 1.0 / ray.Direction.Axis(axis)
		origin := ray.Origin.Axis(axis)

		t0 := (aabb.Min.Axis(axis) - origin) * invD
		t1 := (aabb.Max.Axis(axis) - origin) * invD
		if invD < 0 {
			t0, t1 = t1, t0
		}

		if t0 > tMin {
			tMin = t0
		}
		if t1 < tMax {
			tMax = t1
		}
		if tMax <= tMin {
			return false
		}
	}

	return true
}

// Contains reports whether other lies entirely inside this box
func (aabb AABB) Contains(other AABB) bool {
	return aabb.Min.X <= other.Min.X && aabb.Min.Y <= other.Min.Y && aabb.Min.Z <= other.Min.Z &&
		aabb.Max.X >= other.Max.X && aabb.Max.Y >= other.Max.Y && aabb.Max.Z >= other.Max.Z
}

// Pad returns the box grown by delta on both sides of a single axis
func (aabb AABB) Pad(axis Axis, delta float64) AABB {
	return AABB{
		Min: aabb.Min.WithAxis(axis, aabb.Min.Axis(axis)-delta),
		Max: aabb.Max.WithAxis(axis, aabb.Max.Axis(axis)+delta),
	}
}

// Center returns the center point of the AABB
func (aabb AABB) Center() Vec3 {
	return aabb.Min.Add(aabb.Max).Multiply(0.5)
}

// Size returns the size (extent) of the AABB along each axis
func (aabb AABB) Size() Vec3 {
	return aabb.Max.Subtract(aabb.Min)
}

// SurfaceArea returns the surface area of the AABB
func (aabb AABB) SurfaceArea() float64 {
	size := aabb.Size()
	return 2.0 * (size.X*size.Y + size.Y*size.Z + size.Z*size.X)
}

// LongestAxis returns the axis with the longest extent
func (aabb AABB) LongestAxis() Axis {
	size := aabb.Size()
	if size.X > size.Y && size.X > size.Z {
		return AxisX
	}
	if size.Y > size.Z {
		return AxisY
	}
	return AxisZ
}

// IsValid returns true if this is a valid AABB (min <= max for all axes)
func (aabb AABB) IsValid() bool {
	return aabb.Min.X <= aabb.Max.X &&
		aabb.Min.Y <= aabb.Max.Y &&
		aabb.Min.Z <= aabb.Max.Z
}
