package geometry

import (
	"github.com/df07/go-raytracer-bvh/pkg/core"
)

// Cuboid represents an axis-aligned box made up of 6 rectangles
type Cuboid struct {
	Min      core.Vec3     // Minimum corner
	Max      core.Vec3     // Maximum corner
	Material core.Material // Material for all faces
	faces    [6]*Rect      // The 6 rectangle faces
}

// NewCuboid creates a cuboid spanned by two opposite corners, in any order
func NewCuboid(p0, p1 core.Vec3, material core.Material) *Cuboid {
	c := &Cuboid{
		Min:      p0.Min(p1),
		Max:      p0.Max(p1),
		Material: material,
	}
	c.generateFaces()
	return c
}

// generateFaces creates the 6 rectangle faces of the cuboid.
// Faces on the minimum corner are flipped so every face normal points outward.
func (c *Cuboid) generateFaces() {
	lo, hi := c.Min, c.Max

	// Back (z-) and front (z+)
	c.faces[0] = NewXYRect(lo.X, hi.X, lo.Y, hi.Y, lo.Z, c.Material).Flip()
	c.faces[1] = NewXYRect(lo.X, hi.X, lo.Y, hi.Y, hi.Z, c.Material)

	// Bottom (y-) and top (y+)
	c.faces[2] = NewXZRect(lo.X, hi.X, lo.Z, hi.Z, lo.Y, c.Material).Flip()
	c.faces[3] = NewXZRect(lo.X, hi.X, lo.Z, hi.Z, hi.Y, c.Material)

	// Left (x-) and right (x+)
	c.faces[4] = NewYZRect(lo.Y, hi.Y, lo.Z, hi.Z, lo.X, c.Material).Flip()
	c.faces[5] = NewYZRect(lo.Y, hi.Y, lo.Z, hi.Z, hi.X, c.Material)
}

// Faces returns the six faces of the cuboid
func (c *Cuboid) Faces() [6]*Rect {
	return c.faces
}

// Hit tests if a ray intersects with any face of the cuboid
func (c *Cuboid) Hit(ray core.Ray, interval core.Interval) (*core.HitRecord, bool) {
	var closestHit *core.HitRecord
	closest := interval

	// Test intersection with all 6 faces
	for _, face := range c.faces {
		if hit, isHit := face.Hit(ray, closest); isHit {
			closest = closest.WithMax(hit.T)
			closestHit = hit
		}
	}

	return closestHit, closestHit != nil
}

// BoundingBox returns the exact box spanned by the cuboid corners
func (c *Cuboid) BoundingBox() (core.AABB, bool) {
	return core.NewAABB(c.Min, c.Max), true
}
