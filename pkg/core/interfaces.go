package core

// Material is an opaque reference to a surface description owned by the scene.
// Intersection code stores and forwards it without looking inside.
type Material interface{}

// HitRecord contains information about a ray-object intersection
type HitRecord struct {
	T         float64  // Parameter t along the ray
	Point     Vec3     // Point of intersection
	Normal    Vec3     // Unit normal, always opposing the incoming ray
	FrontFace bool     // Whether the ray hit the outward-facing side
	Material  Material // Material of the surface that was hit
}

// NewHitRecord creates a hit record at parameter t along ray with the face
// normal derived from the geometric outward normal.
func NewHitRecord(ray Ray, t float64, outwardNormal Vec3, material Material) *HitRecord {
	hit := &HitRecord{
		T:        t,
		Point:    ray.At(t),
		Material: material,
	}
	hit.SetFaceNormal(ray, outwardNormal)
	return hit
}

// SetFaceNormal sets the normal vector and determines front/back face
func (h *HitRecord) SetFaceNormal(ray Ray, outwardNormal Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Negate()
	}
}
