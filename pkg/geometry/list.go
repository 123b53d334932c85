package geometry

import (
	"github.com/df07/go-raytracer-bvh/pkg/core"
)

// HittableList is a linear collection of objects owned elsewhere
type HittableList struct {
	objects []Hittable
}

// NewHittableList creates a list referencing the given objects
func NewHittableList(objects ...Hittable) *HittableList {
	return &HittableList{objects: objects}
}

// Add appends an object reference to the list
func (l *HittableList) Add(object Hittable) {
	l.objects = append(l.objects, object)
}

// Len returns the number of objects in the list
func (l *HittableList) Len() int {
	return len(l.objects)
}

// Objects returns the list's backing slice. A BVH built over it reorders the
// slice in place.
func (l *HittableList) Objects() []Hittable {
	return l.objects
}

// Hit returns the closest hit among all objects in the list
func (l *HittableList) Hit(ray core.Ray, interval core.Interval) (*core.HitRecord, bool) {
	var closestHit *core.HitRecord
	closest := interval

	for _, object := range l.objects {
		if hit, isHit := object.Hit(ray, closest); isHit {
			closest = closest.WithMax(hit.T)
			closestHit = hit
		}
	}

	return closestHit, closestHit != nil
}

// BoundingBox returns the union of every member's box. An empty list, or any
// member without a box, yields no box.
func (l *HittableList) BoundingBox() (core.AABB, bool) {
	if len(l.objects) == 0 {
		return core.AABB{}, false
	}

	box, ok := l.objects[0].BoundingBox()
	if !ok {
		return core.AABB{}, false
	}
	for _, object := range l.objects[1:] {
		objectBox, ok := object.BoundingBox()
		if !ok {
			return core.AABB{}, false
		}
		box = core.Surrounding(box, objectBox)
	}

	return box, true
}
