package geometry

import (
	"fmt"
	"sort"

	"github.com/df07/go-raytracer-bvh/pkg/core"
)

// BVHNode is an internal node of a Bounding Volume Hierarchy.
//
// Children are either nested nodes owned by this tree or leaf objects
// borrowed from the scene. The node's box is the union of its children's
// boxes and the tree is never modified after construction, so any number of
// goroutines may query it concurrently.
type BVHNode struct {
	left  Hittable
	right Hittable
	box   core.AABB
}

// NewBVH builds a BVH over all objects, reordering the slice in place.
// Unlike NewBVHNode it reports unusable input as an error.
func NewBVH(objects []Hittable, random AxisChooser) (*BVHNode, error) {
	if len(objects) == 0 {
		return nil, ErrEmptyScene
	}
	for i, object := range objects {
		if _, ok := object.BoundingBox(); !ok {
			return nil, fmt.Errorf("object %d: %w", i, ErrUnbounded)
		}
	}
	return NewBVHNode(objects, 0, len(objects), random), nil
}

// NewBVHNode builds a tree over objects[start:end], sorting that range in
// place. The range must hold at least one object and every object must have
// a bounding box; violations panic.
//
// Each node draws its partition axis from random, so a seeded source
// reproduces the same tree. A single object becomes both children of its
// node. Two objects are ordered by their minimum corner on the axis; larger
// ranges are stable-sorted on it and split in half.
func NewBVHNode(objects []Hittable, start, end int, random AxisChooser) *BVHNode {
	span := end - start
	if span < 1 {
		panic(fmt.Sprintf("geometry: BVH over empty range [%d, %d)", start, end))
	}

	axis := core.Axis(random.Intn(3))
	node := &BVHNode{}

	switch span {
	case 1:
		node.left = objects[start]
		node.right = objects[start]
	case 2:
		if minCorner(objects[start], axis) < minCorner(objects[start+1], axis) {
			node.left, node.right = objects[start], objects[start+1]
		} else {
			node.left, node.right = objects[start+1], objects[start]
		}
	default:
		sortByMinCorner(objects[start:end], axis)
		mid := start + span/2
		node.left = NewBVHNode(objects, start, mid, random)
		node.right = NewBVHNode(objects, mid, end, random)
	}

	node.box = core.Surrounding(mustBoundingBox(node.left), mustBoundingBox(node.right))
	return node
}

func mustBoundingBox(object Hittable) core.AABB {
	box, ok := object.BoundingBox()
	if !ok {
		panic(fmt.Sprintf("geometry: BVH member %T: %v", object, ErrUnbounded))
	}
	return box
}

func minCorner(object Hittable, axis core.Axis) float64 {
	return mustBoundingBox(object).Min.Axis(axis)
}

// byMinCorner sorts objects by precomputed minimum corners
type byMinCorner struct {
	objects []Hittable
	keys    []float64
}

func (s byMinCorner) Len() int           { return len(s.objects) }
func (s byMinCorner) Less(i, j int) bool { return s.keys[i] < s.keys[j] }
func (s byMinCorner) Swap(i, j int) {
	s.objects[i], s.objects[j] = s.objects[j], s.objects[i]
	s.keys[i], s.keys[j] = s.keys[j], s.keys[i]
}

// sortByMinCorner stable-sorts objects by the minimum corner of their boxes along axis
func sortByMinCorner(objects []Hittable, axis core.Axis) {
	keys := make([]float64, len(objects))
	for i, object := range objects {
		keys[i] = minCorner(object, axis)
	}
	sort.Stable(byMinCorner{objects: objects, keys: keys})
}

// Hit returns the closest hit in the subtree, pruning it when the ray misses
// the node's box.
func (n *BVHNode) Hit(ray core.Ray, interval core.Interval) (*core.HitRecord, bool) {
	if !n.box.Hit(ray, interval) {
		return nil, false
	}

	// Both children are always visited: the closer hit may be on either side.
	// Once the left child hits, the right child only has to beat it.
	leftHit, hitLeft := n.left.Hit(ray, interval)
	if hitLeft {
		interval = interval.WithMax(leftHit.T)
	}
	if rightHit, hitRight := n.right.Hit(ray, interval); hitRight {
		return rightHit, true
	}

	return leftHit, hitLeft
}

// BoundingBox returns the union of the children's boxes
func (n *BVHNode) BoundingBox() (core.AABB, bool) {
	return n.box, true
}

// Left returns the left child
func (n *BVHNode) Left() Hittable {
	return n.left
}

// Right returns the right child
func (n *BVHNode) Right() Hittable {
	return n.right
}

// BVHStats describes the shape of a BVH
type BVHStats struct {
	Nodes    int     // Internal nodes
	Leaves   int     // Leaf slots; a single-object node counts its object twice
	Objects  int     // Distinct leaf objects
	MaxDepth int     // Deepest leaf slot, the root's children being at depth 1
	AvgDepth float64 // Mean depth of leaf slots
}

// Stats walks the tree and collects statistics about its structure
func (n *BVHNode) Stats() BVHStats {
	stats := BVHStats{}
	n.collectStats(1, &stats)

	// Calculate average depth after collecting all data
	if stats.Leaves > 0 {
		stats.AvgDepth = stats.AvgDepth / float64(stats.Leaves)
	}
	return stats
}

func (n *BVHNode) collectStats(depth int, stats *BVHStats) {
	stats.Nodes++

	for i, child := range [2]Hittable{n.left, n.right} {
		if inner, ok := child.(*BVHNode); ok {
			inner.collectStats(depth+1, stats)
			continue
		}

		stats.Leaves++
		stats.AvgDepth += float64(depth) // Accumulate depth for average calculation
		if depth > stats.MaxDepth {
			stats.MaxDepth = depth
		}
		if i == 0 || n.right != n.left {
			stats.Objects++
		}
	}
}
