package scene

import (
	"fmt"
	"math"

	"github.com/df07/go-raytracer-bvh/pkg/core"
	"github.com/df07/go-raytracer-bvh/pkg/geometry"
	"github.com/df07/go-raytracer-bvh/pkg/material"
	"github.com/df07/go-raytracer-bvh/pkg/renderer"
)

// InspectResponse is the JSON description of what a pixel sees
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	Pixel        [2]int                 `json:"pixel"`
	MaterialName string                 `json:"materialName,omitempty"`
	MaterialType string                 `json:"materialType,omitempty"`
	GeometryType string                 `json:"geometryType,omitempty"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	FrontFace    bool                   `json:"frontFace"`
	Properties   map[string]interface{} `json:"properties,omitempty"`
}

// InspectResult contains the closest hit of an inspection ray
type InspectResult struct {
	Hit       bool
	Ray       core.Ray
	HitRecord *core.HitRecord
	Object    geometry.Hittable // The object that was hit, nil on a miss
}

var inspectInterval = core.NewInterval(1e-3, math.Inf(1))

// InspectPixel casts a ray through the center of a pixel of the scene's
// image, counting rows from the top, and finds the first object it hits.
// The lens is not sampled.
func (s *Scene) InspectPixel(pixelX, pixelY int) (InspectResult, error) {
	width, height := s.Render.Width, s.Render.Height
	if pixelX < 0 || pixelX >= width || pixelY < 0 || pixelY >= height {
		return InspectResult{}, fmt.Errorf("pixel (%d, %d) outside the %dx%d image", pixelX, pixelY, width, height)
	}

	camera := renderer.NewCamera(s.Camera)
	u := (float64(pixelX) + 0.5) / float64(width)
	v := (float64(height-1-pixelY) + 0.5) / float64(height)
	ray := camera.GetRay(u, v, nil)

	hit, isHit := s.Hit(ray, inspectInterval)
	if !isHit {
		return InspectResult{Ray: ray}, nil
	}

	// The BVH doesn't return the object, so find the one hit at the same t
	for _, object := range s.Objects {
		if objectHit, ok := object.Hit(ray, inspectInterval.WithMax(hit.T+1e-3)); ok && objectHit.T == hit.T {
			return InspectResult{Hit: true, Ray: ray, HitRecord: hit, Object: object}, nil
		}
	}

	return InspectResult{Hit: true, Ray: ray, HitRecord: hit}, nil
}

// Response converts the result for JSON output
func (r InspectResult) Response(pixelX, pixelY int) InspectResponse {
	response := InspectResponse{Hit: r.Hit, Pixel: [2]int{pixelX, pixelY}}
	if !r.Hit {
		return response
	}

	hit := r.HitRecord
	response.Point = vecArray(hit.Point)
	response.Normal = vecArray(hit.Normal)
	response.Distance = hit.T
	response.FrontFace = hit.FrontFace

	properties := make(map[string]interface{})
	if m, ok := hit.Material.(*material.Material); ok {
		response.MaterialName = m.Name
		response.MaterialType = string(m.Kind)
		properties["material"] = materialProperties(m)
	}
	geometryType, geometryProps := geometryInfo(r.Object)
	response.GeometryType = geometryType
	properties["geometry"] = geometryProps
	response.Properties = properties

	return response
}

func materialProperties(m *material.Material) map[string]interface{} {
	properties := make(map[string]interface{})
	color := m.AlbedoColor()
	properties["color"] = fmt.Sprintf("#%02x%02x%02x", int(color.X*255), int(color.Y*255), int(color.Z*255))

	switch m.Kind {
	case material.KindLambertian:
		properties["albedo"] = vecArray(m.Albedo)
	case material.KindMetal:
		properties["albedo"] = vecArray(m.Albedo)
		properties["fuzz"] = m.Fuzz
	case material.KindDielectric:
		properties["refractionIndex"] = m.RefractionIndex
	case material.KindEmissive:
		properties["emission"] = vecArray(m.Emission)
	}
	return properties
}

func geometryInfo(object geometry.Hittable) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch geom := object.(type) {
	case *geometry.Sphere:
		properties["center"] = vecArray(geom.Center)
		properties["radius"] = geom.Radius
		return "sphere", properties

	case *geometry.Rect:
		properties["plane"] = geom.Plane()
		properties["u"] = [2]float64{geom.U0, geom.U1}
		properties["v"] = [2]float64{geom.V0, geom.V1}
		properties["k"] = geom.K
		properties["normal"] = vecArray(geom.OutwardNormal())
		return "rect", properties

	case *geometry.Cuboid:
		properties["min"] = vecArray(geom.Min)
		properties["max"] = vecArray(geom.Max)
		return "cuboid", properties

	default:
		return "unknown", properties
	}
}

func vecArray(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}
