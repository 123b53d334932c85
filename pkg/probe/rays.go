package probe

import (
	"math"
	"math/rand"

	"github.com/df07/go-raytracer-bvh/pkg/core"
)

// strayShare is the fraction of rays shot in a random direction instead of
// into the box, so that misses are well represented.
const strayShare = 0.2

// RandomRays generates n rays starting on a sphere around bounds. Most aim
// at a random point inside the box; the rest point anywhere.
func RandomRays(bounds core.AABB, n int, random *rand.Rand) []core.Ray {
	center := bounds.Center()
	radius := math.Max(bounds.Size().Length(), 1)

	rays := make([]core.Ray, n)
	for i := range rays {
		origin := center.Add(core.RandomUnitVector(random).Multiply(radius))

		var direction core.Vec3
		if random.Float64() < strayShare {
			direction = core.RandomUnitVector(random)
		} else {
			target := core.NewVec3(
				lerp(bounds.Min.X, bounds.Max.X, random.Float64()),
				lerp(bounds.Min.Y, bounds.Max.Y, random.Float64()),
				lerp(bounds.Min.Z, bounds.Max.Z, random.Float64()),
			)
			direction = target.Subtract(origin)
		}
		rays[i] = core.NewRay(origin, direction)
	}
	return rays
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
