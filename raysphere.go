package atmo

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// intersectSphere solves the quadratic for a ray against a sphere centered at
// the origin. When hit is true, tNear <= tFar; tNear is negative if the ray
// origin lies inside the sphere, so march loops must clamp it to zero before
// using it as a start distance.
func intersectSphere(origin, dir mgl64.Vec3, radius float64) (hit bool, tNear, tFar float64) {
	a := dir.Dot(dir)
	b := 2 * origin.Dot(dir)
	c := origin.Dot(origin) - radius*radius

	disc := b*b - 4*a*c
	if disc < 0 {
		return false, 0, 0
	}

	root := math.Sqrt(disc)
	tNear = (-b - root) / (2 * a)
	tFar = (-b + root) / (2 * a)
	return true, tNear, tFar
}
