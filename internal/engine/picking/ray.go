// Package picking casts rays against scene boxes. Its Occluder hides the sun
// flare behind obstacles.
package picking

import (
	gomath "math"

	"github.com/Faultbox/midgard-sky/pkg/math"
)

// Ray represents a ray in 3D space with origin and direction.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3 // Normalized direction
}

// AABB represents an axis-aligned bounding box.
type AABB struct {
	Min math.Vec3
	Max math.Vec3
}

// NewAABB creates an AABB from two corners in any order.
func NewAABB(a, b math.Vec3) AABB {
	return AABB{
		Min: math.Vec3{X: min(a.X, b.X), Y: min(a.Y, b.Y), Z: min(a.Z, b.Z)},
		Max: math.Vec3{X: max(a.X, b.X), Y: max(a.Y, b.Y), Z: max(a.Z, b.Z)},
	}
}

// slab narrows [tmin, tmax] by one axis. It reports false when the ray is
// parallel to the slab and outside it.
func slab(origin, dir, lo, hi float32, tmin, tmax *float32) bool {
	if dir == 0 {
		return origin >= lo && origin <= hi
	}
	t1 := (lo - origin) / dir
	t2 := (hi - origin) / dir
	if t1 > t2 {
		t1, t2 = t2, t1
	}
	if t1 > *tmin {
		*tmin = t1
	}
	if t2 < *tmax {
		*tmax = t2
	}
	return true
}

// IntersectAABB tests ray intersection with an axis-aligned bounding box.
// Returns the distance to intersection (t) and whether intersection occurred.
// If the ray starts inside the box, returns the exit distance.
func (r Ray) IntersectAABB(box AABB) (t float32, hit bool) {
	tmin := float32(-gomath.MaxFloat32)
	tmax := float32(gomath.MaxFloat32)

	if !slab(r.Origin.X, r.Direction.X, box.Min.X, box.Max.X, &tmin, &tmax) ||
		!slab(r.Origin.Y, r.Direction.Y, box.Min.Y, box.Max.Y, &tmin, &tmax) ||
		!slab(r.Origin.Z, r.Direction.Z, box.Min.Z, box.Max.Z, &tmin, &tmax) {
		return 0, false
	}

	if tmax < tmin || tmax < 0 {
		return 0, false
	}

	// Return entry point, or exit point if starting inside
	if tmin < 0 {
		return tmax, true
	}
	return tmin, true
}

// Occluder blocks directions seen from Eye by any of Boxes.
type Occluder struct {
	Eye   math.Vec3
	Boxes []AABB
}

// Occluded reports whether a ray from Eye along dir hits a box.
func (o *Occluder) Occluded(dir math.Vec3) bool {
	if dir.Length() == 0 {
		return false
	}
	ray := Ray{Origin: o.Eye, Direction: dir.Normalize()}
	for _, b := range o.Boxes {
		if _, hit := ray.IntersectAABB(b); hit {
			return true
		}
	}
	return false
}
