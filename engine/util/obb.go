package util

import (
	"github.com/go-gl/mathgl/mgl32"
)

// contactSlack makes boxes that merely touch count as separated. Obstacles rest
// exactly on paper squares and must not register as overlapping them.
const contactSlack = 0.0001

// OBB is an oriented bounding box.
type OBB struct {
	Center      mgl32.Vec3
	HalfExtents mgl32.Vec3
	Rotation    mgl32.Quat
}

func NewOBB(center, halfExtents mgl32.Vec3, rotation mgl32.Quat) OBB {
	return OBB{
		Center:      center,
		HalfExtents: halfExtents,
		Rotation:    rotation.Normalize(),
	}
}

// Axes returns the box's local X, Y and Z axes in world space.
func (o OBB) Axes() [3]mgl32.Vec3 {
	return [3]mgl32.Vec3{
		o.Rotation.Rotate(mgl32.Vec3{1, 0, 0}),
		o.Rotation.Rotate(mgl32.Vec3{0, 1, 0}),
		o.Rotation.Rotate(mgl32.Vec3{0, 0, 1}),
	}
}

func (o OBB) Corners() [8]mgl32.Vec3 {
	var corners [8]mgl32.Vec3
	h := o.HalfExtents
	for i := 0; i < 8; i++ {
		local := mgl32.Vec3{h.X(), h.Y(), h.Z()}
		if i&1 != 0 {
			local[0] = -local[0]
		}
		if i&2 != 0 {
			local[1] = -local[1]
		}
		if i&4 != 0 {
			local[2] = -local[2]
		}
		corners[i] = o.Center.Add(o.Rotation.Rotate(local))
	}
	return corners
}

func (o OBB) Bounds() AABB {
	corners := o.Corners()
	return NewAABBFromPoints(corners[:]...)
}

// ContainsPoint reports whether p lies inside or on the box.
func (o OBB) ContainsPoint(p mgl32.Vec3) bool {
	local := o.Rotation.Inverse().Rotate(p.Sub(o.Center))
	return abs(local.X()) <= o.HalfExtents.X() &&
		abs(local.Y()) <= o.HalfExtents.Y() &&
		abs(local.Z()) <= o.HalfExtents.Z()
}

// Overlaps runs the separating axis test over the 15 candidate axes of two boxes
// (Ericson, Real-Time Collision Detection, 4.4.1).
func (o OBB) Overlaps(other OBB) bool {
	a := o.Axes()
	b := other.Axes()
	distance := other.Center.Sub(o.Center)

	var candidates [15]mgl32.Vec3
	copy(candidates[0:3], a[:])
	copy(candidates[3:6], b[:])
	n := 6
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			candidates[n] = a[i].Cross(b[j])
			n++
		}
	}

	for _, axis := range candidates {
		// parallel edges produce a degenerate cross product, the face axes cover that case
		if axis.Len() < 1e-6 {
			continue
		}
		axis = axis.Normalize()
		ra := o.projectedRadius(a, axis)
		rb := other.projectedRadius(b, axis)
		if abs(distance.Dot(axis)) >= ra+rb-contactSlack {
			return false
		}
	}
	return true
}

func (o OBB) projectedRadius(axes [3]mgl32.Vec3, onto mgl32.Vec3) float32 {
	return o.HalfExtents.X()*abs(axes[0].Dot(onto)) +
		o.HalfExtents.Y()*abs(axes[1].Dot(onto)) +
		o.HalfExtents.Z()*abs(axes[2].Dot(onto))
}

// IntersectsSegment clips the segment start..end against the box slabs in the box's
// local frame. The returned fraction is where the segment enters the box (0 if start
// is already inside).
func (o OBB) IntersectsSegment(start, end mgl32.Vec3) (bool, float32) {
	const eps = 1e-7
	inv := o.Rotation.Inverse()
	origin := inv.Rotate(start.Sub(o.Center))
	direction := inv.Rotate(end.Sub(start))

	tMin := float32(0)
	tMax := float32(1)
	for i := 0; i < 3; i++ {
		h := o.HalfExtents[i]
		if abs(direction[i]) < eps {
			if !InRange(origin[i], -h, h) {
				return false, 0
			}
			continue
		}
		t1 := (-h - origin[i]) / direction[i]
		t2 := (h - origin[i]) / direction[i]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tMin = max(tMin, t1)
		tMax = Min(tMax, t2)
		if tMin > tMax {
			return false, 0
		}
	}
	return true, tMin
}
