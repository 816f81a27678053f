package util

import (
	"github.com/go-gl/mathgl/mgl32"
)

type AABB struct {
	center  mgl32.Vec3
	extents mgl32.Vec3 // size in respective axis, they extend from the center to the max and min
}

func NewAABB(center, extents mgl32.Vec3) AABB {
	return AABB{
		center:  center,
		extents: extents,
	}
}

func NewAABBFromMin(min, extents mgl32.Vec3) AABB {
	return AABB{
		center:  min.Add(extents.Mul(0.5)),
		extents: extents,
	}
}

// NewAABBFromPoints returns the smallest box containing all points.
func NewAABBFromPoints(points ...mgl32.Vec3) AABB {
	if len(points) == 0 {
		return AABB{}
	}
	minVal, maxVal := points[0], points[0]
	for _, p := range points[1:] {
		minVal = ComponentMin(minVal, p)
		maxVal = ComponentMax(maxVal, p)
	}
	return NewAABBFromMin(minVal, maxVal.Sub(minVal))
}

func (a AABB) Min() mgl32.Vec3 {
	return a.center.Sub(a.extents.Mul(0.5))
}

func (a AABB) Max() mgl32.Vec3 {
	return a.center.Add(a.extents.Mul(0.5))
}

func (a AABB) Center() mgl32.Vec3 {
	return a.center
}

func (a AABB) Extents() mgl32.Vec3 {
	return a.extents
}

func (a AABB) Overlaps(other AABB) bool {
	aMin, aMax := a.Min(), a.Max()
	bMin, bMax := other.Min(), other.Max()
	return aMin.X() <= bMax.X() && aMax.X() >= bMin.X() &&
		aMin.Y() <= bMax.Y() && aMax.Y() >= bMin.Y() &&
		aMin.Z() <= bMax.Z() && aMax.Z() >= bMin.Z()
}

// Expand grows the box by margin on every side.
func (a AABB) Expand(margin float32) AABB {
	return AABB{
		center:  a.center,
		extents: a.extents.Add(mgl32.Vec3{2 * margin, 2 * margin, 2 * margin}),
	}
}

func InRange(x, min, max float32) bool {
	return x >= min && x <= max
}
