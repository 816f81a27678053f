package physics

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/memmaker/paperfold/engine/util"
)

// Shape is the collision geometry of a collider.
type Shape interface {
	Bounds() util.AABB
	// IntersectsSegment reports the fraction of start..end at which the segment first meets the shape.
	IntersectsSegment(start, end mgl32.Vec3) (bool, float32)
	OverlapsBox(box util.OBB) bool
	ToString() string
}

// Box is a solid oriented box.
type Box struct {
	util.OBB
}

func NewBox(center, halfExtents mgl32.Vec3, rotation mgl32.Quat) Box {
	return Box{OBB: util.NewOBB(center, halfExtents, rotation)}
}

func (b Box) OverlapsBox(box util.OBB) bool {
	return b.OBB.Overlaps(box)
}

func (b Box) ToString() string {
	return fmt.Sprintf("Box{Center = %v, HalfExtents = %v}", b.Center, b.HalfExtents)
}

// Plate is a square sheet lying in the local XZ plane with its normal along local up.
// Rays test against its two triangles, so a ray running inside the plane never hits it.
// Overlap tests treat it as a box of the given thickness.
type Plate struct {
	Transform util.Transform
	HalfSize  float32
	Thickness float32
}

func NewPlate(transform util.Transform, size, thickness float32) Plate {
	return Plate{
		Transform: transform,
		HalfSize:  size / 2,
		Thickness: thickness,
	}
}

// Corners returns the four corners in winding order.
func (p Plate) Corners() [4]mgl32.Vec3 {
	h := p.HalfSize
	return [4]mgl32.Vec3{
		p.Transform.TransformPoint(mgl32.Vec3{-h, 0, -h}),
		p.Transform.TransformPoint(mgl32.Vec3{h, 0, -h}),
		p.Transform.TransformPoint(mgl32.Vec3{h, 0, h}),
		p.Transform.TransformPoint(mgl32.Vec3{-h, 0, h}),
	}
}

func (p Plate) OBB() util.OBB {
	return util.NewOBB(p.Transform.GetPosition(), mgl32.Vec3{p.HalfSize, p.Thickness / 2, p.HalfSize}, p.Transform.GetRotation())
}

func (p Plate) Bounds() util.AABB {
	return p.OBB().Bounds()
}

func (p Plate) IntersectsSegment(start, end mgl32.Vec3) (bool, float32) {
	c := p.Corners()
	hitA, _, fracA := util.IntersectSegmentTriangle(start, end, c[0], c[1], c[2])
	hitB, _, fracB := util.IntersectSegmentTriangle(start, end, c[0], c[2], c[3])
	switch {
	case hitA && hitB:
		return true, util.Min(fracA, fracB)
	case hitA:
		return true, fracA
	case hitB:
		return true, fracB
	}
	return false, 0
}

func (p Plate) OverlapsBox(box util.OBB) bool {
	return p.OBB().Overlaps(box)
}

func (p Plate) ToString() string {
	return fmt.Sprintf("Plate{Position = %v, Up = %v, HalfSize = %v}", p.Transform.GetPosition(), p.Transform.GetUp(), p.HalfSize)
}
