package util

import "github.com/go-gl/mathgl/mgl32"

// Transform is a rigid placement in world space. Scale is never needed for
// paper probes, so only translation and rotation are kept.
type Transform struct {
	translation mgl32.Vec3
	rotation    mgl32.Quat
}

func NewDefaultTransform() Transform {
	return Transform{
		translation: mgl32.Vec3{0, 0, 0},
		rotation:    mgl32.QuatIdent(),
	}
}

func NewTransform(position mgl32.Vec3, rotation mgl32.Quat) Transform {
	return Transform{
		translation: position,
		rotation:    rotation.Normalize(),
	}
}

func NewTransformAt(position mgl32.Vec3) Transform {
	return NewTransform(position, mgl32.QuatIdent())
}

func (t Transform) GetPosition() mgl32.Vec3 {
	return t.translation
}

func (t Transform) GetRotation() mgl32.Quat {
	return t.rotation
}

func (t Transform) GetUp() mgl32.Vec3 {
	return t.rotation.Rotate(mgl32.Vec3{0, 1, 0})
}

// TransformPoint maps a point from local space into world space.
func (t Transform) TransformPoint(local mgl32.Vec3) mgl32.Vec3 {
	return t.translation.Add(t.rotation.Rotate(local))
}

// Mul composes a parent (t) with a child expressed in the parent's local space.
func (t Transform) Mul(child Transform) Transform {
	return Transform{
		translation: t.TransformPoint(child.translation),
		rotation:    t.rotation.Mul(child.rotation).Normalize(),
	}
}

// Inverse returns the transform that undoes t.
func (t Transform) Inverse() Transform {
	inv := t.rotation.Inverse()
	return Transform{
		translation: inv.Rotate(t.translation.Mul(-1)),
		rotation:    inv,
	}
}

// RotateAround rotates the transform by degrees around an axis passing through point.
func (t Transform) RotateAround(point, axis mgl32.Vec3, degrees float32) Transform {
	q := AxisAngle(axis, degrees)
	return Transform{
		translation: point.Add(q.Rotate(t.translation.Sub(point))),
		rotation:    q.Mul(t.rotation).Normalize(),
	}
}

// Offset returns the point distance units along the transform's up axis.
func (t Transform) Offset(distance float32) mgl32.Vec3 {
	return t.translation.Add(t.GetUp().Mul(distance))
}

func (t Transform) ApproxEqual(other Transform, eps float32) bool {
	if !t.translation.ApproxEqualThreshold(other.translation, eps) {
		return false
	}
	return SameRotation(t.rotation, other.rotation, eps)
}

// AxisAngle builds the rotation of degrees around axis. A zero axis yields the identity.
func AxisAngle(axis mgl32.Vec3, degrees float32) mgl32.Quat {
	if axis.Len() == 0 {
		return mgl32.QuatIdent()
	}
	return mgl32.QuatRotate(mgl32.DegToRad(degrees), axis.Normalize())
}

// SameRotation compares two unit quaternions while treating q and -q as equal.
func SameRotation(a, b mgl32.Quat, eps float32) bool {
	return 1-abs(a.Normalize().Dot(b.Normalize())) <= eps
}

// Pivot stands in for a transient parent object: children keep their own world
// transform and the pivot's accumulated rotation is applied to them on demand.
type Pivot struct {
	center   mgl32.Vec3
	rotation mgl32.Quat
}

func NewPivot(center mgl32.Vec3) *Pivot {
	return &Pivot{
		center:   center,
		rotation: mgl32.QuatIdent(),
	}
}

func (p *Pivot) GetCenter() mgl32.Vec3 {
	return p.center
}

func (p *Pivot) GetRotation() mgl32.Quat {
	return p.rotation
}

// RotateAround accumulates a rotation of degrees around axis through the pivot centre.
func (p *Pivot) RotateAround(axis mgl32.Vec3, degrees float32) {
	p.rotation = AxisAngle(axis, degrees).Mul(p.rotation).Normalize()
}

// Reset drops all accumulated rotation.
func (p *Pivot) Reset() {
	p.rotation = mgl32.QuatIdent()
}

// Apply returns where a child that started at child ends up after the pivot's rotation.
func (p *Pivot) Apply(child Transform) Transform {
	return Transform{
		translation: p.center.Add(p.rotation.Rotate(child.translation.Sub(p.center))),
		rotation:    p.rotation.Mul(child.rotation).Normalize(),
	}
}
