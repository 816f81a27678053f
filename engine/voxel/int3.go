package voxel

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Int3 is a point on the integer lattice the paper squares snap to.
type Int3 struct {
	X, Y, Z int32
}

func (i Int3) Add(other Int3) Int3 {
	return Int3{i.X + other.X, i.Y + other.Y, i.Z + other.Z}
}

func (i Int3) Sub(other Int3) Int3 {
	return Int3{i.X - other.X, i.Y - other.Y, i.Z - other.Z}
}

func (i Int3) Mul(factor int32) Int3 {
	i.X *= factor
	i.Y *= factor
	i.Z *= factor
	return i
}

func (i Int3) ToVec3() mgl32.Vec3 {
	return mgl32.Vec3{float32(i.X), float32(i.Y), float32(i.Z)}
}

func (i Int3) ToString() string {
	return fmt.Sprintf("(%d, %d, %d)", i.X, i.Y, i.Z)
}

// Less orders lattice points by X, then Y, then Z.
func (i Int3) Less(other Int3) bool {
	if i.X != other.X {
		return i.X < other.X
	}
	if i.Y != other.Y {
		return i.Y < other.Y
	}
	return i.Z < other.Z
}

// RoundToInt3 snaps a world position to the nearest lattice point.
// Halves round to the even neighbour, the same way the editor snaps positions.
func RoundToInt3(pos mgl32.Vec3) Int3 {
	return Int3{
		int32(math.RoundToEven(float64(pos.X()))),
		int32(math.RoundToEven(float64(pos.Y()))),
		int32(math.RoundToEven(float64(pos.Z()))),
	}
}

// ToGridInt3 returns the cell containing pos for a grid with the given cell size.
func ToGridInt3(pos mgl32.Vec3, cellSize float32) Int3 {
	return Int3{
		int32(math.Floor(float64(pos.X() / cellSize))),
		int32(math.Floor(float64(pos.Y() / cellSize))),
		int32(math.Floor(float64(pos.Z() / cellSize))),
	}
}
