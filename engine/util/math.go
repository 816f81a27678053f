package util

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

func abs(x float32) float32 {
	return float32(math.Abs(float64(x)))
}

func Min(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func max(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func ComponentMin(a, b mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{Min(a.X(), b.X()), Min(a.Y(), b.Y()), Min(a.Z(), b.Z())}
}

func ComponentMax(a, b mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{max(a.X(), b.X()), max(a.Y(), b.Y()), max(a.Z(), b.Z())}
}
