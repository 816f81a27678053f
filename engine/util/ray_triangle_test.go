package util

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestIntersectSegmentTriangle(t *testing.T) {
	v0 := mgl32.Vec3{1, 0, 0}
	v1 := mgl32.Vec3{0, 0, 0}
	v2 := mgl32.Vec3{0, 1, 0}

	testCases := []struct {
		name       string
		start, end mgl32.Vec3
		hit        bool
		fraction   float32
	}{
		{"through the middle", mgl32.Vec3{0.25, 0.25, 1}, mgl32.Vec3{0.25, 0.25, -1}, true, 0.5},
		{"stops short", mgl32.Vec3{0.25, 0.25, 2}, mgl32.Vec3{0.25, 0.25, 1}, false, 0},
		{"outside the triangle", mgl32.Vec3{0.9, 0.9, 1}, mgl32.Vec3{0.9, 0.9, -1}, false, 0},
		{"parallel to the plane", mgl32.Vec3{-1, 0.25, 0}, mgl32.Vec3{2, 0.25, 0}, false, 0},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			hit, point, fraction := IntersectSegmentTriangle(tc.start, tc.end, v0, v1, v2)
			assert.Equal(t, tc.hit, hit)
			if tc.hit {
				assert.InDelta(t, tc.fraction, fraction, 1e-5)
				assert.InDelta(t, 0, point.Z(), 1e-5)
			}
		})
	}
}

// execute with: go test -bench=. -test.benchmem -test.benchtime=10s
func BenchmarkTriangleSegmentIntersection(b *testing.B) {
	triangle := [3]mgl32.Vec3{
		{1, 0, 0},
		{0, 0, 0},
		{0, 1, 0},
	}
	rayStart := mgl32.Vec3{0.25, 0.25, 1}
	rayEnd := mgl32.Vec3{0.25, 0.25, -1}
	for i := 0; i < b.N; i++ {
		_, _, _ = IntersectSegmentTriangle(rayStart, rayEnd, triangle[0], triangle[1], triangle[2])
	}
}
