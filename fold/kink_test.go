package fold

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/memmaker/paperfold/paper"
	"github.com/stretchr/testify/assert"
)

func TestIsKinked(t *testing.T) {
	testCases := []struct {
		name      string
		positions []mgl32.Vec3
		expected  bool
	}{
		{"no joints", nil, false},
		{"single joint", []mgl32.Vec3{{3, 1, 2}}, false},
		{"varies along x", []mgl32.Vec3{{0, 0, 0}, {2, 0, 0}}, false},
		{"varies along z", []mgl32.Vec3{{1, 0, -1}, {1, 0, 1}, {1, 0, 3}}, false},
		{"x and y vary", []mgl32.Vec3{{0, 0, 0}, {0, 2, 0}, {2, 0, 0}}, true},
		{"y and z vary", []mgl32.Vec3{{0, 0, 0}, {0, 1, 1}}, true},
		{"noise below rounding", []mgl32.Vec3{{0, 0.3, 0}, {2, -0.2, 0.4}}, false},
		{"half rounds to even", []mgl32.Vec3{{0.5, 0, 0}, {-0.5, 2.5, 0}}, false},
		{"half rounds to even on two axes", []mgl32.Vec3{{1.5, 0, 0}, {0.5, 2.5, 0}}, true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var joints []*paper.PaperJoint
			for _, p := range tc.positions {
				joints = append(joints, paper.NewPaperJoint("j", p))
			}
			assert.Equal(t, tc.expected, IsKinked(joints))
		})
	}
}
