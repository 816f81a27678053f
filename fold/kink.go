package fold

import (
	"github.com/memmaker/paperfold/engine/voxel"
	"github.com/memmaker/paperfold/paper"
)

// IsKinked reports whether the joints leave a straight line: after snapping them to
// the lattice at most one axis may vary. No joints is a straight line.
func IsKinked(joints []*paper.PaperJoint) bool {
	xs := make(map[int32]struct{})
	ys := make(map[int32]struct{})
	zs := make(map[int32]struct{})
	for _, joint := range joints {
		cell := voxel.RoundToInt3(joint.Position())
		xs[cell.X] = struct{}{}
		ys[cell.Y] = struct{}{}
		zs[cell.Z] = struct{}{}
	}
	varying := 0
	for _, set := range []map[int32]struct{}{xs, ys, zs} {
		if len(set) > 1 {
			varying++
		}
	}
	return varying >= 2
}
