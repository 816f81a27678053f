package paper

import "github.com/go-gl/mathgl/mgl32"

// FoldObjects is the moving part of a fold.
type FoldObjects struct {
	FoldSquares []*PaperSquare
}

func (f FoldObjects) Contains(square *PaperSquare) bool {
	for _, s := range f.FoldSquares {
		if s == square {
			return true
		}
	}
	return false
}

// Set returns the moving squares as a set.
func (f FoldObjects) Set() map[*PaperSquare]struct{} {
	set := make(map[*PaperSquare]struct{}, len(f.FoldSquares))
	for _, s := range f.FoldSquares {
		set[s] = struct{}{}
	}
	return set
}

// FoldData describes one candidate fold: rotate FoldObjects by Degrees around Axis
// through Center. Overlaps may carry precomputed overlap groups; when nil the
// checker asks the sheet.
type FoldData struct {
	Axis        mgl32.Vec3
	Degrees     float32
	Center      mgl32.Vec3
	AxisJoints  []*PaperJoint
	FoldObjects FoldObjects
	Overlaps    [][]*PaperSquare
}
