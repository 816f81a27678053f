package fold

import (
	"fmt"

	"github.com/memmaker/paperfold/engine/util"
	"github.com/memmaker/paperfold/paper"
)

// Clip describes a stack whose faces would pass through each other.
type Clip struct {
	Moving paper.Face
	Static paper.Face
	// Folded is the distance between the offset faces after the requested fold,
	// Opposite the same distance had the fold gone the other way.
	Folded   float32
	Opposite float32
}

func (c Clip) ToString() string {
	return fmt.Sprintf("%s folds into %s (%.3f < %.3f)", c.Moving.ToString(), c.Static.ToString(), c.Folded, c.Opposite)
}

// ClipDetector catches two coincident faces folding through each other, which the
// collision world cannot see because the faces have no volume.
//
// Only stacks with exactly two active faces are tested. Larger stacks are not handled.
type ClipDetector struct {
	Offset float32
}

func NewClipDetector(offset float32) *ClipDetector {
	return &ClipDetector{Offset: offset}
}

// Check returns the first clipping stack among groups, if any.
func (d *ClipDetector) Check(fd paper.FoldData, groups [][]*paper.PaperSquare) (Clip, bool) {
	moving := fd.FoldObjects.Set()
	for _, group := range groups {
		if len(group) < 2 {
			continue
		}
		var active []paper.Face
		for _, square := range group {
			active = append(active, square.ActiveFaces()...)
		}
		if len(active) != 2 {
			continue
		}
		_, firstMoves := moving[active[0].Square]
		_, secondMoves := moving[active[1].Square]
		if firstMoves == secondMoves {
			continue
		}
		movingFace, staticFace := active[0], active[1]
		if secondMoves {
			movingFace, staticFace = active[1], active[0]
		}
		if clip, clipped := d.test(fd, movingFace, staticFace); clipped {
			return clip, true
		}
	}
	return Clip{}, false
}

func (d *ClipDetector) test(fd paper.FoldData, movingFace, staticFace paper.Face) (Clip, bool) {
	pivot := util.NewPivot(fd.Center)
	staticPoint := staticFace.Transform.Offset(d.Offset)

	pivot.RotateAround(fd.Axis, fd.Degrees)
	folded := pivot.Apply(movingFace.Transform).Offset(d.Offset).Sub(staticPoint).Len()

	pivot.RotateAround(fd.Axis, 180)
	opposite := pivot.Apply(movingFace.Transform).Offset(d.Offset).Sub(staticPoint).Len()

	clip := Clip{Moving: movingFace, Static: staticFace, Folded: folded, Opposite: opposite}
	return clip, folded < opposite
}
