package physics

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/memmaker/paperfold/engine/util"
)

// SquareCast probes the area of a paper square with line casts: the four edges of the
// square shrunk by Inset, both diagonals and the two lines through the middle.
type SquareCast struct {
	HalfSize float32
	Inset    float32
}

func NewSquareCast(size, inset float32) SquareCast {
	return SquareCast{HalfSize: size / 2, Inset: inset}
}

// Segment is one cast line in world space.
type Segment struct {
	Start, End mgl32.Vec3
}

// Segments returns the cast lines in world space for a square placed at probe.
func (s SquareCast) Segments(probe util.Transform) []Segment {
	e := s.HalfSize - s.Inset
	if e <= 0 {
		e = s.HalfSize / 2
	}
	local := [][2]mgl32.Vec3{
		{{-e, 0, -e}, {e, 0, -e}},
		{{e, 0, -e}, {e, 0, e}},
		{{e, 0, e}, {-e, 0, e}},
		{{-e, 0, e}, {-e, 0, -e}},
		{{-e, 0, -e}, {e, 0, e}},
		{{e, 0, -e}, {-e, 0, e}},
		{{-e, 0, 0}, {e, 0, 0}},
		{{0, 0, -e}, {0, 0, e}},
	}
	result := make([]Segment, len(local))
	for i, l := range local {
		result[i] = Segment{
			Start: probe.TransformPoint(l[0]),
			End:   probe.TransformPoint(l[1]),
		}
	}
	return result
}

// Cast runs every line of the square against q and returns the nearest hit of each
// line that hit something, in line order.
func (s SquareCast) Cast(q Query, probe util.Transform, mask Layer) []Hit {
	var hits []Hit
	for _, seg := range s.Segments(probe) {
		direction := seg.End.Sub(seg.Start)
		length := direction.Len()
		if length == 0 {
			continue
		}
		if hit, ok := q.Raycast(seg.Start, direction, length, mask); ok {
			hits = append(hits, hit)
		}
	}
	return hits
}
