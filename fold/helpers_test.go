package fold

import (
	"sync"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/memmaker/paperfold/engine/physics"
	"github.com/memmaker/paperfold/engine/util"
	"github.com/memmaker/paperfold/paper"
	"github.com/stretchr/testify/require"
)

var (
	axisZ   = mgl32.Vec3{0, 0, 1}
	hinge   = mgl32.Vec3{1, 0, 0}
	flipped = util.AxisAngle(mgl32.Vec3{1, 0, 0}, 180)
)

func addSquare(t *testing.T, sheet *paper.Sheet, name string, pos mgl32.Vec3, rotation mgl32.Quat) *paper.PaperSquare {
	t.Helper()
	square := paper.NewPaperSquare(name, util.NewTransform(pos, rotation), paper.DefaultLength, paper.DefaultThickness)
	require.NoError(t, sheet.AddSquare(square))
	return square
}

func hingeJoints() []*paper.PaperJoint {
	return []*paper.PaperJoint{
		paper.NewPaperJoint("j0", mgl32.Vec3{1, 0, -1}),
		paper.NewPaperJoint("j1", mgl32.Vec3{1, 0, 1}),
	}
}

// twoSquareSheet lays s0 at the origin and s1 to its right, hinged at x = 1.
func twoSquareSheet(t *testing.T) (*paper.Sheet, *paper.PaperSquare, *paper.PaperSquare) {
	t.Helper()
	sheet := paper.NewSheet(physics.NewWorld(2))
	s0 := addSquare(t, sheet, "s0", mgl32.Vec3{0, 0, 0}, mgl32.QuatIdent())
	s1 := addSquare(t, sheet, "s1", mgl32.Vec3{2, 0, 0}, mgl32.QuatIdent())
	sheet.RefreshVisibleFaces()
	return sheet, s0, s1
}

func liftFold(degrees float32, moving ...*paper.PaperSquare) paper.FoldData {
	return paper.FoldData{
		Axis:        axisZ,
		Degrees:     degrees,
		Center:      hinge,
		AxisJoints:  hingeJoints(),
		FoldObjects: paper.FoldObjects{FoldSquares: moving},
	}
}

// countingQuery answers every query the same way and counts the calls.
type countingQuery struct {
	rays     int
	overlaps int
	rayHit   *physics.Hit
	boxHits  []physics.Hit
}

func (q *countingQuery) Raycast(origin, direction mgl32.Vec3, maxDistance float32, mask physics.Layer) (physics.Hit, bool) {
	q.rays++
	if q.rayHit == nil {
		return physics.Hit{}, false
	}
	return *q.rayHit, true
}

func (q *countingQuery) OverlapBox(center, halfExtents mgl32.Vec3, rotation mgl32.Quat, mask physics.Layer) []physics.Hit {
	q.overlaps++
	return q.boxHits
}

// stubScene has no owners. It counts how often the checker looks at it.
type stubScene struct {
	query     *countingQuery
	obstacles map[*paper.PaperSquare][]*paper.Obstacle
	groups    [][]*paper.PaperSquare
	lookups   int
}

func (s *stubScene) Query() physics.Query {
	return s.query
}

func (s *stubScene) OwnerOf(id physics.ColliderID) (*paper.PaperSquare, bool) {
	return nil, false
}

func (s *stubScene) ObstaclesOn(square *paper.PaperSquare) []*paper.Obstacle {
	return s.obstacles[square]
}

func (s *stubScene) OverlappingSquares() [][]*paper.PaperSquare {
	s.lookups++
	return s.groups
}

// pausingScene holds the first overlap lookup until release is closed. Later lookups
// return immediately.
type pausingScene struct {
	*stubScene
	once    sync.Once
	entered chan struct{}
	release chan struct{}
}

func newPausingScene() *pausingScene {
	return &pausingScene{
		stubScene: &stubScene{query: &countingQuery{}},
		entered:   make(chan struct{}),
		release:   make(chan struct{}),
	}
}

func (s *pausingScene) OverlappingSquares() [][]*paper.PaperSquare {
	s.once.Do(func() {
		close(s.entered)
		<-s.release
	})
	return s.stubScene.OverlappingSquares()
}
