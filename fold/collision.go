package fold

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/memmaker/paperfold/engine/physics"
	"github.com/memmaker/paperfold/engine/util"
	"github.com/memmaker/paperfold/paper"
	"go.uber.org/zap"
)

// Scene is what the checker needs to know about the level.
type Scene interface {
	Query() physics.Query
	OwnerOf(id physics.ColliderID) (*paper.PaperSquare, bool)
	ObstaclesOn(square *paper.PaperSquare) []*paper.Obstacle
	OverlappingSquares() [][]*paper.PaperSquare
}

// Collision describes the first blocked pose of a sweep.
type Collision struct {
	Sample     int
	Probe      string
	Collider   string
	ColliderID physics.ColliderID
	Point      mgl32.Vec3
}

func (c Collision) ToString() string {
	return fmt.Sprintf("%s hits %s at sample %d (%.2f, %.2f, %.2f)", c.Probe, c.Collider, c.Sample, c.Point.X(), c.Point.Y(), c.Point.Z())
}

type squareProbe struct {
	name      string
	transform util.Transform
	cast      physics.SquareCast
}

type boxProbe struct {
	name        string
	transform   util.Transform
	halfExtents mgl32.Vec3
	exemptions  paper.Exemption
}

// CollisionSweeper swings stand-ins for the moving squares and their obstacles along
// the fold arc and asks the world what they run into.
type CollisionSweeper struct {
	Samples int
	Inset   float32
	Mask    physics.Layer
}

func NewCollisionSweeper(cfg Config) *CollisionSweeper {
	return &CollisionSweeper{
		Samples: cfg.Samples,
		Inset:   cfg.ProbeInset,
		Mask:    cfg.Mask,
	}
}

// Sweep returns the first disallowed hit along the arc. The final pose is not sampled.
func (s *CollisionSweeper) Sweep(scene Scene, fd paper.FoldData) (Collision, bool) {
	moving := fd.FoldObjects.Set()
	if len(moving) == 0 {
		return Collision{}, false
	}
	squares, boxes := s.probes(scene, fd.FoldObjects.FoldSquares)
	query := scene.Query()

	pivot := util.NewPivot(fd.Center)
	step := fd.Degrees / float32(s.Samples+1)
	for sample := 1; sample <= s.Samples; sample++ {
		pivot.RotateAround(fd.Axis, step)

		for _, probe := range squares {
			placed := pivot.Apply(probe.transform)
			for _, hit := range probe.cast.Cast(query, placed, s.Mask) {
				owner, owned := scene.OwnerOf(hit.Collider)
				if owned {
					if _, ok := moving[owner]; ok {
						continue
					}
				}
				return s.blocked(sample, probe.name, hit), true
			}
		}

		for _, probe := range boxes {
			placed := pivot.Apply(probe.transform)
			hits := query.OverlapBox(placed.GetPosition(), probe.halfExtents, placed.GetRotation(), s.Mask)
			for _, hit := range hits {
				owner, owned := scene.OwnerOf(hit.Collider)
				if !owned {
					if probe.exemptions.Has(paper.ExemptPlayer) {
						continue
					}
					return s.blocked(sample, probe.name, hit), true
				}
				if _, ok := moving[owner]; !ok {
					return s.blocked(sample, probe.name, hit), true
				}
			}
		}
	}
	return Collision{}, false
}

func (s *CollisionSweeper) probes(scene Scene, foldSquares []*paper.PaperSquare) ([]squareProbe, []boxProbe) {
	var squares []squareProbe
	var boxes []boxProbe
	for _, square := range foldSquares {
		squares = append(squares, squareProbe{
			name:      square.Name,
			transform: square.Transform(),
			cast:      physics.NewSquareCast(square.Length(), s.Inset),
		})
		for _, obstacle := range scene.ObstaclesOn(square) {
			if !obstacle.BlocksFold {
				continue
			}
			boxes = append(boxes, boxProbe{
				name:        obstacle.Name,
				transform:   obstacle.BoxTransform(),
				halfExtents: obstacle.HalfExtents(),
				exemptions:  obstacle.Exemptions,
			})
		}
	}
	return squares, boxes
}

func (s *CollisionSweeper) blocked(sample int, probe string, hit physics.Hit) Collision {
	collision := Collision{
		Sample:     sample,
		Probe:      probe,
		Collider:   hit.Name,
		ColliderID: hit.Collider,
		Point:      hit.Point,
	}
	util.LogFoldDebug("sweep blocked", zap.String("collision", collision.ToString()))
	return collision
}
