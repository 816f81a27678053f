package paper

import (
	"sort"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/memmaker/paperfold/engine/physics"
	"github.com/memmaker/paperfold/engine/util"
	"github.com/memmaker/paperfold/engine/voxel"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Sheet owns every square, joint, obstacle and the player of a level and keeps the
// collider to square ownership map the fold checker resolves hits with.
type Sheet struct {
	world *physics.World

	squares   []*PaperSquare
	joints    []*PaperJoint
	obstacles []*Obstacle
	player    *Player

	squaresByName map[string]*PaperSquare
	jointsByName  map[string]*PaperJoint
	owners        map[physics.ColliderID]*PaperSquare
	riders        map[*PaperSquare][]*Obstacle
}

func NewSheet(world *physics.World) *Sheet {
	if world == nil {
		world = physics.NewWorld(physics.DefaultCellSize)
	}
	return &Sheet{
		world:         world,
		squaresByName: make(map[string]*PaperSquare),
		jointsByName:  make(map[string]*PaperJoint),
		owners:        make(map[physics.ColliderID]*PaperSquare),
		riders:        make(map[*PaperSquare][]*Obstacle),
	}
}

func (s *Sheet) World() *physics.World {
	return s.world
}

// Query exposes the collision world the sheet registers its colliders in.
func (s *Sheet) Query() physics.Query {
	return s.world
}

func (s *Sheet) AddSquare(square *PaperSquare) error {
	if square == nil {
		return errors.New("nil square")
	}
	if _, exists := s.squaresByName[square.Name]; exists {
		return errors.Errorf("duplicate square %q", square.Name)
	}
	square.order = len(s.squares)
	square.collider = s.world.Add(square.Name, physics.LayerPaper, square.shape())
	s.owners[square.collider] = square
	s.squares = append(s.squares, square)
	s.squaresByName[square.Name] = square
	return nil
}

func (s *Sheet) AddJoint(joint *PaperJoint) error {
	if joint == nil {
		return errors.New("nil joint")
	}
	if _, exists := s.jointsByName[joint.Name]; exists {
		return errors.Errorf("duplicate joint %q", joint.Name)
	}
	s.joints = append(s.joints, joint)
	s.jointsByName[joint.Name] = joint
	return nil
}

// AddObstacle registers an obstacle. Its square or parent obstacle must already be registered.
// Obstacles attached to nothing are scenery.
func (s *Sheet) AddObstacle(obstacle *Obstacle) error {
	if obstacle == nil {
		return errors.New("nil obstacle")
	}
	if obstacle.parent != nil && !s.hasObstacle(obstacle.parent) {
		return errors.Errorf("obstacle %q: parent %q is not registered", obstacle.Name, obstacle.parent.Name)
	}
	if obstacle.square != nil && s.squaresByName[obstacle.square.Name] != obstacle.square {
		return errors.Errorf("obstacle %q: square %q is not registered", obstacle.Name, obstacle.square.Name)
	}
	layer := obstacle.Layer
	if layer == 0 {
		layer = physics.LayerObstacle
	}
	obstacle.collider = s.world.Add(obstacle.Name, layer, obstacle.shape())
	if owner := obstacle.Square(); owner != nil {
		s.owners[obstacle.collider] = owner
		s.riders[owner] = append(s.riders[owner], obstacle)
	}
	s.obstacles = append(s.obstacles, obstacle)
	return nil
}

func (s *Sheet) hasObstacle(obstacle *Obstacle) bool {
	for _, o := range s.obstacles {
		if o == obstacle {
			return true
		}
	}
	return false
}

// SetPlayer registers the player, replacing any previous one.
func (s *Sheet) SetPlayer(player *Player) {
	if s.player != nil {
		s.world.Remove(s.player.collider)
		if s.player.standingOn != nil {
			s.player.standingOn.SetPlayerOccupied(false)
		}
	}
	s.player = player
	if player == nil {
		return
	}
	player.collider = s.world.Add(player.Name, physics.LayerPlayer, player.shape())
	if player.standingOn != nil {
		player.standingOn.SetPlayerOccupied(true)
	}
}

func (s *Sheet) Player() *Player {
	return s.player
}

// OwnerOf resolves the square a collider belongs to.
func (s *Sheet) OwnerOf(id physics.ColliderID) (*PaperSquare, bool) {
	square, ok := s.owners[id]
	return square, ok
}

// ObstaclesOn returns the obstacles riding on square, directly or through a parent.
func (s *Sheet) ObstaclesOn(square *PaperSquare) []*Obstacle {
	return s.riders[square]
}

func (s *Sheet) Squares() []*PaperSquare {
	return s.squares
}

func (s *Sheet) Joints() []*PaperJoint {
	return s.joints
}

func (s *Sheet) Obstacles() []*Obstacle {
	return s.obstacles
}

func (s *Sheet) Square(name string) (*PaperSquare, bool) {
	square, ok := s.squaresByName[name]
	return square, ok
}

func (s *Sheet) Joint(name string) (*PaperJoint, bool) {
	joint, ok := s.jointsByName[name]
	return joint, ok
}

// OverlappingSquares groups the squares by the lattice cell they snap to. Groups are
// ordered by cell and squares inside a group bottom to top.
func (s *Sheet) OverlappingSquares() [][]*PaperSquare {
	byCell := make(map[voxel.Int3][]*PaperSquare)
	var cells []voxel.Int3
	for _, square := range s.squares {
		cell := square.Cell()
		if _, ok := byCell[cell]; !ok {
			cells = append(cells, cell)
		}
		byCell[cell] = append(byCell[cell], square)
	}
	sort.Slice(cells, func(i, j int) bool { return cells[i].Less(cells[j]) })

	groups := make([][]*PaperSquare, 0, len(cells))
	for _, cell := range cells {
		group := byCell[cell]
		sort.SliceStable(group, func(i, j int) bool {
			if group[i].stack != group[j].stack {
				return group[i].stack < group[j].stack
			}
			return group[i].order < group[j].order
		})
		groups = append(groups, group)
	}
	return groups
}

// RefreshVisibleFaces recomputes which faces are exposed. A lone square shows both
// faces. In a stack only the outermost face on each side stays active.
func (s *Sheet) RefreshVisibleFaces() {
	for _, group := range s.OverlappingSquares() {
		if len(group) == 1 {
			group[0].SetFaceActive(FaceTop, true)
			group[0].SetFaceActive(FaceBottom, true)
			continue
		}
		normal := group[0].Transform().GetUp()
		for _, square := range group {
			for _, face := range square.Faces() {
				alignment := face.Transform.GetUp().Dot(normal)
				// faces across the stack axis cannot be covered by the stack
				square.SetFaceActive(face.Side, alignment < 0.5 && alignment > -0.5)
			}
		}
		s.activateFacing(group[len(group)-1], normal)
		s.activateFacing(group[0], normal.Mul(-1))
	}
}

func (s *Sheet) activateFacing(square *PaperSquare, direction mgl32.Vec3) {
	for _, face := range square.Faces() {
		if face.Transform.GetUp().Dot(direction) > 0.5 {
			square.SetFaceActive(face.Side, true)
		}
	}
}

// Validate reports lattice cells with more than two active faces.
func (s *Sheet) Validate() error {
	var problems []string
	for _, group := range s.OverlappingSquares() {
		var active []string
		for _, square := range group {
			for _, face := range square.ActiveFaces() {
				active = append(active, face.ToString())
			}
		}
		if len(active) > 2 {
			problems = append(problems, group[0].Cell().ToString()+": "+strings.Join(active, ", "))
		}
	}
	if len(problems) > 0 {
		util.LogLevelWarning("too many active faces", zap.Strings("cells", problems))
		return errors.Errorf("more than two active faces at %s", strings.Join(problems, "; "))
	}
	return nil
}
