package level

import (
	"sort"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/memmaker/paperfold/engine/physics"
	"github.com/memmaker/paperfold/engine/util"
	"github.com/memmaker/paperfold/paper"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Options control how a description is turned into a sheet.
type Options struct {
	CellSize       float32
	PaperLength    float32
	PaperThickness float32
}

func DefaultOptions() Options {
	return Options{
		CellSize:       physics.DefaultCellSize,
		PaperLength:    paper.DefaultLength,
		PaperThickness: paper.DefaultThickness,
	}
}

type Level struct {
	Name  string
	Sheet *paper.Sheet

	description Description
	folds       map[string]FoldDescription
}

// Build registers everything the description names in a fresh collision world.
func Build(desc Description, opts Options) (*Level, error) {
	sheet := paper.NewSheet(physics.NewWorld(opts.CellSize))

	for _, sd := range desc.Squares {
		transform, err := placement(sd.Position, sd.Rotation)
		if err != nil {
			return nil, errors.Wrapf(err, "square %q", sd.Name)
		}
		square := paper.NewPaperSquare(sd.Name, transform, opts.PaperLength, opts.PaperThickness)
		square.SetStack(int(sd.Stack))
		if err = sheet.AddSquare(square); err != nil {
			return nil, err
		}
	}

	for _, jd := range desc.Joints {
		position, err := toVec3(jd.Position, mgl32.Vec3{})
		if err != nil {
			return nil, errors.Wrapf(err, "joint %q", jd.Name)
		}
		if err = sheet.AddJoint(paper.NewPaperJoint(jd.Name, position)); err != nil {
			return nil, err
		}
	}

	if err := addObstacles(sheet, desc.Obstacles); err != nil {
		return nil, err
	}

	if len(desc.Players) > 1 {
		return nil, errors.Errorf("level %q has %d players", desc.Name, len(desc.Players))
	}
	for _, pd := range desc.Players {
		player, err := buildPlayer(sheet, pd)
		if err != nil {
			return nil, err
		}
		sheet.SetPlayer(player)
	}

	sheet.RefreshVisibleFaces()
	if err := sheet.Validate(); err != nil {
		util.LogLevelWarning("level has inconsistent stacks", zap.String("level", desc.Name), zap.Error(err))
	}

	level := &Level{
		Name:        desc.Name,
		Sheet:       sheet,
		description: desc,
		folds:       make(map[string]FoldDescription, len(desc.Folds)),
	}
	for _, fd := range desc.Folds {
		if _, exists := level.folds[fd.Name]; exists {
			return nil, errors.Errorf("duplicate fold %q", fd.Name)
		}
		if _, err := level.foldData(fd); err != nil {
			return nil, err
		}
		level.folds[fd.Name] = fd
	}
	util.LogLevelInfo("level built",
		zap.String("level", desc.Name),
		zap.Int("squares", len(desc.Squares)),
		zap.Int("obstacles", len(desc.Obstacles)),
		zap.Int("folds", len(desc.Folds)),
	)
	return level, nil
}

// addObstacles registers obstacles parents first, whatever order the file lists them in.
func addObstacles(sheet *paper.Sheet, descriptions []ObstacleDescription) error {
	registered := make(map[string]*paper.Obstacle)
	pending := descriptions
	for len(pending) > 0 {
		var waiting []ObstacleDescription
		for _, od := range pending {
			if od.Parent != "" && registered[od.Parent] == nil {
				waiting = append(waiting, od)
				continue
			}
			obstacle, err := buildObstacle(sheet, od, registered[od.Parent])
			if err != nil {
				return err
			}
			if _, exists := registered[od.Name]; exists {
				return errors.Errorf("duplicate obstacle %q", od.Name)
			}
			if err = sheet.AddObstacle(obstacle); err != nil {
				return err
			}
			registered[od.Name] = obstacle
		}
		if len(waiting) == len(pending) {
			return errors.Errorf("obstacle %q: parent %q not found", waiting[0].Name, waiting[0].Parent)
		}
		pending = waiting
	}
	return nil
}

func buildObstacle(sheet *paper.Sheet, od ObstacleDescription, parent *paper.Obstacle) (*paper.Obstacle, error) {
	transform, err := placement(od.Position, od.Rotation)
	if err != nil {
		return nil, errors.Wrapf(err, "obstacle %q", od.Name)
	}
	center, err := toVec3(od.Center, mgl32.Vec3{})
	if err != nil {
		return nil, errors.Wrapf(err, "obstacle %q center", od.Name)
	}
	size, err := toVec3(od.Size, mgl32.Vec3{1, 1, 1})
	if err != nil {
		return nil, errors.Wrapf(err, "obstacle %q size", od.Name)
	}
	obstacle := paper.NewObstacle(od.Name, transform, center, size)
	obstacle.BlocksFold = od.BlocksFold != 0
	if od.ExemptPlayer != 0 {
		obstacle.Exempt(paper.ExemptPlayer)
	}
	if od.Layer != "" {
		layer, err := physics.ParseLayerMask([]string{od.Layer})
		if err != nil {
			return nil, errors.Wrapf(err, "obstacle %q", od.Name)
		}
		obstacle.Layer = layer
	}
	switch {
	case parent != nil:
		obstacle.AttachToObstacle(parent)
	case od.Square != "":
		square, ok := sheet.Square(od.Square)
		if !ok {
			return nil, errors.Errorf("obstacle %q: unknown square %q", od.Name, od.Square)
		}
		obstacle.AttachToSquare(square)
	}
	return obstacle, nil
}

func buildPlayer(sheet *paper.Sheet, pd PlayerDescription) (*paper.Player, error) {
	transform, err := placement(pd.Position, pd.Rotation)
	if err != nil {
		return nil, errors.Wrapf(err, "player %q", pd.Name)
	}
	size, err := toVec3(pd.Size, mgl32.Vec3{0.5, 2, 0.5})
	if err != nil {
		return nil, errors.Wrapf(err, "player %q size", pd.Name)
	}
	player := paper.NewPlayer(pd.Name, transform, size)
	if pd.Square != "" {
		square, ok := sheet.Square(pd.Square)
		if !ok {
			return nil, errors.Errorf("player %q: unknown square %q", pd.Name, pd.Square)
		}
		player.StandOn(square)
	}
	return player, nil
}

func placement(position, rotation []float32) (util.Transform, error) {
	pos, err := toVec3(position, mgl32.Vec3{})
	if err != nil {
		return util.Transform{}, err
	}
	rot, err := toQuat(rotation)
	if err != nil {
		return util.Transform{}, err
	}
	return util.NewTransform(pos, rot), nil
}

// Description returns the description the level was built from.
func (l *Level) Description() Description {
	return l.description
}

// FoldNames lists the level's folds alphabetically.
func (l *Level) FoldNames() []string {
	names := make([]string, 0, len(l.folds))
	for name := range l.folds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Fold resolves a named fold against the level's sheet.
func (l *Level) Fold(name string) (paper.FoldData, error) {
	fd, ok := l.folds[name]
	if !ok {
		return paper.FoldData{}, errors.Errorf("level %q has no fold %q", l.Name, name)
	}
	return l.foldData(fd)
}

func (l *Level) foldData(fd FoldDescription) (paper.FoldData, error) {
	axis, err := toVec3(fd.Axis, mgl32.Vec3{})
	if err != nil {
		return paper.FoldData{}, errors.Wrapf(err, "fold %q axis", fd.Name)
	}
	if axis.Len() == 0 {
		return paper.FoldData{}, errors.Errorf("fold %q has no axis", fd.Name)
	}
	center, err := toVec3(fd.Center, mgl32.Vec3{})
	if err != nil {
		return paper.FoldData{}, errors.Wrapf(err, "fold %q center", fd.Name)
	}
	data := paper.FoldData{
		Axis:    axis.Normalize(),
		Degrees: fd.Degrees,
		Center:  center,
	}
	for _, name := range fd.Joints {
		joint, ok := l.Sheet.Joint(name)
		if !ok {
			return paper.FoldData{}, errors.Errorf("fold %q: unknown joint %q", fd.Name, name)
		}
		data.AxisJoints = append(data.AxisJoints, joint)
	}
	for _, name := range fd.Squares {
		square, ok := l.Sheet.Square(name)
		if !ok {
			return paper.FoldData{}, errors.Errorf("fold %q: unknown square %q", fd.Name, name)
		}
		data.FoldObjects.FoldSquares = append(data.FoldObjects.FoldSquares, square)
	}
	return data, nil
}
