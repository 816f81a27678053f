package level

import (
	"encoding/json"
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/memmaker/paperfold/engine/util"
	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
	"go.uber.org/zap"
)

const (
	kindSquare   = "square"
	kindJoint    = "joint"
	kindObstacle = "obstacle"
	kindPlayer   = "player"
)

// nodeExtras is what a level node carries in its glTF extras. Nodes without a kind
// only contribute their transform to their children.
type nodeExtras struct {
	Kind       string    `json:"kind"`
	Stack      int32     `json:"stack,omitempty"`
	Center     []float32 `json:"center,omitempty"`
	Size       []float32 `json:"size,omitempty"`
	BlocksFold *bool     `json:"blocksFold,omitempty"`
	Exempt     []string  `json:"exempt,omitempty"`
	Layer      string    `json:"layer,omitempty"`
	Square     string    `json:"square,omitempty"`
	Parent     string    `json:"parent,omitempty"`
}

type sceneExtras struct {
	Name  string            `json:"name,omitempty"`
	Folds []FoldDescription `json:"folds,omitempty"`
}

type gltfIndex interface {
	~int | ~uint32
}

type gltfFloat interface {
	~float32 | ~float64
}

func vec3From[T gltfFloat](v [3]T) mgl32.Vec3 {
	return mgl32.Vec3{float32(v[0]), float32(v[1]), float32(v[2])}
}

func quatFrom[T gltfFloat](v [4]T) mgl32.Quat {
	return mgl32.Quat{W: float32(v[3]), V: mgl32.Vec3{float32(v[0]), float32(v[1]), float32(v[2])}}
}

func setVec3[T gltfFloat](dst *[3]T, v mgl32.Vec3) {
	*dst = [3]T{T(v.X()), T(v.Y()), T(v.Z())}
}

func setQuat[T gltfFloat](dst *[4]T, q mgl32.Quat) {
	*dst = [4]T{T(q.V.X()), T(q.V.Y()), T(q.V.Z()), T(q.W)}
}

func appendIndex[T gltfIndex](dst []T, index int) []T {
	return append(dst, T(index))
}

// decodeExtras re-reads the loosely typed extras of a node or scene into target.
func decodeExtras(extras any, target any) (bool, error) {
	if extras == nil {
		return false, nil
	}
	raw, err := json.Marshal(extras)
	if err != nil {
		return false, err
	}
	return true, json.Unmarshal(raw, target)
}

// attachment tracks the closest square and obstacle above a node.
type attachment struct {
	square   string
	obstacle string
}

type gltfReader struct {
	doc  *gltf.Document
	desc Description
}

// LoadGLTF reads a level from the default scene of a glTF file. Levels are described
// by node extras; see nodeExtras for the recognised keys.
func LoadGLTF(filename string) (Description, error) {
	doc, err := gltf.Open(filename)
	if err != nil {
		return Description{}, errors.Wrap(err, "opening glTF level")
	}
	if len(doc.Scenes) == 0 {
		return Description{}, errors.Errorf("%s: no scenes", filename)
	}
	defaultSceneIndex := 0
	if doc.Scene != nil {
		defaultSceneIndex = int(*doc.Scene)
	}
	if defaultSceneIndex >= len(doc.Scenes) {
		return Description{}, errors.Errorf("%s: default scene %d does not exist", filename, defaultSceneIndex)
	}
	scene := doc.Scenes[defaultSceneIndex]

	reader := &gltfReader{doc: doc}
	var extras sceneExtras
	if _, err = decodeExtras(scene.Extras, &extras); err != nil {
		return Description{}, errors.Wrapf(err, "%s: scene extras", filename)
	}
	reader.desc.Name = extras.Name
	if reader.desc.Name == "" {
		reader.desc.Name = scene.Name
	}
	reader.desc.Folds = extras.Folds

	for _, nodeIndex := range scene.Nodes {
		if err = reader.visit(int(nodeIndex), util.NewDefaultTransform(), attachment{}, 0); err != nil {
			return Description{}, errors.Wrap(err, filename)
		}
	}
	util.LogLevelInfo("glTF level read", zap.String("file", filename), zap.Int("nodes", len(doc.Nodes)))
	return reader.desc, nil
}

func (r *gltfReader) visit(nodeIndex int, parent util.Transform, attached attachment, depth int) error {
	if nodeIndex < 0 || nodeIndex >= len(r.doc.Nodes) {
		return errors.Errorf("node index %d out of range", nodeIndex)
	}
	if depth > len(r.doc.Nodes) {
		return errors.New("node hierarchy has a cycle")
	}
	node := r.doc.Nodes[nodeIndex]
	local := util.NewTransform(vec3From(node.TranslationOrDefault()), quatFrom(node.RotationOrDefault()))
	world := parent.Mul(local)

	var extras nodeExtras
	if _, err := decodeExtras(node.Extras, &extras); err != nil {
		return errors.Wrapf(err, "node %q extras", node.Name)
	}
	position := fromVec3(world.GetPosition())
	rotation := fromQuat(world.GetRotation())

	switch strings.ToLower(extras.Kind) {
	case kindSquare:
		r.desc.Squares = append(r.desc.Squares, SquareDescription{
			Name:     node.Name,
			Position: position,
			Rotation: rotation,
			Stack:    extras.Stack,
		})
		attached = attachment{square: node.Name}
	case kindJoint:
		r.desc.Joints = append(r.desc.Joints, JointDescription{Name: node.Name, Position: position})
	case kindObstacle:
		od := ObstacleDescription{
			Name:       node.Name,
			Position:   position,
			Rotation:   rotation,
			Center:     extras.Center,
			Size:       extras.Size,
			Square:     extras.Square,
			Parent:     extras.Parent,
			BlocksFold: 1,
			Layer:      extras.Layer,
		}
		if od.Square == "" && od.Parent == "" {
			if attached.obstacle != "" {
				od.Parent = attached.obstacle
			} else {
				od.Square = attached.square
			}
		}
		if extras.BlocksFold != nil {
			od.BlocksFold = flag(*extras.BlocksFold)
		}
		for _, exemption := range extras.Exempt {
			if strings.EqualFold(exemption, kindPlayer) {
				od.ExemptPlayer = 1
				continue
			}
			return errors.Errorf("obstacle %q: unknown exemption %q", node.Name, exemption)
		}
		r.desc.Obstacles = append(r.desc.Obstacles, od)
		attached.obstacle = node.Name
	case kindPlayer:
		square := extras.Square
		if square == "" {
			square = attached.square
		}
		r.desc.Players = append(r.desc.Players, PlayerDescription{
			Name:     node.Name,
			Position: position,
			Rotation: rotation,
			Size:     extras.Size,
			Square:   square,
		})
	case "":
	default:
		util.LogLevelWarning("unknown node kind", zap.String("node", node.Name), zap.String("kind", extras.Kind))
	}

	for _, child := range node.Children {
		if err := r.visit(int(child), world, attached, depth+1); err != nil {
			return err
		}
	}
	return nil
}

// SaveGLTF writes desc as a flat glTF scene. Attachments are kept in the extras.
func SaveGLTF(filename string, desc Description) error {
	doc := gltf.NewDocument()
	scene := doc.Scenes[0]
	scene.Name = desc.Name
	scene.Extras = sceneExtras{Name: desc.Name, Folds: desc.Folds}

	addNode := func(name string, position, rotation []float32, extras nodeExtras) error {
		pos, err := toVec3(position, mgl32.Vec3{})
		if err != nil {
			return errors.Wrapf(err, "node %q", name)
		}
		rot, err := toQuat(rotation)
		if err != nil {
			return errors.Wrapf(err, "node %q", name)
		}
		node := &gltf.Node{Name: name, Extras: extras}
		setVec3(&node.Translation, pos)
		setQuat(&node.Rotation, rot)
		doc.Nodes = append(doc.Nodes, node)
		scene.Nodes = appendIndex(scene.Nodes, len(doc.Nodes)-1)
		return nil
	}

	for _, sd := range desc.Squares {
		if err := addNode(sd.Name, sd.Position, sd.Rotation, nodeExtras{Kind: kindSquare, Stack: sd.Stack}); err != nil {
			return err
		}
	}
	for _, jd := range desc.Joints {
		if err := addNode(jd.Name, jd.Position, nil, nodeExtras{Kind: kindJoint}); err != nil {
			return err
		}
	}
	for _, od := range desc.Obstacles {
		blocks := od.BlocksFold != 0
		extras := nodeExtras{
			Kind:       kindObstacle,
			Center:     od.Center,
			Size:       od.Size,
			BlocksFold: &blocks,
			Layer:      od.Layer,
			Square:     od.Square,
			Parent:     od.Parent,
		}
		if od.ExemptPlayer != 0 {
			extras.Exempt = []string{kindPlayer}
		}
		if err := addNode(od.Name, od.Position, od.Rotation, extras); err != nil {
			return err
		}
	}
	for _, pd := range desc.Players {
		if err := addNode(pd.Name, pd.Position, pd.Rotation, nodeExtras{Kind: kindPlayer, Size: pd.Size, Square: pd.Square}); err != nil {
			return err
		}
	}
	if strings.EqualFold(filepath.Ext(filename), ".glb") {
		return errors.Wrap(gltf.SaveBinary(doc, filename), "saving glTF level")
	}
	return errors.Wrap(gltf.Save(doc, filename), "saving glTF level")
}
