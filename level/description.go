// Package level loads puzzle levels: the sheet with its squares, joints, obstacles and
// player, plus the named folds a level offers.
package level

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
)

// Description is the serialised form of a level shared by every file format.
// Vectors are stored as [x, y, z] and rotations as [x, y, z, w].
type Description struct {
	Name      string                `nbt:"name" json:"name"`
	Squares   []SquareDescription   `nbt:"squares" json:"squares"`
	Joints    []JointDescription    `nbt:"joints" json:"joints"`
	Obstacles []ObstacleDescription `nbt:"obstacles" json:"obstacles"`
	Players   []PlayerDescription   `nbt:"players" json:"players"`
	Folds     []FoldDescription     `nbt:"folds" json:"folds"`
}

type SquareDescription struct {
	Name     string    `nbt:"name" json:"name"`
	Position []float32 `nbt:"position" json:"position"`
	Rotation []float32 `nbt:"rotation" json:"rotation"`
	Stack    int32     `nbt:"stack" json:"stack"`
}

type JointDescription struct {
	Name     string    `nbt:"name" json:"name"`
	Position []float32 `nbt:"position" json:"position"`
}

type ObstacleDescription struct {
	Name     string    `nbt:"name" json:"name"`
	Position []float32 `nbt:"position" json:"position"`
	Rotation []float32 `nbt:"rotation" json:"rotation"`
	Center   []float32 `nbt:"center" json:"center"`
	Size     []float32 `nbt:"size" json:"size"`
	// Square or Parent names what the obstacle rides on. Both empty means scenery.
	Square       string `nbt:"square" json:"square"`
	Parent       string `nbt:"parent" json:"parent"`
	BlocksFold   byte   `nbt:"blocks_fold" json:"blocksFold"`
	ExemptPlayer byte   `nbt:"exempt_player" json:"exemptPlayer"`
	Layer        string `nbt:"layer" json:"layer"`
}

type PlayerDescription struct {
	Name     string    `nbt:"name" json:"name"`
	Position []float32 `nbt:"position" json:"position"`
	Rotation []float32 `nbt:"rotation" json:"rotation"`
	Size     []float32 `nbt:"size" json:"size"`
	Square   string    `nbt:"square" json:"square"`
}

type FoldDescription struct {
	Name    string    `nbt:"name" json:"name"`
	Axis    []float32 `nbt:"axis" json:"axis"`
	Degrees float32   `nbt:"degrees" json:"degrees"`
	Center  []float32 `nbt:"center" json:"center"`
	Joints  []string  `nbt:"joints" json:"joints"`
	Squares []string  `nbt:"squares" json:"squares"`
}

func toVec3(values []float32, fallback mgl32.Vec3) (mgl32.Vec3, error) {
	switch len(values) {
	case 0:
		return fallback, nil
	case 3:
		return mgl32.Vec3{values[0], values[1], values[2]}, nil
	}
	return mgl32.Vec3{}, errors.Errorf("expected 3 components, got %d", len(values))
}

func toQuat(values []float32) (mgl32.Quat, error) {
	switch len(values) {
	case 0:
		return mgl32.QuatIdent(), nil
	case 4:
		q := mgl32.Quat{W: values[3], V: mgl32.Vec3{values[0], values[1], values[2]}}
		if q.Len() == 0 {
			return mgl32.QuatIdent(), nil
		}
		return q.Normalize(), nil
	}
	return mgl32.Quat{}, errors.Errorf("expected 4 components, got %d", len(values))
}

func fromVec3(v mgl32.Vec3) []float32 {
	return []float32{v.X(), v.Y(), v.Z()}
}

func fromQuat(q mgl32.Quat) []float32 {
	return []float32{q.V.X(), q.V.Y(), q.V.Z(), q.W}
}

func flag(value bool) byte {
	if value {
		return 1
	}
	return 0
}
