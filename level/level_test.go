package level

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/memmaker/paperfold/engine/lock"
	"github.com/memmaker/paperfold/fold"
	"github.com/memmaker/paperfold/paper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const hingeLevel = "testdata/hinge.gltf"

func checkAll(t *testing.T, level *Level) map[string]fold.FailureType {
	t.Helper()
	checker := fold.NewChecker(level.Sheet, lock.NewCoordinator(), fold.DefaultConfig())
	results := make(map[string]fold.FailureType)
	for _, name := range level.FoldNames() {
		fd, err := level.Fold(name)
		require.NoError(t, err)
		results[name] = checker.CheckFold(fd)
	}
	return results
}

func TestLoadGLTF(t *testing.T) {
	desc, err := LoadGLTF(hingeLevel)
	require.NoError(t, err)

	assert.Equal(t, "hinge", desc.Name)
	require.Len(t, desc.Squares, 2)
	require.Len(t, desc.Joints, 3)
	require.Len(t, desc.Obstacles, 3)
	require.Len(t, desc.Players, 1)
	require.Len(t, desc.Folds, 3)

	obstacles := make(map[string]ObstacleDescription)
	for _, od := range desc.Obstacles {
		obstacles[od.Name] = od
	}
	shard := obstacles["shard"]
	assert.Equal(t, "s1", shard.Square)
	assert.Equal(t, byte(1), shard.ExemptPlayer)
	assert.InDeltaSlice(t, []float32{2, 0.25, 0}, shard.Position, 1e-5)

	crate := obstacles["crate"]
	assert.Empty(t, crate.Square, "props is not a square")
	assert.Equal(t, byte(0), crate.BlocksFold)
	assert.InDeltaSlice(t, []float32{0, 0.5, 4}, crate.Position, 1e-5)

	assert.Equal(t, "s0", desc.Players[0].Square)
}

func TestLevel_FoldsFromGLTF(t *testing.T) {
	level, err := Load(hingeLevel, DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, []string{"bent", "lift", "tuck"}, level.FoldNames())
	assert.Equal(t, map[string]fold.FailureType{
		"lift": fold.COLLISION,
		"tuck": fold.NONE,
		"bent": fold.KINKED,
	}, checkAll(t, level))

	s0, ok := level.Sheet.Square("s0")
	require.True(t, ok)
	assert.True(t, s0.PlayerOccupied())

	fd, err := level.Fold("lift")
	require.NoError(t, err)
	assert.Equal(t, mgl32.Vec3{0, 0, 1}, fd.Axis)
	require.Len(t, fd.FoldObjects.FoldSquares, 1)
	assert.Equal(t, "s1", fd.FoldObjects.FoldSquares[0].Name)

	_, err = level.Fold("missing")
	assert.Error(t, err)
}

func TestNBT_SameResultsAsGLTF(t *testing.T) {
	desc, err := LoadGLTF(hingeLevel)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteNBT(&buf, desc))
	decoded, err := ReadNBT(&buf)
	require.NoError(t, err)
	assert.Equal(t, desc.Name, decoded.Name)
	assert.Len(t, decoded.Obstacles, len(desc.Obstacles))

	fromGLTF, err := Build(desc, DefaultOptions())
	require.NoError(t, err)
	fromNBT, err := Build(decoded, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, checkAll(t, fromGLTF), checkAll(t, fromNBT))
}

func TestConvert_RoundTripThroughFiles(t *testing.T) {
	desc, err := ReadDescription(hingeLevel)
	require.NoError(t, err)
	dir := t.TempDir()

	nbtFile := filepath.Join(dir, "hinge.nbt")
	require.NoError(t, WriteDescription(nbtFile, desc))
	gltfFile := filepath.Join(dir, "flat.gltf")
	require.NoError(t, WriteDescription(gltfFile, desc))

	for _, file := range []string{nbtFile, gltfFile} {
		level, err := Load(file, DefaultOptions())
		require.NoError(t, err, file)
		assert.Equal(t, "hinge", level.Name)
		assert.Equal(t, fold.COLLISION, checkAll(t, level)["lift"], file)
		assert.Equal(t, fold.NONE, checkAll(t, level)["tuck"], file)

		shard := level.Sheet.Obstacles()
		require.NotEmpty(t, shard)
	}

	flat, err := LoadGLTF(gltfFile)
	require.NoError(t, err)
	assert.ElementsMatch(t, desc.Obstacles, flat.Obstacles)

	assert.Error(t, WriteDescription(filepath.Join(dir, "hinge.txt"), desc))
	_, err = ReadDescription(filepath.Join(dir, "hinge.txt"))
	assert.Error(t, err)
}

func TestBuild_ObstaclesInAnyOrder(t *testing.T) {
	desc := Description{
		Name:    "order",
		Squares: []SquareDescription{{Name: "s", Position: []float32{0, 0, 0}}},
		Obstacles: []ObstacleDescription{
			{Name: "child", Position: []float32{0, 1.5, 0}, Parent: "base", BlocksFold: 1},
			{Name: "base", Position: []float32{0, 0.5, 0}, Square: "s", BlocksFold: 1},
		},
	}
	level, err := Build(desc, DefaultOptions())
	require.NoError(t, err)

	s, _ := level.Sheet.Square("s")
	riders := level.Sheet.ObstaclesOn(s)
	require.Len(t, riders, 2)
	assert.Equal(t, "base", riders[0].Name)
	assert.Equal(t, "child", riders[1].Name)
}

func TestBuild_Errors(t *testing.T) {
	square := SquareDescription{Name: "s", Position: []float32{0, 0, 0}}
	testCases := []struct {
		name string
		desc Description
	}{
		{"bad vector", Description{Squares: []SquareDescription{{Name: "s", Position: []float32{1, 2}}}}},
		{"missing parent", Description{Squares: []SquareDescription{square}, Obstacles: []ObstacleDescription{{Name: "o", Parent: "ghost"}}}},
		{"unknown square", Description{Obstacles: []ObstacleDescription{{Name: "o", Square: "ghost"}}}},
		{"unknown layer", Description{Obstacles: []ObstacleDescription{{Name: "o", Layer: "water"}}}},
		{"two players", Description{Players: []PlayerDescription{{Name: "a"}, {Name: "b"}}}},
		{"fold with unknown square", Description{Squares: []SquareDescription{square}, Folds: []FoldDescription{{Name: "f", Axis: []float32{0, 0, 1}, Squares: []string{"ghost"}}}}},
		{"fold with unknown joint", Description{Squares: []SquareDescription{square}, Folds: []FoldDescription{{Name: "f", Axis: []float32{0, 0, 1}, Joints: []string{"ghost"}}}}},
		{"fold without axis", Description{Folds: []FoldDescription{{Name: "f"}}}},
		{"duplicate fold", Description{Folds: []FoldDescription{{Name: "f", Axis: []float32{1, 0, 0}}, {Name: "f", Axis: []float32{1, 0, 0}}}}},
		{"duplicate square", Description{Squares: []SquareDescription{square, square}}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Build(tc.desc, DefaultOptions())
			assert.Error(t, err)
		})
	}
}

func TestBuild_StackedSquaresShowOuterFaces(t *testing.T) {
	desc := Description{
		Squares: []SquareDescription{
			{Name: "a", Position: []float32{0, 0, 0}},
			{Name: "b", Position: []float32{0, 0, 0}, Rotation: []float32{1, 0, 0, 0}, Stack: 1},
		},
	}
	level, err := Build(desc, DefaultOptions())
	require.NoError(t, err)
	require.NoError(t, level.Sheet.Validate())

	b, _ := level.Sheet.Square("b")
	faces := b.ActiveFaces()
	require.Len(t, faces, 1)
	assert.Equal(t, paper.FaceBottom, faces[0].Side)
}
