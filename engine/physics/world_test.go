package physics

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/memmaker/paperfold/engine/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unitBox(center mgl32.Vec3) Box {
	return NewBox(center, mgl32.Vec3{0.5, 0.5, 0.5}, mgl32.QuatIdent())
}

func TestWorld_RaycastReturnsNearest(t *testing.T) {
	w := NewWorld(2)
	far := w.Add("far", LayerObstacle, unitBox(mgl32.Vec3{6, 0, 0}))
	near := w.Add("near", LayerObstacle, unitBox(mgl32.Vec3{3, 0, 0}))
	require.NotEqual(t, far, near)

	hit, ok := w.Raycast(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 0, 0}, 10, LayerAll)
	require.True(t, ok)
	assert.Equal(t, near, hit.Collider)
	assert.Equal(t, "near", hit.Name)
	assert.InDelta(t, 2.5, hit.Distance, 1e-4)
	assert.InDelta(t, 2.5, hit.Point.X(), 1e-4)
}

func TestWorld_RaycastRespectsDistanceAndMask(t *testing.T) {
	w := NewWorld(2)
	w.Add("player", LayerPlayer, unitBox(mgl32.Vec3{3, 0, 0}))

	_, ok := w.Raycast(mgl32.Vec3{}, mgl32.Vec3{1, 0, 0}, 2, LayerAll)
	assert.False(t, ok, "out of range")

	_, ok = w.Raycast(mgl32.Vec3{}, mgl32.Vec3{1, 0, 0}, 10, LayerPaper|LayerObstacle)
	assert.False(t, ok, "masked out")

	_, ok = w.Raycast(mgl32.Vec3{}, mgl32.Vec3{}, 10, LayerAll)
	assert.False(t, ok, "zero direction")
}

func TestWorld_RaycastAcrossCells(t *testing.T) {
	w := NewWorld(1)
	id := w.Add("wall", LayerObstacle, NewBox(mgl32.Vec3{-7.5, 3, 4}, mgl32.Vec3{0.5, 4, 4}, mgl32.QuatIdent()))

	hit, ok := w.Raycast(mgl32.Vec3{0, 3, 4}, mgl32.Vec3{-1, 0, 0}, 20, LayerAll)
	require.True(t, ok)
	assert.Equal(t, id, hit.Collider)
	assert.InDelta(t, 7, hit.Distance, 1e-4)
}

func TestWorld_PlateIsInvisibleToRaysInItsPlane(t *testing.T) {
	w := NewWorld(2)
	w.Add("square", LayerPaper, NewPlate(util.NewTransformAt(mgl32.Vec3{}), 2, 0.001))

	_, ok := w.Raycast(mgl32.Vec3{-3, 0, 0.2}, mgl32.Vec3{1, 0, 0}, 6, LayerAll)
	assert.False(t, ok)

	hit, ok := w.Raycast(mgl32.Vec3{0.3, 2, 0.3}, mgl32.Vec3{0, -1, 0}, 5, LayerAll)
	require.True(t, ok)
	assert.InDelta(t, 2, hit.Distance, 1e-4)
}

func TestWorld_OverlapBox(t *testing.T) {
	w := NewWorld(2)
	a := w.Add("a", LayerObstacle, unitBox(mgl32.Vec3{0, 0, 0}))
	b := w.Add("b", LayerPaper, NewPlate(util.NewTransformAt(mgl32.Vec3{1, 0, 0}), 2, 0.001))
	w.Add("c", LayerObstacle, unitBox(mgl32.Vec3{10, 0, 0}))

	hits := w.OverlapBox(mgl32.Vec3{0.5, 0, 0}, mgl32.Vec3{0.25, 0.25, 0.25}, mgl32.QuatIdent(), LayerAll)
	require.Len(t, hits, 2)
	assert.Equal(t, a, hits[0].Collider)
	assert.Equal(t, b, hits[1].Collider)

	hits = w.OverlapBox(mgl32.Vec3{0.5, 0, 0}, mgl32.Vec3{0.25, 0.25, 0.25}, mgl32.QuatIdent(), LayerPaper)
	require.Len(t, hits, 1)
	assert.Equal(t, b, hits[0].Collider)

	assert.Empty(t, w.OverlapBox(mgl32.Vec3{5, 5, 5}, mgl32.Vec3{1, 1, 1}, mgl32.QuatIdent(), LayerAll))
}

func TestWorld_MoveAndRemove(t *testing.T) {
	w := NewWorld(2)
	id := w.Add("crate", LayerObstacle, unitBox(mgl32.Vec3{0, 0, 0}))
	require.Equal(t, 1, w.Len())

	require.True(t, w.Move(id, unitBox(mgl32.Vec3{9, 0, 0})))
	assert.Empty(t, w.OverlapBox(mgl32.Vec3{}, mgl32.Vec3{1, 1, 1}, mgl32.QuatIdent(), LayerAll))
	assert.Len(t, w.OverlapBox(mgl32.Vec3{9, 0, 0}, mgl32.Vec3{1, 1, 1}, mgl32.QuatIdent(), LayerAll), 1)

	collider, ok := w.Get(id)
	require.True(t, ok)
	assert.Equal(t, "crate", collider.Name)

	w.Remove(id)
	w.Remove(id)
	assert.Equal(t, 0, w.Len())
	assert.False(t, w.Move(id, unitBox(mgl32.Vec3{})))
	_, ok = w.Get(id)
	assert.False(t, ok)
	assert.Empty(t, w.OverlapBox(mgl32.Vec3{9, 0, 0}, mgl32.Vec3{1, 1, 1}, mgl32.QuatIdent(), LayerAll))
}

func TestParseLayerMask(t *testing.T) {
	mask, err := ParseLayerMask([]string{"paper", " Obstacle", "player"})
	require.NoError(t, err)
	assert.Equal(t, LayerPaper|LayerObstacle|LayerPlayer, mask)
	assert.False(t, LayerTrigger.In(mask))

	_, err = ParseLayerMask([]string{"paper", "water"})
	assert.Error(t, err)
}

func BenchmarkWorldRaycast(b *testing.B) {
	w := NewWorld(2)
	for x := -10; x <= 10; x++ {
		for z := -10; z <= 10; z++ {
			w.Add("square", LayerPaper, NewPlate(util.NewTransformAt(mgl32.Vec3{float32(x) * 2, 0, float32(z) * 2}), 2, 0.001))
		}
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		w.Raycast(mgl32.Vec3{0.5, 3, 0.5}, mgl32.Vec3{0.2, -1, 0.1}, 10, LayerAll)
	}
}
