package physics

import (
	"sort"
	"sync"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/memmaker/paperfold/engine/util"
	"github.com/memmaker/paperfold/engine/voxel"
	"go.uber.org/zap"
)

type Collider struct {
	ID    ColliderID
	Name  string
	Layer Layer
	Shape Shape
}

// World is an in-memory collision scene. Colliders are bucketed into a uniform grid
// so queries only look at the cells they touch.
type World struct {
	mu            sync.RWMutex
	nextID        ColliderID
	colliders     map[ColliderID]*Collider
	objectsOnGrid map[voxel.Int3]map[ColliderID]struct{}
	cellSize      float32
}

const DefaultCellSize = 2

func NewWorld(cellSize float32) *World {
	if cellSize <= 0 {
		cellSize = DefaultCellSize
	}
	return &World{
		nextID:        1,
		colliders:     make(map[ColliderID]*Collider),
		objectsOnGrid: make(map[voxel.Int3]map[ColliderID]struct{}),
		cellSize:      cellSize,
	}
}

// Add registers a collider and returns its id. Ids are never reused.
func (w *World) Add(name string, layer Layer, shape Shape) ColliderID {
	w.mu.Lock()
	defer w.mu.Unlock()
	id := w.nextID
	w.nextID++
	c := &Collider{ID: id, Name: name, Layer: layer, Shape: shape}
	w.colliders[id] = c
	w.addToGrid(c)
	util.LogPhysicsDebug("collider added", zap.String("name", name), zap.Uint32("id", uint32(id)), zap.String("shape", shape.ToString()))
	return id
}

// Remove drops a collider. Unknown ids are ignored.
func (w *World) Remove(id ColliderID) {
	w.mu.Lock()
	defer w.mu.Unlock()
	c, ok := w.colliders[id]
	if !ok {
		return
	}
	w.removeFromGrid(c)
	delete(w.colliders, id)
}

// Move replaces the shape of an existing collider.
func (w *World) Move(id ColliderID, shape Shape) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	c, ok := w.colliders[id]
	if !ok {
		return false
	}
	w.removeFromGrid(c)
	c.Shape = shape
	w.addToGrid(c)
	return true
}

func (w *World) Get(id ColliderID) (Collider, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	c, ok := w.colliders[id]
	if !ok {
		return Collider{}, false
	}
	return *c, true
}

func (w *World) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.colliders)
}

func (w *World) Raycast(origin, direction mgl32.Vec3, maxDistance float32, mask Layer) (Hit, bool) {
	if direction.Len() == 0 || maxDistance <= 0 {
		return Hit{}, false
	}
	end := origin.Add(direction.Normalize().Mul(maxDistance))

	w.mu.RLock()
	defer w.mu.RUnlock()
	var nearest Hit
	found := false
	nearestFraction := float32(2)
	for _, c := range w.candidates(util.NewAABBFromPoints(origin, end)) {
		if !c.Layer.In(mask) {
			continue
		}
		hit, fraction := c.Shape.IntersectsSegment(origin, end)
		if !hit {
			continue
		}
		// ties go to the lower id so results do not depend on map order
		if fraction < nearestFraction || (fraction == nearestFraction && c.ID < nearest.Collider) {
			nearestFraction = fraction
			nearest = Hit{
				Collider: c.ID,
				Name:     c.Name,
				Layer:    c.Layer,
				Point:    origin.Add(end.Sub(origin).Mul(fraction)),
				Distance: fraction * maxDistance,
			}
			found = true
		}
	}
	return nearest, found
}

func (w *World) OverlapBox(center, halfExtents mgl32.Vec3, rotation mgl32.Quat, mask Layer) []Hit {
	box := util.NewOBB(center, halfExtents, rotation)

	w.mu.RLock()
	defer w.mu.RUnlock()
	var hits []Hit
	for _, c := range w.candidates(box.Bounds()) {
		if !c.Layer.In(mask) {
			continue
		}
		if !c.Shape.OverlapsBox(box) {
			continue
		}
		hits = append(hits, Hit{
			Collider: c.ID,
			Name:     c.Name,
			Layer:    c.Layer,
			Point:    center,
		})
	}
	return hits
}

// candidates returns the colliders registered in any cell touched by bounds, ordered by id.
func (w *World) candidates(bounds util.AABB) []*Collider {
	seen := make(map[ColliderID]struct{})
	var result []*Collider
	w.forEachCell(bounds, func(cell voxel.Int3) {
		for id := range w.objectsOnGrid[cell] {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			result = append(result, w.colliders[id])
		}
	})
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

func (w *World) addToGrid(c *Collider) {
	w.forEachCell(c.Shape.Bounds(), func(cell voxel.Int3) {
		if w.objectsOnGrid[cell] == nil {
			w.objectsOnGrid[cell] = make(map[ColliderID]struct{})
		}
		w.objectsOnGrid[cell][c.ID] = struct{}{}
	})
}

func (w *World) removeFromGrid(c *Collider) {
	w.forEachCell(c.Shape.Bounds(), func(cell voxel.Int3) {
		delete(w.objectsOnGrid[cell], c.ID)
		if len(w.objectsOnGrid[cell]) == 0 {
			delete(w.objectsOnGrid, cell)
		}
	})
}

func (w *World) forEachCell(bounds util.AABB, callback func(cell voxel.Int3)) {
	// widen slightly so shapes lying exactly on a cell border land in both cells
	bounds = bounds.Expand(0.001)
	minCell := voxel.ToGridInt3(bounds.Min(), w.cellSize)
	maxCell := voxel.ToGridInt3(bounds.Max(), w.cellSize)
	for x := minCell.X; x <= maxCell.X; x++ {
		for y := minCell.Y; y <= maxCell.Y; y++ {
			for z := minCell.Z; z <= maxCell.Z; z++ {
				callback(voxel.Int3{X: x, Y: y, Z: z})
			}
		}
	}
}
