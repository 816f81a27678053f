// Package physics answers the geometric questions a fold check asks of the world:
// which collider a ray meets first, and which colliders an oriented box overlaps.
package physics

import (
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
)

type ColliderID uint32

// Layer is a bit set used to filter queries.
type Layer uint32

const (
	LayerPaper Layer = 1 << iota
	LayerObstacle
	LayerPlayer
	LayerTrigger
)

const LayerAll = ^Layer(0)

var layerNames = map[string]Layer{
	"paper":    LayerPaper,
	"obstacle": LayerObstacle,
	"player":   LayerPlayer,
	"trigger":  LayerTrigger,
}

// ParseLayerMask combines layer names ("paper", "obstacle", "player", "trigger") into a mask.
func ParseLayerMask(names []string) (Layer, error) {
	var mask Layer
	for _, name := range names {
		layer, ok := layerNames[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return 0, errors.Errorf("unknown collision layer %q", name)
		}
		mask |= layer
	}
	return mask, nil
}

func (l Layer) In(mask Layer) bool {
	return l&mask != 0
}

// Hit describes one collider touched by a query.
type Hit struct {
	Collider ColliderID
	Name     string
	Layer    Layer
	Point    mgl32.Vec3
	Distance float32
}

// Query is what the fold checker needs from a collision backend.
type Query interface {
	// Raycast returns the nearest collider in mask that the ray meets within maxDistance.
	Raycast(origin, direction mgl32.Vec3, maxDistance float32, mask Layer) (Hit, bool)
	// OverlapBox returns every collider in mask overlapping the oriented box.
	OverlapBox(center, halfExtents mgl32.Vec3, rotation mgl32.Quat, mask Layer) []Hit
}
