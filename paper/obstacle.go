package paper

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/memmaker/paperfold/engine/physics"
	"github.com/memmaker/paperfold/engine/util"
)

// Exemption lists the checks an obstacle is allowed to pass.
type Exemption uint8

const (
	// ExemptPlayer lets the obstacle sweep through colliders no square owns, like the player.
	ExemptPlayer Exemption = 1 << iota
)

func (e Exemption) Has(flag Exemption) bool {
	return e&flag == flag
}

func (e Exemption) String() string {
	if e.Has(ExemptPlayer) {
		return "player"
	}
	return "none"
}

// Obstacle is a box collider in the scene. Attached to a square, directly or through a
// parent obstacle, it moves with that square when it is folded.
type Obstacle struct {
	Name       string
	Transform  util.Transform
	Center     mgl32.Vec3 // box centre in the obstacle's local space
	Size       mgl32.Vec3 // full box size
	BlocksFold bool
	Exemptions Exemption
	Layer      physics.Layer

	square   *PaperSquare
	parent   *Obstacle
	collider physics.ColliderID
}

func NewObstacle(name string, transform util.Transform, center, size mgl32.Vec3) *Obstacle {
	return &Obstacle{
		Name:       name,
		Transform:  transform,
		Center:     center,
		Size:       size,
		BlocksFold: true,
		Layer:      physics.LayerObstacle,
	}
}

// AttachToSquare makes the obstacle ride on square.
func (o *Obstacle) AttachToSquare(square *PaperSquare) *Obstacle {
	o.square = square
	o.parent = nil
	return o
}

// AttachToObstacle makes the obstacle ride on whatever square parent rides on.
func (o *Obstacle) AttachToObstacle(parent *Obstacle) *Obstacle {
	o.parent = parent
	o.square = nil
	return o
}

func (o *Obstacle) Exempt(flags Exemption) *Obstacle {
	o.Exemptions |= flags
	return o
}

func (o *Obstacle) Parent() *Obstacle {
	return o.parent
}

// Square returns the square the obstacle is attached to, or nil for scenery.
func (o *Obstacle) Square() *PaperSquare {
	if o.square != nil {
		return o.square
	}
	if o.parent != nil {
		return o.parent.Square()
	}
	return nil
}

func (o *Obstacle) Collider() physics.ColliderID {
	return o.collider
}

// BoxCenter is the world position of the collider box.
func (o *Obstacle) BoxCenter() mgl32.Vec3 {
	return o.Transform.TransformPoint(o.Center)
}

func (o *Obstacle) HalfExtents() mgl32.Vec3 {
	return o.Size.Mul(0.5)
}

// BoxTransform places the collider box in world space.
func (o *Obstacle) BoxTransform() util.Transform {
	return util.NewTransform(o.BoxCenter(), o.Transform.GetRotation())
}

func (o *Obstacle) shape() physics.Box {
	return physics.NewBox(o.BoxCenter(), o.HalfExtents(), o.Transform.GetRotation())
}

func (o *Obstacle) ToString() string {
	return fmt.Sprintf("Obstacle{%s at %v, size %v, blocks %t, exempt %s}", o.Name, o.BoxCenter(), o.Size, o.BlocksFold, o.Exemptions)
}

// Player is the avatar. No square owns its collider.
type Player struct {
	Name      string
	Transform util.Transform
	Size      mgl32.Vec3

	standingOn *PaperSquare
	collider   physics.ColliderID
}

func NewPlayer(name string, transform util.Transform, size mgl32.Vec3) *Player {
	return &Player{Name: name, Transform: transform, Size: size}
}

func (p *Player) StandOn(square *PaperSquare) *Player {
	p.standingOn = square
	return p
}

func (p *Player) StandingOn() *PaperSquare {
	return p.standingOn
}

func (p *Player) Collider() physics.ColliderID {
	return p.collider
}

func (p *Player) shape() physics.Box {
	return physics.NewBox(p.Transform.GetPosition(), p.Size.Mul(0.5), p.Transform.GetRotation())
}
