// Package paper models the foldable sheet: its squares, the joints between them, the
// obstacles riding on them and the player standing on them.
package paper

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/memmaker/paperfold/engine/physics"
	"github.com/memmaker/paperfold/engine/util"
	"github.com/memmaker/paperfold/engine/voxel"
)

const (
	DefaultLength    = 2
	DefaultThickness = 0.001
)

type FaceSide uint8

const (
	FaceTop FaceSide = iota
	FaceBottom
)

func (s FaceSide) String() string {
	if s == FaceBottom {
		return "bottom"
	}
	return "top"
}

// Face is one side of a square. Only active faces take part in clip checks.
type Face struct {
	Square    *PaperSquare
	Side      FaceSide
	Transform util.Transform
	Active    bool
}

func (f Face) ToString() string {
	return fmt.Sprintf("%s/%s", f.Square.Name, f.Side)
}

// PaperSquare is one tile of the sheet. It lies in its local XZ plane and its up
// axis is the normal of the top face.
type PaperSquare struct {
	Name      string
	transform util.Transform
	length    float32
	thickness float32
	stack     int
	order     int

	topActive      bool
	bottomActive   bool
	playerOccupied bool
	collider       physics.ColliderID
}

func NewPaperSquare(name string, transform util.Transform, length, thickness float32) *PaperSquare {
	if length <= 0 {
		length = DefaultLength
	}
	if thickness <= 0 {
		thickness = DefaultThickness
	}
	return &PaperSquare{
		Name:         name,
		transform:    transform,
		length:       length,
		thickness:    thickness,
		topActive:    true,
		bottomActive: true,
	}
}

func (p *PaperSquare) Transform() util.Transform {
	return p.transform
}

func (p *PaperSquare) Position() mgl32.Vec3 {
	return p.transform.GetPosition()
}

// Cell is the lattice point the square snaps to.
func (p *PaperSquare) Cell() voxel.Int3 {
	return voxel.RoundToInt3(p.transform.GetPosition())
}

func (p *PaperSquare) Length() float32 {
	return p.length
}

func (p *PaperSquare) Thickness() float32 {
	return p.thickness
}

// Stack orders squares sharing a cell, lowest first along the normal of the lowest one.
func (p *PaperSquare) Stack() int {
	return p.stack
}

func (p *PaperSquare) SetStack(stack int) {
	p.stack = stack
}

func (p *PaperSquare) Collider() physics.ColliderID {
	return p.collider
}

func (p *PaperSquare) PlayerOccupied() bool {
	return p.playerOccupied
}

func (p *PaperSquare) SetPlayerOccupied(value bool) {
	p.playerOccupied = value
}

// Face returns the probe for one side. Faces sit half the thickness away from the
// square; the bottom face is flipped so its up axis points away from the square.
func (p *PaperSquare) Face(side FaceSide) Face {
	offset := p.transform.GetUp().Mul(p.thickness / 2)
	if side == FaceBottom {
		flipped := p.transform.GetRotation().Mul(util.AxisAngle(mgl32.Vec3{1, 0, 0}, 180))
		return Face{
			Square:    p,
			Side:      FaceBottom,
			Transform: util.NewTransform(p.Position().Sub(offset), flipped),
			Active:    p.bottomActive,
		}
	}
	return Face{
		Square:    p,
		Side:      FaceTop,
		Transform: util.NewTransform(p.Position().Add(offset), p.transform.GetRotation()),
		Active:    p.topActive,
	}
}

func (p *PaperSquare) Faces() [2]Face {
	return [2]Face{p.Face(FaceTop), p.Face(FaceBottom)}
}

// ActiveFaces returns the faces currently exposed, top first.
func (p *PaperSquare) ActiveFaces() []Face {
	var faces []Face
	for _, f := range p.Faces() {
		if f.Active {
			faces = append(faces, f)
		}
	}
	return faces
}

func (p *PaperSquare) SetFaceActive(side FaceSide, active bool) {
	if side == FaceBottom {
		p.bottomActive = active
		return
	}
	p.topActive = active
}

func (p *PaperSquare) shape() physics.Plate {
	return physics.NewPlate(p.transform, p.length, p.thickness)
}

func (p *PaperSquare) ToString() string {
	return fmt.Sprintf("PaperSquare{%s at %v, up %v}", p.Name, p.Position(), p.transform.GetUp())
}

// PaperJoint marks a point on a fold line between two squares.
type PaperJoint struct {
	Name     string
	position mgl32.Vec3
}

func NewPaperJoint(name string, position mgl32.Vec3) *PaperJoint {
	return &PaperJoint{Name: name, position: position}
}

func (j *PaperJoint) Position() mgl32.Vec3 {
	return j.position
}
