package entity

import (
	"cod3rgl/internal/mesh"

	"github.com/go-gl/mathgl/mgl32"
)

// Entity places one or more meshes in the world through a local transform.
// Meshes are never modified; the transform is applied when the entity is
// appended to a draw target.
type Entity struct {
	Transform mgl32.Mat4
	Meshes    []*mesh.Mesh
}

// New creates an entity at the origin owning meshes
func New(meshes ...*mesh.Mesh) *Entity {
	return &Entity{
		Transform: mgl32.Ident4(),
		Meshes:    meshes,
	}
}

// NewRect creates a unit rect entity translated to position. A nil color
// means white.
func NewRect(color *mgl32.Vec4, position mgl32.Vec3) *Entity {
	c := mesh.White
	if color != nil {
		c = *color
	}
	e := New(mesh.Rect(c))
	e.Translate(position)
	return e
}

// Translate right-multiplies the transform by a translation
func (e *Entity) Translate(v mgl32.Vec3) {
	e.Transform = e.Transform.Mul4(mgl32.Translate3D(v[0], v[1], v[2]))
}

// RotateZ right-multiplies the transform by a rotation of angle degrees about
// the Z axis. Calls accumulate, so calling it every frame spins the entity.
func (e *Entity) RotateZ(angle float32) {
	e.Transform = e.Transform.Mul4(mgl32.HomogRotate3DZ(mgl32.DegToRad(angle)))
}

// Scale right-multiplies the transform by a uniform scale
func (e *Entity) Scale(s float32) {
	e.Transform = e.Transform.Mul4(mgl32.Scale3D(s, s, s))
}

// Position returns the translation part of the transform
func (e *Entity) Position() mgl32.Vec3 {
	return e.Transform.Col(3).Vec3()
}

// TransformPositions appends the positions of m, transformed as points
// (w = 1) by the entity's transform, to dst[:0] and returns the result.
func (e *Entity) TransformPositions(dst []float32, m *mesh.Mesh) []float32 {
	dst = dst[:0]
	src := m.Vertices()
	for i := 0; i+2 < len(src); i += mesh.PositionComponents {
		p := e.Transform.Mul4x1(mgl32.Vec4{src[i], src[i+1], src[i+2], 1})
		dst = append(dst, p[0], p[1], p[2])
	}
	return dst
}
