package entity

import (
	"testing"

	"cod3rgl/internal/mesh"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertVec3(t *testing.T, want, got mgl32.Vec3) {
	t.Helper()
	assert.Truef(t, want.ApproxEqualThreshold(got, 1e-5), "want %v, got %v", want, got)
}

func TestNewRectDefaultsToWhite(t *testing.T) {
	e := NewRect(nil, mgl32.Vec3{1, 2, 3})
	require.Len(t, e.Meshes, 1)
	assert.Equal(t, mesh.White[:], e.Meshes[0].Colors()[:4])
	assertVec3(t, mgl32.Vec3{1, 2, 3}, e.Position())
}

func TestTransformPositionsDoesNotMutateMesh(t *testing.T) {
	blue := mgl32.Vec4{0.219608, 0.619608, 0.909804, 1}
	e := NewRect(&blue, mgl32.Vec3{10, 0, 0})
	m := e.Meshes[0]
	before := append([]float32(nil), m.Vertices()...)

	out := e.TransformPositions(nil, m)

	require.Len(t, out, 12)
	assertVec3(t, mgl32.Vec3{10.5, 0.5, 0}, mgl32.Vec3{out[0], out[1], out[2]})
	assertVec3(t, mgl32.Vec3{9.5, 0.5, 0}, mgl32.Vec3{out[9], out[10], out[11]})
	assert.Equal(t, before, m.Vertices())
}

func TestTransformPositionsReusesBuffer(t *testing.T) {
	e := New(mesh.Rect(mesh.White))
	scratch := make([]float32, 0, 64)
	out := e.TransformPositions(scratch, e.Meshes[0])
	assert.Equal(t, &scratch[:1][0], &out[0])
}

func TestRotateZAccumulates(t *testing.T) {
	e := New(mesh.Rect(mesh.White))
	e.RotateZ(45)
	e.RotateZ(45)

	out := e.TransformPositions(nil, e.Meshes[0])
	// top right corner (0.5, 0.5) rotated by 90 degrees lands on (-0.5, 0.5)
	assertVec3(t, mgl32.Vec3{-0.5, 0.5, 0}, mgl32.Vec3{out[0], out[1], out[2]})
}

func TestRotateAfterTranslateSpinsInPlace(t *testing.T) {
	e := NewRect(nil, mgl32.Vec3{5, 5, 0})
	e.RotateZ(180)

	assertVec3(t, mgl32.Vec3{5, 5, 0}, e.Position())
	out := e.TransformPositions(nil, e.Meshes[0])
	assertVec3(t, mgl32.Vec3{4.5, 4.5, 0}, mgl32.Vec3{out[0], out[1], out[2]})
}

func TestScale(t *testing.T) {
	e := New(mesh.Rect(mesh.White))
	e.Scale(4)
	out := e.TransformPositions(nil, e.Meshes[0])
	assertVec3(t, mgl32.Vec3{2, 2, 0}, mgl32.Vec3{out[0], out[1], out[2]})
}
