package mesh

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRect(t *testing.T) {
	purple := mgl32.Vec4{0.721569, 0.556863, 0.909804, 1}
	m := Rect(purple)

	assert.Equal(t, 4, m.VertexCount())
	assert.Equal(t, 2, m.TriangleCount())
	assert.Equal(t, []uint32{0, 1, 3, 1, 2, 3}, m.Indices())
	require.Len(t, m.Colors(), 16)
	for i := 0; i < 4; i++ {
		assert.Equal(t, purple[:], m.Colors()[i*4:i*4+4])
	}
	assert.Equal(t, mgl32.Vec3{-0.5, 0.5, 0}, m.Position(3))
}

func TestNewCopiesInput(t *testing.T) {
	verts := []float32{0, 0, 0, 1, 0, 0, 0, 1, 0}
	m, err := New(verts, SolidColors(White, 3), []uint32{0, 1, 2})
	require.NoError(t, err)

	verts[0] = 42
	assert.Equal(t, float32(0), m.Vertices()[0])
}

func TestValidate(t *testing.T) {
	tri := []float32{0, 0, 0, 1, 0, 0, 0, 1, 0}
	colors := SolidColors(White, 3)

	n, err := Validate(tri, colors, []uint32{0, 1, 2})
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	_, err = Validate(tri[:8], colors, []uint32{0, 1, 2})
	assert.ErrorIs(t, err, ErrInvalidGeometry)

	_, err = Validate(tri, colors[:8], []uint32{0, 1, 2})
	assert.ErrorIs(t, err, ErrInvalidGeometry)

	_, err = Validate(tri, colors, []uint32{0, 1})
	assert.ErrorIs(t, err, ErrInvalidGeometry)

	_, err = Validate(tri, colors, []uint32{0, 1, 3})
	assert.ErrorIs(t, err, ErrInvalidGeometry)
}

func TestGridShape(t *testing.T) {
	g := Grid(GridOptions{Cols: 4, Rows: 3, CellSize: 2, Low: White, High: White})

	assert.Equal(t, 5*4, g.VertexCount())
	assert.Equal(t, 4*3*2, g.TriangleCount())
	_, err := Validate(g.Vertices(), g.Colors(), g.Indices())
	require.NoError(t, err)

	// centered on the origin
	assert.Equal(t, mgl32.Vec3{-4, 0, -3}, g.Position(0))
	assert.Equal(t, mgl32.Vec3{4, 0, 3}, g.Position(g.VertexCount()-1))
}

func TestGridColorsFollowHeight(t *testing.T) {
	low := mgl32.Vec4{0, 0, 1, 1}
	high := mgl32.Vec4{1, 0, 0, 1}
	g := Grid(GridOptions{
		Cols: 1, Rows: 1, CellSize: 1,
		Height: func(x, z float32) float32 { return x },
		Low:    low, High: high,
	})

	// x = -0.5 for columns 0, x = 0.5 for column 1
	assert.Equal(t, low[:], g.Colors()[0:4])
	assert.Equal(t, high[:], g.Colors()[4:8])
}

func TestGridEmpty(t *testing.T) {
	g := Grid(GridOptions{})
	assert.Zero(t, g.VertexCount())
	assert.Zero(t, g.TriangleCount())
}

func TestWaves(t *testing.T) {
	h := Waves(2, 1)
	assert.InDelta(t, 0, h(0, 0), 1e-6)
	assert.InDelta(t, 2, h(mgl32.DegToRad(90), 0), 1e-5)
}
