package renderer

import (
	"testing"

	"cod3rgl/internal/entity"
	"cod3rgl/internal/gpu/gputest"
	"cod3rgl/internal/graphics"
	"cod3rgl/internal/mesh"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	vertexSource   = "#version 410 core\nvoid main() {}\n"
	fragmentSource = "#version 410 core\nvoid main() {}\n"
)

func setup(t *testing.T) (*gputest.Recorder, *Renderer, RenderContext) {
	t.Helper()
	dev := gputest.NewRecorder()
	r, err := NewRenderer(dev, graphics.RegistryOptions{})
	require.NoError(t, err)
	t.Cleanup(r.Dispose)

	shader, err := graphics.LoadShaderCode(dev, vertexSource, fragmentSource)
	require.NoError(t, err)
	return dev, r, NewRenderContext(shader)
}

func TestRenderTwoRectsInOneDraw(t *testing.T) {
	dev, r, ctx := setup(t)
	ctx.Projection = mgl32.Perspective(mgl32.DegToRad(45), 16.0/9.0, 0.1, 100)
	ctx.View = mgl32.Translate3D(0, 0, -10)

	left := entity.NewRect(nil, mgl32.Vec3{-1, 0, 0})
	right := entity.NewRect(&mgl32.Vec4{1, 0, 0, 1}, mgl32.Vec3{1, 0, 0})
	require.NoError(t, r.AppendEntity(left))
	require.NoError(t, r.AppendEntity(right))

	target, err := r.Registry().CurrentTarget()
	require.NoError(t, err)
	assert.Equal(t, []uint32{0, 1, 3, 1, 2, 3, 4, 5, 7, 5, 6, 7}, target.Indices.Data())
	// positions are stored in world space
	assert.Equal(t, []float32{-0.5, 0.5, 0}, target.Positions.Data()[0:3])
	assert.Equal(t, []float32{1.5, 0.5, 0}, target.Positions.Data()[12:15])

	posID, colorID, idxID := target.Positions.ID(), target.Colors.ID(), target.Indices.ID()
	r.Render(ctx)

	require.Len(t, dev.Draws, 1)
	draw := dev.Draws[0]
	assert.True(t, draw.Indexed)
	assert.Equal(t, int32(12), draw.Count)
	assert.True(t, draw.Blend)
	assert.Equal(t, target.VAO(), draw.VAO)
	assert.Equal(t, ctx.Shader.ID, draw.Program)

	assert.Len(t, dev.Floats[posID], 24)
	assert.Len(t, dev.Floats[colorID], 32)
	assert.Equal(t, []float32{1, 0, 0, 1}, dev.Floats[colorID][16:20])
	assert.Len(t, dev.Uints[idxID], 12)

	assert.Equal(t, int32(3), dev.Attribs[0])
	assert.Equal(t, int32(4), dev.Attribs[1])
	assert.Equal(t, ctx.Projection, dev.Uniforms[0])
	assert.Equal(t, ctx.View, dev.Uniforms[1])
	assert.Equal(t, mgl32.Ident4(), dev.Uniforms[2])

	// blending is switched off again after the draw
	assert.Equal(t, "DisableBlend", dev.Calls[len(dev.Calls)-2])
	assert.Equal(t, "BindVertexArray 0", dev.Calls[len(dev.Calls)-1])

	assert.True(t, target.Empty())
	assert.Zero(t, target.Rebase())
	assert.Equal(t, "draws=1 targets=1 vertices=8 indices=12", r.LastFrame().String())
}

func TestRenderResetsBetweenFrames(t *testing.T) {
	dev, r, ctx := setup(t)
	rect := entity.NewRect(nil, mgl32.Vec3{})

	for frame := 0; frame < 3; frame++ {
		dev.Reset()
		require.NoError(t, r.AppendEntity(rect))
		r.Render(ctx)
		require.Len(t, dev.Draws, 1)
		assert.Equal(t, int32(6), dev.Draws[0].Count)
	}
}

func TestRenderSkipsEmptyTargets(t *testing.T) {
	dev, r, ctx := setup(t)
	_, err := r.Registry().CreateTarget(graphics.KindElements)
	require.NoError(t, err)

	r.Render(ctx)
	assert.Empty(t, dev.Draws)
	assert.Zero(t, r.LastFrame().DrawCalls)
	assert.Equal(t, 2, r.LastFrame().Targets)
}

func TestRenderWithInvalidShaderDrawsNothing(t *testing.T) {
	dev := gputest.NewRecorder()
	dev.FailLink = true
	r, err := NewRenderer(dev, graphics.RegistryOptions{})
	require.NoError(t, err)

	shader, err := graphics.LoadShaderCode(dev, vertexSource, fragmentSource)
	require.Error(t, err)

	require.NoError(t, r.AppendMesh(mesh.Rect(mesh.White)))
	r.Render(NewRenderContext(shader))

	assert.Empty(t, dev.Draws)
	assert.NotContains(t, dev.Calls, "EnableBlend")
	target, _ := r.Registry().CurrentTarget()
	assert.True(t, target.Empty())

	// a nil shader behaves the same
	require.NoError(t, r.AppendMesh(mesh.Rect(mesh.White)))
	r.Render(NewRenderContext(nil))
	assert.Empty(t, dev.Draws)
}

func TestRenderArraysTarget(t *testing.T) {
	dev, r, ctx := setup(t)
	id, err := r.Registry().CreateTarget(graphics.KindArrays)
	require.NoError(t, err)
	require.NoError(t, r.Registry().Select(id))

	require.NoError(t, r.AppendMesh(mesh.Rect(mesh.White)))
	r.Render(ctx)

	require.Len(t, dev.Draws, 1)
	assert.False(t, dev.Draws[0].Indexed)
	assert.Equal(t, int32(6), dev.Draws[0].Count)
}

func TestRenderDrawsTargetsInCreationOrder(t *testing.T) {
	dev, r, ctx := setup(t)
	second, err := r.Registry().CreateTarget(graphics.KindElements)
	require.NoError(t, err)

	// fill the second target first
	require.NoError(t, r.Registry().Select(second))
	require.NoError(t, r.AppendMesh(mesh.Rect(mesh.White)))
	require.NoError(t, r.Registry().Select(0))
	require.NoError(t, r.AppendEntity(entity.New(mesh.Rect(mesh.White), mesh.Rect(mesh.White))))

	r.Render(ctx)

	require.Len(t, dev.Draws, 2)
	first, _ := r.Registry().Target(0)
	other, _ := r.Registry().Target(second)
	assert.Equal(t, first.VAO(), dev.Draws[0].VAO)
	assert.Equal(t, int32(12), dev.Draws[0].Count)
	assert.Equal(t, other.VAO(), dev.Draws[1].VAO)
	assert.Equal(t, int32(6), dev.Draws[1].Count)
	assert.Equal(t, "draws=2 targets=2 vertices=12 indices=18", r.LastFrame().String())
}

func TestAppendWithoutTarget(t *testing.T) {
	dev := gputest.NewRecorder()
	r, err := NewRenderer(dev, graphics.RegistryOptions{})
	require.NoError(t, err)
	r.Registry().Dispose()

	assert.ErrorIs(t, r.AppendMesh(mesh.Rect(mesh.White)), graphics.ErrUnknownTarget)
	assert.ErrorIs(t, r.AppendEntity(entity.NewRect(nil, mgl32.Vec3{})), graphics.ErrUnknownTarget)
}

func TestAppendEntityOverflow(t *testing.T) {
	dev := gputest.NewRecorder()
	r, err := NewRenderer(dev, graphics.RegistryOptions{BufferCapacity: 16})
	require.NoError(t, err)

	e := entity.New(mesh.Rect(mesh.White), mesh.Rect(mesh.White))
	err = r.AppendEntity(e)
	require.ErrorIs(t, err, graphics.ErrCapacityExceeded)

	// the first mesh stays appended
	target, _ := r.Registry().CurrentTarget()
	assert.Equal(t, 4, target.VertexCount())
}

func TestBeginFrame(t *testing.T) {
	dev, r, _ := setup(t)
	r.BeginFrame(mgl32.Vec4{0, 0, 0, 1}, 1280, 720)
	assert.Contains(t, dev.Calls, "Viewport 1280 720")
	assert.True(t, dev.DepthTest())
}
