package renderer

import (
	"fmt"

	"cod3rgl/internal/entity"
	"cod3rgl/internal/gpu"
	"cod3rgl/internal/graphics"
	"cod3rgl/internal/mesh"
	"cod3rgl/internal/profiling"

	"github.com/go-gl/mathgl/mgl32"
)

// Renderer batches geometry into the registry's targets during a frame and
// draws every target once per Render
type Renderer struct {
	dev      gpu.Device
	registry *graphics.TargetRegistry

	scratch []float32
	last    profiling.FrameStats
}

// NewRenderer creates a renderer whose registry already holds one elements
// target, selected for appends
func NewRenderer(dev gpu.Device, opts graphics.RegistryOptions) (*Renderer, error) {
	r := &Renderer{
		dev:      dev,
		registry: graphics.NewTargetRegistry(dev, opts),
	}
	if _, err := r.registry.CreateTarget(graphics.KindElements); err != nil {
		return nil, err
	}
	return r, nil
}

// Registry exposes the targets for creation and selection
func (r *Renderer) Registry() *graphics.TargetRegistry { return r.registry }

// BeginFrame clears the framebuffer and enables depth testing
func (r *Renderer) BeginFrame(clearColor mgl32.Vec4, width, height int) {
	r.dev.Viewport(int32(width), int32(height))
	r.dev.Clear(clearColor)
	r.dev.EnableDepthTest()
}

// AppendEntity transforms every mesh of e by its transform and appends it
// to the selected target. Meshes appended before a failing one stay appended.
func (r *Renderer) AppendEntity(e *entity.Entity) error {
	t, err := r.registry.CurrentTarget()
	if err != nil {
		return err
	}
	for i, m := range e.Meshes {
		r.scratch = e.TransformPositions(r.scratch, m)
		if err := t.AppendIndexed(r.scratch, m.Colors(), m.Indices(), m.TriangleCount()); err != nil {
			return fmt.Errorf("append mesh %d: %w", i, err)
		}
	}
	return nil
}

// AppendMesh appends m untransformed to the selected target
func (r *Renderer) AppendMesh(m *mesh.Mesh) error {
	t, err := r.registry.CurrentTarget()
	if err != nil {
		return err
	}
	return t.AppendMesh(m)
}

// Render draws every target in registry order, one draw call each, then
// empties it. Targets with nothing appended are skipped. With an invalid
// shader nothing is drawn but targets are still emptied.
func (r *Renderer) Render(ctx RenderContext) {
	defer profiling.Track("renderer.Render")()

	stats := profiling.FrameStats{Targets: r.registry.Len()}
	shader := ctx.Shader
	if !shader.Valid() {
		r.registry.Reset()
		r.last = stats
		return
	}

	shader.Use()
	for _, t := range r.registry.Targets() {
		if t.Empty() {
			t.Reset()
			continue
		}
		r.dev.BindVertexArray(t.VAO())
		r.drawTarget(shader, t, ctx, &stats)
		t.Reset()
	}
	r.dev.BindVertexArray(0)
	r.last = stats
}

func (r *Renderer) drawTarget(shader *graphics.Shader, t *graphics.DrawTarget, ctx RenderContext, stats *profiling.FrameStats) {
	t.Positions.Upload()
	if loc := shader.Location(graphics.LocVertexPosition); loc != -1 {
		r.dev.VertexAttrib(uint32(loc), mesh.PositionComponents)
	}
	t.Colors.Upload()
	if loc := shader.Location(graphics.LocVertexColor); loc != -1 {
		r.dev.VertexAttrib(uint32(loc), mesh.ColorComponents)
	}
	if t.Kind == graphics.KindElements {
		t.Indices.Upload()
	}

	shader.SetMatrix4(graphics.LocMatrixProjection, ctx.Projection)
	shader.SetMatrix4(graphics.LocMatrixView, ctx.View)
	shader.SetMatrix4(graphics.LocMatrixModel, ctx.Model)

	r.dev.EnableBlend()
	if t.Kind == graphics.KindArrays {
		r.dev.DrawArrays(int32(t.VertexCount()))
		stats.AddDraw(t.VertexCount(), 0)
	} else {
		r.dev.DrawElements(int32(t.IndexCount()))
		stats.AddDraw(t.VertexCount(), t.IndexCount())
	}
	r.dev.DisableBlend()
}

// LastFrame reports what the previous Render submitted
func (r *Renderer) LastFrame() profiling.FrameStats { return r.last }

// Dispose releases every target
func (r *Renderer) Dispose() {
	r.registry.Dispose()
}
