package renderer

import (
	"cod3rgl/internal/graphics"

	"github.com/go-gl/mathgl/mgl32"
)

// RenderContext carries everything a render pass reads: the program to draw
// with and the three matrices bound to it. It replaces process-wide render
// state; nothing outside it influences a pass.
type RenderContext struct {
	Shader     *graphics.Shader
	Projection mgl32.Mat4
	View       mgl32.Mat4
	Model      mgl32.Mat4
}

// NewRenderContext returns a context with identity matrices
func NewRenderContext(shader *graphics.Shader) RenderContext {
	return RenderContext{
		Shader:     shader,
		Projection: mgl32.Ident4(),
		View:       mgl32.Ident4(),
		Model:      mgl32.Ident4(),
	}
}
