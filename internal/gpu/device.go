package gpu

import "github.com/go-gl/mathgl/mgl32"

// BufferTarget selects the binding point a buffer is uploaded to
type BufferTarget int

const (
	ArrayBuffer BufferTarget = iota
	ElementArrayBuffer
)

func (t BufferTarget) String() string {
	switch t {
	case ArrayBuffer:
		return "array"
	case ElementArrayBuffer:
		return "element"
	default:
		return "unknown"
	}
}

// ShaderStage identifies a programmable pipeline stage
type ShaderStage int

const (
	VertexStage ShaderStage = iota
	FragmentStage
)

func (s ShaderStage) String() string {
	switch s {
	case VertexStage:
		return "vertex"
	case FragmentStage:
		return "fragment"
	default:
		return "unknown"
	}
}

// AttribBinding pins a named vertex attribute to a location before linking
type AttribBinding struct {
	Name     string
	Location uint32
}

// Device is the set of GPU calls the renderer issues.
// All methods must be called from the thread owning the GL context.
type Device interface {
	CreateVertexArray() uint32
	DeleteVertexArray(id uint32)
	BindVertexArray(id uint32)

	CreateBuffer() uint32
	DeleteBuffer(id uint32)
	// BufferFloats replaces the contents of buffer id with data (dynamic draw usage)
	BufferFloats(target BufferTarget, id uint32, data []float32)
	// BufferUints replaces the contents of buffer id with data (dynamic draw usage)
	BufferUints(target BufferTarget, id uint32, data []uint32)

	// CompileShader returns the shader id and, on failure, the info log
	CompileShader(stage ShaderStage, source string) (uint32, string, bool)
	// LinkProgram returns the program id and, on failure, the info log
	LinkProgram(shaders []uint32, bindings []AttribBinding) (uint32, string, bool)
	DeleteShader(id uint32)
	DeleteProgram(id uint32)
	UseProgram(id uint32)
	AttribLocation(program uint32, name string) int32
	UniformLocation(program uint32, name string) int32
	UniformMatrix4(location int32, m mgl32.Mat4)

	// VertexAttrib enables location and points it at the bound array buffer
	// with size tightly packed float components per vertex
	VertexAttrib(location uint32, size int32)

	EnableBlend()
	DisableBlend()
	DrawElements(count int32)
	DrawArrays(count int32)

	// Clear clears the color and depth buffers
	Clear(color mgl32.Vec4)
	EnableDepthTest()
	Viewport(width, height int32)
}
