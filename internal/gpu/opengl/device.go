package opengl

import (
	"fmt"
	"strings"

	"cod3rgl/internal/gpu"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// Device is the OpenGL 4.1 core gpu.Device. The context must be current on
// the calling thread for every method.
type Device struct{}

var _ gpu.Device = (*Device)(nil)

// New initializes the OpenGL bindings for the current context
func New() (*Device, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("could not initialize OpenGL: %w", err)
	}
	return &Device{}, nil
}

// Version reports the driver's GL version string
func (*Device) Version() string {
	return gl.GoStr(gl.GetString(gl.VERSION))
}

func glTarget(t gpu.BufferTarget) uint32 {
	if t == gpu.ElementArrayBuffer {
		return gl.ELEMENT_ARRAY_BUFFER
	}
	return gl.ARRAY_BUFFER
}

func glStage(s gpu.ShaderStage) uint32 {
	if s == gpu.FragmentStage {
		return gl.FRAGMENT_SHADER
	}
	return gl.VERTEX_SHADER
}

func (*Device) CreateVertexArray() uint32 {
	var id uint32
	gl.GenVertexArrays(1, &id)
	return id
}

func (*Device) DeleteVertexArray(id uint32) {
	gl.DeleteVertexArrays(1, &id)
}

func (*Device) BindVertexArray(id uint32) {
	gl.BindVertexArray(id)
}

func (*Device) CreateBuffer() uint32 {
	var id uint32
	gl.GenBuffers(1, &id)
	return id
}

func (*Device) DeleteBuffer(id uint32) {
	gl.DeleteBuffers(1, &id)
}

func (*Device) BufferFloats(target gpu.BufferTarget, id uint32, data []float32) {
	t := glTarget(target)
	gl.BindBuffer(t, id)
	if len(data) == 0 {
		gl.BufferData(t, 0, nil, gl.DYNAMIC_DRAW)
		return
	}
	gl.BufferData(t, len(data)*4, gl.Ptr(data), gl.DYNAMIC_DRAW)
}

func (*Device) BufferUints(target gpu.BufferTarget, id uint32, data []uint32) {
	t := glTarget(target)
	gl.BindBuffer(t, id)
	if len(data) == 0 {
		gl.BufferData(t, 0, nil, gl.DYNAMIC_DRAW)
		return
	}
	gl.BufferData(t, len(data)*4, gl.Ptr(data), gl.DYNAMIC_DRAW)
}

func (*Device) CompileShader(stage gpu.ShaderStage, source string) (uint32, string, bool) {
	shader := gl.CreateShader(glStage(stage))
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		gl.DeleteShader(shader)

		return 0, strings.TrimRight(log, "\x00"), false
	}
	return shader, "", true
}

func (*Device) LinkProgram(shaders []uint32, bindings []gpu.AttribBinding) (uint32, string, bool) {
	program := gl.CreateProgram()
	for _, s := range shaders {
		gl.AttachShader(program, s)
	}
	for _, b := range bindings {
		gl.BindAttribLocation(program, b.Location, gl.Str(b.Name+"\x00"))
	}
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		gl.DeleteProgram(program)

		return 0, strings.TrimRight(log, "\x00"), false
	}
	return program, "", true
}

func (*Device) DeleteShader(id uint32) {
	gl.DeleteShader(id)
}

func (*Device) DeleteProgram(id uint32) {
	gl.DeleteProgram(id)
}

func (*Device) UseProgram(id uint32) {
	gl.UseProgram(id)
}

func (*Device) AttribLocation(program uint32, name string) int32 {
	return gl.GetAttribLocation(program, gl.Str(name+"\x00"))
}

func (*Device) UniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func (*Device) UniformMatrix4(location int32, m mgl32.Mat4) {
	gl.UniformMatrix4fv(location, 1, false, &m[0])
}

func (*Device) VertexAttrib(location uint32, size int32) {
	gl.VertexAttribPointerWithOffset(location, size, gl.FLOAT, false, size*4, 0)
	gl.EnableVertexAttribArray(location)
}

func (*Device) EnableBlend() {
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
}

func (*Device) DisableBlend() {
	gl.Disable(gl.BLEND)
}

func (*Device) DrawElements(count int32) {
	gl.DrawElements(gl.TRIANGLES, count, gl.UNSIGNED_INT, nil)
}

func (*Device) DrawArrays(count int32) {
	gl.DrawArrays(gl.TRIANGLES, 0, count)
}

func (*Device) Clear(color mgl32.Vec4) {
	gl.ClearColor(color[0], color[1], color[2], color[3])
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

func (*Device) EnableDepthTest() {
	gl.Enable(gl.DEPTH_TEST)
}

func (*Device) Viewport(width, height int32) {
	gl.Viewport(0, 0, width, height)
}
