// Package gputest provides an in-memory gpu.Device for tests.
package gputest

import (
	"fmt"

	"cod3rgl/internal/gpu"

	"github.com/go-gl/mathgl/mgl32"
)

// Draw is one recorded draw call
type Draw struct {
	VAO     uint32
	Program uint32
	Indexed bool
	Count   int32
	Blend   bool
}

// Recorder implements gpu.Device without a GL context. It keeps the last
// upload of every buffer, the uniforms and attribute pointers that were set,
// and every draw call.
type Recorder struct {
	// Names resolves attribute and uniform names; missing names resolve to -1
	Names map[string]int32
	// FailStages makes CompileShader fail for the listed stages
	FailStages map[gpu.ShaderStage]bool
	// FailLink makes LinkProgram fail
	FailLink bool

	Calls    []string
	Floats   map[uint32][]float32
	Uints    map[uint32][]uint32
	Uniforms map[int32]mgl32.Mat4
	Attribs  map[uint32]int32
	Draws    []Draw
	Bindings []gpu.AttribBinding

	BoundVAO      uint32
	Program       uint32
	blend         bool
	depth         bool
	nextID        uint32
	liveBuffers   map[uint32]bool
	liveVAOs      map[uint32]bool
	livePrograms  map[uint32]bool
	deletedShader int
}

var _ gpu.Device = (*Recorder)(nil)

// NewRecorder returns a Recorder whose shaders resolve the default
// attribute and uniform names
func NewRecorder() *Recorder {
	return &Recorder{
		Names: map[string]int32{
			"vertexPosition": 0,
			"vertexColor":    1,
			"projection":     0,
			"view":           1,
			"model":          2,
		},
		FailStages:   make(map[gpu.ShaderStage]bool),
		Floats:       make(map[uint32][]float32),
		Uints:        make(map[uint32][]uint32),
		Uniforms:     make(map[int32]mgl32.Mat4),
		Attribs:      make(map[uint32]int32),
		liveBuffers:  make(map[uint32]bool),
		liveVAOs:     make(map[uint32]bool),
		livePrograms: make(map[uint32]bool),
	}
}

func (r *Recorder) id() uint32 {
	r.nextID++
	return r.nextID
}

func (r *Recorder) record(format string, args ...any) {
	r.Calls = append(r.Calls, fmt.Sprintf(format, args...))
}

// LiveBuffers reports buffers created and not yet deleted
func (r *Recorder) LiveBuffers() int { return len(r.liveBuffers) }

// LiveVertexArrays reports vertex arrays created and not yet deleted
func (r *Recorder) LiveVertexArrays() int { return len(r.liveVAOs) }

// LivePrograms reports programs linked and not yet deleted
func (r *Recorder) LivePrograms() int { return len(r.livePrograms) }

// DepthTest reports whether depth testing was enabled
func (r *Recorder) DepthTest() bool { return r.depth }

// Reset forgets recorded calls and draws but keeps resources alive
func (r *Recorder) Reset() {
	r.Calls = nil
	r.Draws = nil
	r.Uniforms = make(map[int32]mgl32.Mat4)
	r.Attribs = make(map[uint32]int32)
}

func (r *Recorder) CreateVertexArray() uint32 {
	id := r.id()
	r.liveVAOs[id] = true
	r.record("CreateVertexArray %d", id)
	return id
}

func (r *Recorder) DeleteVertexArray(id uint32) {
	delete(r.liveVAOs, id)
	r.record("DeleteVertexArray %d", id)
}

func (r *Recorder) BindVertexArray(id uint32) {
	r.BoundVAO = id
	r.record("BindVertexArray %d", id)
}

func (r *Recorder) CreateBuffer() uint32 {
	id := r.id()
	r.liveBuffers[id] = true
	r.record("CreateBuffer %d", id)
	return id
}

func (r *Recorder) DeleteBuffer(id uint32) {
	delete(r.liveBuffers, id)
	r.record("DeleteBuffer %d", id)
}

func (r *Recorder) BufferFloats(target gpu.BufferTarget, id uint32, data []float32) {
	r.Floats[id] = append([]float32(nil), data...)
	r.record("BufferFloats %s %d %d", target, id, len(data))
}

func (r *Recorder) BufferUints(target gpu.BufferTarget, id uint32, data []uint32) {
	r.Uints[id] = append([]uint32(nil), data...)
	r.record("BufferUints %s %d %d", target, id, len(data))
}

func (r *Recorder) CompileShader(stage gpu.ShaderStage, source string) (uint32, string, bool) {
	r.record("CompileShader %s", stage)
	if r.FailStages[stage] || source == "" {
		return 0, fmt.Sprintf("0:1(1): error: %s shader rejected", stage), false
	}
	return r.id(), "", true
}

func (r *Recorder) LinkProgram(shaders []uint32, bindings []gpu.AttribBinding) (uint32, string, bool) {
	r.record("LinkProgram %d", len(shaders))
	r.Bindings = append([]gpu.AttribBinding(nil), bindings...)
	if r.FailLink {
		return 0, "error: linking failed", false
	}
	id := r.id()
	r.livePrograms[id] = true
	return id, "", true
}

func (r *Recorder) DeleteShader(id uint32) {
	r.deletedShader++
	r.record("DeleteShader %d", id)
}

func (r *Recorder) DeleteProgram(id uint32) {
	delete(r.livePrograms, id)
	r.record("DeleteProgram %d", id)
}

func (r *Recorder) UseProgram(id uint32) {
	r.Program = id
	r.record("UseProgram %d", id)
}

func (r *Recorder) AttribLocation(program uint32, name string) int32 {
	if loc, ok := r.Names[name]; ok {
		return loc
	}
	return -1
}

func (r *Recorder) UniformLocation(program uint32, name string) int32 {
	if loc, ok := r.Names[name]; ok {
		return loc
	}
	return -1
}

func (r *Recorder) UniformMatrix4(location int32, m mgl32.Mat4) {
	r.Uniforms[location] = m
	r.record("UniformMatrix4 %d", location)
}

func (r *Recorder) VertexAttrib(location uint32, size int32) {
	r.Attribs[location] = size
	r.record("VertexAttrib %d %d", location, size)
}

func (r *Recorder) EnableBlend() {
	r.blend = true
	r.record("EnableBlend")
}

func (r *Recorder) DisableBlend() {
	r.blend = false
	r.record("DisableBlend")
}

func (r *Recorder) DrawElements(count int32) {
	r.Draws = append(r.Draws, Draw{VAO: r.BoundVAO, Program: r.Program, Indexed: true, Count: count, Blend: r.blend})
	r.record("DrawElements %d", count)
}

func (r *Recorder) DrawArrays(count int32) {
	r.Draws = append(r.Draws, Draw{VAO: r.BoundVAO, Program: r.Program, Count: count, Blend: r.blend})
	r.record("DrawArrays %d", count)
}

func (r *Recorder) Clear(color mgl32.Vec4) {
	r.record("Clear %v", color)
}

func (r *Recorder) EnableDepthTest() {
	r.depth = true
	r.record("EnableDepthTest")
}

func (r *Recorder) Viewport(width, height int32) {
	r.record("Viewport %d %d", width, height)
}
