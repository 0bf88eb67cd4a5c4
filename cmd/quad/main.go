package main

import (
	"fmt"
	"runtime"
	"time"

	"cod3rgl/internal/entity"
	"cod3rgl/internal/gpu/opengl"
	"cod3rgl/internal/graphics"
	"cod3rgl/internal/graphics/renderer"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	windowWidth  = 800
	windowHeight = 600
)

// Minimal shaders using the default attribute and uniform names
const (
	vertexSrc = `#version 410 core
in vec3 vertexPosition;
in vec4 vertexColor;
uniform mat4 projection;
uniform mat4 view;
uniform mat4 model;
out vec4 color;
void main() {
	color = vertexColor;
	gl_Position = projection * view * model * vec4(vertexPosition, 1.0);
}`

	fragmentSrc = `#version 410 core
in vec4 color;
out vec4 fragColor;
void main() {
	fragColor = color;
}`
)

func init() {
	runtime.LockOSThread()
}

func main() {
	if err := glfw.Init(); err != nil {
		panic(err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.False)

	window, err := glfw.CreateWindow(windowWidth, windowHeight, "cod3rgl - single quad", nil, nil)
	if err != nil {
		panic(err)
	}
	window.MakeContextCurrent()
	// Disable VSync for max raw framerate; comment this if you want vsync.
	glfw.SwapInterval(0)

	dev, err := opengl.New()
	if err != nil {
		panic(err)
	}

	shader, err := graphics.LoadShaderCode(dev, vertexSrc, fragmentSrc)
	if err != nil {
		panic(err)
	}
	defer shader.Dispose()

	r, err := renderer.NewRenderer(dev, graphics.RegistryOptions{MaxTargets: 1, BufferCapacity: 64})
	if err != nil {
		panic(err)
	}
	defer r.Dispose()

	green := mgl32.Vec4{0, 1, 0, 1}
	quad := entity.NewRect(&green, mgl32.Vec3{})
	// identity projection and view: the quad is drawn straight in clip space
	ctx := renderer.NewRenderContext(shader)

	frames := 0
	last := time.Now()
	fpsTicker := time.NewTicker(time.Second)
	defer fpsTicker.Stop()

	for !window.ShouldClose() {
		if window.GetKey(glfw.KeyEscape) == glfw.Press {
			window.SetShouldClose(true)
		}

		r.BeginFrame(mgl32.Vec4{0, 0, 0, 1}, windowWidth, windowHeight)
		quad.RotateZ(0.5)
		if err := r.AppendEntity(quad); err != nil {
			panic(err)
		}
		r.Render(ctx)

		window.SwapBuffers()
		glfw.PollEvents()

		frames++

		select {
		case <-fpsTicker.C:
			now := time.Now()
			elapsed := now.Sub(last).Seconds()
			if elapsed > 0 {
				fmt.Printf("FPS: %d (%s)\n", int(float64(frames)/elapsed+0.5), r.LastFrame())
			}
			frames = 0
			last = now
		default:
		}
	}
}
