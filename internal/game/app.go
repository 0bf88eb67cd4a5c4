package game

import (
	"fmt"
	"time"

	"cod3rgl/internal/camera"
	"cod3rgl/internal/config"
	"cod3rgl/internal/gpu"
	"cod3rgl/internal/graphics"
	"cod3rgl/internal/graphics/renderer"
	"cod3rgl/internal/input"
	"cod3rgl/internal/logging"
	"cod3rgl/internal/profiling"
	"cod3rgl/internal/scene"

	"github.com/go-gl/glfw/v3.3/glfw"
)

const slowFrame = 16 * time.Millisecond

// App owns the window loop: input, camera, shader reloads, the scene and the
// renderer, in that order every frame
type App struct {
	window       *glfw.Window
	inputManager *input.InputManager
	cfg          config.Config

	renderer *renderer.Renderer
	shader   *graphics.Shader
	watcher  *graphics.ShaderWatcher
	camera   *camera.Camera
	mouse    *camera.MouseTracker
	scene    scene.Scene

	fpsLimiter *FPSLimiter
	lastTime   time.Time
}

// NewApp loads the shader, builds the renderer and sets the scene up. A
// shader that fails to load is logged and the app runs without drawing
// until a reload succeeds.
func NewApp(window *glfw.Window, dev gpu.Device, im *input.InputManager, cfg config.Config, sc scene.Scene) (*App, error) {
	r, err := renderer.NewRenderer(dev, cfg.RegistryOptions())
	if err != nil {
		return nil, err
	}

	shader, err := graphics.LoadShader(dev, cfg.Shaders.Vertex, cfg.Shaders.Fragment)
	if err != nil {
		logging.Logger().Warn("running without a valid shader", "error", err)
	}

	var watcher *graphics.ShaderWatcher
	if cfg.Shaders.HotReload {
		watcher, err = graphics.NewShaderWatcher(cfg.Shaders.Vertex, cfg.Shaders.Fragment)
		if err != nil {
			logging.Logger().Warn("shader hot reload disabled", "error", err)
		}
	}

	cam := camera.New(cfg.Camera.Position, cfg.Camera.Up, cfg.Camera.Yaw, cfg.Camera.Pitch)
	cam.Speed = cfg.Camera.Speed
	cam.Sensitivity = cfg.Camera.Sensitivity
	cam.FOV = cfg.Camera.FOV

	if err := sc.Setup(r); err != nil {
		if watcher != nil {
			_ = watcher.Close()
		}
		r.Dispose()
		shader.Dispose()
		return nil, fmt.Errorf("scene setup: %w", err)
	}

	return &App{
		window:       window,
		inputManager: im,
		cfg:          cfg,
		renderer:     r,
		shader:       shader,
		watcher:      watcher,
		camera:       cam,
		mouse:        camera.NewMouseTracker(),
		scene:        sc,
		fpsLimiter:   NewFPSLimiter(),
		lastTime:     time.Now(),
	}, nil
}

func (a *App) Run() {
	for !a.window.ShouldClose() {
		a.tick()
	}
}

func (a *App) tick() {
	profiling.ResetFrame()
	startTick := time.Now()
	dt := startTick.Sub(a.lastTime).Seconds()
	a.lastTime = startTick

	glfw.PollEvents()
	a.handleInput(float32(dt))
	a.reloadShaderIfChanged()

	width, height := a.window.GetFramebufferSize()
	a.camera.SetViewport(width, height)
	a.renderer.BeginFrame(a.cfg.Render.ClearColor.Vec4(), width, height)

	a.scene.Update(dt)
	if err := a.scene.Draw(a.renderer); err != nil {
		logging.Logger().Warn("scene geometry rejected", "error", err)
	}

	ctx := renderer.NewRenderContext(a.shader)
	ctx.Projection = a.camera.ProjectionMatrix()
	ctx.View = a.camera.ViewMatrix()
	a.renderer.Render(ctx)

	a.window.SwapBuffers()

	if config.GetShowStats() {
		logging.Logger().Info("frame", "stats", a.renderer.LastFrame().String(), "dt", dt)
	}
	if d := time.Since(startTick); d > slowFrame {
		logging.Logger().Warn("slow frame", "duration", d, "top", profiling.TopN(5))
	}

	a.inputManager.PostUpdate() // Clear "JustPressed" flags
	a.fpsLimiter.Wait()
}

func (a *App) handleInput(dt float32) {
	im := a.inputManager
	if im.JustPressed(input.ActionQuit) {
		a.window.SetShouldClose(true)
	}
	if im.JustPressed(input.ActionReloadShaders) {
		a.reloadShader()
	}
	if im.JustPressed(input.ActionToggleStats) {
		logging.Logger().Info("frame stats logging", "enabled", config.ToggleShowStats())
	}

	moves := []struct {
		action input.Action
		dir    camera.Direction
	}{
		{input.ActionMoveForward, camera.Forward},
		{input.ActionMoveBackward, camera.Backward},
		{input.ActionMoveLeft, camera.Left},
		{input.ActionMoveRight, camera.Right},
	}
	for _, m := range moves {
		if im.IsActive(m.action) {
			a.camera.Move(m.dir, dt)
		}
	}

	if !im.IsActive(input.ActionLook) {
		a.mouse.Release()
		return
	}
	x, y := a.mouse.Offset(im.CursorPos())
	if x != 0 || y != 0 {
		a.camera.ProcessMouseMovement(x, y, true)
	}
}

func (a *App) reloadShaderIfChanged() {
	if a.watcher != nil && a.watcher.Changed() {
		a.reloadShader()
	}
}

func (a *App) reloadShader() {
	if err := a.shader.Reload(); err != nil {
		logging.Logger().Warn("shader reload failed, keeping previous program", "error", err)
		return
	}
	logging.Logger().Info("shader reloaded", "id", a.shader.ID)
}

// Dispose releases the watcher, the shader and every draw target. The
// window itself belongs to the caller.
func (a *App) Dispose() {
	if a.watcher != nil {
		if err := a.watcher.Close(); err != nil {
			logging.Logger().Warn("closing shader watcher", "error", err)
		}
	}
	a.shader.Dispose()
	a.renderer.Dispose()
}
