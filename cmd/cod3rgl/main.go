package main

import (
	"flag"
	"os"
	"runtime"
	"time"

	"cod3rgl/internal/config"
	"cod3rgl/internal/game"
	"cod3rgl/internal/gpu/opengl"
	"cod3rgl/internal/input"
	"cod3rgl/internal/logging"
	"cod3rgl/internal/scene"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/xlab/closer"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", config.DefaultPath, "path to the YAML configuration")
	flag.Parse()

	// stderr at info until the configured level is known
	logging.SetLogger(logging.NewTextLogger(os.Stderr, "info"))
	cfg, err := config.Load(*configPath)
	if err != nil {
		panic(err)
	}
	logging.SetLogger(logging.NewTextLogger(os.Stderr, cfg.LogLevel))
	config.Apply(cfg)

	start := time.Now()
	closer.Bind(func() {
		uptime := time.Since(start)
		logging.Logger().Info("running time", "seconds", int(uptime.Seconds()), "ms", uptime.Milliseconds())
	})

	run(cfg)
	// runs the bound hooks and exits
	closer.Close()
}

// run owns the window and GL lifetime so every teardown has happened before
// closer exits the process
func run(cfg config.Config) {
	if err := glfw.Init(); err != nil {
		panic(err)
	}
	defer glfw.Terminate()

	window, err := game.SetupWindow(cfg.Window)
	if err != nil {
		panic(err)
	}
	defer window.Destroy()

	dev, err := opengl.New()
	if err != nil {
		panic(err)
	}
	logging.Logger().Info("OpenGL ready", "version", dev.Version())

	im := input.NewInputManager()
	im.Attach(window)

	app, err := game.NewApp(window, dev, im, cfg, scene.NewDemo())
	if err != nil {
		panic(err)
	}
	defer app.Dispose()

	app.Run()
}
