package main

import (
	"flag"
	"log"
	"runtime"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/FedericoTech/TCNOpenGL/internal/config"
	"github.com/FedericoTech/TCNOpenGL/internal/glutil"
	"github.com/FedericoTech/TCNOpenGL/internal/window"
)

var configPath = flag.String("config", "", "lesson config file (yaml)")

func init() {
	runtime.LockOSThread()
}

type HelloWindowApplication struct {
	cfg    *config.Config
	window *glfw.Window
}

func (app *HelloWindowApplication) Run() error {
	if err := app.initWindow(); err != nil {
		return err
	}
	defer app.cleanup()

	app.mainLoop()
	return nil
}

func (app *HelloWindowApplication) initWindow() error {
	w, err := window.Open(app.cfg.Window)
	if err != nil {
		return err
	}
	app.window = w

	log.Println(glutil.VersionString())
	return nil
}

func (app *HelloWindowApplication) mainLoop() {
	for !app.window.ShouldClose() {
		gl.Clear(gl.COLOR_BUFFER_BIT)

		app.window.SwapBuffers()
		glfw.PollEvents()
	}
}

func (app *HelloWindowApplication) cleanup() {
	window.Close(app.window)
}

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("%+v\n", err)
	}

	app := &HelloWindowApplication{cfg: cfg}
	if err := app.Run(); err != nil {
		log.Fatalf("%+v\n", err)
	}
}
