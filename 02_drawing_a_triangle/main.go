package main

import (
	"flag"
	"log"
	"runtime"
	"unsafe"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/FedericoTech/TCNOpenGL/internal/config"
	"github.com/FedericoTech/TCNOpenGL/internal/glutil"
	"github.com/FedericoTech/TCNOpenGL/internal/window"
)

var configPath = flag.String("config", "", "lesson config file (yaml)")

func init() {
	runtime.LockOSThread()
}

var positions = []mgl32.Vec2{
	{-0.5, -0.5},
	{0.0, 0.5},
	{0.5, -0.5},
}

type HelloTriangleApplication struct {
	cfg    *config.Config
	window *glfw.Window
	buffer uint32
}

func (app *HelloTriangleApplication) Run() error {
	if err := app.initWindow(); err != nil {
		return err
	}
	defer app.cleanup()

	app.createVertexBuffer()
	app.mainLoop()
	return nil
}

func (app *HelloTriangleApplication) initWindow() error {
	// No context hints: the default context is a compatibility one, so the
	// triangle draws without a vertex array object or shader.
	w, err := window.Open(app.cfg.Window)
	if err != nil {
		return err
	}
	app.window = w

	log.Println(glutil.VersionString())
	return nil
}

func (app *HelloTriangleApplication) createVertexBuffer() {
	stride := int32(unsafe.Sizeof(mgl32.Vec2{}))

	gl.GenBuffers(1, &app.buffer)
	gl.BindBuffer(gl.ARRAY_BUFFER, app.buffer)
	gl.BufferData(gl.ARRAY_BUFFER, len(positions)*int(stride), gl.Ptr(positions), gl.STATIC_DRAW)

	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, stride, 0)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

func (app *HelloTriangleApplication) mainLoop() {
	for !app.window.ShouldClose() {
		gl.Clear(gl.COLOR_BUFFER_BIT)

		gl.DrawArrays(gl.TRIANGLES, 0, int32(len(positions)))

		app.window.SwapBuffers()
		glfw.PollEvents()
	}
}

func (app *HelloTriangleApplication) cleanup() {
	gl.DeleteBuffers(1, &app.buffer)
	window.Close(app.window)
}

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("%+v\n", err)
	}

	app := &HelloTriangleApplication{cfg: cfg}
	if err := app.Run(); err != nil {
		log.Fatalf("%+v\n", err)
	}
}
