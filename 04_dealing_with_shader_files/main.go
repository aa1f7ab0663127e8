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
	"github.com/FedericoTech/TCNOpenGL/internal/renderer"
	"github.com/FedericoTech/TCNOpenGL/internal/shader"
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

type ShaderFileApplication struct {
	cfg     *config.Config
	window  *glfw.Window
	buffer  uint32
	program uint32
}

func (app *ShaderFileApplication) Run() error {
	if err := app.initWindow(); err != nil {
		return err
	}
	defer app.cleanup()

	app.createVertexBuffer()
	if err := app.createProgram(); err != nil {
		return err
	}

	app.mainLoop()
	return nil
}

func (app *ShaderFileApplication) initWindow() error {
	w, err := window.Open(app.cfg.Window)
	if err != nil {
		return err
	}
	app.window = w

	log.Println(glutil.VersionString())
	return nil
}

func (app *ShaderFileApplication) createVertexBuffer() {
	stride := int32(unsafe.Sizeof(mgl32.Vec2{}))

	gl.GenBuffers(1, &app.buffer)
	gl.BindBuffer(gl.ARRAY_BUFFER, app.buffer)
	gl.BufferData(gl.ARRAY_BUFFER, len(positions)*int(stride), gl.Ptr(positions), gl.STATIC_DRAW)

	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, stride, 0)
}

func (app *ShaderFileApplication) createProgram() error {
	source, err := shader.ParseFile(app.cfg.Shader)
	if err != nil {
		return err
	}

	// No error checking yet: a nil checker runs the calls as they are.
	program, err := renderer.CreateShader(glutil.Device{}, nil, source.VertexSource, source.FragmentSource)
	if err != nil {
		return err
	}
	app.program = program

	gl.UseProgram(app.program)
	return nil
}

func (app *ShaderFileApplication) mainLoop() {
	for !app.window.ShouldClose() {
		gl.Clear(gl.COLOR_BUFFER_BIT)

		gl.DrawArrays(gl.TRIANGLES, 0, int32(len(positions)))

		app.window.SwapBuffers()
		glfw.PollEvents()
	}
}

func (app *ShaderFileApplication) cleanup() {
	if app.program != 0 {
		gl.DeleteProgram(app.program)
	}
	gl.DeleteBuffers(1, &app.buffer)
	window.Close(app.window)
}

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("%+v\n", err)
	}

	app := &ShaderFileApplication{cfg: cfg}
	if err := app.Run(); err != nil {
		log.Fatalf("%+v\n", err)
	}
}
