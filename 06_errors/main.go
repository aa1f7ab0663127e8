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
	"github.com/FedericoTech/TCNOpenGL/internal/glerr"
	"github.com/FedericoTech/TCNOpenGL/internal/glutil"
	"github.com/FedericoTech/TCNOpenGL/internal/renderer"
	"github.com/FedericoTech/TCNOpenGL/internal/shader"
	"github.com/FedericoTech/TCNOpenGL/internal/window"
)

var (
	configPath = flag.String("config", "", "lesson config file (yaml)")
	// GL_INT is not a valid index type, so glDrawElements raises
	// GL_INVALID_ENUM and the checker reports it.
	broken = flag.Bool("broken", false, "draw with GL_INT indices to trigger a GL error")
)

func init() {
	runtime.LockOSThread()
}

var positions = []mgl32.Vec2{
	{-0.5, -0.5},
	{0.5, -0.5},
	{0.5, 0.5},
	{-0.5, 0.5},
}

var indices = []uint32{
	0, 1, 2,
	2, 3, 0,
}

type ErrorsApplication struct {
	cfg     *config.Config
	window  *glfw.Window
	check   *glerr.Checker
	buffer  uint32
	ibo     uint32
	program uint32
}

func (app *ErrorsApplication) Run() error {
	if err := app.initWindow(); err != nil {
		return err
	}
	defer app.cleanup()

	app.check = glutil.NewChecker()

	if err := app.createVertexBuffer(); err != nil {
		return err
	}
	if err := app.createIndexBuffer(); err != nil {
		return err
	}
	if err := app.createProgram(); err != nil {
		return err
	}

	return app.mainLoop()
}

func (app *ErrorsApplication) initWindow() error {
	w, err := window.Open(app.cfg.Window)
	if err != nil {
		return err
	}
	app.window = w

	log.Println(glutil.VersionString())
	return nil
}

func (app *ErrorsApplication) createVertexBuffer() error {
	stride := int32(unsafe.Sizeof(mgl32.Vec2{}))

	if err := app.check.Call("glGenBuffers", func() { gl.GenBuffers(1, &app.buffer) }); err != nil {
		return err
	}
	if err := app.check.Call("glBindBuffer", func() { gl.BindBuffer(gl.ARRAY_BUFFER, app.buffer) }); err != nil {
		return err
	}
	if err := app.check.Call("glBufferData", func() {
		gl.BufferData(gl.ARRAY_BUFFER, len(positions)*int(stride), gl.Ptr(positions), gl.STATIC_DRAW)
	}); err != nil {
		return err
	}
	if err := app.check.Call("glEnableVertexAttribArray", func() { gl.EnableVertexAttribArray(0) }); err != nil {
		return err
	}
	return app.check.Call("glVertexAttribPointer", func() {
		gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, stride, 0)
	})
}

func (app *ErrorsApplication) createIndexBuffer() error {
	if err := app.check.Call("glGenBuffers", func() { gl.GenBuffers(1, &app.ibo) }); err != nil {
		return err
	}
	if err := app.check.Call("glBindBuffer", func() { gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, app.ibo) }); err != nil {
		return err
	}
	return app.check.Call("glBufferData", func() {
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, gl.Ptr(indices), gl.STATIC_DRAW)
	})
}

func (app *ErrorsApplication) createProgram() error {
	source, err := shader.ParseFile(app.cfg.Shader)
	if err != nil {
		return err
	}

	program, err := renderer.CreateShader(glutil.Device{}, app.check, source.VertexSource, source.FragmentSource)
	if err != nil {
		return err
	}
	app.program = program

	return app.check.Call("glUseProgram", func() { gl.UseProgram(app.program) })
}

func (app *ErrorsApplication) mainLoop() error {
	indexType := uint32(gl.UNSIGNED_INT)
	if *broken {
		indexType = gl.INT
	}

	for !app.window.ShouldClose() {
		app.check.Must("glClear", func() { gl.Clear(gl.COLOR_BUFFER_BIT) })

		if err := app.check.Call("glDrawElements", func() {
			gl.DrawElements(gl.TRIANGLES, int32(len(indices)), indexType, nil)
		}); err != nil {
			return err
		}

		app.window.SwapBuffers()
		glfw.PollEvents()
	}
	return nil
}

func (app *ErrorsApplication) cleanup() {
	if app.program != 0 {
		gl.DeleteProgram(app.program)
	}
	gl.DeleteBuffers(1, &app.ibo)
	gl.DeleteBuffers(1, &app.buffer)
	window.Close(app.window)
}

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("%+v\n", err)
	}

	app := &ErrorsApplication{cfg: cfg}
	if err := app.Run(); err != nil {
		log.Fatalf("%+v\n", err)
	}
}
