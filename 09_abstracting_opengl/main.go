package main

import (
	"flag"
	"log"
	"runtime"

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

var configPath = flag.String("config", "", "lesson config file (yaml)")

func init() {
	runtime.LockOSThread()
}

const increment = 0.05

var positions = []float32{
	-0.5, -0.5,
	0.5, -0.5,
	0.5, 0.5,
	-0.5, 0.5,
}

var indices = []uint32{
	0, 1, 2,
	2, 3, 0,
}

type AbstractionApplication struct {
	cfg    *config.Config
	window *glfw.Window
	check  *glerr.Checker

	vao     uint32
	vb      *renderer.VertexBuffer
	ib      *renderer.IndexBuffer
	program uint32
	uColor  int32

	color mgl32.Vec4
	step  float32
}

func (app *AbstractionApplication) Run() error {
	if err := app.initWindow(); err != nil {
		return err
	}
	defer app.cleanup()

	app.check = glutil.NewChecker()

	if err := app.createBuffers(); err != nil {
		return err
	}
	if err := app.createProgram(); err != nil {
		return err
	}

	app.check.Must("glBindVertexArray", func() { gl.BindVertexArray(0) })
	app.check.Must("glUseProgram", func() { gl.UseProgram(0) })
	if err := app.vb.UnBind(); err != nil {
		return err
	}
	if err := app.ib.UnBind(); err != nil {
		return err
	}

	return app.mainLoop()
}

func (app *AbstractionApplication) initWindow() error {
	cfg := app.cfg.Window
	if cfg.ContextMajor == 0 {
		cfg = cfg.Core33()
	}

	w, err := window.Open(cfg)
	if err != nil {
		return err
	}
	app.window = w

	log.Println(glutil.VersionString())
	return nil
}

func (app *AbstractionApplication) createBuffers() error {
	if err := app.check.Call("glGenVertexArrays", func() { gl.GenVertexArrays(1, &app.vao) }); err != nil {
		return err
	}
	if err := app.check.Call("glBindVertexArray", func() { gl.BindVertexArray(app.vao) }); err != nil {
		return err
	}

	vb, err := renderer.NewVertexBuffer(glutil.Device{}, positions)
	if err != nil {
		return err
	}
	app.vb = vb

	if err := app.check.Call("glEnableVertexAttribArray", func() { gl.EnableVertexAttribArray(0) }); err != nil {
		return err
	}
	if err := app.check.Call("glVertexAttribPointer", func() {
		gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, 2*4, 0)
	}); err != nil {
		return err
	}

	ib, err := renderer.NewIndexBuffer(glutil.Device{}, indices)
	if err != nil {
		return err
	}
	app.ib = ib
	return nil
}

func (app *AbstractionApplication) createProgram() error {
	source, err := shader.ParseFile(app.cfg.Shader)
	if err != nil {
		return err
	}

	program, err := renderer.CreateShader(glutil.Device{}, app.check, source.VertexSource, source.FragmentSource)
	if err != nil {
		return err
	}
	app.program = program

	if err := app.check.Call("glUseProgram", func() { gl.UseProgram(app.program) }); err != nil {
		return err
	}

	location, err := renderer.UniformLocation(glutil.Device{}, app.check, app.program, "u_Color")
	if err != nil {
		return err
	}
	app.uColor = location

	app.color = mgl32.Vec4{0.0, 0.3, 0.8, 1.0}
	app.step = increment
	return nil
}

func (app *AbstractionApplication) mainLoop() error {
	for !app.window.ShouldClose() {
		if err := app.drawFrame(); err != nil {
			return err
		}

		app.window.SwapBuffers()
		glfw.PollEvents()
	}
	return nil
}

func (app *AbstractionApplication) drawFrame() error {
	app.check.Must("glClear", func() { gl.Clear(gl.COLOR_BUFFER_BIT) })
	app.check.Must("glUseProgram", func() { gl.UseProgram(app.program) })
	app.check.Must("glUniform4f", func() {
		gl.Uniform4f(app.uColor, app.color[0], app.color[1], app.color[2], app.color[3])
	})
	app.check.Must("glBindVertexArray", func() { gl.BindVertexArray(app.vao) })

	if err := app.ib.Bind(); err != nil {
		return err
	}
	if err := app.check.Call("glDrawElements", func() {
		gl.DrawElements(gl.TRIANGLES, app.ib.Count(), gl.UNSIGNED_INT, nil)
	}); err != nil {
		return err
	}

	if app.color[0] > 1 {
		app.step = -increment
	} else if app.color[0] < 0 {
		app.step = increment
	}
	app.color[0] += app.step
	return nil
}

func (app *AbstractionApplication) cleanup() {
	if app.program != 0 {
		gl.DeleteProgram(app.program)
	}
	if app.ib != nil {
		if err := app.ib.Delete(); err != nil {
			log.Printf("failed to delete index buffer: %v\n", err)
		}
	}
	if app.vb != nil {
		if err := app.vb.Delete(); err != nil {
			log.Printf("failed to delete vertex buffer: %v\n", err)
		}
	}
	gl.DeleteVertexArrays(1, &app.vao)
	window.Close(app.window)
}

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("%+v\n", err)
	}

	app := &AbstractionApplication{cfg: cfg}
	if err := app.Run(); err != nil {
		log.Fatalf("%+v\n", err)
	}
}
