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

var configPath = flag.String("config", "", "lesson config file (yaml)")

func init() {
	runtime.LockOSThread()
}

const increment = 0.05

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

type VertexArrayApplication struct {
	cfg    *config.Config
	window *glfw.Window
	check  *glerr.Checker

	vao     uint32
	buffer  uint32
	ibo     uint32
	program uint32
	uColor  int32

	color mgl32.Vec4
	step  float32
}

func (app *VertexArrayApplication) Run() error {
	if err := app.initWindow(); err != nil {
		return err
	}
	defer app.cleanup()

	app.check = glutil.NewChecker()

	if err := app.createVertexArray(); err != nil {
		return err
	}
	if err := app.createProgram(); err != nil {
		return err
	}

	// Unbind everything so the loop has to bind what it draws.
	app.check.Must("glBindVertexArray", func() { gl.BindVertexArray(0) })
	app.check.Must("glUseProgram", func() { gl.UseProgram(0) })
	app.check.Must("glBindBuffer", func() { gl.BindBuffer(gl.ARRAY_BUFFER, 0) })
	app.check.Must("glBindBuffer", func() { gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, 0) })

	return app.mainLoop()
}

func (app *VertexArrayApplication) initWindow() error {
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

// createVertexArray records the buffer and attribute layout into a vertex
// array object, required by the core profile.
func (app *VertexArrayApplication) createVertexArray() error {
	stride := int32(unsafe.Sizeof(mgl32.Vec2{}))

	steps := []struct {
		name string
		fn   func()
	}{
		{"glGenVertexArrays", func() { gl.GenVertexArrays(1, &app.vao) }},
		{"glBindVertexArray", func() { gl.BindVertexArray(app.vao) }},

		{"glGenBuffers", func() { gl.GenBuffers(1, &app.buffer) }},
		{"glBindBuffer", func() { gl.BindBuffer(gl.ARRAY_BUFFER, app.buffer) }},
		{"glBufferData", func() {
			gl.BufferData(gl.ARRAY_BUFFER, len(positions)*int(stride), gl.Ptr(positions), gl.STATIC_DRAW)
		}},
		{"glEnableVertexAttribArray", func() { gl.EnableVertexAttribArray(0) }},
		{"glVertexAttribPointer", func() { gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, stride, 0) }},

		{"glGenBuffers", func() { gl.GenBuffers(1, &app.ibo) }},
		{"glBindBuffer", func() { gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, app.ibo) }},
		{"glBufferData", func() {
			gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, gl.Ptr(indices), gl.STATIC_DRAW)
		}},
	}
	for _, s := range steps {
		if err := app.check.Call(s.name, s.fn); err != nil {
			return err
		}
	}
	return nil
}

func (app *VertexArrayApplication) createProgram() error {
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

	app.color = mgl32.Vec4{0.8, 0.3, 0.8, 1.0}
	app.step = increment
	return app.check.Call("glUniform4f", func() {
		gl.Uniform4f(app.uColor, app.color[0], app.color[1], app.color[2], app.color[3])
	})
}

func (app *VertexArrayApplication) mainLoop() error {
	app.color[0] = 0
	for !app.window.ShouldClose() {
		if err := app.drawFrame(); err != nil {
			return err
		}

		app.window.SwapBuffers()
		glfw.PollEvents()
	}
	return nil
}

func (app *VertexArrayApplication) drawFrame() error {
	steps := []struct {
		name string
		fn   func()
	}{
		{"glClear", func() { gl.Clear(gl.COLOR_BUFFER_BIT) }},
		{"glUseProgram", func() { gl.UseProgram(app.program) }},
		{"glUniform4f", func() {
			gl.Uniform4f(app.uColor, app.color[0], app.color[1], app.color[2], app.color[3])
		}},
		{"glBindVertexArray", func() { gl.BindVertexArray(app.vao) }},
		{"glBindBuffer", func() { gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, app.ibo) }},
		{"glDrawElements", func() { gl.DrawElements(gl.TRIANGLES, int32(len(indices)), gl.UNSIGNED_INT, nil) }},
	}
	for _, s := range steps {
		if err := app.check.Call(s.name, s.fn); err != nil {
			return err
		}
	}

	if app.color[0] > 1 {
		app.step = -increment
	} else if app.color[0] < 0 {
		app.step = increment
	}
	app.color[0] += app.step
	return nil
}

func (app *VertexArrayApplication) cleanup() {
	if app.program != 0 {
		gl.DeleteProgram(app.program)
	}
	gl.DeleteBuffers(1, &app.ibo)
	gl.DeleteBuffers(1, &app.buffer)
	gl.DeleteVertexArrays(1, &app.vao)
	window.Close(app.window)
}

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("%+v\n", err)
	}

	app := &VertexArrayApplication{cfg: cfg}
	if err := app.Run(); err != nil {
		log.Fatalf("%+v\n", err)
	}
}
