package renderer

import (
	"github.com/pkg/errors"

	"github.com/FedericoTech/TCNOpenGL/internal/glerr"
)

const (
	FragmentShader uint32 = 0x8B30 // GL_FRAGMENT_SHADER
	VertexShader   uint32 = 0x8B31 // GL_VERTEX_SHADER
	CompileStatus  uint32 = 0x8B81 // GL_COMPILE_STATUS
	LinkStatus     uint32 = 0x8B82 // GL_LINK_STATUS
)

// ProgramAPI is the part of the GL API used to build shader programs. Info
// logs come back as Go strings; the adapter sizes the buffer.
type ProgramAPI interface {
	CreateShader(kind uint32) uint32
	ShaderSource(shader uint32, source string)
	CompileShader(shader uint32)
	GetShaderiv(shader, pname uint32, params *int32)
	ShaderInfoLog(shader uint32) string
	DeleteShader(shader uint32)

	CreateProgram() uint32
	AttachShader(program, shader uint32)
	LinkProgram(program uint32)
	ValidateProgram(program uint32)
	GetProgramiv(program, pname uint32, params *int32)
	ProgramInfoLog(program uint32) string
	DeleteProgram(program uint32)

	GetUniformLocation(program uint32, name string) int32
}

func kindName(kind uint32) string {
	if kind == VertexShader {
		return "vertex"
	}
	return "fragment"
}

// CompileShader compiles a single stage. The shader is deleted on every
// failure path. A nil checker runs the calls unchecked.
func CompileShader(api ProgramAPI, c *glerr.Checker, kind uint32, source string) (uint32, error) {
	id := api.CreateShader(kind)

	var result int32
	for _, step := range []struct {
		name string
		fn   func()
	}{
		{"glShaderSource", func() { api.ShaderSource(id, source) }},
		{"glCompileShader", func() { api.CompileShader(id) }},
		{"glGetShaderiv", func() { api.GetShaderiv(id, CompileStatus, &result) }},
	} {
		if err := c.Call(step.name, step.fn); err != nil {
			api.DeleteShader(id)
			return 0, err
		}
	}

	if result == 0 {
		message := api.ShaderInfoLog(id)
		api.DeleteShader(id)
		return 0, errors.Errorf("failed to compile %s shader: %s", kindName(kind), message)
	}

	return id, nil
}

// CreateShader compiles and links a vertex and fragment stage into a program.
// The intermediate shaders are always deleted.
func CreateShader(api ProgramAPI, c *glerr.Checker, vertexShader, fragmentShader string) (uint32, error) {
	vs, err := CompileShader(api, c, VertexShader, vertexShader)
	if err != nil {
		return 0, err
	}
	defer api.DeleteShader(vs)

	fs, err := CompileShader(api, c, FragmentShader, fragmentShader)
	if err != nil {
		return 0, err
	}
	defer api.DeleteShader(fs)

	program := api.CreateProgram()
	for _, step := range []struct {
		name string
		fn   func()
	}{
		{"glAttachShader", func() { api.AttachShader(program, vs) }},
		{"glAttachShader", func() { api.AttachShader(program, fs) }},
		{"glLinkProgram", func() { api.LinkProgram(program) }},
		{"glValidateProgram", func() { api.ValidateProgram(program) }},
	} {
		if err := c.Call(step.name, step.fn); err != nil {
			api.DeleteProgram(program)
			return 0, err
		}
	}

	var status int32
	api.GetProgramiv(program, LinkStatus, &status)
	if status == 0 {
		message := api.ProgramInfoLog(program)
		api.DeleteProgram(program)
		return 0, errors.Errorf("failed to link program: %s", message)
	}

	return program, nil
}

// UniformLocation looks up name in program. A uniform the linker dropped or
// never saw is an error.
func UniformLocation(api ProgramAPI, c *glerr.Checker, program uint32, name string) (int32, error) {
	var location int32
	if err := c.Call("glGetUniformLocation", func() {
		location = api.GetUniformLocation(program, name)
	}); err != nil {
		return -1, err
	}
	if location == -1 {
		return -1, errors.Errorf("uniform %q not found", name)
	}
	return location, nil
}
