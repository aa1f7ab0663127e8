// Package glutil binds the renderer interfaces to the go-gl binding.
package glutil

import (
	"strings"

	"github.com/go-gl/gl/v3.3-core/gl"

	"github.com/FedericoTech/TCNOpenGL/internal/glerr"
)

// NewChecker returns a checker over the live context's error queue.
func NewChecker() *glerr.Checker {
	return glerr.New(gl.GetError)
}

func VersionString() string {
	return gl.GoStr(gl.GetString(gl.VERSION))
}

func (Device) CreateShader(kind uint32) uint32 { return gl.CreateShader(kind) }

func (Device) ShaderSource(shader uint32, source string) {
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
}

func (Device) CompileShader(shader uint32) { gl.CompileShader(shader) }

func (Device) GetShaderiv(shader, pname uint32, params *int32) { gl.GetShaderiv(shader, pname, params) }

func (Device) ShaderInfoLog(shader uint32) string {
	var length int32
	gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &length)

	message := strings.Repeat("\x00", int(length+1))
	gl.GetShaderInfoLog(shader, length, nil, gl.Str(message))
	return strings.TrimRight(message, "\x00")
}

func (Device) DeleteShader(shader uint32) { gl.DeleteShader(shader) }

func (Device) CreateProgram() uint32 { return gl.CreateProgram() }

func (Device) AttachShader(program, shader uint32) { gl.AttachShader(program, shader) }

func (Device) LinkProgram(program uint32) { gl.LinkProgram(program) }

func (Device) ValidateProgram(program uint32) { gl.ValidateProgram(program) }

func (Device) GetProgramiv(program, pname uint32, params *int32) {
	gl.GetProgramiv(program, pname, params)
}

func (Device) ProgramInfoLog(program uint32) string {
	var length int32
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &length)

	message := strings.Repeat("\x00", int(length+1))
	gl.GetProgramInfoLog(program, length, nil, gl.Str(message))
	return strings.TrimRight(message, "\x00")
}

func (Device) DeleteProgram(program uint32) { gl.DeleteProgram(program) }

func (Device) GetUniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}
