package glutil

import (
	"unsafe"

	"github.com/go-gl/gl/v3.3-core/gl"

	"github.com/FedericoTech/TCNOpenGL/internal/renderer"
)

var (
	_ renderer.Device     = Device{}
	_ renderer.ProgramAPI = Device{}
)

// Device forwards renderer buffer and program calls to the current GL context.
type Device struct{}

func (Device) GenBuffers(n int32, buffers *uint32) { gl.GenBuffers(n, buffers) }

func (Device) BindBuffer(target, buffer uint32) { gl.BindBuffer(target, buffer) }

func (Device) BufferData(target uint32, size int, data unsafe.Pointer, usage uint32) {
	gl.BufferData(target, size, data, usage)
}

func (Device) DeleteBuffers(n int32, buffers *uint32) { gl.DeleteBuffers(n, buffers) }

func (Device) GetError() uint32 { return gl.GetError() }
