// Package renderer holds the thin buffer abstraction introduced once the
// lessons stop talking to the driver directly. Each wrapper owns one buffer
// handle, valid from construction until Delete.
package renderer

import (
	"unsafe"

	"github.com/pkg/errors"

	"github.com/FedericoTech/TCNOpenGL/internal/glerr"
)

const (
	ArrayBuffer        uint32 = 0x8892 // GL_ARRAY_BUFFER
	ElementArrayBuffer uint32 = 0x8893 // GL_ELEMENT_ARRAY_BUFFER
	StaticDraw         uint32 = 0x88E4 // GL_STATIC_DRAW
)

var ErrDeleted = errors.New("renderer: buffer already deleted")

// Device is the part of the GL API the buffers forward to.
type Device interface {
	GenBuffers(n int32, buffers *uint32)
	BindBuffer(target, buffer uint32)
	BufferData(target uint32, size int, data unsafe.Pointer, usage uint32)
	DeleteBuffers(n int32, buffers *uint32)
	GetError() uint32
}

// buffer is the shared state behind VertexBuffer and IndexBuffer.
type buffer struct {
	dev    Device
	check  *glerr.Checker
	target uint32
	id     uint32
}

func newBuffer(dev Device, target uint32, size int, data unsafe.Pointer) (buffer, error) {
	b := buffer{dev: dev, check: glerr.New(dev.GetError), target: target}

	if err := b.check.Call("glGenBuffers", func() { dev.GenBuffers(1, &b.id) }); err != nil {
		return buffer{}, err
	}
	if b.id == 0 {
		return buffer{}, errors.New("renderer: driver returned no buffer name")
	}
	if err := b.bind(b.id); err != nil {
		b.delete()
		return buffer{}, err
	}
	if err := b.check.Call("glBufferData", func() { dev.BufferData(target, size, data, StaticDraw) }); err != nil {
		b.delete()
		return buffer{}, err
	}
	return b, nil
}

func (b *buffer) bind(id uint32) error {
	return b.check.Call("glBindBuffer", func() { b.dev.BindBuffer(b.target, id) })
}

func (b *buffer) Bind() error {
	if b.id == 0 {
		return ErrDeleted
	}
	return b.bind(b.id)
}

func (b *buffer) UnBind() error {
	return b.bind(0)
}

func (b *buffer) delete() error {
	if b.id == 0 {
		return nil
	}
	err := b.check.Call("glDeleteBuffers", func() { b.dev.DeleteBuffers(1, &b.id) })
	b.id = 0
	return err
}

type VertexBuffer struct {
	buffer
}

// NewVertexBuffer uploads data into a new GL_ARRAY_BUFFER and leaves it bound.
func NewVertexBuffer(dev Device, data []float32) (*VertexBuffer, error) {
	var ptr unsafe.Pointer
	if len(data) > 0 {
		ptr = unsafe.Pointer(&data[0])
	}
	b, err := newBuffer(dev, ArrayBuffer, len(data)*4, ptr)
	if err != nil {
		return nil, errors.Wrap(err, "create vertex buffer")
	}
	return &VertexBuffer{buffer: b}, nil
}

func (vb *VertexBuffer) ID() uint32 { return vb.id }

// Delete releases the handle. Calling it twice is a no-op.
func (vb *VertexBuffer) Delete() error { return vb.delete() }

type IndexBuffer struct {
	buffer
	count int32
}

// NewIndexBuffer uploads indices into a new GL_ELEMENT_ARRAY_BUFFER and leaves
// it bound.
func NewIndexBuffer(dev Device, indices []uint32) (*IndexBuffer, error) {
	var ptr unsafe.Pointer
	if len(indices) > 0 {
		ptr = unsafe.Pointer(&indices[0])
	}
	b, err := newBuffer(dev, ElementArrayBuffer, len(indices)*4, ptr)
	if err != nil {
		return nil, errors.Wrap(err, "create index buffer")
	}
	return &IndexBuffer{buffer: b, count: int32(len(indices))}, nil
}

func (ib *IndexBuffer) ID() uint32 { return ib.id }

// Count is the number of indices, as passed to glDrawElements.
func (ib *IndexBuffer) Count() int32 { return ib.count }

func (ib *IndexBuffer) Delete() error { return ib.delete() }
