package renderer

import (
	"fmt"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FedericoTech/TCNOpenGL/internal/glerr"
)

// fakeDevice records buffer calls and lets a test inject GL errors.
type fakeDevice struct {
	next    uint32
	bound   map[uint32]uint32
	sizes   map[uint32]int
	live    map[uint32]bool
	calls   []string
	pending []uint32
	failOn  string
}

func newFakeDevice() *fakeDevice {
	return &fakeDevice{
		next:  1,
		bound: map[uint32]uint32{},
		sizes: map[uint32]int{},
		live:  map[uint32]bool{},
	}
}

func (d *fakeDevice) record(call string) {
	d.calls = append(d.calls, call)
	if call == d.failOn {
		d.pending = append(d.pending, 0x0502)
	}
}

func (d *fakeDevice) GenBuffers(n int32, buffers *uint32) {
	d.record("GenBuffers")
	*buffers = d.next
	d.live[d.next] = true
	d.next++
}

func (d *fakeDevice) BindBuffer(target, buffer uint32) {
	d.record(fmt.Sprintf("BindBuffer(%#x,%d)", target, buffer))
	d.bound[target] = buffer
}

func (d *fakeDevice) BufferData(target uint32, size int, data unsafe.Pointer, usage uint32) {
	d.record("BufferData")
	d.sizes[d.bound[target]] = size
}

func (d *fakeDevice) DeleteBuffers(n int32, buffers *uint32) {
	d.record("DeleteBuffers")
	delete(d.live, *buffers)
}

func (d *fakeDevice) GetError() uint32 {
	if len(d.pending) == 0 {
		return glerr.NoError
	}
	c := d.pending[0]
	d.pending = d.pending[1:]
	return c
}

func TestVertexBuffer(t *testing.T) {
	dev := newFakeDevice()
	positions := []float32{-.5, -.5, .5, -.5, .5, .5, -.5, .5}

	vb, err := NewVertexBuffer(dev, positions)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), vb.ID())
	assert.Equal(t, vb.ID(), dev.bound[ArrayBuffer])
	assert.Equal(t, len(positions)*4, dev.sizes[vb.ID()])

	require.NoError(t, vb.UnBind())
	assert.Zero(t, dev.bound[ArrayBuffer])

	require.NoError(t, vb.Bind())
	assert.Equal(t, vb.ID(), dev.bound[ArrayBuffer])

	require.NoError(t, vb.Delete())
	assert.False(t, dev.live[1])
	assert.Zero(t, vb.ID())
}

func TestIndexBuffer(t *testing.T) {
	dev := newFakeDevice()
	indices := []uint32{0, 1, 2, 2, 3, 0}

	ib, err := NewIndexBuffer(dev, indices)
	require.NoError(t, err)
	assert.Equal(t, int32(6), ib.Count())
	assert.Equal(t, ib.ID(), dev.bound[ElementArrayBuffer])
	assert.Equal(t, 24, dev.sizes[ib.ID()])
	assert.Zero(t, dev.bound[ArrayBuffer])

	require.NoError(t, ib.UnBind())
	assert.Zero(t, dev.bound[ElementArrayBuffer])
}

func TestDeleteIsIdempotent(t *testing.T) {
	dev := newFakeDevice()
	ib, err := NewIndexBuffer(dev, []uint32{0, 1, 2})
	require.NoError(t, err)

	require.NoError(t, ib.Delete())
	require.NoError(t, ib.Delete())

	deletes := 0
	for _, c := range dev.calls {
		if c == "DeleteBuffers" {
			deletes++
		}
	}
	assert.Equal(t, 1, deletes)
	assert.ErrorIs(t, ib.Bind(), ErrDeleted)
}

func TestConstructionCallOrder(t *testing.T) {
	dev := newFakeDevice()
	_, err := NewVertexBuffer(dev, []float32{0, 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"GenBuffers", "BindBuffer(0x8892,1)", "BufferData"}, dev.calls)
}

func TestUploadErrorReleasesHandle(t *testing.T) {
	dev := newFakeDevice()
	dev.failOn = "BufferData"

	vb, err := NewVertexBuffer(dev, []float32{0, 1})
	require.Error(t, err)
	assert.Nil(t, vb)

	var glErr *glerr.Error
	require.ErrorAs(t, err, &glErr)
	assert.Equal(t, "glBufferData", glErr.Function)
	assert.Empty(t, dev.live)
}

func TestEmptyData(t *testing.T) {
	dev := newFakeDevice()
	ib, err := NewIndexBuffer(dev, nil)
	require.NoError(t, err)
	assert.Zero(t, ib.Count())
	assert.Zero(t, dev.sizes[ib.ID()])
}
