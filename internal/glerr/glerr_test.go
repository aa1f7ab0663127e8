package glerr

import (
	"bytes"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type queue struct {
	codes []uint32
	reads int
}

func (q *queue) get() uint32 {
	q.reads++
	if len(q.codes) == 0 {
		return NoError
	}
	c := q.codes[0]
	q.codes = q.codes[1:]
	return c
}

func newChecker(q *queue) (*Checker, *bytes.Buffer) {
	var buf bytes.Buffer
	c := New(q.get)
	c.Logger = log.New(&buf, "", 0)
	return c, &buf
}

func TestName(t *testing.T) {
	assert.Equal(t, "GL_INVALID_ENUM", Name(0x0500))
	assert.Equal(t, "GL_INVALID_OPERATION", Name(0x0502))
	assert.Equal(t, "GL_INVALID_FRAMEBUFFER_OPERATION", Name(0x0506))
	assert.Equal(t, "UNKNOWN", Name(42))
}

func TestClearDrainsQueue(t *testing.T) {
	q := &queue{codes: []uint32{0x0500, 0x0501, 0x0502}}
	c, _ := newChecker(q)
	c.Clear()
	assert.Empty(t, q.codes)
	assert.Equal(t, 4, q.reads)
}

func TestClearIsBounded(t *testing.T) {
	reads := 0
	c := New(func() uint32 {
		reads++
		return 0x0505
	})
	c.Clear()
	assert.Equal(t, maxDrain, reads)
}

func TestLogClean(t *testing.T) {
	c, buf := newChecker(&queue{})
	assert.NoError(t, c.Log("glClear", "main.go", 10))
	assert.Empty(t, buf.String())
}

func TestLogReportsFirstError(t *testing.T) {
	q := &queue{codes: []uint32{0x0500, 0x0502}}
	c, buf := newChecker(q)

	err := c.Log("glDrawElements", "main.go", 42)
	require.Error(t, err)

	var glErr *Error
	require.ErrorAs(t, err, &glErr)
	assert.Equal(t, uint32(0x0500), glErr.Code)
	assert.Equal(t, "glDrawElements", glErr.Function)
	assert.Equal(t, 42, glErr.Line)
	assert.Equal(t, "[OpenGL Error] (1280 GL_INVALID_ENUM): glDrawElements main.go:42\n", buf.String())
	assert.Len(t, q.codes, 1)
}

func TestCallClearsStaleErrors(t *testing.T) {
	q := &queue{codes: []uint32{0x0501}}
	c, _ := newChecker(q)

	ran := false
	err := c.Call("glClear", func() { ran = true })
	assert.True(t, ran)
	assert.NoError(t, err)
}

func TestCallReportsCallerLocation(t *testing.T) {
	q := &queue{}
	c, _ := newChecker(q)

	err := c.Call("glBindBuffer", func() { q.codes = append(q.codes, 0x0502) })
	var glErr *Error
	require.ErrorAs(t, err, &glErr)
	assert.Equal(t, "glerr_test.go", glErr.File)
	assert.NotZero(t, glErr.Line)
}

func TestMustPanics(t *testing.T) {
	q := &queue{}
	c, _ := newChecker(q)

	assert.NotPanics(t, func() { c.Must("glClear", func() {}) })
	assert.Panics(t, func() {
		c.Must("glDrawElements", func() { q.codes = append(q.codes, 0x0500) })
	})
}

func TestNilCheckerRunsUnchecked(t *testing.T) {
	var c *Checker
	ran := 0
	assert.NoError(t, c.Call("glClear", func() { ran++ }))
	assert.NotPanics(t, func() { c.Must("glClear", func() { ran++ }) })
	c.Clear()
	assert.NoError(t, c.Log("glClear", "main.go", 1))
	assert.Equal(t, 2, ran)
}
