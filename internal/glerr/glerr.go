// Package glerr drains and reports the OpenGL error queue around driver calls.
package glerr

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
)

// NoError is GL_NO_ERROR.
const NoError uint32 = 0

// maxDrain bounds how many codes are read from the queue in one pass. A lost
// context can report errors forever.
const maxDrain = 64

var names = map[uint32]string{
	0x0500: "GL_INVALID_ENUM",
	0x0501: "GL_INVALID_VALUE",
	0x0502: "GL_INVALID_OPERATION",
	0x0503: "GL_STACK_OVERFLOW",
	0x0504: "GL_STACK_UNDERFLOW",
	0x0505: "GL_OUT_OF_MEMORY",
	0x0506: "GL_INVALID_FRAMEBUFFER_OPERATION",
}

// Name returns the GL enum name of an error code.
func Name(code uint32) string {
	if n, ok := names[code]; ok {
		return n
	}
	return "UNKNOWN"
}

// Error is a GL error raised by a single wrapped call.
type Error struct {
	Code     uint32
	Function string
	File     string
	Line     int
}

func (e *Error) Error() string {
	return fmt.Sprintf("[OpenGL Error] (%d %s): %s %s:%d", e.Code, Name(e.Code), e.Function, e.File, e.Line)
}

// Checker reads the error queue through GetError.
type Checker struct {
	getError func() uint32
	Logger   *log.Logger
}

func New(getError func() uint32) *Checker {
	return &Checker{
		getError: getError,
		Logger:   log.New(os.Stderr, "", 0),
	}
}

// Clear discards every pending error.
func (c *Checker) Clear() {
	if c == nil {
		return
	}
	for i := 0; i < maxDrain; i++ {
		if c.getError() == NoError {
			return
		}
	}
}

// Log reports the first pending error, if any, as raised by function at file:line.
func (c *Checker) Log(function, file string, line int) error {
	if c == nil {
		return nil
	}
	code := c.getError()
	if code == NoError {
		return nil
	}
	err := &Error{Code: code, Function: function, File: file, Line: line}
	c.Logger.Println(err.Error())
	return err
}

// Call clears the queue, runs fn and reports what fn left behind. A nil
// Checker runs fn unchecked.
func (c *Checker) Call(function string, fn func()) error {
	if c == nil {
		fn()
		return nil
	}
	c.Clear()
	fn()
	file, line := caller(2)
	return c.Log(function, file, line)
}

// Must is Call that panics on a GL error.
func (c *Checker) Must(function string, fn func()) {
	if c == nil {
		fn()
		return
	}
	c.Clear()
	fn()
	file, line := caller(2)
	if err := c.Log(function, file, line); err != nil {
		panic(err)
	}
}

func caller(skip int) (string, int) {
	_, file, line, ok := runtime.Caller(skip)
	if !ok {
		return "???", 0
	}
	return filepath.Base(file), line
}
