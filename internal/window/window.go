// Package window opens a GLFW window with a current OpenGL context.
package window

import (
	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/pkg/errors"

	"github.com/FedericoTech/TCNOpenGL/internal/config"
)

// Open must be called from the main, locked OS thread.
func Open(cfg config.Window) (*glfw.Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, errors.Wrap(err, "failed to initialize glfw")
	}

	if cfg.ContextMajor > 0 {
		glfw.WindowHint(glfw.ContextVersionMajor, cfg.ContextMajor)
		glfw.WindowHint(glfw.ContextVersionMinor, cfg.ContextMinor)
	}
	if cfg.CoreProfile {
		glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
		glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	}

	window, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, errors.Wrap(err, "failed to create window")
	}
	window.MakeContextCurrent()
	glfw.SwapInterval(cfg.SwapInterval)

	if err := gl.Init(); err != nil {
		window.Destroy()
		glfw.Terminate()
		return nil, errors.Wrap(err, "failed to initialize gl")
	}

	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if key == glfw.KeyEscape && action == glfw.Press {
			w.SetShouldClose(true)
		}
	})

	return window, nil
}

func Close(window *glfw.Window) {
	window.Destroy()
	glfw.Terminate()
}
