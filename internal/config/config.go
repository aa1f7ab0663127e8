// Package config loads the per-lesson window and shader settings.
package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type Window struct {
	Width        int    `yaml:"width"`
	Height       int    `yaml:"height"`
	Title        string `yaml:"title"`
	SwapInterval int    `yaml:"swap_interval"`

	// Context version hints. Zero leaves the driver default (a compatibility
	// context on most platforms).
	ContextMajor int  `yaml:"context_major"`
	ContextMinor int  `yaml:"context_minor"`
	CoreProfile  bool `yaml:"core_profile"`
}

type Config struct {
	Window Window `yaml:"window"`
	Shader string `yaml:"shader"`
}

func Default() *Config {
	return &Config{
		Window: Window{
			Width:        640,
			Height:       480,
			Title:        "Hello World",
			SwapInterval: 1,
		},
		Shader: "res/shaders/Basic.shader",
	}
}

// Load reads a YAML file over the defaults. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config")
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "parse config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, path)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return errors.Errorf("invalid window size %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Shader == "" {
		return errors.New("shader path is empty")
	}
	major, minor := c.Window.ContextMajor, c.Window.ContextMinor
	if c.Window.CoreProfile && (major < 3 || (major == 3 && minor < 2)) {
		return errors.Errorf("core profile needs context 3.2+, got %d.%d", major, minor)
	}
	return nil
}

// Core33 requests the OpenGL 3.3 core profile.
func (w Window) Core33() Window {
	w.ContextMajor = 3
	w.ContextMinor = 3
	w.CoreProfile = true
	return w
}
