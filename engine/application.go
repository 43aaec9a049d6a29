package engine

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/spaghettifunk/anima-cube/engine/core"
	"github.com/spaghettifunk/anima-cube/engine/window"
)

type ApplicationConfig struct {
	Window WindowConfig `toml:"window"`
	Assets AssetsConfig `toml:"assets"`
	Log    LogConfig    `toml:"log"`
	Shader ShaderConfig `toml:"shader"`
}

type WindowConfig struct {
	// Window starting width.
	Width int `toml:"width"`
	// Window starting height.
	Height int `toml:"height"`
	// The application name used in windowing.
	Title string `toml:"title"`
	VSync bool   `toml:"vsync"`
}

type AssetsConfig struct {
	// Root of the asset tree; every other path here is relative to it.
	Dir            string `toml:"dir"`
	VertexShader   string `toml:"vertex_shader"`
	FragmentShader string `toml:"fragment_shader"`
	Texture        string `toml:"texture"`
	// Recompile shaders when their files change on disk.
	HotReload bool `toml:"hot_reload"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

type ShaderConfig struct {
	// Fail startup when the program does not link or validate.
	Strict bool `toml:"strict"`
}

func DefaultApplicationConfig() *ApplicationConfig {
	return &ApplicationConfig{
		Window: WindowConfig{
			Width:  800,
			Height: 600,
			Title:  "My Game",
			VSync:  true,
		},
		Assets: AssetsConfig{
			Dir:            "assets",
			VertexShader:   "shaders/cube.vert",
			FragmentShader: "shaders/cube.frag",
			Texture:        "textures/crate.png",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// LoadApplicationConfig reads a TOML file over the defaults. A missing file
// yields the defaults.
func LoadApplicationConfig(path string) (*ApplicationConfig, error) {
	cfg := DefaultApplicationConfig()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		core.LogWarn("config file %s not found, using defaults", path)
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", core.ErrInvalidConfig, path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *ApplicationConfig) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", core.ErrInvalidConfig, c.Window.Width, c.Window.Height)
	}
	if c.Window.Title == "" {
		return fmt.Errorf("%w: empty window title", core.ErrInvalidConfig)
	}
	if c.Assets.VertexShader == "" || c.Assets.FragmentShader == "" || c.Assets.Texture == "" {
		return fmt.Errorf("%w: shader and texture assets are required", core.ErrInvalidConfig)
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	return nil
}

func (c *ApplicationConfig) LogLevel() (core.LogLevel, error) {
	return core.ParseLogLevel(c.Log.Level)
}

// WindowManagerConfig is the subset the window manager is created from.
func (c *ApplicationConfig) WindowManagerConfig() window.Config {
	return window.Config{
		Width:  c.Window.Width,
		Height: c.Window.Height,
		Title:  c.Window.Title,
		VSync:  c.Window.VSync,
	}
}
