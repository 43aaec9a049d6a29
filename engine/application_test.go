package engine

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spaghettifunk/anima-cube/engine/core"
	"github.com/spaghettifunk/anima-cube/engine/window"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadApplicationConfigMissingFile(t *testing.T) {
	quietLogs(t)
	cfg, err := LoadApplicationConfig(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if *cfg != *DefaultApplicationConfig() {
		t.Errorf("config = %+v, want defaults", cfg)
	}
}

func TestLoadApplicationConfig(t *testing.T) {
	path := writeConfig(t, `
[window]
width = 1280
height = 720
title = "Cube"
vsync = false

[assets]
dir = "data"
hot_reload = true

[log]
level = "debug"

[shader]
strict = true
`)
	cfg, err := LoadApplicationConfig(path)
	if err != nil {
		t.Fatal(err)
	}

	want := window.Config{Width: 1280, Height: 720, Title: "Cube", VSync: false}
	if got := cfg.WindowManagerConfig(); got != want {
		t.Errorf("window config = %+v, want %+v", got, want)
	}
	if cfg.Assets.Dir != "data" || !cfg.Assets.HotReload {
		t.Errorf("assets = %+v", cfg.Assets)
	}
	// unset keys keep their defaults
	if cfg.Assets.VertexShader != "shaders/cube.vert" || cfg.Assets.Texture != "textures/crate.png" {
		t.Errorf("asset names = %+v", cfg.Assets)
	}
	if level, err := cfg.LogLevel(); err != nil || level != core.DebugLevel {
		t.Errorf("LogLevel() = %v, %v", level, err)
	}
	if !cfg.Shader.Strict {
		t.Error("shader.strict not read")
	}
}

func TestLoadApplicationConfigInvalid(t *testing.T) {
	tests := []struct {
		name     string
		contents string
	}{
		{name: "zero width", contents: "[window]\nwidth = 0\n"},
		{name: "negative height", contents: "[window]\nheight = -1\n"},
		{name: "empty title", contents: "[window]\ntitle = \"\"\n"},
		{name: "unknown level", contents: "[log]\nlevel = \"loud\"\n"},
		{name: "no texture", contents: "[assets]\ntexture = \"\"\n"},
		{name: "malformed", contents: "[window\nwidth = 3"},
		{name: "wrong type", contents: "[window]\nwidth = \"wide\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadApplicationConfig(writeConfig(t, tt.contents))
			if !errors.Is(err, core.ErrInvalidConfig) {
				t.Errorf("LoadApplicationConfig() error = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestLogLevelUnknown(t *testing.T) {
	cfg := DefaultApplicationConfig()
	cfg.Log.Level = "loud"

	level, err := cfg.LogLevel()
	if !errors.Is(err, core.ErrInvalidConfig) {
		t.Errorf("LogLevel() error = %v, want ErrInvalidConfig", err)
	}
	if level != core.InfoLevel {
		t.Errorf("LogLevel() = %v, want info fallback", level)
	}
}
