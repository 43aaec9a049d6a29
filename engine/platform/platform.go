package platform

import (
	"time"

	"github.com/spaghettifunk/anima-cube/engine/core"
)

// KeyAction is what happened to a key in a single platform event.
type KeyAction uint8

const (
	KeyActionRelease KeyAction = iota
	KeyActionPress
	KeyActionRepeat
)

// VideoMode describes a display's current resolution and refresh rate.
type VideoMode struct {
	Width       int
	Height      int
	RefreshRate int
}

// WindowConfig is what the platform needs to create a window.
type WindowConfig struct {
	Width  int
	Height int
	Title  string
	// ContextMajor and ContextMinor request a core, forward-compatible
	// OpenGL context of at least this version.
	ContextMajor int
	ContextMinor int
}

type KeyCallback func(key core.KeyCode, action KeyAction)
type SizeCallback func(width, height int)

// Platform is the process-wide windowing layer.
type Platform interface {
	// Initialize is idempotent: calling it again after success is a no-op.
	Initialize() error
	// CreateWindow creates a hidden window with a graphics context.
	CreateWindow(config WindowConfig) (Surface, error)
	PrimaryVideoMode() (VideoMode, error)
	// SwapInterval applies to the current context.
	SwapInterval(interval int)
	// PollEvents dispatches pending events to window callbacks synchronously.
	PollEvents()
	// WaitEvents sleeps until an event arrives or the timeout elapses, then
	// dispatches like PollEvents.
	WaitEvents(timeout time.Duration)
	Terminate()
}

// Surface is a single native window and its context.
type Surface interface {
	Pos() (x, y int)
	SetPos(x, y int)
	Size() (width, height int)
	FramebufferSize() (width, height int)
	MakeContextCurrent()
	Show()
	ShouldClose() bool
	SetShouldClose(value bool)
	SetKeyCallback(cb KeyCallback)
	SetSizeCallback(cb SizeCallback)
	// SetFullscreen covers the primary display with mode.
	SetFullscreen(mode VideoMode)
	// SetWindowed leaves fullscreen at the given bounds.
	SetWindowed(x, y, width, height int)
	SwapBuffers()
	Destroy()
}
