package window

import (
	"fmt"
	"time"

	"github.com/spaghettifunk/anima-cube/engine/core"
	"github.com/spaghettifunk/anima-cube/engine/math"
	"github.com/spaghettifunk/anima-cube/engine/platform"
	"github.com/spaghettifunk/anima-cube/engine/renderer"
	"github.com/spaghettifunk/anima-cube/engine/renderer/metadata"
)

const (
	contextMajor = 4
	contextMinor = 6

	fovDegrees float32 = 60.0
	nearClip   float32 = 0.1
	farClip    float32 = 1000.0
)

type Config struct {
	Width  int
	Height int
	Title  string
	VSync  bool
}

// Bounds is a windowed position and size.
type Bounds struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Manager owns the native window, its graphics context and the state
// derived from it: projection, fullscreen mode and keyboard input.
type Manager struct {
	platform platform.Platform
	surface  platform.Surface
	device   renderer.Device

	title  string
	vsync  bool
	width  int
	height int

	fullscreen bool
	windowed   Bounds

	projection math.Mat4
	events     *core.EventSystem
	input      *core.InputState
	closed     bool
}

// DeviceFactory creates the graphics device once a context is current.
type DeviceFactory func() (renderer.Device, error)

// Create opens a hidden window, centers it on the primary display, makes its
// context current and configures the device before showing the window. On
// error nothing is left behind: the window is destroyed and the platform
// terminated.
func Create(cfg Config, p platform.Platform, newDevice DeviceFactory) (*Manager, error) {
	if err := p.Initialize(); err != nil {
		return nil, fmt.Errorf("initializing platform: %w", err)
	}

	surface, err := p.CreateWindow(platform.WindowConfig{
		Width:        cfg.Width,
		Height:       cfg.Height,
		Title:        cfg.Title,
		ContextMajor: contextMajor,
		ContextMinor: contextMinor,
	})
	if err != nil {
		p.Terminate()
		return nil, fmt.Errorf("creating window %q: %w", cfg.Title, err)
	}

	fail := func(err error) (*Manager, error) {
		surface.Destroy()
		p.Terminate()
		return nil, err
	}

	mode, err := p.PrimaryVideoMode()
	if err != nil {
		return fail(fmt.Errorf("querying primary display: %w", err))
	}
	x := math.Clamp((mode.Width-cfg.Width)/2, 0, mode.Width)
	y := math.Clamp((mode.Height-cfg.Height)/2, 0, mode.Height)
	surface.SetPos(x, y)

	surface.MakeContextCurrent()
	if cfg.VSync {
		p.SwapInterval(1)
	} else {
		p.SwapInterval(0)
	}

	device, err := newDevice()
	if err != nil {
		return fail(fmt.Errorf("creating graphics device: %w", err))
	}

	// no size callback arrives at startup, and on high-DPI displays the
	// framebuffer is larger than the window
	fbWidth, fbHeight := surface.FramebufferSize()

	events := core.NewEventSystem()
	m := &Manager{
		platform: p,
		surface:  surface,
		device:   device,
		title:    cfg.Title,
		vsync:    cfg.VSync,
		width:    fbWidth,
		height:   fbHeight,
		windowed: Bounds{X: x, Y: y, Width: cfg.Width, Height: cfg.Height},
		events:   events,
		input:    core.NewInputState(events),
	}

	device.Viewport(0, 0, int32(fbWidth), int32(fbHeight))
	device.Enable(metadata.CapabilityBlend)
	device.Enable(metadata.CapabilityDepthTest)
	device.Enable(metadata.CapabilityStencilTest)
	m.UpdateProjectionMatrix()

	info := device.Info()
	core.LogInfo("OpenGL version: %s", info.Version)
	core.LogInfo("OpenGL vendor: %s", info.Vendor)
	core.LogInfo("OpenGL renderer: %s", info.Renderer)

	surface.SetKeyCallback(m.onKey)
	surface.SetSizeCallback(m.onResize)
	surface.Show()

	return m, nil
}

func (m *Manager) onKey(key core.KeyCode, action platform.KeyAction) {
	switch action {
	case platform.KeyActionPress:
		m.input.ProcessKey(key, true)
	case platform.KeyActionRelease:
		m.input.ProcessKey(key, false)
	}
}

func (m *Manager) onResize(width, height int) {
	m.width = width
	m.height = height
	// a minimized window reports height 0
	if height > 0 {
		m.UpdateProjectionMatrix()
	}
	m.device.Viewport(0, 0, int32(width), int32(height))

	context := core.EventContext{}
	context.Data.U16[0] = uint16(width)
	context.Data.U16[1] = uint16(height)
	m.events.Fire(core.EVENT_CODE_RESIZED, m, context)
}

// UpdateProjectionMatrix recomputes the projection from the current size.
func (m *Manager) UpdateProjectionMatrix() {
	if m.height <= 0 {
		return
	}
	aspect := float32(m.width) / float32(m.height)
	m.projection = math.NewMat4Perspective(math.DegToRad(fovDegrees), aspect, nearClip, farClip)
}

// PollEvents runs pending key and resize callbacks on the calling goroutine.
func (m *Manager) PollEvents() {
	m.platform.PollEvents()
}

// WaitEvents blocks until an event arrives or the timeout elapses, then
// runs the pending callbacks like PollEvents.
func (m *Manager) WaitEvents(timeout time.Duration) {
	m.platform.WaitEvents(timeout)
}

func (m *Manager) ShouldClose() bool {
	return m.surface.ShouldClose()
}

func (m *Manager) RequestClose() {
	m.surface.SetShouldClose(true)
}

// ToggleFullscreen switches between windowed mode and covering the primary
// display. The windowed bounds are restored on the way back.
func (m *Manager) ToggleFullscreen() error {
	if m.fullscreen {
		b := m.windowed
		m.surface.SetWindowed(b.X, b.Y, b.Width, b.Height)
		m.fullscreen = false
		m.onResize(m.surface.FramebufferSize())
		m.fireFullscreen()
		return nil
	}

	mode, err := m.platform.PrimaryVideoMode()
	if err != nil {
		return fmt.Errorf("entering fullscreen: %w", err)
	}
	x, y := m.surface.Pos()
	w, h := m.surface.Size()
	m.windowed = Bounds{X: x, Y: y, Width: w, Height: h}
	m.surface.SetFullscreen(mode)
	m.fullscreen = true
	m.onResize(m.surface.FramebufferSize())
	m.fireFullscreen()
	return nil
}

func (m *Manager) fireFullscreen() {
	context := core.EventContext{}
	if m.fullscreen {
		context.Data.U8[0] = 1
	}
	m.events.Fire(core.EVENT_CODE_FULLSCREEN_TOGGLED, m, context)
}

// ClearScreen clears color and depth to opaque black.
func (m *Manager) ClearScreen() {
	m.device.Clear(0, 0, 0, 1)
}

func (m *Manager) SwapBuffers() {
	m.surface.SwapBuffers()
}

// Close releases the window and terminates the platform.
func (m *Manager) Close() error {
	if m.closed {
		return core.ErrAlreadyClosed
	}
	m.closed = true
	m.surface.SetKeyCallback(nil)
	m.surface.SetSizeCallback(nil)
	m.surface.Destroy()
	m.platform.Terminate()
	m.events.Shutdown()
	return nil
}

func (m *Manager) Width() int { return m.width }
func (m *Manager) Height() int { return m.height }
func (m *Manager) Title() string { return m.title }
func (m *Manager) IsFullscreen() bool { return m.fullscreen }
func (m *Manager) WindowedBounds() Bounds { return m.windowed }
func (m *Manager) Projection() math.Mat4 { return m.projection }
func (m *Manager) Input() *core.InputState { return m.input }
func (m *Manager) Device() renderer.Device { return m.device }
func (m *Manager) Events() *core.EventSystem { return m.events }
