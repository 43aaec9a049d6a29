package window

import (
	"errors"
	"testing"
	"time"

	"github.com/spaghettifunk/anima-cube/engine/core"
	"github.com/spaghettifunk/anima-cube/engine/math"
	"github.com/spaghettifunk/anima-cube/engine/platform"
	"github.com/spaghettifunk/anima-cube/engine/renderer"
	"github.com/spaghettifunk/anima-cube/engine/renderer/metadata"
	"github.com/spaghettifunk/anima-cube/engine/renderer/rendertest"
)

type fakePlatform struct {
	initErr     error
	createErr   error
	modeErr     error
	mode        platform.VideoMode
	surface     *fakeSurface
	initCalls   int
	terminated  int
	swap        int
	pollHandler func()
	waits       []time.Duration
	fbScale     int
}

func (p *fakePlatform) Initialize() error {
	p.initCalls++
	return p.initErr
}

func (p *fakePlatform) CreateWindow(config platform.WindowConfig) (platform.Surface, error) {
	if p.createErr != nil {
		return nil, p.createErr
	}
	p.surface = &fakeSurface{config: config, width: config.Width, height: config.Height, fbScale: p.fbScale}
	return p.surface, nil
}

func (p *fakePlatform) PrimaryVideoMode() (platform.VideoMode, error) {
	return p.mode, p.modeErr
}

func (p *fakePlatform) SwapInterval(interval int) { p.swap = interval }

func (p *fakePlatform) PollEvents() {
	if p.pollHandler != nil {
		p.pollHandler()
	}
}

func (p *fakePlatform) WaitEvents(timeout time.Duration) {
	p.waits = append(p.waits, timeout)
	p.PollEvents()
}

func (p *fakePlatform) Terminate() { p.terminated++ }

type fakeSurface struct {
	config      platform.WindowConfig
	x, y        int
	width       int
	height      int
	current     bool
	visible     bool
	shouldClose bool
	destroyed   bool
	swaps       int
	monitor     *platform.VideoMode
	keyCb       platform.KeyCallback
	sizeCb      platform.SizeCallback
	fbScale     int
}

func (s *fakeSurface) Pos() (int, int) { return s.x, s.y }
func (s *fakeSurface) SetPos(x, y int) { s.x, s.y = x, y }
func (s *fakeSurface) Size() (int, int) { return s.width, s.height }
func (s *fakeSurface) FramebufferSize() (int, int) {
	if s.fbScale > 1 {
		return s.width * s.fbScale, s.height * s.fbScale
	}
	return s.width, s.height
}
func (s *fakeSurface) MakeContextCurrent() { s.current = true }
func (s *fakeSurface) Show() { s.visible = true }
func (s *fakeSurface) ShouldClose() bool { return s.shouldClose }
func (s *fakeSurface) SetShouldClose(value bool) { s.shouldClose = value }
func (s *fakeSurface) SetKeyCallback(cb platform.KeyCallback) { s.keyCb = cb }
func (s *fakeSurface) SetSizeCallback(cb platform.SizeCallback) { s.sizeCb = cb }
func (s *fakeSurface) SwapBuffers() { s.swaps++ }
func (s *fakeSurface) Destroy() { s.destroyed = true }

func (s *fakeSurface) SetFullscreen(mode platform.VideoMode) {
	s.monitor = &mode
	s.x, s.y, s.width, s.height = 0, 0, mode.Width, mode.Height
}

func (s *fakeSurface) SetWindowed(x, y, width, height int) {
	s.monitor = nil
	s.x, s.y, s.width, s.height = x, y, width, height
}

func newPlatform() *fakePlatform {
	return &fakePlatform{mode: platform.VideoMode{Width: 1920, Height: 1080, RefreshRate: 60}}
}

func defaultConfig() Config {
	return Config{Width: 800, Height: 600, Title: "My Game", VSync: true}
}

func createManager(t *testing.T, p *fakePlatform) (*Manager, *rendertest.Device) {
	t.Helper()
	device := rendertest.NewDevice()
	m, err := Create(defaultConfig(), p, func() (renderer.Device, error) { return device, nil })
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	return m, device
}

func TestCreate(t *testing.T) {
	p := newPlatform()
	m, device := createManager(t, p)

	s := p.surface
	if s.config.ContextMajor != 4 || s.config.ContextMinor != 6 {
		t.Errorf("context version = %d.%d, want 4.6", s.config.ContextMajor, s.config.ContextMinor)
	}
	if s.x != 560 || s.y != 240 {
		t.Errorf("window position = (%d,%d), want (560,240)", s.x, s.y)
	}
	if !s.current || !s.visible {
		t.Errorf("current=%v visible=%v, want both true", s.current, s.visible)
	}
	if p.swap != 1 {
		t.Errorf("swap interval = %d, want 1", p.swap)
	}
	if device.ViewportSize != [2]int32{800, 600} {
		t.Errorf("viewport = %v, want [800 600]", device.ViewportSize)
	}
	want := []metadata.Capability{metadata.CapabilityBlend, metadata.CapabilityDepthTest, metadata.CapabilityStencilTest}
	for _, c := range want {
		if !device.Enabled[c] {
			t.Errorf("capability %d not enabled", c)
		}
	}
	if len(device.Enabled) != len(want) {
		t.Errorf("enabled capabilities = %v, want blend, depth and stencil", device.Enabled)
	}
	if s.keyCb == nil || s.sizeCb == nil {
		t.Error("callbacks not installed")
	}
	if got := m.WindowedBounds(); got != (Bounds{X: 560, Y: 240, Width: 800, Height: 600}) {
		t.Errorf("windowed bounds = %+v", got)
	}
}

func TestCreateHighDPIUsesFramebufferSize(t *testing.T) {
	p := newPlatform()
	p.fbScale = 2
	m, device := createManager(t, p)

	if device.ViewportSize != [2]int32{1600, 1200} {
		t.Errorf("viewport = %v, want [1600 1200]", device.ViewportSize)
	}
	if m.Width() != 1600 || m.Height() != 1200 {
		t.Errorf("size = %dx%d, want 1600x1200", m.Width(), m.Height())
	}
	want := math.NewMat4Perspective(math.DegToRad(60), 4.0/3.0, 0.1, 1000)
	if !m.Projection().Compare(want, 1e-6) {
		t.Errorf("projection = %v, want aspect 4/3 perspective", m.Projection())
	}
	// centering and the saved bounds stay in window coordinates
	if got := m.WindowedBounds(); got != (Bounds{X: 560, Y: 240, Width: 800, Height: 600}) {
		t.Errorf("windowed bounds = %+v", got)
	}
}

func TestCreateWithoutVSync(t *testing.T) {
	p := newPlatform()
	p.swap = -1
	cfg := defaultConfig()
	cfg.VSync = false
	if _, err := Create(cfg, p, func() (renderer.Device, error) { return rendertest.NewDevice(), nil }); err != nil {
		t.Fatal(err)
	}
	if p.swap != 0 {
		t.Errorf("swap interval = %d, want 0", p.swap)
	}
}

func TestCreateCentersOnSmallDisplay(t *testing.T) {
	p := newPlatform()
	p.mode = platform.VideoMode{Width: 640, Height: 480, RefreshRate: 60}
	createManager(t, p)
	if p.surface.x != 0 || p.surface.y != 0 {
		t.Errorf("window position = (%d,%d), want (0,0)", p.surface.x, p.surface.y)
	}
}

func TestCreateFailures(t *testing.T) {
	deviceErr := errors.New("no function pointers")

	tests := []struct {
		name          string
		setup         func(p *fakePlatform)
		deviceErr     error
		want          error
		wantDestroyed bool
	}{
		{
			name:  "platform init",
			setup: func(p *fakePlatform) { p.initErr = core.ErrPlatformInit },
			want:  core.ErrPlatformInit,
		},
		{
			name:  "window creation",
			setup: func(p *fakePlatform) { p.createErr = core.ErrWindowCreate },
			want:  core.ErrWindowCreate,
		},
		{
			name:          "video mode",
			setup:         func(p *fakePlatform) { p.modeErr = core.ErrVideoMode },
			want:          core.ErrVideoMode,
			wantDestroyed: true,
		},
		{
			name:          "device",
			setup:         func(p *fakePlatform) {},
			deviceErr:     deviceErr,
			want:          deviceErr,
			wantDestroyed: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newPlatform()
			tt.setup(p)
			m, err := Create(defaultConfig(), p, func() (renderer.Device, error) {
				if tt.deviceErr != nil {
					return nil, tt.deviceErr
				}
				return rendertest.NewDevice(), nil
			})
			if !errors.Is(err, tt.want) {
				t.Fatalf("Create() error = %v, want %v", err, tt.want)
			}
			if m != nil {
				t.Error("Create() returned a manager on failure")
			}
			if tt.wantDestroyed && !p.surface.destroyed {
				t.Error("window not destroyed on failure")
			}
			if p.surface != nil && p.surface.visible {
				t.Error("window shown on failure")
			}
		})
	}
}

func TestResizeUpdatesProjection(t *testing.T) {
	p := newPlatform()
	m, device := createManager(t, p)

	var resized [2]uint16
	m.Events().Register(core.EVENT_CODE_RESIZED, t, func(code core.SystemEventCode, sender, listener interface{}, data core.EventContext) bool {
		resized = [2]uint16{data.Data.U16[0], data.Data.U16[1]}
		return true
	})

	p.surface.sizeCb(1024, 512)

	if m.Width() != 1024 || m.Height() != 512 {
		t.Errorf("size = %dx%d, want 1024x512", m.Width(), m.Height())
	}
	want := math.NewMat4Perspective(math.DegToRad(60), 2.0, 0.1, 1000)
	if !m.Projection().Compare(want, 1e-6) {
		t.Errorf("projection = %v, want aspect 2 perspective", m.Projection())
	}
	// x scale over y scale is the inverse aspect
	proj := m.Projection()
	if ratio := proj.Data[5] / proj.Data[0]; ratio < 1.999 || ratio > 2.001 {
		t.Errorf("aspect from projection = %f, want 2", ratio)
	}
	if device.ViewportSize != [2]int32{1024, 512} {
		t.Errorf("viewport = %v, want [1024 512]", device.ViewportSize)
	}
	if resized != [2]uint16{1024, 512} {
		t.Errorf("resized event = %v", resized)
	}
}

func TestResizeToZeroHeightKeepsProjection(t *testing.T) {
	p := newPlatform()
	m, _ := createManager(t, p)
	before := m.Projection()

	p.surface.sizeCb(800, 0)

	if m.Projection() != before {
		t.Error("projection changed for zero-height window")
	}
	if m.Height() != 0 {
		t.Errorf("height = %d, want 0", m.Height())
	}
}

func TestFullscreenRoundTrip(t *testing.T) {
	p := newPlatform()
	m, _ := createManager(t, p)
	p.surface.SetPos(100, 50)

	var toggles []uint8
	m.Events().Register(core.EVENT_CODE_FULLSCREEN_TOGGLED, t, func(code core.SystemEventCode, sender, listener interface{}, data core.EventContext) bool {
		toggles = append(toggles, data.Data.U8[0])
		return false
	})

	if err := m.ToggleFullscreen(); err != nil {
		t.Fatal(err)
	}
	if !m.IsFullscreen() {
		t.Fatal("not fullscreen after first toggle")
	}
	if p.surface.monitor == nil || *p.surface.monitor != p.mode {
		t.Errorf("fullscreen mode = %v, want %v", p.surface.monitor, p.mode)
	}
	if m.Width() != 1920 || m.Height() != 1080 {
		t.Errorf("fullscreen size = %dx%d", m.Width(), m.Height())
	}

	if err := m.ToggleFullscreen(); err != nil {
		t.Fatal(err)
	}
	if m.IsFullscreen() {
		t.Fatal("still fullscreen after second toggle")
	}
	s := p.surface
	if s.monitor != nil || s.x != 100 || s.y != 50 || s.width != 800 || s.height != 600 {
		t.Errorf("restored bounds = (%d,%d %dx%d)", s.x, s.y, s.width, s.height)
	}
	if m.Width() != 800 || m.Height() != 600 {
		t.Errorf("restored size = %dx%d", m.Width(), m.Height())
	}
	if len(toggles) != 2 || toggles[0] != 1 || toggles[1] != 0 {
		t.Errorf("fullscreen events = %v, want [1 0]", toggles)
	}
}

func TestFullscreenRoundTripHighDPI(t *testing.T) {
	p := newPlatform()
	p.fbScale = 2
	m, device := createManager(t, p)

	if err := m.ToggleFullscreen(); err != nil {
		t.Fatal(err)
	}
	if m.Width() != 3840 || m.Height() != 2160 {
		t.Errorf("fullscreen size = %dx%d, want 3840x2160", m.Width(), m.Height())
	}
	if device.ViewportSize != [2]int32{3840, 2160} {
		t.Errorf("fullscreen viewport = %v, want [3840 2160]", device.ViewportSize)
	}

	if err := m.ToggleFullscreen(); err != nil {
		t.Fatal(err)
	}
	if s := p.surface; s.width != 800 || s.height != 600 {
		t.Errorf("restored window = %dx%d, want 800x600", s.width, s.height)
	}
	if device.ViewportSize != [2]int32{1600, 1200} {
		t.Errorf("restored viewport = %v, want [1600 1200]", device.ViewportSize)
	}
	want := math.NewMat4Perspective(math.DegToRad(60), 4.0/3.0, 0.1, 1000)
	if !m.Projection().Compare(want, 1e-6) {
		t.Errorf("restored projection = %v", m.Projection())
	}
}

func TestFullscreenVideoModeError(t *testing.T) {
	p := newPlatform()
	m, _ := createManager(t, p)
	p.modeErr = core.ErrVideoMode

	if err := m.ToggleFullscreen(); !errors.Is(err, core.ErrVideoMode) {
		t.Fatalf("ToggleFullscreen() error = %v", err)
	}
	if m.IsFullscreen() {
		t.Error("fullscreen after failed toggle")
	}
}

func TestKeyCallback(t *testing.T) {
	p := newPlatform()
	m, _ := createManager(t, p)
	p.pollHandler = func() {
		p.surface.keyCb(core.KEY_ESCAPE, platform.KeyActionPress)
	}

	m.PollEvents()
	if !m.Input().IsKeyDown(core.KEY_ESCAPE) {
		t.Fatal("escape not down after press")
	}

	// repeats leave state untouched
	p.surface.keyCb(core.KEY_ESCAPE, platform.KeyActionRepeat)
	if !m.Input().IsKeyDown(core.KEY_ESCAPE) {
		t.Error("escape released by repeat")
	}

	p.surface.keyCb(core.KEY_ESCAPE, platform.KeyActionRelease)
	if m.Input().IsKeyDown(core.KEY_ESCAPE) {
		t.Error("escape still down after release")
	}
}

func TestWaitEvents(t *testing.T) {
	p := newPlatform()
	m, _ := createManager(t, p)
	polled := 0
	p.pollHandler = func() { polled++ }

	m.WaitEvents(10 * time.Millisecond)

	if len(p.waits) != 1 || p.waits[0] != 10*time.Millisecond {
		t.Errorf("waits = %v, want [10ms]", p.waits)
	}
	if polled != 1 {
		t.Errorf("callbacks dispatched %d times, want 1", polled)
	}
}

func TestRequestClose(t *testing.T) {
	p := newPlatform()
	m, _ := createManager(t, p)
	if m.ShouldClose() {
		t.Fatal("ShouldClose() before request")
	}
	m.RequestClose()
	if !m.ShouldClose() {
		t.Error("ShouldClose() = false after RequestClose")
	}
}

func TestClearAndSwap(t *testing.T) {
	p := newPlatform()
	m, device := createManager(t, p)
	m.ClearScreen()
	m.SwapBuffers()
	if device.ClearCount != 1 || p.surface.swaps != 1 {
		t.Errorf("clears=%d swaps=%d, want 1 and 1", device.ClearCount, p.surface.swaps)
	}
}

func TestClose(t *testing.T) {
	p := newPlatform()
	m, _ := createManager(t, p)

	if err := m.Close(); err != nil {
		t.Fatal(err)
	}
	s := p.surface
	if !s.destroyed || s.keyCb != nil || s.sizeCb != nil {
		t.Errorf("destroyed=%v keyCb=%v sizeCb=%v", s.destroyed, s.keyCb != nil, s.sizeCb != nil)
	}
	if p.terminated != 1 {
		t.Errorf("terminated %d times, want 1", p.terminated)
	}
	if err := m.Close(); !errors.Is(err, core.ErrAlreadyClosed) {
		t.Errorf("second Close() error = %v, want ErrAlreadyClosed", err)
	}
	if p.terminated != 1 {
		t.Errorf("terminated %d times after second Close, want 1", p.terminated)
	}
}
