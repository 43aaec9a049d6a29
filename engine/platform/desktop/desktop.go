package desktop

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/spaghettifunk/anima-cube/engine/core"
	"github.com/spaghettifunk/anima-cube/engine/platform"
)

func init() {
	// GLFW event handling must run on the main OS thread
	runtime.LockOSThread()
}

var (
	initMu      sync.Mutex
	initialized bool
)

// Platform implements platform.Platform on GLFW.
type Platform struct{}

var _ platform.Platform = (*Platform)(nil)

func New() *Platform {
	return &Platform{}
}

func (p *Platform) Initialize() error {
	initMu.Lock()
	defer initMu.Unlock()
	if initialized {
		return nil
	}
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("%w: %v", core.ErrPlatformInit, err)
	}
	initialized = true
	return nil
}

func (p *Platform) CreateWindow(config platform.WindowConfig) (platform.Surface, error) {
	glfw.DefaultWindowHints()
	glfw.WindowHint(glfw.Visible, glfw.False)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, config.ContextMajor)
	glfw.WindowHint(glfw.ContextVersionMinor, config.ContextMinor)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(config.Width, config.Height, config.Title, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrWindowCreate, err)
	}
	return &Window{window: window}, nil
}

func (p *Platform) PrimaryVideoMode() (platform.VideoMode, error) {
	monitor := glfw.GetPrimaryMonitor()
	if monitor == nil {
		return platform.VideoMode{}, fmt.Errorf("%w: no primary monitor", core.ErrVideoMode)
	}
	mode := monitor.GetVideoMode()
	if mode == nil {
		return platform.VideoMode{}, core.ErrVideoMode
	}
	return platform.VideoMode{
		Width:       mode.Width,
		Height:      mode.Height,
		RefreshRate: mode.RefreshRate,
	}, nil
}

func (p *Platform) SwapInterval(interval int) {
	glfw.SwapInterval(interval)
}

func (p *Platform) PollEvents() {
	glfw.PollEvents()
}

func (p *Platform) WaitEvents(timeout time.Duration) {
	glfw.WaitEventsTimeout(timeout.Seconds())
}

func (p *Platform) Terminate() {
	initMu.Lock()
	defer initMu.Unlock()
	if !initialized {
		return
	}
	glfw.Terminate()
	initialized = false
}
