package engine

import (
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/spaghettifunk/anima-cube/engine/assets"
	"github.com/spaghettifunk/anima-cube/engine/core"
	"github.com/spaghettifunk/anima-cube/engine/math"
	"github.com/spaghettifunk/anima-cube/engine/renderer"
	"github.com/spaghettifunk/anima-cube/engine/renderer/components"
	"github.com/spaghettifunk/anima-cube/engine/renderer/metadata"
	"github.com/spaghettifunk/anima-cube/engine/window"
)

// suspendedWait bounds how long a minimized window sleeps between event checks.
const suspendedWait = 10 * time.Millisecond

type Stage uint8

const (
	// Engine is in an uninitialized state
	EngineStageUninitialized Stage = iota
	// Engine resources are loaded and the loop may start
	EngineStageInitialized
	// Engine is currently running
	EngineStageRunning
	// The loop has exited or initialization failed
	EngineStageClosing
	// Every resource has been released
	EngineStageShutdown
)

func (s Stage) String() string {
	switch s {
	case EngineStageUninitialized:
		return "uninitialized"
	case EngineStageInitialized:
		return "initialized"
	case EngineStageRunning:
		return "running"
	case EngineStageClosing:
		return "closing"
	case EngineStageShutdown:
		return "shutdown"
	default:
		return "unknown"
	}
}

// Window is what the loop needs from the window manager.
type Window interface {
	PollEvents()
	WaitEvents(timeout time.Duration)
	ShouldClose() bool
	RequestClose()
	ToggleFullscreen() error
	ClearScreen()
	SwapBuffers()
	Projection() math.Mat4
	Input() *core.InputState
	Device() renderer.Device
	Events() *core.EventSystem
	Close() error
}

// AssetLoader is what the loop needs from the asset manager.
type AssetLoader interface {
	LoadShaderSource(name string) (string, error)
	LoadImage(name string) (*metadata.ImageResourceData, error)
	Changes() <-chan string
	Close() error
}

var (
	_ Window      = (*window.Manager)(nil)
	_ AssetLoader = (*assets.AssetManager)(nil)
)

var (
	rotationAxis   = math.NewVec3(1.0, 1.0, 0.0).Normalized()
	cameraPosition = math.NewVec3(0.0, 0.0, 3.0)
)

// ModelMatrix is the cube's orientation t seconds after the loop started.
func ModelMatrix(t float64) math.Mat4 {
	return math.NewMat4Identity().Mul(math.NewMat4AxisAngle(rotationAxis, float32(t)))
}

type Option func(*Engine)

// WithClock replaces the monotonic clock driving the animation.
func WithClock(clock *core.Clock) Option {
	return func(e *Engine) {
		e.clock = clock
	}
}

type Engine struct {
	id           uuid.UUID
	currentStage Stage
	gameInstance *Game
	config       *ApplicationConfig
	window       Window
	assets       AssetLoader
	changes      <-chan string
	clock        *core.Clock
	camera       *components.Camera
	lastTime     float64
	isSuspended  bool
	stop         atomic.Bool

	shader  *renderer.Shader
	mesh    *renderer.Mesh
	texture *renderer.Texture
}

func New(g *Game, win Window, loader AssetLoader, opts ...Option) (*Engine, error) {
	if g == nil || win == nil || loader == nil {
		return nil, fmt.Errorf("%w: game, window and asset loader are required", core.ErrInvalidConfig)
	}
	config := g.ApplicationConfig
	if config == nil {
		config = DefaultApplicationConfig()
	}

	e := &Engine{
		id:           uuid.New(),
		currentStage: EngineStageUninitialized,
		gameInstance: g,
		config:       config,
		window:       win,
		assets:       loader,
		clock:        core.NewClock(),
		camera:       components.NewCamera(cameraPosition),
	}
	for _, opt := range opts {
		opt(e)
	}
	if config.Assets.HotReload {
		e.changes = loader.Changes()
	}
	return e, nil
}

// Initialize loads the shader program, the cube mesh and its texture. On
// error the engine moves to EngineStageClosing and Run will not start.
func (e *Engine) Initialize() error {
	if e.currentStage != EngineStageUninitialized {
		return fmt.Errorf("initialize in stage %s: %w", e.currentStage, core.ErrNotInitialized)
	}
	core.LogInfo("Initializing engine session %s", e.id)

	if err := e.initialize(); err != nil {
		e.currentStage = EngineStageClosing
		return err
	}
	e.currentStage = EngineStageInitialized
	return nil
}

func (e *Engine) initialize() error {
	events := e.window.Events()
	events.Register(core.EVENT_CODE_APPLICATION_QUIT, e, e.onEvent)
	events.Register(core.EVENT_CODE_KEY_PRESSED, e, e.onKey)
	events.Register(core.EVENT_CODE_RESIZED, e, e.onResized)

	shader, err := e.loadShader()
	if err != nil {
		return err
	}
	e.shader = shader

	device := e.window.Device()
	e.mesh = renderer.NewCubeMesh(device)

	img, err := e.assets.LoadImage(e.config.Assets.Texture)
	if err != nil {
		return fmt.Errorf("loading texture %s: %w", e.config.Assets.Texture, err)
	}
	texture, err := renderer.NewTexture(device, e.config.Assets.Texture, img)
	if err != nil {
		return fmt.Errorf("uploading texture %s: %w", e.config.Assets.Texture, err)
	}
	e.texture = texture

	if e.gameInstance.FnInitialize != nil {
		if err := e.gameInstance.FnInitialize(); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) loadShader(opts ...renderer.ShaderOption) (*renderer.Shader, error) {
	vs, err := e.assets.LoadShaderSource(e.config.Assets.VertexShader)
	if err != nil {
		return nil, fmt.Errorf("loading vertex shader: %w", err)
	}
	fs, err := e.assets.LoadShaderSource(e.config.Assets.FragmentShader)
	if err != nil {
		return nil, fmt.Errorf("loading fragment shader: %w", err)
	}
	if e.config.Shader.Strict {
		opts = append(opts, renderer.WithStrictLinking())
	}
	return renderer.CompileShader(e.window.Device(), vs, fs, opts...)
}

// Run draws frames until the window is asked to close.
func (e *Engine) Run() error {
	if e.currentStage != EngineStageInitialized {
		return fmt.Errorf("run in stage %s: %w", e.currentStage, core.ErrNotInitialized)
	}
	e.currentStage = EngineStageRunning
	defer func() {
		e.currentStage = EngineStageClosing
	}()

	e.clock.Start()
	e.clock.Update()
	e.lastTime = e.clock.Elapsed()

	for !e.window.ShouldClose() {
		if err := e.frame(); err != nil {
			return err
		}
	}
	core.LogInfo("Render loop finished")
	return nil
}

func (e *Engine) frame() error {
	// nothing is swapped while minimized, so vsync no longer paces the loop
	if e.isSuspended {
		e.window.WaitEvents(suspendedWait)
	} else {
		e.window.PollEvents()
	}

	input := e.window.Input()
	if e.stop.Load() || input.IsKeyDown(core.KEY_ESCAPE) {
		e.window.Events().Fire(core.EVENT_CODE_APPLICATION_QUIT, e, core.EventContext{})
	}
	if input.IsKeyDown(core.KEY_F11) {
		if err := e.window.ToggleFullscreen(); err != nil {
			core.LogError("Failed to toggle fullscreen: %s", err)
		}
		input.Reset(core.KEY_F11)
	}

	e.clock.Update()
	currentTime := e.clock.Elapsed()
	delta := currentTime - e.lastTime
	e.lastTime = currentTime

	if e.gameInstance.FnUpdate != nil {
		if err := e.gameInstance.FnUpdate(delta); err != nil {
			return fmt.Errorf("game update failed: %w", err)
		}
	}
	e.reloadChangedShaders()

	if e.isSuspended {
		return nil
	}
	e.render(currentTime)
	return nil
}

func (e *Engine) render(t float64) {
	e.window.ClearScreen()

	e.mesh.Bind()
	e.shader.Use()

	e.shader.SetUniformMat4("projection", e.window.Projection())
	e.shader.SetUniformMat4("model", ModelMatrix(t))
	e.shader.SetUniformMat4("view", e.camera.GetView())

	e.texture.Bind(0)
	e.shader.SetUniformInt("texture_sampler", 0)

	e.mesh.Draw()

	e.mesh.Unbind()
	e.shader.Unbind()

	e.window.SwapBuffers()
}

// reloadChangedShaders drains pending change notifications and rebuilds the
// program when one of its sources changed. A failed rebuild keeps the
// running program.
func (e *Engine) reloadChangedShaders() {
	if e.changes == nil {
		return
	}
	reload := false
	for pending := true; pending; {
		select {
		case name, ok := <-e.changes:
			if !ok {
				e.changes = nil
				pending = false
				break
			}
			if name == e.config.Assets.VertexShader || name == e.config.Assets.FragmentShader {
				reload = true
			}
		default:
			pending = false
		}
	}
	if !reload {
		return
	}

	shader, err := e.loadShader(renderer.WithStrictLinking())
	if err != nil {
		core.LogError("Shader reload failed, keeping the previous program: %s", err)
		return
	}
	e.shader.Destroy()
	e.shader = shader
	core.LogInfo("Shader program reloaded")
}

// Stop asks the loop to exit after the current frame. Safe to call from any
// goroutine.
func (e *Engine) Stop() {
	e.stop.Store(true)
}

// Shutdown releases GPU resources in reverse order of creation and closes the
// window. Calling it again is a no-op.
func (e *Engine) Shutdown() error {
	if e.currentStage == EngineStageShutdown {
		return nil
	}
	e.currentStage = EngineStageShutdown

	var errs []error
	if e.gameInstance.FnShutdown != nil {
		if err := e.gameInstance.FnShutdown(); err != nil {
			errs = append(errs, err)
		}
	}
	if e.mesh != nil {
		e.mesh.Destroy()
	}
	if e.texture != nil {
		e.texture.Destroy()
	}
	if e.shader != nil {
		e.shader.Destroy()
	}
	if err := e.assets.Close(); err != nil && !errors.Is(err, core.ErrAlreadyClosed) {
		errs = append(errs, err)
	}
	e.window.Events().Unregister(core.EVENT_CODE_APPLICATION_QUIT, e)
	e.window.Events().Unregister(core.EVENT_CODE_KEY_PRESSED, e)
	e.window.Events().Unregister(core.EVENT_CODE_RESIZED, e)
	if err := e.window.Close(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (e *Engine) Stage() Stage {
	return e.currentStage
}

// Camera is the viewpoint the cube is drawn from.
func (e *Engine) Camera() *components.Camera {
	return e.camera
}

func (e *Engine) ID() uuid.UUID {
	return e.id
}

func (e *Engine) onEvent(code core.SystemEventCode, sender, listener interface{}, context core.EventContext) bool {
	switch code {
	case core.EVENT_CODE_APPLICATION_QUIT:
		core.LogInfo("EVENT_CODE_APPLICATION_QUIT received, shutting down.")
		e.window.RequestClose()
		return true
	}
	return false
}

func (e *Engine) onKey(code core.SystemEventCode, sender, listener interface{}, context core.EventContext) bool {
	core.LogDebug("key 0x%02X pressed", context.Data.U16[0])
	return false
}

func (e *Engine) onResized(code core.SystemEventCode, sender, listener interface{}, context core.EventContext) bool {
	width := context.Data.U16[0]
	height := context.Data.U16[1]
	core.LogDebug("Window resize: %d, %d", width, height)

	// Handle minimization
	if width == 0 || height == 0 {
		if !e.isSuspended {
			core.LogInfo("Window minimized, suspending application.")
		}
		e.isSuspended = true
		return false
	}
	if e.isSuspended {
		core.LogInfo("Window restored, resuming application.")
		e.isSuspended = false
	}
	if e.gameInstance.FnOnResize != nil {
		if err := e.gameInstance.FnOnResize(uint32(width), uint32(height)); err != nil {
			core.LogError("Resize hook failed: %s", err)
		}
	}
	return false
}
