package testbed

import (
	"github.com/spaghettifunk/anima-cube/engine"
	"github.com/spaghettifunk/anima-cube/engine/containers"
	"github.com/spaghettifunk/anima-cube/engine/core"
)

const (
	// reportInterval is how often, in seconds, the frame rate is logged.
	reportInterval = 1.0
	// frameWindow is how many recent frame times are averaged.
	frameWindow = 60
)

type TestGame struct {
	*engine.Game
}

type gameState struct {
	width  uint32
	height uint32

	frames      uint64
	totalFrames uint64
	sinceReport float64
	fps         float64

	frameTimes   *containers.RingQueue[float64]
	frameTimeSum float64
}

func NewTestGame(config *engine.ApplicationConfig) (*TestGame, error) {
	tg := &TestGame{
		Game: &engine.Game{
			ApplicationConfig: config,
			State: &gameState{
				width:      uint32(config.Window.Width),
				height:     uint32(config.Window.Height),
				frameTimes: containers.NewRingQueue[float64](frameWindow),
			},
		},
	}

	tg.FnInitialize = tg.Initialize
	tg.FnUpdate = tg.Update
	tg.FnOnResize = tg.OnResize
	tg.FnShutdown = tg.Shutdown

	return tg, nil
}

func (g *TestGame) Initialize() error {
	state := g.State.(*gameState)
	core.LogInfo("Cube ready at %dx%d. Esc quits, F11 toggles fullscreen.", state.width, state.height)
	return nil
}

func (g *TestGame) Update(deltaTime float64) error {
	state := g.State.(*gameState)

	if state.frameTimes.IsFull() {
		oldest, _ := state.frameTimes.Dequeue()
		state.frameTimeSum -= oldest
	}
	_ = state.frameTimes.Enqueue(deltaTime)
	state.frameTimeSum += deltaTime

	state.frames++
	state.totalFrames++
	state.sinceReport += deltaTime
	if state.sinceReport >= reportInterval {
		state.fps = float64(state.frames) / state.sinceReport
		core.LogDebug("FPS: %5.1f (avg frame %4.1fms)", state.fps, 1000.0*g.AverageFrameTime())
		state.frames = 0
		state.sinceReport = 0
	}
	return nil
}

// AverageFrameTime is the mean of the most recent frame times in seconds.
func (g *TestGame) AverageFrameTime() float64 {
	state := g.State.(*gameState)
	if state.frameTimes.IsEmpty() {
		return 0
	}
	return state.frameTimeSum / float64(state.frameTimes.Len())
}

func (g *TestGame) OnResize(width uint32, height uint32) error {
	state := g.State.(*gameState)

	state.width = width
	state.height = height
	core.LogInfo("Window resized to %dx%d", width, height)
	return nil
}

func (g *TestGame) Shutdown() error {
	state := g.State.(*gameState)
	core.LogInfo("Rendered %d frames", state.totalFrames)
	return nil
}

// FPS is the frame rate measured over the last report interval.
func (g *TestGame) FPS() float64 {
	return g.State.(*gameState).fps
}

func (g *TestGame) Size() (uint32, uint32) {
	state := g.State.(*gameState)
	return state.width, state.height
}
