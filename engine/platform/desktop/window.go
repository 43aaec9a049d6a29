package desktop

import (
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/spaghettifunk/anima-cube/engine/platform"
)

// Window implements platform.Surface on a GLFW window.
type Window struct {
	window *glfw.Window
}

var _ platform.Surface = (*Window)(nil)

func (w *Window) Pos() (int, int) {
	return w.window.GetPos()
}

func (w *Window) SetPos(x, y int) {
	w.window.SetPos(x, y)
}

func (w *Window) Size() (int, int) {
	return w.window.GetSize()
}

func (w *Window) FramebufferSize() (int, int) {
	return w.window.GetFramebufferSize()
}

func (w *Window) MakeContextCurrent() {
	w.window.MakeContextCurrent()
}

func (w *Window) Show() {
	w.window.Show()
}

func (w *Window) ShouldClose() bool {
	return w.window.ShouldClose()
}

func (w *Window) SetShouldClose(value bool) {
	w.window.SetShouldClose(value)
}

// SetKeyCallback translates GLFW keys into engine key codes. Keys without an
// engine code are dropped. A nil cb removes the callback.
func (w *Window) SetKeyCallback(cb platform.KeyCallback) {
	if cb == nil {
		w.window.SetKeyCallback(nil)
		return
	}
	w.window.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		code, ok := translateKey(key)
		if !ok {
			return
		}
		switch action {
		case glfw.Press:
			cb(code, platform.KeyActionPress)
		case glfw.Release:
			cb(code, platform.KeyActionRelease)
		case glfw.Repeat:
			cb(code, platform.KeyActionRepeat)
		}
	})
}

// SetSizeCallback reports framebuffer sizes, which differ from window sizes
// on high-DPI displays.
func (w *Window) SetSizeCallback(cb platform.SizeCallback) {
	if cb == nil {
		w.window.SetFramebufferSizeCallback(nil)
		return
	}
	w.window.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		cb(width, height)
	})
}

func (w *Window) SetFullscreen(mode platform.VideoMode) {
	w.window.SetMonitor(glfw.GetPrimaryMonitor(), 0, 0, mode.Width, mode.Height, mode.RefreshRate)
}

func (w *Window) SetWindowed(x, y, width, height int) {
	w.window.SetMonitor(nil, x, y, width, height, glfw.DontCare)
}

func (w *Window) SwapBuffers() {
	w.window.SwapBuffers()
}

func (w *Window) Destroy() {
	w.window.Destroy()
}
