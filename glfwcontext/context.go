package glfwcontext

import (
	"runtime"

	glfw "github.com/go-gl/glfw/v3.3/glfw"
	"github.com/richinsley/gobackdrop/log"
)

var logger = log.New("glfw")

// Context is a visible GLFW window. Window size callbacks report logical
// (CSS-like) pixels; the content scale is the device pixel ratio.
type Context struct {
	window *glfw.Window
	// A map to store functions to be called on key presses.
	keyCallbacks   map[glfw.Key]func()
	onResize       func(width, height int)
	onContentScale func(scale float64)
}

// New creates a resizable window with a GL 4.1 core context and vsync on.
func New(width, height int, title string) (*Context, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.ScaleToMonitor, glfw.True)
	glfw.WindowHint(glfw.TransparentFramebuffer, glfw.True)

	win, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		return nil, err
	}

	c := &Context{
		window:       win,
		keyCallbacks: make(map[glfw.Key]func()),
	}

	win.SetKeyCallback(c.glfwKeyCallback)
	win.SetSizeCallback(func(_ *glfw.Window, w, h int) {
		if c.onResize != nil {
			c.onResize(w, h)
		}
	})
	win.SetContentScaleCallback(func(_ *glfw.Window, x, _ float32) {
		if c.onContentScale != nil {
			c.onContentScale(float64(x))
		}
	})

	win.MakeContextCurrent()
	glfw.SwapInterval(1)
	return c, nil
}

// RegisterKeyCallback allows the main application to register a function to be
// called when a specific key is pressed.
func (c *Context) RegisterKeyCallback(key glfw.Key, f func()) {
	c.keyCallbacks[key] = f
}

// OnResize registers the handler for window size changes in logical pixels.
func (c *Context) OnResize(f func(width, height int)) {
	c.onResize = f
}

// OnContentScale registers the handler for device pixel ratio changes.
func (c *Context) OnContentScale(f func(scale float64)) {
	c.onContentScale = f
}

func (c *Context) glfwKeyCallback(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if key == glfw.KeyEscape && action == glfw.Press {
		w.SetShouldClose(true)
	}

	if action == glfw.Press {
		if callback, ok := c.keyCallbacks[key]; ok {
			callback()
		}
	}
}

// GetWindowSize returns the window size in logical pixels.
func (c *Context) GetWindowSize() (int, int) {
	return c.window.GetSize()
}

// GetContentScale returns the horizontal content scale of the window.
func (c *Context) GetContentScale() float64 {
	x, _ := c.window.GetContentScale()
	return float64(x)
}

func (c *Context) IsGLES() bool {
	return false
}

func (c *Context) MakeCurrent() {
	c.window.MakeContextCurrent()
}

func (c *Context) Shutdown() {
	c.window.Destroy()
}

func (c *Context) ShouldClose() bool {
	return c.window.ShouldClose()
}

// EndFrame presents the frame and dispatches pending window events. With
// vsync on it returns at the display refresh rate.
func (c *Context) EndFrame() {
	c.window.SwapBuffers()
	glfw.PollEvents()
}

func (c *Context) GetFramebufferSize() (int, int) {
	return c.window.GetFramebufferSize()
}

func (c *Context) Time() float64 {
	return glfw.GetTime()
}

// InitGraphics initializes the main graphics subsystem (GLFW). Must be called from the main thread.
func InitGraphics() error {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		return err
	}
	logger.Info("GLFW initialized")
	return nil
}

// TerminateGraphics shuts down the graphics subsystem. Must be called from the main thread.
func TerminateGraphics() {
	glfw.Terminate()
	logger.Info("GLFW terminated")
}
