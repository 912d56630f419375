package graphics

// Context defines the interface for an OpenGL context the background can
// draw into: a GLFW window or an EGL pbuffer.
type Context interface {
	MakeCurrent()
	Shutdown()
	ShouldClose() bool
	EndFrame()
	GetFramebufferSize() (int, int)
	Time() float64
	// IsGLES reports whether shaders must be emitted as ESSL.
	IsGLES() bool
}
