package renderer

import (
	"fmt"
	"image"
	"sync"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/richinsley/gobackdrop/clock"
	"github.com/richinsley/gobackdrop/graphics"
	"github.com/richinsley/gobackdrop/shader"
)

// GL_CONTEXT_LOST from KHR_robustness; not exported by the 4.1 core binding.
const glContextLost = 0x0507

var (
	glInitOnce sync.Once
	glInitErr  error
)

var quadVertices = []float32{
	-1.0, 1.0, -1.0, -1.0, 1.0, -1.0,
	-1.0, 1.0, 1.0, -1.0, 1.0, 1.0,
}

// GLDevice draws the background with OpenGL into an offscreen framebuffer.
// When present is set, each frame is also blitted to the context's default
// framebuffer, stretched to its full size. All methods must be called on the
// thread that owns the context.
type GLDevice struct {
	context     graphics.Context
	present     bool
	quadVAO     uint32
	quadVBO     uint32
	pass        *RenderPass
	blitProgram uint32
	offscreen   *OffscreenRenderer
	surface     Surface
}

// ContextClock returns an animation clock driven by the context's own timer,
// reading zero at the call.
func ContextClock(ctx graphics.Context) clock.Clock {
	return clock.Since(ctx.Time)
}

func NewGLDevice(ctx graphics.Context, present bool) *GLDevice {
	return &GLDevice{context: ctx, present: present}
}

func (d *GLDevice) Init(s Surface) error {
	if d.context == nil {
		return fmt.Errorf("%w: no graphics context", ErrNoContext)
	}
	d.context.MakeCurrent()

	glInitOnce.Do(func() {
		glInitErr = gl.Init()
	})
	if glInitErr != nil {
		return fmt.Errorf("%w: failed to initialize OpenGL: %w", ErrNoContext, glInitErr)
	}
	logger.Debugf("OpenGL version %s", gl.GoStr(gl.GetString(gl.VERSION)))

	d.surface = s
	return d.build()
}

func (d *GLDevice) build() error {
	gl.GenVertexArrays(1, &d.quadVAO)
	gl.GenBuffers(1, &d.quadVBO)
	gl.BindVertexArray(d.quadVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, d.quadVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(quadVertices)*4, gl.Ptr(quadVertices), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 2*4, gl.PtrOffset(0))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	var err error
	d.pass, err = newRenderPass(d.context.IsGLES())
	if err != nil {
		return err
	}

	if d.present {
		d.blitProgram, err = newProgram(shader.GenerateVertexShader(d.context.IsGLES()), shader.GetBlitFragmentShader(d.context.IsGLES()))
		if err != nil {
			return fmt.Errorf("failed to create blit program: %w", err)
		}
	}

	d.offscreen, err = NewOffscreenRenderer(d.surface.Width, d.surface.Height)
	if err != nil {
		return fmt.Errorf("failed to create offscreen renderer: %w", err)
	}
	return d.checkError()
}

func (d *GLDevice) Resize(s Surface) error {
	if d.offscreen == nil {
		return ErrContextLost
	}
	if err := d.offscreen.Resize(s.Width, s.Height); err != nil {
		return err
	}
	d.surface = s
	return nil
}

func (d *GLDevice) Draw(u Uniforms) error {
	if d.pass == nil || d.offscreen == nil {
		return ErrContextLost
	}

	gl.BindFramebuffer(gl.FRAMEBUFFER, d.offscreen.fbo)
	gl.Viewport(0, 0, int32(d.surface.Width), int32(d.surface.Height))
	gl.Disable(gl.BLEND)
	gl.UseProgram(d.pass.ShaderProgram)
	d.pass.updateUniforms(u)
	gl.BindVertexArray(d.quadVAO)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)

	if d.present {
		fbWidth, fbHeight := d.context.GetFramebufferSize()
		gl.Viewport(0, 0, int32(fbWidth), int32(fbHeight))
		gl.Clear(gl.COLOR_BUFFER_BIT)
		gl.UseProgram(d.blitProgram)
		gl.ActiveTexture(gl.TEXTURE0)
		gl.BindTexture(gl.TEXTURE_2D, d.offscreen.textureID)
		gl.DrawArrays(gl.TRIANGLES, 0, 6)
		gl.BindTexture(gl.TEXTURE_2D, 0)
	}
	gl.BindVertexArray(0)

	return d.checkError()
}

// checkError drains the GL error queue. A lost context maps to
// ErrContextLost; anything else is reported with its code.
func (d *GLDevice) checkError() error {
	var first uint32
	for i := 0; i < 8; i++ {
		e := gl.GetError()
		if e == gl.NO_ERROR {
			break
		}
		if e == glContextLost {
			return ErrContextLost
		}
		if first == 0 {
			first = e
		}
	}
	if first == gl.OUT_OF_MEMORY {
		return fmt.Errorf("%w: out of memory", ErrContextLost)
	}
	if first != 0 {
		return fmt.Errorf("gl error 0x%x", first)
	}
	return nil
}

func (d *GLDevice) Restore() error {
	if d.context == nil {
		return ErrNoContext
	}
	d.context.MakeCurrent()
	d.destroy()
	return d.build()
}

func (d *GLDevice) ReadFrame() (*image.NRGBA, error) {
	if d.offscreen == nil {
		return nil, ErrContextLost
	}
	img := d.offscreen.ReadPixels()
	return img, d.checkError()
}

func (d *GLDevice) destroy() {
	d.pass.Destroy()
	d.pass = nil
	if d.blitProgram != 0 {
		gl.DeleteProgram(d.blitProgram)
		d.blitProgram = 0
	}
	d.offscreen.Destroy()
	d.offscreen = nil
	if d.quadVBO != 0 {
		gl.DeleteBuffers(1, &d.quadVBO)
		d.quadVBO = 0
	}
	if d.quadVAO != 0 {
		gl.DeleteVertexArrays(1, &d.quadVAO)
		d.quadVAO = 0
	}
}

// Release frees the GL objects. The context itself belongs to the host.
func (d *GLDevice) Release() {
	if d.context == nil || glInitErr != nil {
		return
	}
	d.destroy()
}
