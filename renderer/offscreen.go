package renderer

import (
	"fmt"
	"image"

	gl "github.com/go-gl/gl/v4.1-core/gl"
)

// OffscreenRenderer is the RGBA8 framebuffer the background is drawn into
// at surface resolution.
type OffscreenRenderer struct {
	fbo       uint32
	textureID uint32
	width     int
	height    int
}

func NewOffscreenRenderer(width, height int) (*OffscreenRenderer, error) {
	or := &OffscreenRenderer{}
	gl.GenFramebuffers(1, &or.fbo)
	gl.GenTextures(1, &or.textureID)
	if err := or.Resize(width, height); err != nil {
		or.Destroy()
		return nil, err
	}
	return or, nil
}

// Resize reallocates the colour texture. The FBO keeps its attachment.
func (or *OffscreenRenderer) Resize(width, height int) error {
	gl.BindFramebuffer(gl.FRAMEBUFFER, or.fbo)
	gl.BindTexture(gl.TEXTURE_2D, or.textureID)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(width), int32(height), 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, or.textureID, 0)
	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	if status != gl.FRAMEBUFFER_COMPLETE {
		return fmt.Errorf("%w: offscreen fbo incomplete (0x%x)", ErrContextLost, status)
	}
	or.width = width
	or.height = height
	return nil
}

// ReadPixels copies the framebuffer into an image, flipping it so row 0 is
// the top of the frame.
func (or *OffscreenRenderer) ReadPixels() *image.NRGBA {
	stride := or.width * 4
	raw := make([]byte, stride*or.height)
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, or.fbo)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(or.width), int32(or.height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(raw))
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, 0)

	img := image.NewNRGBA(image.Rect(0, 0, or.width, or.height))
	for y := 0; y < or.height; y++ {
		src := raw[(or.height-1-y)*stride : (or.height-y)*stride]
		copy(img.Pix[y*img.Stride:], src)
	}
	return img
}

func (or *OffscreenRenderer) Destroy() {
	if or == nil {
		return
	}
	if or.fbo != 0 {
		gl.DeleteFramebuffers(1, &or.fbo)
		or.fbo = 0
	}
	if or.textureID != 0 {
		gl.DeleteTextures(1, &or.textureID)
		or.textureID = 0
	}
}
