package renderer

import (
	"context"
	"image"

	"github.com/richinsley/gobackdrop/field"
)

// SoftwareDevice rasterizes the field on the CPU. It never loses its
// context, so it serves headless hosts and tests.
type SoftwareDevice struct {
	ctx     context.Context
	img     *image.NRGBA
	surface Surface
}

func NewSoftwareDevice(ctx context.Context) *SoftwareDevice {
	if ctx == nil {
		ctx = context.Background()
	}
	return &SoftwareDevice{ctx: ctx}
}

func (d *SoftwareDevice) Init(s Surface) error {
	d.surface = s
	d.img = image.NewNRGBA(image.Rect(0, 0, s.Width, s.Height))
	return nil
}

func (d *SoftwareDevice) Resize(s Surface) error {
	if d.img == nil {
		return ErrContextLost
	}
	return d.Init(s)
}

func (d *SoftwareDevice) Draw(u Uniforms) error {
	if d.img == nil {
		return ErrContextLost
	}
	return field.Rasterize(d.ctx, d.img, u.ElapsedSeconds)
}

func (d *SoftwareDevice) Restore() error {
	return d.Init(d.surface)
}

func (d *SoftwareDevice) Release() {
	d.img = nil
}

// ReadFrame returns a copy of the last frame.
func (d *SoftwareDevice) ReadFrame() (*image.NRGBA, error) {
	if d.img == nil {
		return nil, ErrContextLost
	}
	out := image.NewNRGBA(d.img.Rect)
	copy(out.Pix, d.img.Pix)
	return out, nil
}
