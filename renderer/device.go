package renderer

import (
	"errors"
	"image"
	"math"
)

var (
	// ErrNoContext is returned by New when the surface cannot produce a
	// rendering context. Hosts should fall back to a static background.
	ErrNoContext = errors.New("no rendering context available")

	// ErrContextLost is returned by Device.Draw when the driver dropped the
	// context mid-session. The renderer skips the frame and restores.
	ErrContextLost = errors.New("rendering context lost")
)

// DefaultRatioCap bounds the device pixel ratio used to size the surface.
const DefaultRatioCap = 2.0

// Surface is the drawable target size in device pixels.
type Surface struct {
	Width, Height int
}

// Viewport is what the host knows: a size in CSS pixels and the display's
// device pixel ratio.
type Viewport struct {
	Width, Height int
	PixelRatio    float64
}

// Uniforms is the per-frame state handed to the shading program.
type Uniforms struct {
	ElapsedSeconds float32
	Resolution     [2]float32
}

// Device is a rendering binding able to paint the background.
//
// Init allocates the quad, compiles the program and sizes the surface.
// Resize changes the surface size without recompiling. Draw paints one frame.
// Restore rebuilds everything after a failed frame. Release frees all driver
// resources and must tolerate being called more than once.
type Device interface {
	Init(s Surface) error
	Resize(s Surface) error
	Draw(u Uniforms) error
	Restore() error
	Release()
}

// FrameReader is implemented by devices that can read back the last frame.
// Row 0 of the returned image is the top of the frame.
type FrameReader interface {
	ReadFrame() (*image.NRGBA, error)
}

// PixelSize converts a CSS size to device pixels with the ratio capped at
// ratioCap. Each axis is floored and never smaller than one pixel.
func PixelSize(cssW, cssH int, ratio, ratioCap float64) Surface {
	if ratio <= 0 || math.IsNaN(ratio) || math.IsInf(ratio, 0) {
		ratio = 1
	}
	if ratioCap > 0 && ratio > ratioCap {
		ratio = ratioCap
	}
	return Surface{
		Width:  max(1, int(math.Floor(float64(cssW)*ratio))),
		Height: max(1, int(math.Floor(float64(cssH)*ratio))),
	}
}

func packSize(w, h int) uint64 {
	return uint64(uint32(w))<<32 | uint64(uint32(h))
}

func unpackSize(v uint64) (int, int) {
	return int(uint32(v >> 32)), int(uint32(v))
}
