package renderer

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"sync/atomic"

	"github.com/richinsley/gobackdrop/clock"
	"github.com/richinsley/gobackdrop/log"
	"github.com/richinsley/gobackdrop/scheduler"
)

var logger = log.New("renderer")

// Scheduler is the host's frame primitive.
type Scheduler interface {
	Register(fn scheduler.FrameFunc) *scheduler.Handle
}

// Background owns a device, a clock and one frame registration. Frames run
// on the scheduler's goroutine; Resize and SetPixelRatio may be called from
// any goroutine and take effect on the next frame.
type Background struct {
	dev    Device
	clk    clock.Clock
	handle *scheduler.Handle
	cfg    config

	frameMu   sync.Mutex
	alive     atomic.Bool
	closeOnce sync.Once

	// Written by the host, read by frames. Last write wins.
	css        atomic.Uint64
	ratio      atomic.Uint64
	resolution atomic.Uint64

	// Written only by frames.
	elapsed atomic.Uint32
	frames  atomic.Uint64

	// Owned by the frame goroutine, guarded by frameMu.
	surface      Surface
	lastElapsed  float64
	failures     int
	needsRestore bool
}

// New mounts a background on dev and registers its frame callback with loop.
// If clk is nil a monotonic clock is started. A device that cannot produce a
// context yields an error wrapping ErrNoContext, and nothing stays registered.
func New(dev Device, loop Scheduler, clk clock.Clock, vp Viewport, opts ...Option) (*Background, error) {
	if dev == nil {
		return nil, fmt.Errorf("%w: no device", ErrNoContext)
	}
	if loop == nil {
		return nil, errors.New("renderer needs a frame scheduler")
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	b := &Background{dev: dev, cfg: cfg}
	if vp.PixelRatio <= 0 {
		vp.PixelRatio = 1
	}
	b.ratio.Store(math.Float64bits(vp.PixelRatio))
	b.css.Store(packSize(vp.Width, vp.Height))

	surface := PixelSize(vp.Width, vp.Height, vp.PixelRatio, cfg.ratioCap)
	if err := dev.Init(surface); err != nil {
		dev.Release()
		if errors.Is(err, ErrNoContext) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrNoContext, err)
	}
	b.surface = surface
	b.resolution.Store(packSize(surface.Width, surface.Height))

	if clk == nil {
		clk = clock.NewMonotonic()
	}
	b.clk = clk

	b.frameMu.Lock()
	b.alive.Store(true)
	b.handle = loop.Register(b.frame)
	b.frameMu.Unlock()

	logger.Infof("mounted background at %dx%d (ratio %.2f)", surface.Width, surface.Height, vp.PixelRatio)
	return b, nil
}

func (b *Background) frame() {
	b.frameMu.Lock()
	defer b.frameMu.Unlock()

	if !b.alive.Load() {
		return
	}

	if b.needsRestore {
		if err := b.dev.Restore(); err != nil {
			b.fail(err)
			return
		}
		b.needsRestore = false
		logger.Info("rendering context restored")
	}

	t := b.clk.Elapsed()
	if t < b.lastElapsed {
		t = b.lastElapsed
	}
	b.lastElapsed = t
	b.elapsed.Store(math.Float32bits(float32(t)))

	w, h := unpackSize(b.resolution.Load())
	want := Surface{Width: w, Height: h}
	if want != b.surface {
		if err := b.dev.Resize(want); err != nil {
			b.fail(err)
			return
		}
		logger.Debugf("surface resized to %dx%d", w, h)
		b.surface = want
	}

	u := Uniforms{
		ElapsedSeconds: float32(t),
		Resolution:     [2]float32{float32(w), float32(h)},
	}
	if err := b.dev.Draw(u); err != nil {
		b.fail(err)
		return
	}
	b.failures = 0
	b.frames.Add(1)
}

// fail skips the current frame and schedules a restore. Once the retry budget
// is spent the background deregisters itself.
func (b *Background) fail(err error) {
	b.failures++
	b.needsRestore = true
	if b.failures > b.cfg.maxRetries {
		logger.Warningf("giving up after %d failed frames: %v", b.failures, err)
		b.alive.Store(false)
		b.handle.Cancel()
		return
	}
	logger.Debugf("frame skipped (%d/%d): %v", b.failures, b.cfg.maxRetries, err)
}

// Resize records a new viewport size in CSS pixels. The surface and the
// resolution uniform follow on the next frame.
func (b *Background) Resize(cssW, cssH int) {
	if cssW <= 0 || cssH <= 0 {
		logger.Debugf("ignoring resize to %dx%d", cssW, cssH)
		return
	}
	b.css.Store(packSize(cssW, cssH))
	b.updateResolution()
}

// SetPixelRatio records a new device pixel ratio, e.g. after the window
// moved to another monitor.
func (b *Background) SetPixelRatio(ratio float64) {
	if ratio <= 0 || math.IsNaN(ratio) {
		return
	}
	b.ratio.Store(math.Float64bits(ratio))
	b.updateResolution()
}

func (b *Background) updateResolution() {
	w, h := unpackSize(b.css.Load())
	s := PixelSize(w, h, math.Float64frombits(b.ratio.Load()), b.cfg.ratioCap)
	b.resolution.Store(packSize(s.Width, s.Height))
}

// Uniforms returns the latest uniform state.
func (b *Background) Uniforms() Uniforms {
	w, h := unpackSize(b.resolution.Load())
	return Uniforms{
		ElapsedSeconds: math.Float32frombits(b.elapsed.Load()),
		Resolution:     [2]float32{float32(w), float32(h)},
	}
}

// Frames returns the number of frames drawn successfully.
func (b *Background) Frames() uint64 {
	return b.frames.Load()
}

// Live reports whether the background is still scheduling frames.
func (b *Background) Live() bool {
	return b != nil && b.alive.Load()
}

// Close deregisters the frame callback and releases the device. It waits for
// an in-flight frame, is idempotent, and is safe on a nil or partially built
// Background. It must not be called from inside a frame callback.
func (b *Background) Close() {
	if b == nil {
		return
	}
	b.alive.Store(false)
	b.closeOnce.Do(func() {
		b.handle.Cancel()

		b.frameMu.Lock()
		defer b.frameMu.Unlock()
		if b.dev != nil {
			b.dev.Release()
		}
		logger.Infof("unmounted background after %d frames", b.frames.Load())
	})
}
