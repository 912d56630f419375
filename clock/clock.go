// Package clock provides the elapsed-time sources that drive the animation.
package clock

import (
	"sync"
	"time"
)

// Clock reports seconds elapsed since it was started.
type Clock interface {
	Elapsed() float64
}

// Monotonic reads Go's monotonic clock. It starts when created and is never
// paused or reset.
type Monotonic struct {
	start time.Time
}

func NewMonotonic() *Monotonic {
	return &Monotonic{start: time.Now()}
}

func (m *Monotonic) Elapsed() float64 {
	return time.Since(m.start).Seconds()
}

// Stepped advances by exactly one frame per read, so recordings are
// reproducible regardless of how long each frame takes to render.
type Stepped struct {
	mu    sync.Mutex
	fps   float64
	frame int64
}

func NewStepped(fps int) *Stepped {
	if fps <= 0 {
		fps = 60
	}
	return &Stepped{fps: float64(fps)}
}

// Elapsed returns frame/fps for the current frame and moves to the next one.
// The first read returns 0.
func (s *Stepped) Elapsed() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := float64(s.frame) / s.fps
	s.frame++
	return t
}

// Frame returns the number of reads so far.
func (s *Stepped) Frame() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frame
}

// Func adapts a function to Clock.
type Func func() float64

func (f Func) Elapsed() float64 { return f() }

// Since returns a clock that reads source relative to its value at the time
// of the call, so it starts at zero. source is typically a window system
// timer such as glfw.GetTime.
func Since(source func() float64) Func {
	start := source()
	return func() float64 { return source() - start }
}
