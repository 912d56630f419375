// Package scheduler is the host frame primitive: callbacks registered with a
// Loop run once per display refresh until their handle is cancelled.
package scheduler

import (
	"context"
	"sync"
	"time"
)

// FrameFunc is invoked once per tick.
type FrameFunc func()

// Handle identifies one registration. Cancel is idempotent.
type Handle struct {
	loop *Loop
	id   uint64
	once sync.Once
}

// Cancel deregisters the callback. It is safe to call from inside the
// callback itself; the callback will not run again after Cancel returns.
func (h *Handle) Cancel() {
	if h == nil {
		return
	}
	h.once.Do(func() {
		h.loop.remove(h.id)
	})
}

type entry struct {
	id uint64
	fn FrameFunc
}

// Loop runs its registered callbacks in registration order on whichever
// goroutine calls Tick.
type Loop struct {
	mu      sync.Mutex
	nextID  uint64
	entries []entry
}

func NewLoop() *Loop {
	return &Loop{}
}

func (l *Loop) Register(fn FrameFunc) *Handle {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.nextID++
	l.entries = append(l.entries, entry{id: l.nextID, fn: fn})
	return &Handle{loop: l, id: l.nextID}
}

func (l *Loop) remove(id uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i, e := range l.entries {
		if e.id == id {
			l.entries = append(l.entries[:i], l.entries[i+1:]...)
			return
		}
	}
}

func (l *Loop) live(id uint64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, e := range l.entries {
		if e.id == id {
			return true
		}
	}
	return false
}

// Len returns the number of live registrations.
func (l *Loop) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Tick runs every live callback once. A callback cancelled by an earlier
// callback in the same tick is skipped.
func (l *Loop) Tick() {
	l.mu.Lock()
	snapshot := make([]entry, len(l.entries))
	copy(snapshot, l.entries)
	l.mu.Unlock()

	for _, e := range snapshot {
		if !l.live(e.id) {
			continue
		}
		e.fn()
	}
}

// Run ticks the loop at fps until ctx is done or no callbacks remain.
func (l *Loop) Run(ctx context.Context, fps int) error {
	if fps <= 0 {
		fps = 60
	}
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if l.Len() == 0 {
				return nil
			}
			l.Tick()
		}
	}
}
