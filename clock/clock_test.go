package clock

import (
	"testing"
	"time"
)

func TestMonotonicStartsNearZeroAndGrows(t *testing.T) {
	c := NewMonotonic()
	first := c.Elapsed()
	if first < 0 || first > 1 {
		t.Fatalf("first Elapsed = %v, want close to 0", first)
	}
	time.Sleep(2 * time.Millisecond)
	if second := c.Elapsed(); second < first {
		t.Errorf("Elapsed went backwards: %v then %v", first, second)
	}
}

func TestSteppedAdvancesOneFramePerRead(t *testing.T) {
	c := NewStepped(30)
	want := []float64{0, 1.0 / 30, 2.0 / 30, 3.0 / 30}
	for i, w := range want {
		if got := c.Elapsed(); got != w {
			t.Errorf("read %d = %v, want %v", i, got, w)
		}
	}
	if c.Frame() != int64(len(want)) {
		t.Errorf("Frame() = %d, want %d", c.Frame(), len(want))
	}
}

func TestSteppedDefaultsFPS(t *testing.T) {
	c := NewStepped(0)
	c.Elapsed()
	if got := c.Elapsed(); got != 1.0/60 {
		t.Errorf("second read = %v, want 1/60", got)
	}
}

func TestFunc(t *testing.T) {
	var c Clock = Func(func() float64 { return 4.5 })
	if c.Elapsed() != 4.5 {
		t.Errorf("Func clock returned %v", c.Elapsed())
	}
}

func TestSinceStartsAtZero(t *testing.T) {
	now := 12.5
	c := Since(func() float64 { return now })
	if got := c.Elapsed(); got != 0 {
		t.Errorf("first read = %v, want 0", got)
	}
	now = 14.0
	if got := c.Elapsed(); got != 1.5 {
		t.Errorf("read after 1.5s = %v, want 1.5", got)
	}
}
