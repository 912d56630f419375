package options

import "testing"

func TestFrames(t *testing.T) {
	tests := []struct {
		duration float64
		fps      int
		want     int
	}{
		{10, 60, 600},
		{0.5, 30, 15},
		{0, 60, 1},
		{0.001, 24, 1},
	}
	for _, tt := range tests {
		o := BackdropOptions{Duration: tt.duration, FPS: tt.fps}
		if got := o.Frames(); got != tt.want {
			t.Errorf("Frames(%v s @ %d) = %d, want %d", tt.duration, tt.fps, got, tt.want)
		}
	}
}
