package options

// BackdropOptions holds everything the CLI can configure. Each field maps to
// one flag and one BACKDROP_* environment variable.
type BackdropOptions struct {
	Width      int
	Height     int
	PixelRatio float64 // 0 means ask the display
	RatioCap   float64
	MaxRetries int
	FPS        int
	Duration   float64
	Time       float64 // snapshot time in seconds
	OutputFile string
	Codec      string
	FFMPEGPath string
	GPU        bool // record through EGL instead of the CPU rasterizer
	Addr       string
	MaxWidth   int // serve: largest width rendered before upscaling
	CacheSize  int // serve: number of cached stills
}

// Frames returns the number of frames a recording of Duration seconds at
// FPS contains, at least one.
func (o *BackdropOptions) Frames() int {
	n := int(o.Duration * float64(o.FPS))
	if n < 1 {
		n = 1
	}
	return n
}
