package renderer

type config struct {
	ratioCap   float64
	maxRetries int
}

func defaultConfig() config {
	return config{
		ratioCap:   DefaultRatioCap,
		maxRetries: 3,
	}
}

// Option tunes a Background at construction.
type Option func(*config)

// WithRatioCap overrides the device pixel ratio cap. Values <= 0 are ignored.
func WithRatioCap(ratioCap float64) Option {
	return func(c *config) {
		if ratioCap > 0 {
			c.ratioCap = ratioCap
		}
	}
}

// WithMaxRetries sets how many consecutive failed frames are retried before
// the renderer stops scheduling itself.
func WithMaxRetries(n int) Option {
	return func(c *config) {
		if n >= 0 {
			c.maxRetries = n
		}
	}
}
