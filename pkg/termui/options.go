package termui

import "time"

// Config configures a Board.
type Config struct {
	// Width is the card width in cells, borders included.
	Width int

	// Now is the clock used to draw countdown bars. It should be the
	// registry's scheduler clock.
	Now func() time.Time

	// FrameInterval is how often Model redraws.
	FrameInterval time.Duration
}

// Option configures a Board.
type Option func(*Config)

func defaultConfig() Config {
	return Config{
		Width:         40,
		Now:           time.Now,
		FrameInterval: 100 * time.Millisecond,
	}
}

// WithWidth sets the card width.
func WithWidth(w int) Option {
	return func(c *Config) {
		if w > 0 {
			c.Width = w
		}
	}
}

// WithClock sets the clock used for countdown bars.
func WithClock(now func() time.Time) Option {
	return func(c *Config) {
		c.Now = now
	}
}

// WithFrameInterval sets the redraw interval of Model.
func WithFrameInterval(d time.Duration) Option {
	return func(c *Config) {
		c.FrameInterval = d
	}
}
