package surface

import (
	"log/slog"
	"time"

	"github.com/vango-dev/toastkit/pkg/toast"
)

// Config configures a Surface.
type Config struct {
	// RootID is the HID of the root element. Defaults to "toast-root".
	RootID string

	// Transition is the CSS entrance and exit duration. It should match
	// the registry's TransitionDuration.
	Transition time.Duration

	// Logger receives debug output. Defaults to slog.Default().
	Logger *slog.Logger
}

// Option configures a Surface.
type Option func(*Config)

func defaultConfig() Config {
	return Config{
		RootID:     "toast-root",
		Transition: toast.DefaultTiming().TransitionDuration,
	}
}

// WithRootID sets the HID of the root element.
func WithRootID(id string) Option {
	return func(c *Config) {
		c.RootID = id
	}
}

// WithTransition sets the CSS animation length.
func WithTransition(d time.Duration) Option {
	return func(c *Config) {
		c.Transition = d
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) {
		c.Logger = l
	}
}
