package toast

import (
	"log/slog"
	"time"

	"github.com/vango-dev/toastkit/pkg/sched"
)

// DefaultDuration is how long a toast stays up when no duration is given.
const DefaultDuration = 5 * time.Second

// Timing holds the fixed animation delays of the lifecycle.
type Timing struct {
	// EnterDelay is how long a freshly mounted node stays inert before the
	// entrance starts, so the renderer commits the inert frame first.
	EnterDelay time.Duration

	// TransitionDuration is the length of the entrance and exit animations.
	TransitionDuration time.Duration
}

// DefaultTiming returns the standard 100ms enter delay and 300ms transitions.
func DefaultTiming() Timing {
	return Timing{
		EnterDelay:         100 * time.Millisecond,
		TransitionDuration: 300 * time.Millisecond,
	}
}

// Config configures a Registry.
type Config struct {
	// Scheduler is the timeline all lifecycles run on.
	// Default: a sched.Loop owned (and closed) by the registry.
	Scheduler sched.Scheduler

	// Logger is the structured logger. Default: slog.Default().
	Logger *slog.Logger

	// Observers are notified of every phase transition.
	Observers []Observer

	// Timing holds the animation delays. Default: DefaultTiming().
	Timing Timing

	// DefaultDuration applies when Show gets no duration option.
	DefaultDuration time.Duration

	// DefaultPosition applies when Show gets no position option.
	DefaultPosition Position

	// Presentation is the severity styling table. Default: DefaultPresentation().
	Presentation Presentation
}

// Option configures a Registry.
type Option func(*Config)

// WithScheduler sets the timeline. The registry does not close schedulers
// it did not create.
func WithScheduler(s sched.Scheduler) Option {
	return func(c *Config) {
		c.Scheduler = s
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithObserver adds a phase observer. May be repeated.
func WithObserver(o Observer) Option {
	return func(c *Config) {
		if o != nil {
			c.Observers = append(c.Observers, o)
		}
	}
}

// WithTiming overrides the animation delays.
func WithTiming(t Timing) Option {
	return func(c *Config) {
		c.Timing = t
	}
}

// WithDefaultDuration sets the duration used when Show gets none.
func WithDefaultDuration(d time.Duration) Option {
	return func(c *Config) {
		c.DefaultDuration = d
	}
}

// WithDefaultPosition sets the position used when Show gets none.
func WithDefaultPosition(p Position) Option {
	return func(c *Config) {
		c.DefaultPosition = p
	}
}

// WithPresentation overrides the severity styling table.
func WithPresentation(p Presentation) Option {
	return func(c *Config) {
		c.Presentation = p
	}
}

func defaultConfig() Config {
	return Config{
		Logger:          slog.Default(),
		Timing:          DefaultTiming(),
		DefaultDuration: DefaultDuration,
		DefaultPosition: Top,
		Presentation:    DefaultPresentation(),
	}
}

// showConfig is the per-toast configuration built from ShowOptions.
type showConfig struct {
	duration    time.Duration
	persistent  bool
	position    Position
	hasPosition bool
}

// ShowOption configures a single toast.
type ShowOption func(*showConfig)

// WithDuration sets the auto-dismiss delay, counted from creation.
// Zero or negative values dismiss the toast immediately.
func WithDuration(d time.Duration) ShowOption {
	return func(c *showConfig) {
		c.duration = d
		c.persistent = false
	}
}

// Persistent disables auto-dismiss and the countdown bar.
func Persistent() ShowOption {
	return func(c *showConfig) {
		c.persistent = true
	}
}

// At selects the stack the toast is shown in. Ignored by Stack.Show, whose
// position is fixed.
func At(p Position) ShowOption {
	return func(c *showConfig) {
		c.position = p
		c.hasPosition = true
	}
}
