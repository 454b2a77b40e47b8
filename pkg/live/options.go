package live

import (
	"log/slog"
	"net/http"
	"time"
)

// Config configures a Hub.
type Config struct {
	// WriteTimeout bounds every frame write.
	WriteTimeout time.Duration

	// PingInterval is how often idle connections are pinged. Connections
	// that do not answer within two intervals are dropped.
	PingInterval time.Duration

	// SendBuffer is the number of batches queued per client. A client
	// whose queue is full is disconnected.
	SendBuffer int

	// MaxMessageSize limits client messages.
	MaxMessageSize int64

	// CheckOrigin validates the upgrade request. Defaults to same-origin.
	CheckOrigin func(r *http.Request) bool

	Logger *slog.Logger
}

// Option configures a Hub.
type Option func(*Config)

func defaultConfig() Config {
	return Config{
		WriteTimeout:   10 * time.Second,
		PingInterval:   30 * time.Second,
		SendBuffer:     64,
		MaxMessageSize: 4096,
	}
}

// WithWriteTimeout sets the per-frame write deadline.
func WithWriteTimeout(d time.Duration) Option {
	return func(c *Config) {
		c.WriteTimeout = d
	}
}

// WithPingInterval sets the heartbeat interval.
func WithPingInterval(d time.Duration) Option {
	return func(c *Config) {
		c.PingInterval = d
	}
}

// WithSendBuffer sets the per-client queue length.
func WithSendBuffer(n int) Option {
	return func(c *Config) {
		c.SendBuffer = n
	}
}

// WithCheckOrigin sets the origin policy for upgrades.
func WithCheckOrigin(fn func(r *http.Request) bool) Option {
	return func(c *Config) {
		c.CheckOrigin = fn
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) {
		c.Logger = l
	}
}
