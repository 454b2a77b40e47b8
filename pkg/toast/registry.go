package toast

import (
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/vango-dev/toastkit/pkg/sched"
)

// Registry maps each Position to at most one Stack, created on first use.
// Construct one per surface and pass it to whoever shows toasts.
type Registry struct {
	config   Config
	renderer Renderer
	sched    sched.Scheduler
	loop     *sched.Loop // non-nil when the registry owns its scheduler
	logger   *slog.Logger

	nextID atomic.Uint64
	closed atomic.Bool

	mu     sync.Mutex
	stacks map[Position]*Stack

	installed bool // timeline only
}

// NewRegistry creates a registry that renders through r.
func NewRegistry(r Renderer, opts ...Option) *Registry {
	config := defaultConfig()
	for _, opt := range opts {
		opt(&config)
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	if !config.DefaultPosition.Valid() {
		config.DefaultPosition = Top
	}
	if config.Presentation.Styles == nil {
		config.Presentation = DefaultPresentation()
	}

	reg := &Registry{
		config:   config,
		renderer: r,
		sched:    config.Scheduler,
		logger:   config.Logger.With("component", "toast"),
		stacks:   make(map[Position]*Stack, len(Positions)),
	}
	if reg.sched == nil {
		reg.loop = sched.NewLoop(sched.WithLogger(reg.logger))
		reg.loop.Start()
		reg.sched = reg.loop
	}
	return reg
}

// Stack returns the stack for pos, creating it on first use. Every call for
// the same position returns the same stack. Invalid positions fall back to
// the default position.
func (r *Registry) Stack(pos Position) *Stack {
	if !pos.Valid() {
		r.logger.Warn("unknown toast position, using default",
			"position", string(pos),
			"default", r.config.DefaultPosition)
		pos = r.config.DefaultPosition
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.stacks[pos]; ok {
		return s
	}
	s := newStack(r, pos)
	r.stacks[pos] = s
	return s
}

// Lookup returns the stack for pos without creating it.
func (r *Registry) Lookup(pos Position) (*Stack, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.stacks[pos]
	return s, ok
}

// Show displays a toast. Without options it lasts DefaultDuration and is
// placed at the registry's default position.
func (r *Registry) Show(severity Severity, title, message string, opts ...ShowOption) *Toast {
	var cfg showConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	pos := r.config.DefaultPosition
	if cfg.hasPosition {
		pos = cfg.position
	}
	return r.Stack(pos).Show(severity, title, message, opts...)
}

// HideAll dismisses every toast at pos. It does nothing if no toast was
// ever shown there.
func (r *Registry) HideAll(pos Position) {
	if s, ok := r.Lookup(pos); ok {
		s.HideAll()
	}
}

// Presentation returns the styling table in use.
func (r *Registry) Presentation() Presentation {
	return r.config.Presentation
}

// Close stops the registry's own scheduler. Toasts still on screen stay
// where they are and their Done channels never close. After Close, Show
// returns toasts that are already disposed. Close is a no-op for registries
// built WithScheduler.
func (r *Registry) Close() {
	if r.loop != nil {
		r.closed.Store(true)
		r.loop.Close()
	}
}

// install registers the presentation with the renderer once.
func (r *Registry) install() {
	if r.installed {
		return
	}
	r.installed = true
	r.renderer.Install(r.config.Presentation)
}

func (r *Registry) notify(t *Toast, from, to Phase) {
	for _, o := range r.config.Observers {
		o.PhaseChanged(t, from, to)
	}
}
