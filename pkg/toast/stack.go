package toast

import (
	"sync"
	"time"
)

// Stack is the ordered set of toasts shown at one position. It owns the
// container for that position.
type Stack struct {
	registry  *Registry
	position  Position
	container Container // acquired on the timeline before the first mount

	mu     sync.Mutex
	toasts []*Toast // insertion order is stacking order
}

func newStack(r *Registry, pos Position) *Stack {
	s := &Stack{registry: r, position: pos}
	r.sched.Dispatch(s.acquire)
	return s
}

// acquire registers the presentation and locates the container. Dispatched
// once at construction, so it runs before any mount for this stack.
func (s *Stack) acquire() {
	s.registry.install()
	s.container = s.registry.renderer.Container(s.position)
	s.registry.logger.Debug("toast stack ready", "position", s.position)
}

// Position returns the stack's position.
func (s *Stack) Position() Position {
	return s.position
}

// Show creates a toast in this stack and returns immediately; mounting and
// the lifecycle continue on the timeline. A position passed with At is
// ignored.
func (s *Stack) Show(severity Severity, title, message string, opts ...ShowOption) *Toast {
	r := s.registry
	cfg := showConfig{duration: r.config.DefaultDuration}
	for _, opt := range opts {
		opt(&cfg)
	}

	t := &Toast{
		id:         r.nextID.Add(1),
		severity:   severity,
		title:      title,
		message:    message,
		duration:   cfg.duration,
		persistent: cfg.persistent,
		position:   s.position,
		createdAt:  r.sched.Now(),
		disposed:   make(chan struct{}),
		stack:      s,
	}
	t.life.toast = t

	if r.closed.Load() {
		// Nothing will run the lifecycle; hand back a finished toast.
		t.phase.Store(int32(PhaseDisposed))
		close(t.disposed)
		r.logger.Debug("toast shown after close", "toast", t.String())
		return t
	}

	r.sched.Dispatch(func() { s.mount(t) })
	return t
}

// mount builds the node, appends the toast and starts its lifecycle.
func (s *Stack) mount(t *Toast) {
	r := s.registry
	variant, style := r.config.Presentation.Resolve(t.severity)
	var duration time.Duration
	if !t.persistent {
		duration = t.duration
	}

	node := s.container.Mount(Descriptor{
		Key:          t.id,
		Severity:     t.severity,
		Variant:      variant,
		Style:        style,
		CloseGlyph:   r.config.Presentation.CloseGlyph,
		Title:        t.title,
		Message:      t.message,
		HasCountdown: !t.persistent,
		Duration:     duration,
		OnClose:      t.Hide,
	})
	if node == nil {
		node = nopNode{}
	}
	t.life.node = node

	s.mu.Lock()
	s.toasts = append(s.toasts, t)
	s.mu.Unlock()

	t.life.start()
}

// Hide starts the manual dismiss path for t. Toasts from another stack and
// toasts already leaving or disposed are ignored.
func (s *Stack) Hide(t *Toast) {
	if t == nil || t.stack != s {
		return
	}
	s.registry.sched.Dispatch(t.life.dismiss)
}

// HideAll dismisses every toast currently in the stack.
func (s *Stack) HideAll() {
	s.registry.sched.Dispatch(func() {
		// Dismissed toasts remove themselves later; iterate a snapshot.
		for _, t := range s.Toasts() {
			t.life.dismiss()
		}
	})
}

// Toasts returns a snapshot of the stack in stacking order. A toast joins
// the stack when it is mounted, so the snapshot can include toasts still in
// PhaseCreated.
func (s *Stack) Toasts() []*Toast {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Toast, len(s.toasts))
	copy(out, s.toasts)
	return out
}

// Len returns the number of toasts in the stack.
func (s *Stack) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.toasts)
}

// remove drops t from the stack. Removing an absent toast is a no-op.
func (s *Stack) remove(t *Toast) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.toasts {
		if existing == t {
			s.toasts = append(s.toasts[:i], s.toasts[i+1:]...)
			return
		}
	}
}
