package toast

import (
	"fmt"
	"sync/atomic"
	"time"
)

// Toast is one notification instance. It is created by Stack.Show and stays
// bound to that stack for its whole life.
type Toast struct {
	id         uint64
	severity   Severity
	title      string
	message    string
	duration   time.Duration
	persistent bool
	position   Position
	createdAt  time.Time

	phase    atomic.Int32
	disposed chan struct{}

	stack *Stack
	life  lifecycle // only touched on the timeline
}

// Severity returns the severity the toast was created with.
func (t *Toast) Severity() Severity { return t.severity }

// Title returns the toast title.
func (t *Toast) Title() string { return t.title }

// Message returns the toast message.
func (t *Toast) Message() string { return t.message }

// Position returns the position of the toast's stack.
func (t *Toast) Position() Position { return t.position }

// CreatedAt returns the scheduler time at which the toast was created.
func (t *Toast) CreatedAt() time.Time { return t.createdAt }

// Persistent reports whether the toast never auto-dismisses.
func (t *Toast) Persistent() bool { return t.persistent }

// Duration returns the auto-dismiss delay. It is zero for persistent toasts.
func (t *Toast) Duration() time.Duration {
	if t.persistent {
		return 0
	}
	return t.duration
}

// Phase returns the current lifecycle phase. Safe from any goroutine.
func (t *Toast) Phase() Phase {
	return Phase(t.phase.Load())
}

// Done returns a channel that is closed once the toast is disposed.
func (t *Toast) Done() <-chan struct{} {
	return t.disposed
}

// Hide starts the manual dismiss path. Calling Hide on a toast that is
// already leaving or disposed does nothing.
func (t *Toast) Hide() {
	if t == nil || t.stack == nil {
		return
	}
	t.stack.Hide(t)
}

// String identifies the toast in logs.
func (t *Toast) String() string {
	return fmt.Sprintf("toast#%d(%s,%s)", t.id, t.severity, t.position)
}

// Success shows a success toast.
//
//	reg.Success("Saved", "Changes saved")
func (r *Registry) Success(title, message string, opts ...ShowOption) *Toast {
	return r.Show(SeveritySuccess, title, message, opts...)
}

// Error shows an error toast.
//
//	reg.Error("Delete failed", err.Error(), toast.Persistent())
func (r *Registry) Error(title, message string, opts ...ShowOption) *Toast {
	return r.Show(SeverityError, title, message, opts...)
}

// Warning shows a warning toast.
func (r *Registry) Warning(title, message string, opts ...ShowOption) *Toast {
	return r.Show(SeverityWarning, title, message, opts...)
}

// Info shows an info toast.
func (r *Registry) Info(title, message string, opts ...ShowOption) *Toast {
	return r.Show(SeverityInfo, title, message, opts...)
}
