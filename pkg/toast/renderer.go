package toast

import "time"

// Renderer paints toasts for a host surface.
//
// All methods, and the methods of the Containers and Nodes it returns, are
// only ever called from the registry's timeline.
type Renderer interface {
	// Install registers the presentation contract with the surface.
	// It is called before the first container is acquired and must be
	// idempotent.
	Install(p Presentation)

	// Container locates or creates the mount point for pos. Repeated calls
	// for the same position must return the same container.
	Container(pos Position) Container
}

// Container is the mount point of one stack.
type Container interface {
	// Mount builds the node for d and appends it to the container in its
	// inert (pre-entrance) state.
	Mount(d Descriptor) Node
}

// Node is the rendered representation of a single toast.
type Node interface {
	// SetEntranceState toggles between the shown and the inert presentation.
	SetEntranceState(entering bool)

	// StartCountdown animates the countdown bar from full to empty over d.
	StartCountdown(d time.Duration)

	// Unmount removes the node. Unmounting twice is a no-op.
	Unmount()
}

// Descriptor is everything a renderer needs to build a toast node.
// Title and Message are untrusted text and must be escaped by renderers
// that emit markup.
type Descriptor struct {
	Key          uint64   // Stable identity of the toast
	Severity     Severity // Severity as requested by the caller
	Variant      Severity // Severity whose style applies
	Style        Style
	CloseGlyph   string
	Title        string
	Message      string
	HasCountdown bool
	Duration     time.Duration // Zero for persistent toasts

	// OnClose triggers the manual dismiss path. Safe to call from any
	// goroutine, any number of times.
	OnClose func()
}

// nopNode stands in when a container declines to return a node.
type nopNode struct{}

func (nopNode) SetEntranceState(bool)       {}
func (nopNode) StartCountdown(time.Duration) {}
func (nopNode) Unmount()                     {}
