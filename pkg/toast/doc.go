// Package toast renders transient, auto-dismissing notification banners
// stacked per screen edge.
//
// A Registry owns at most one Stack per Position. Each Stack owns the mount
// point for its position and the ordered list of visible toasts. Every Toast
// runs through a fixed lifecycle:
//
//	created -> entering -> visible -> leaving -> disposed
//
// Transitions are driven by timers on a single logical timeline (see package
// sched). Disposal happens exactly once per toast no matter how many triggers
// race for it: the auto-dismiss timer, a click on the close control, Hide or
// HideAll.
//
// # Rendering
//
// The core never paints anything itself. It hands a Descriptor to a Renderer,
// which returns an addressable Node. Package surface renders toasts as a
// virtual DOM tree for browsers; package termui renders them in a terminal.
//
// # Usage
//
//	reg := toast.NewRegistry(surface.New())
//	defer reg.Close()
//
//	reg.Success("Saved", "Your changes have been saved.")
//	reg.Error("Upload failed", err.Error(), toast.Persistent(), toast.At(toast.Bottom))
//
//	t := reg.Info("Syncing", "This may take a while", toast.WithDuration(10*time.Second))
//	// ...
//	t.Hide()
//
// # Durations
//
// WithDuration(d) with d > 0 dismisses the toast d after it was created.
// A duration of zero or less dismisses it immediately. Persistent() is the
// only way to keep a toast until it is hidden by hand; persistent toasts have
// no countdown bar.
package toast
