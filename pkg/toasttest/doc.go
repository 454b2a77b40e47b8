// Package toasttest provides test doubles for the toast engine.
//
// Clock is a virtual-time sched.Scheduler: nothing runs until the test calls
// Flush or Advance, and timers fire in deadline order. Renderer records every
// mount, entrance toggle, countdown and unmount so tests can assert on what a
// real surface would have shown.
//
//	clock := toasttest.NewClock()
//	rend := toasttest.NewRenderer()
//	reg := toast.NewRegistry(rend, toast.WithScheduler(clock))
//
//	t := reg.Success("Saved", "Changes saved", toast.WithDuration(3*time.Second))
//	clock.Advance(100 * time.Millisecond)
//	// t.Phase() == toast.PhaseEntering
package toasttest
