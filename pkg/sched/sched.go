package sched

import "time"

// Scheduler runs callbacks on a single logical timeline.
type Scheduler interface {
	// Dispatch queues fn to run on the timeline as soon as possible.
	Dispatch(fn func())

	// After runs fn on the timeline once d has elapsed. The returned cancel
	// func prevents fn from running if it has not started yet. Calling
	// cancel more than once is safe.
	After(d time.Duration, fn func()) (cancel func())

	// Now returns the scheduler's notion of the current time.
	Now() time.Time
}
