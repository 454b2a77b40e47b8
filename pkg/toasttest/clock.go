package toasttest

import (
	"sort"
	"sync"
	"time"

	"github.com/vango-dev/toastkit/pkg/sched"
)

// Epoch is the time a new Clock starts at.
var Epoch = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

// Clock is a manually driven scheduler.
type Clock struct {
	mu     sync.Mutex
	now    time.Time
	seq    uint64
	queue  []func()
	timers []*timer
}

type timer struct {
	at        time.Time
	seq       uint64
	fn        func()
	cancelled bool
}

// NewClock returns a Clock set to Epoch.
func NewClock() *Clock {
	return &Clock{now: Epoch}
}

// Dispatch implements sched.Scheduler. fn runs on the next Flush or Advance.
func (c *Clock) Dispatch(fn func()) {
	if fn == nil {
		return
	}
	c.mu.Lock()
	c.queue = append(c.queue, fn)
	c.mu.Unlock()
}

// After implements sched.Scheduler.
func (c *Clock) After(d time.Duration, fn func()) func() {
	if d < 0 {
		d = 0
	}
	c.mu.Lock()
	c.seq++
	t := &timer{at: c.now.Add(d), seq: c.seq, fn: fn}
	c.timers = append(c.timers, t)
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		t.cancelled = true
		c.mu.Unlock()
	}
}

// Now implements sched.Scheduler.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Elapsed returns the virtual time passed since Epoch.
func (c *Clock) Elapsed() time.Duration {
	return c.Now().Sub(Epoch)
}

// Flush runs dispatched callbacks, including any they dispatch, without
// moving time forward.
func (c *Clock) Flush() {
	for {
		c.mu.Lock()
		if len(c.queue) == 0 {
			c.mu.Unlock()
			return
		}
		fn := c.queue[0]
		c.queue = c.queue[1:]
		c.mu.Unlock()

		fn()
	}
}

// Advance moves time forward by d, firing due timers in deadline order and
// flushing dispatched work after each one.
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now.Add(d)
	c.mu.Unlock()

	c.Flush()
	for {
		t := c.popDue(target)
		if t == nil {
			break
		}
		t.fn()
		c.Flush()
	}

	c.mu.Lock()
	if target.After(c.now) {
		c.now = target
	}
	c.mu.Unlock()
}

// AdvanceTo moves time forward to Epoch+elapsed.
func (c *Clock) AdvanceTo(elapsed time.Duration) {
	if d := elapsed - c.Elapsed(); d > 0 {
		c.Advance(d)
		return
	}
	c.Flush()
}

// Pending returns the number of armed, uncancelled timers.
func (c *Clock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.timers {
		if !t.cancelled {
			n++
		}
	}
	return n
}

// popDue removes and returns the earliest live timer due at or before
// target, moving the clock to its deadline.
func (c *Clock) popDue(target time.Time) *timer {
	c.mu.Lock()
	defer c.mu.Unlock()

	live := c.timers[:0]
	for _, t := range c.timers {
		if !t.cancelled {
			live = append(live, t)
		}
	}
	c.timers = live

	sort.SliceStable(c.timers, func(i, j int) bool {
		if c.timers[i].at.Equal(c.timers[j].at) {
			return c.timers[i].seq < c.timers[j].seq
		}
		return c.timers[i].at.Before(c.timers[j].at)
	})
	if len(c.timers) == 0 || c.timers[0].at.After(target) {
		return nil
	}

	t := c.timers[0]
	c.timers = c.timers[1:]
	if t.at.After(c.now) {
		c.now = t.at
	}
	return t
}

var _ sched.Scheduler = (*Clock)(nil)
