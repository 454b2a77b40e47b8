package toast

import "time"

// lifecycle drives one toast through its phases. Every method runs on the
// registry's timeline, and every scheduled callback re-checks the phase
// before acting, because a cancelled timer may already have been queued.
type lifecycle struct {
	toast *Toast
	node  Node

	cancelEnter  func()
	cancelSettle func()
	cancelExpire func()
	cancelRemove func()
}

// start arms the entrance and, for timed toasts, the expiry timer.
func (lc *lifecycle) start() {
	t := lc.toast
	s := t.stack.registry.sched
	timing := t.stack.registry.config.Timing

	lc.cancelEnter = s.After(timing.EnterDelay, lc.enter)

	if !t.persistent {
		// Expiry counts from creation, not from mounting or visibility.
		remaining := t.duration - s.Now().Sub(t.createdAt)
		if remaining < 0 {
			remaining = 0
		}
		lc.cancelExpire = s.After(remaining, lc.expire)
	}
}

// enter commits the entrance: created -> entering.
func (lc *lifecycle) enter() {
	lc.cancelEnter = nil
	t := lc.toast
	if t.Phase() != PhaseCreated {
		return
	}
	lc.stepTo(PhaseEntering)
	lc.node.SetEntranceState(true)
	if !t.persistent {
		lc.node.StartCountdown(t.duration)
	}

	timing := t.stack.registry.config.Timing
	lc.cancelSettle = t.stack.registry.sched.After(timing.TransitionDuration, lc.settle)
}

// settle marks the entrance animation as finished: entering -> visible.
func (lc *lifecycle) settle() {
	lc.cancelSettle = nil
	if lc.toast.Phase() != PhaseEntering {
		return
	}
	lc.stepTo(PhaseVisible)
}

func (lc *lifecycle) expire() {
	lc.cancelExpire = nil
	lc.dismiss()
}

// dismiss moves the toast to leaving and schedules its disposal. It is the
// single entry point for the auto, manual and hide-all paths.
func (lc *lifecycle) dismiss() {
	t := lc.toast
	if t.Phase() >= PhaseLeaving {
		return
	}
	lc.cancelPending()

	// Dismissing early still walks through visible, so phases stay ordered.
	lc.stepTo(PhaseLeaving)
	lc.node.SetEntranceState(false)

	timing := t.stack.registry.config.Timing
	lc.cancelRemove = t.stack.registry.sched.After(timing.TransitionDuration, lc.dispose)
}

// dispose unmounts the node and drops the toast from its stack. The
// leaving -> disposed CAS guarantees it runs once.
func (lc *lifecycle) dispose() {
	lc.cancelRemove = nil
	t := lc.toast
	if !t.phase.CompareAndSwap(int32(PhaseLeaving), int32(PhaseDisposed)) {
		return
	}
	t.stack.registry.notify(t, PhaseLeaving, PhaseDisposed)

	lc.node.Unmount()
	t.stack.remove(t)
	close(t.disposed)

	t.stack.registry.logger.Debug("toast disposed",
		"toast", t.String(),
		"lifetime", t.stack.registry.sched.Now().Sub(t.createdAt).Round(time.Millisecond))
}

// stepTo advances one phase at a time up to target, notifying observers of
// each step.
func (lc *lifecycle) stepTo(target Phase) {
	t := lc.toast
	for {
		from := t.Phase()
		if from >= target {
			return
		}
		to := from + 1
		if t.phase.CompareAndSwap(int32(from), int32(to)) {
			t.stack.registry.notify(t, from, to)
		}
	}
}

func (lc *lifecycle) cancelPending() {
	for _, cancel := range []*func(){&lc.cancelEnter, &lc.cancelSettle, &lc.cancelExpire} {
		if *cancel != nil {
			(*cancel)()
			*cancel = nil
		}
	}
}
