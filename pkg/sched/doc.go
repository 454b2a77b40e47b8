// Package sched provides the single logical timeline that toast lifecycles
// run on.
//
// A Scheduler serializes every callback: functions queued with Dispatch and
// timers armed with After never run concurrently with each other. This gives
// the toast engine the cooperative, single-threaded model it relies on while
// callers remain free to call into it from any goroutine.
//
//	loop := sched.NewLoop(sched.WithLogger(logger))
//	loop.Start()
//	defer loop.Close()
//
//	cancel := loop.After(300*time.Millisecond, func() {
//	    // runs on the loop goroutine
//	})
//	defer cancel()
package sched
