package sched

import (
	"bytes"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"
)

func waitFor(t *testing.T, ch <-chan struct{}, what string) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for %s", what)
	}
}

func TestLoopDispatchOrder(t *testing.T) {
	loop := NewLoop()
	loop.Start()
	defer loop.Close()

	var (
		mu  sync.Mutex
		got []int
	)
	done := make(chan struct{})
	for i := 0; i < 5; i++ {
		i := i
		loop.Dispatch(func() {
			mu.Lock()
			got = append(got, i)
			mu.Unlock()
			if i == 4 {
				close(done)
			}
		})
	}
	waitFor(t, done, "dispatched callbacks")

	mu.Lock()
	defer mu.Unlock()
	for i, v := range got {
		if v != i {
			t.Fatalf("callbacks ran out of order: %v", got)
		}
	}
}

func TestLoopAfterFires(t *testing.T) {
	loop := NewLoop()
	loop.Start()
	defer loop.Close()

	done := make(chan struct{})
	start := time.Now()
	loop.After(20*time.Millisecond, func() { close(done) })
	waitFor(t, done, "timer")

	if elapsed := time.Since(start); elapsed < 20*time.Millisecond {
		t.Errorf("timer fired after %v, want >= 20ms", elapsed)
	}
}

func TestLoopAfterCancel(t *testing.T) {
	loop := NewLoop()
	loop.Start()
	defer loop.Close()

	fired := make(chan struct{}, 1)
	cancel := loop.After(20*time.Millisecond, func() { fired <- struct{}{} })
	cancel()
	cancel() // second cancel is harmless

	select {
	case <-fired:
		t.Fatal("cancelled timer fired")
	case <-time.After(60 * time.Millisecond):
	}
}

func TestLoopRecoversFromPanic(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	loop := NewLoop(WithLogger(logger))
	loop.Start()
	defer loop.Close()

	done := make(chan struct{})
	loop.Dispatch(func() { panic("boom") })
	loop.Dispatch(func() { close(done) })
	waitFor(t, done, "callback after panic")

	loop.Close()
	if !strings.Contains(buf.String(), "dispatch panic") {
		t.Errorf("expected panic to be logged, got %q", buf.String())
	}
}

func TestLoopDispatchAfterCloseIsDropped(t *testing.T) {
	loop := NewLoop()
	loop.Start()
	loop.Close()

	ran := false
	loop.Dispatch(func() { ran = true })
	time.Sleep(10 * time.Millisecond)
	if ran {
		t.Error("callback ran after Close")
	}
}

func TestLoopStartIsIdempotent(t *testing.T) {
	loop := NewLoop(WithQueueSize(1))
	loop.Start()
	loop.Start()
	defer loop.Close()

	done := make(chan struct{})
	loop.Dispatch(func() { close(done) })
	waitFor(t, done, "dispatch")
}

func TestLoopBurstPastQueueSizeRunsEverything(t *testing.T) {
	loop := NewLoop(WithQueueSize(4))
	loop.Start()
	defer loop.Close()

	gate := make(chan struct{})
	loop.Dispatch(func() { <-gate })

	const n = 1000
	var (
		mu  sync.Mutex
		got []int
	)
	done := make(chan struct{})
	for i := 0; i < n; i++ {
		i := i
		loop.Dispatch(func() {
			mu.Lock()
			got = append(got, i)
			mu.Unlock()
			if i == n-1 {
				close(done)
			}
		})
	}
	close(gate)
	waitFor(t, done, "burst callbacks")

	mu.Lock()
	defer mu.Unlock()
	if len(got) != n {
		t.Fatalf("ran %d of %d callbacks", len(got), n)
	}
	for i, v := range got {
		if v != i {
			t.Fatalf("callback %d ran at position %d", v, i)
		}
	}
}

func TestLoopNestedDispatchRuns(t *testing.T) {
	loop := NewLoop(WithQueueSize(1))
	loop.Start()
	defer loop.Close()

	done := make(chan struct{})
	var depth func(n int)
	depth = func(n int) {
		if n == 0 {
			close(done)
			return
		}
		loop.Dispatch(func() { depth(n - 1) })
		loop.Dispatch(func() {})
	}
	loop.Dispatch(func() { depth(50) })
	waitFor(t, done, "nested dispatches")
}

func TestLoopTimersFiringTogetherAllRun(t *testing.T) {
	loop := NewLoop(WithQueueSize(2))
	loop.Start()
	defer loop.Close()

	gate := make(chan struct{})
	loop.Dispatch(func() { <-gate })

	const n = 64
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		loop.After(time.Millisecond, wg.Done)
	}
	time.Sleep(20 * time.Millisecond)
	close(gate)

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	waitFor(t, done, "timer callbacks")
}

func TestLoopClosed(t *testing.T) {
	loop := NewLoop()
	loop.Start()
	if loop.Closed() {
		t.Fatal("Closed before Close")
	}
	loop.Close()
	if !loop.Closed() {
		t.Fatal("Closed after Close = false")
	}
}
