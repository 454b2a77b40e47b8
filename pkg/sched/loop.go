package sched

import (
	"log/slog"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultQueueSize is the initial dispatch queue capacity.
const DefaultQueueSize = 256

// LoopConfig configures a Loop.
type LoopConfig struct {
	// QueueSize is the initial capacity of the dispatch queue. The queue
	// grows past it; dispatched work is never discarded while the loop runs.
	QueueSize int

	// Logger receives panic reports.
	Logger *slog.Logger
}

// LoopOption configures a Loop.
type LoopOption func(*LoopConfig)

// WithQueueSize sets the initial dispatch queue capacity.
func WithQueueSize(n int) LoopOption {
	return func(c *LoopConfig) {
		c.QueueSize = n
	}
}

// WithLogger sets the loop logger.
func WithLogger(logger *slog.Logger) LoopOption {
	return func(c *LoopConfig) {
		c.Logger = logger
	}
}

func defaultLoopConfig() LoopConfig {
	return LoopConfig{
		QueueSize: DefaultQueueSize,
		Logger:    slog.Default(),
	}
}

// Loop is a Scheduler backed by one goroutine draining a dispatch queue.
// Timers are real time.AfterFunc timers that hand their callback to the loop.
type Loop struct {
	mu    sync.Mutex
	queue []func()
	spare []func()

	notify    chan struct{} // capacity 1; signals a non-empty queue
	done      chan struct{}
	closed    atomic.Bool
	started   atomic.Bool
	closeOnce sync.Once
	wg        sync.WaitGroup
	logger    *slog.Logger
}

// NewLoop creates a Loop. Call Start before dispatching work.
func NewLoop(opts ...LoopOption) *Loop {
	config := defaultLoopConfig()
	for _, opt := range opts {
		opt(&config)
	}
	if config.QueueSize <= 0 {
		config.QueueSize = DefaultQueueSize
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	return &Loop{
		queue:  make([]func(), 0, config.QueueSize),
		spare:  make([]func(), 0, config.QueueSize),
		notify: make(chan struct{}, 1),
		done:   make(chan struct{}),
		logger: config.Logger,
	}
}

// Start launches the loop goroutine. Subsequent calls are no-ops.
func (l *Loop) Start() {
	if !l.started.CompareAndSwap(false, true) {
		return
	}
	l.wg.Add(1)
	go l.run()
}

func (l *Loop) run() {
	defer l.wg.Done()
	for {
		select {
		case <-l.notify:
		case <-l.done:
			return
		}
		l.drain()
	}
}

// drain runs queued callbacks in order, including any they dispatch,
// until the queue is empty or the loop is closed.
func (l *Loop) drain() {
	for {
		l.mu.Lock()
		batch := l.queue
		l.queue = l.spare[:0]
		l.mu.Unlock()
		if len(batch) == 0 {
			return
		}

		for i, fn := range batch {
			if l.closed.Load() {
				return
			}
			l.execute(fn)
			batch[i] = nil
		}

		l.mu.Lock()
		l.spare = batch[:0]
		l.mu.Unlock()
	}
}

// execute runs fn with panic recovery so one bad callback cannot stop the loop.
func (l *Loop) execute(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			l.logger.Error("dispatch panic",
				"panic", r,
				"stack", string(debug.Stack()))
		}
	}()
	fn()
}

// Dispatch implements Scheduler. It never blocks, so callbacks may
// dispatch further work. Work queued after Close is discarded.
func (l *Loop) Dispatch(fn func()) {
	if fn == nil || l.closed.Load() {
		return
	}
	l.mu.Lock()
	l.queue = append(l.queue, fn)
	l.mu.Unlock()

	select {
	case l.notify <- struct{}{}:
	default:
	}
}

// Closed reports whether Close has been called.
func (l *Loop) Closed() bool {
	return l.closed.Load()
}

// After implements Scheduler.
func (l *Loop) After(d time.Duration, fn func()) func() {
	if d < 0 {
		d = 0
	}
	// fired keeps a cancelled timer from dispatching if Stop lost the race.
	var fired atomic.Bool
	timer := time.AfterFunc(d, func() {
		if fired.CompareAndSwap(false, true) {
			l.Dispatch(fn)
		}
	})
	return func() {
		fired.Store(true)
		timer.Stop()
	}
}

// Now implements Scheduler.
func (l *Loop) Now() time.Time {
	return time.Now()
}

// Close stops the loop and waits for the goroutine to exit. Pending
// callbacks are dropped.
func (l *Loop) Close() {
	l.closeOnce.Do(func() {
		l.closed.Store(true)
		close(l.done)
	})
	l.wg.Wait()
}

var _ Scheduler = (*Loop)(nil)
