package toast_test

import (
	"sync"
	"testing"
	"time"

	"github.com/vango-dev/toastkit/pkg/toast"
	"github.com/vango-dev/toastkit/pkg/toasttest"
)

type harness struct {
	clock *toasttest.Clock
	rend  *toasttest.Renderer
	reg   *toast.Registry
	trans *transitions
	nodes map[*toast.Toast]*toasttest.Node
}

func newHarness(t *testing.T, opts ...toast.Option) *harness {
	t.Helper()
	h := &harness{
		clock: toasttest.NewClock(),
		rend:  toasttest.NewRenderer(),
		trans: &transitions{},
		nodes: make(map[*toast.Toast]*toasttest.Node),
	}
	opts = append([]toast.Option{
		toast.WithScheduler(h.clock),
		toast.WithObserver(h.trans),
	}, opts...)
	h.reg = toast.NewRegistry(h.rend, opts...)
	return h
}

// show shows a toast, flushes the mount and remembers its node.
func (h *harness) show(t *testing.T, sev toast.Severity, title string, opts ...toast.ShowOption) *toast.Toast {
	t.Helper()
	tt := h.reg.Show(sev, title, title+" message", opts...)
	h.clock.Flush()

	c, ok := h.rend.Lookup(tt.Position())
	if !ok {
		t.Fatalf("no container for %s", tt.Position())
	}
	nodes := c.Nodes()
	if len(nodes) == 0 {
		t.Fatalf("nothing mounted for %s", tt)
	}
	h.nodes[tt] = nodes[len(nodes)-1]
	return tt
}

func (h *harness) node(t *testing.T, tt *toast.Toast) *toasttest.Node {
	t.Helper()
	n, ok := h.nodes[tt]
	if !ok {
		t.Fatalf("no node recorded for %s", tt)
	}
	return n
}

func expectPhase(t *testing.T, tt *toast.Toast, want toast.Phase, at time.Duration) {
	t.Helper()
	if got := tt.Phase(); got != want {
		t.Fatalf("at %v: phase = %s, want %s", at, got, want)
	}
}

type step struct {
	from, to toast.Phase
}

// transitions records phase changes per toast.
type transitions struct {
	mu    sync.Mutex
	steps map[*toast.Toast][]step
}

func (tr *transitions) PhaseChanged(t *toast.Toast, from, to toast.Phase) {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	if tr.steps == nil {
		tr.steps = make(map[*toast.Toast][]step)
	}
	tr.steps[t] = append(tr.steps[t], step{from, to})
}

func (tr *transitions) of(t *toast.Toast) []step {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	return append([]step(nil), tr.steps[t]...)
}

func (tr *transitions) count(t *toast.Toast, to toast.Phase) int {
	n := 0
	for _, s := range tr.of(t) {
		if s.to == to {
			n++
		}
	}
	return n
}
