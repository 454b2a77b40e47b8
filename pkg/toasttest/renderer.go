package toasttest

import (
	"sync"
	"time"

	"github.com/vango-dev/toastkit/pkg/toast"
)

// Renderer is a toast.Renderer that records what it is asked to do.
type Renderer struct {
	mu         sync.Mutex
	installs   int
	containers map[toast.Position]*Container
	order      []toast.Position
}

// NewRenderer creates an empty recording renderer.
func NewRenderer() *Renderer {
	return &Renderer{containers: make(map[toast.Position]*Container)}
}

// Install implements toast.Renderer.
func (r *Renderer) Install(toast.Presentation) {
	r.mu.Lock()
	r.installs++
	r.mu.Unlock()
}

// Installs returns how many times Install was called.
func (r *Renderer) Installs() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.installs
}

// Container implements toast.Renderer.
func (r *Renderer) Container(pos toast.Position) toast.Container {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.containers[pos]; ok {
		return c
	}
	c := &Container{renderer: r, Position: pos}
	r.containers[pos] = c
	r.order = append(r.order, pos)
	return c
}

// Lookup returns the container for pos if one was created.
func (r *Renderer) Lookup(pos toast.Position) (*Container, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.containers[pos]
	return c, ok
}

// Created returns the positions containers were created for, in order.
func (r *Renderer) Created() []toast.Position {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]toast.Position(nil), r.order...)
}

// Container records mounts for one position.
type Container struct {
	renderer *Renderer
	Position toast.Position
	nodes    []*Node
	mounted  int
}

// Mount implements toast.Container.
func (c *Container) Mount(d toast.Descriptor) toast.Node {
	c.renderer.mu.Lock()
	defer c.renderer.mu.Unlock()
	n := &Node{container: c, descriptor: d, mounted: true}
	c.nodes = append(c.nodes, n)
	c.mounted++
	return n
}

// Nodes returns the currently mounted nodes in mount order.
func (c *Container) Nodes() []*Node {
	c.renderer.mu.Lock()
	defer c.renderer.mu.Unlock()
	return append([]*Node(nil), c.nodes...)
}

// Mounted returns how many nodes were ever mounted in the container.
func (c *Container) Mounted() int {
	c.renderer.mu.Lock()
	defer c.renderer.mu.Unlock()
	return c.mounted
}

// Node records the calls made on one toast node.
type Node struct {
	container  *Container
	descriptor toast.Descriptor
	mounted    bool

	entering  bool
	toggles   []bool
	countdown []time.Duration
	unmounts  int
}

// SetEntranceState implements toast.Node.
func (n *Node) SetEntranceState(entering bool) {
	n.container.renderer.mu.Lock()
	defer n.container.renderer.mu.Unlock()
	n.entering = entering
	n.toggles = append(n.toggles, entering)
}

// StartCountdown implements toast.Node.
func (n *Node) StartCountdown(d time.Duration) {
	n.container.renderer.mu.Lock()
	defer n.container.renderer.mu.Unlock()
	n.countdown = append(n.countdown, d)
}

// Unmount implements toast.Node.
func (n *Node) Unmount() {
	n.container.renderer.mu.Lock()
	defer n.container.renderer.mu.Unlock()
	n.unmounts++
	if !n.mounted {
		return
	}
	n.mounted = false
	c := n.container
	for i, existing := range c.nodes {
		if existing == n {
			c.nodes = append(c.nodes[:i], c.nodes[i+1:]...)
			break
		}
	}
}

// Descriptor returns the descriptor the node was built from.
func (n *Node) Descriptor() toast.Descriptor {
	return n.descriptor
}

// Entering reports the last entrance state set on the node.
func (n *Node) Entering() bool {
	n.container.renderer.mu.Lock()
	defer n.container.renderer.mu.Unlock()
	return n.entering
}

// Toggles returns every entrance state set on the node, in order.
func (n *Node) Toggles() []bool {
	n.container.renderer.mu.Lock()
	defer n.container.renderer.mu.Unlock()
	return append([]bool(nil), n.toggles...)
}

// Countdowns returns the durations StartCountdown was called with.
func (n *Node) Countdowns() []time.Duration {
	n.container.renderer.mu.Lock()
	defer n.container.renderer.mu.Unlock()
	return append([]time.Duration(nil), n.countdown...)
}

// Unmounts returns how many times Unmount was called.
func (n *Node) Unmounts() int {
	n.container.renderer.mu.Lock()
	defer n.container.renderer.mu.Unlock()
	return n.unmounts
}

// Click simulates activating the close control.
func (n *Node) Click() {
	if n.descriptor.OnClose != nil {
		n.descriptor.OnClose()
	}
}

var (
	_ toast.Renderer  = (*Renderer)(nil)
	_ toast.Container = (*Container)(nil)
	_ toast.Node      = (*Node)(nil)
)
