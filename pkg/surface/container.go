package surface

import (
	"fmt"
	"time"

	"github.com/vango-dev/toastkit/pkg/toast"
	"github.com/vango-dev/toastkit/pkg/vdom"
)

type container struct {
	surface *Surface
	vnode   *vdom.VNode
}

// Mount implements toast.Container. The node is appended inert; neither
// show nor hide is set until the lifecycle says so.
func (c *container) Mount(d toast.Descriptor) toast.Node {
	s := c.surface
	s.mu.Lock()
	defer s.mu.Unlock()

	n := &node{
		container: c,
		desc:      d,
		hid:       fmt.Sprintf("t%d", d.Key),
		mounted:   true,
	}
	n.vnode = n.build()

	children := c.vnode.Children[:len(c.vnode.Children):len(c.vnode.Children)]
	s.replaceChildren(c.vnode, append(children, n.vnode))
	return n
}

type entrance uint8

const (
	inert entrance = iota
	shown
	hidden
)

type node struct {
	container *container
	desc      toast.Descriptor
	hid       string
	vnode     *vdom.VNode

	state     entrance
	countdown time.Duration
	counting  bool
	mounted   bool
}

// SetEntranceState implements toast.Node.
func (n *node) SetEntranceState(entering bool) {
	if entering {
		n.update(func() { n.state = shown })
	} else {
		n.update(func() { n.state = hidden })
	}
}

// StartCountdown implements toast.Node. The bar shrinks from full width to
// zero over d.
func (n *node) StartCountdown(d time.Duration) {
	n.update(func() {
		n.countdown = d
		n.counting = true
	})
}

// Unmount implements toast.Node.
func (n *node) Unmount() {
	s := n.container.surface
	s.mu.Lock()
	defer s.mu.Unlock()
	if !n.mounted {
		return
	}
	n.mounted = false

	parent := n.container.vnode
	children := make([]*vdom.VNode, 0, len(parent.Children))
	for _, c := range parent.Children {
		if c != n.vnode {
			children = append(children, c)
		}
	}
	s.replaceChildren(parent, children)
}

// update applies mutate and publishes the difference between the old and
// the rebuilt element.
func (n *node) update(mutate func()) {
	s := n.container.surface
	s.mu.Lock()
	defer s.mu.Unlock()
	if !n.mounted {
		return
	}

	mutate()
	next := n.build()
	patches := vdom.Diff(n.vnode, next)

	siblings := n.container.vnode.Children
	for i, c := range siblings {
		if c == n.vnode {
			siblings[i] = next
			break
		}
	}
	n.vnode = next
	s.emit(patches)
}

func (n *node) build() *vdom.VNode {
	d := n.desc
	variant := className(string(d.Variant))

	var state string
	switch n.state {
	case shown:
		state = "show"
	case hidden:
		state = "hide"
	}

	role, live := "status", "polite"
	if d.Variant == toast.SeverityError {
		role, live = "alert", "assertive"
	}

	var progress *vdom.VNode
	if d.HasCountdown {
		style := "width: 100%"
		if n.counting {
			style = fmt.Sprintf("width: 0%%; transition-duration: %dms", n.countdown.Milliseconds())
		}
		progress = vdom.Div(vdom.HID(n.hid+"-progress"), vdom.Class("toast-progress"), vdom.StyleAttr(style))
	}

	return vdom.Div(
		vdom.HID(n.hid),
		vdom.Key(n.hid),
		vdom.Class("toast", variant, state),
		vdom.Role(role),
		vdom.AriaLive(live),
		vdom.Data("severity", string(d.Severity)),
		vdom.Div(vdom.HID(n.hid+"-icon"), vdom.Class("toast-icon"), vdom.Text(d.Style.Icon)),
		vdom.Div(vdom.Class("toast-content"),
			vdom.Div(vdom.HID(n.hid+"-title"), vdom.Class("toast-title"), vdom.Text(d.Title)),
			vdom.Div(vdom.HID(n.hid+"-message"), vdom.Class("toast-message"), vdom.Text(d.Message)),
		),
		progress,
		vdom.Button(
			vdom.HID(n.hid+"-close"),
			vdom.Class("toast-close"),
			vdom.Type("button"),
			vdom.AriaLabel("Close"),
			vdom.OnClick(d.OnClose),
			vdom.Text(d.CloseGlyph),
		),
	)
}
