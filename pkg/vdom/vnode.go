package vdom

import "strings"

// VKind is the node type discriminator.
type VKind uint8

const (
	KindElement  VKind = iota // <div>, <button>, etc.
	KindText                  // Plain text node
	KindFragment              // Grouping without wrapper
	KindRaw                   // Trusted markup, rendered verbatim
)

// String returns the string representation of the VKind.
func (k VKind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	case KindFragment:
		return "Fragment"
	case KindRaw:
		return "Raw"
	default:
		return "Unknown"
	}
}

// VNode is one node of the tree.
type VNode struct {
	Kind     VKind
	Tag      string   // Element tag name
	Props    Props    // Attributes and event handlers
	Children []*VNode
	Key      string // Reconciliation key
	Text     string // For KindText and KindRaw
	HID      string // Stable address used by patches
}

// Props holds attributes and event handlers.
type Props map[string]any

// IsInteractive reports whether the node carries an event handler.
func (v *VNode) IsInteractive() bool {
	if v == nil || v.Kind != KindElement {
		return false
	}
	for key := range v.Props {
		if isEventHandler(key) {
			return true
		}
	}
	return false
}

// Handler returns the handler registered for event ("click", "onclick").
func (v *VNode) Handler(event string) (func(), bool) {
	if v == nil || v.Props == nil {
		return nil, false
	}
	if !strings.HasPrefix(event, "on") {
		event = "on" + event
	}
	fn, ok := v.Props[strings.ToLower(event)].(func())
	return fn, ok && fn != nil
}

// Walk calls fn for v and every descendant in document order. Returning
// false from fn skips the node's children.
func (v *VNode) Walk(fn func(*VNode) bool) {
	if v == nil || !fn(v) {
		return
	}
	for _, c := range v.Children {
		c.Walk(fn)
	}
}

// Attr is a single attribute.
type Attr struct {
	Key   string
	Value any
}

// IsEmpty returns true if this is an empty/nil attribute.
func (a Attr) IsEmpty() bool {
	return a.Key == ""
}

// EventHandler binds a handler to a DOM event.
type EventHandler struct {
	Event   string // "onclick"
	Handler func()
}
