package vdom

// voidElements cannot have children.
var voidElements = map[string]bool{
	"br":    true,
	"hr":    true,
	"img":   true,
	"input": true,
	"link":  true,
	"meta":  true,
}

// IsVoidElement returns true if the tag is a void element.
func IsVoidElement(tag string) bool {
	return voidElements[tag]
}

// El creates an element. Arguments can be nil, Attr, []Attr, EventHandler,
// *VNode, []*VNode or string (a text child); anything else is ignored.
func El(tag string, args ...any) *VNode {
	node := &VNode{
		Kind:  KindElement,
		Tag:   tag,
		Props: make(Props),
	}

	for _, arg := range args {
		switch v := arg.(type) {
		case nil:
			continue
		case Attr:
			node.setAttr(v)
		case []Attr:
			for _, a := range v {
				node.setAttr(a)
			}
		case EventHandler:
			if v.Handler != nil {
				node.Props[v.Event] = v.Handler
			}
		case *VNode:
			if v != nil {
				node.Children = append(node.Children, v)
			}
		case []*VNode:
			for _, c := range v {
				if c != nil {
					node.Children = append(node.Children, c)
				}
			}
		case string:
			node.Children = append(node.Children, Text(v))
		}
	}

	return node
}

func (v *VNode) setAttr(a Attr) {
	if a.IsEmpty() {
		return
	}
	if a.Key == "key" {
		if s, ok := a.Value.(string); ok {
			v.Key = s
		}
		return
	}
	if a.Key == "hid" {
		if s, ok := a.Value.(string); ok {
			v.HID = s
		}
		return
	}
	v.Props[a.Key] = a.Value
}

// Div creates a <div>.
func Div(args ...any) *VNode { return El("div", args...) }

// Span creates a <span>.
func Span(args ...any) *VNode { return El("span", args...) }

// Button creates a <button>.
func Button(args ...any) *VNode { return El("button", args...) }

// StyleEl creates a <style> element holding trusted CSS.
func StyleEl(css string, args ...any) *VNode {
	return El("style", append(args, Raw(css))...)
}
