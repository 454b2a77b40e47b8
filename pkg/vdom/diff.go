package vdom

import (
	"fmt"
	"strconv"
)

// Diff compares two trees and returns the patches that turn prev into next.
// HIDs are carried from prev to next for every node that survives.
func Diff(prev, next *VNode) []Patch {
	var patches []Patch
	diff(prev, next, "", &patches)
	return patches
}

// parentHID is the enclosing element, used to address text changes.
func diff(prev, next *VNode, parentHID string, patches *[]Patch) {
	if prev == nil {
		return // inserted by the parent
	}
	if next == nil {
		*patches = append(*patches, Patch{Op: PatchRemoveNode, HID: prev.HID})
		return
	}

	if prev.Kind != next.Kind || (prev.Kind == KindElement && prev.Tag != next.Tag) {
		*patches = append(*patches, Patch{Op: PatchReplaceNode, HID: prev.HID, Node: next})
		return
	}

	if next.HID == "" {
		next.HID = prev.HID
	}

	switch prev.Kind {
	case KindText, KindRaw:
		if prev.Text == next.Text {
			return
		}
		op := PatchSetText
		if prev.Kind == KindRaw {
			op = PatchReplaceNode
		}
		target := prev.HID
		if target == "" {
			target = parentHID
		}
		if target != "" {
			*patches = append(*patches, Patch{Op: op, HID: target, Value: next.Text, Node: next})
		}
	case KindElement:
		diffProps(prev, next, patches)
		diffChildren(next, prev.Children, next.Children, next.HID, patches)
	case KindFragment:
		diffChildren(next, prev.Children, next.Children, parentHID, patches)
	}
}

// diffProps compares attributes. Event handlers are not attributes and are
// rebound by the owner of the tree.
func diffProps(prev, next *VNode, patches *[]Patch) {
	for key, prevVal := range prev.Props {
		if isEventHandler(key) {
			continue
		}
		nextVal, exists := next.Props[key]
		if !exists {
			*patches = append(*patches, Patch{Op: PatchRemoveAttr, HID: prev.HID, Key: key})
		} else if propToString(prevVal) != propToString(nextVal) {
			*patches = append(*patches, Patch{
				Op:    PatchSetAttr,
				HID:   prev.HID,
				Key:   key,
				Value: propToString(nextVal),
			})
		}
	}

	for key, nextVal := range next.Props {
		if isEventHandler(key) {
			continue
		}
		if _, exists := prev.Props[key]; !exists {
			*patches = append(*patches, Patch{
				Op:    PatchSetAttr,
				HID:   prev.HID,
				Key:   key,
				Value: propToString(nextVal),
			})
		}
	}
}

func diffChildren(parent *VNode, prev, next []*VNode, parentHID string, patches *[]Patch) {
	if hasKeys(prev) || hasKeys(next) {
		diffKeyedChildren(parent, prev, next, parentHID, patches)
		return
	}

	for i := 0; i < len(prev) || i < len(next); i++ {
		switch {
		case i >= len(prev):
			*patches = append(*patches, Patch{
				Op:       PatchInsertNode,
				ParentID: parent.HID,
				Index:    i,
				Node:     next[i],
			})
		case i >= len(next):
			*patches = append(*patches, Patch{Op: PatchRemoveNode, HID: prev[i].HID})
		default:
			diff(prev[i], next[i], parentHID, patches)
		}
	}
}

// diffKeyedChildren matches children by key so a removal in the middle of
// a list does not rewrite its tail.
func diffKeyedChildren(parent *VNode, prev, next []*VNode, parentHID string, patches *[]Patch) {
	prevByKey := make(map[string]int, len(prev))
	for i, child := range prev {
		if child.Key != "" {
			prevByKey[child.Key] = i
		}
	}

	// Removals first so that indexes of later moves and inserts refer to
	// the list as it is being rebuilt.
	nextKeys := make(map[string]bool, len(next))
	for _, child := range next {
		if child.Key != "" {
			nextKeys[child.Key] = true
		}
	}
	var survivors []int
	for i, child := range prev {
		if child.Key == "" || !nextKeys[child.Key] {
			*patches = append(*patches, Patch{Op: PatchRemoveNode, HID: child.HID})
			continue
		}
		survivors = append(survivors, i)
	}

	matched := make(map[int]bool, len(prev))
	pos := 0
	for nextIdx, child := range next {
		prevIdx, ok := prevByKey[child.Key]
		if child.Key == "" || !ok || matched[prevIdx] {
			*patches = append(*patches, Patch{
				Op:       PatchInsertNode,
				ParentID: parent.HID,
				Index:    nextIdx,
				Node:     child,
			})
			continue
		}

		for pos < len(survivors) && matched[survivors[pos]] {
			pos++
		}
		matched[prevIdx] = true
		if pos < len(survivors) && survivors[pos] == prevIdx {
			pos++
		} else {
			*patches = append(*patches, Patch{
				Op:       PatchMoveNode,
				HID:      prev[prevIdx].HID,
				ParentID: parent.HID,
				Index:    nextIdx,
			})
		}
		diff(prev[prevIdx], child, parentHID, patches)
	}
}

func hasKeys(children []*VNode) bool {
	for _, child := range children {
		if child != nil && child.Key != "" {
			return true
		}
	}
	return false
}

// propToString converts a prop value to its attribute text.
func propToString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}
