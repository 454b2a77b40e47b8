// Package vdom is the in-memory element tree the DOM surface renders toasts
// into.
//
// Nodes are built with variadic factories:
//
//	Div(Class("toast", "success"), Key("t1"),
//	    Div(Class("toast-title"), Text(title)),
//	    Button(Class("toast-close"), OnClick(hide), Text("×")),
//	)
//
// Diff compares two trees and returns the Patch operations that turn the
// first into the second. Nodes are addressed by their HID, which the owner
// of the tree assigns and which Diff carries from the old tree to the new.
package vdom
