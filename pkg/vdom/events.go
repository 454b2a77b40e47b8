package vdom

import "strings"

// OnClick handles click events.
func OnClick(handler func()) EventHandler {
	return EventHandler{Event: "onclick", Handler: handler}
}

// isEventHandler returns true if the prop key names an event handler.
// Case-insensitive so onclick, ONCLICK and onClick are all caught.
func isEventHandler(key string) bool {
	return len(key) > 2 && strings.EqualFold(key[:2], "on")
}
