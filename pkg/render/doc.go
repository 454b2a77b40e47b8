// Package render turns vdom trees into HTML.
//
// All text content is escaped. Attribute values are escaped for quoted
// attribute context. Only KindRaw nodes are written verbatim, and the DOM
// surface uses them for its own stylesheet alone.
//
// Nodes with a HID are rendered with a data-hid attribute, and nodes with
// event handlers get a data-on-<event> marker, so a client can address
// patches and report events back:
//
//	r := render.NewRenderer(render.RendererConfig{})
//	html, err := r.RenderToString(node)
//
// RenderPage wraps a body tree in a complete document with the client
// script injected at the end of the body.
package render
