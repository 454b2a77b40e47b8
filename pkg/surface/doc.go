// Package surface renders toasts into an in-memory DOM.
//
// A Surface implements toast.Renderer over a vdom tree rooted at a single
// element. Every change to the tree is reported to subscribers as a batch
// of vdom patches, so a remote client that applied the snapshot returned
// by Subscribe and every batch after it holds the same DOM as the server.
//
//	s := surface.New()
//	reg := toast.NewRegistry(s)
//	html, cancel, err := s.Subscribe(sink)
//
// Title and message are always emitted as text nodes and escaped when
// rendered. The stylesheet is derived from the registry's presentation and
// inserted the first time a stack is created.
package surface
