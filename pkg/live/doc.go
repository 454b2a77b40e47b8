// Package live mirrors a surface.Surface into browsers over WebSocket.
//
// Every connection receives a reset frame holding the current markup of
// the surface, followed by the surface's patch batches in order. Browsers
// report clicks on elements carrying a data-on-click marker, and the hub
// runs the matching handler, which for toasts is the manual dismiss path.
//
//	s := surface.New()
//	reg := toast.NewRegistry(s)
//	hub := live.NewHub(s)
//	http.ListenAndServe(":8080", live.NewRouter(hub, "Notifications"))
package live
