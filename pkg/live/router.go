package live

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// WebSocketPath is where the client script connects.
const WebSocketPath = "/_toast/ws"

// NewRouter serves the surface page at "/" and the hub at WebSocketPath.
// Mount it under another chi router to combine it with an application.
func NewRouter(h *Hub, title string) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServePage(title))
	r.Get(WebSocketPath, h.HandleWebSocket)
	r.Get("/_toast/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	return r
}
