package realtime

import (
	"net/http"

	ws "github.com/coder/websocket"
)

// Handler upgrades the request to a WebSocket and runs it as a hub client
// until the device disconnects.
func (h *Hub) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := ws.Accept(w, r, &ws.AcceptOptions{
			// The app is served on the household LAN under whatever
			// hostname the box has, so origin checks only cause grief.
			InsecureSkipVerify: true,
		})
		if err != nil {
			h.logger.Warn("websocket accept", "error", err)
			return
		}

		newClient(h, conn).run(r.Context())
	}
}
