package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Cross-origin policy is enforced by the CORS middleware in front of the
	// router; the websocket handshake accepts any origin that got this far.
	CheckOrigin: func(r *http.Request) bool { return true },
}

const liveWriteTimeout = 10 * time.Second

// Live upgrades to a websocket and streams change events for the requested
// tables (?tables=projects,visits). Clients treat each event as an
// invalidation signal and re-run their reads. Subscribers that fall behind
// are disconnected.
func (h *Handlers) Live(w http.ResponseWriter, r *http.Request) {
	if h.Hub == nil {
		writeError(w, http.StatusServiceUnavailable, "live_unavailable", "live updates not configured")
		return
	}

	var tables []string
	if raw := strings.TrimSpace(r.URL.Query().Get("tables")); raw != "" {
		for _, table := range strings.Split(raw, ",") {
			if table = strings.TrimSpace(table); table != "" {
				tables = append(tables, table)
			}
		}
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.BusinessError("live: upgrade failed", err)
		return
	}

	sub := h.Hub.Subscribe(tables)
	defer sub.Close()
	defer conn.Close()

	// Reader goroutine: surfaces client disconnects and drains control frames.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case event := <-sub.Events():
			_ = conn.SetWriteDeadline(time.Now().Add(liveWriteTimeout))
			if err := conn.WriteJSON(event); err != nil {
				return
			}
		case <-sub.Done():
			return
		case <-done:
			return
		case <-r.Context().Done():
			return
		}
	}
}
