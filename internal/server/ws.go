package server

import (
	"encoding/json"
	"net/http"

	"github.com/coder/websocket"

	"github.com/wethinkt/go-tonekit/internal/palette"
	"github.com/wethinkt/go-tonekit/internal/tonelog"
)

// handleEventsWS upgrades to WebSocket, sends a snapshot event, then streams
// every manager event as JSON text messages.
func (s *Server) handleEventsWS(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true, // CORS handled by middleware
	})
	if err != nil {
		tonelog.Log.Error("WebSocket accept failed", "error", err)
		return
	}
	defer conn.CloseNow()

	// Subscribe before the snapshot so no event falls between the two.
	ch, unsub := s.hub.Subscribe()
	defer unsub()

	wsConnectionsActive.Inc()
	defer wsConnectionsActive.Dec()
	tonelog.Log.Info("WebSocket client connected", "remote", r.RemoteAddr)

	ctx := conn.CloseRead(r.Context())

	var snapshot palette.Event
	s.Do(func(m *palette.Manager) { snapshot = m.Status("snapshot") })
	if err := writeEvent(r, conn, snapshot); err != nil {
		return
	}

	for {
		select {
		case <-ctx.Done():
			conn.Close(websocket.StatusNormalClosure, "server shutting down")
			return
		case ev, ok := <-ch:
			if !ok {
				conn.Close(websocket.StatusNormalClosure, "subscription closed")
				return
			}
			if err := writeEvent(r, conn, ev); err != nil {
				return
			}
		}
	}
}

func writeEvent(r *http.Request, conn *websocket.Conn, ev palette.Event) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	if err := conn.Write(r.Context(), websocket.MessageText, data); err != nil {
		tonelog.Log.Debug("WS write failed", "error", err)
		return err
	}
	return nil
}
