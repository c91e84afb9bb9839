package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/tripcanvas/backend/internal/live"
)

const (
	writeTimeout = 10 * time.Second
	pongTimeout  = 60 * time.Second
	pingInterval = 30 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Origin policy is enforced by the CORS layer in front of the API;
	// browsers connecting from the SPA origin are allowed through here.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// StreamChanges handles GET /api/v1/trips/{tripID}/events.
// It upgrades the connection to a WebSocket and forwards one JSON message
// per change notification for the trip. Messages carry only the trip ID and
// the table that changed; clients refetch and recompute from fresh state.
func (s *Server) StreamChanges(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the error response.
		slog.Debug("websocket upgrade failed", "trip_id", tripID, "error", err)
		return
	}

	changes, release := s.changes.Subscribe(tripID)

	go writePump(conn, changes)
	go readPump(conn, release)
}

// writePump forwards change notifications to the connection and keeps it
// alive with periodic pings. It owns all writes on the connection and exits
// when the subscription channel closes or a write fails.
func writePump(conn *websocket.Conn, changes <-chan live.Change) {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()

	for {
		select {
		case change, ok := <-changes:
			conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if !ok {
				conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteJSON(change); err != nil {
				return
			}

		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump drains the connection to detect closure and process pongs.
// Inbound payloads are ignored; the stream is one-way.
func readPump(conn *websocket.Conn, release func()) {
	defer func() {
		release()
		conn.Close()
	}()

	conn.SetReadLimit(512)
	conn.SetReadDeadline(time.Now().Add(pongTimeout))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongTimeout))
		return nil
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.Debug("websocket read error", "error", err)
			}
			return
		}
	}
}
