package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

// The watch endpoint is the push half of the collection contract: every
// connected client receives the full, ordered trip list as one JSON array on
// connect and again after every change to the collection — snapshots, never
// diffs.

const (
	watchWriteWait = 10 * time.Second
	watchPongWait  = 60 * time.Second
	watchPingEvery = (watchPongWait * 9) / 10
)

var watchUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Cross-origin policy is enforced by the CORS middleware in front of the
	// router; the upgrader accepts any origin that made it this far.
	CheckOrigin: func(_ *http.Request) bool { return true },
}

// WatchTrips handles GET /api/trips/watch, upgrading to a websocket.
func (s *Server) WatchTrips(w http.ResponseWriter, r *http.Request) {
	conn, err := watchUpgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error response.
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	sub, err := s.watcher.Watch(ctx)
	if err != nil {
		s.log.ErrorContext(ctx, "watch subscribe failed", "error", err)
		return
	}

	// Reader goroutine: the client sends no application messages, but reads
	// must be pumped for pong frames and close detection.
	if err := conn.SetReadDeadline(time.Now().Add(watchPongWait)); err != nil {
		return
	}
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(watchPongWait))
	})
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(watchPingEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case trips, ok := <-sub:
			if !ok {
				return
			}
			if err := conn.SetWriteDeadline(time.Now().Add(watchWriteWait)); err != nil {
				return
			}
			if err := conn.WriteJSON(trips); err != nil {
				return
			}
		case <-ticker.C:
			if err := conn.SetWriteDeadline(time.Now().Add(watchWriteWait)); err != nil {
				return
			}
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
