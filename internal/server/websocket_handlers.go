package server

import (
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
)

// WebSocket upgrader with reasonable defaults.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Allow connections from any origin in development
		// In production, you should check against allowed origins
		return true
	},
}

// statusInterval is how often status snapshots are pushed to clients.
const statusInterval = time.Second

// statusTracker counts processed operations for the status stream.
type statusTracker struct {
	processed atomic.Int64
	failed    atomic.Int64
	startedAt time.Time
}

func newStatusTracker() *statusTracker {
	return &statusTracker{startedAt: time.Now()}
}

func (t *statusTracker) recordSuccess() { t.processed.Add(1) }
func (t *statusTracker) recordFailure() { t.failed.Add(1) }

// StatusSnapshot is one status message sent over the WebSocket stream.
type StatusSnapshot struct {
	Type          string `json:"type"`
	Processed     int64  `json:"processed"`
	Failed        int64  `json:"failed"`
	UptimeSeconds int64  `json:"uptime_seconds"`
	Time          string `json:"time"`
}

func (t *statusTracker) snapshot() StatusSnapshot {
	return StatusSnapshot{
		Type:          "status",
		Processed:     t.processed.Load(),
		Failed:        t.failed.Load(),
		UptimeSeconds: int64(time.Since(t.startedAt).Seconds()),
		Time:          time.Now().UTC().Format(time.RFC3339),
	}
}

// statusWebSocketHandler streams processing status snapshots to the client
// until it disconnects.
func (s *Server) statusWebSocketHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("failed to upgrade connection to WebSocket", "error", err)
		return
	}
	defer func() { _ = conn.Close() }()

	websocketConnections.Inc()
	defer websocketConnections.Dec()

	slog.Info("status WebSocket connection established", "remote_addr", r.RemoteAddr)

	// Reader goroutine: detect client disconnect and discard any input.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
			websocketMessagesTotal.WithLabelValues("received").Inc()
		}
	}()

	if err := conn.WriteJSON(s.status.snapshot()); err != nil {
		return
	}
	websocketMessagesTotal.WithLabelValues("sent").Inc()

	ticker := time.NewTicker(statusInterval)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := conn.WriteJSON(s.status.snapshot()); err != nil {
				return
			}
			websocketMessagesTotal.WithLabelValues("sent").Inc()
		}
	}
}
