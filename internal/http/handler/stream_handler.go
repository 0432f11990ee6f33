package handler

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/your-org/strategy-miner/internal/engine"
)

// StreamHandler pushes generation summaries to websocket subscribers
// as they complete. Like StatusHandler it implements engine.StatsSink.
type StreamHandler struct {
	upgrader websocket.Upgrader
	logger   *zap.Logger

	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
}

// NewStreamHandler creates a new StreamHandler.
func NewStreamHandler(logger *zap.Logger) *StreamHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StreamHandler{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		logger:  logger,
		clients: make(map[*websocket.Conn]struct{}),
	}
}

// RegisterRoutes registers the stream route on a chi router.
func (h *StreamHandler) RegisterRoutes(r chi.Router) {
	r.Get("/status/stream", h.ServeWS)
}

// ServeWS upgrades the connection and keeps it subscribed until the
// peer disconnects.
func (h *StreamHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("Failed to upgrade websocket connection", zap.Error(err))
		return
	}

	h.mu.Lock()
	h.clients[conn] = struct{}{}
	count := len(h.clients)
	h.mu.Unlock()
	h.logger.Info("Websocket subscriber connected", zap.Int("subscribers", count))

	// Reader loop exists only to observe the close handshake.
	go func() {
		defer h.drop(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// PublishGeneration implements engine.StatsSink by broadcasting the
// summary to every subscriber. Slow or dead connections are dropped.
func (h *StreamHandler) PublishGeneration(stats engine.GenerationStats) {
	payload, err := json.Marshal(stats)
	if err != nil {
		h.logger.Error("Failed to marshal generation stats", zap.Error(err))
		return
	}

	h.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(h.clients))
	for conn := range h.clients {
		conns = append(conns, conn)
	}
	h.mu.Unlock()

	for _, conn := range conns {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			h.logger.Debug("Dropping websocket subscriber", zap.Error(err))
			h.drop(conn)
		}
	}
}

// Subscribers returns the current number of connected clients.
func (h *StreamHandler) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close disconnects every subscriber.
func (h *StreamHandler) Close() {
	h.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(h.clients))
	for conn := range h.clients {
		conns = append(conns, conn)
	}
	h.clients = make(map[*websocket.Conn]struct{})
	h.mu.Unlock()

	for _, conn := range conns {
		conn.Close()
	}
}

func (h *StreamHandler) drop(conn *websocket.Conn) {
	h.mu.Lock()
	_, ok := h.clients[conn]
	delete(h.clients, conn)
	h.mu.Unlock()
	if ok {
		conn.Close()
	}
}
