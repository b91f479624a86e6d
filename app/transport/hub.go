package transport

import (
	"log/slog"
	"net/http"
	"sync"

	"telemetry-hub/app/clients"
	"telemetry-hub/app/domains"
	"telemetry-hub/app/services"

	"github.com/gorilla/websocket"
)

// Hub owns the websocket side of the system: it accepts agent connections,
// feeds connect/disconnect/snapshot events into the registry and metrics
// services, and carries outbound commands. It is the CommandSender the
// command service dispatches through.
type Hub struct {
	registry *services.RegistryService
	metrics  *services.MetricsService
	auth     *services.JWTService
	logger   *slog.Logger
	upgrader websocket.Upgrader

	mu    sync.RWMutex
	conns map[string]*Connection
}

// NewHub creates a new websocket hub
func NewHub(registry *services.RegistryService, metrics *services.MetricsService, auth *services.JWTService, logger *slog.Logger) *Hub {
	return &Hub{
		registry: registry,
		metrics:  metrics,
		auth:     auth,
		logger:   logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		conns: make(map[string]*Connection),
	}
}

// HandleWS upgrades an incoming agent connection and starts its pumps
func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request) {
	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}

	conn := newConnection(ws, h)
	go conn.readPump()
	go conn.writePump()
}

// SendCommand delivers a command frame to a connected agent
func (h *Hub) SendCommand(agentID string, cmd domains.Command) error {
	h.mu.RLock()
	conn, exists := h.conns[agentID]
	h.mu.RUnlock()

	if !exists {
		return clients.ErrAgentNotFound
	}
	return conn.enqueue(frame{Type: frameCommand, Command: &cmd})
}

func (h *Hub) track(conn *Connection) {
	h.mu.Lock()
	h.conns[conn.agentID] = conn
	h.mu.Unlock()
}

func (h *Hub) untrack(conn *Connection) {
	h.mu.Lock()
	if current, ok := h.conns[conn.agentID]; ok && current == conn {
		delete(h.conns, conn.agentID)
	}
	h.mu.Unlock()
}
