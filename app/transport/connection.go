package transport

import (
	"errors"
	"time"

	"telemetry-hub/app/domains"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	jsoniter "github.com/json-iterator/go"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 1 << 20
	sendBuffer     = 256
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Frame types exchanged with agents
const (
	frameAuth          = "auth"
	frameAuthResult    = "authResult"
	frameMetrics       = "metrics"
	frameHeartbeat     = "heartbeat"
	frameCommand       = "command"
	frameCommandResult = "commandResult"
)

type frame struct {
	Type     string                 `json:"type"`
	Token    string                 `json:"token,omitempty"`
	Hostname string                 `json:"hostname,omitempty"`
	OS       string                 `json:"os,omitempty"`
	Arch     string                 `json:"arch,omitempty"`
	Version  string                 `json:"version,omitempty"`
	AgentID  string                 `json:"agentId,omitempty"`
	Success  *bool                  `json:"success,omitempty"`
	Message  string                 `json:"message,omitempty"`
	Data     map[string]interface{} `json:"data,omitempty"`
	Command  *domains.Command       `json:"command,omitempty"`
}

// Connection is one live agent link. The identity is assigned here, at
// connection time, and stays stable until the socket closes.
type Connection struct {
	agentID       string
	hub           *Hub
	ws            *websocket.Conn
	send          chan []byte
	done          chan struct{}
	authenticated bool
}

func newConnection(ws *websocket.Conn, hub *Hub) *Connection {
	return &Connection{
		agentID: uuid.New().String(),
		hub:     hub,
		ws:      ws,
		send:    make(chan []byte, sendBuffer),
		done:    make(chan struct{}),
	}
}

func (c *Connection) readPump() {
	defer func() {
		if c.authenticated {
			c.hub.untrack(c)
			c.hub.registry.Unregister(c.agentID)
		}
		c.ws.Close()
		close(c.done)
	}()

	c.ws.SetReadLimit(maxMessageSize)
	c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		c.ws.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.hub.logger.Warn("agent connection error", "agentId", c.agentID, "error", err)
			}
			return
		}

		var f frame
		if err := json.Unmarshal(message, &f); err != nil {
			c.hub.logger.Warn("undecodable frame dropped", "agentId", c.agentID, "error", err)
			continue
		}
		c.handleFrame(&f)
	}
}

func (c *Connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.ws.Close()
	}()

	for {
		select {
		case message := <-c.send:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.done:
			return
		}
	}
}

func (c *Connection) handleFrame(f *frame) {
	if !c.authenticated {
		if f.Type == frameAuth {
			c.handleAuth(f)
		}
		return
	}

	switch f.Type {
	case frameMetrics:
		if f.Data == nil {
			return
		}
		if _, err := c.hub.metrics.Ingest(c.agentID, f.Data); err != nil {
			c.hub.logger.Warn("snapshot not ingested", "agentId", c.agentID, "error", err)
		}
	case frameHeartbeat:
		c.hub.registry.Heartbeat(c.agentID)
	case frameCommandResult:
		c.hub.logger.Info("command result", "agentId", c.agentID, "message", f.Message)
	}
}

func (c *Connection) handleAuth(f *frame) {
	if _, err := c.hub.auth.ValidateToken(f.Token); err != nil {
		c.hub.logger.Warn("agent auth failed", "remote", c.ws.RemoteAddr().String(), "error", err)
		c.reply(frameAuthResult, false, "invalid token")
		c.ws.Close()
		return
	}

	if _, err := c.hub.registry.Register(c.agentID, f.Hostname, f.OS, f.Arch, f.Version, time.Now()); err != nil {
		c.reply(frameAuthResult, false, "registration failed")
		c.ws.Close()
		return
	}

	c.authenticated = true
	c.hub.track(c)
	ok := true
	c.enqueue(frame{Type: frameAuthResult, Success: &ok, AgentID: c.agentID})
}

func (c *Connection) reply(frameType string, success bool, message string) {
	c.enqueue(frame{Type: frameType, Success: &success, Message: message})
}

// enqueue serializes a frame onto the send channel without blocking the
// caller; a full buffer means the agent is not draining and the frame is
// dropped with an error.
func (c *Connection) enqueue(f frame) error {
	data, err := json.Marshal(f)
	if err != nil {
		return err
	}
	select {
	case c.send <- data:
		return nil
	case <-c.done:
		return errors.New("connection closed")
	default:
		return errors.New("agent send buffer full")
	}
}
