// Package websocketManager pushes server events to connected admin
// dashboards over websocket.
package websocketManager

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

const (
	// heartbeatInterval stays under readTimeout so idle peers are pinged
	// before their deadline expires.
	heartbeatInterval = 15 * time.Second
	readTimeout       = 30 * time.Second
	writeTimeout      = 10 * time.Second
	inactivityTimeout = 5 * time.Minute

	sendBuffer      = 256
	broadcastBuffer = 100
)

// Message is the JSON frame sent to clients. Type is the event topic.
type Message struct {
	Type      string      `json:"type"`
	Content   interface{} `json:"content,omitempty"`
	Timestamp int64       `json:"timestamp,omitempty"`
	MessageID string      `json:"message_id,omitempty"`
}

// HeartbeatMessage answers a client heartbeat.
type HeartbeatMessage struct {
	Type      string `json:"type"`
	Timestamp int64  `json:"timestamp"`
}

// Client is one websocket connection.
type Client struct {
	ID           string
	conn         *websocket.Conn
	send         chan []byte
	manager      *Manager
	lastActivity atomic.Int64
	writeMu      sync.Mutex
}

func (c *Client) touch() {
	c.lastActivity.Store(c.manager.clock.Now().UnixNano())
}

// Manager owns the connected clients. Its event loop is the only goroutine
// that adds, removes or writes to clients.
type Manager struct {
	clients    map[string]*Client
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	mutex      sync.RWMutex
	clock      clockwork.Clock
	logger     *zap.Logger
}

func NewManager(clock clockwork.Clock, logger *zap.Logger) *Manager {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		clients:    make(map[string]*Client),
		broadcast:  make(chan []byte, broadcastBuffer),
		register:   make(chan *Client, 10),
		unregister: make(chan *Client, 10),
		done:       make(chan struct{}),
		clock:      clock,
		logger:     logger.Named("websocket"),
	}
}

// Run serves the event loop until ctx is cancelled, then closes every
// client.
func (m *Manager) Run(ctx context.Context) {
	defer close(m.done)

	inactivityTicker := m.clock.NewTicker(time.Minute)
	defer inactivityTicker.Stop()

	m.logger.Info("websocket manager running")
	for {
		select {
		case <-ctx.Done():
			m.closeAll()
			m.logger.Info("websocket manager stopped")
			return

		case client := <-m.register:
			m.mutex.Lock()
			m.clients[client.ID] = client
			m.mutex.Unlock()
			m.logger.Debug("client registered", zap.String("client_id", client.ID))

		case client := <-m.unregister:
			m.removeClient(client.ID, "disconnected")

		case message := <-m.broadcast:
			m.broadcastMessage(message)

		case <-inactivityTicker.Chan():
			m.cleanupInactiveConnections()
		}
	}
}

func (m *Manager) removeClient(id, reason string) {
	m.mutex.Lock()
	client, ok := m.clients[id]
	if ok {
		delete(m.clients, id)
	}
	m.mutex.Unlock()
	if !ok {
		return
	}

	// the write pump sends a close frame and exits when send is closed
	close(client.send)
	m.logger.Debug("client removed", zap.String("client_id", id), zap.String("reason", reason))
}

func (m *Manager) closeAll() {
	m.mutex.RLock()
	ids := make([]string, 0, len(m.clients))
	for id := range m.clients {
		ids = append(ids, id)
	}
	m.mutex.RUnlock()

	for _, id := range ids {
		m.removeClient(id, "shutdown")
	}
}

func (m *Manager) broadcastMessage(message []byte) {
	var failed []string

	m.mutex.RLock()
	for id, client := range m.clients {
		select {
		case client.send <- message:
		default:
			failed = append(failed, id)
		}
	}
	m.mutex.RUnlock()

	for _, id := range failed {
		m.removeClient(id, "send buffer full")
	}
}

func (m *Manager) cleanupInactiveConnections() {
	threshold := m.clock.Now().Add(-inactivityTimeout).UnixNano()

	var inactive []string
	m.mutex.RLock()
	for id, client := range m.clients {
		if client.lastActivity.Load() < threshold {
			inactive = append(inactive, id)
		}
	}
	m.mutex.RUnlock()

	for _, id := range inactive {
		m.removeClient(id, "inactive")
	}
}

// Publish queues an event for every client. Each event reaches a client as
// one JSON Message per text frame. It never blocks; the event is dropped
// when the queue is full or the manager has stopped.
func (m *Manager) Publish(topic string, payload interface{}) {
	data, err := json.Marshal(Message{
		Type:      topic,
		Content:   payload,
		Timestamp: m.clock.Now().UnixMilli(),
		MessageID: uuid.New().String(),
	})
	if err != nil {
		m.logger.Error("encode event", zap.String("topic", topic), zap.Error(err))
		return
	}

	select {
	case <-m.done:
	case m.broadcast <- data:
	default:
		m.logger.Warn("event dropped, broadcast queue full", zap.String("topic", topic))
	}
}

// ClientCount returns the number of registered clients.
func (m *Manager) ClientCount() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.clients)
}

// Attach registers conn and starts its pumps.
func (m *Manager) Attach(conn *websocket.Conn) *Client {
	client := &Client{
		ID:      uuid.New().String(),
		conn:    conn,
		send:    make(chan []byte, sendBuffer),
		manager: m,
	}
	client.touch()

	select {
	case m.register <- client:
	case <-m.done:
		conn.Close()
		return client
	}

	go client.readPump()
	go client.writePump()
	return client
}

func (c *Client) leave() {
	select {
	case c.manager.unregister <- c:
	case <-c.manager.done:
	}
}

// readPump consumes client frames. Only heartbeats are answered, anything
// else just refreshes the activity time.
func (c *Client) readPump() {
	defer func() {
		c.leave()
		c.conn.Close()
	}()

	c.conn.SetReadLimit(4096)
	c.conn.SetReadDeadline(time.Now().Add(readTimeout))
	c.conn.SetPongHandler(func(string) error {
		c.touch()
		return c.conn.SetReadDeadline(time.Now().Add(readTimeout))
	})

	for {
		messageType, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.manager.logger.Debug("unexpected close", zap.String("client_id", c.ID), zap.Error(err))
			}
			return
		}
		c.touch()
		c.conn.SetReadDeadline(time.Now().Add(readTimeout))

		if messageType != websocket.TextMessage {
			continue
		}
		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			c.manager.logger.Debug("ignoring malformed frame", zap.String("client_id", c.ID))
			continue
		}
		if msg.Type == "heartbeat" {
			c.writeJSON(HeartbeatMessage{
				Type:      "heartbeat",
				Timestamp: c.manager.clock.Now().UnixMilli(),
			})
		}
	}
}

func (c *Client) writeJSON(v interface{}) {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	if err := c.conn.WriteJSON(v); err != nil {
		c.manager.logger.Debug("write failed", zap.String("client_id", c.ID), zap.Error(err))
	}
}

// writePump drains send, one message per frame, and pings the peer every
// heartbeatInterval.
func (c *Client) writePump() {
	ticker := time.NewTicker(heartbeatInterval)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			if !ok {
				c.writeMu.Lock()
				c.conn.SetWriteDeadline(time.Now().Add(time.Second))
				_ = c.conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				c.writeMu.Unlock()
				return
			}
			if err := c.write(message); err != nil {
				c.manager.logger.Debug("write failed", zap.String("client_id", c.ID), zap.Error(err))
				return
			}

		case <-ticker.C:
			c.writeMu.Lock()
			err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeTimeout))
			c.writeMu.Unlock()
			if err != nil {
				return
			}
		}
	}
}

func (c *Client) write(message []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return c.conn.WriteMessage(websocket.TextMessage, message)
}
