package main

import (
	"net/http"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"formSheet/contracts"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	clientSendSize = 64
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// EventHub fans the host messages of each form out to its websocket clients
type EventHub struct {
	mu      sync.RWMutex
	clients map[string]map[*eventClient]bool
	logger  *zap.SugaredLogger
}

type eventClient struct {
	id        string
	formId    string
	hub       *EventHub
	conn      *websocket.Conn
	send      chan contracts.HostMessage
	closeOnce sync.Once
}

func NewEventHub(logger *zap.SugaredLogger) *EventHub {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &EventHub{
		clients: make(map[string]map[*eventClient]bool),
		logger:  logger,
	}
}

// Serve upgrades the request and streams messages of formId until the client leaves
func (h *EventHub) Serve(formId string, w http.ResponseWriter, r *http.Request) error {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return errors.Wrapf(err, "upgrade events of form `%s`", formId)
	}

	client := &eventClient{
		id:     uuid.NewString(),
		formId: formId,
		hub:    h,
		conn:   conn,
		send:   make(chan contracts.HostMessage, clientSendSize),
	}
	h.register(client)

	go client.writePump()
	go client.readPump()
	return nil
}

func (h *EventHub) register(client *eventClient) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.formId]; !ok {
		h.clients[client.formId] = make(map[*eventClient]bool)
	}
	h.clients[client.formId][client] = true
	h.logger.Debugw("events client registered", "form", client.formId, "client", client.id)
}

func (h *EventHub) unregister(client *eventClient) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if clients, ok := h.clients[client.formId]; ok && clients[client] {
		delete(clients, client)
		if len(clients) == 0 {
			delete(h.clients, client.formId)
		}
		client.close()
	}
}

func (h *EventHub) Broadcast(formId string, message contracts.HostMessage) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients[formId] {
		select {
		case client.send <- message:
		default:
			h.logger.Warnw("events client is too slow, message dropped", "form", formId, "client", client.id, "type", message.Type)
		}
	}
}

func (h *EventHub) ClientsCount(formId string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.clients[formId])
}

func (h *EventHub) NotifierFor(formId string) contracts.HostNotifier {
	return &formEventsNotifier{hub: h, formId: formId}
}

// Close disconnects every client
func (h *EventHub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for formId, clients := range h.clients {
		for client := range clients {
			client.close()
		}
		delete(h.clients, formId)
	}
}

func (c *eventClient) close() {
	c.closeOnce.Do(func() {
		close(c.send)
	})
}

// readPump only keeps the connection alive; clients do not send messages
func (c *eventClient) readPump() {
	defer func() {
		c.hub.unregister(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure, websocket.CloseNoStatusReceived) {
				c.hub.logger.Warnw("events read failed", "form", c.formId, "client", c.id, "error", err)
			}
			return
		}
	}
}

func (c *eventClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(message); err != nil {
				c.hub.logger.Warnw("events write failed", "form", c.formId, "client", c.id, "error", err)
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

type formEventsNotifier struct {
	hub    *EventHub
	formId string
}

func (n *formEventsNotifier) Notify(message contracts.HostMessage) {
	n.hub.Broadcast(n.formId, message)
}
