package http

import (
	"context"
	"sync"
	"time"

	"metadata-backoffice/internal/backoffice/domain/model"
	"metadata-backoffice/internal/backoffice/usecase"
	"metadata-backoffice/internal/shared/eventbus"
	"metadata-backoffice/internal/shared/logger"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// WebSocketMessage represents messages sent via WebSocket
type WebSocketMessage struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// JSONWriter is the part of a WebSocket connection the change feed writes to.
type JSONWriter interface {
	WriteJSON(v interface{}) error
}

// Keepalive timing for /ws/changes. A client that answers no ping within
// defaultPongWait is disconnected.
const (
	defaultPingInterval = 30 * time.Second
	defaultPongWait     = 60 * time.Second
	pingWriteWait       = 10 * time.Second
)

// controlWriter is implemented by connections that can send ping frames.
type controlWriter interface {
	WriteControl(messageType int, data []byte, deadline time.Time) error
}

// subscriber serializes writes to one connection.
type subscriber struct {
	mu   sync.Mutex
	conn JSONWriter
}

func (s *subscriber) send(msg WebSocketMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.WriteJSON(msg)
}

// ping sends a ping frame. Connections without control frames are left alone.
func (s *subscriber) ping() error {
	cw, ok := s.conn.(controlWriter)
	if !ok {
		return nil
	}
	return cw.WriteControl(websocket.PingMessage, nil, time.Now().Add(pingWriteWait))
}

// keepAlive pings sub every interval until done is closed or a ping fails.
func keepAlive(sub *subscriber, interval time.Duration, done <-chan struct{}) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return nil
		case <-ticker.C:
			if err := sub.ping(); err != nil {
				return err
			}
		}
	}
}

// ChangeFeed fans change events out to every connected WebSocket client.
type ChangeFeed struct {
	mu          sync.RWMutex
	subscribers map[string]*subscriber
	log         logger.Logger
}

// NewChangeFeed creates an empty feed
func NewChangeFeed(log logger.Logger) *ChangeFeed {
	return &ChangeFeed{
		subscribers: make(map[string]*subscriber),
		log:         log.WithComponent("ws_change_feed"),
	}
}

// Attach subscribes the feed to every event published on bus.
func (f *ChangeFeed) Attach(bus eventbus.EventBusInterface) {
	bus.Subscribe(eventbus.WildcardEventType, f.HandleEvent)
}

// HandleEvent is an event bus handler that broadcasts event.
func (f *ChangeFeed) HandleEvent(ctx context.Context, event eventbus.Event) error {
	change, err := usecase.ToChangeEvent(event)
	if err != nil {
		f.log.Error("Failed to encode change event", "eventType", event.Type(), "error", err)
		return nil
	}
	f.Broadcast(change)
	return nil
}

// Broadcast writes change to every subscriber and drops the ones that fail.
func (f *ChangeFeed) Broadcast(change model.ChangeEvent) {
	f.mu.RLock()
	targets := make(map[string]*subscriber, len(f.subscribers))
	for id, sub := range f.subscribers {
		targets[id] = sub
	}
	f.mu.RUnlock()

	msg := WebSocketMessage{Type: "change", Data: change}
	for id, sub := range targets {
		if err := sub.send(msg); err != nil {
			f.log.Warn("Dropping WebSocket subscriber after write failure", "subscriberID", id, "error", err)
			f.Remove(id)
		}
	}
}

// Add registers conn under id and returns the subscriber used to write to it.
func (f *ChangeFeed) Add(id string, conn JSONWriter) *subscriber {
	sub := &subscriber{conn: conn}
	f.mu.Lock()
	f.subscribers[id] = sub
	f.mu.Unlock()
	return sub
}

func (f *ChangeFeed) Remove(id string) {
	f.mu.Lock()
	delete(f.subscribers, id)
	f.mu.Unlock()
}

func (f *ChangeFeed) SubscriberCount() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.subscribers)
}

// WebSocketHandler serves the live change stream at /ws/changes.
type WebSocketHandler struct {
	feed         *ChangeFeed
	log          logger.Logger
	pingInterval time.Duration
	pongWait     time.Duration
}

// NewWebSocketHandler creates a new WebSocketHandler.
func NewWebSocketHandler(feed *ChangeFeed, log logger.Logger) *WebSocketHandler {
	return &WebSocketHandler{
		feed:         feed,
		log:          log.WithComponent("ws"),
		pingInterval: defaultPingInterval,
		pongWait:     defaultPongWait,
	}
}

// WithKeepAlive overrides the ping interval and how long a client may stay silent.
// pingInterval should be well below pongWait.
func (h *WebSocketHandler) WithKeepAlive(pingInterval, pongWait time.Duration) *WebSocketHandler {
	h.pingInterval = pingInterval
	h.pongWait = pongWait
	return h
}

// RegisterRoutes registers the WebSocket endpoint.
func (h *WebSocketHandler) RegisterRoutes(router fiber.Router) {
	wsGroup := router.Group("/ws")

	// Middleware to ensure it's a WebSocket upgrade request
	wsGroup.Use("/changes", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			c.Locals("allowed", true)
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	wsGroup.Get("/changes", websocket.New(h.handleConnection))
}

// handleConnection registers the client and keeps reading until it disconnects.
// Incoming messages are ignored. Idle clients stay connected as long as they answer pings.
func (h *WebSocketHandler) handleConnection(conn *websocket.Conn) {
	subscriberID := uuid.NewString()
	sub := h.feed.Add(subscriberID, conn)
	h.log.Info("WebSocket client connected", "subscriberID", subscriberID)

	defer func() {
		h.feed.Remove(subscriberID)
		h.log.Info("WebSocket client disconnected", "subscriberID", subscriberID)
	}()

	if err := sub.send(WebSocketMessage{Type: "connected", Data: fiber.Map{"subscriberId": subscriberID}}); err != nil {
		return
	}

	extend := func() error { return conn.SetReadDeadline(time.Now().Add(h.pongWait)) }
	_ = extend()
	conn.SetPongHandler(func(string) error { return extend() })

	done := make(chan struct{})
	defer close(done)
	go func() {
		if err := keepAlive(sub, h.pingInterval, done); err != nil {
			h.log.Warn("WebSocket ping failed", "subscriberID", subscriberID, "error", err)
			_ = conn.Close()
		}
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.log.Error("WebSocket error", "subscriberID", subscriberID, "error", err)
			}
			return
		}
		_ = extend()
	}
}
