package gateway

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/aryansoni13/F1-Prediction-model/internal/events"
)

// Config holds websocket connection tuning.
type Config struct {
	WriteTimeout    time.Duration
	ReadTimeout     time.Duration
	PingInterval    time.Duration
	MaxMessageSize  int64
	ReadBufferSize  int
	WriteBufferSize int
	SendBufferSize  int
	CheckOrigin     func(r *http.Request) bool
}

func DefaultConfig() Config {
	return Config{
		WriteTimeout:    10 * time.Second,
		ReadTimeout:     60 * time.Second,
		PingInterval:    30 * time.Second,
		MaxMessageSize:  1024,
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		SendBufferSize:  256,
		// The dashboard frontend is served from another origin.
		CheckOrigin: func(r *http.Request) bool { return true },
	}
}

// Hub upgrades HTTP requests into registry subscribers.
type Hub struct {
	registry *Registry
	upgrader websocket.Upgrader
	config   Config
}

func NewHub(registry *Registry, config Config) *Hub {
	return &Hub{
		registry: registry,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  config.ReadBufferSize,
			WriteBufferSize: config.WriteBufferSize,
			CheckOrigin:     config.CheckOrigin,
		},
		config: config,
	}
}

// Attach upgrades the request, registers the connection and sends the
// greeting to that connection only.
func (h *Hub) Attach(w http.ResponseWriter, r *http.Request, greeting events.Envelope) error {
	wsConn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return fmt.Errorf("upgrade connection: %w", err)
	}

	conn := &Connection{
		id:     uuid.New().String(),
		conn:   wsConn,
		send:   make(chan []byte, h.config.SendBufferSize),
		done:   make(chan struct{}),
		hub:    h,
		config: h.config,
	}
	h.registry.Register(conn)

	go conn.writePump()
	go conn.readPump()

	if data, err := greeting.Encode(); err == nil {
		if err := conn.Send(data); err != nil {
			log.Warn().Err(err).Str("connection_id", conn.id).Msg("failed to send greeting")
		}
	} else {
		log.Error().Err(err).Msg("failed to encode greeting")
	}

	log.Info().Str("connection_id", conn.id).Str("remote", r.RemoteAddr).Msg("websocket connection established")
	return nil
}

// Connection is a websocket-backed subscriber. Outbound frames go through
// a buffered channel drained by writePump; Send never blocks the caller.
type Connection struct {
	id     string
	conn   *websocket.Conn
	send   chan []byte
	done   chan struct{}
	once   sync.Once
	hub    *Hub
	config Config
}

func (c *Connection) ID() string { return c.id }

// Send enqueues a frame for delivery. A closed connection or a full buffer
// (slow client) is reported as a failed send.
func (c *Connection) Send(data []byte) error {
	select {
	case <-c.done:
		return ErrSubscriberGone
	default:
	}
	select {
	case c.send <- data:
		return nil
	case <-c.done:
		return ErrSubscriberGone
	default:
		return fmt.Errorf("connection %s: send buffer full", c.id)
	}
}

func (c *Connection) Close() {
	c.once.Do(func() {
		close(c.done)
		c.conn.Close()
	})
}

func (c *Connection) writePump() {
	ticker := time.NewTicker(c.config.PingInterval)
	defer func() {
		ticker.Stop()
		c.hub.registry.Unregister(c)
		c.Close()
	}()

	for {
		select {
		case <-c.done:
			return
		case message := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(c.config.WriteTimeout))
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Debug().Err(err).Str("connection_id", c.id).Msg("websocket write failed")
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(c.config.WriteTimeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Debug().Err(err).Str("connection_id", c.id).Msg("websocket ping failed")
				return
			}
		}
	}
}

func (c *Connection) readPump() {
	defer func() {
		c.hub.registry.Unregister(c)
		c.Close()
	}()

	c.conn.SetReadLimit(c.config.MaxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(c.config.ReadTimeout))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(c.config.ReadTimeout))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				log.Debug().Err(err).Str("connection_id", c.id).Msg("unexpected websocket close")
			}
			return
		}
		c.handleClientMessage(message)
		c.conn.SetReadDeadline(time.Now().Add(c.config.ReadTimeout))
	}
}

// handleClientMessage answers application-level pings; anything else is
// ignored.
func (c *Connection) handleClientMessage(message []byte) {
	var msg struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(message, &msg); err != nil {
		log.Debug().Err(err).Str("connection_id", c.id).Msg("discarding malformed client message")
		return
	}
	if msg.Type != "ping" {
		return
	}

	pong, err := events.New(events.TypePong, nil)
	if err != nil {
		log.Error().Err(err).Msg("failed to build pong")
		return
	}
	data, err := pong.Encode()
	if err != nil {
		log.Error().Err(err).Msg("failed to encode pong")
		return
	}
	if err := c.Send(data); err != nil {
		log.Debug().Err(err).Str("connection_id", c.id).Msg("failed to send pong")
	}
}
