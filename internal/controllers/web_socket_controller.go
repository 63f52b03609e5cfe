package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"transit_api/internal/models"
)

const writeWait = 5 * time.Second

// upgrader configures the WebSocket connection.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // origin filtering is left to the CORS layer
	},
}

// PositionHub fans stored vehicle positions out to WebSocket subscribers.
// A subscriber may follow a single vehicle or every vehicle.
type PositionHub struct {
	clients   map[*websocket.Conn]*int64
	broadcast chan models.VehiclePosition
	done      chan struct{}
	closeOnce sync.Once
	mu        sync.Mutex
}

// NewPositionHub creates a hub and starts its broadcast loop.
// buffer bounds how many positions may be queued before Publish drops them.
func NewPositionHub(buffer int) *PositionHub {
	if buffer <= 0 {
		buffer = 100
	}
	hub := &PositionHub{
		clients:   make(map[*websocket.Conn]*int64),
		broadcast: make(chan models.VehiclePosition, buffer),
		done:      make(chan struct{}),
	}
	go hub.run()
	return hub
}

func (h *PositionHub) run() {
	for {
		select {
		case pos := <-h.broadcast:
			h.fanOut(pos)
		case <-h.done:
			h.closeAll()
			return
		}
	}
}

func (h *PositionHub) fanOut(pos models.VehiclePosition) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn, vehicleID := range h.clients {
		if vehicleID != nil && (pos.VehicleID == nil || *pos.VehicleID != *vehicleID) {
			continue
		}
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(pos); err != nil {
			logrus.WithError(err).WithField("conn_ptr", fmt.Sprintf("%p", conn)).
				Warn("failed to send position, dropping subscriber")
			conn.Close()
			delete(h.clients, conn)
		}
	}
}

func (h *PositionHub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(writeWait))
		conn.Close()
		delete(h.clients, conn)
	}
}

// Register subscribes conn. A nil vehicleID follows every vehicle.
func (h *PositionHub) Register(conn *websocket.Conn, vehicleID *int64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	select {
	case <-h.done:
		conn.Close()
		return
	default:
	}
	h.clients[conn] = vehicleID
	logrus.WithField("conn_ptr", fmt.Sprintf("%p", conn)).Info("position subscriber registered")
}

func (h *PositionHub) Unregister(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[conn]; !ok {
		return
	}
	delete(h.clients, conn)
	logrus.WithField("conn_ptr", fmt.Sprintf("%p", conn)).Info("position subscriber unregistered")
}

// ClientCount returns the number of connected subscribers.
func (h *PositionHub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Publish queues pos for delivery. It never blocks; when the queue is full
// the position is dropped.
func (h *PositionHub) Publish(pos models.VehiclePosition) {
	select {
	case <-h.done:
		return
	default:
	}
	select {
	case h.broadcast <- pos:
	default:
		logrus.WithField("position_id", pos.ID).Warn("position broadcast queue full, dropping message")
	}
}

// Close disconnects every subscriber and stops the broadcast loop.
func (h *PositionHub) Close() {
	h.closeOnce.Do(func() { close(h.done) })
}

// Serve handles GET /ws/posicoes[?vehicleId=N].
func (h *PositionHub) Serve(c *gin.Context) {
	var vehicleID *int64
	if raw := c.Query("vehicleId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "O vehicleId deve ser um número inteiro"})
			return
		}
		vehicleID = &id
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logrus.WithError(err).Error("failed to upgrade websocket connection")
		return
	}
	defer conn.Close()

	h.Register(conn, vehicleID)
	defer h.Unregister(conn)

	// Subscribers only listen; reading detects the close.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logrus.WithError(err).Debug("position subscriber read ended")
			}
			return
		}
	}
}
