package controllers

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"transit_api/internal/models"
)

func newHubServer(t *testing.T) (*PositionHub, string) {
	t.Helper()
	hub := NewPositionHub(10)
	r := gin.New()
	r.GET("/ws/posicoes", hub.Serve)
	srv := httptest.NewServer(r)
	t.Cleanup(func() {
		hub.Close()
		srv.Close()
	})
	return hub, "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/posicoes"
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func int64Ptr(v int64) *int64 { return &v }

func TestPositionHubBroadcast(t *testing.T) {
	hub, url := newHubServer(t)
	conn := dial(t, url)
	assert.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 10*time.Millisecond)

	hub.Publish(models.VehiclePosition{ID: 3, Latitude: 1, Longitude: 2, VehicleID: int64Ptr(5)})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var got models.VehiclePosition
	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, int64(3), got.ID)
	assert.Equal(t, 2.0, got.Longitude)
	require.NotNil(t, got.VehicleID)
	assert.Equal(t, int64(5), *got.VehicleID)
}

func TestPositionHubVehicleFilter(t *testing.T) {
	hub, url := newHubServer(t)
	conn := dial(t, url+"?vehicleId=7")
	assert.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 10*time.Millisecond)

	hub.Publish(models.VehiclePosition{ID: 1, VehicleID: int64Ptr(5)})
	hub.Publish(models.VehiclePosition{ID: 2})
	hub.Publish(models.VehiclePosition{ID: 3, VehicleID: int64Ptr(7)})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var got models.VehiclePosition
	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, int64(3), got.ID)
}

func TestPositionHubUnregistersOnClose(t *testing.T) {
	hub, url := newHubServer(t)
	conn := dial(t, url)
	assert.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 10*time.Millisecond)

	require.NoError(t, conn.Close())
	assert.Eventually(t, func() bool { return hub.ClientCount() == 0 }, time.Second, 10*time.Millisecond)
}

func TestPositionHubRejectsBadFilter(t *testing.T) {
	_, url := newHubServer(t)

	_, resp, err := websocket.DefaultDialer.Dial(url+"?vehicleId=abc", nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestPositionHubPublishAfterClose(t *testing.T) {
	hub := NewPositionHub(1)
	hub.Close()
	hub.Close()

	assert.NotPanics(t, func() {
		hub.Publish(models.VehiclePosition{ID: 1})
	})
}

func TestPositionHubPublishNeverBlocks(t *testing.T) {
	hub := &PositionHub{
		clients:   make(map[*websocket.Conn]*int64),
		broadcast: make(chan models.VehiclePosition, 1),
		done:      make(chan struct{}),
	}

	done := make(chan struct{})
	go func() {
		hub.Publish(models.VehiclePosition{ID: 1})
		hub.Publish(models.VehiclePosition{ID: 2})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Publish blocked on a full queue")
	}
	assert.Len(t, hub.broadcast, 1)
}
