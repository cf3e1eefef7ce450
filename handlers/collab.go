package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/termination/collab-text-editor/internal/relay"
	"github.com/termination/collab-text-editor/pkg/logger"
	"github.com/termination/collab-text-editor/pkg/metrics"
)

const (
	defaultPollWait = 25 * time.Second
	maxPollWait     = 60 * time.Second
)

// CollabHandler bridges clients to the pub/sub broker. A WebSocket client
// subscribed to a document receives every broadcast for it; frames it sends
// are published raw to the document's edit channel, where the relay picks
// them up. A long-poll endpoint serves clients that cannot hold a
// persistent connection.
type CollabHandler struct {
	broker   relay.Broker
	upgrader websocket.Upgrader
}

func NewCollabHandler(broker relay.Broker, allowedOrigin string) *CollabHandler {
	return &CollabHandler{
		broker: broker,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				// non-browser clients send no Origin header
				return origin == "" || allowedOrigin == "*" || origin == allowedOrigin
			},
		},
	}
}

// Register routes on the engine
func (h *CollabHandler) Register(rg *gin.RouterGroup) {
	rg.GET("/ws", h.Serve)
	rg.GET("/api/documents/:docId/events", h.Poll)
}

// Serve upgrades the connection and joins the client to a document channel.
func (h *CollabHandler) Serve(c *gin.Context) {
	docID := c.Query("docId")
	if docID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "docId query parameter required"})
		return
	}

	ws, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warnf("ws upgrade failed for %s: %v", docID, err)
		return
	}
	defer ws.Close()
	metrics.EditorConnections.Inc()
	defer metrics.EditorConnections.Dec()

	ctx := c.Request.Context()
	sub, err := h.broker.Subscribe(ctx, relay.BroadcastChannel(docID))
	if err != nil {
		logger.Errorf("ws subscribe %s: %v", docID, err)
		return
	}
	defer sub.Close()

	logger.Debugf("ws client joined document %s", docID)

	// broker -> socket
	done := make(chan struct{})
	go func() {
		defer close(done)
		for msg := range sub.Messages() {
			if err := ws.WriteMessage(websocket.TextMessage, msg.Payload); err != nil {
				return
			}
		}
	}()

	// socket -> edit channel; the relay stamps and rebroadcasts
	for {
		_, data, err := ws.ReadMessage()
		if err != nil {
			logger.Debugf("ws client left document %s: %v", docID, err)
			break
		}
		if err := h.broker.Publish(ctx, relay.EditChannel(docID), data); err != nil {
			logger.Errorf("ws publish %s: %v", docID, err)
			break
		}
	}
	sub.Close()
	<-done
}

// Poll is the fallback transport: it blocks until the next broadcast for
// the document arrives (200 with the message) or the wait elapses (204).
func (h *CollabHandler) Poll(c *gin.Context) {
	docID := c.Param("docId")

	wait := defaultPollWait
	if raw := c.Query("wait"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil && d > 0 {
			wait = d
		}
	}
	if wait > maxPollWait {
		wait = maxPollWait
	}

	ctx := c.Request.Context()
	sub, err := h.broker.Subscribe(ctx, relay.BroadcastChannel(docID))
	if err != nil {
		logger.Errorf("poll subscribe %s: %v", docID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "subscribe failed"})
		return
	}
	defer sub.Close()

	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case msg, ok := <-sub.Messages():
		if !ok {
			c.Status(http.StatusNoContent)
			return
		}
		c.Data(http.StatusOK, "application/json", msg.Payload)
	case <-timer.C:
		c.Status(http.StatusNoContent)
	case <-ctx.Done():
		c.Status(http.StatusNoContent)
	}
}
