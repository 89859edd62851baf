package stream

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/zhouzirui/bot-hub/backend/internal/model/chat"
	"github.com/zhouzirui/bot-hub/backend/pkg/utils"
)

const (
	heartbeatInterval = 15 * time.Second
	writeTimeout      = 5 * time.Second
)

// Subscriber is the event source shared by SSE and websocket clients.
type Subscriber interface {
	Subscribe() (<-chan chat.Event, func())
}

// Handler 推送打字状态与新消息
type Handler struct {
	events   Subscriber
	upgrader websocket.Upgrader
	log      *logrus.Entry
}

// New 创建事件流处理器
func New(events Subscriber, logger *logrus.Logger) *Handler {
	return &Handler{
		events: events,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		log: logger.WithField("component", "stream"),
	}
}

// RegisterRoutes 注册事件流路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/events", h.handleSSE)
	r.Get("/ws", h.handleWebSocket)
}

// handleSSE 通过Server-Sent Events推送事件
func (h *Handler) handleSSE(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		utils.RespondError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	events, cancel := h.events.Subscribe()
	defer cancel()

	utils.SetupSSEHeaders(w)
	w.WriteHeader(http.StatusOK)
	if err := utils.SendSSEComment(w, flusher, "stream established"); err != nil {
		return
	}

	ticker := time.NewTicker(heartbeatInterval)
	defer ticker.Stop()

	ctx := r.Context()
	h.log.Debug("sse client connected")
	for {
		select {
		case <-ctx.Done():
			h.log.Debug("sse client disconnected")
			return
		case <-ticker.C:
			if err := utils.SendSSEComment(w, flusher, "heartbeat"); err != nil {
				return
			}
		case event, open := <-events:
			if !open {
				return
			}
			if err := utils.SendSSEEvent(w, flusher, string(event.Type), event); err != nil {
				h.log.WithError(err).Debug("sse write failed")
				return
			}
		}
	}
}

// handleWebSocket 通过WebSocket推送事件；客户端消息只用于检测断开
func (h *Handler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.WithError(err).Warn("websocket upgrade failed")
		return
	}
	defer conn.Close()

	events, cancel := h.events.Subscribe()
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(heartbeatInterval)
	defer ticker.Stop()

	h.log.Debug("websocket client connected")
	for {
		select {
		case <-done:
			h.log.Debug("websocket client disconnected")
			return
		case <-ticker.C:
			deadline := time.Now().Add(writeTimeout)
			if err := conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				return
			}
		case event, open := <-events:
			if !open {
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteJSON(event); err != nil {
				h.log.WithError(err).Debug("websocket write failed")
				return
			}
		}
	}
}
