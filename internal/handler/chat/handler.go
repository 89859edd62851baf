package chat

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/zhouzirui/bot-hub/backend/internal/model/bot"
	chatService "github.com/zhouzirui/bot-hub/backend/internal/service/chat"
	"github.com/zhouzirui/bot-hub/backend/internal/service/session"
	"github.com/zhouzirui/bot-hub/backend/pkg/utils"
)

// Handler 聊天界面的HTTP处理器
type Handler struct {
	store      *session.Store
	dispatcher *chatService.Dispatcher
	bots       bot.Store
	log        *logrus.Entry
}

// New 创建聊天处理器
func New(store *session.Store, dispatcher *chatService.Dispatcher, bots bot.Store, logger *logrus.Logger) *Handler {
	return &Handler{
		store:      store,
		dispatcher: dispatcher,
		bots:       bots,
		log:        logger.WithField("component", "chat"),
	}
}

// RegisterRoutes 注册聊天相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/chat", h.handleGetChat)
	r.Put("/chat/bot", h.handleSelectBot)
	r.Post("/chat/messages", h.handleSendMessage)
	r.Post("/chat/new", h.handleNewChat)
}

type chatState struct {
	session.Snapshot
	Typing bool `json:"typing"`
}

// handleGetChat 返回当前bot、对话与打字状态
func (h *Handler) handleGetChat(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, chatState{
		Snapshot: h.store.Snapshot(),
		Typing:   h.dispatcher.Typing(),
	})
}

// handleSelectBot 切换当前bot，不清空当前对话
func (h *Handler) handleSelectBot(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		BotID string `json:"botId"`
	}
	if err := utils.DecodeJSON(r, &payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.BotID == "" {
		utils.RespondError(w, http.StatusBadRequest, "botId is required")
		return
	}

	selected, ok := h.bots.FindByID(payload.BotID)
	if !ok {
		utils.RespondError(w, http.StatusNotFound, "bot not found")
		return
	}
	h.store.SelectBot(selected)
	utils.RespondJSON(w, http.StatusOK, selected)
}

// handleSendMessage 提交消息；空消息、未登录或未选择bot时静默忽略
func (h *Handler) handleSendMessage(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Content string `json:"content"`
	}
	if err := utils.DecodeJSON(r, &payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err := h.dispatcher.Submit(payload.Content)
	switch {
	case err == nil:
		utils.RespondJSON(w, http.StatusAccepted, map[string]bool{"sent": true})
	case session.IsNoop(err):
		h.log.WithField("reason", err).Debug("message ignored")
		utils.RespondJSON(w, http.StatusOK, map[string]bool{"sent": false})
	case errors.Is(err, chatService.ErrClosed):
		utils.RespondError(w, http.StatusServiceUnavailable, "shutting down")
	default:
		utils.RespondError(w, http.StatusInternalServerError, err.Error())
	}
}

// handleNewChat 归档当前对话
func (h *Handler) handleNewChat(w http.ResponseWriter, r *http.Request) {
	archived := h.dispatcher.StartNewConversation()
	utils.RespondJSON(w, http.StatusOK, map[string]bool{"archived": archived})
}
