package auth

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/zhouzirui/bot-hub/backend/internal/model/user"
	"github.com/zhouzirui/bot-hub/backend/internal/service/session"
	"github.com/zhouzirui/bot-hub/backend/pkg/utils"
)

// Handler 登录/登出的HTTP处理器。登录是模拟的，任何凭证都会被接受。
type Handler struct {
	store *session.Store
	now   func() time.Time
	log   *logrus.Entry
}

// New 创建认证处理器
func New(store *session.Store, logger *logrus.Logger) *Handler {
	return &Handler{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
		log:   logger.WithField("component", "auth"),
	}
}

// RegisterRoutes 注册认证相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/auth/login", h.handleLogin)
	r.Post("/auth/logout", h.handleLogout)
}

// handleLogin 根据表单合成用户并登录
func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := utils.DecodeJSON(r, &payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	u := user.FromCredentials(payload.Name, payload.Email, h.now())
	if err := h.store.Login(r.Context(), u); err != nil {
		h.log.WithError(err).Error("failed to persist login")
		utils.RespondError(w, http.StatusInternalServerError, "login failed")
		return
	}

	utils.RespondJSON(w, http.StatusCreated, u)
}

// handleLogout 清除当前用户、bot选择与当前会话
func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Logout(r.Context()); err != nil {
		h.log.WithError(err).Error("failed to clear persisted user")
		utils.RespondError(w, http.StatusInternalServerError, "logout failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
