package settings

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/zhouzirui/bot-hub/backend/internal/model/user"
	"github.com/zhouzirui/bot-hub/backend/internal/service/session"
	"github.com/zhouzirui/bot-hub/backend/pkg/utils"
)

// Handler 外观设置的HTTP处理器
type Handler struct {
	store *session.Store
	log   *logrus.Entry
}

// New 创建设置处理器
func New(store *session.Store, logger *logrus.Logger) *Handler {
	return &Handler{store: store, log: logger.WithField("component", "settings")}
}

// RegisterRoutes 注册设置相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/settings/theme", h.handleGetTheme)
	r.Put("/settings/theme", h.handleSetTheme)
}

type themePayload struct {
	Theme user.Theme `json:"theme"`
}

func (h *Handler) handleGetTheme(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, themePayload{Theme: h.store.Theme()})
}

func (h *Handler) handleSetTheme(w http.ResponseWriter, r *http.Request) {
	var payload themePayload
	if err := utils.DecodeJSON(r, &payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err := h.store.SetTheme(r.Context(), payload.Theme)
	if errors.Is(err, user.ErrInvalidTheme) {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		h.log.WithError(err).Error("failed to persist theme")
		utils.RespondError(w, http.StatusInternalServerError, "theme update failed")
		return
	}
	utils.RespondJSON(w, http.StatusOK, payload)
}
