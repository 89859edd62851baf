package account

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/zhouzirui/bot-hub/backend/internal/model/user"
	"github.com/zhouzirui/bot-hub/backend/internal/service/session"
	"github.com/zhouzirui/bot-hub/backend/pkg/utils"
)

// Handler 账户资料的HTTP处理器
type Handler struct {
	store *session.Store
	log   *logrus.Entry
}

// New 创建账户处理器
func New(store *session.Store, logger *logrus.Logger) *Handler {
	return &Handler{store: store, log: logger.WithField("component", "account")}
}

// RegisterRoutes 注册账户相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/account", h.handleGetAccount)
	r.Patch("/account", h.handleUpdateAccount)
}

func (h *Handler) handleGetAccount(w http.ResponseWriter, r *http.Request) {
	u, ok := h.store.CurrentUser()
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "not signed in")
		return
	}
	utils.RespondJSON(w, http.StatusOK, u)
}

// handleUpdateAccount 合并资料字段，不做校验
func (h *Handler) handleUpdateAccount(w http.ResponseWriter, r *http.Request) {
	var patch user.Patch
	if err := utils.DecodeJSON(r, &patch); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.store.UpdateUser(r.Context(), patch)
	if errors.Is(err, session.ErrNotAuthenticated) {
		utils.RespondError(w, http.StatusUnauthorized, "not signed in")
		return
	}
	if err != nil {
		h.log.WithError(err).Error("failed to persist profile")
		utils.RespondError(w, http.StatusInternalServerError, "update failed")
		return
	}
	utils.RespondJSON(w, http.StatusOK, updated)
}
