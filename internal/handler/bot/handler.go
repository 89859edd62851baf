package bot

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zhouzirui/bot-hub/backend/internal/model/bot"
	"github.com/zhouzirui/bot-hub/backend/pkg/utils"
)

// Handler bot目录的HTTP处理器
type Handler struct {
	bots bot.Store
}

// New 创建bot目录处理器
func New(bots bot.Store) *Handler {
	return &Handler{bots: bots}
}

// RegisterRoutes 注册bot目录相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/bots", h.handleListBots)
	r.Get("/bots/categories", h.handleListCategories)
	r.Get("/bots/{botID}", h.handleGetBot)
}

// handleListBots 列出所有bot，可按分类过滤
func (h *Handler) handleListBots(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	utils.RespondJSON(w, http.StatusOK, h.bots.ListByCategory(category))
}

func (h *Handler) handleListCategories(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.bots.Categories())
}

func (h *Handler) handleGetBot(w http.ResponseWriter, r *http.Request) {
	b, ok := h.bots.FindByID(chi.URLParam(r, "botID"))
	if !ok {
		utils.RespondError(w, http.StatusNotFound, "bot not found")
		return
	}
	utils.RespondJSON(w, http.StatusOK, b)
}
