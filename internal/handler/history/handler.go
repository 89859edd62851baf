package history

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/zhouzirui/bot-hub/backend/internal/service/history"
	"github.com/zhouzirui/bot-hub/backend/internal/service/session"
	"github.com/zhouzirui/bot-hub/backend/pkg/utils"
)

// Handler 历史会话的HTTP处理器
type Handler struct {
	store *session.Store
	now   func() time.Time
}

// New 创建历史会话处理器
func New(store *session.Store) *Handler {
	return &Handler{store: store, now: func() time.Time { return time.Now().UTC() }}
}

// RegisterRoutes 注册历史会话相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/history", h.handleListSessions)
	r.Get("/history/{sessionID}/export", h.handleExportSession)
	r.Delete("/history/{sessionID}", h.handleDeleteSession)
}

// handleListSessions 搜索、过滤并排序历史会话
func (h *Handler) handleListSessions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	sort := history.SortMode(q.Get("sort"))
	if sort == "" {
		sort = history.SortNewest
	}
	botID := q.Get("bot")
	if botID == "" {
		botID = history.AllBots
	}

	sessions := history.List(h.store.History(), history.Query{
		Search: q.Get("search"),
		Sort:   sort,
		BotID:  botID,
	}, h.now())
	utils.RespondJSON(w, http.StatusOK, sessions)
}

// handleExportSession 以纯文本附件导出会话
func (h *Handler) handleExportSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionID")
	s, ok := history.Find(h.store.History(), id, h.now())
	if !ok {
		utils.RespondError(w, http.StatusNotFound, "session not found")
		return
	}
	utils.RespondAttachment(w, history.Filename(s.ID), history.Export(s))
}

// handleDeleteSession 删除会话，不存在的ID同样返回204。
// 会话ID按位置编号，删除后其后的会话会前移一位；对同一ID重试会删除
// 另一条会话，客户端应在每次删除后重新拉取列表。
func (h *Handler) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	h.store.DeleteSession(chi.URLParam(r, "sessionID"))
	w.WriteHeader(http.StatusNoContent)
}
