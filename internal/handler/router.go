package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/zhouzirui/bot-hub/backend/internal/handler/account"
	"github.com/zhouzirui/bot-hub/backend/internal/handler/auth"
	botHandler "github.com/zhouzirui/bot-hub/backend/internal/handler/bot"
	chatHandler "github.com/zhouzirui/bot-hub/backend/internal/handler/chat"
	historyHandler "github.com/zhouzirui/bot-hub/backend/internal/handler/history"
	"github.com/zhouzirui/bot-hub/backend/internal/handler/settings"
	"github.com/zhouzirui/bot-hub/backend/internal/handler/stream"
	middlewarePkg "github.com/zhouzirui/bot-hub/backend/internal/middleware"
	"github.com/zhouzirui/bot-hub/backend/internal/model/bot"
	chatService "github.com/zhouzirui/bot-hub/backend/internal/service/chat"
	"github.com/zhouzirui/bot-hub/backend/internal/service/session"
	"github.com/zhouzirui/bot-hub/backend/pkg/utils"
)

// Deps bundles the services the HTTP surface calls into.
type Deps struct {
	Bots       bot.Store
	Store      *session.Store
	Dispatcher *chatService.Dispatcher
	Hub        *chatService.Hub
	Logger     *logrus.Logger
}

// NewRouter wires HTTP routes to core services.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(api chi.Router) {
		auth.New(deps.Store, deps.Logger).RegisterRoutes(api)
		account.New(deps.Store, deps.Logger).RegisterRoutes(api)
		settings.New(deps.Store, deps.Logger).RegisterRoutes(api)
		botHandler.New(deps.Bots).RegisterRoutes(api)
		chatHandler.New(deps.Store, deps.Dispatcher, deps.Bots, deps.Logger).RegisterRoutes(api)
		historyHandler.New(deps.Store).RegisterRoutes(api)
		stream.New(deps.Hub, deps.Logger).RegisterRoutes(api)
	})

	return r
}
