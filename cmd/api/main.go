package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/zhouzirui/bot-hub/backend/internal/config"
	"github.com/zhouzirui/bot-hub/backend/internal/handler"
	"github.com/zhouzirui/bot-hub/backend/internal/model/bot"
	chatService "github.com/zhouzirui/bot-hub/backend/internal/service/chat"
	"github.com/zhouzirui/bot-hub/backend/internal/service/session"
	"github.com/zhouzirui/bot-hub/backend/internal/store/kv"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := logrus.StandardLogger()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		logger.WithError(err).Warn("failed to load .env file, continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("failed to load configuration")
	}
	cfg.Log.Apply(logger)

	bots, err := bot.NewMemoryStore(bot.Seed())
	if err != nil {
		logger.WithError(err).Fatal("invalid bot catalog")
	}

	storage, err := kv.Open(ctx, cfg.Storage)
	if err != nil {
		logger.WithError(err).WithField("backend", cfg.Storage.Backend).Fatal("failed to open storage")
	}
	defer storage.Close()
	logger.WithField("backend", cfg.Storage.Backend).Info("storage ready")

	store := session.NewStore(storage, session.WithLogger(logger))
	if err := store.Restore(ctx); err != nil {
		logger.WithError(err).Fatal("failed to restore session")
	}

	hub := chatService.NewHub(logger)
	dispatcher := chatService.NewDispatcher(store, hub, cfg.Chat, logger)
	defer dispatcher.Close()

	router := handler.NewRouter(handler.Deps{
		Bots:       bots,
		Store:      store,
		Dispatcher: dispatcher,
		Hub:        hub,
		Logger:     logger,
	})

	startServer(ctx, logger, cfg.Server, router)
}

func startServer(ctx context.Context, logger *logrus.Logger, serverCfg config.ServerConfig, router http.Handler) {
	addr := serverCfg.Addr
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
		// Cancel long-lived event streams on shutdown.
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	logger.WithField("addr", addr).Info("Bot Hub backend listening")
	if err := runServer(ctx, srv); err != nil {
		logger.WithError(err).Error("server error")
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
