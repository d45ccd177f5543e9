package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/efreitasn/ledgermatch/internal/config"
	"github.com/efreitasn/ledgermatch/internal/engine"
	"github.com/efreitasn/ledgermatch/internal/feed"
	"github.com/efreitasn/ledgermatch/internal/handler"
	"github.com/efreitasn/ledgermatch/internal/journal"
	"github.com/efreitasn/ledgermatch/internal/ledger"
	"github.com/efreitasn/ledgermatch/internal/service"
	"github.com/efreitasn/ledgermatch/internal/store"
)

func main() {
	healthcheck := flag.Bool("healthcheck", false, "Run health check against running server")
	flag.Parse()

	// Handle -healthcheck flag: HTTP GET to localhost:PORT/healthz, exit 0/1.
	if *healthcheck {
		port := os.Getenv("PORT")
		if port == "" {
			port = "8080"
		}
		resp, err := http.Get(fmt.Sprintf("http://localhost:%s/healthz", port))
		if err != nil || resp.StatusCode != http.StatusOK {
			os.Exit(1)
		}
		os.Exit(0)
	}

	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Set up slog logger with configured level.
	var logLevel slog.Level
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// Stores and ledger.
	marketStore := store.NewMarketStore()
	orderStore := store.NewOrderStore()
	tradeStore := store.NewTradeStore()
	webhookStore := store.NewWebhookStore()
	book := ledger.New()

	// Matching engine.
	eng := engine.New(marketStore, orderStore, tradeStore, book, cfg.OrderDeposit)

	// Operation journal (disabled when DATA_DIR is empty).
	var jnl *journal.Journal
	if cfg.DataDir != "" {
		jnl, err = journal.Open(filepath.Join(cfg.DataDir, "journal"))
		if err != nil {
			logger.Error("failed to open journal", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer jnl.Close()

		if err := service.Replay(jnl, eng, book); err != nil {
			logger.Error("journal replay failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.Info("journal replayed", slog.Uint64("entries", jnl.Len()))
	}

	// Live event feed.
	hub := feed.NewHub(logger)

	// Services.
	webhookSvc := service.NewWebhookService(webhookStore, book, cfg.WebhookTimeout)
	accountSvc := service.NewAccountService(book, jnl)
	marketSvc := service.NewMarketService(eng, jnl)
	orderSvc := service.NewOrderService(eng, jnl, webhookSvc, hub)
	tradeSvc := service.NewTradeService(eng, jnl, webhookSvc, hub)

	// Router.
	router := handler.NewRouter(accountSvc, marketSvc, orderSvc, tradeSvc, webhookSvc, hub, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	// Configure HTTP server.
	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	// Start HTTP server in a goroutine.
	go func() {
		logger.Info("server starting", slog.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// Wait for SIGINT/SIGTERM.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	logger.Info("shutdown signal received", slog.String("signal", sig.String()))

	// Graceful shutdown: stop HTTP server, then the feed hub.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.String("error", err.Error()))
	}
	cancel()

	logger.Info("server stopped")
}
