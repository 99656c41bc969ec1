package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	appconfig "github.com/fedutinova/xpb3parser/internal/config"
	"github.com/fedutinova/xpb3parser/internal/llm"
	"github.com/fedutinova/xpb3parser/internal/pdftext"
	"github.com/fedutinova/xpb3parser/internal/server"
	"github.com/fedutinova/xpb3parser/internal/storage"
	httpapi "github.com/fedutinova/xpb3parser/internal/transport/http"
)

func main() {
	cfg := appconfig.Load()
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel})))

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "err", err)
		os.Exit(1)
	}
	if cfg.APIKey == "" {
		slog.Warn("API_KEY not set, /predict will reject every request")
	}
	slog.Info("starting xp b3 parser", "addr", cfg.HTTPAddr, "provider", cfg.Provider, "model", cfg.Model)

	spool, err := storage.NewLocalSpool(cfg.TempDir)
	if err != nil {
		slog.Error("failed to initialize spool", "err", err)
		os.Exit(1)
	}

	completer, err := llm.NewCompleter(cfg)
	if err != nil {
		slog.Error("failed to initialize model client", "err", err)
		os.Exit(1)
	}

	handlers := &httpapi.Handlers{
		Extractor: pdftext.NewExtractor(spool),
		Fields:    llm.NewClient(completer, cfg.MaxTextChars),
		Config:    cfg,
	}
	r := server.NewRouter(handlers)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       90 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "err", err)
			os.Exit(1)
		}
	}()

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM)
	<-ch
	slog.Info("shutting down")

	shCtx, shCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shCancel()
	_ = srv.Shutdown(shCtx)
}
