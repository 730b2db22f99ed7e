package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bilalfuldacs/grammar-check-api/internal/adapter"
	"github.com/bilalfuldacs/grammar-check-api/internal/config"
	"github.com/bilalfuldacs/grammar-check-api/internal/logging"
	"github.com/bilalfuldacs/grammar-check-api/internal/server"
)

func main() {
	configPath := flag.String("config", "", "path to config.yaml")
	useMock := flag.Bool("mock", false, "use the rule-based mock instead of Ollama")
	port := flag.Int("port", 0, "override listen port")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if *port > 0 {
		cfg.Port = *port
	}

	if err := logging.Setup(os.Stdout, cfg.LogLevel, cfg.LogFormat); err != nil {
		log.Fatalf("logging: %v", err)
	}

	gw := buildGateway(cfg, *useMock)
	handler := server.SetupMux(gw, server.Options{
		APIKey:      cfg.APIKey,
		CORSOrigins: cfg.CORSOrigins,
	})

	if cfg.APIKey != "" {
		slog.Info("auth: API key required (X-API-Key header)")
	} else {
		slog.Info("auth: disabled (no api_key configured)")
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("grammar check api listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	<-done
	slog.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("shutdown failed", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

func buildGateway(cfg config.Config, useMock bool) adapter.Gateway {
	if useMock {
		slog.Info("mode: mock adapter enabled")
		return &adapter.MockAdapter{Delay: 500 * time.Millisecond}
	}

	slog.Info("mode: ollama", "url", cfg.OllamaURL, "model", cfg.Model)
	return adapter.NewOllamaAdapter(cfg.OllamaURL, cfg.Model)
}
