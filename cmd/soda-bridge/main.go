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

	"github.com/eleven-am/soda-stream/internal/engine/bridge"
	"github.com/eleven-am/soda-stream/internal/engine/native"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// Hosts the native engine for soda-stream clients running with
// SODA_ENGINE=bridge. Build with -tags soda.
func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	addr := os.Getenv("BRIDGE_ADDR")
	if addr == "" {
		addr = ":9090"
	}

	eng, err := native.New()
	if err != nil {
		logger.Error("native engine unavailable", "error", err)
		os.Exit(1)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	host := bridge.NewHost(eng, logger)
	e.GET("/soda", host.HandleConnection)

	go func() {
		logger.Info("bridge listening", "addr", addr)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("bridge server failed", "error", err)
			os.Exit(1)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Warn("shutdown failed", "error", err)
	}
	host.Close()
	logger.Info("engine instances released")
}
