package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/goliatone/go-auth-service/internal/config"
	"github.com/goliatone/go-auth-service/internal/logging"
	"github.com/goliatone/go-auth-service/internal/server"
)

func main() {
	cfg, err := config.Load(nil)
	if err != nil {
		logging.New("authd", config.LogFormatPretty, "info").
			GetLogger("config").
			Error("load config", "error", err)
		os.Exit(1)
	}

	lgr := logging.New("authd", cfg.LogFormat, cfg.LogLevel)
	logger := lgr.GetLogger("authd")
	logger.Info("configuration loaded", "config", cfg.String())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := server.New(ctx, cfg, lgr)
	if err != nil {
		logger.Error("build server", "error", err)
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil {
		logger.Error("failed to serve", "error", err)
		os.Exit(1)
	}
}
