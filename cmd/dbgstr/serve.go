// SPDX-FileCopyrightText: © 2021 The dbgstr authors <https://github.com/golangee/dbgstr/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/golangee/dbgstr/internal/api"
	"github.com/golangee/dbgstr/internal/config"
	"github.com/golangee/dbgstr/internal/version"
	"github.com/urfave/cli/v2"
)

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "run the HTTP service",
		Flags: append(formatFlags(),
			&cli.StringFlag{Name: "port", Aliases: []string{"p"}, Usage: "listen on `PORT`, overrides $PORT"},
		),
		Action: runServe,
	}
}

func runServe(c *cli.Context) error {
	log := slog.New(slog.NewJSONHandler(c.App.Writer, nil))

	cfg, err := loadConfig(c)
	if err != nil {
		log.Error("invalid configuration", "error", err)
		return err
	}

	if c.IsSet("port") {
		cfg.Port = c.String("port")
		if err := cfg.Validate(); err != nil {
			log.Error("invalid configuration", "error", err)
			return err
		}
	}

	return serve(c.Context, log, cfg)
}

// serve runs until ctx is cancelled or SIGINT or SIGTERM is received.
func serve(ctx context.Context, log *slog.Logger, cfg config.Config) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      api.NewServer(log, cfg),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		<-ctx.Done()
		log.Info("shutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)
	}()

	log.Info("starting dbgstr", "port", cfg.Port, "version", version.String())
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("server error", "error", err)
		return err
	}

	return nil
}
