package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/pushr/marketplace/internal/api"
	"github.com/pushr/marketplace/internal/api/middleware"
	"github.com/pushr/marketplace/internal/core/service"
	"github.com/pushr/marketplace/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func serveCmd(app *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := app.cfg
			app.log = logger.Init(logger.Options{
				Level:   cfg.LogLevel,
				Pretty:  cfg.IsDevelopment(),
				Service: "pushr-api",
			})
			log := app.log

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			c, err := buildCore(ctx, cfg, service.NopHaptics{}, log)
			if err != nil {
				return err
			}
			defer func() {
				if err := c.Close(); err != nil {
					log.Error().Err(err).Msg("shutdown")
				}
			}()

			e := api.NewRouter(api.Dependencies{
				Sessions: c.sessions,
				Auth:     c.auth,
				Roles:    c.roles,
				Tokens:   middleware.NewSessionTokens(cfg.SessionSecret, cfg.TokenTTL),
				Mongo:    c.mongoDB,
				Redis:    c.redis,
				Log:      log,
			})

			errCh := make(chan error, 1)
			go func() {
				log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("http server listening")
				if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			log.Info().Msg("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return e.Shutdown(shutdownCtx)
		},
	}
}
