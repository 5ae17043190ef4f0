package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	httpLayer "ahorro-energia/http"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(opts *rootOptions) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Levanta la API HTTP del simulador",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app := opts.app
			if addr != "" {
				app.Config.Server.Addr = addr
			}
			logger := app.Logger

			municipalityHandler := httpLayer.NewMunicipalityHandler(app.Municipalities, logger)
			savingsHandler := httpLayer.NewSavingsHandler(app.Savings, app.Comparison, logger)

			rateLimiter := httpLayer.NewRateLimiter(app.Config.RateLimit.Capacity, app.Config.RateLimit.Window)
			defer rateLimiter.Stop()

			server := &http.Server{
				Addr:         app.Config.Server.Addr,
				Handler:      httpLayer.NewRouter(municipalityHandler, savingsHandler, rateLimiter),
				ReadTimeout:  app.Config.Server.ReadTimeout,
				WriteTimeout: app.Config.Server.WriteTimeout,
				IdleTimeout:  app.Config.Server.IdleTimeout,
			}

			serverErr := make(chan error, 1)
			go func() {
				logger.Info().Str("addr", server.Addr).Msg("API de ahorro energético escuchando")
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serverErr <- err
				}
			}()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			select {
			case err := <-serverErr:
				logger.Error().Err(err).Msg("error starting server")
				return err
			case <-ctx.Done():
				logger.Info().Msg("shutting down server")
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				logger.Error().Err(err).Msg("error during server shutdown")
				return err
			}

			logger.Info().Msg("server exited")
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides server.addr)")
	return cmd
}
