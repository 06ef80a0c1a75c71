package main

import (
	"context"
	"net/http"
	"time"

	"github.com/MegaGrindStone/finbot-web/internal/handlers"
	"github.com/MegaGrindStone/finbot-web/internal/services"
	"github.com/MegaGrindStone/finbot-web/internal/session"
	"github.com/spf13/cobra"
)

const sweepInterval = time.Minute

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the chat page",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, logger, err := opts.load()
			if err != nil {
				return err
			}

			backend, err := services.NewBackend(cfg.BackendURL, cfg.RequestTimeout, logger)
			if err != nil {
				return err
			}

			m, err := handlers.NewMain(backend, session.NewStore(nil), cfg.ReplyDelay, logger)
			if err != nil {
				return err
			}

			router, err := m.Router()
			if err != nil {
				return err
			}

			srv := &http.Server{
				Addr:              ":" + cfg.Port,
				Handler:           router,
				ReadHeaderTimeout: 5 * time.Second,
			}

			sweepCtx, stopSweep := context.WithCancel(context.Background())
			defer stopSweep()
			go func() {
				ticker := time.NewTicker(sweepInterval)
				defer ticker.Stop()
				for {
					select {
					case <-sweepCtx.Done():
						return
					case <-ticker.C:
						m.SweepPages(cfg.PageIdleTTL)
					}
				}
			}()

			srv.RegisterOnShutdown(func() {
				stopSweep()
				if err := m.Shutdown(context.Background()); err != nil {
					logger.Error().Err(err).Msg("Failed to shutdown sse server")
				}
			})

			logger.Info().
				Str("backend", backend.BaseURL()).
				Dur("replyDelay", cfg.ReplyDelay).
				Msg("Chat page configured")

			return runServer(srv, logger)
		},
	}
}
