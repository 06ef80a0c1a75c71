package main

import (
	"net/http"
	"time"

	"github.com/MegaGrindStone/finbot-web/internal/api"
	"github.com/MegaGrindStone/finbot-web/internal/responder"
	"github.com/spf13/cobra"
)

func newBackendCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "backend",
		Short: "Serve the reference chat service with canned market answers",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, logger, err := opts.load()
			if err != nil {
				return err
			}

			router := api.NewRouter(logger, responder.New(responder.MockQuotes()))

			srv := &http.Server{
				Addr:         ":" + cfg.BackendPort,
				Handler:      router,
				ReadTimeout:  15 * time.Second,
				WriteTimeout: 15 * time.Second,
				IdleTimeout:  60 * time.Second,
			}

			return runServer(srv, logger)
		},
	}
}
