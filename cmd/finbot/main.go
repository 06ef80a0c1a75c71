package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type rootOptions struct {
	configPath string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:          "finbot",
		Short:        "FinBot market intelligence chat",
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "",
		"path to the config file (default $XDG_CONFIG_HOME/finbot/config.yaml)")

	cmd.AddCommand(
		newServeCmd(opts),
		newBackendCmd(opts),
		newAskCmd(opts),
	)

	return cmd
}

func (o *rootOptions) load() (config, zerolog.Logger, error) {
	cfg, err := loadConfig(o.configPath)
	if err != nil {
		return config{}, zerolog.Nop(), err
	}
	return cfg, newLogger(cfg), nil
}

func newLogger(cfg config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var logger zerolog.Logger
	if cfg.LogFormat == "json" {
		logger = zerolog.New(os.Stdout)
	} else {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}

	return logger.Level(level).With().Timestamp().Logger()
}

// runServer serves srv until it fails or the process is interrupted, then shuts it down gracefully.
func runServer(srv *http.Server, logger zerolog.Logger) error {
	// Channel to listen for errors coming from the listener
	serverErrors := make(chan error, 1)

	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("Server starting")
		serverErrors <- srv.ListenAndServe()
	}()

	// Channel to listen for interrupt/terminate signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	select {
	case err := <-serverErrors:
		return err

	case sig := <-shutdown:
		logger.Info().Str("signal", sig.String()).Msg("Start shutdown")

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			logger.Error().Err(err).Msg("Graceful shutdown failed")
			if err := srv.Close(); err != nil {
				logger.Error().Err(err).Msg("Forcing server close")
			}
			return err
		}
	}

	logger.Info().Msg("Server stopped")
	return nil
}
