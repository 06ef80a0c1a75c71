package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/MegaGrindStone/finbot-web/internal/chat"
	"github.com/MegaGrindStone/finbot-web/internal/models"
	"github.com/MegaGrindStone/finbot-web/internal/services"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newAskCmd(opts *rootOptions) *cobra.Command {
	var withDelay bool

	cmd := &cobra.Command{
		Use:   "ask <message...>",
		Short: "Ask the chat service one question and print the conversation",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := opts.load()
			if err != nil {
				return err
			}

			backend, err := services.NewBackend(cfg.BackendURL, cfg.RequestTimeout, logger)
			if err != nil {
				return err
			}

			panelOpts := []chat.Option{chat.WithLogger(logger)}
			if withDelay {
				panelOpts = append(panelOpts, chat.WithReplyDelay(cfg.ReplyDelay))
			}
			panel := chat.NewPanel(backend, panelOpts...)

			ctx := cmd.Context()
			if status := panel.CheckConnection(ctx); !status.Connected() {
				return errors.Errorf("chat service at %s is unreachable", backend.BaseURL())
			}

			if _, err := panel.Send(ctx, strings.Join(args, " ")); err != nil {
				return err
			}

			return printConversation(cmd.OutOrStdout(), panel.Messages())
		},
	}
	cmd.Flags().BoolVar(&withDelay, "delay", false, "wait the configured reply delay before showing the answer")

	return cmd
}

func printConversation(w io.Writer, msgs []models.Message) error {
	for _, msg := range msgs {
		speaker := "You"
		if msg.Role == models.RoleAssistant {
			speaker = "FinBot"
		}
		if _, err := fmt.Fprintf(w, "[%s] %s:\n%s\n\n", msg.CreatedAt.Format("3:04:05 PM"), speaker, msg.Text); err != nil {
			return err
		}
	}
	return nil
}
