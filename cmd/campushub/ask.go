package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"campushub/internal/assistant"
)

func newAskCmd(a *app) *cobra.Command {
	var timeout time.Duration
	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask the campus assistant one question",
		Long: `Send one message to the configured OpenAI-compatible chat endpoint.

The API key is read from CAMPUSHUB_ASSISTANT_API_KEY (or a .env file).`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := assistant.NewClient(assistantConfig(a.cfg), a.logger)
			if !client.Configured() {
				return assistant.ErrNotConfigured
			}

			if timeout <= 0 {
				timeout = a.cfg.Assistant.Timeout()
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			turn := assistant.NewChat(client, nil).Ask(ctx, strings.Join(args, " "))
			if turn.Failed() {
				return errors.New(turn.Err)
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), turn.Reply)
			return err
		},
	}
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "Give up after this long (default: assistant.timeout_seconds)")
	return cmd
}
