package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/minhyannv/claude-cli-go/pkg/config"
	"github.com/minhyannv/claude-cli-go/pkg/llm"
	"github.com/minhyannv/claude-cli-go/pkg/session"
)

func newChatCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive chat session with Claude",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings := a.loadSettings(cmd, true)
			client, err := a.completer(settings)
			if err != nil {
				return err
			}
			return a.runChat(cmd.Context(), client, settings)
		},
	}
}

func newStartCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start a chat session immediately (Ctrl+C to exit)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings := a.loadSettings(cmd, true)
			_, _ = fmt.Fprintln(a.stdout, settings.WelcomeMessage)
			_, _ = fmt.Fprintln(a.stdout, strings.Repeat("-", ruleWidth))

			client, err := a.completer(settings)
			if err != nil {
				return err
			}
			return a.runChat(cmd.Context(), client, settings)
		},
	}
}

// runChat prints the chat banner and drives one interactive session.
func (a *app) runChat(ctx context.Context, client llm.Completer, settings config.Settings) error {
	params := session.ParamsFrom(settings)
	label := assistantLabel(settings.Provider)

	_, _ = fmt.Fprintf(a.stdout, "%s Chat (%s)\n", label, params.Model)
	_, _ = fmt.Fprintln(a.stdout, "Type 'exit' or 'quit' to end the conversation.")
	_, _ = fmt.Fprintln(a.stdout, strings.Repeat("-", ruleWidth))

	sess, err := session.New(client, params,
		session.WithOutput(a.stdout),
		session.WithStatus(a.status),
		session.WithLogger(a.logger, a.flags.verbose),
		session.WithAssistantLabel(label),
	)
	if err != nil {
		return err
	}

	reader, closeReader := a.newLineReader()
	reason, err := sess.Chat(ctx, reader, settings.ChatPrompt)
	_ = closeReader()
	if err != nil {
		return err
	}

	switch reason {
	case session.ExitCommand:
		a.status.Success("Exiting chat session.")
	case session.ExitEndOfInput:
		_, _ = fmt.Fprintln(a.stdout, "\nInput stream ended. Exiting chat.")
	case session.ExitInterrupted:
		_, _ = fmt.Fprintln(a.stdout)
		a.status.Success("Chat session ended.")
	}
	return nil
}
