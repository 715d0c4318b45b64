package main

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/minhyannv/claude-cli-go/pkg/session"
)

func newAskCommand(a *app) *cobra.Command {
	var jsonOutput bool
	cmd := &cobra.Command{
		Use:   "ask <prompt>",
		Short: "Send a single message to Claude",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runAsk(cmd, strings.Join(args, " "), jsonOutput)
		},
	}
	cmd.Flags().BoolVarP(&jsonOutput, "json", "j", false, "Output the full JSON response")
	return cmd
}

func (a *app) runAsk(cmd *cobra.Command, prompt string, jsonOutput bool) error {
	if strings.TrimSpace(prompt) == "" {
		return fmt.Errorf("ask requires a non-empty prompt\n\n%s", cmd.UsageString())
	}
	settings := a.loadSettings(cmd, false)
	client, err := a.completer(settings)
	if err != nil {
		return err
	}

	params := session.ParamsFrom(settings)
	label := assistantLabel(settings.Provider)
	a.status.Info("Sending message to %s... (model: %s, temperature: %g)", label, params.Model, params.Temperature)

	resp, err := session.Ask(cmd.Context(), client, params, prompt)
	if err != nil {
		a.status.Error("API call failed: %v", err)
		return reported(err)
	}
	a.status.Success("Response received successfully")

	if jsonOutput {
		out := resp.PrettyJSON()
		if !bytes.HasSuffix(out, []byte("\n")) {
			out = append(out, '\n')
		}
		_, _ = a.stdout.Write(out)
		return nil
	}
	_, _ = fmt.Fprintf(a.stdout, "\n%s\n", resp.Text)
	return nil
}
