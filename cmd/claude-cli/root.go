package main

import (
	"github.com/spf13/cobra"

	"github.com/minhyannv/claude-cli-go/pkg/config"
)

const ruleWidth = 50

func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "claude-cli",
		Short:         "CLI tool for interacting with Anthropic's Claude",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	root.SetIn(a.stdin)
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)
	root.CompletionOptions.DisableDefaultCmd = true

	flags := root.PersistentFlags()
	flags.StringVarP(&a.flags.model, "model", "m", config.DefaultModel, "Claude model to use")
	flags.Float64VarP(&a.flags.temperature, "temperature", "t", config.DefaultTemperature, "Temperature for response generation")
	flags.Int64VarP(&a.flags.maxTokens, "max-tokens", "x", config.DefaultMaxTokens, "Maximum number of tokens in the response")
	flags.StringVarP(&a.flags.system, "system", "s", "", "System message to set context for Claude")
	flags.StringVar(&a.flags.provider, "provider", config.DefaultProvider, "Completion backend: anthropic or openai")
	flags.StringVar(&a.flags.baseURL, "base-url", "", "Override the API base URL")
	flags.StringVarP(&a.flags.configPath, "config", "c", "", "Config document (default: config.json beside the executable)")
	flags.StringVar(&a.flags.logFile, "log-file", "", "Write diagnostics to a rotating log file")
	flags.BoolVarP(&a.flags.verbose, "verbose", "v", false, "Verbose diagnostic logging")

	root.AddCommand(
		newAskCommand(a),
		newChatCommand(a),
		newStartCommand(a),
		newCheckCommand(a),
	)
	return root
}
