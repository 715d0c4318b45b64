// Package main provides the claude-cli command.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	loggerpkg "github.com/minhyannv/claude-cli-go/pkg/logger"
)

// main is the program entry point.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, newApp(), os.Args[1:])
	stop()
	os.Exit(code)
}

// run executes one invocation and returns the process exit status.
func run(ctx context.Context, a *app, args []string) int {
	root := newRootCommand(a)
	root.SetArgs(args)
	defer a.close()

	if err := root.ExecuteContext(ctx); err != nil {
		loggerpkg.Error(a.logger, "command failed", map[string]any{"args": args, "error": err.Error()})
		var silent *silentError
		if !errors.As(err, &silent) {
			a.status.Error("Error: %v", err)
		}
		return 1
	}
	return 0
}
