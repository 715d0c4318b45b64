package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/minhyannv/claude-cli-go/pkg/config"
	"github.com/minhyannv/claude-cli-go/pkg/console"
	"github.com/minhyannv/claude-cli-go/pkg/credential"
	"github.com/minhyannv/claude-cli-go/pkg/llm"
	loggerpkg "github.com/minhyannv/claude-cli-go/pkg/logger"
)

// globalFlags holds the persistent flags shared by every subcommand.
type globalFlags struct {
	model       string
	temperature float64
	maxTokens   int64
	system      string
	provider    string
	baseURL     string
	configPath  string
	logFile     string
	verbose     bool
}

// app carries process dependencies so commands can run against fakes in tests.
type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	// status writes progress lines to stderr; report writes check output to stdout.
	status *console.Printer
	report *console.Printer

	resolver      credential.Resolver
	configDir     func() (string, error)
	loadDotenv    func() error
	newCompleter  func(llm.Config) (llm.Completer, error)
	newLineReader func() (console.LineReader, func() error)

	flags   globalFlags
	logger  loggerpkg.Logger
	closers []io.Closer
}

// newApp wires the real terminal, filesystem and vendor SDKs.
func newApp() *app {
	lineReader := func() (console.LineReader, func() error) {
		return console.NewLineReader(os.Stdin, os.Stdout)
	}
	return &app{
		stdin:         os.Stdin,
		stdout:        os.Stdout,
		stderr:        os.Stderr,
		status:        console.NewAutoPrinter(os.Stderr),
		report:        console.NewAutoPrinter(os.Stdout),
		resolver:      credential.Resolver{},
		configDir:     config.ExecutableDir,
		loadDotenv:    func() error { return godotenv.Load() },
		newCompleter:  llm.New,
		newLineReader: lineReader,
	}
}

// silentError marks a failure whose diagnostics were already printed.
type silentError struct {
	err error
}

func (e *silentError) Error() string { return e.err.Error() }
func (e *silentError) Unwrap() error { return e.err }

func reported(err error) error {
	return &silentError{err: err}
}

// prepare loads .env and builds the diagnostic logger.
func (a *app) prepare(settings config.Settings) {
	if a.loadDotenv != nil {
		_ = a.loadDotenv()
	}

	logFile := strings.TrimSpace(a.flags.logFile)
	if logFile == "" {
		logFile = settings.LogFile
	}
	switch {
	case logFile != "":
		l, closer := loggerpkg.NewFileLogger(logFile)
		a.logger = l
		a.closers = append(a.closers, closer)
	case a.flags.verbose:
		a.logger = loggerpkg.NewWriterLogger(a.stderr)
	default:
		a.logger = loggerpkg.NopLogger{}
	}
}

func (a *app) close() {
	for _, c := range a.closers {
		_ = c.Close()
	}
	a.closers = nil
}

// configPath returns the explicit --config path or the document beside the executable.
func (a *app) configPath() (string, error) {
	if p := strings.TrimSpace(a.flags.configPath); p != "" {
		return p, nil
	}
	if a.configDir == nil {
		return "", errors.New("no config directory")
	}
	dir, err := a.configDir()
	if err != nil {
		return "", err
	}
	return config.Locate(dir), nil
}

// loadSettings resolves settings and overlays explicitly set flags.
// announce prints where settings came from; a malformed document is always reported.
func (a *app) loadSettings(cmd *cobra.Command, announce bool) config.Settings {
	settings := config.Defaults()
	path, err := a.configPath()
	if err == nil {
		settings, err = config.Load(path)
	}
	switch {
	case err == nil:
		if announce {
			a.status.Info("Config loaded from %s", path)
		}
	case errors.Is(err, fs.ErrNotExist) || path == "":
		if announce {
			a.status.Info("No config file found, using default settings.")
		}
	default:
		a.status.Error("Could not load config file: %v", err)
		a.status.Info("Using default settings.")
	}

	settings = a.applyFlags(cmd, settings)
	a.prepare(settings)
	loggerpkg.Debug(a.flags.verbose, a.logger, "settings resolved", map[string]any{
		"config_path": path,
		"provider":    settings.Provider,
		"model":       settings.Model,
		"temperature": settings.Temperature,
		"max_tokens":  settings.MaxTokens,
		"base_url":    settings.BaseURL,
	})
	return settings
}

func (a *app) applyFlags(cmd *cobra.Command, s config.Settings) config.Settings {
	flags := cmd.Flags()
	if flags.Changed("model") {
		s.Model = a.flags.model
	}
	if flags.Changed("temperature") {
		s.Temperature = a.flags.temperature
	}
	if flags.Changed("max-tokens") {
		s.MaxTokens = a.flags.maxTokens
	}
	if flags.Changed("system") {
		s.SystemPrompt = a.flags.system
	}
	if flags.Changed("provider") {
		s.Provider = a.flags.provider
	}
	if flags.Changed("base-url") {
		s.BaseURL = a.flags.baseURL
	}
	return config.Normalize(s)
}

// completer resolves the credential and builds the remote client. A missing
// credential is reported with remediation before any network activity.
func (a *app) completer(settings config.Settings) (llm.Completer, error) {
	provider, err := llm.ParseProvider(settings.Provider)
	if err != nil {
		return nil, err
	}
	src, err := credential.ForProvider(string(provider))
	if err != nil {
		return nil, err
	}

	cred, err := a.resolver.Resolve(src)
	if err != nil {
		lines := credential.Remediation(src)
		a.status.Error("%s", lines[0])
		for _, line := range lines[1:] {
			a.status.Info("%s", line)
		}
		return nil, reported(err)
	}
	if cred.Origin == credential.OriginFile {
		a.status.Info("Using API key from %s", cred.Path)
	}
	loggerpkg.Info(a.logger, "credential resolved", map[string]any{
		"provider": string(provider),
		"origin":   string(cred.Origin),
		"path":     cred.Path,
	})

	client, err := a.newCompleter(llm.Config{
		Provider: provider,
		APIKey:   cred.Key(),
		BaseURL:  settings.BaseURL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize %s client: %w", provider, err)
	}
	return client, nil
}

// assistantLabel names the remote assistant in operator output.
func assistantLabel(provider string) string {
	if p, err := llm.ParseProvider(provider); err == nil && p == llm.ProviderOpenAI {
		return "Assistant"
	}
	return "Claude"
}
