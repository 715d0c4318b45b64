package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/minhyannv/claude-cli-go/pkg/config"
	"github.com/minhyannv/claude-cli-go/pkg/credential"
	"github.com/minhyannv/claude-cli-go/pkg/llm"
)

// sdkModules maps providers to the vendor SDK module reported by check.
var sdkModules = map[llm.Provider]string{
	llm.ProviderAnthropic: "github.com/anthropics/anthropic-sdk-go",
	llm.ProviderOpenAI:    "github.com/openai/openai-go",
}

func newCheckCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Check the environment and configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.runCheck(cmd)
			return nil
		},
	}
}

// runCheck reports on the environment. It never fails the process and never prints the key.
func (a *app) runCheck(cmd *cobra.Command) {
	if a.loadDotenv != nil {
		_ = a.loadDotenv()
	}
	r := a.report
	r.Info("Environment Check:")
	r.Plain("  System: %s/%s", runtime.GOOS, runtime.GOARCH)
	r.Plain("  Go: %s", runtime.Version())
	if exe, err := os.Executable(); err == nil {
		r.Plain("  Executable location: %s", exe)
	}

	settings := config.Defaults()
	if path, err := a.configPath(); err == nil {
		settings, _ = config.Load(path)
	}
	settings = a.applyFlags(cmd, settings)
	provider, err := llm.ParseProvider(settings.Provider)
	if err != nil {
		r.Error("  Provider: %v", err)
		return
	}
	src, _ := credential.ForProvider(string(provider))

	st := a.resolver.Inspect(src)
	switch {
	case st.EnvSet:
		r.Success("  API key: Found in environment variables")
	case st.FileExists:
		r.Success("  API key: Found in %s file", st.FilePath)
	default:
		r.Error("  API key: Not found")
	}

	a.checkConfig()

	if module, ok := sdkModules[provider]; ok {
		if version, found := moduleVersion(module); found {
			r.Success("  SDK %s: Installed (version %s)", module, version)
		} else {
			r.Info("  SDK %s: Installed (version unknown)", module)
		}
	}

	if _, err := a.resolver.Resolve(src); err != nil {
		r.Error("  API key issue: %v", err)
		for _, line := range credential.Remediation(src)[1:] {
			r.Info("  %s", line)
		}
		return
	}
	r.Success("  API key: Valid format")
	r.Info("  Ready to use Claude CLI!")
}

func (a *app) checkConfig() {
	r := a.report
	path, err := a.configPath()
	if err != nil {
		r.Info("  Config file: Not found, will use defaults")
		return
	}
	_, err = config.Load(path)
	switch {
	case err == nil:
		r.Success("  Config file: Found at %s", path)
	case errors.Is(err, fs.ErrNotExist):
		r.Info("  Config file: Not found, will use defaults")
	default:
		r.Error("  Config file: %s could not be parsed: %v", path, err)
	}
}

func moduleVersion(path string) (string, bool) {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "", false
	}
	for _, dep := range info.Deps {
		if dep.Path != path {
			continue
		}
		if dep.Replace != nil {
			return fmt.Sprintf("%s => %s", dep.Version, dep.Replace.Version), true
		}
		return dep.Version, true
	}
	return "", false
}
