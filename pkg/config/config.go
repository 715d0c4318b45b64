package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Built-in defaults used when no config document overrides them.
const (
	DefaultProvider       = "anthropic"
	DefaultModel          = "claude-3-7-sonnet-20250219"
	DefaultTemperature    = 0.7
	DefaultMaxTokens      = 4000
	DefaultSystemPrompt   = "You are Claude, a helpful AI assistant."
	DefaultChatPrompt     = "You: "
	DefaultWelcomeMessage = "Welcome to Claude CLI! Type your message and press Enter. Use Ctrl+C to exit."
)

// fileNames lists the config documents searched for beside the executable, in order.
var fileNames = []string{"config.json", "config.yaml", "config.yml", "config.toml"}

// Settings holds the resolved runtime configuration.
// It is built once per process and passed by value.
type Settings struct {
	Provider       string
	Model          string
	Temperature    float64
	MaxTokens      int64
	SystemPrompt   string
	ChatPrompt     string
	WelcomeMessage string
	BaseURL        string
	LogFile        string
}

// Defaults returns the built-in settings without side effects.
func Defaults() Settings {
	return Settings{
		Provider:       DefaultProvider,
		Model:          DefaultModel,
		Temperature:    DefaultTemperature,
		MaxTokens:      DefaultMaxTokens,
		SystemPrompt:   DefaultSystemPrompt,
		ChatPrompt:     DefaultChatPrompt,
		WelcomeMessage: DefaultWelcomeMessage,
	}
}

// document is the on-disk shape. Pointer fields distinguish absent keys from zero values.
type document struct {
	Provider       *string  `json:"provider" yaml:"provider" toml:"provider"`
	Model          *string  `json:"default_model" yaml:"default_model" toml:"default_model"`
	Temperature    *float64 `json:"default_temperature" yaml:"default_temperature" toml:"default_temperature"`
	MaxTokens      *int64   `json:"default_max_tokens" yaml:"default_max_tokens" toml:"default_max_tokens"`
	SystemPrompt   *string  `json:"default_system_message" yaml:"default_system_message" toml:"default_system_message"`
	ChatPrompt     *string  `json:"chat_prompt" yaml:"chat_prompt" toml:"chat_prompt"`
	WelcomeMessage *string  `json:"welcome_message" yaml:"welcome_message" toml:"welcome_message"`
	BaseURL        *string  `json:"base_url" yaml:"base_url" toml:"base_url"`
	LogFile        *string  `json:"log_file" yaml:"log_file" toml:"log_file"`
}

func (d document) overlay(s Settings) Settings {
	if d.Provider != nil {
		s.Provider = *d.Provider
	}
	if d.Model != nil {
		s.Model = *d.Model
	}
	if d.Temperature != nil {
		s.Temperature = *d.Temperature
	}
	if d.MaxTokens != nil {
		s.MaxTokens = *d.MaxTokens
	}
	if d.SystemPrompt != nil {
		s.SystemPrompt = *d.SystemPrompt
	}
	if d.ChatPrompt != nil {
		s.ChatPrompt = *d.ChatPrompt
	}
	if d.WelcomeMessage != nil {
		s.WelcomeMessage = *d.WelcomeMessage
	}
	if d.BaseURL != nil {
		s.BaseURL = *d.BaseURL
	}
	if d.LogFile != nil {
		s.LogFile = *d.LogFile
	}
	return s
}

// Load reads the config document at path and overlays it onto Defaults.
//
// Load always returns usable settings. A missing file yields the defaults and
// an error matching fs.ErrNotExist; a document that fails to parse yields
// exactly the defaults and the parse error.
func Load(path string) (Settings, error) {
	defaults := Defaults()
	if strings.TrimSpace(path) == "" {
		return defaults, fmt.Errorf("config path is empty: %w", os.ErrNotExist)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return defaults, err
	}

	doc, err := decode(path, data)
	if err != nil {
		return defaults, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return Normalize(doc.overlay(defaults)), nil
}

func decode(path string, data []byte) (document, error) {
	var doc document
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return document{}, err
		}
	case ".toml":
		if _, err := toml.Decode(string(data), &doc); err != nil {
			return document{}, err
		}
	default:
		if err := json.Unmarshal(data, &doc); err != nil {
			return document{}, err
		}
	}
	return doc, nil
}

// Locate returns the first config document found in dir, or the path of the
// primary document name when none exists.
func Locate(dir string) string {
	for _, name := range fileNames {
		candidate := filepath.Join(dir, name)
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			return candidate
		}
	}
	return filepath.Join(dir, fileNames[0])
}

// ExecutableDir returns the directory holding the running binary.
func ExecutableDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe), nil
}

// Normalize trims string values. Numeric values pass through unvalidated.
func Normalize(s Settings) Settings {
	s.Provider = strings.ToLower(strings.TrimSpace(s.Provider))
	s.Model = strings.TrimSpace(s.Model)
	s.BaseURL = strings.TrimSpace(s.BaseURL)
	s.LogFile = strings.TrimSpace(s.LogFile)
	if s.Provider == "" {
		s.Provider = DefaultProvider
	}
	return s
}
