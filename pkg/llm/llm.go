// Package llm adapts vendor SDKs to a single synchronous completion call.
//
// The package adds no retries, backoff or timeouts of its own; whatever the
// vendor SDK does by default applies, and every failure is returned to the
// caller unchanged apart from an APIError wrapper naming the provider.
package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/tidwall/pretty"

	"github.com/minhyannv/claude-cli-go/pkg/conversation"
)

// Provider names a completion backend.
type Provider string

const (
	ProviderAnthropic Provider = "anthropic"
	ProviderOpenAI    Provider = "openai"
)

// ParseProvider maps a config or flag value to a Provider.
func ParseProvider(s string) (Provider, error) {
	switch Provider(strings.ToLower(strings.TrimSpace(s))) {
	case "", ProviderAnthropic:
		return ProviderAnthropic, nil
	case ProviderOpenAI:
		return ProviderOpenAI, nil
	default:
		return "", fmt.Errorf("unknown provider %q (want %q or %q)", s, ProviderAnthropic, ProviderOpenAI)
	}
}

// ErrEmptyResponse is returned when the reply carries no text content.
var ErrEmptyResponse = errors.New("response contained no text content")

// Request is one completion call.
type Request struct {
	Model       string
	Temperature float64
	MaxTokens   int64
	// System is sent in a dedicated field, never as a history message.
	System   string
	Messages []conversation.Message
}

func (r Request) validate() error {
	if strings.TrimSpace(r.Model) == "" {
		return errors.New("model is not set")
	}
	if len(r.Messages) == 0 {
		return errors.New("request has no messages")
	}
	return nil
}

// Usage reports token accounting returned by the provider.
type Usage struct {
	InputTokens  int64 `json:"input_tokens"`
	OutputTokens int64 `json:"output_tokens"`
}

// Response is the extracted reply plus the provider's full document.
type Response struct {
	Text       string          `json:"text"`
	Model      string          `json:"model"`
	StopReason string          `json:"stop_reason"`
	Usage      Usage           `json:"usage"`
	Raw        json.RawMessage `json:"-"`
}

// PrettyJSON renders the provider's full response document, indented.
// When the raw document is unavailable the extracted fields are rendered instead.
func (r *Response) PrettyJSON() []byte {
	raw := []byte(r.Raw)
	if len(raw) == 0 || !json.Valid(raw) {
		b, err := json.Marshal(r)
		if err != nil {
			return nil
		}
		raw = b
	}
	return pretty.PrettyOptions(raw, &pretty.Options{Width: 80, Indent: "  "})
}

// Completer issues one completion request per call.
type Completer interface {
	Complete(ctx context.Context, req Request) (*Response, error)
}

// APIError wraps a failure returned by a vendor SDK.
type APIError struct {
	Provider Provider
	Err      error
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s request failed: %v", e.Provider, e.Err)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// Config selects and configures a backend.
type Config struct {
	Provider Provider
	APIKey   string
	BaseURL  string
	// MaxRetries overrides the SDK default when non-nil.
	MaxRetries *int
	HTTPClient *http.Client
}

// New builds the Completer for cfg.Provider.
func New(cfg Config) (Completer, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("APIKey is not set")
	}
	switch cfg.Provider {
	case "", ProviderAnthropic:
		return NewAnthropic(cfg), nil
	case ProviderOpenAI:
		return NewOpenAI(cfg), nil
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
	}
}
