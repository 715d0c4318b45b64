package llm

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/minhyannv/claude-cli-go/pkg/conversation"
)

// AnthropicClient calls the Anthropic Messages API.
type AnthropicClient struct {
	client anthropic.Client
}

// NewAnthropic builds an Anthropic-backed Completer.
func NewAnthropic(cfg Config) *AnthropicClient {
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if cfg.MaxRetries != nil {
		opts = append(opts, option.WithMaxRetries(*cfg.MaxRetries))
	}
	if cfg.HTTPClient != nil {
		opts = append(opts, option.WithHTTPClient(cfg.HTTPClient))
	}
	return &AnthropicClient{client: anthropic.NewClient(opts...)}
}

// Complete sends req as a single Messages API call.
func (c *AnthropicClient) Complete(ctx context.Context, req Request) (*Response, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	messages, err := toAnthropicMessages(req.Messages)
	if err != nil {
		return nil, err
	}

	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(req.Model),
		MaxTokens:   req.MaxTokens,
		Temperature: anthropic.Float(req.Temperature),
		Messages:    messages,
	}
	if req.System != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.System}}
	}

	msg, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return nil, &APIError{Provider: ProviderAnthropic, Err: err}
	}

	text, ok := firstAnthropicText(msg.Content)
	if !ok {
		return nil, ErrEmptyResponse
	}
	return &Response{
		Text:       text,
		Model:      string(msg.Model),
		StopReason: string(msg.StopReason),
		Usage: Usage{
			InputTokens:  msg.Usage.InputTokens,
			OutputTokens: msg.Usage.OutputTokens,
		},
		Raw: json.RawMessage(msg.RawJSON()),
	}, nil
}

func toAnthropicMessages(in []conversation.Message) ([]anthropic.MessageParam, error) {
	out := make([]anthropic.MessageParam, 0, len(in))
	for _, m := range in {
		block := anthropic.NewTextBlock(m.Content)
		switch m.Role {
		case conversation.RoleUser:
			out = append(out, anthropic.NewUserMessage(block))
		case conversation.RoleAssistant:
			out = append(out, anthropic.NewAssistantMessage(block))
		default:
			return nil, fmt.Errorf("%w: %q", conversation.ErrInvalidRole, m.Role)
		}
	}
	return out, nil
}

func firstAnthropicText(blocks []anthropic.ContentBlockUnion) (string, bool) {
	for _, block := range blocks {
		if block.Type == "text" {
			return block.Text, true
		}
	}
	return "", false
}
