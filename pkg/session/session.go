// Package session drives single-shot and interactive conversations against a Completer.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/minhyannv/claude-cli-go/pkg/config"
	"github.com/minhyannv/claude-cli-go/pkg/console"
	"github.com/minhyannv/claude-cli-go/pkg/conversation"
	"github.com/minhyannv/claude-cli-go/pkg/llm"
	loggerpkg "github.com/minhyannv/claude-cli-go/pkg/logger"
)

// ErrEmptyInput is returned by Ask for a blank prompt.
var ErrEmptyInput = errors.New("user input is required")

// Params parameterizes every remote call of a session.
type Params struct {
	Model       string
	Temperature float64
	MaxTokens   int64
	System      string
}

// ParamsFrom converts resolved settings into session parameters.
func ParamsFrom(s config.Settings) Params {
	return Params{
		Model:       s.Model,
		Temperature: s.Temperature,
		MaxTokens:   s.MaxTokens,
		System:      s.SystemPrompt,
	}
}

func (p Params) request(messages []conversation.Message) llm.Request {
	return llm.Request{
		Model:       p.Model,
		Temperature: p.Temperature,
		MaxTokens:   p.MaxTokens,
		System:      p.System,
		Messages:    messages,
	}
}

// Ask runs exactly one turn on a fresh conversation holding only prompt.
func Ask(ctx context.Context, client llm.Completer, params Params, prompt string) (*llm.Response, error) {
	if client == nil {
		return nil, errors.New("completion client is required")
	}
	conv := conversation.New()
	if err := conv.AddUser(prompt); err != nil {
		if errors.Is(err, conversation.ErrEmptyContent) {
			return nil, ErrEmptyInput
		}
		return nil, err
	}
	return client.Complete(ctx, params.request(conv.Messages()))
}

// ExitReason tells why an interactive session ended.
type ExitReason int

const (
	ExitCommand ExitReason = iota
	ExitEndOfInput
	ExitInterrupted
)

func (r ExitReason) String() string {
	switch r {
	case ExitCommand:
		return "command"
	case ExitEndOfInput:
		return "end_of_input"
	case ExitInterrupted:
		return "interrupted"
	default:
		return fmt.Sprintf("ExitReason(%d)", int(r))
	}
}

// Session owns one interactive conversation.
type Session struct {
	client llm.Completer
	params Params
	conv   *conversation.Conversation

	id             string
	out            io.Writer
	status         *console.Printer
	logger         loggerpkg.Logger
	verbose        bool
	assistantLabel string
}

// New creates a session with an empty conversation.
func New(client llm.Completer, params Params, opts ...Option) (*Session, error) {
	if client == nil {
		return nil, errors.New("completion client is required")
	}
	deps := sessionDeps{
		logger:         loggerpkg.NopLogger{},
		out:            io.Discard,
		assistantLabel: "Claude",
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&deps)
		}
	}
	if deps.status == nil {
		deps.status = console.NewPrinter(io.Discard, false)
	}
	if deps.id == "" {
		deps.id = uuid.NewString()
	}

	return &Session{
		client:         client,
		params:         params,
		conv:           conversation.New(),
		id:             deps.id,
		out:            deps.out,
		status:         deps.status,
		logger:         loggerpkg.With(deps.logger, map[string]any{"session_id": deps.id}),
		verbose:        deps.verbose,
		assistantLabel: deps.assistantLabel,
	}, nil
}

// ID returns the session id used in diagnostics.
func (s *Session) ID() string { return s.id }

// Messages returns a copy of the conversation history.
func (s *Session) Messages() []conversation.Message { return s.conv.Messages() }

// Len returns the number of messages in the conversation.
func (s *Session) Len() int { return s.conv.Len() }

// IsExitCommand reports whether input asks to leave the session.
func IsExitCommand(input string) bool {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "exit", "quit":
		return true
	}
	return false
}

// Chat runs the interactive loop until an exit command, end of input or
// interrupt. The returned error is non-nil only when reading input fails for
// another reason; failed remote calls are reported and the loop continues.
//
// A failed turn keeps its user message in history, so the next request
// replays it as context.
func (s *Session) Chat(ctx context.Context, in console.LineReader, prompt string) (ExitReason, error) {
	if in == nil {
		return ExitEndOfInput, errors.New("input reader is required")
	}
	s.debug("chat start", map[string]any{"model": s.params.Model})

	for {
		if ctx.Err() != nil {
			return s.finish(ExitInterrupted), nil
		}

		_, _ = fmt.Fprintln(s.out)
		line, err := in.ReadLine(ctx, prompt)
		switch {
		case errors.Is(err, io.EOF):
			return s.finish(ExitEndOfInput), nil
		case errors.Is(err, console.ErrInterrupted), ctx.Err() != nil:
			return s.finish(ExitInterrupted), nil
		case err != nil:
			return s.finish(ExitEndOfInput), fmt.Errorf("read input: %w", err)
		}

		if IsExitCommand(line) {
			return s.finish(ExitCommand), nil
		}
		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}

		if err := s.turn(ctx, input); err != nil {
			if ctx.Err() != nil {
				return s.finish(ExitInterrupted), nil
			}
			s.status.Error("Error: %v", err)
		}
	}
}

// turn appends input, sends the whole history and appends the reply on success.
func (s *Session) turn(ctx context.Context, input string) error {
	if err := s.conv.AddUser(input); err != nil {
		return err
	}
	s.status.Info("%s is thinking...", s.assistantLabel)
	s.debug("turn send", map[string]any{"messages": s.conv.Len()})

	resp, err := s.client.Complete(ctx, s.params.request(s.conv.Messages()))
	if err != nil {
		loggerpkg.Warn(s.logger, "turn failed", map[string]any{"error": err.Error(), "messages": s.conv.Len()})
		return err
	}
	if err := s.conv.AddAssistant(resp.Text); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(s.out, "\n%s: %s\n", s.assistantLabel, resp.Text)
	s.debug("turn done", map[string]any{
		"messages":      s.conv.Len(),
		"input_tokens":  resp.Usage.InputTokens,
		"output_tokens": resp.Usage.OutputTokens,
		"stop_reason":   resp.StopReason,
	})
	return nil
}

func (s *Session) finish(reason ExitReason) ExitReason {
	s.debug("chat end", map[string]any{"reason": reason.String(), "messages": s.conv.Len()})
	return reason
}

func (s *Session) debug(msg string, obj map[string]any) {
	loggerpkg.Debug(s.verbose, s.logger, msg, obj)
}
