package session

import (
	"io"

	"github.com/minhyannv/claude-cli-go/pkg/console"
	loggerpkg "github.com/minhyannv/claude-cli-go/pkg/logger"
)

// Option configures optional runtime dependencies for a Session.
type Option func(*sessionDeps)

type sessionDeps struct {
	logger         loggerpkg.Logger
	verbose        bool
	out            io.Writer
	status         *console.Printer
	assistantLabel string
	id             string
}

// WithLogger injects a diagnostic logger. verbose enables debug records.
func WithLogger(l loggerpkg.Logger, verbose bool) Option {
	return func(d *sessionDeps) {
		d.logger = l
		d.verbose = verbose
	}
}

// WithOutput sets where assistant replies are written.
func WithOutput(w io.Writer) Option {
	return func(d *sessionDeps) {
		d.out = w
	}
}

// WithStatus sets the printer used for success/error/info lines.
func WithStatus(p *console.Printer) Option {
	return func(d *sessionDeps) {
		d.status = p
	}
}

// WithAssistantLabel sets the name printed before each reply.
func WithAssistantLabel(label string) Option {
	return func(d *sessionDeps) {
		d.assistantLabel = label
	}
}

// WithID fixes the session id instead of generating one.
func WithID(id string) Option {
	return func(d *sessionDeps) {
		d.id = id
	}
}
