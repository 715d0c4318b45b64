package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/peterh/liner"
)

// ErrInterrupted is returned by a LineReader when the operator presses Ctrl+C at the prompt.
var ErrInterrupted = errors.New("input interrupted")

// LineReader blocks for one line of operator input.
// It returns io.EOF at end of input and ErrInterrupted on an interrupt.
type LineReader interface {
	ReadLine(ctx context.Context, prompt string) (string, error)
}

type scanResult struct {
	line string
	err  error
}

// ScanReader reads lines from any io.Reader. A background goroutine owns the
// scanner so that a cancelled context unblocks a pending ReadLine.
type ScanReader struct {
	in  io.Reader
	out io.Writer

	once  sync.Once
	lines chan scanResult
	next  chan struct{}
}

// NewScanReader echoes prompts to out and reads lines from in.
func NewScanReader(in io.Reader, out io.Writer) *ScanReader {
	if out == nil {
		out = io.Discard
	}
	return &ScanReader{
		in:    in,
		out:   out,
		lines: make(chan scanResult),
		next:  make(chan struct{}, 1),
	}
}

func (r *ScanReader) start() {
	go func() {
		defer close(r.lines)
		scanner := bufio.NewScanner(r.in)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for range r.next {
			if !scanner.Scan() {
				err := scanner.Err()
				if err == nil {
					err = io.EOF
				}
				r.lines <- scanResult{err: err}
				return
			}
			r.lines <- scanResult{line: scanner.Text()}
		}
	}()
}

// ReadLine prints prompt and waits for the next line or ctx cancellation.
func (r *ScanReader) ReadLine(ctx context.Context, prompt string) (string, error) {
	if r.in == nil {
		return "", io.EOF
	}
	r.once.Do(r.start)
	if err := ctx.Err(); err != nil {
		return "", err
	}

	_, _ = fmt.Fprint(r.out, prompt)
	select {
	case r.next <- struct{}{}:
	default:
	}

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res, ok := <-r.lines:
		if !ok {
			return "", io.EOF
		}
		if res.err != nil {
			return "", res.err
		}
		return res.line, nil
	}
}

// LinerReader provides line editing and in-session history on a terminal.
type LinerReader struct {
	state *liner.State
}

// NewLinerReader puts the terminal into line-editing mode. Ctrl+C at the
// prompt aborts with ErrInterrupted. Close must be called to restore the terminal.
func NewLinerReader() *LinerReader {
	state := liner.NewLiner()
	state.SetCtrlCAborts(true)
	return &LinerReader{state: state}
}

// ReadLine prompts on the terminal. The context is checked before prompting
// only; liner owns the terminal until a line, Ctrl+C or Ctrl+D arrives.
func (r *LinerReader) ReadLine(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	line, err := r.state.Prompt(prompt)
	switch {
	case errors.Is(err, liner.ErrPromptAborted):
		return "", ErrInterrupted
	case err != nil:
		return "", err
	}
	if line != "" {
		r.state.AppendHistory(line)
	}
	return line, nil
}

// Close restores the terminal.
func (r *LinerReader) Close() error {
	return r.state.Close()
}

// NewLineReader picks a LinerReader when stdin and stdout are terminals and a
// ScanReader otherwise. The returned close function is always non-nil.
func NewLineReader(in *os.File, out *os.File) (LineReader, func() error) {
	if IsTerminal(in) && IsTerminal(out) && liner.TerminalSupported() {
		r := NewLinerReader()
		return r, r.Close
	}
	return NewScanReader(in, out), func() error { return nil }
}
