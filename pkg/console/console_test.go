package console

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"
)

func TestPrinterPlainPrefixes(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, false)

	p.Success("done")
	p.Error("failed: %s", "boom")
	p.Info("thinking")

	want := "SUCCESS: done\nERROR: failed: boom\nINFO: thinking\n"
	if buf.String() != want {
		t.Fatalf("unexpected output:\n got: %q\nwant: %q", buf.String(), want)
	}
}

func TestPrinterColoredSymbols(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, true)

	p.Success("done")

	got := buf.String()
	if !strings.Contains(got, "✓ done") {
		t.Fatalf("expected check symbol, got %q", got)
	}
	if !strings.Contains(got, "\x1b[") {
		t.Fatalf("expected ANSI escape sequence, got %q", got)
	}
}

func TestPrinterPlainLine(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf, true).Plain("%s", strings.Repeat("-", 3))
	if buf.String() != "---\n" {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestScanReaderReadsLinesThenEOF(t *testing.T) {
	var out bytes.Buffer
	r := NewScanReader(strings.NewReader("hello\n\nbye\n"), &out)
	ctx := context.Background()

	for _, want := range []string{"hello", "", "bye"} {
		got, err := r.ReadLine(ctx, "You: ")
		if err != nil {
			t.Fatalf("ReadLine returned error: %v", err)
		}
		if got != want {
			t.Fatalf("expected %q, got %q", want, got)
		}
	}
	if _, err := r.ReadLine(ctx, "You: "); !errors.Is(err, io.EOF) {
		t.Fatalf("expected io.EOF, got %v", err)
	}
	if _, err := r.ReadLine(ctx, "You: "); !errors.Is(err, io.EOF) {
		t.Fatalf("expected io.EOF on repeated read, got %v", err)
	}
	if !strings.HasPrefix(out.String(), "You: You: ") {
		t.Fatalf("expected prompts echoed, got %q", out.String())
	}
}

func TestScanReaderHonorsCancellation(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	r := NewScanReader(pr, io.Discard)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := r.ReadLine(ctx, "")
		done <- err
	}()

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("ReadLine did not return after cancellation")
	}
}

func TestScanReaderCancelledBeforeRead(t *testing.T) {
	r := NewScanReader(strings.NewReader("hello\n"), io.Discard)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := r.ReadLine(ctx, ""); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	got, err := r.ReadLine(context.Background(), "")
	if err != nil || got != "hello" {
		t.Fatalf("expected buffered line after cancellation, got %q %v", got, err)
	}
}
