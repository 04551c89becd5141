package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

// lineReader serves one line per Read call, the way a terminal in
// canonical mode delivers typed input, and counts the reads issued.
type lineReader struct {
	lines []string
	calls int32
}

func (l *lineReader) Read(p []byte) (int, error) {
	n := atomic.AddInt32(&l.calls, 1)
	if int(n) > len(l.lines) {
		return 0, io.EOF
	}
	return copy(p, l.lines[n-1]+"\n"), nil
}

func (l *lineReader) reads() int32 { return atomic.LoadInt32(&l.calls) }

func TestCommandReaderWaitsForDispatch(t *testing.T) {
	src := &lineReader{lines: []string{"pending", "positions"}}
	ready := make(chan struct{}, 1)
	lines := make(chan string)
	var out bytes.Buffer

	go readCommands(src, &out, ready, lines)

	ready <- struct{}{}
	select {
	case line := <-lines:
		if line != "pending" {
			t.Fatalf("expected first command line, got %q", line)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no line delivered after ready signal")
	}

	// Until the loop signals dispatch is done, no further read may be
	// issued: a pending read would steal input from an active prompt.
	time.Sleep(50 * time.Millisecond)
	if n := src.reads(); n != 1 {
		t.Fatalf("expected exactly one read before the next ready signal, got %d", n)
	}

	ready <- struct{}{}
	select {
	case line := <-lines:
		if line != "positions" {
			t.Fatalf("expected second command line, got %q", line)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("second line not delivered after ready signal")
	}

	if !strings.Contains(out.String(), "tradedeck>") {
		t.Errorf("expected command prompt to be printed")
	}
}

func TestCommandReaderClosesOnEOF(t *testing.T) {
	src := &lineReader{}
	ready := make(chan struct{}, 1)
	lines := make(chan string)
	var out bytes.Buffer

	go readCommands(src, &out, ready, lines)

	ready <- struct{}{}
	select {
	case _, ok := <-lines:
		if ok {
			t.Fatal("expected the line channel to close on EOF")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("reader did not close on EOF")
	}
}

func TestGenerateOneShotConsumesRefetch(t *testing.T) {
	gw := &fakeGateway{}
	c, buf := newTestController(gw, &fakePrompter{generate: true})
	ctx := context.Background()

	if err := c.Dispatch(ctx, Event{Kind: EventGenerate}); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if err := drainFetch(ctx, c); err != nil {
		t.Fatalf("drain: %v", err)
	}

	if gw.pendingCalls != 1 {
		t.Errorf("expected the post-run pending fetch to be consumed, got %d calls", gw.pendingCalls)
	}
	if !strings.Contains(buf.String(), "Pending Trade Cards") {
		t.Errorf("expected the refreshed pending view to render, got:\n%s", buf.String())
	}
}

func TestGenerateOneShotDeclinedDrainsNothing(t *testing.T) {
	gw := &fakeGateway{}
	c, _ := newTestController(gw, &fakePrompter{generate: false})
	ctx := context.Background()

	if err := c.Dispatch(ctx, Event{Kind: EventGenerate}); err != nil {
		t.Fatalf("generate: %v", err)
	}

	done := make(chan error, 1)
	go func() { done <- drainFetch(ctx, c) }()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("drain: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("drain blocked with no fetch in flight")
	}

	if gw.pendingCalls != 0 {
		t.Errorf("declined run must not fetch, got %d calls", gw.pendingCalls)
	}
}
