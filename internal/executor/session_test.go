package executor

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestSession_Submit_KeepsOutputOnFailure(t *testing.T) {
	invoker := &scriptedInvoker{body: messagesBody}
	session := NewSession(newTestExecutor(invoker, &recordedSleeps{}))

	if _, err := session.Submit(context.Background(), "room is hot"); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if session.Output() != "open a window" {
		t.Fatalf("Expected output 'open a window', got %q", session.Output())
	}

	invoker.errs = []error{errors.New("a"), errors.New("b"), errors.New("c")}
	invoker.calls = 0

	if _, err := session.Submit(context.Background(), "room is cold"); err == nil {
		t.Fatal("Expected failure")
	}
	if session.Output() != "open a window" {
		t.Errorf("Expected previous output to be kept, got %q", session.Output())
	}
	if session.Busy() {
		t.Error("Expected session to be idle")
	}
}

func TestSession_Submit_RejectsWhileInFlight(t *testing.T) {
	invoker := &scriptedInvoker{body: messagesBody, block: make(chan struct{})}
	session := NewSession(newTestExecutor(invoker, &recordedSleeps{}))

	done := make(chan error, 1)
	go func() {
		_, err := session.Submit(context.Background(), "room is hot")
		done <- err
	}()

	deadline := time.Now().Add(time.Second)
	for !session.Busy() && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}

	if _, err := session.Submit(context.Background(), "second"); !errors.Is(err, ErrInFlight) {
		t.Errorf("Expected ErrInFlight, got %v", err)
	}

	close(invoker.block)
	if err := <-done; err != nil {
		t.Fatalf("first Submit failed: %v", err)
	}
	if invoker.Calls() != 1 {
		t.Errorf("Expected a single remote call, got %d", invoker.Calls())
	}
	if session.Last().Text != "open a window" {
		t.Errorf("unexpected last result: %+v", session.Last())
	}
}
