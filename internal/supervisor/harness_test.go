package supervisor

import (
	"errors"
	"testing"
	"time"
)

func TestHarnessEchoRoundTrip(t *testing.T) {
	dir := t.TempDir()
	h, err := Launch(Command{Program: "sh", Args: []string{"-c", "read x; echo $x"}}, dir)
	if err != nil {
		t.Fatalf("launch: %v", err)
	}

	if err := h.SubmitInput("hello\n"); err != nil {
		t.Fatalf("submit input: %v", err)
	}

	var lines []Line
	for line := range h.Lines() {
		lines = append(lines, line)
	}

	result := h.Wait()
	if !result.Success {
		t.Fatalf("expected successful exit, got %+v", result)
	}

	if len(lines) != 1 || lines[0].Stream != StreamOut || lines[0].Text != "hello\n" {
		t.Fatalf("expected a single stdout line %q, got %v", "hello\n", lines)
	}
}

func TestHarnessStderrSeparation(t *testing.T) {
	dir := t.TempDir()
	h, err := Launch(Command{Program: "sh", Args: []string{"-c", "echo a; echo b 1>&2"}}, dir)
	if err != nil {
		t.Fatalf("launch: %v", err)
	}
	h.CloseInput()

	seen := map[string]bool{}
	for line := range h.Lines() {
		seen[line.Stream.String()+":"+line.Text] = true
	}

	result := h.Wait()
	if !result.Success {
		t.Fatalf("expected successful exit, got %+v", result)
	}

	if !seen["stdout:a\n"] || !seen["stderr:b\n"] {
		t.Fatalf("expected both stdout and stderr lines, got %v", seen)
	}
}

func TestHarnessSpawnFailure(t *testing.T) {
	dir := t.TempDir()
	_, err := Launch(Command{Program: "no-such-program-xyz"}, dir)
	if !errors.Is(err, ErrSpawnFailed) {
		t.Fatalf("expected ErrSpawnFailed, got %v", err)
	}
}

func TestHarnessSubmitInputAfterCloseFails(t *testing.T) {
	dir := t.TempDir()
	h, err := Launch(Command{Program: "sh", Args: []string{"-c", "sleep 0.1"}}, dir)
	if err != nil {
		t.Fatalf("launch: %v", err)
	}
	h.CloseInput()

	// Give the pump goroutine time to observe the closed channel.
	time.Sleep(20 * time.Millisecond)
	if err := h.SubmitInput("too late\n"); !errors.Is(err, ErrInputChannelClosed) {
		t.Fatalf("expected ErrInputChannelClosed, got %v", err)
	}

	for range h.Lines() {
	}
	h.Wait()
}
