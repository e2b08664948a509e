package supervisor

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/cuemby/ironforged/pkg/log"
)

// LogFileName is the captured log file's name within an application's
// working directory, per §6's layout.
const LogFileName = "application.log"

// LogHandler is the built-in asynchronous handler of §4.5: it persists
// every Print line to {working_directory}/application.log and logs a
// structured trace record for Start and End.
//
// One LogHandler instance is scoped to a single application (the
// registry constructs a fresh one per creation request). The bus invokes
// HandleAsync on a separate goroutine for each event, so the mutex
// serializes the lazy open, every write, and the close.
type LogHandler struct {
	mu     sync.Mutex
	file   *os.File
	writer *bufio.Writer
}

// NewLogHandler constructs a log handler with its file not yet opened.
func NewLogHandler() *LogHandler {
	return &LogHandler{}
}

func (h *LogHandler) HandleAsync(ctx context.Context, ev *Event) error {
	switch ev.Kind {
	case KindStart:
		log.WithComponent("log_handler").Info().
			Str("application_id", ev.App.ID().String()).
			Msg("application started")
		return h.open(ev.App, false)
	case KindPrint:
		if err := h.ensureOpen(ev.App); err != nil {
			return err
		}
		return h.write(ev.Line)
	case KindEnd:
		record := log.WithComponent("log_handler").Info().
			Str("application_id", ev.App.ID().String())
		if ev.Result != nil {
			record = record.Bool("success", ev.Result.Success).Int("exit_code", ev.Result.ExitCode)
		}
		record.Msg("application ended")
		return h.close()
	}
	return nil
}

func (h *LogHandler) ensureOpen(app ApplicationRef) error {
	h.mu.Lock()
	open := h.file != nil
	h.mu.Unlock()
	if open {
		return nil
	}
	return h.open(app, true)
}

func (h *LogHandler) open(app ApplicationRef, warnEarly bool) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.file != nil {
		return nil
	}

	if warnEarly {
		log.WithComponent("log_handler").Warn().
			Str("application_id", app.ID().String()).
			Msg("Print observed before Start, opening log file early")
	}

	path := filepath.Join(app.WorkingDir(), LogFileName)
	f, err := os.Create(path)
	if err != nil {
		log.WithComponent("log_handler").Warn().
			Err(err).
			Str("application_id", app.ID().String()).
			Str("path", path).
			Msg("failed to open application log")
		return fmt.Errorf("supervisor: open log file: %w", err)
	}
	h.file = f
	h.writer = bufio.NewWriter(f)
	return nil
}

func (h *LogHandler) write(line Line) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.writer == nil {
		return nil
	}
	if _, err := h.writer.WriteString(line.Text); err != nil {
		log.WithComponent("log_handler").Warn().Err(err).Msg("failed to write log line")
		return fmt.Errorf("supervisor: write log line: %w", err)
	}
	return nil
}

func (h *LogHandler) close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.writer == nil {
		return nil
	}
	err := h.writer.Flush()
	closeErr := h.file.Close()
	h.writer = nil
	h.file = nil
	if err != nil {
		return fmt.Errorf("supervisor: flush log file: %w", err)
	}
	if closeErr != nil {
		return fmt.Errorf("supervisor: close log file: %w", closeErr)
	}
	return nil
}
