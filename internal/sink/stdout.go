package sink

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// StdoutSink streams artifacts to a writer, normally os.Stdout. It declines
// to dump a module onto an interactive terminal.
type StdoutSink struct {
	w          io.Writer
	isTerminal func() bool
}

// NewStdoutSink wraps w. Terminal detection applies when w is an *os.File.
func NewStdoutSink(w io.Writer) *StdoutSink {
	if w == nil {
		w = os.Stdout
	}
	return &StdoutSink{w: w, isTerminal: func() bool { return writerIsTerminal(w) }}
}

// Name identifies the sink in logs and history.
func (s *StdoutSink) Name() string { return "stdout" }

// Location reports the stream name.
func (s *StdoutSink) Location(string) string { return "-" }

// Emit writes data unchanged. It returns ErrNoDeliveryEnvironment when the
// writer is a terminal.
func (s *StdoutSink) Emit(ctx context.Context, data []byte, _, _ string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.isTerminal != nil && s.isTerminal() {
		return fmt.Errorf("stdout is a terminal, redirect output or choose another sink: %w", ErrNoDeliveryEnvironment)
	}
	if _, err := s.w.Write(data); err != nil {
		return fmt.Errorf("write stdout: %w", err)
	}
	return nil
}

func writerIsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
