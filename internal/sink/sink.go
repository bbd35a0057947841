package sink

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrNoDeliveryEnvironment reports that the current environment cannot
// receive an artifact. Callers treat it as a diagnostic, not a failure.
var ErrNoDeliveryEnvironment = errors.New("no delivery environment available")

// ErrExists is returned when the destination already holds the artifact and
// overwriting is disabled.
var ErrExists = errors.New("artifact already exists")

// Sink delivers artifact bytes under filename.
type Sink interface {
	Emit(ctx context.Context, data []byte, filename, mimeType string) error
	Name() string
}

// Locator is implemented by sinks that can describe where an artifact went.
type Locator interface {
	Location(filename string) string
}

// Location returns where s delivers filename, or the filename itself when
// the sink cannot say.
func Location(s Sink, filename string) string {
	if l, ok := s.(Locator); ok {
		return l.Location(filename)
	}
	return filename
}

func validateFilename(filename string) error {
	trimmed := strings.TrimSpace(filename)
	if trimmed == "" {
		return errors.New("filename is empty")
	}
	if trimmed != filename || filepath.Base(filename) != filename || filename == "." || filename == ".." {
		return fmt.Errorf("filename %q must be a plain base name", filename)
	}
	if strings.ContainsAny(filename, `/\`) {
		return fmt.Errorf("filename %q must not contain path separators", filename)
	}
	return nil
}
