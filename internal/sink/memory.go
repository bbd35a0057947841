package sink

import (
	"context"
	"sync"
)

// Emission is one artifact captured by a MemorySink.
type Emission struct {
	Filename string
	MIMEType string
	Data     []byte
}

// MemorySink keeps emitted artifacts in memory.
type MemorySink struct {
	mu        sync.Mutex
	emissions []Emission
	err       error
}

// NewMemorySink returns an empty MemorySink.
func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

// FailWith makes subsequent Emit calls return err without capturing.
func (s *MemorySink) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

// Name identifies the sink in logs and history.
func (s *MemorySink) Name() string { return "memory" }

// Emit records a copy of data.
func (s *MemorySink) Emit(ctx context.Context, data []byte, filename, mimeType string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.emissions = append(s.emissions, Emission{
		Filename: filename,
		MIMEType: mimeType,
		Data:     append([]byte(nil), data...),
	})
	return nil
}

// Emissions returns the captured artifacts in emission order.
func (s *MemorySink) Emissions() []Emission {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Emission, len(s.emissions))
	copy(out, s.emissions)
	return out
}

// Len reports how many artifacts were captured.
func (s *MemorySink) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.emissions)
}
