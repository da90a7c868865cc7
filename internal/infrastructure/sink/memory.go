package sink

import (
	"context"
	"sync"
	"time"

	"github.com/bnema/veil/internal/application/port"
)

// MemorySink keeps the latest stylesheet for HTTP handlers. Handlers read
// concurrently while the driver writes.
type MemorySink struct {
	mu        sync.RWMutex
	css       string
	version   uint64
	updatedAt time.Time
}

var _ port.StylesheetSink = (*MemorySink)(nil)

// NewMemorySink creates an empty memory sink.
func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

// Name identifies the sink in logs and metrics.
func (s *MemorySink) Name() string { return "http" }

// SetText replaces the held stylesheet.
func (s *MemorySink) SetText(_ context.Context, css string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.css = css
	s.version++
	s.updatedAt = time.Now()
	return nil
}

// Stylesheet is a consistent read of a MemorySink.
type Stylesheet struct {
	CSS       string
	Version   uint64
	UpdatedAt time.Time
}

// Snapshot returns the held stylesheet. Version is 0 until the first write.
func (s *MemorySink) Snapshot() Stylesheet {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Stylesheet{CSS: s.css, Version: s.version, UpdatedAt: s.updatedAt}
}
