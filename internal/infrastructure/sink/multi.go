package sink

import (
	"context"
	"errors"
	"strings"

	"github.com/bnema/veil/internal/application/port"
)

// MultiSink fans one stylesheet out to several sinks. Every sink is written
// even when an earlier one fails.
type MultiSink struct {
	sinks []port.StylesheetSink
}

var _ port.StylesheetSink = (*MultiSink)(nil)

// NewMultiSink combines sinks, skipping nil entries.
func NewMultiSink(sinks ...port.StylesheetSink) *MultiSink {
	m := &MultiSink{}
	for _, s := range sinks {
		if s != nil {
			m.sinks = append(m.sinks, s)
		}
	}
	return m
}

// Name lists the combined sinks.
func (m *MultiSink) Name() string {
	names := make([]string, len(m.sinks))
	for i, s := range m.sinks {
		names[i] = s.Name()
	}
	return strings.Join(names, "+")
}

// SetText writes css to every sink and joins their errors.
func (m *MultiSink) SetText(ctx context.Context, css string) error {
	if len(m.sinks) == 0 {
		return port.ErrSinkNotReady
	}
	var errs []error
	for _, s := range m.sinks {
		if err := s.SetText(ctx, css); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
