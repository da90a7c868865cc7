package port

import (
	"context"
	"errors"
)

//go:generate mockgen -source=stylesheet_sink.go -destination=mocks/mock_stylesheet_sink.go -package=mocks

// ErrSinkNotReady reports that the sink cannot accept text yet. The driver
// keeps running and the next change event retries.
var ErrSinkNotReady = errors.New("stylesheet sink not ready")

// StylesheetSink receives compiled stylesheet text.
type StylesheetSink interface {
	// SetText replaces the sink's entire content. Readers observe either the
	// previous text or the new one, never a mix.
	SetText(ctx context.Context, css string) error

	// Name identifies the sink in logs and metrics.
	Name() string
}
