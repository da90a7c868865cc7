package sink

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/bnema/veil/internal/application/port"
	"github.com/bnema/veil/internal/logging"
)

const (
	outputDirPerm  = 0o755
	outputFilePerm = 0o644
)

// FileSink writes the stylesheet to a file that a browser extension, a user
// style manager or a user script manager picks up. The file is replaced
// atomically, so readers see either the old or the new text.
type FileSink struct {
	path     string
	renderer Renderer

	mu         sync.Mutex
	dirCreated bool
}

var _ port.StylesheetSink = (*FileSink)(nil)

// NewFileSink creates a sink writing to path in the given format.
func NewFileSink(path string, format Format, styleID string) (*FileSink, error) {
	if path == "" {
		return nil, fmt.Errorf("output path cannot be empty")
	}
	renderer, err := NewRenderer(format, styleID)
	if err != nil {
		return nil, err
	}
	return &FileSink{path: path, renderer: renderer}, nil
}

// Name identifies the sink in logs and metrics.
func (s *FileSink) Name() string { return "file" }

// Path returns the output file path.
func (s *FileSink) Path() string { return s.path }

// SetText replaces the whole file content with the rendered stylesheet.
func (s *FileSink) SetText(ctx context.Context, css string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureDir(); err != nil {
		return err
	}

	body, err := s.renderer.Render(css)
	if err != nil {
		return err
	}

	unlock, err := lockFile(s.path + ".lock")
	if err != nil {
		return fmt.Errorf("failed to lock %s: %w", s.path, err)
	}
	defer unlock()

	if err := writeAtomic(s.path, body); err != nil {
		return err
	}

	logging.FromContext(ctx).Debug().Str("path", s.path).Int("bytes", len(body)).Msg("stylesheet file written")
	return nil
}

// ensureDir creates the parent directory once. Failures are reported as not
// ready so the next change retries.
func (s *FileSink) ensureDir() error {
	if s.dirCreated {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(s.path), outputDirPerm); err != nil {
		return fmt.Errorf("%w: %v", port.ErrSinkNotReady, err)
	}
	s.dirCreated = true
	return nil
}

func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, outputFilePerm); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to chmod temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}
