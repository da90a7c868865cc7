package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/crypto/blake2b"

	"github.com/bnema/veil/internal/application/port"
	"github.com/bnema/veil/internal/domain/entity"
	"github.com/bnema/veil/internal/domain/repository"
	"github.com/bnema/veil/internal/domain/stylesheet"
	"github.com/bnema/veil/internal/logging"
)

// ApplyStylesheetUseCase reads the stored rules, compiles them and hands the
// result to the sink. Run turns it into the reactive driver: one apply on
// start, then one per change event.
type ApplyStylesheetUseCase struct {
	repo    repository.RuleSetRepository
	metrics port.StylesheetMetrics

	mu      sync.Mutex
	sink    port.StylesheetSink
	lastSum [blake2b.Size256]byte
	written bool
}

// NewApplyStylesheetUseCase creates the driver. A nil metrics recorder is replaced by a no-op.
func NewApplyStylesheetUseCase(
	repo repository.RuleSetRepository,
	sink port.StylesheetSink,
	metrics port.StylesheetMetrics,
) *ApplyStylesheetUseCase {
	if metrics == nil {
		metrics = port.NopStylesheetMetrics{}
	}
	return &ApplyStylesheetUseCase{
		repo:    repo,
		sink:    sink,
		metrics: metrics,
	}
}

// ApplyOutput describes one completed apply.
type ApplyOutput struct {
	CSS             string
	ActiveSelectors int
	// Written is false when the sink already held identical text.
	Written bool
}

// Apply compiles the current snapshot and publishes it.
func (uc *ApplyStylesheetUseCase) Apply(ctx context.Context) (*ApplyOutput, error) {
	rs, err := uc.repo.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules: %w", err)
	}

	start := time.Now()
	css := stylesheet.CompileRuleSet(rs)
	active := rs.ActiveSelectorCount()
	uc.metrics.ObserveCompile(time.Since(start), len(css), active)

	written, err := uc.publish(ctx, css)
	if err != nil {
		return nil, err
	}

	logging.FromContext(ctx).Debug().
		Int("active_selectors", active).
		Int("bytes", len(css)).
		Bool("written", written).
		Msg("stylesheet applied")

	return &ApplyOutput{CSS: css, ActiveSelectors: active, Written: written}, nil
}

// Publish writes already compiled text, used by the live preview so that
// preview and committed output share one sink and one fingerprint.
func (uc *ApplyStylesheetUseCase) Publish(ctx context.Context, css string) error {
	_, err := uc.publish(ctx, css)
	return err
}

func (uc *ApplyStylesheetUseCase) publish(ctx context.Context, css string) (bool, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if uc.sink == nil {
		return false, port.ErrSinkNotReady
	}

	sum := blake2b.Sum256([]byte(css))
	if uc.written && sum == uc.lastSum {
		uc.metrics.ObserveSkippedWrite(uc.sink.Name())
		return false, nil
	}

	ctx = logging.WithSink(ctx, uc.sink.Name())
	err := uc.sink.SetText(ctx, css)
	uc.metrics.ObserveSinkWrite(uc.sink.Name(), err)
	if err != nil {
		return false, fmt.Errorf("failed to write stylesheet to %s: %w", uc.sink.Name(), err)
	}

	uc.lastSum = sum
	uc.written = true
	logging.FromContext(ctx).Debug().Int("bytes", len(css)).Msg("stylesheet written")
	return true, nil
}

// SetSink swaps the sink, e.g. after the output path changed. The next
// apply always writes.
func (uc *ApplyStylesheetUseCase) SetSink(sink port.StylesheetSink) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.sink = sink
	uc.written = false
}

// Run applies once, then once per change until ctx is done. Events are
// handled one at a time, so the sink always holds the output of the most
// recently completed compilation. Failed applies are logged and retried on
// the next event.
func (uc *ApplyStylesheetUseCase) Run(ctx context.Context, watcher port.RuleSetWatcher) error {
	log := logging.FromContext(ctx)

	changes, err := watcher.Watch(ctx)
	if err != nil {
		return fmt.Errorf("failed to watch rules: %w", err)
	}

	uc.handle(ctx, entity.RuleSetChange{Keys: entity.AllRuleSetKeys(), Source: entity.ChangeSourceInitial})

	for {
		select {
		case <-ctx.Done():
			return nil
		case change, ok := <-changes:
			if !ok {
				log.Debug().Msg("rule watcher closed")
				return nil
			}
			uc.handle(ctx, change)
		}
	}
}

func (uc *ApplyStylesheetUseCase) handle(ctx context.Context, change entity.RuleSetChange) {
	log := logging.FromContext(ctx)

	out, err := uc.Apply(ctx)
	switch {
	case errors.Is(err, port.ErrSinkNotReady):
		log.Debug().Err(err).Msg("sink not ready, deferring until next change")
	case err != nil:
		log.Warn().Err(err).Str("source", string(change.Source)).Msg("failed to apply stylesheet")
	case out.Written:
		log.Info().
			Str("source", string(change.Source)).
			Int("active_selectors", out.ActiveSelectors).
			Int("bytes", len(out.CSS)).
			Msg("stylesheet updated")
	}
}
