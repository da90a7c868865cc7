package usecase

import (
	"context"
	"fmt"

	"github.com/bnema/veil/internal/domain/entity"
	"github.com/bnema/veil/internal/domain/stylesheet"
	"github.com/bnema/veil/internal/logging"
)

// stylesheetPublisher writes compiled text to the active sink.
type stylesheetPublisher interface {
	Publish(ctx context.Context, css string) error
}

// PreviewStylesheetUseCase renders an uncommitted intensity through the same
// compiler as committed rules. The store is never touched until Commit.
type PreviewStylesheetUseCase struct {
	rules     *ManageRulesUseCase
	publisher stylesheetPublisher
}

// NewPreviewStylesheetUseCase creates a new preview use case.
func NewPreviewStylesheetUseCase(rules *ManageRulesUseCase, publisher stylesheetPublisher) *PreviewStylesheetUseCase {
	return &PreviewStylesheetUseCase{rules: rules, publisher: publisher}
}

// PreviewInput identifies one selector by its position and the intensity to try.
type PreviewInput struct {
	Index     int
	Intensity int
}

// Render compiles the override without publishing it.
func (uc *PreviewStylesheetUseCase) Render(ctx context.Context, input PreviewInput) (string, error) {
	if err := ValidateIntensity(input.Intensity); err != nil {
		return "", err
	}

	rs, err := uc.rules.List(ctx)
	if err != nil {
		return "", err
	}
	if input.Index < 0 || input.Index >= len(rs.Selectors) {
		return "", fmt.Errorf("%w: selector index %d", entity.ErrRuleNotFound, input.Index)
	}

	preview := rs.Clone()
	preview.Selectors[input.Index] = preview.Selectors[input.Index].WithIntensity(input.Intensity)
	return stylesheet.CompileRuleSet(preview), nil
}

// Preview renders the override and publishes it to the sink.
func (uc *PreviewStylesheetUseCase) Preview(ctx context.Context, input PreviewInput) (string, error) {
	css, err := uc.Render(ctx, input)
	if err != nil {
		return "", err
	}
	if err := uc.publisher.Publish(ctx, css); err != nil {
		return "", err
	}

	logging.FromContext(ctx).Debug().
		Int("index", input.Index).
		Int("intensity", input.Intensity).
		Msg("preview published")
	return css, nil
}

// Commit stores the previewed intensity on the selector at input.Index, so
// the committed stylesheet is the one Render produced.
func (uc *PreviewStylesheetUseCase) Commit(ctx context.Context, input PreviewInput) error {
	return uc.rules.SetIntensityAt(ctx, input.Index, input.Intensity)
}

// IndexOf resolves a selector name to the position Preview expects.
func (uc *PreviewStylesheetUseCase) IndexOf(ctx context.Context, name string) (int, error) {
	rs, err := uc.rules.List(ctx)
	if err != nil {
		return -1, err
	}
	i := rs.IndexOfSelector(name)
	if i < 0 {
		return -1, fmt.Errorf("%w: selector %q", entity.ErrRuleNotFound, name)
	}
	return i, nil
}
