package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/bnema/veil/internal/domain/entity"
	"github.com/bnema/veil/internal/domain/repository"
	"github.com/bnema/veil/internal/logging"
)

// ManageRulesUseCase holds the edit operations of the settings UI. Names
// identify rules; operations on a name apply to every rule carrying it.
type ManageRulesUseCase struct {
	repo repository.RuleSetRepository
}

// NewManageRulesUseCase creates a new rules management use case.
func NewManageRulesUseCase(repo repository.RuleSetRepository) *ManageRulesUseCase {
	return &ManageRulesUseCase{repo: repo}
}

// List returns the normalized snapshot.
func (uc *ManageRulesUseCase) List(ctx context.Context) (*entity.RuleSet, error) {
	rs, err := uc.repo.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules: %w", err)
	}
	return rs, nil
}

// AddSelector appends an active selector with the default intensity.
func (uc *ManageRulesUseCase) AddSelector(ctx context.Context, name string) (*entity.SelectorRule, error) {
	log := logging.FromContext(ctx)

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, entity.ErrEmptySelector
	}

	rs, err := uc.List(ctx)
	if err != nil {
		return nil, err
	}
	if rs.IndexOfSelector(name) >= 0 {
		return nil, fmt.Errorf("%w: selector %q", entity.ErrDuplicateRule, name)
	}

	rule := entity.NewSelectorRule(name)
	if err := uc.repo.SaveSelectors(ctx, append(rs.Selectors, rule)); err != nil {
		return nil, fmt.Errorf("failed to save selectors: %w", err)
	}

	log.Info().Str("selector", name).Msg("selector added")
	return &rule, nil
}

// AddExclusion appends an active exclusion.
func (uc *ManageRulesUseCase) AddExclusion(ctx context.Context, name string) (*entity.ExclusionRule, error) {
	log := logging.FromContext(ctx)

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, entity.ErrEmptySelector
	}

	rs, err := uc.List(ctx)
	if err != nil {
		return nil, err
	}
	if rs.IndexOfExclusion(name) >= 0 {
		return nil, fmt.Errorf("%w: exclusion %q", entity.ErrDuplicateRule, name)
	}

	rule := entity.NewExclusionRule(name)
	if err := uc.repo.SaveExclusions(ctx, append(rs.Exclusions, rule)); err != nil {
		return nil, fmt.Errorf("failed to save exclusions: %w", err)
	}

	log.Info().Str("exclusion", name).Msg("exclusion added")
	return &rule, nil
}

// ToggleSelector flips the active flag and returns the new state.
func (uc *ManageRulesUseCase) ToggleSelector(ctx context.Context, name string) (bool, error) {
	rs, err := uc.List(ctx)
	if err != nil {
		return false, err
	}

	state, found := false, false
	for i := range rs.Selectors {
		if rs.Selectors[i].Name == name {
			rs.Selectors[i].Active = !rs.Selectors[i].Active
			state, found = rs.Selectors[i].Active, true
		}
	}
	if !found {
		return false, fmt.Errorf("%w: selector %q", entity.ErrRuleNotFound, name)
	}

	if err := uc.repo.SaveSelectors(ctx, rs.Selectors); err != nil {
		return false, fmt.Errorf("failed to save selectors: %w", err)
	}

	logging.FromContext(ctx).Info().Str("selector", name).Bool("active", state).Msg("selector toggled")
	return state, nil
}

// ToggleExclusion flips the active flag and returns the new state.
func (uc *ManageRulesUseCase) ToggleExclusion(ctx context.Context, name string) (bool, error) {
	rs, err := uc.List(ctx)
	if err != nil {
		return false, err
	}

	state, found := false, false
	for i := range rs.Exclusions {
		if rs.Exclusions[i].Name == name {
			rs.Exclusions[i].Active = !rs.Exclusions[i].Active
			state, found = rs.Exclusions[i].Active, true
		}
	}
	if !found {
		return false, fmt.Errorf("%w: exclusion %q", entity.ErrRuleNotFound, name)
	}

	if err := uc.repo.SaveExclusions(ctx, rs.Exclusions); err != nil {
		return false, fmt.Errorf("failed to save exclusions: %w", err)
	}

	logging.FromContext(ctx).Info().Str("exclusion", name).Bool("active", state).Msg("exclusion toggled")
	return state, nil
}

// RemoveSelector deletes every selector named name.
func (uc *ManageRulesUseCase) RemoveSelector(ctx context.Context, name string) error {
	rs, err := uc.List(ctx)
	if err != nil {
		return err
	}

	kept := make([]entity.SelectorRule, 0, len(rs.Selectors))
	for _, s := range rs.Selectors {
		if s.Name != name {
			kept = append(kept, s)
		}
	}
	if len(kept) == len(rs.Selectors) {
		return fmt.Errorf("%w: selector %q", entity.ErrRuleNotFound, name)
	}

	if err := uc.repo.SaveSelectors(ctx, kept); err != nil {
		return fmt.Errorf("failed to save selectors: %w", err)
	}

	logging.FromContext(ctx).Info().Str("selector", name).Msg("selector removed")
	return nil
}

// RemoveExclusion deletes every exclusion named name.
func (uc *ManageRulesUseCase) RemoveExclusion(ctx context.Context, name string) error {
	rs, err := uc.List(ctx)
	if err != nil {
		return err
	}

	kept := make([]entity.ExclusionRule, 0, len(rs.Exclusions))
	for _, e := range rs.Exclusions {
		if e.Name != name {
			kept = append(kept, e)
		}
	}
	if len(kept) == len(rs.Exclusions) {
		return fmt.Errorf("%w: exclusion %q", entity.ErrRuleNotFound, name)
	}

	if err := uc.repo.SaveExclusions(ctx, kept); err != nil {
		return fmt.Errorf("failed to save exclusions: %w", err)
	}

	logging.FromContext(ctx).Info().Str("exclusion", name).Msg("exclusion removed")
	return nil
}

// SetIntensity stores a blur radius for every selector named name.
func (uc *ManageRulesUseCase) SetIntensity(ctx context.Context, name string, intensity int) error {
	if err := ValidateIntensity(intensity); err != nil {
		return err
	}

	rs, err := uc.List(ctx)
	if err != nil {
		return err
	}

	found := false
	for i := range rs.Selectors {
		if rs.Selectors[i].Name == name {
			rs.Selectors[i] = rs.Selectors[i].WithIntensity(intensity)
			found = true
		}
	}
	if !found {
		return fmt.Errorf("%w: selector %q", entity.ErrRuleNotFound, name)
	}

	if err := uc.repo.SaveSelectors(ctx, rs.Selectors); err != nil {
		return fmt.Errorf("failed to save selectors: %w", err)
	}

	logging.FromContext(ctx).Info().Str("selector", name).Int("intensity", intensity).Msg("intensity set")
	return nil
}

// SetIntensityAt stores a blur radius on the selector at index only.
// Selectors sharing its name keep their own values.
func (uc *ManageRulesUseCase) SetIntensityAt(ctx context.Context, index, intensity int) error {
	if err := ValidateIntensity(intensity); err != nil {
		return err
	}

	rs, err := uc.List(ctx)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(rs.Selectors) {
		return fmt.Errorf("%w: selector index %d", entity.ErrRuleNotFound, index)
	}

	rs.Selectors[index] = rs.Selectors[index].WithIntensity(intensity)
	if err := uc.repo.SaveSelectors(ctx, rs.Selectors); err != nil {
		return fmt.Errorf("failed to save selectors: %w", err)
	}

	logging.FromContext(ctx).Info().
		Str("selector", rs.Selectors[index].Name).
		Int("index", index).
		Int("intensity", intensity).
		Msg("intensity set")
	return nil
}

// SetBlurMode parses and stores the blur mode.
func (uc *ManageRulesUseCase) SetBlurMode(ctx context.Context, value string) (entity.BlurMode, error) {
	mode, err := entity.ParseBlurMode(value)
	if err != nil {
		return "", err
	}
	if err := uc.repo.SetBlurMode(ctx, mode); err != nil {
		return "", fmt.Errorf("failed to save blur mode: %w", err)
	}
	logging.FromContext(ctx).Info().Str("blur_mode", string(mode)).Msg("blur mode set")
	return mode, nil
}

// SetVideoMode parses and stores the video mode.
func (uc *ManageRulesUseCase) SetVideoMode(ctx context.Context, value string) (entity.VideoMode, error) {
	mode, err := entity.ParseVideoMode(value)
	if err != nil {
		return "", err
	}
	if err := uc.repo.SetVideoMode(ctx, mode); err != nil {
		return "", fmt.Errorf("failed to save video mode: %w", err)
	}
	logging.FromContext(ctx).Info().Str("video_mode", string(mode)).Msg("video mode set")
	return mode, nil
}

// ValidateIntensity enforces the slider range of the settings UI.
func ValidateIntensity(intensity int) error {
	if intensity < entity.MinIntensity || intensity > entity.MaxIntensity {
		return fmt.Errorf("%w: %d (must be %d-%d)",
			entity.ErrInvalidIntensity, intensity, entity.MinIntensity, entity.MaxIntensity)
	}
	return nil
}
