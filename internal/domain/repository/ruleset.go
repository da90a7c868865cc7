// Package repository defines persistence interfaces for domain entities.
package repository

import (
	"context"

	"github.com/bnema/veil/internal/domain/entity"
)

// RuleSetRepository persists the obscuring rules. Each setter replaces one
// stored key as a whole, the way the original extension storage did.
type RuleSetRepository interface {
	// Snapshot returns all four keys read together, with defaults for
	// anything never stored.
	Snapshot(ctx context.Context) (*entity.RuleSet, error)

	// SaveSelectors replaces the ordered selector list.
	SaveSelectors(ctx context.Context, selectors []entity.SelectorRule) error

	// SaveExclusions replaces the ordered exclusion list.
	SaveExclusions(ctx context.Context, exclusions []entity.ExclusionRule) error

	SetBlurMode(ctx context.Context, mode entity.BlurMode) error
	SetVideoMode(ctx context.Context, mode entity.VideoMode) error

	// Replace overwrites every key in one transaction.
	Replace(ctx context.Context, rs *entity.RuleSet) error
}
