// Package sqlite provides SQLite implementations of domain repositories.
package sqlite

import (
	"context"
	"sync"

	"github.com/bnema/veil/internal/application/port"
	"github.com/bnema/veil/internal/domain/entity"
	"github.com/bnema/veil/internal/domain/repository"
)

// LazyRuleSetRepository opens the database on the first repository call.
type LazyRuleSetRepository struct {
	provider port.DatabaseProvider
	changes  changePublisher
	repo     repository.RuleSetRepository
	once     sync.Once
	initErr  error
}

// NewLazyRuleSetRepository creates a lazy-loading rule set repository.
// changes may be nil.
func NewLazyRuleSetRepository(provider port.DatabaseProvider, changes changePublisher) *LazyRuleSetRepository {
	return &LazyRuleSetRepository{provider: provider, changes: changes}
}

var _ repository.RuleSetRepository = (*LazyRuleSetRepository)(nil)

func (r *LazyRuleSetRepository) init(ctx context.Context) error {
	r.once.Do(func() {
		db, err := r.provider.DB(ctx)
		if err != nil {
			r.initErr = err
			return
		}
		r.repo = NewRuleSetRepository(db, r.changes)
	})
	return r.initErr
}

func (r *LazyRuleSetRepository) Snapshot(ctx context.Context) (*entity.RuleSet, error) {
	if err := r.init(ctx); err != nil {
		return nil, err
	}
	return r.repo.Snapshot(ctx)
}

func (r *LazyRuleSetRepository) SaveSelectors(ctx context.Context, rules []entity.SelectorRule) error {
	if err := r.init(ctx); err != nil {
		return err
	}
	return r.repo.SaveSelectors(ctx, rules)
}

func (r *LazyRuleSetRepository) SaveExclusions(ctx context.Context, rules []entity.ExclusionRule) error {
	if err := r.init(ctx); err != nil {
		return err
	}
	return r.repo.SaveExclusions(ctx, rules)
}

func (r *LazyRuleSetRepository) SetBlurMode(ctx context.Context, mode entity.BlurMode) error {
	if err := r.init(ctx); err != nil {
		return err
	}
	return r.repo.SetBlurMode(ctx, mode)
}

func (r *LazyRuleSetRepository) SetVideoMode(ctx context.Context, mode entity.VideoMode) error {
	if err := r.init(ctx); err != nil {
		return err
	}
	return r.repo.SetVideoMode(ctx, mode)
}

func (r *LazyRuleSetRepository) Replace(ctx context.Context, rs *entity.RuleSet) error {
	if err := r.init(ctx); err != nil {
		return err
	}
	return r.repo.Replace(ctx, rs)
}
