package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/bnema/veil/internal/domain/entity"
	"github.com/bnema/veil/internal/domain/repository"
	"github.com/bnema/veil/internal/infrastructure/persistence/sqlite/sqlc"
	"github.com/bnema/veil/internal/logging"
)

const (
	settingBlurMode  = "blur_mode"
	settingVideoMode = "video_mode"
)

// changePublisher is told which keys a committed write touched.
type changePublisher interface {
	Publish(keys ...entity.RuleSetKey)
}

type ruleSetRepo struct {
	db      *sql.DB
	queries *sqlc.Queries
	changes changePublisher
}

// NewRuleSetRepository creates a SQLite-backed rule set repository. When
// changes is non-nil it is notified after every committed write.
func NewRuleSetRepository(db *sql.DB, changes changePublisher) repository.RuleSetRepository {
	return &ruleSetRepo{db: db, queries: sqlc.New(db), changes: changes}
}

func (r *ruleSetRepo) Snapshot(ctx context.Context) (*entity.RuleSet, error) {
	rs := entity.DefaultRuleSet()

	err := r.inTx(ctx, nil, func(q *sqlc.Queries) error {
		selectors, err := q.ListSelectorRules(ctx)
		if err != nil {
			return fmt.Errorf("list selectors: %w", err)
		}
		for _, row := range selectors {
			rs.Selectors = append(rs.Selectors, selectorFromRow(row))
		}

		exclusions, err := q.ListExclusionRules(ctx)
		if err != nil {
			return fmt.Errorf("list exclusions: %w", err)
		}
		for _, row := range exclusions {
			rs.Exclusions = append(rs.Exclusions, entity.ExclusionRule{Name: row.Name, Active: row.Active})
		}

		blur, err := getSetting(ctx, q, settingBlurMode)
		if err != nil {
			return err
		}
		video, err := getSetting(ctx, q, settingVideoMode)
		if err != nil {
			return err
		}
		rs.BlurMode, rs.VideoMode = entity.BlurMode(blur), entity.VideoMode(video)
		return nil
	})
	if err != nil {
		return nil, err
	}

	rs.Normalize()
	return rs, nil
}

func (r *ruleSetRepo) SaveSelectors(ctx context.Context, rules []entity.SelectorRule) error {
	logging.FromContext(ctx).Debug().Int("count", len(rules)).Msg("saving selectors")

	if err := r.inTx(ctx, nil, func(q *sqlc.Queries) error {
		return writeSelectors(ctx, q, rules)
	}); err != nil {
		return err
	}
	r.publish(entity.KeySelectors)
	return nil
}

func (r *ruleSetRepo) SaveExclusions(ctx context.Context, rules []entity.ExclusionRule) error {
	logging.FromContext(ctx).Debug().Int("count", len(rules)).Msg("saving exclusions")

	if err := r.inTx(ctx, nil, func(q *sqlc.Queries) error {
		return writeExclusions(ctx, q, rules)
	}); err != nil {
		return err
	}
	r.publish(entity.KeyExclusions)
	return nil
}

func (r *ruleSetRepo) SetBlurMode(ctx context.Context, mode entity.BlurMode) error {
	if err := r.queries.SetSetting(ctx, sqlc.SetSettingParams{Key: settingBlurMode, Value: string(mode)}); err != nil {
		return fmt.Errorf("set blur mode: %w", err)
	}
	r.publish(entity.KeyBlurMode)
	return nil
}

func (r *ruleSetRepo) SetVideoMode(ctx context.Context, mode entity.VideoMode) error {
	if err := r.queries.SetSetting(ctx, sqlc.SetSettingParams{Key: settingVideoMode, Value: string(mode)}); err != nil {
		return fmt.Errorf("set video mode: %w", err)
	}
	r.publish(entity.KeyVideoMode)
	return nil
}

func (r *ruleSetRepo) Replace(ctx context.Context, rs *entity.RuleSet) error {
	if rs == nil {
		rs = entity.DefaultRuleSet()
	}

	if err := r.inTx(ctx, nil, func(q *sqlc.Queries) error {
		if err := writeSelectors(ctx, q, rs.Selectors); err != nil {
			return err
		}
		if err := writeExclusions(ctx, q, rs.Exclusions); err != nil {
			return err
		}
		if err := q.SetSetting(ctx, sqlc.SetSettingParams{Key: settingBlurMode, Value: string(rs.BlurMode)}); err != nil {
			return fmt.Errorf("set blur mode: %w", err)
		}
		if err := q.SetSetting(ctx, sqlc.SetSettingParams{Key: settingVideoMode, Value: string(rs.VideoMode)}); err != nil {
			return fmt.Errorf("set video mode: %w", err)
		}
		return nil
	}); err != nil {
		return err
	}
	r.publish(entity.AllRuleSetKeys()...)
	return nil
}

func (r *ruleSetRepo) inTx(ctx context.Context, opts *sql.TxOptions, fn func(*sqlc.Queries) error) error {
	tx, err := r.db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	if err := fn(r.queries.WithTx(tx)); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (r *ruleSetRepo) publish(keys ...entity.RuleSetKey) {
	if r.changes != nil {
		r.changes.Publish(keys...)
	}
}

func writeSelectors(ctx context.Context, q *sqlc.Queries, rules []entity.SelectorRule) error {
	if err := q.DeleteSelectorRules(ctx); err != nil {
		return fmt.Errorf("clear selectors: %w", err)
	}
	for i, rule := range rules {
		params := sqlc.InsertSelectorRuleParams{
			Position: int64(i),
			Name:     rule.Name,
			Active:   rule.Active,
		}
		if rule.Intensity != nil {
			params.Intensity = sql.NullInt64{Int64: int64(*rule.Intensity), Valid: true}
		}
		if err := q.InsertSelectorRule(ctx, params); err != nil {
			return fmt.Errorf("insert selector %q: %w", rule.Name, err)
		}
	}
	return nil
}

func writeExclusions(ctx context.Context, q *sqlc.Queries, rules []entity.ExclusionRule) error {
	if err := q.DeleteExclusionRules(ctx); err != nil {
		return fmt.Errorf("clear exclusions: %w", err)
	}
	for i, rule := range rules {
		if err := q.InsertExclusionRule(ctx, sqlc.InsertExclusionRuleParams{
			Position: int64(i),
			Name:     rule.Name,
			Active:   rule.Active,
		}); err != nil {
			return fmt.Errorf("insert exclusion %q: %w", rule.Name, err)
		}
	}
	return nil
}

// getSetting returns "" for keys never written.
func getSetting(ctx context.Context, q *sqlc.Queries, key string) (string, error) {
	value, err := q.GetSetting(ctx, key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get setting %s: %w", key, err)
	}
	return value, nil
}

func selectorFromRow(row sqlc.SelectorRule) entity.SelectorRule {
	rule := entity.SelectorRule{Name: row.Name, Active: row.Active}
	if row.Intensity.Valid {
		rule = rule.WithIntensity(int(row.Intensity.Int64))
	}
	return rule
}
