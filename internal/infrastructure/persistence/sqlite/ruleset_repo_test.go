package sqlite_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/veil/internal/domain/entity"
	"github.com/bnema/veil/internal/infrastructure/persistence/sqlite"
)

type recordingPublisher struct {
	keys [][]entity.RuleSetKey
}

func (p *recordingPublisher) Publish(keys ...entity.RuleSetKey) {
	p.keys = append(p.keys, keys)
}

func TestRuleSetRepository_SnapshotDefaults(t *testing.T) {
	db, _ := openTestDB(t)
	repo := sqlite.NewRuleSetRepository(db, nil)

	rs, err := repo.Snapshot(testCtx())
	require.NoError(t, err)
	assert.Equal(t, entity.DefaultRuleSet(), rs)
}

func TestRuleSetRepository_SaveSelectorsKeepsOrderAndDuplicates(t *testing.T) {
	ctx := testCtx()
	db, _ := openTestDB(t)
	repo := sqlite.NewRuleSetRepository(db, nil)

	rules := []entity.SelectorRule{
		{Name: ".z", Active: true, Intensity: intPtr(3)},
		{Name: ".a", Active: false},
		{Name: ".z", Active: true, Intensity: intPtr(0)},
	}
	require.NoError(t, repo.SaveSelectors(ctx, rules))

	rs, err := repo.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, rules, rs.Selectors)
	assert.Nil(t, rs.Selectors[1].Intensity, "absent intensity stays absent")

	require.NoError(t, repo.SaveSelectors(ctx, rules[:1]))
	rs, err = repo.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, rules[:1], rs.Selectors)
}

func TestRuleSetRepository_SaveExclusions(t *testing.T) {
	ctx := testCtx()
	db, _ := openTestDB(t)
	repo := sqlite.NewRuleSetRepository(db, nil)

	rules := []entity.ExclusionRule{{Name: ".keep", Active: true}, {Name: ".also", Active: false}}
	require.NoError(t, repo.SaveExclusions(ctx, rules))

	rs, err := repo.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, rules, rs.Exclusions)
}

func TestRuleSetRepository_Modes(t *testing.T) {
	ctx := testCtx()
	db, _ := openTestDB(t)
	repo := sqlite.NewRuleSetRepository(db, nil)

	require.NoError(t, repo.SetBlurMode(ctx, entity.BlurModePlaceholder))
	require.NoError(t, repo.SetVideoMode(ctx, entity.VideoModeHide))
	require.NoError(t, repo.SetVideoMode(ctx, entity.VideoModeOverlay))

	rs, err := repo.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, entity.BlurModePlaceholder, rs.BlurMode)
	assert.Equal(t, entity.VideoModeOverlay, rs.VideoMode)
}

func TestRuleSetRepository_UnknownStoredModeFallsBackToDefault(t *testing.T) {
	ctx := testCtx()
	db, _ := openTestDB(t)
	repo := sqlite.NewRuleSetRepository(db, nil)

	_, err := db.ExecContext(ctx, "INSERT INTO settings (key, value) VALUES ('video_mode', 'sparkle')")
	require.NoError(t, err)

	rs, err := repo.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, entity.VideoModeNormal, rs.VideoMode)
}

func TestRuleSetRepository_Replace(t *testing.T) {
	ctx := testCtx()
	db, _ := openTestDB(t)
	repo := sqlite.NewRuleSetRepository(db, nil)

	require.NoError(t, repo.SaveSelectors(ctx, []entity.SelectorRule{{Name: ".old", Active: true}}))

	want := &entity.RuleSet{
		Selectors:  []entity.SelectorRule{{Name: ".new", Active: true, Intensity: intPtr(9)}},
		Exclusions: []entity.ExclusionRule{{Name: ".x", Active: true}},
		BlurMode:   entity.BlurModePlaceholder,
		VideoMode:  entity.VideoModeHide,
	}
	require.NoError(t, repo.Replace(ctx, want))

	got, err := repo.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestRuleSetRepository_PublishesAfterCommit(t *testing.T) {
	ctx := testCtx()
	db, _ := openTestDB(t)
	pub := &recordingPublisher{}
	repo := sqlite.NewRuleSetRepository(db, pub)

	require.NoError(t, repo.SaveSelectors(ctx, nil))
	require.NoError(t, repo.SaveExclusions(ctx, nil))
	require.NoError(t, repo.SetBlurMode(ctx, entity.BlurModeGPU))
	require.NoError(t, repo.SetVideoMode(ctx, entity.VideoModeNormal))
	require.NoError(t, repo.Replace(ctx, nil))

	assert.Equal(t, [][]entity.RuleSetKey{
		{entity.KeySelectors},
		{entity.KeyExclusions},
		{entity.KeyBlurMode},
		{entity.KeyVideoMode},
		entity.AllRuleSetKeys(),
	}, pub.keys)
}
