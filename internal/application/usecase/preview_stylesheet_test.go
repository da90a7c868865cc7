package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bnema/veil/internal/application/usecase"
	"github.com/bnema/veil/internal/domain/entity"
	repomocks "github.com/bnema/veil/internal/domain/repository/mocks"
	"github.com/bnema/veil/internal/domain/stylesheet"
)

func snapshotFresh(repo *repomocks.MockRuleSetRepository) {
	repo.EXPECT().Snapshot(mock.Anything).RunAndReturn(func(_ context.Context) (*entity.RuleSet, error) {
		return sampleRuleSet(), nil
	})
}

func TestPreviewStylesheetUseCase_Preview_PublishesOverride(t *testing.T) {
	ctx := testContext()

	repo := repomocks.NewMockRuleSetRepository(t)
	snapshotFresh(repo)

	sink := &recordingSink{}
	apply := usecase.NewApplyStylesheetUseCase(repo, sink, nil)
	uc := usecase.NewPreviewStylesheetUseCase(usecase.NewManageRulesUseCase(repo), apply)

	css, err := uc.Preview(ctx, usecase.PreviewInput{Index: 0, Intensity: 40})
	require.NoError(t, err)

	assert.Contains(t, css, "blur(40px)")
	assert.NotContains(t, css, "blur(20px)")
	assert.Equal(t, []string{css}, sink.writes())
}

func TestPreviewStylesheetUseCase_Render_MatchesCommittedCompilation(t *testing.T) {
	ctx := testContext()

	repo := repomocks.NewMockRuleSetRepository(t)
	snapshotFresh(repo)

	uc := usecase.NewPreviewStylesheetUseCase(usecase.NewManageRulesUseCase(repo), nil)

	css, err := uc.Render(ctx, usecase.PreviewInput{Index: 0, Intensity: 33})
	require.NoError(t, err)

	committed := sampleRuleSet()
	committed.Selectors[0].Intensity = intPtr(33)
	assert.Equal(t, stylesheet.CompileRuleSet(committed), css)
}

func TestPreviewStylesheetUseCase_Render_DoesNotMutateSnapshot(t *testing.T) {
	ctx := testContext()

	rs := sampleRuleSet()
	repo := repomocks.NewMockRuleSetRepository(t)
	repo.EXPECT().Snapshot(mock.Anything).Return(rs, nil)

	uc := usecase.NewPreviewStylesheetUseCase(usecase.NewManageRulesUseCase(repo), nil)

	_, err := uc.Render(ctx, usecase.PreviewInput{Index: 0, Intensity: 90})
	require.NoError(t, err)
	assert.Equal(t, 20, rs.Selectors[0].EffectiveIntensity())
}

func TestPreviewStylesheetUseCase_Render_Rejects(t *testing.T) {
	ctx := testContext()

	repo := repomocks.NewMockRuleSetRepository(t)
	snapshotFresh(repo)
	uc := usecase.NewPreviewStylesheetUseCase(usecase.NewManageRulesUseCase(repo), nil)

	_, err := uc.Render(ctx, usecase.PreviewInput{Index: 5, Intensity: 10})
	assert.ErrorIs(t, err, entity.ErrRuleNotFound)

	_, err = uc.Render(ctx, usecase.PreviewInput{Index: -1, Intensity: 10})
	assert.ErrorIs(t, err, entity.ErrRuleNotFound)

	_, err = uc.Render(ctx, usecase.PreviewInput{Index: 0, Intensity: 500})
	assert.ErrorIs(t, err, entity.ErrInvalidIntensity)
}

func TestPreviewStylesheetUseCase_Commit(t *testing.T) {
	ctx := testContext()

	repo := repomocks.NewMockRuleSetRepository(t)
	snapshotFresh(repo)
	repo.EXPECT().SaveSelectors(mock.Anything, mock.MatchedBy(func(rules []entity.SelectorRule) bool {
		return rules[1].Name == ".sidebar" && rules[1].EffectiveIntensity() == 55
	})).Return(nil)

	uc := usecase.NewPreviewStylesheetUseCase(usecase.NewManageRulesUseCase(repo), nil)
	require.NoError(t, uc.Commit(ctx, usecase.PreviewInput{Index: 1, Intensity: 55}))
}

func TestPreviewStylesheetUseCase_Commit_DuplicateNamesMatchPreview(t *testing.T) {
	ctx := testContext()

	rs := &entity.RuleSet{
		Selectors: []entity.SelectorRule{
			{Name: ".post", Active: true, Intensity: intPtr(4)},
			{Name: ".post", Active: true, Intensity: intPtr(40)},
		},
		BlurMode:  entity.BlurModeGPU,
		VideoMode: entity.VideoModeNormal,
	}
	var saved []entity.SelectorRule

	repo := repomocks.NewMockRuleSetRepository(t)
	repo.EXPECT().Snapshot(mock.Anything).RunAndReturn(func(context.Context) (*entity.RuleSet, error) {
		return rs.Clone(), nil
	})
	repo.EXPECT().SaveSelectors(mock.Anything, mock.Anything).RunAndReturn(func(_ context.Context, rules []entity.SelectorRule) error {
		saved = rules
		return nil
	})

	uc := usecase.NewPreviewStylesheetUseCase(usecase.NewManageRulesUseCase(repo), nil)
	input := usecase.PreviewInput{Index: 1, Intensity: 60}

	previewed, err := uc.Render(ctx, input)
	require.NoError(t, err)
	require.NoError(t, uc.Commit(ctx, input))

	require.Len(t, saved, 2)
	assert.Equal(t, 4, saved[0].EffectiveIntensity())
	assert.Equal(t, 60, saved[1].EffectiveIntensity())

	committed := rs.Clone()
	committed.Selectors = saved
	assert.Equal(t, previewed, stylesheet.CompileRuleSet(committed))
}

func TestPreviewStylesheetUseCase_Commit_Rejects(t *testing.T) {
	ctx := testContext()

	repo := repomocks.NewMockRuleSetRepository(t)
	snapshotFresh(repo)
	uc := usecase.NewPreviewStylesheetUseCase(usecase.NewManageRulesUseCase(repo), nil)

	assert.ErrorIs(t, uc.Commit(ctx, usecase.PreviewInput{Index: 2, Intensity: 10}), entity.ErrRuleNotFound)
	assert.ErrorIs(t, uc.Commit(ctx, usecase.PreviewInput{Index: 0, Intensity: -1}), entity.ErrInvalidIntensity)
}

func TestPreviewStylesheetUseCase_IndexOf(t *testing.T) {
	ctx := testContext()

	repo := repomocks.NewMockRuleSetRepository(t)
	snapshotFresh(repo)
	uc := usecase.NewPreviewStylesheetUseCase(usecase.NewManageRulesUseCase(repo), nil)

	i, err := uc.IndexOf(ctx, ".sidebar")
	require.NoError(t, err)
	assert.Equal(t, 1, i)

	_, err = uc.IndexOf(ctx, ".nope")
	assert.ErrorIs(t, err, entity.ErrRuleNotFound)
}
