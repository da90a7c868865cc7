package usecase_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/bnema/veil/internal/application/port"
	portmocks "github.com/bnema/veil/internal/application/port/mocks"
	"github.com/bnema/veil/internal/application/usecase"
	"github.com/bnema/veil/internal/domain/entity"
	repomocks "github.com/bnema/veil/internal/domain/repository/mocks"
	"github.com/bnema/veil/internal/domain/stylesheet"
	"github.com/bnema/veil/internal/logging"
)

func TestApplyStylesheetUseCase_Apply_WritesCompiledText(t *testing.T) {
	ctx := testContext()
	ctrl := gomock.NewController(t)

	rs := sampleRuleSet()
	repo := repomocks.NewMockRuleSetRepository(t)
	repo.EXPECT().Snapshot(mock.Anything).Return(rs, nil)

	sink := portmocks.NewMockStylesheetSink(ctrl)
	sink.EXPECT().Name().Return("mock").AnyTimes()
	sink.EXPECT().SetText(gomock.Any(), stylesheet.CompileRuleSet(rs)).Return(nil)

	uc := usecase.NewApplyStylesheetUseCase(repo, sink, nil)

	out, err := uc.Apply(ctx)
	require.NoError(t, err)
	assert.True(t, out.Written)
	assert.Equal(t, 1, out.ActiveSelectors)
	assert.Contains(t, out.CSS, ".post:not(:has(:is(.pinned)))")
}

func TestApplyStylesheetUseCase_Publish_LogsSinkName(t *testing.T) {
	var buf bytes.Buffer
	cfg := logging.DefaultConfig()
	cfg.Level = zerolog.DebugLevel
	cfg.Format = "json"
	cfg.Output = &buf
	ctx := logging.WithContext(context.Background(), logging.New(cfg))

	repo := repomocks.NewMockRuleSetRepository(t)
	uc := usecase.NewApplyStylesheetUseCase(repo, &recordingSink{}, nil)

	require.NoError(t, uc.Publish(ctx, ".post { }\n"))
	assert.Contains(t, buf.String(), `"sink":"recording"`)
	assert.Contains(t, buf.String(), `"message":"stylesheet written"`)
}

func TestApplyStylesheetUseCase_Apply_SkipsIdenticalText(t *testing.T) {
	ctx := testContext()

	repo := repomocks.NewMockRuleSetRepository(t)
	repo.EXPECT().Snapshot(mock.Anything).Return(sampleRuleSet(), nil).Times(2)

	sink := &recordingSink{}
	uc := usecase.NewApplyStylesheetUseCase(repo, sink, nil)

	first, err := uc.Apply(ctx)
	require.NoError(t, err)
	second, err := uc.Apply(ctx)
	require.NoError(t, err)

	assert.True(t, first.Written)
	assert.False(t, second.Written)
	assert.Len(t, sink.writes(), 1)
}

func TestApplyStylesheetUseCase_SetSinkForcesWrite(t *testing.T) {
	ctx := testContext()

	repo := repomocks.NewMockRuleSetRepository(t)
	repo.EXPECT().Snapshot(mock.Anything).Return(sampleRuleSet(), nil).Times(2)

	first, second := &recordingSink{}, &recordingSink{}
	uc := usecase.NewApplyStylesheetUseCase(repo, first, nil)

	_, err := uc.Apply(ctx)
	require.NoError(t, err)
	uc.SetSink(second)
	out, err := uc.Apply(ctx)
	require.NoError(t, err)

	assert.True(t, out.Written)
	assert.Len(t, first.writes(), 1)
	assert.Len(t, second.writes(), 1)
}

func TestApplyStylesheetUseCase_Apply_EmptyRulesClearSink(t *testing.T) {
	ctx := testContext()

	repo := repomocks.NewMockRuleSetRepository(t)
	repo.EXPECT().Snapshot(mock.Anything).Return(entity.DefaultRuleSet(), nil)

	sink := &recordingSink{}
	uc := usecase.NewApplyStylesheetUseCase(repo, sink, nil)

	out, err := uc.Apply(ctx)
	require.NoError(t, err)
	assert.Equal(t, "", out.CSS)
	assert.Equal(t, []string{""}, sink.writes())
}

func TestApplyStylesheetUseCase_Apply_Errors(t *testing.T) {
	ctx := testContext()

	t.Run("snapshot failure", func(t *testing.T) {
		repo := repomocks.NewMockRuleSetRepository(t)
		repo.EXPECT().Snapshot(mock.Anything).Return(nil, errors.New("db locked"))

		uc := usecase.NewApplyStylesheetUseCase(repo, &recordingSink{}, nil)
		_, err := uc.Apply(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read rules")
	})

	t.Run("sink not ready", func(t *testing.T) {
		repo := repomocks.NewMockRuleSetRepository(t)
		repo.EXPECT().Snapshot(mock.Anything).Return(sampleRuleSet(), nil)

		sink := &recordingSink{err: port.ErrSinkNotReady}
		uc := usecase.NewApplyStylesheetUseCase(repo, sink, nil)
		_, err := uc.Apply(ctx)
		assert.ErrorIs(t, err, port.ErrSinkNotReady)
	})

	t.Run("nil sink", func(t *testing.T) {
		repo := repomocks.NewMockRuleSetRepository(t)
		repo.EXPECT().Snapshot(mock.Anything).Return(sampleRuleSet(), nil)

		uc := usecase.NewApplyStylesheetUseCase(repo, nil, nil)
		_, err := uc.Apply(ctx)
		assert.ErrorIs(t, err, port.ErrSinkNotReady)
	})
}

func TestApplyStylesheetUseCase_Run_AppliesInitiallyAndPerChange(t *testing.T) {
	ctx := testContext()
	ctrl := gomock.NewController(t)

	before := sampleRuleSet()
	after := sampleRuleSet()
	after.BlurMode = entity.BlurModePlaceholder

	repo := repomocks.NewMockRuleSetRepository(t)
	repo.EXPECT().Snapshot(mock.Anything).Return(before, nil).Once()
	repo.EXPECT().Snapshot(mock.Anything).Return(after, nil).Once()

	changes := make(chan entity.RuleSetChange, 1)
	changes <- entity.RuleSetChange{Keys: []entity.RuleSetKey{entity.KeyBlurMode}, Source: entity.ChangeSourceExternal}
	close(changes)

	watcher := portmocks.NewMockRuleSetWatcher(ctrl)
	watcher.EXPECT().Watch(gomock.Any()).Return((<-chan entity.RuleSetChange)(changes), nil)

	sink := &recordingSink{}
	uc := usecase.NewApplyStylesheetUseCase(repo, sink, nil)

	require.NoError(t, uc.Run(ctx, watcher))
	assert.Equal(t, []string{stylesheet.CompileRuleSet(before), stylesheet.CompileRuleSet(after)}, sink.writes())
}

func TestApplyStylesheetUseCase_Run_KeepsGoingAfterFailure(t *testing.T) {
	ctx := testContext()
	ctrl := gomock.NewController(t)

	repo := repomocks.NewMockRuleSetRepository(t)
	repo.EXPECT().Snapshot(mock.Anything).Return(nil, errors.New("busy")).Once()
	repo.EXPECT().Snapshot(mock.Anything).Return(sampleRuleSet(), nil).Once()

	changes := make(chan entity.RuleSetChange, 1)
	changes <- entity.RuleSetChange{Source: entity.ChangeSourceLocal}
	close(changes)

	watcher := portmocks.NewMockRuleSetWatcher(ctrl)
	watcher.EXPECT().Watch(gomock.Any()).Return((<-chan entity.RuleSetChange)(changes), nil)

	sink := &recordingSink{}
	uc := usecase.NewApplyStylesheetUseCase(repo, sink, nil)

	require.NoError(t, uc.Run(ctx, watcher))
	assert.Len(t, sink.writes(), 1)
}

func TestApplyStylesheetUseCase_Run_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(testContext())
	ctrl := gomock.NewController(t)

	repo := repomocks.NewMockRuleSetRepository(t)
	repo.EXPECT().Snapshot(mock.Anything).Return(sampleRuleSet(), nil).Once()

	changes := make(chan entity.RuleSetChange)
	watcher := portmocks.NewMockRuleSetWatcher(ctrl)
	watcher.EXPECT().Watch(gomock.Any()).Return((<-chan entity.RuleSetChange)(changes), nil)

	uc := usecase.NewApplyStylesheetUseCase(repo, &recordingSink{}, nil)

	done := make(chan error, 1)
	go func() { done <- uc.Run(ctx, watcher) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestApplyStylesheetUseCase_Run_WatchFailure(t *testing.T) {
	ctrl := gomock.NewController(t)

	watcher := portmocks.NewMockRuleSetWatcher(ctrl)
	watcher.EXPECT().Watch(gomock.Any()).Return(nil, errors.New("inotify limit"))

	uc := usecase.NewApplyStylesheetUseCase(repomocks.NewMockRuleSetRepository(t), &recordingSink{}, nil)
	err := uc.Run(testContext(), watcher)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to watch rules")
}
