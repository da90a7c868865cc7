package model

import (
	"context"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bnema/veil/internal/application/usecase"
	"github.com/bnema/veil/internal/cli/styles"
	"github.com/bnema/veil/internal/domain/entity"
	repomocks "github.com/bnema/veil/internal/domain/repository/mocks"
	"github.com/bnema/veil/internal/infrastructure/sink"
	"github.com/bnema/veil/internal/logging"
)

// storedRules backs a repository mock with mutable state.
type storedRules struct {
	mu sync.Mutex
	rs *entity.RuleSet
}

func (s *storedRules) get() *entity.RuleSet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rs.Clone()
}

func newEditorFixture(t *testing.T) (EditorModel, *storedRules, *sink.MemorySink) {
	t.Helper()

	intensity := 20
	state := &storedRules{rs: &entity.RuleSet{
		Selectors:  []entity.SelectorRule{{Name: ".post", Active: true, Intensity: &intensity}},
		Exclusions: []entity.ExclusionRule{{Name: ".pinned", Active: true}},
		BlurMode:   entity.BlurModeGPU,
		VideoMode:  entity.VideoModeNormal,
	}}

	repo := repomocks.NewMockRuleSetRepository(t)
	repo.EXPECT().Snapshot(mock.Anything).RunAndReturn(func(context.Context) (*entity.RuleSet, error) {
		return state.get(), nil
	}).Maybe()
	repo.EXPECT().SaveSelectors(mock.Anything, mock.Anything).RunAndReturn(func(_ context.Context, rules []entity.SelectorRule) error {
		state.mu.Lock()
		defer state.mu.Unlock()
		state.rs.Selectors = append([]entity.SelectorRule(nil), rules...)
		return nil
	}).Maybe()
	repo.EXPECT().SaveExclusions(mock.Anything, mock.Anything).RunAndReturn(func(_ context.Context, rules []entity.ExclusionRule) error {
		state.mu.Lock()
		defer state.mu.Unlock()
		state.rs.Exclusions = append([]entity.ExclusionRule(nil), rules...)
		return nil
	}).Maybe()

	mem := sink.NewMemorySink()
	rules := usecase.NewManageRulesUseCase(repo)
	apply := usecase.NewApplyStylesheetUseCase(repo, mem, nil)
	deps := EditorDeps{
		Rules:   rules,
		Preview: usecase.NewPreviewStylesheetUseCase(rules, apply),
		Apply:   apply,
	}

	ctx := logging.WithContext(context.Background(), logging.NewFromConfigValues("debug", "console"))
	m := NewEditorModel(ctx, styles.NewTheme(), deps)
	return loaded(t, m), state, mem
}

// loaded feeds the result of the initial load back into the model.
func loaded(t *testing.T, m EditorModel) EditorModel {
	t.Helper()
	next, _ := m.Update(m.load()())
	em := next.(EditorModel)
	require.False(t, em.loading)
	require.NoError(t, em.err)
	return em
}

// press sends a key and runs the resulting command once, feeding its
// message back into the model.
func press(t *testing.T, m EditorModel, msg tea.KeyMsg) EditorModel {
	t.Helper()
	next, cmd := m.Update(msg)
	em := next.(EditorModel)
	if cmd == nil {
		return em
	}
	next, _ = em.Update(cmd())
	return next.(EditorModel)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestEditor_AdjustPreviewsWithoutStoring(t *testing.T) {
	m, state, mem := newEditorFixture(t)

	m = press(t, m, runes("l"))

	require.NotNil(t, m.Pending())
	assert.Equal(t, usecase.PreviewInput{Index: 0, Intensity: 21}, *m.Pending())
	assert.Contains(t, mem.Snapshot().CSS, "blur(21px)")
	assert.Equal(t, 20, state.get().Selectors[0].EffectiveIntensity())
	assert.Contains(t, m.View(), "21px *")
}

func TestEditor_CommitStoresPreview(t *testing.T) {
	m, state, mem := newEditorFixture(t)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m = press(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, m.Pending())
	assert.Equal(t, 22, state.get().Selectors[0].EffectiveIntensity())
	assert.Contains(t, mem.Snapshot().CSS, "blur(22px)")
	assert.Equal(t, "saved .post at 22px", m.status)
}

func TestEditor_AdjustClampsToRange(t *testing.T) {
	m, _, _ := newEditorFixture(t)
	m.rules.Selectors[0] = m.rules.Selectors[0].WithIntensity(entity.MaxIntensity)

	m = press(t, m, runes("+"))
	require.NotNil(t, m.Pending())
	assert.Equal(t, entity.MaxIntensity, m.Pending().Intensity)

	_, cmd := m.Update(runes("+"))
	assert.Nil(t, cmd, "no preview when the value cannot change")
}

func TestEditor_MovingAwayDiscardsPreview(t *testing.T) {
	m, state, mem := newEditorFixture(t)

	m = press(t, m, runes("h"))
	require.Contains(t, mem.Snapshot().CSS, "blur(19px)")

	m = press(t, m, runes("j"))

	assert.Nil(t, m.Pending())
	assert.Equal(t, 1, m.cursor)
	assert.Contains(t, mem.Snapshot().CSS, "blur(20px)")
	assert.Equal(t, 20, state.get().Selectors[0].EffectiveIntensity())
}

func TestEditor_ToggleExclusionRow(t *testing.T) {
	m, state, _ := newEditorFixture(t)

	m = press(t, m, runes("j"))
	m = press(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")})

	assert.False(t, state.get().Exclusions[0].Active)
	assert.Equal(t, "toggled .pinned", m.status)
}

func TestEditor_AddSelector(t *testing.T) {
	m, state, mem := newEditorFixture(t)

	m = press(t, m, runes("a"))
	require.True(t, m.adding)

	m = press(t, m, runes(".ad"))
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.False(t, m.adding)
	selectors := state.get().Selectors
	require.Len(t, selectors, 2)
	assert.Equal(t, ".ad", selectors[1].Name)
	assert.Contains(t, mem.Snapshot().CSS, ".ad")
}

func TestEditor_AddDuplicateShowsError(t *testing.T) {
	m, state, _ := newEditorFixture(t)

	m = press(t, m, runes("a"))
	m = press(t, m, runes(".post"))
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	require.ErrorIs(t, m.err, entity.ErrDuplicateRule)
	assert.Len(t, state.get().Selectors, 1)
	assert.Contains(t, m.View(), "already exists")
}

func TestEditor_QuitAndHelp(t *testing.T) {
	m, _, _ := newEditorFixture(t)

	next, _ := m.Update(runes("?"))
	assert.True(t, next.(EditorModel).help.ShowAll)

	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestEditor_ViewListsRules(t *testing.T) {
	m, _, _ := newEditorFixture(t)

	view := m.View()
	assert.Contains(t, view, ".post")
	assert.Contains(t, view, ".pinned")
	assert.Contains(t, view, "Selectors (1)")
	assert.Contains(t, view, "gpu")
}
