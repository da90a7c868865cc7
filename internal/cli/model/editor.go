package model

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/veil/internal/application/port"
	"github.com/bnema/veil/internal/application/usecase"
	"github.com/bnema/veil/internal/cli/styles"
	"github.com/bnema/veil/internal/domain/entity"
)

// EditorDeps holds the use cases the editor drives.
type EditorDeps struct {
	Rules   *usecase.ManageRulesUseCase
	Preview *usecase.PreviewStylesheetUseCase
	Apply   *usecase.ApplyStylesheetUseCase
	// Changes is optional; when set the editor reloads on external edits.
	Changes port.RuleSetWatcher
}

// EditorModel is the Bubble Tea model of `veil edit`. Moving an intensity
// previews it through the sink; enter stores it.
type EditorModel struct {
	// UI components
	input textinput.Model
	help  help.Model
	keys  styles.EditorKeyMap

	// State
	rules   *entity.RuleSet
	cursor  int
	pending *usecase.PreviewInput
	adding  bool
	loading bool
	status  string
	err     error
	width   int

	// Dependencies
	deps  EditorDeps
	theme *styles.Theme
	ctx   context.Context
}

// NewEditorModel creates a new editor model.
func NewEditorModel(ctx context.Context, theme *styles.Theme, deps EditorDeps) EditorModel {
	return EditorModel{
		input:   styles.NewSelectorInput(theme),
		help:    styles.NewStyledHelp(theme),
		keys:    styles.DefaultEditorKeyMap(),
		loading: true,
		width:   80,
		deps:    deps,
		theme:   theme,
		ctx:     ctx,
	}
}

type rulesLoadedMsg struct {
	rules *entity.RuleSet
	err   error
}

type rulesChangedMsg struct {
	changes <-chan entity.RuleSetChange
	closed  bool
}

type previewDoneMsg struct {
	input usecase.PreviewInput
	err   error
}

type actionDoneMsg struct {
	status string
	err    error
}

// Init implements tea.Model.
func (m EditorModel) Init() tea.Cmd {
	cmds := []tea.Cmd{m.load()}
	if m.deps.Changes != nil {
		cmds = append(cmds, m.subscribe())
	}
	return tea.Batch(cmds...)
}

func (m EditorModel) load() tea.Cmd {
	return func() tea.Msg {
		rs, err := m.deps.Rules.List(m.ctx)
		return rulesLoadedMsg{rules: rs, err: err}
	}
}

func (m EditorModel) subscribe() tea.Cmd {
	return func() tea.Msg {
		ch, err := m.deps.Changes.Watch(m.ctx)
		if err != nil {
			return actionDoneMsg{err: err}
		}
		return waitForChange(ch)()
	}
}

func waitForChange(ch <-chan entity.RuleSetChange) tea.Cmd {
	return func() tea.Msg {
		_, ok := <-ch
		return rulesChangedMsg{changes: ch, closed: !ok}
	}
}

// Update implements tea.Model.
func (m EditorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil
	case rulesLoadedMsg:
		return m.handleLoaded(msg), nil
	case rulesChangedMsg:
		if msg.closed {
			return m, nil
		}
		return m, tea.Batch(m.load(), waitForChange(msg.changes))
	case previewDoneMsg:
		return m.handlePreviewDone(msg), nil
	case actionDoneMsg:
		m.status, m.err = msg.status, msg.err
		if msg.err == nil {
			m.pending = nil
		}
		return m, m.load()
	case tea.KeyMsg:
		if m.adding {
			return m.updateInput(msg)
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m EditorModel) handleLoaded(msg rulesLoadedMsg) EditorModel {
	m.loading = false
	if msg.err != nil {
		m.err = msg.err
		return m
	}
	m.rules = msg.rules
	if m.cursor >= m.rowCount() {
		m.cursor = max(m.rowCount()-1, 0)
	}
	if m.pending != nil && m.pending.Index >= len(m.rules.Selectors) {
		m.pending = nil
	}
	return m
}

func (m EditorModel) handlePreviewDone(msg previewDoneMsg) EditorModel {
	if msg.err != nil {
		m.err = msg.err
		return m
	}
	m.err = nil
	m.status = fmt.Sprintf("previewing %dpx, enter to save", msg.input.Intensity)
	return m
}

func (m EditorModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Add):
		m.adding = true
		m.input.SetValue("")
		return m, tea.Batch(m.input.Focus(), textinput.Blink)
	}

	if m.loading || m.rules == nil {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			return m.moveTo(m.cursor - 1)
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < m.rowCount()-1 {
			return m.moveTo(m.cursor + 1)
		}
	case key.Matches(msg, m.keys.Increase):
		return m.adjust(1)
	case key.Matches(msg, m.keys.Decrease):
		return m.adjust(-1)
	case key.Matches(msg, m.keys.Commit):
		return m, m.commit()
	case key.Matches(msg, m.keys.Toggle):
		return m, m.toggle()
	case key.Matches(msg, m.keys.Delete):
		return m, m.remove()
	case key.Matches(msg, m.keys.BlurMode):
		next := m.rules.BlurMode.Next()
		return m, m.action("blur mode "+string(next), func(ctx context.Context) error {
			_, err := m.deps.Rules.SetBlurMode(ctx, string(next))
			return err
		})
	case key.Matches(msg, m.keys.VideoMode):
		next := m.rules.VideoMode.Next()
		return m, m.action("video mode "+string(next), func(ctx context.Context) error {
			_, err := m.deps.Rules.SetVideoMode(ctx, string(next))
			return err
		})
	}
	return m, nil
}

func (m EditorModel) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.adding = false
		m.input.Blur()
		return m, nil
	case tea.KeyEnter:
		m.adding = false
		m.input.Blur()
		name := strings.TrimSpace(m.input.Value())
		return m, m.action("added "+name, func(ctx context.Context) error {
			_, err := m.deps.Rules.AddSelector(ctx, name)
			return err
		})
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// moveTo changes the selected row. An uncommitted preview is dropped and
// the committed stylesheet restored.
func (m EditorModel) moveTo(row int) (tea.Model, tea.Cmd) {
	m.cursor = row
	if m.pending == nil {
		return m, nil
	}
	m.pending = nil
	return m, m.restore()
}

func (m EditorModel) adjust(delta int) (tea.Model, tea.Cmd) {
	if m.cursor >= len(m.rules.Selectors) {
		return m, nil
	}

	current := m.rules.Selectors[m.cursor].EffectiveIntensity()
	if m.pending != nil && m.pending.Index == m.cursor {
		current = m.pending.Intensity
	}
	next := min(max(current+delta, entity.MinIntensity), entity.MaxIntensity)
	if next == current && m.pending != nil {
		return m, nil
	}

	input := usecase.PreviewInput{Index: m.cursor, Intensity: next}
	m.pending = &input
	return m, func() tea.Msg {
		_, err := m.deps.Preview.Preview(m.ctx, input)
		return previewDoneMsg{input: input, err: err}
	}
}

func (m EditorModel) commit() tea.Cmd {
	if m.pending == nil {
		return nil
	}
	input := *m.pending
	name := m.rules.Selectors[input.Index].Name
	return m.action(fmt.Sprintf("saved %s at %dpx", name, input.Intensity), func(ctx context.Context) error {
		return m.deps.Preview.Commit(ctx, input)
	})
}

func (m EditorModel) toggle() tea.Cmd {
	if m.cursor < len(m.rules.Selectors) {
		name := m.rules.Selectors[m.cursor].Name
		return m.action("toggled "+name, func(ctx context.Context) error {
			_, err := m.deps.Rules.ToggleSelector(ctx, name)
			return err
		})
	}
	if i := m.cursor - len(m.rules.Selectors); i < len(m.rules.Exclusions) {
		name := m.rules.Exclusions[i].Name
		return m.action("toggled "+name, func(ctx context.Context) error {
			_, err := m.deps.Rules.ToggleExclusion(ctx, name)
			return err
		})
	}
	return nil
}

func (m EditorModel) remove() tea.Cmd {
	if m.cursor < len(m.rules.Selectors) {
		name := m.rules.Selectors[m.cursor].Name
		return m.action("removed "+name, func(ctx context.Context) error {
			return m.deps.Rules.RemoveSelector(ctx, name)
		})
	}
	if i := m.cursor - len(m.rules.Selectors); i < len(m.rules.Exclusions) {
		name := m.rules.Exclusions[i].Name
		return m.action("removed "+name, func(ctx context.Context) error {
			return m.deps.Rules.RemoveExclusion(ctx, name)
		})
	}
	return nil
}

func (m EditorModel) restore() tea.Cmd {
	return func() tea.Msg {
		if _, err := m.deps.Apply.Apply(m.ctx); err != nil {
			return actionDoneMsg{err: err}
		}
		return actionDoneMsg{status: "preview discarded"}
	}
}

// action runs fn off the UI goroutine and reports status once it finishes.
// Without a change feed the applied output is refreshed here.
func (m EditorModel) action(status string, fn func(context.Context) error) tea.Cmd {
	return func() tea.Msg {
		if err := fn(m.ctx); err != nil {
			return actionDoneMsg{err: err}
		}
		if m.deps.Changes == nil {
			if _, err := m.deps.Apply.Apply(m.ctx); err != nil {
				return actionDoneMsg{status: status, err: err}
			}
		}
		return actionDoneMsg{status: status}
	}
}

func (m EditorModel) rowCount() int {
	if m.rules == nil {
		return 0
	}
	return len(m.rules.Selectors) + len(m.rules.Exclusions)
}

// Pending returns the uncommitted preview, if any.
func (m EditorModel) Pending() *usecase.PreviewInput {
	return m.pending
}

// View implements tea.Model.
func (m EditorModel) View() string {
	t := m.theme

	if m.loading {
		return t.Subtle.Render("  Loading rules...")
	}

	sections := []string{t.Title.Render("  veil")}
	if m.rules != nil {
		sections = append(sections,
			fmt.Sprintf("  %s %s  %s %s",
				t.Subtle.Render("blur"), t.Badge.Render(string(m.rules.BlurMode)),
				t.Subtle.Render("video"), t.Badge.Render(string(m.rules.VideoMode))),
			"",
			m.renderRows(),
		)
	}

	if m.adding {
		sections = append(sections, "", t.InputBox(m.input.View(), true))
	}

	switch {
	case m.err != nil:
		sections = append(sections, "", t.ErrorStyle.Render("  "+styles.IconX+" "+m.err.Error()))
	case m.status != "":
		sections = append(sections, "", t.Subtle.Render("  "+m.status))
	}

	sections = append(sections, "", m.help.View(m.keys))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m EditorModel) renderRows() string {
	t := m.theme
	var sb strings.Builder

	sb.WriteString(t.Subtitle.Render(fmt.Sprintf("  Selectors (%d)", len(m.rules.Selectors))))
	sb.WriteString("\n")
	for i, s := range m.rules.Selectors {
		intensity := fmt.Sprintf("%3dpx", s.EffectiveIntensity())
		if m.pending != nil && m.pending.Index == i {
			intensity = t.WarningStyle.Render(fmt.Sprintf("%3dpx *", m.pending.Intensity))
		}
		line := fmt.Sprintf("%s %s  %s", activeMark(s.Active), intensity, s.Name)
		sb.WriteString(m.renderRow(i, line))
	}

	sb.WriteString("\n")
	sb.WriteString(t.Subtitle.Render(fmt.Sprintf("  Exclusions (%d)", len(m.rules.Exclusions))))
	sb.WriteString("\n")
	for i, e := range m.rules.Exclusions {
		line := fmt.Sprintf("%s %s", activeMark(e.Active), e.Name)
		sb.WriteString(m.renderRow(len(m.rules.Selectors)+i, line))
	}
	return sb.String()
}

func (m EditorModel) renderRow(row int, line string) string {
	if row == m.cursor {
		return m.theme.ListItemSelected.Render(styles.IconCursor+" "+line) + "\n"
	}
	return m.theme.ListItem.Render("  "+line) + "\n"
}

func activeMark(active bool) string {
	if active {
		return "[x]"
	}
	return "[ ]"
}

// Ensure interface compliance.
var _ tea.Model = EditorModel{}
