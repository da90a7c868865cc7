package styles

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/veil/internal/domain/entity"
	"github.com/bnema/veil/internal/infrastructure/cssinspect"
)

// RulesRenderer renders rule listings and command results.
type RulesRenderer struct {
	theme *Theme
}

// NewRulesRenderer creates a new rules renderer with the given theme.
func NewRulesRenderer(theme *Theme) *RulesRenderer {
	return &RulesRenderer{theme: theme}
}

// RenderRuleSet renders selectors, exclusions and modes.
func (r *RulesRenderer) RenderRuleSet(rs *entity.RuleSet) string {
	var sb strings.Builder

	sb.WriteString(r.renderModes(rs))
	sb.WriteString("\n")
	sb.WriteString(r.RenderSelectors(rs.Selectors))
	sb.WriteString("\n")
	sb.WriteString(r.RenderExclusions(rs.Exclusions))
	return sb.String()
}

func (r *RulesRenderer) renderModes(rs *entity.RuleSet) string {
	return fmt.Sprintf("  %s %s  %s %s\n",
		r.theme.Subtle.Render("blur"),
		r.theme.Badge.Render(string(rs.BlurMode)),
		r.theme.Subtle.Render("video"),
		r.theme.Badge.Render(string(rs.VideoMode)),
	)
}

// RenderSelectors renders the selector list with index, state and intensity.
func (r *RulesRenderer) RenderSelectors(selectors []entity.SelectorRule) string {
	var sb strings.Builder
	sb.WriteString(r.theme.Title.Render(fmt.Sprintf("  Selectors (%d)", len(selectors))))
	sb.WriteString("\n")
	if len(selectors) == 0 {
		sb.WriteString(r.theme.Subtle.Render("    none"))
		sb.WriteString("\n")
		return sb.String()
	}

	for i, s := range selectors {
		intensity := fmt.Sprintf("%dpx", s.EffectiveIntensity())
		if s.Intensity == nil {
			intensity += " (default)"
		}
		sb.WriteString(fmt.Sprintf("  %s %s %s %s\n",
			r.theme.Subtle.Render(fmt.Sprintf("%3d", i)),
			r.stateIcon(s.Active),
			r.nameStyle(s.Active).Render(s.Name),
			r.theme.BadgeMuted.Render(intensity),
		))
	}
	return sb.String()
}

// RenderExclusions renders the exclusion list.
func (r *RulesRenderer) RenderExclusions(exclusions []entity.ExclusionRule) string {
	var sb strings.Builder
	sb.WriteString(r.theme.Title.Render(fmt.Sprintf("  Exclusions (%d)", len(exclusions))))
	sb.WriteString("\n")
	if len(exclusions) == 0 {
		sb.WriteString(r.theme.Subtle.Render("    none"))
		sb.WriteString("\n")
		return sb.String()
	}

	for i, e := range exclusions {
		sb.WriteString(fmt.Sprintf("  %s %s %s\n",
			r.theme.Subtle.Render(fmt.Sprintf("%3d", i)),
			r.stateIcon(e.Active),
			r.nameStyle(e.Active).Render(e.Name),
		))
	}
	return sb.String()
}

func (r *RulesRenderer) stateIcon(active bool) string {
	if active {
		return lipgloss.NewStyle().Foreground(r.theme.Accent).Render(IconEyeSlash)
	}
	return r.theme.Subtle.Render(IconEye)
}

func (r *RulesRenderer) nameStyle(active bool) lipgloss.Style {
	if active {
		return r.theme.Normal
	}
	return r.theme.Subtle.Strikethrough(true)
}

// RenderStats renders a stylesheet inspection report.
func (r *RulesRenderer) RenderStats(report cssinspect.Report, size int) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("  %s %s rulesets, %s declarations, %s bytes\n",
		lipgloss.NewStyle().Foreground(r.theme.Accent).Render(IconInfo),
		r.theme.Highlight.Render(fmt.Sprintf("%d", report.Rulesets)),
		r.theme.Highlight.Render(fmt.Sprintf("%d", report.Declarations)),
		r.theme.Highlight.Render(fmt.Sprintf("%d", size)),
	))
	if report.ParseErrors > 0 {
		sb.WriteString(r.RenderWarning(fmt.Sprintf("%d tokens could not be parsed", report.ParseErrors)))
	}
	for _, decl := range report.NotImportant {
		sb.WriteString(r.RenderWarning("missing !important: " + decl))
	}
	return sb.String()
}

// RenderSuccess renders a success line.
func (r *RulesRenderer) RenderSuccess(msg string) string {
	return fmt.Sprintf("  %s %s\n", r.theme.SuccessStyle.Render(IconCheck), msg)
}

// RenderWarning renders a warning line.
func (r *RulesRenderer) RenderWarning(msg string) string {
	return fmt.Sprintf("  %s %s\n", r.theme.WarningStyle.Render(IconWarning), msg)
}

// RenderError renders an error line.
func (r *RulesRenderer) RenderError(err error) string {
	return fmt.Sprintf("  %s %s\n", r.theme.ErrorStyle.Render(IconX), r.theme.ErrorStyle.Render(err.Error()))
}

// RenderPath renders a labeled filesystem path.
func (r *RulesRenderer) RenderPath(icon, label, path string) string {
	return fmt.Sprintf("  %s %s %s\n",
		lipgloss.NewStyle().Foreground(r.theme.Accent).Render(icon),
		label,
		r.theme.Subtle.Render(path),
	)
}
