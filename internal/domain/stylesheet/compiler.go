// Package stylesheet compiles a rule set into the CSS fragment that obscures
// matched page regions.
package stylesheet

import (
	"strconv"
	"strings"

	"github.com/bnema/veil/internal/domain/entity"
)

// Stacking order. Elevated exclusions always sit above the backdrop overlay
// of their enclosing region. The placeholder overlay belongs to a disjoint
// branch and never shares an element with the backdrop overlay.
const (
	ElevationZIndex   = 2147483647
	PlaceholderZIndex = 2147483646
	BackdropZIndex    = 2147483640
)

const (
	placeholderFill = "rgba(128, 128, 128, 0.98)"
	videoGuard      = ":not(video):not(:has(video))"
)

// thumbnailTargets are timeline hover previews and posters of common web players.
var thumbnailTargets = []string{
	".mgp_thumbnails .mgp_image",
	".mgp_thumbnails img",
	".mgp_videoPoster img",
}

// CompileRuleSet compiles a full snapshot. A nil rule set compiles to "".
func CompileRuleSet(rs *entity.RuleSet) string {
	if rs == nil {
		return ""
	}
	return Compile(rs.Selectors, rs.Exclusions, rs.BlurMode, rs.VideoMode)
}

// Compile turns rules into CSS text. It never fails: selector text is
// copied verbatim, so a malformed selector only yields rules the browser
// ignores. Every selector gets its own rules, which keeps one bad selector
// from invalidating the others.
func Compile(
	selectors []entity.SelectorRule,
	exclusions []entity.ExclusionRule,
	blurMode entity.BlurMode,
	videoMode entity.VideoMode,
) string {
	active := activeSelectors(selectors)
	if len(active) == 0 {
		return ""
	}

	exclusionSet := strings.Join(activeExclusionNames(exclusions), ", ")
	placeholder := blurMode == entity.BlurModePlaceholder

	var videos, thumbnails, obscured, overlays, elevations ruleWriter

	guard := ""
	if video := videoDeclarations(videoMode); video != nil {
		guard = videoGuard
		for _, item := range active {
			name := subject(item.Name)
			videos.rule(name+" video, "+name+":is(video)", video...)
			thumbnails.rule(thumbnailSelector(name), video...)
		}
	}

	safe := ""
	if exclusionSet != "" {
		safe = ":not(:has(:is(" + exclusionSet + ")))"
	}

	for _, item := range active {
		intensity := item.EffectiveIntensity()
		name := subject(item.Name)

		target := name + safe + guard
		if placeholder {
			obscured.rule(target, decl("position", "relative"))
			obscured.rule(target+"::after", overlayDeclarations(fillDeclaration(), PlaceholderZIndex)...)
		} else {
			obscured.rule(target, blurDeclarations(intensity)...)
		}

		if exclusionSet == "" {
			continue
		}

		unsafe := name + ":has(:is(" + exclusionSet + "))"
		overlay := fillDeclaration()
		if !placeholder {
			overlay = decl("backdrop-filter", blurValue(intensity))
		}
		overlays.rule(unsafe,
			decl("position", "relative"),
			decl("isolation", "isolate"),
		)
		overlays.rule(unsafe+"::after",
			append(overlayDeclarations(overlay, BackdropZIndex), decl("border-radius", "inherit"))...,
		)
		elevations.rule(unsafe+" :is("+exclusionSet+")",
			decl("position", "relative"),
			decl("z-index", strconv.Itoa(ElevationZIndex)),
		)
	}

	var out strings.Builder
	for _, w := range []*ruleWriter{&videos, &thumbnails, &obscured, &overlays, &elevations} {
		out.WriteString(w.String())
	}
	return out.String()
}

// subject makes a selector safe to extend with suffixes and descendant
// parts. A selector list is wrapped in :is() so the additions apply to every
// alternative instead of only the last one.
func subject(name string) string {
	if !hasTopLevelComma(name) {
		return name
	}
	return ":is(" + name + ")"
}

// hasTopLevelComma reports a comma outside brackets, parentheses and strings.
func hasTopLevelComma(selector string) bool {
	depth := 0
	var quote rune
	escaped := false
	for _, r := range selector {
		switch {
		case escaped:
			escaped = false
		case r == '\\':
			escaped = true
		case quote != 0:
			if r == quote {
				quote = 0
			}
		case r == '"' || r == '\'':
			quote = r
		case r == '(' || r == '[':
			depth++
		case r == ')' || r == ']':
			if depth > 0 {
				depth--
			}
		case r == ',' && depth == 0:
			return true
		}
	}
	return false
}

func activeSelectors(selectors []entity.SelectorRule) []entity.SelectorRule {
	active := make([]entity.SelectorRule, 0, len(selectors))
	for _, s := range selectors {
		if s.Active {
			active = append(active, s)
		}
	}
	return active
}

func activeExclusionNames(exclusions []entity.ExclusionRule) []string {
	names := make([]string, 0, len(exclusions))
	for _, e := range exclusions {
		if e.Active {
			names = append(names, e.Name)
		}
	}
	return names
}

func thumbnailSelector(name string) string {
	parts := make([]string, len(thumbnailTargets))
	for i, t := range thumbnailTargets {
		parts[i] = name + " " + t
	}
	return strings.Join(parts, ", ")
}

// videoDeclarations returns nil when videos need no special handling.
func videoDeclarations(mode entity.VideoMode) []declaration {
	switch mode {
	case entity.VideoModeHide:
		return []declaration{decl("opacity", "0"), decl("filter", "none")}
	case entity.VideoModeOverlay:
		return []declaration{decl("filter", "brightness(0)")}
	}
	return nil
}

func blurValue(intensity int) string {
	return "blur(" + strconv.Itoa(intensity) + "px)"
}

func blurDeclarations(intensity int) []declaration {
	return []declaration{
		decl("filter", blurValue(intensity)),
		decl("clip-path", "inset(0)"),
		decl("will-change", "filter"),
		decl("contain", "paint"),
	}
}

func fillDeclaration() declaration {
	return decl("background", placeholderFill)
}

func overlayDeclarations(paint declaration, zIndex int) []declaration {
	return []declaration{
		decl("content", `""`),
		decl("position", "absolute"),
		decl("inset", "0"),
		paint,
		decl("z-index", strconv.Itoa(zIndex)),
		decl("pointer-events", "none"),
	}
}
