package cssinspect_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bnema/veil/internal/domain/entity"
	"github.com/bnema/veil/internal/domain/stylesheet"
	"github.com/bnema/veil/internal/infrastructure/cssinspect"
)

func TestInspect_CompiledOutputIsAllImportant(t *testing.T) {
	intensity := 12
	rs := &entity.RuleSet{
		Selectors: []entity.SelectorRule{
			{Name: ".post", Active: true, Intensity: &intensity},
			{Name: "#aside > div", Active: true},
		},
		Exclusions: []entity.ExclusionRule{{Name: ".pinned", Active: true}},
	}

	for _, blur := range entity.BlurModes() {
		for _, video := range entity.VideoModes() {
			rs.BlurMode, rs.VideoMode = blur, video
			out := stylesheet.CompileRuleSet(rs)
			report := cssinspect.Inspect(out)

			assert.Equal(t, strings.Count(out, "\n"), report.Rulesets, "%s/%s", blur, video)
			assert.Equal(t, strings.Count(out, "!important"), report.Declarations, "%s/%s", blur, video)
			assert.True(t, report.AllImportant(), "%s/%s: %v", blur, video, report.NotImportant)
		}
	}
}

func TestInspect_FlagsMissingPriority(t *testing.T) {
	report := cssinspect.Inspect(".a { color: red; filter: blur(2px) !important; }")

	assert.Equal(t, 1, report.Rulesets)
	assert.Equal(t, 2, report.Declarations)
	assert.Len(t, report.NotImportant, 1)
	assert.Contains(t, report.NotImportant[0], "color")
	assert.False(t, report.AllImportant())
}

func TestInspect_Empty(t *testing.T) {
	report := cssinspect.Inspect("")
	assert.Zero(t, report.Rulesets)
	assert.Zero(t, report.Declarations)
	assert.True(t, report.AllImportant())
}
