package entity

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectorRule_EffectiveIntensity(t *testing.T) {
	assert.Equal(t, DefaultIntensity, SelectorRule{Name: ".post"}.EffectiveIntensity())
	assert.Equal(t, 0, SelectorRule{Name: ".post"}.WithIntensity(0).EffectiveIntensity())
	assert.Equal(t, 42, NewSelectorRule(".post").WithIntensity(42).EffectiveIntensity())
}

func TestNewSelectorRule_Defaults(t *testing.T) {
	r := NewSelectorRule(".feed")
	assert.True(t, r.Active)
	require.NotNil(t, r.Intensity)
	assert.Equal(t, DefaultIntensity, *r.Intensity)
}

func TestParseModes(t *testing.T) {
	blur, err := ParseBlurMode(" Placeholder ")
	require.NoError(t, err)
	assert.Equal(t, BlurModePlaceholder, blur)

	_, err = ParseBlurMode("cpu")
	assert.True(t, errors.Is(err, ErrInvalidMode))

	video, err := ParseVideoMode("overlay")
	require.NoError(t, err)
	assert.Equal(t, VideoModeOverlay, video)

	_, err = ParseVideoMode("")
	assert.True(t, errors.Is(err, ErrInvalidMode))
}

func TestModes_NextWraps(t *testing.T) {
	assert.Equal(t, BlurModePlaceholder, BlurModeGPU.Next())
	assert.Equal(t, BlurModeGPU, BlurModePlaceholder.Next())
	assert.Equal(t, VideoModeHide, VideoModeNormal.Next())
	assert.Equal(t, VideoModeNormal, VideoModeOverlay.Next())
	assert.Equal(t, VideoModeNormal, VideoMode("bogus").Next())
}

func TestRuleSet_NormalizeFillsDefaults(t *testing.T) {
	rs := &RuleSet{BlurMode: "weird"}
	rs.Normalize()

	assert.NotNil(t, rs.Selectors)
	assert.NotNil(t, rs.Exclusions)
	assert.Equal(t, BlurModeGPU, rs.BlurMode)
	assert.Equal(t, VideoModeNormal, rs.VideoMode)
}

func TestRuleSet_CloneIsDeep(t *testing.T) {
	rs := DefaultRuleSet()
	rs.Selectors = append(rs.Selectors, NewSelectorRule(".post"))
	rs.Exclusions = append(rs.Exclusions, NewExclusionRule(".pinned"))

	clone := rs.Clone()
	*clone.Selectors[0].Intensity = 80
	clone.Exclusions[0].Active = false

	assert.Equal(t, DefaultIntensity, *rs.Selectors[0].Intensity)
	assert.True(t, rs.Exclusions[0].Active)
}

func TestRuleSet_Lookups(t *testing.T) {
	rs := &RuleSet{
		Selectors:  []SelectorRule{{Name: ".a", Active: true}, {Name: ".b"}},
		Exclusions: []ExclusionRule{{Name: ".x"}},
	}

	assert.Equal(t, 1, rs.IndexOfSelector(".b"))
	assert.Equal(t, -1, rs.IndexOfSelector(".c"))
	assert.Equal(t, 0, rs.IndexOfExclusion(".x"))
	assert.Equal(t, 1, rs.ActiveSelectorCount())
}
