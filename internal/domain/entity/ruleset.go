package entity

import (
	"errors"
	"fmt"
	"strings"
)

// Intensity bounds, in pixels of blur radius.
const (
	DefaultIntensity = 15
	MinIntensity     = 0
	MaxIntensity     = 100 // enforced by edit operations only, never by the compiler
)

var (
	ErrRuleNotFound     = errors.New("rule not found")
	ErrDuplicateRule    = errors.New("rule already exists")
	ErrEmptySelector    = errors.New("selector cannot be empty")
	ErrInvalidIntensity = errors.New("invalid intensity")
	ErrInvalidMode      = errors.New("invalid mode")
)

// BlurMode selects how an obscured region is rendered.
type BlurMode string

const (
	// BlurModeGPU applies a blur filter to the region.
	BlurModeGPU BlurMode = "gpu"
	// BlurModePlaceholder covers the region with an opaque fill.
	BlurModePlaceholder BlurMode = "placeholder"
)

// VideoMode selects how video playback elements inside obscured regions are handled.
type VideoMode string

const (
	VideoModeNormal  VideoMode = "normal"
	VideoModeHide    VideoMode = "hide"
	VideoModeOverlay VideoMode = "overlay"
)

// BlurModes lists every accepted blur mode in display order.
func BlurModes() []BlurMode {
	return []BlurMode{BlurModeGPU, BlurModePlaceholder}
}

// VideoModes lists every accepted video mode in display order.
func VideoModes() []VideoMode {
	return []VideoMode{VideoModeNormal, VideoModeHide, VideoModeOverlay}
}

// ParseBlurMode converts user input into a BlurMode.
func ParseBlurMode(s string) (BlurMode, error) {
	switch BlurMode(strings.ToLower(strings.TrimSpace(s))) {
	case BlurModeGPU:
		return BlurModeGPU, nil
	case BlurModePlaceholder:
		return BlurModePlaceholder, nil
	}
	return "", fmt.Errorf("%w: blur mode %q (want gpu or placeholder)", ErrInvalidMode, s)
}

// ParseVideoMode converts user input into a VideoMode.
func ParseVideoMode(s string) (VideoMode, error) {
	switch VideoMode(strings.ToLower(strings.TrimSpace(s))) {
	case VideoModeNormal:
		return VideoModeNormal, nil
	case VideoModeHide:
		return VideoModeHide, nil
	case VideoModeOverlay:
		return VideoModeOverlay, nil
	}
	return "", fmt.Errorf("%w: video mode %q (want normal, hide or overlay)", ErrInvalidMode, s)
}

// Next returns the mode following m, wrapping around.
func (m BlurMode) Next() BlurMode {
	modes := BlurModes()
	for i, mode := range modes {
		if mode == m {
			return modes[(i+1)%len(modes)]
		}
	}
	return BlurModeGPU
}

// Next returns the mode following m, wrapping around.
func (m VideoMode) Next() VideoMode {
	modes := VideoModes()
	for i, mode := range modes {
		if mode == m {
			return modes[(i+1)%len(modes)]
		}
	}
	return VideoModeNormal
}

// SelectorRule is one region of the page to obscure.
type SelectorRule struct {
	Name      string `json:"name" jsonschema:"description=Raw CSS selector text"`
	Active    bool   `json:"active"`
	Intensity *int   `json:"intensity,omitempty" jsonschema:"minimum=0,description=Blur radius in pixels (default 15)"`
}

// NewSelectorRule creates an active selector rule with the default intensity.
func NewSelectorRule(name string) SelectorRule {
	intensity := DefaultIntensity
	return SelectorRule{Name: name, Active: true, Intensity: &intensity}
}

// EffectiveIntensity returns the blur radius, falling back to DefaultIntensity.
func (r SelectorRule) EffectiveIntensity() int {
	if r.Intensity == nil {
		return DefaultIntensity
	}
	return *r.Intensity
}

// WithIntensity returns a copy of r carrying its own intensity value.
func (r SelectorRule) WithIntensity(n int) SelectorRule {
	r.Intensity = &n
	return r
}

// ExclusionRule is a sub-region nested inside obscured matches that must stay visible.
type ExclusionRule struct {
	Name   string `json:"name" jsonschema:"description=Raw CSS selector text"`
	Active bool   `json:"active"`
}

// NewExclusionRule creates an active exclusion rule.
func NewExclusionRule(name string) ExclusionRule {
	return ExclusionRule{Name: name, Active: true}
}

// RuleSet is a full configuration snapshot. Field names follow the
// storage keys of the browser extension so exported documents round-trip.
type RuleSet struct {
	Selectors  []SelectorRule  `json:"selectors"`
	Exclusions []ExclusionRule `json:"exclusions"`
	BlurMode   BlurMode        `json:"blurMode" jsonschema:"enum=gpu,enum=placeholder,default=gpu"`
	VideoMode  VideoMode       `json:"videoMode" jsonschema:"enum=normal,enum=hide,enum=overlay,default=normal"`
}

// DefaultRuleSet returns the values used when nothing has been stored yet.
func DefaultRuleSet() *RuleSet {
	return &RuleSet{
		Selectors:  []SelectorRule{},
		Exclusions: []ExclusionRule{},
		BlurMode:   BlurModeGPU,
		VideoMode:  VideoModeNormal,
	}
}

// Normalize fills absent values with defaults. It is applied once, where a
// snapshot enters the application, so the compiler never sees partial data.
func (rs *RuleSet) Normalize() {
	if rs.Selectors == nil {
		rs.Selectors = []SelectorRule{}
	}
	if rs.Exclusions == nil {
		rs.Exclusions = []ExclusionRule{}
	}
	if mode, err := ParseBlurMode(string(rs.BlurMode)); err == nil {
		rs.BlurMode = mode
	} else {
		rs.BlurMode = BlurModeGPU
	}
	if mode, err := ParseVideoMode(string(rs.VideoMode)); err == nil {
		rs.VideoMode = mode
	} else {
		rs.VideoMode = VideoModeNormal
	}
}

// Clone returns a deep copy, including intensity pointers.
func (rs *RuleSet) Clone() *RuleSet {
	if rs == nil {
		return nil
	}
	out := &RuleSet{
		Selectors:  make([]SelectorRule, len(rs.Selectors)),
		Exclusions: make([]ExclusionRule, len(rs.Exclusions)),
		BlurMode:   rs.BlurMode,
		VideoMode:  rs.VideoMode,
	}
	for i, s := range rs.Selectors {
		if s.Intensity != nil {
			s = s.WithIntensity(*s.Intensity)
		}
		out.Selectors[i] = s
	}
	copy(out.Exclusions, rs.Exclusions)
	return out
}

// ActiveSelectorCount returns how many selector rules are enabled.
func (rs *RuleSet) ActiveSelectorCount() int {
	n := 0
	for _, s := range rs.Selectors {
		if s.Active {
			n++
		}
	}
	return n
}

// IndexOfSelector returns the position of the first selector named name, or -1.
func (rs *RuleSet) IndexOfSelector(name string) int {
	for i, s := range rs.Selectors {
		if s.Name == name {
			return i
		}
	}
	return -1
}

// IndexOfExclusion returns the position of the first exclusion named name, or -1.
func (rs *RuleSet) IndexOfExclusion(name string) int {
	for i, e := range rs.Exclusions {
		if e.Name == name {
			return i
		}
	}
	return -1
}

// RuleSetKey names one independently stored part of a RuleSet.
type RuleSetKey string

const (
	KeySelectors  RuleSetKey = "selectors"
	KeyExclusions RuleSetKey = "exclusions"
	KeyBlurMode   RuleSetKey = "blurMode"
	KeyVideoMode  RuleSetKey = "videoMode"
)

// AllRuleSetKeys lists every stored key.
func AllRuleSetKeys() []RuleSetKey {
	return []RuleSetKey{KeySelectors, KeyExclusions, KeyBlurMode, KeyVideoMode}
}

// RuleSetChange notifies that stored rules changed. Consumers always
// re-read the full snapshot; Keys is informational.
type RuleSetChange struct {
	Keys   []RuleSetKey
	Source ChangeSource
}

// ChangeSource tells where a change came from.
type ChangeSource string

const (
	ChangeSourceLocal    ChangeSource = "local"    // committed through this process
	ChangeSourceExternal ChangeSource = "external" // committed by another process
	ChangeSourceInitial  ChangeSource = "initial"
)
