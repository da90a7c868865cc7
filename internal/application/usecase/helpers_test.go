package usecase_test

import (
	"context"
	"sync"

	"github.com/bnema/veil/internal/domain/entity"
	"github.com/bnema/veil/internal/logging"
)

func testContext() context.Context {
	logger := logging.NewFromConfigValues("debug", "console")
	return logging.WithContext(context.Background(), logger)
}

func intPtr(n int) *int { return &n }

func sampleRuleSet() *entity.RuleSet {
	return &entity.RuleSet{
		Selectors: []entity.SelectorRule{
			{Name: ".post", Active: true, Intensity: intPtr(20)},
			{Name: ".sidebar", Active: false},
		},
		Exclusions: []entity.ExclusionRule{{Name: ".pinned", Active: true}},
		BlurMode:   entity.BlurModeGPU,
		VideoMode:  entity.VideoModeNormal,
	}
}

// recordingSink keeps every text it receives.
type recordingSink struct {
	mu    sync.Mutex
	texts []string
	err   error
}

func (s *recordingSink) SetText(_ context.Context, css string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.texts = append(s.texts, css)
	return nil
}

func (s *recordingSink) Name() string { return "recording" }

func (s *recordingSink) writes() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.texts...)
}
