package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/invopop/jsonschema"

	"github.com/bnema/veil/internal/domain/entity"
	"github.com/bnema/veil/internal/domain/repository"
	"github.com/bnema/veil/internal/logging"
)

// RulesSchemaID identifies the rules document schema.
const RulesSchemaID = "https://github.com/bnema/veil/rules.schema.json"

// TransferRulesUseCase exports and imports rules as a JSON document shaped
// like the browser extension storage ({"selectors": [...], "exclusions": [...],
// "blurMode": "...", "videoMode": "..."}).
type TransferRulesUseCase struct {
	repo repository.RuleSetRepository
}

// NewTransferRulesUseCase creates a new import/export use case.
func NewTransferRulesUseCase(repo repository.RuleSetRepository) *TransferRulesUseCase {
	return &TransferRulesUseCase{repo: repo}
}

// Export returns the stored rules as indented JSON.
func (uc *TransferRulesUseCase) Export(ctx context.Context) ([]byte, error) {
	rs, err := uc.repo.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules: %w", err)
	}
	data, err := json.MarshalIndent(rs, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode rules: %w", err)
	}
	return append(data, '\n'), nil
}

// ImportOutput summarizes an import.
type ImportOutput struct {
	Selectors  int
	Exclusions int
	Skipped    int
	// Clamped counts negative intensities raised to the minimum.
	Clamped int
}

// Import replaces every stored key with the document's content. Absent keys
// take their defaults; entries with blank names are skipped and negative
// intensities are clamped to the minimum.
func (uc *TransferRulesUseCase) Import(ctx context.Context, data []byte) (*ImportOutput, error) {
	var rs entity.RuleSet
	if err := json.Unmarshal(data, &rs); err != nil {
		return nil, fmt.Errorf("failed to decode rules document: %w", err)
	}

	out := &ImportOutput{}
	selectors := make([]entity.SelectorRule, 0, len(rs.Selectors))
	for _, s := range rs.Selectors {
		s.Name = strings.TrimSpace(s.Name)
		if s.Name == "" {
			out.Skipped++
			continue
		}
		if s.Intensity != nil && *s.Intensity < entity.MinIntensity {
			s = s.WithIntensity(entity.MinIntensity)
			out.Clamped++
		}
		selectors = append(selectors, s)
	}
	exclusions := make([]entity.ExclusionRule, 0, len(rs.Exclusions))
	for _, e := range rs.Exclusions {
		e.Name = strings.TrimSpace(e.Name)
		if e.Name == "" {
			out.Skipped++
			continue
		}
		exclusions = append(exclusions, e)
	}
	rs.Selectors, rs.Exclusions = selectors, exclusions
	rs.Normalize()

	if err := uc.repo.Replace(ctx, &rs); err != nil {
		return nil, fmt.Errorf("failed to store imported rules: %w", err)
	}

	out.Selectors, out.Exclusions = len(rs.Selectors), len(rs.Exclusions)
	logging.FromContext(ctx).Info().
		Int("selectors", out.Selectors).
		Int("exclusions", out.Exclusions).
		Int("skipped", out.Skipped).
		Int("clamped", out.Clamped).
		Msg("rules imported")
	return out, nil
}

// Schema returns the JSON schema of the rules document.
func (uc *TransferRulesUseCase) Schema() ([]byte, error) {
	r := new(jsonschema.Reflector)
	schema := r.Reflect(&entity.RuleSet{})
	schema.ID = RulesSchemaID
	schema.Title = "veil rules"
	schema.Description = "Selectors to obscure, exclusions kept visible, blur and video modes"

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	return append(data, '\n'), nil
}
