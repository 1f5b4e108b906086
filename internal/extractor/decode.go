// Package extractor declares the structured-output contracts and decodes
// generator responses into the typed result structures. Decoding is
// defensive: a surrounding code fence is tolerated, and the parsed shape is
// validated locally rather than trusted.
package extractor

import (
	"encoding/json"
	"fmt"
	"strings"

	"subcheck/internal/domain"
)

// StripFence removes one optional surrounding markdown code fence (a leading
// fence line such as ``` or ```json and a trailing fence line). Stripping a
// non-existent fence is a no-op.
func StripFence(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		s = s[idx+1:]
	} else {
		s = strings.TrimPrefix(s, "```")
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// DecodeCompleteness parses a raw generator response into a
// CompletenessResult. The AllProvided flag is recomputed from the row
// statuses after validation.
func DecodeCompleteness(raw string) (*domain.CompletenessResult, error) {
	text := StripFence(raw)
	if text == "" {
		return nil, &domain.ExtractionError{Err: fmt.Errorf("empty response")}
	}

	var result domain.CompletenessResult
	if err := json.Unmarshal([]byte(text), &result); err != nil {
		return nil, &domain.ExtractionError{Err: fmt.Errorf("decoding completeness JSON: %w", err)}
	}

	if err := validateCompleteness(&result); err != nil {
		return nil, err
	}
	result.Reconcile()
	return &result, nil
}

// DecodeAnalysis parses a raw generator response into an AnalysisResult.
func DecodeAnalysis(raw string) (*domain.AnalysisResult, error) {
	text := StripFence(raw)
	if text == "" {
		return nil, &domain.ExtractionError{Err: fmt.Errorf("empty response")}
	}

	var result domain.AnalysisResult
	if err := json.Unmarshal([]byte(text), &result); err != nil {
		return nil, &domain.ExtractionError{Err: fmt.Errorf("decoding analysis JSON: %w", err)}
	}

	if err := validateAnalysis(&result); err != nil {
		return nil, err
	}
	return &result, nil
}

func validateCompleteness(r *domain.CompletenessResult) error {
	if r.GroupedRows == nil {
		return &domain.SchemaMismatchError{Detail: "grouped_rows is missing"}
	}
	for i, row := range r.GroupedRows {
		if err := validatePartStatus(row.Original, fmt.Sprintf("row %d original", i+1)); err != nil {
			return err
		}
		for j, sub := range row.Substitutes {
			if err := validatePartStatus(sub, fmt.Sprintf("row %d substitute %d", i+1, j+1)); err != nil {
				return err
			}
		}
	}
	return nil
}

func validatePartStatus(ps domain.PartStatus, where string) error {
	if ps.PartName == "" {
		return &domain.SchemaMismatchError{Detail: where + ": part_name is empty"}
	}
	if ps.Status != domain.PartProvided && ps.Status != domain.PartMissing {
		return &domain.SchemaMismatchError{Detail: fmt.Sprintf("%s: status %q is not a valid availability", where, ps.Status)}
	}
	return nil
}

func validateAnalysis(r *domain.AnalysisResult) error {
	if r.Groups == nil {
		return &domain.SchemaMismatchError{Detail: "groups is missing"}
	}
	if r.MissingFiles == nil {
		r.MissingFiles = []string{}
	}
	for i, g := range r.Groups {
		where := fmt.Sprintf("group %d", i+1)
		if g.ID != "" {
			where = fmt.Sprintf("group %q", g.ID)
		}
		if !domain.ValidRecommendations[g.Recommendation] {
			return &domain.SchemaMismatchError{Detail: fmt.Sprintf("%s: recommendation %q is not a valid literal", where, g.Recommendation)}
		}
		if len(g.Specs) == 0 {
			return &domain.SchemaMismatchError{Detail: where + ": specs is empty"}
		}
		seen := make(map[int]bool, len(g.Specs))
		for _, item := range g.Specs {
			if seen[item.ID] {
				return &domain.SchemaMismatchError{Detail: fmt.Sprintf("%s: duplicate spec item id %d", where, item.ID)}
			}
			seen[item.ID] = true
			if !domain.ValidComplianceLevels[item.ComplianceB] {
				return &domain.SchemaMismatchError{Detail: fmt.Sprintf("%s spec %d: compliance_b %q is not a valid level", where, item.ID, item.ComplianceB)}
			}
			if !domain.ValidComplianceLevels[item.ComplianceC] {
				return &domain.SchemaMismatchError{Detail: fmt.Sprintf("%s spec %d: compliance_c %q is not a valid level", where, item.ID, item.ComplianceC)}
			}
		}
	}
	return nil
}
