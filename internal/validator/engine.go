package validator

import (
	"context"
	"time"

	"marksight/internal/domain"
)

// ResultEntry pairs a rule's metadata with one of its results, as persisted
// in the extraction's validation JSONB column.
type ResultEntry struct {
	RuleKey       string                    `json:"rule_key"`
	RuleName      string                    `json:"rule_name"`
	RuleType      domain.ValidationRuleType `json:"rule_type"`
	Severity      domain.ValidationSeverity `json:"severity"`
	Passed        bool                      `json:"passed"`
	FieldPath     string                    `json:"field_path"`
	ExpectedValue string                    `json:"expected_value"`
	ActualValue   string                    `json:"actual_value"`
	Message       string                    `json:"message"`
	ValidatedAt   time.Time                 `json:"validated_at"`
}

// Report is the full outcome of validating one record.
type Report struct {
	Status  domain.ValidationStatus `json:"status"`
	Summary Summary                 `json:"summary"`
	Results []ResultEntry           `json:"results"`
	Fields  map[string]*FieldStatus `json:"fields"`
}

// Summary holds aggregate counts of validation results.
type Summary struct {
	Total    int `json:"total"`
	Passed   int `json:"passed"`
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
}

// Engine runs all registered rules against extracted records.
type Engine struct {
	registry *Registry
}

// NewEngine creates a validation engine over a rule registry.
func NewEngine(registry *Registry) *Engine {
	return &Engine{registry: registry}
}

// Validate runs every registered rule against the record. Validation never
// fails the pipeline: the report is advisory and travels with the extraction.
func (e *Engine) Validate(ctx context.Context, rec *domain.MarksheetRecord) *Report {
	now := time.Now().UTC()
	var entries []ResultEntry
	hasError := false
	hasWarning := false

	for _, v := range e.registry.All() {
		for _, vr := range v.Validate(ctx, rec) {
			entries = append(entries, ResultEntry{
				RuleKey:       v.RuleKey(),
				RuleName:      v.RuleName(),
				RuleType:      v.RuleType(),
				Severity:      v.Severity(),
				Passed:        vr.Passed,
				FieldPath:     vr.FieldPath,
				ExpectedValue: vr.ExpectedValue,
				ActualValue:   vr.ActualValue,
				Message:       vr.Message,
				ValidatedAt:   now,
			})
			if !vr.Passed {
				if v.Severity() == domain.ValidationSeverityError {
					hasError = true
				} else {
					hasWarning = true
				}
			}
		}
	}

	var status domain.ValidationStatus
	switch {
	case hasError:
		status = domain.ValidationStatusInvalid
	case hasWarning:
		status = domain.ValidationStatusWarnings
	default:
		status = domain.ValidationStatusValid
	}

	summary := Summary{Total: len(entries)}
	for _, entry := range entries {
		if entry.Passed {
			summary.Passed++
		} else if entry.Severity == domain.ValidationSeverityError {
			summary.Errors++
		} else {
			summary.Warnings++
		}
	}

	if entries == nil {
		entries = []ResultEntry{}
	}

	return &Report{
		Status:  status,
		Summary: summary,
		Results: entries,
		Fields:  ComputeFieldStatuses(entries),
	}
}
