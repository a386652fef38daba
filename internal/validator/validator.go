package validator

import (
	"context"

	"marksight/internal/domain"
	"marksight/internal/validator/marksheet"
)

// Validator is one advisory rule applied to an extracted marksheet record.
// A rule may emit several results (one per section, for example); each result
// is tagged with the rule's metadata when the engine assembles the report.
type Validator interface {
	Validate(ctx context.Context, rec *domain.MarksheetRecord) []marksheet.ValidationResult
	RuleKey() string
	RuleName() string
	RuleType() domain.ValidationRuleType
	Severity() domain.ValidationSeverity
}
