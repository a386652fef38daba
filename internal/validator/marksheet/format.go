package marksheet

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"marksight/internal/domain"
)

// Rule checks one aspect of an extracted marksheet record. All rules are
// advisory: a failing rule flags the field for review, it never blocks the
// pipeline or the CSV export.
type Rule struct {
	ruleKey  string
	ruleName string
	ruleType domain.ValidationRuleType
	severity domain.ValidationSeverity
	validate func(*domain.MarksheetRecord) []ValidationResult
}

func (r *Rule) RuleKey() string                     { return r.ruleKey }
func (r *Rule) RuleName() string                    { return r.ruleName }
func (r *Rule) RuleType() domain.ValidationRuleType { return r.ruleType }
func (r *Rule) Severity() domain.ValidationSeverity { return r.severity }

func (r *Rule) Validate(_ context.Context, rec *domain.MarksheetRecord) []ValidationResult {
	return r.validate(rec)
}

// AllBuiltinRules returns the built-in rule set for marksheet records.
func AllBuiltinRules() []*Rule {
	return []*Rule{
		rollNumberFormatRule(),
		sectionMarksFormatRule(),
		totalsFormatRule(),
		percentageConsistencyRule(),
		gradeFormatRule(),
	}
}

func rollNumberFormatRule() *Rule {
	return &Rule{
		ruleKey:  "roll_number_format",
		ruleName: "Roll Number Format",
		ruleType: domain.ValidationRuleRegex,
		severity: domain.ValidationSeverityError,
		validate: func(rec *domain.MarksheetRecord) []ValidationResult {
			passed := ValidateIdentifier(rec.RollNumber)
			msg := "roll_number is a valid identifier"
			if !passed {
				msg = "roll_number is missing or not alphanumeric"
			}
			return []ValidationResult{{
				Passed: passed, FieldPath: "roll_number",
				ExpectedValue: "alphanumeric identifier", ActualValue: rec.RollNumber,
				Message: msg,
			}}
		},
	}
}

func sectionMarksFormatRule() *Rule {
	return &Rule{
		ruleKey:  "section_marks_format",
		ruleName: "Section Marks Format",
		ruleType: domain.ValidationRuleRegex,
		severity: domain.ValidationSeverityWarning,
		validate: func(rec *domain.MarksheetRecord) []ValidationResult {
			results := make([]ValidationResult, 0, len(rec.Sections)*2)
			for i, s := range rec.Sections {
				results = append(results,
					marksCheck(fmt.Sprintf("sections[%d].marks_obtained", i), s.MarksObtained),
					marksCheck(fmt.Sprintf("sections[%d].max_marks", i), s.MaxMarks),
				)
			}
			return results
		},
	}
}

func totalsFormatRule() *Rule {
	return &Rule{
		ruleKey:  "totals_format",
		ruleName: "Totals Format",
		ruleType: domain.ValidationRuleRegex,
		severity: domain.ValidationSeverityWarning,
		validate: func(rec *domain.MarksheetRecord) []ValidationResult {
			return []ValidationResult{
				marksCheck("total_obtained", rec.TotalObtained),
				marksCheck("total_max", rec.TotalMax),
			}
		},
	}
}

// percentageConsistencyRule recomputes the percentage from the totals and
// compares it to the extracted value with a 0.5 point tolerance. Skipped when
// any of the three values has no digits at all.
func percentageConsistencyRule() *Rule {
	return &Rule{
		ruleKey:  "percentage_consistency",
		ruleName: "Percentage Consistency",
		ruleType: domain.ValidationRuleConsistency,
		severity: domain.ValidationSeverityWarning,
		validate: func(rec *domain.MarksheetRecord) []ValidationResult {
			obtained, err1 := strconv.ParseFloat(CleanNumeric(rec.TotalObtained), 64)
			maxMarks, err2 := strconv.ParseFloat(CleanNumeric(rec.TotalMax), 64)
			pct, err3 := strconv.ParseFloat(CleanNumeric(rec.Percentage), 64)
			if err1 != nil || err2 != nil || err3 != nil || maxMarks == 0 || pct == 0 {
				return []ValidationResult{{
					Passed: true, FieldPath: "percentage",
					ExpectedValue: "computable percentage", ActualValue: rec.Percentage,
					Message: "percentage consistency skipped: totals not numeric",
				}}
			}

			computed := obtained / maxMarks * 100
			passed := math.Abs(computed-pct) <= 0.5
			msg := "percentage matches computed value"
			if !passed {
				msg = fmt.Sprintf("percentage %.2f differs from computed %.2f", pct, computed)
			}
			return []ValidationResult{{
				Passed: passed, FieldPath: "percentage",
				ExpectedValue: fmt.Sprintf("%.2f", computed), ActualValue: rec.Percentage,
				Message: msg,
			}}
		},
	}
}

func gradeFormatRule() *Rule {
	return &Rule{
		ruleKey:  "grade_format",
		ruleName: "Grade Format",
		ruleType: domain.ValidationRuleRegex,
		severity: domain.ValidationSeverityWarning,
		validate: func(rec *domain.MarksheetRecord) []ValidationResult {
			grade := strings.TrimSpace(rec.Grade)
			if grade == "" || grade == domain.NotAvailable {
				return []ValidationResult{{
					Passed: true, FieldPath: "grade",
					ExpectedValue: "short grade token", ActualValue: rec.Grade,
					Message: "grade is absent, skipping format check",
				}}
			}
			passed := len(grade) <= 3
			msg := "grade looks like a grade token"
			if !passed {
				msg = "grade is unusually long for a grade token"
			}
			return []ValidationResult{{
				Passed: passed, FieldPath: "grade",
				ExpectedValue: "short grade token", ActualValue: rec.Grade,
				Message: msg,
			}}
		},
	}
}

func marksCheck(fieldPath, value string) ValidationResult {
	if strings.TrimSpace(value) == "" || value == domain.NotAvailable || value == "N/A" {
		return ValidationResult{
			Passed: true, FieldPath: fieldPath,
			ExpectedValue: "integer, fraction or decimal", ActualValue: value,
			Message: fmt.Sprintf("%s is absent, skipping format check", fieldPath),
		}
	}
	passed := ValidateMarks(value)
	msg := fmt.Sprintf("%s matches expected mark format", fieldPath)
	if !passed {
		msg = fmt.Sprintf("%s does not match expected mark format", fieldPath)
	}
	return ValidationResult{
		Passed: passed, FieldPath: fieldPath,
		ExpectedValue: "integer, fraction or decimal", ActualValue: value,
		Message: msg,
	}
}
