package marksheet

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marksight/internal/domain"
)

func validRecord() domain.MarksheetRecord {
	rec := domain.NewMarksheetRecord()
	rec.RollNumber = "R123"
	rec.StudentName = "Asha"
	rec.Sections = []domain.SectionMark{
		{Subject: "Math", MarksObtained: "90", MaxMarks: "100"},
		{Subject: "Science", MarksObtained: "85/100", MaxMarks: "100"},
	}
	rec.TotalObtained = "175"
	rec.TotalMax = "200"
	rec.Percentage = "87.5"
	rec.Grade = "A"
	return rec
}

func TestRollNumberFormatRule(t *testing.T) {
	rule := rollNumberFormatRule()
	rec := validRecord()

	results := rule.Validate(context.Background(), &rec)
	require.Len(t, results, 1)
	assert.True(t, results[0].Passed)

	rec.RollNumber = "Extraction Failed"
	results = rule.Validate(context.Background(), &rec)
	assert.False(t, results[0].Passed)
	assert.Equal(t, "roll_number", results[0].FieldPath)
}

func TestSectionMarksFormatRule(t *testing.T) {
	rule := sectionMarksFormatRule()
	rec := validRecord()

	results := rule.Validate(context.Background(), &rec)
	require.Len(t, results, 4)
	for _, r := range results {
		assert.True(t, r.Passed, r.FieldPath)
	}

	rec.Sections[0].MarksObtained = "ninety"
	results = rule.Validate(context.Background(), &rec)
	assert.False(t, results[0].Passed)
	assert.Equal(t, "sections[0].marks_obtained", results[0].FieldPath)
}

func TestSectionMarksFormatRule_SkipsAbsentValues(t *testing.T) {
	rule := sectionMarksFormatRule()
	rec := validRecord()
	rec.Sections = []domain.SectionMark{{Subject: "Art", MarksObtained: "", MaxMarks: "N/A"}}

	results := rule.Validate(context.Background(), &rec)
	require.Len(t, results, 2)
	assert.True(t, results[0].Passed)
	assert.True(t, results[1].Passed)
}

func TestPercentageConsistencyRule(t *testing.T) {
	rule := percentageConsistencyRule()
	rec := validRecord()

	results := rule.Validate(context.Background(), &rec)
	require.Len(t, results, 1)
	assert.True(t, results[0].Passed)

	rec.Percentage = "95"
	results = rule.Validate(context.Background(), &rec)
	assert.False(t, results[0].Passed)
}

func TestPercentageConsistencyRule_SkipsNonNumericTotals(t *testing.T) {
	rule := percentageConsistencyRule()
	rec := validRecord()
	rec.TotalObtained = domain.NotAvailable
	rec.TotalMax = domain.NotAvailable

	results := rule.Validate(context.Background(), &rec)
	require.Len(t, results, 1)
	assert.True(t, results[0].Passed)
}

func TestGradeFormatRule(t *testing.T) {
	rule := gradeFormatRule()
	rec := validRecord()

	results := rule.Validate(context.Background(), &rec)
	assert.True(t, results[0].Passed)

	rec.Grade = "Distinction with honors"
	results = rule.Validate(context.Background(), &rec)
	assert.False(t, results[0].Passed)

	rec.Grade = domain.NotAvailable
	results = rule.Validate(context.Background(), &rec)
	assert.True(t, results[0].Passed)
}

func TestAllBuiltinRules_KeysAreUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, rule := range AllBuiltinRules() {
		assert.False(t, seen[rule.RuleKey()], "duplicate rule key %s", rule.RuleKey())
		seen[rule.RuleKey()] = true
	}
	assert.Len(t, seen, 5)
}
