package validator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marksight/internal/domain"
)

func goodRecord() domain.MarksheetRecord {
	rec := domain.NewMarksheetRecord()
	rec.RollNumber = "R123"
	rec.StudentName = "Asha Verma"
	rec.Sections = []domain.SectionMark{
		{Subject: "Math", MarksObtained: "40", MaxMarks: "50"},
	}
	rec.TotalObtained = "40"
	rec.TotalMax = "50"
	rec.Percentage = "80"
	rec.Grade = "A"
	return rec
}

func TestEngineValidate_ValidRecord(t *testing.T) {
	engine := NewEngine(DefaultRegistry())
	rec := goodRecord()

	report := engine.Validate(context.Background(), &rec)

	assert.Equal(t, domain.ValidationStatusValid, report.Status)
	assert.Equal(t, report.Summary.Total, report.Summary.Passed)
	assert.Zero(t, report.Summary.Errors)
	assert.Zero(t, report.Summary.Warnings)
	require.Contains(t, report.Fields, "roll_number")
	assert.Equal(t, domain.FieldStatusValid, report.Fields["roll_number"].Status)
}

func TestEngineValidate_WarningsOnly(t *testing.T) {
	engine := NewEngine(DefaultRegistry())
	rec := goodRecord()
	rec.Sections[0].MarksObtained = "forty"

	report := engine.Validate(context.Background(), &rec)

	assert.Equal(t, domain.ValidationStatusWarnings, report.Status)
	assert.Equal(t, 1, report.Summary.Warnings)
	assert.Zero(t, report.Summary.Errors)
	require.Contains(t, report.Fields, "sections[0].marks_obtained")
	assert.Equal(t, domain.FieldStatusUnsure, report.Fields["sections[0].marks_obtained"].Status)
}

func TestEngineValidate_InvalidRecord(t *testing.T) {
	engine := NewEngine(DefaultRegistry())
	rec := goodRecord()
	rec.RollNumber = domain.NotAvailable

	report := engine.Validate(context.Background(), &rec)

	assert.Equal(t, domain.ValidationStatusInvalid, report.Status)
	assert.Equal(t, 1, report.Summary.Errors)
	assert.Equal(t, domain.FieldStatusInvalid, report.Fields["roll_number"].Status)
	assert.NotEmpty(t, report.Fields["roll_number"].Messages)
}

func TestEngineValidate_ErrorOutranksWarning(t *testing.T) {
	engine := NewEngine(DefaultRegistry())
	rec := goodRecord()
	rec.RollNumber = ""
	rec.Percentage = "12"

	report := engine.Validate(context.Background(), &rec)

	assert.Equal(t, domain.ValidationStatusInvalid, report.Status)
	assert.Equal(t, 1, report.Summary.Errors)
	assert.Equal(t, 1, report.Summary.Warnings)
}

func TestEngineValidate_EmptyRegistry(t *testing.T) {
	engine := NewEngine(NewRegistry())
	rec := goodRecord()

	report := engine.Validate(context.Background(), &rec)

	assert.Equal(t, domain.ValidationStatusValid, report.Status)
	assert.NotNil(t, report.Results)
	assert.Empty(t, report.Results)
	assert.NotNil(t, report.Fields)
}

func TestComputeFieldStatuses_InvalidSticks(t *testing.T) {
	entries := []ResultEntry{
		{FieldPath: "grade", Passed: false, Severity: domain.ValidationSeverityError, Message: "bad"},
		{FieldPath: "grade", Passed: false, Severity: domain.ValidationSeverityWarning, Message: "odd"},
		{FieldPath: "percentage", Passed: true, Severity: domain.ValidationSeverityWarning},
	}

	statuses := ComputeFieldStatuses(entries)

	require.Contains(t, statuses, "grade")
	assert.Equal(t, domain.FieldStatusInvalid, statuses["grade"].Status)
	assert.Len(t, statuses["grade"].Messages, 2)
	assert.Equal(t, domain.FieldStatusValid, statuses["percentage"].Status)
	assert.Empty(t, statuses["percentage"].Messages)
}

func TestRegistry_OrderAndLookup(t *testing.T) {
	reg := DefaultRegistry()

	all := reg.All()
	require.NotEmpty(t, all)
	assert.Equal(t, "roll_number_format", all[0].RuleKey())

	assert.NotNil(t, reg.Get("percentage_consistency"))
	assert.Nil(t, reg.Get("nope"))
}
