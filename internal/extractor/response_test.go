package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marksight/internal/domain"
)

func TestParseRecord_FencedJSON(t *testing.T) {
	raw := "Here is the data:\n```json\n{\"rrn\":\"R123\",\"sectionwise_marks\":[{\"subject\":\"Math\",\"marks_obtained\":\"40\",\"max_marks\":\"50\"}],\"total_marks\":\"40\"}\n```"

	rec := ParseRecord(raw)

	assert.False(t, rec.IsError)
	assert.Equal(t, "R123", rec.RollNumber)
	assert.Equal(t, domain.NotAvailable, rec.StudentName)
	assert.Equal(t, "40", rec.TotalObtained)
	require.Len(t, rec.Sections, 1)
	assert.Equal(t, "Math", rec.Sections[0].Subject)
	assert.Equal(t, "40", rec.Sections[0].MarksObtained)
	assert.Equal(t, "50", rec.Sections[0].MaxMarks)
	assert.Equal(t, raw, rec.RawResponse)
}

func TestParseRecord_BraceSpan(t *testing.T) {
	raw := `The extraction result is {"rrn":"A1","student_name":"Asha","grade":"A+"} as requested.`

	rec := ParseRecord(raw)

	assert.False(t, rec.IsError)
	assert.Equal(t, "A1", rec.RollNumber)
	assert.Equal(t, "Asha", rec.StudentName)
	assert.Equal(t, "A+", rec.Grade)
}

func TestParseRecord_NoBraces(t *testing.T) {
	rec := ParseRecord("I could not read the marksheet, sorry.")

	assert.True(t, rec.IsError)
	assert.Equal(t, "Extraction Failed", rec.RollNumber)
	assert.NotEmpty(t, rec.ErrorMessage)
	assert.Equal(t, "I could not read the marksheet, sorry.", rec.RawResponse)
}

func TestParseRecord_InvalidJSON(t *testing.T) {
	rec := ParseRecord(`{"rrn": "R1", "student_name": }`)

	assert.True(t, rec.IsError)
	assert.Equal(t, "Extraction Failed", rec.RollNumber)
}

func TestParseRecord_NumericCoercion(t *testing.T) {
	rec := ParseRecord(`{"rrn": 12345, "class": 10, "percentage": 92.5, "total_marks": 463}`)

	assert.False(t, rec.IsError)
	assert.Equal(t, "12345", rec.RollNumber)
	assert.Equal(t, "10", rec.ClassLabel)
	assert.Equal(t, "92.5", rec.Percentage)
	assert.Equal(t, "463", rec.TotalObtained)
}

func TestParseRecord_MissingFieldsDefault(t *testing.T) {
	rec := ParseRecord(`{"student_name": "Ravi"}`)

	assert.False(t, rec.IsError)
	assert.Equal(t, "Ravi", rec.StudentName)
	assert.Equal(t, domain.NotAvailable, rec.RollNumber)
	assert.Equal(t, domain.NotAvailable, rec.ClassLabel)
	assert.Equal(t, domain.NotAvailable, rec.School)
	assert.Equal(t, domain.NotAvailable, rec.AcademicYear)
	assert.Equal(t, domain.NotAvailable, rec.TotalObtained)
	assert.Equal(t, domain.NotAvailable, rec.TotalMax)
	assert.Equal(t, domain.NotAvailable, rec.Percentage)
	assert.Equal(t, domain.NotAvailable, rec.Grade)
	assert.Empty(t, rec.Sections)
	assert.NotNil(t, rec.Sections)
}

func TestParseRecord_NullAndEmptyValues(t *testing.T) {
	rec := ParseRecord(`{"rrn": null, "student_name": "  ", "school": "DPS"}`)

	assert.Equal(t, domain.NotAvailable, rec.RollNumber)
	assert.Equal(t, domain.NotAvailable, rec.StudentName)
	assert.Equal(t, "DPS", rec.School)
}

func TestParseRecord_SkipsMalformedSectionEntries(t *testing.T) {
	rec := ParseRecord(`{"rrn":"R1","sectionwise_marks":[{"subject":"Science","marks_obtained":"88","max_marks":"100"},"garbage",42]}`)

	require.Len(t, rec.Sections, 1)
	assert.Equal(t, "Science", rec.Sections[0].Subject)
}

func TestExtractJSONCandidate_PrefersFence(t *testing.T) {
	raw := "{\"outer\": true} then ```json\n{\"inner\": true}\n```"

	candidate, ok := extractJSONCandidate(raw)
	require.True(t, ok)
	assert.Equal(t, `{"inner": true}`, candidate)
}

func TestExtractJSONCandidate_BareFence(t *testing.T) {
	raw := "```\n{\"a\": 1}\n```"

	candidate, ok := extractJSONCandidate(raw)
	require.True(t, ok)
	assert.Equal(t, `{"a": 1}`, candidate)
}

func TestValidateShape(t *testing.T) {
	assert.NoError(t, ValidateShape(`{"rrn":"R1","student_name":"Asha"}`))
	assert.Error(t, ValidateShape(`{"student_name":"Asha"}`))
	assert.Error(t, ValidateShape("no json here"))
}
