package csvexport

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marksight/internal/domain"
)

func TestFlatten_SingleSection(t *testing.T) {
	rec := domain.NewMarksheetRecord()
	rec.RollNumber = "R123"
	rec.StudentName = "Asha Verma"
	rec.ClassLabel = "10-A"
	rec.School = "Springfield High"
	rec.AcademicYear = "2024-25"
	rec.Sections = []domain.SectionMark{
		{Subject: "Math", MarksObtained: "40", MaxMarks: "50"},
	}
	rec.TotalObtained = "40"
	rec.TotalMax = "50"
	rec.Percentage = "80"
	rec.Grade = "A"

	row := Flatten(&rec)

	require.Len(t, row, 11)
	assert.Equal(t, []string{
		"RRN", "Student_Name", "Class", "School", "Academic_Year",
		"Total_Marks", "Total_Max_Marks", "Percentage", "Grade",
		"Math_Marks", "Math_Max",
	}, row.Names())

	v, ok := row.Get("RRN")
	require.True(t, ok)
	assert.Equal(t, "R123", v)
	v, _ = row.Get("Math_Marks")
	assert.Equal(t, "40", v)
	v, _ = row.Get("Math_Max")
	assert.Equal(t, "50", v)
}

func TestFlatten_NoSections(t *testing.T) {
	rec := domain.NewMarksheetRecord()
	rec.RollNumber = "R7"

	row := Flatten(&rec)

	require.Len(t, row, 9)
	v, _ := row.Get("Student_Name")
	assert.Equal(t, domain.NotAvailable, v)
	v, _ = row.Get("Grade")
	assert.Equal(t, domain.NotAvailable, v)
}

func TestFlatten_ErrorRecordKeepsBaseColumns(t *testing.T) {
	rec := domain.ErrorMarksheetRecord("no JSON object found in response", "plain text reply")

	row := Flatten(&rec)

	require.Len(t, row, 9)
	v, _ := row.Get("RRN")
	assert.Equal(t, "Extraction Failed", v)
}

func TestFlatten_PlaceholderSubjectsGetPositionalStems(t *testing.T) {
	rec := domain.NewMarksheetRecord()
	rec.Sections = []domain.SectionMark{
		{Subject: "!!!", MarksObtained: "10", MaxMarks: "20"},
		{Subject: "", MarksObtained: "5", MaxMarks: "10"},
		{Subject: "Science", MarksObtained: "30", MaxMarks: "40"},
	}

	row := Flatten(&rec)

	names := row.Names()
	assert.Contains(t, names, "Subject_1_Marks")
	assert.Contains(t, names, "Subject_1_Max")
	assert.Contains(t, names, "Subject_2_Marks")
	assert.Contains(t, names, "Science_Marks")
}

func TestFlatten_SubjectNamesAreCleaned(t *testing.T) {
	rec := domain.NewMarksheetRecord()
	rec.Sections = []domain.SectionMark{
		{Subject: "Math (Advanced)!!", MarksObtained: "88", MaxMarks: "100"},
	}

	row := Flatten(&rec)

	assert.Contains(t, row.Names(), "Math_Advanced_Marks")
	assert.Contains(t, row.Names(), "Math_Advanced_Max")
}

func TestFlatten_MissingMarksBecomeNA(t *testing.T) {
	rec := domain.NewMarksheetRecord()
	rec.Sections = []domain.SectionMark{
		{Subject: "Art", MarksObtained: "", MaxMarks: ""},
	}

	row := Flatten(&rec)

	v, _ := row.Get("Art_Marks")
	assert.Equal(t, "N/A", v)
	v, _ = row.Get("Art_Max")
	assert.Equal(t, "N/A", v)
}

func TestFlatten_DuplicateSubjectsKeepBothColumns(t *testing.T) {
	rec := domain.NewMarksheetRecord()
	rec.Sections = []domain.SectionMark{
		{Subject: "Hindi", MarksObtained: "70", MaxMarks: "100"},
		{Subject: "Hindi", MarksObtained: "65", MaxMarks: "100"},
	}

	row := Flatten(&rec)

	count := 0
	for _, name := range row.Names() {
		if name == "Hindi_Marks" {
			count++
		}
	}
	assert.Equal(t, 2, count)

	// Get returns the first matching column.
	v, _ := row.Get("Hindi_Marks")
	assert.Equal(t, "70", v)
}

func TestFlatten_RecoversToErrorRow(t *testing.T) {
	row := Flatten(nil)

	require.NotEmpty(t, row)
	v, ok := row.Get("RRN")
	require.True(t, ok)
	assert.Equal(t, "Error", v)
	_, ok = row.Get("Error_Message")
	assert.True(t, ok)
}

func TestErrorRow_Shape(t *testing.T) {
	row := ErrorRow("boom", "raw payload")

	assert.Equal(t, []string{"RRN", "Error_Message", "Raw_Data"}, row.Names())
	assert.Equal(t, []string{"Error", "boom", "raw payload"}, row.Values())
}

func TestTabularRow_GetMiss(t *testing.T) {
	row := TabularRow{{Name: "A", Value: "1"}}
	_, ok := row.Get("B")
	assert.False(t, ok)
}
