package csvexport

import (
	"fmt"

	"marksight/internal/domain"
	"marksight/internal/validator/marksheet"
)

// missingMark fills marks columns when a section entry has no value.
const missingMark = "N/A"

// Cell is one named column value in a flattened row.
type Cell struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// TabularRow is an ordered list of cells: the nine fixed base columns followed
// by two columns per extracted section. Order is significant; duplicate column
// names are allowed and kept as-is.
type TabularRow []Cell

// Names returns the column names in order.
func (r TabularRow) Names() []string {
	out := make([]string, len(r))
	for i, c := range r {
		out[i] = c.Name
	}
	return out
}

// Values returns the column values in order.
func (r TabularRow) Values() []string {
	out := make([]string, len(r))
	for i, c := range r {
		out[i] = c.Value
	}
	return out
}

// Get returns the value of the first column with the given name.
func (r TabularRow) Get(name string) (string, bool) {
	for _, c := range r {
		if c.Name == name {
			return c.Value, true
		}
	}
	return "", false
}

// baseColumns are the nine fixed columns every row starts with.
var baseColumns = []string{
	"RRN",
	"Student_Name",
	"Class",
	"School",
	"Academic_Year",
	"Total_Marks",
	"Total_Max_Marks",
	"Percentage",
	"Grade",
}

// Flatten converts one record into a TabularRow. Section columns are named
// from the subject via clean-identifier rules; a subject that cleans to the
// placeholder gets a positional Subject_<i+1> stem instead. Error records
// flatten like any other record, their base columns carrying the sentinel and
// error marker values set at parse time.
func Flatten(rec *domain.MarksheetRecord) (row TabularRow) {
	defer func() {
		if r := recover(); r != nil {
			row = ErrorRow(fmt.Sprintf("flatten panic: %v", r), fmt.Sprintf("%+v", rec))
		}
	}()

	row = make(TabularRow, 0, len(baseColumns)+2*len(rec.Sections))
	row = append(row,
		Cell{"RRN", rec.RollNumber},
		Cell{"Student_Name", rec.StudentName},
		Cell{"Class", rec.ClassLabel},
		Cell{"School", rec.School},
		Cell{"Academic_Year", rec.AcademicYear},
		Cell{"Total_Marks", rec.TotalObtained},
		Cell{"Total_Max_Marks", rec.TotalMax},
		Cell{"Percentage", rec.Percentage},
		Cell{"Grade", rec.Grade},
	)

	for i, s := range rec.Sections {
		stem := marksheet.CleanIdentifier(s.Subject)
		if stem == marksheet.PlaceholderField {
			stem = fmt.Sprintf("Subject_%d", i+1)
		}
		row = append(row,
			Cell{stem + "_Marks", orMissing(s.MarksObtained)},
			Cell{stem + "_Max", orMissing(s.MaxMarks)},
		)
	}

	return row
}

// ErrorRow is the single-row fallback emitted when flattening itself fails,
// so the sink always receives a well-formed row.
func ErrorRow(message, rawData string) TabularRow {
	return TabularRow{
		Cell{"RRN", "Error"},
		Cell{"Error_Message", message},
		Cell{"Raw_Data", rawData},
	}
}

func orMissing(v string) string {
	if v == "" {
		return missingMark
	}
	return v
}
