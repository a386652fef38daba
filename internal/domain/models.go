package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// NotAvailable is the sentinel value used in place of fields the model could
// not read off the marksheet. Downstream stages rely on every record field
// being present, so unknowns carry this value instead of being absent.
const NotAvailable = "Not Available"

// SectionMark is one subject's obtained/maximum marks pair. Sequence order is
// preserved because it drives deterministic CSV column naming.
type SectionMark struct {
	Subject       string `json:"subject"`
	MarksObtained string `json:"marks_obtained"`
	MaxMarks      string `json:"max_marks"`
}

// MarksheetRecord is the canonical structured result of interpreting one
// marksheet image. Mark values stay strings: the source document may carry
// "Not Available", fractions like "85/100", or plain numeric text.
type MarksheetRecord struct {
	RollNumber     string        `json:"roll_number"`
	StudentName    string        `json:"student_name"`
	ClassLabel     string        `json:"class_label"`
	School         string        `json:"school"`
	AcademicYear   string        `json:"academic_year"`
	Sections       []SectionMark `json:"sections"`
	TotalObtained  string        `json:"total_obtained"`
	TotalMax       string        `json:"total_max"`
	Percentage     string        `json:"percentage"`
	Grade          string        `json:"grade,omitempty"`
	AdditionalInfo string        `json:"additional_info,omitempty"`
	IsError        bool          `json:"is_error"`
	ErrorMessage   string        `json:"error_message,omitempty"`
	RawResponse    string        `json:"raw_response,omitempty"`
}

// NewMarksheetRecord returns a record with every field set to its sentinel.
func NewMarksheetRecord() MarksheetRecord {
	return MarksheetRecord{
		RollNumber:    NotAvailable,
		StudentName:   NotAvailable,
		ClassLabel:    NotAvailable,
		School:        NotAvailable,
		AcademicYear:  NotAvailable,
		Sections:      []SectionMark{},
		TotalObtained: NotAvailable,
		TotalMax:      NotAvailable,
		Percentage:    NotAvailable,
		Grade:         NotAvailable,
	}
}

// ErrorMarksheetRecord builds the error-tagged record substituted when the
// model's output cannot be parsed. The raw text is retained for diagnostics.
func ErrorMarksheetRecord(msg, raw string) MarksheetRecord {
	rec := NewMarksheetRecord()
	rec.RollNumber = "Extraction Failed"
	rec.IsError = true
	rec.ErrorMessage = msg
	rec.RawResponse = raw
	return rec
}

// Extraction represents one completed pipeline invocation linked to an
// uploaded file: the extracted record, its advisory validation report, and the
// CSV artifact it produced.
type Extraction struct {
	ID           uuid.UUID        `db:"id" json:"id"`
	FileID       uuid.UUID        `db:"file_id" json:"file_id"`
	Provider     string           `db:"provider" json:"provider"`
	Model        string           `db:"model" json:"model"`
	Prompt       string           `db:"prompt" json:"prompt"`
	Record       json.RawMessage  `db:"record" json:"record"`
	Validation   json.RawMessage  `db:"validation" json:"validation"`
	Status       ExtractionStatus `db:"status" json:"status"`
	ErrorMessage string           `db:"error_message" json:"error_message"`
	CSVPath      string           `db:"csv_path" json:"csv_path"`
	CreatedAt    time.Time        `db:"created_at" json:"created_at"`
}

// FileMeta stores metadata about an uploaded marksheet image.
type FileMeta struct {
	ID           uuid.UUID  `db:"id" json:"id"`
	FileName     string     `db:"file_name" json:"file_name"`
	OriginalName string     `db:"original_name" json:"original_name"`
	FileType     FileType   `db:"file_type" json:"file_type"`
	FileSize     int64      `db:"file_size" json:"file_size"`
	S3Bucket     string     `db:"s3_bucket" json:"s3_bucket"`
	S3Key        string     `db:"s3_key" json:"s3_key"`
	ContentType  string     `db:"content_type" json:"content_type"`
	Status       FileStatus `db:"status" json:"status"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}
