package csvexport

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"
)

// BOM is prepended to exports so Excel on Windows reads them as UTF-8.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// Writer wraps csv.Writer for exporting flattened rows as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter wraps w in a CSV writer for flattened marksheet rows.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteRow writes a header line followed by the row's values. Each row in
// this format is self-describing: the column set varies with the number of
// extracted sections, so the header travels with the row.
func (w *Writer) WriteRow(row TabularRow) error {
	if err := w.csv.Write(row.Names()); err != nil {
		return err
	}
	return w.csv.Write(row.Values())
}

// Flush drains buffered output to the underlying writer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error reports any write error seen since the last Flush.
func (w *Writer) Error() error {
	return w.csv.Error()
}

var (
	nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)
	multiUnderscore = regexp.MustCompile(`_{2,}`)
)

const maxFilenameLen = 100

// SanitizeFilename makes a name safe for filesystem paths and the
// Content-Disposition header. Anything outside [a-zA-Z0-9_-] becomes an
// underscore, runs of underscores collapse, and the result is capped at
// maxFilenameLen characters.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > maxFilenameLen {
		s = s[:maxFilenameLen]
	}
	return s
}

// BuildFilename returns the export filename for a given timestamp.
// Format: marksheet_data_{YYYYMMDD_HHMMSS}.csv
func BuildFilename(t time.Time) string {
	return fmt.Sprintf("marksheet_data_%s.csv", t.Format("20060102_150405"))
}
