package csvexport

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildFilename(t *testing.T) {
	ts := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
	assert.Equal(t, "marksheet_data_20250314_092653.csv", BuildFilename(ts))
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"report card.pdf", "report_card_pdf"},
		{"résumé!!final", "r_sum_final"},
		{"already_clean-name", "already_clean-name"},
		{"__trimmed__", "trimmed"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SanitizeFilename(tt.in), tt.in)
	}
}

func TestSanitizeFilename_Truncates(t *testing.T) {
	long := make([]byte, 150)
	for i := range long {
		long[i] = 'a'
	}
	got := SanitizeFilename(string(long))
	assert.Len(t, got, 100)
}

func TestWriterWriteRow(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	row := TabularRow{
		{Name: "RRN", Value: "R123"},
		{Name: "Student_Name", Value: "Asha, Verma"},
	}
	require.NoError(t, w.WriteRow(row))
	w.Flush()
	require.NoError(t, w.Error())

	assert.Equal(t, "RRN,Student_Name\nR123,\"Asha, Verma\"\n", buf.String())
}
