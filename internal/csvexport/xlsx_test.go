package csvexport

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteXLSX_RoundTrip(t *testing.T) {
	row := TabularRow{
		{Name: "RRN", Value: "R123"},
		{Name: "Student_Name", Value: "Asha Verma"},
		{Name: "Math_Marks", Value: "40"},
	}

	data, err := WriteXLSX(row)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, []string{"Marksheet"}, f.GetSheetList())

	rows, err := f.GetRows("Marksheet")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"RRN", "Student_Name", "Math_Marks"}, rows[0])
	assert.Equal(t, []string{"R123", "Asha Verma", "40"}, rows[1])
}
