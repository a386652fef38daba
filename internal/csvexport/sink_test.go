package csvexport

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock() func() time.Time {
	ts := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
	return func() time.Time { return ts }
}

func TestFileSinkWriteCSV(t *testing.T) {
	dir := t.TempDir()
	sink, err := NewFileSink(dir)
	require.NoError(t, err)
	sink.now = fixedClock()

	row := TabularRow{
		{Name: "RRN", Value: "R123"},
		{Name: "Grade", Value: "A"},
	}
	path, err := sink.WriteCSV(row)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "marksheet_data_20250314_092653.csv"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, BOM))
	assert.Equal(t, "RRN,Grade\nR123,A\n", string(data[len(BOM):]))
}

func TestFileSinkWriteCSV_CollisionSuffix(t *testing.T) {
	dir := t.TempDir()
	sink, err := NewFileSink(dir)
	require.NoError(t, err)
	sink.now = fixedClock()

	row := TabularRow{{Name: "RRN", Value: "R1"}}

	first, err := sink.WriteCSV(row)
	require.NoError(t, err)
	second, err := sink.WriteCSV(row)
	require.NoError(t, err)
	third, err := sink.WriteCSV(row)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "marksheet_data_20250314_092653.csv"), first)
	assert.Equal(t, filepath.Join(dir, "marksheet_data_20250314_092653_1.csv"), second)
	assert.Equal(t, filepath.Join(dir, "marksheet_data_20250314_092653_2.csv"), third)
}

func TestNewFileSink_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	_, err := NewFileSink(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
