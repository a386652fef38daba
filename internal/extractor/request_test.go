package extractor

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marksight/internal/domain"
)

// 1x1 transparent PNG.
const tinyPNGBase64 = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mP8z8BQDwAEhQGAhKmMIQAAAABJRU5ErkJggg=="

func tinyPNG(t *testing.T) []byte {
	t.Helper()
	data, err := base64.StdEncoding.DecodeString(tinyPNGBase64)
	require.NoError(t, err)
	return data
}

func TestNewExtractInput_ValidPNG(t *testing.T) {
	imageBytes := tinyPNG(t)

	input, err := NewExtractInput(imageBytes)
	require.NoError(t, err)

	assert.Equal(t, imageBytes, input.ImageBytes)
	assert.Equal(t, tinyPNGBase64, input.ImageBase64)
	assert.Equal(t, "image/png", input.ContentType)
	assert.True(t, strings.Contains(input.Prompt, "RRN"))
	assert.True(t, strings.Contains(input.Prompt, "sectionwise_marks"))
}

func TestNewExtractInput_EmptyData(t *testing.T) {
	_, err := NewExtractInput(nil)
	assert.ErrorIs(t, err, domain.ErrImageDecode)
}

func TestNewExtractInput_NotAnImage(t *testing.T) {
	_, err := NewExtractInput([]byte("definitely not an image"))
	assert.ErrorIs(t, err, domain.ErrImageDecode)
}

func TestNewExtractInput_TruncatedPNG(t *testing.T) {
	imageBytes := tinyPNG(t)
	_, err := NewExtractInput(imageBytes[:8])
	assert.ErrorIs(t, err, domain.ErrImageDecode)
}

func TestBuildMarksheetPrompt_ListsAllFields(t *testing.T) {
	prompt := BuildMarksheetPrompt()

	for _, key := range []string{
		"rrn", "student_name", "class", "school", "academic_year",
		"sectionwise_marks", "subject", "marks_obtained", "max_marks",
		"total_marks", "total_max_marks", "percentage", "grade", "additional_info",
	} {
		assert.Contains(t, prompt, `"`+key+`"`)
	}
	assert.Contains(t, prompt, domain.NotAvailable)
}
