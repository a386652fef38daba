package claude

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marksight/internal/config"
	"marksight/internal/extractor"
	"marksight/internal/port"
)

func testConfig() *config.ExtractorProviderConfig {
	return &config.ExtractorProviderConfig{
		Provider:    "claude",
		APIKey:      "test-key",
		TimeoutSecs: 5,
	}
}

func testInput() port.ExtractInput {
	return port.ExtractInput{
		ImageBase64: "aGVsbG8=",
		Prompt:      "extract the marksheet",
		ContentType: "image/jpeg",
	}
}

func messagesResponse(text string) map[string]interface{} {
	return map[string]interface{}{
		"content": []map[string]interface{}{
			{"type": "text", "text": text},
		},
		"stop_reason": "end_turn",
	}
}

func TestExtract_Success(t *testing.T) {
	var gotAPIKey, gotVersion string
	var gotBody struct {
		Model    string `json:"model"`
		Messages []struct {
			Content []struct {
				Type   string `json:"type"`
				Source struct {
					MediaType string `json:"media_type"`
					Data      string `json:"data"`
				} `json:"source"`
			} `json:"content"`
		} `json:"messages"`
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAPIKey = r.Header.Get("x-api-key")
		gotVersion = r.Header.Get("anthropic-version")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_ = json.NewEncoder(w).Encode(messagesResponse(`{"rrn":"R7","student_name":"Kiran"}`))
	}))
	defer srv.Close()

	e := NewExtractorWithEndpoint(testConfig(), srv.URL)
	out, err := e.Extract(context.Background(), testInput())
	require.NoError(t, err)

	assert.Equal(t, "test-key", gotAPIKey)
	assert.Equal(t, "2023-06-01", gotVersion)
	assert.Equal(t, "claude-sonnet-4-20250514", gotBody.Model)
	require.Len(t, gotBody.Messages, 1)
	require.Len(t, gotBody.Messages[0].Content, 2)
	assert.Equal(t, "image", gotBody.Messages[0].Content[0].Type)
	assert.Equal(t, "image/jpeg", gotBody.Messages[0].Content[0].Source.MediaType)
	assert.Equal(t, "aGVsbG8=", gotBody.Messages[0].Content[0].Source.Data)

	assert.Equal(t, "R7", out.Record.RollNumber)
	assert.Equal(t, "Kiran", out.Record.StudentName)
}

func TestExtract_RejectsUnsupportedContentType(t *testing.T) {
	input := testInput()
	input.ContentType = "image/tiff"

	e := NewExtractorWithEndpoint(testConfig(), "http://unused")
	_, err := e.Extract(context.Background(), input)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported content type")
}

func TestExtract_RateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "10")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	e := NewExtractorWithEndpoint(testConfig(), srv.URL)
	_, err := e.Extract(context.Background(), testInput())
	require.Error(t, err)

	var rlErr *extractor.RateLimitError
	require.ErrorAs(t, err, &rlErr)
	assert.Equal(t, "claude", rlErr.Provider)
	assert.Equal(t, 10.0, rlErr.RetryAfter.Seconds())
}

func TestExtract_EmptyContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"content": []interface{}{}})
	}))
	defer srv.Close()

	e := NewExtractorWithEndpoint(testConfig(), srv.URL)
	_, err := e.Extract(context.Background(), testInput())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty response")
}
