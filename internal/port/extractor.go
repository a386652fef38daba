package port

import (
	"context"

	"marksight/internal/domain"
)

// ExtractInput carries one built extraction request. The base64 payload and
// prompt are prepared once by the request builder; providers that shell out to
// local tooling use the raw bytes instead.
type ExtractInput struct {
	ImageBytes  []byte
	ImageBase64 string
	Prompt      string
	ContentType string
}

// ExtractOutput contains the structured result from one boundary call.
// RawResponse is the model's verbatim text, kept for diagnostics.
type ExtractOutput struct {
	Record      domain.MarksheetRecord
	RawResponse string
	ModelUsed   string
	PromptUsed  string
}

// MarksheetExtractor abstracts the "extract a record from an image" boundary.
// An error return means the call itself failed (transport, non-2xx status);
// unparseable model output is absorbed into an error-tagged record instead.
type MarksheetExtractor interface {
	Extract(ctx context.Context, input ExtractInput) (*ExtractOutput, error)
}
