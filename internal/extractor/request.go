package extractor

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"net/http"

	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"marksight/internal/domain"
	"marksight/internal/port"
)

// NewExtractInput validates the image bytes and builds the provider-agnostic
// extraction input: the base64 payload, detected content type, and the
// marksheet prompt. Invalid or undecodable image data fails here, before any
// provider is called.
func NewExtractInput(imageBytes []byte) (port.ExtractInput, error) {
	if len(imageBytes) == 0 {
		return port.ExtractInput{}, fmt.Errorf("build extract input: %w: empty image data", domain.ErrImageDecode)
	}

	if _, format, err := image.DecodeConfig(bytes.NewReader(imageBytes)); err != nil {
		return port.ExtractInput{}, fmt.Errorf("build extract input: %w: %v", domain.ErrImageDecode, err)
	} else if _, ok := domain.AllowedFileTypes[domain.FileType(normalizeFormat(format))]; !ok {
		return port.ExtractInput{}, fmt.Errorf("build extract input: %w: format %q", domain.ErrUnsupportedFileType, format)
	}

	contentType := http.DetectContentType(imageBytes)

	return port.ExtractInput{
		ImageBytes:  imageBytes,
		ImageBase64: base64.StdEncoding.EncodeToString(imageBytes),
		Prompt:      BuildMarksheetPrompt(),
		ContentType: contentType,
	}, nil
}

func normalizeFormat(format string) string {
	if format == "jpeg" {
		return "jpg"
	}
	return format
}
