package domain

import "errors"

// Sentinel errors crossing the service boundary. The handler layer maps
// each of these onto an HTTP status and error code.
var (
	ErrNotFound            = errors.New("not found")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file too large")
	ErrUploadFailed        = errors.New("object upload failed")
	ErrImageDecode         = errors.New("image decode failed")
	ErrExtractorFailed     = errors.New("extraction provider call failed")
)
