package domain

// FileType represents the allowed image types for upload.
type FileType string

const (
	FileTypePNG  FileType = "png"
	FileTypeJPG  FileType = "jpg"
	FileTypeBMP  FileType = "bmp"
	FileTypeTIFF FileType = "tiff"
)

// AllowedFileTypes maps FileType to its MIME content type.
var AllowedFileTypes = map[FileType]string{
	FileTypePNG:  "image/png",
	FileTypeJPG:  "image/jpeg",
	FileTypeBMP:  "image/bmp",
	FileTypeTIFF: "image/tiff",
}

// AllowedContentTypes maps MIME content types back to FileType.
var AllowedContentTypes = map[string]FileType{
	"image/png":  FileTypePNG,
	"image/jpeg": FileTypeJPG,
	"image/bmp":  FileTypeBMP,
	"image/tiff": FileTypeTIFF,
}

// AllowedExtensions maps file extensions (without dot) to FileType.
var AllowedExtensions = map[string]FileType{
	"png":  FileTypePNG,
	"jpg":  FileTypeJPG,
	"jpeg": FileTypeJPG,
	"bmp":  FileTypeBMP,
	"tiff": FileTypeTIFF,
}

// FileStatus represents the lifecycle of an uploaded file.
type FileStatus string

const (
	FileStatusPending  FileStatus = "pending"
	FileStatusUploaded FileStatus = "uploaded"
	FileStatusFailed   FileStatus = "failed"
	FileStatusDeleted  FileStatus = "deleted"
)

// ExtractionStatus describes how a pipeline invocation ended. Parse failures
// do not abort the pipeline, so they get their own terminal status instead of
// an error.
type ExtractionStatus string

const (
	ExtractionStatusCompleted   ExtractionStatus = "completed"
	ExtractionStatusParseFailed ExtractionStatus = "parse_failed"
)

// ValidationRuleType classifies built-in validation rules.
type ValidationRuleType string

const (
	ValidationRuleRegex       ValidationRuleType = "regex"
	ValidationRuleConsistency ValidationRuleType = "consistency"
)

// ValidationSeverity classifies advisory validation findings.
type ValidationSeverity string

const (
	ValidationSeverityError   ValidationSeverity = "error"
	ValidationSeverityWarning ValidationSeverity = "warning"
)

// ValidationStatus is the aggregate outcome of running all advisory rules.
type ValidationStatus string

const (
	ValidationStatusValid    ValidationStatus = "valid"
	ValidationStatusWarnings ValidationStatus = "warnings"
	ValidationStatusInvalid  ValidationStatus = "invalid"
)

// FieldValidationStatus is the per-field rollup shown alongside a record.
type FieldValidationStatus string

const (
	FieldStatusValid   FieldValidationStatus = "valid"
	FieldStatusUnsure  FieldValidationStatus = "unsure"
	FieldStatusInvalid FieldValidationStatus = "invalid"
)
