package port

import (
	"context"
	"io"
)

// UploadInput carries one object upload: marksheet image bytes streamed from
// the multipart request, plus the metadata S3 needs.
type UploadInput struct {
	Bucket      string
	Key         string
	Body        io.Reader
	ContentType string
	Size        int64
}

// UploadOutput reports where a successful upload landed.
type UploadOutput struct {
	Location string
	ETag     string
}

// ObjectStorage abstracts the blob store holding uploaded marksheet images.
// Download returns full object bytes because the extraction pipeline needs
// the whole image in memory to base64-encode it.
type ObjectStorage interface {
	Upload(ctx context.Context, input UploadInput) (*UploadOutput, error)
	Download(ctx context.Context, bucket, key string) ([]byte, error)
	Delete(ctx context.Context, bucket, key string) error
	GetPresignedURL(ctx context.Context, bucket, key string, expirySeconds int64) (string, error)
}
