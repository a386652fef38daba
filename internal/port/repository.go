package port

import (
	"context"

	"github.com/google/uuid"

	"marksight/internal/domain"
)

// FileMetaRepository persists metadata about uploaded marksheet images.
type FileMetaRepository interface {
	Create(ctx context.Context, meta *domain.FileMeta) error
	GetByID(ctx context.Context, fileID uuid.UUID) (*domain.FileMeta, error)
	List(ctx context.Context, offset, limit int) ([]domain.FileMeta, int, error)
	UpdateStatus(ctx context.Context, fileID uuid.UUID, status domain.FileStatus) error
	Delete(ctx context.Context, fileID uuid.UUID) error
}

// ExtractionRepository persists extraction history.
type ExtractionRepository interface {
	Create(ctx context.Context, ext *domain.Extraction) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Extraction, error)
	ListByFile(ctx context.Context, fileID uuid.UUID, offset, limit int) ([]domain.Extraction, int, error)
	List(ctx context.Context, offset, limit int) ([]domain.Extraction, int, error)
}
