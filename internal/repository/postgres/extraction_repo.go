package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"marksight/internal/domain"
	"marksight/internal/port"
)

type extractionRepo struct {
	db *sqlx.DB
}

// NewExtractionRepo creates a new PostgreSQL-backed ExtractionRepository.
func NewExtractionRepo(db *sqlx.DB) port.ExtractionRepository {
	return &extractionRepo{db: db}
}

func (r *extractionRepo) Create(ctx context.Context, ext *domain.Extraction) error {
	ext.CreatedAt = time.Now().UTC()

	query := `INSERT INTO extractions
		(id, file_id, provider, model, prompt, record, validation,
		 status, error_message, csv_path, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.db.ExecContext(ctx, query,
		ext.ID, ext.FileID, ext.Provider, ext.Model, ext.Prompt,
		ext.Record, ext.Validation, ext.Status, ext.ErrorMessage,
		ext.CSVPath, ext.CreatedAt)
	if err != nil {
		return fmt.Errorf("extractionRepo.Create: %w", err)
	}
	return nil
}

func (r *extractionRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Extraction, error) {
	var ext domain.Extraction
	err := r.db.GetContext(ctx, &ext,
		"SELECT * FROM extractions WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("extractionRepo.GetByID: %w", err)
	}
	return &ext, nil
}

func (r *extractionRepo) ListByFile(ctx context.Context, fileID uuid.UUID, offset, limit int) ([]domain.Extraction, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM extractions WHERE file_id = $1", fileID)
	if err != nil {
		return nil, 0, fmt.Errorf("extractionRepo.ListByFile count: %w", err)
	}

	var exts []domain.Extraction
	err = r.db.SelectContext(ctx, &exts,
		`SELECT * FROM extractions
		 WHERE file_id = $1
		 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		fileID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("extractionRepo.ListByFile: %w", err)
	}
	return exts, total, nil
}

func (r *extractionRepo) List(ctx context.Context, offset, limit int) ([]domain.Extraction, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM extractions")
	if err != nil {
		return nil, 0, fmt.Errorf("extractionRepo.List count: %w", err)
	}

	var exts []domain.Extraction
	err = r.db.SelectContext(ctx, &exts,
		"SELECT * FROM extractions ORDER BY created_at DESC LIMIT $1 OFFSET $2",
		limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("extractionRepo.List: %w", err)
	}
	return exts, total, nil
}
