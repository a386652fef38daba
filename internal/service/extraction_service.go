package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/google/uuid"

	"marksight/internal/csvexport"
	"marksight/internal/domain"
	"marksight/internal/extractor"
	"marksight/internal/port"
	"marksight/internal/validator"
)

// ExtractionResult bundles everything one pipeline run produced.
type ExtractionResult struct {
	Extraction *domain.Extraction     `json:"extraction"`
	Record     domain.MarksheetRecord `json:"record"`
	Report     *validator.Report      `json:"report"`
	Row        csvexport.TabularRow   `json:"row"`
	CSVPath    string                 `json:"csv_path"`
}

// ExtractionService runs the marksheet extraction pipeline and serves its history.
type ExtractionService interface {
	ExtractFromFile(ctx context.Context, fileID uuid.UUID) (*ExtractionResult, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Extraction, error)
	ListByFile(ctx context.Context, fileID uuid.UUID, offset, limit int) ([]domain.Extraction, int, error)
	List(ctx context.Context, offset, limit int) ([]domain.Extraction, int, error)
}

type extractionService struct {
	fileRepo   port.FileMetaRepository
	extRepo    port.ExtractionRepository
	storage    port.ObjectStorage
	marksheets port.MarksheetExtractor
	engine     *validator.Engine
	sink       *csvexport.FileSink
	provider   string
}

// NewExtractionService creates a new ExtractionService implementation.
func NewExtractionService(
	fileRepo port.FileMetaRepository,
	extRepo port.ExtractionRepository,
	storage port.ObjectStorage,
	marksheets port.MarksheetExtractor,
	engine *validator.Engine,
	sink *csvexport.FileSink,
	provider string,
) ExtractionService {
	return &extractionService{
		fileRepo:   fileRepo,
		extRepo:    extRepo,
		storage:    storage,
		marksheets: marksheets,
		engine:     engine,
		sink:       sink,
		provider:   provider,
	}
}

// ExtractFromFile drives the full pipeline for one uploaded marksheet:
// download image, build the extraction input, call the model, validate the
// record, flatten it, write the CSV artifact, and persist the extraction.
// Model output that cannot be parsed is not an error here: it yields an error
// record and a parse_failed extraction, and the CSV is still written.
func (s *extractionService) ExtractFromFile(ctx context.Context, fileID uuid.UUID) (*ExtractionResult, error) {
	meta, err := s.fileRepo.GetByID(ctx, fileID)
	if err != nil {
		return nil, err
	}

	imageBytes, err := s.storage.Download(ctx, meta.S3Bucket, meta.S3Key)
	if err != nil {
		return nil, fmt.Errorf("downloading image: %w", err)
	}

	input, err := extractor.NewExtractInput(imageBytes)
	if err != nil {
		return nil, err
	}

	out, err := s.marksheets.Extract(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrExtractorFailed, err)
	}

	rec := out.Record
	report := s.engine.Validate(ctx, &rec)

	row := csvexport.Flatten(&rec)
	csvPath, err := s.sink.WriteCSV(row)
	if err != nil {
		return nil, fmt.Errorf("writing csv: %w", err)
	}

	recJSON, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("marshaling record: %w", err)
	}
	reportJSON, err := json.Marshal(report)
	if err != nil {
		return nil, fmt.Errorf("marshaling validation report: %w", err)
	}

	status := domain.ExtractionStatusCompleted
	if rec.IsError {
		status = domain.ExtractionStatusParseFailed
	}

	ext := &domain.Extraction{
		ID:           uuid.New(),
		FileID:       fileID,
		Provider:     s.provider,
		Model:        out.ModelUsed,
		Prompt:       out.PromptUsed,
		Record:       recJSON,
		Validation:   reportJSON,
		Status:       status,
		ErrorMessage: rec.ErrorMessage,
		CSVPath:      csvPath,
	}
	if err := s.extRepo.Create(ctx, ext); err != nil {
		return nil, fmt.Errorf("persisting extraction: %w", err)
	}

	log.Printf("extractionService.ExtractFromFile: file %s extracted: status=%s, model=%s, sections=%d, csv=%s",
		fileID, status, out.ModelUsed, len(rec.Sections), csvPath)

	return &ExtractionResult{
		Extraction: ext,
		Record:     rec,
		Report:     report,
		Row:        row,
		CSVPath:    csvPath,
	}, nil
}

func (s *extractionService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Extraction, error) {
	return s.extRepo.GetByID(ctx, id)
}

func (s *extractionService) ListByFile(ctx context.Context, fileID uuid.UUID, offset, limit int) ([]domain.Extraction, int, error) {
	return s.extRepo.ListByFile(ctx, fileID, offset, limit)
}

func (s *extractionService) List(ctx context.Context, offset, limit int) ([]domain.Extraction, int, error) {
	return s.extRepo.List(ctx, offset, limit)
}
