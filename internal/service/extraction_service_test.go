package service_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"marksight/internal/csvexport"
	"marksight/internal/domain"
	"marksight/internal/port"
	"marksight/internal/service"
	"marksight/internal/validator"
	"marksight/mocks"
)

// 1x1 transparent PNG.
const tinyPNGBase64 = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mP8z8BQDwAEhQGAhKmMIQAAAABJRU5ErkJggg=="

func tinyPNG(t *testing.T) []byte {
	t.Helper()
	data, err := base64.StdEncoding.DecodeString(tinyPNGBase64)
	require.NoError(t, err)
	return data
}

type pipelineFixture struct {
	fileRepo   *mocks.MockFileMetaRepo
	extRepo    *mocks.MockExtractionRepo
	storage    *mocks.MockObjectStorage
	marksheets *mocks.MockMarksheetExtractor
	svc        service.ExtractionService
}

func newPipelineFixture(t *testing.T) *pipelineFixture {
	t.Helper()
	sink, err := csvexport.NewFileSink(t.TempDir())
	require.NoError(t, err)

	f := &pipelineFixture{
		fileRepo:   new(mocks.MockFileMetaRepo),
		extRepo:    new(mocks.MockExtractionRepo),
		storage:    new(mocks.MockObjectStorage),
		marksheets: new(mocks.MockMarksheetExtractor),
	}
	f.svc = service.NewExtractionService(
		f.fileRepo, f.extRepo, f.storage, f.marksheets,
		validator.NewEngine(validator.DefaultRegistry()),
		sink, "perplexity",
	)
	return f
}

func (f *pipelineFixture) expectFileAndImage(t *testing.T, fileID uuid.UUID, image []byte) {
	t.Helper()
	meta := &domain.FileMeta{
		ID:       fileID,
		S3Bucket: "marksheets-test",
		S3Key:    "marksheets/" + fileID.String() + "/m.png",
	}
	f.fileRepo.On("GetByID", mock.Anything, fileID).Return(meta, nil)
	f.storage.On("Download", mock.Anything, meta.S3Bucket, meta.S3Key).Return(image, nil)
}

func TestExtractionService_ExtractFromFile_Success(t *testing.T) {
	f := newPipelineFixture(t)
	fileID := uuid.New()
	f.expectFileAndImage(t, fileID, tinyPNG(t))

	rec := domain.NewMarksheetRecord()
	rec.RollNumber = "R123"
	rec.StudentName = "Asha Verma"
	rec.Sections = []domain.SectionMark{{Subject: "Math", MarksObtained: "40", MaxMarks: "50"}}
	rec.TotalObtained = "40"
	rec.TotalMax = "50"
	rec.Percentage = "80"

	f.marksheets.On("Extract", mock.Anything, mock.AnythingOfType("port.ExtractInput")).
		Return(&port.ExtractOutput{Record: rec, ModelUsed: "test-model", PromptUsed: "p"}, nil)
	f.extRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Extraction")).Return(nil)

	result, err := f.svc.ExtractFromFile(context.Background(), fileID)

	require.NoError(t, err)
	assert.Equal(t, domain.ExtractionStatusCompleted, result.Extraction.Status)
	assert.Equal(t, "perplexity", result.Extraction.Provider)
	assert.Equal(t, "test-model", result.Extraction.Model)
	assert.Equal(t, domain.ValidationStatusValid, result.Report.Status)
	assert.NotEmpty(t, result.CSVPath)

	v, ok := result.Row.Get("Math_Marks")
	require.True(t, ok)
	assert.Equal(t, "40", v)

	var stored domain.MarksheetRecord
	require.NoError(t, json.Unmarshal(result.Extraction.Record, &stored))
	assert.Equal(t, "R123", stored.RollNumber)
	f.extRepo.AssertExpectations(t)
}

func TestExtractionService_ExtractFromFile_ParseFailure(t *testing.T) {
	f := newPipelineFixture(t)
	fileID := uuid.New()
	f.expectFileAndImage(t, fileID, tinyPNG(t))

	rec := domain.ErrorMarksheetRecord("no JSON object found in response", "plain text")
	f.marksheets.On("Extract", mock.Anything, mock.AnythingOfType("port.ExtractInput")).
		Return(&port.ExtractOutput{Record: rec, ModelUsed: "test-model"}, nil)
	f.extRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Extraction")).Return(nil)

	result, err := f.svc.ExtractFromFile(context.Background(), fileID)

	require.NoError(t, err)
	assert.Equal(t, domain.ExtractionStatusParseFailed, result.Extraction.Status)
	assert.Equal(t, "no JSON object found in response", result.Extraction.ErrorMessage)
	// The CSV artifact is still produced for error records.
	assert.NotEmpty(t, result.CSVPath)

	v, _ := result.Row.Get("RRN")
	assert.Equal(t, "Extraction Failed", v)
}

func TestExtractionService_ExtractFromFile_FileNotFound(t *testing.T) {
	f := newPipelineFixture(t)
	fileID := uuid.New()
	f.fileRepo.On("GetByID", mock.Anything, fileID).Return(nil, domain.ErrNotFound)

	_, err := f.svc.ExtractFromFile(context.Background(), fileID)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestExtractionService_ExtractFromFile_UndecodableImage(t *testing.T) {
	f := newPipelineFixture(t)
	fileID := uuid.New()
	f.expectFileAndImage(t, fileID, []byte("not an image"))

	_, err := f.svc.ExtractFromFile(context.Background(), fileID)

	assert.ErrorIs(t, err, domain.ErrImageDecode)
}

func TestExtractionService_ExtractFromFile_ExtractorError(t *testing.T) {
	f := newPipelineFixture(t)
	fileID := uuid.New()
	f.expectFileAndImage(t, fileID, tinyPNG(t))

	f.marksheets.On("Extract", mock.Anything, mock.AnythingOfType("port.ExtractInput")).
		Return(nil, assert.AnError)

	_, err := f.svc.ExtractFromFile(context.Background(), fileID)

	assert.ErrorIs(t, err, domain.ErrExtractorFailed)
}
