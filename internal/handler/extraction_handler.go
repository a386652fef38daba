package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"marksight/internal/csvexport"
	"marksight/internal/domain"
	"marksight/internal/service"
)

// ExtractionHandler handles extraction pipeline endpoints.
type ExtractionHandler struct {
	extractionService service.ExtractionService
}

// NewExtractionHandler creates a new ExtractionHandler.
func NewExtractionHandler(extractionService service.ExtractionService) *ExtractionHandler {
	return &ExtractionHandler{extractionService: extractionService}
}

// createExtractionRequest is the body for POST /api/v1/extractions.
type createExtractionRequest struct {
	FileID uuid.UUID `json:"file_id" binding:"required"`
}

// Create handles POST /api/v1/extractions
func (h *ExtractionHandler) Create(c *gin.Context) {
	var req createExtractionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "file_id is required")
		return
	}

	result, err := h.extractionService.ExtractFromFile(c.Request.Context(), req.FileID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, result)
}

// GetByID handles GET /api/v1/extractions/:id
func (h *ExtractionHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	ext, err := h.extractionService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, ext)
}

// List handles GET /api/v1/extractions, optionally filtered by file_id.
func (h *ExtractionHandler) List(c *gin.Context) {
	offset, limit := parsePagination(c)

	var (
		exts  []domain.Extraction
		total int
		err   error
	)
	if fileIDStr := c.Query("file_id"); fileIDStr != "" {
		fileID, parseErr := uuid.Parse(fileIDStr)
		if parseErr != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_ID", "file_id must be a valid UUID")
			return
		}
		exts, total, err = h.extractionService.ListByFile(c.Request.Context(), fileID, offset, limit)
	} else {
		exts, total, err = h.extractionService.List(c.Request.Context(), offset, limit)
	}
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, exts, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// DownloadCSV handles GET /api/v1/extractions/:id/csv
func (h *ExtractionHandler) DownloadCSV(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	ext, err := h.extractionService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	if ext.CSVPath == "" {
		RespondError(c, http.StatusNotFound, "NOT_FOUND", "no csv artifact for this extraction")
		return
	}

	c.FileAttachment(ext.CSVPath, filepath.Base(ext.CSVPath))
}

// DownloadXLSX handles GET /api/v1/extractions/:id/xlsx
func (h *ExtractionHandler) DownloadXLSX(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	ext, err := h.extractionService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	var rec domain.MarksheetRecord
	if err := json.Unmarshal(ext.Record, &rec); err != nil {
		HandleError(c, err)
		return
	}

	data, err := csvexport.WriteXLSX(csvexport.Flatten(&rec))
	if err != nil {
		HandleError(c, err)
		return
	}

	filename := fmt.Sprintf("extraction_%s.xlsx", id)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
