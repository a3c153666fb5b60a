package handler

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ALIKZH777/dgdocs/internal/batch"
	"github.com/ALIKZH777/dgdocs/internal/domain"
	"github.com/ALIKZH777/dgdocs/internal/recordsheet"
	"github.com/ALIKZH777/dgdocs/internal/service"
)

// BatchHandler handles record queue and batch run endpoints.
type BatchHandler struct {
	batchService service.BatchService
	sheetReader  *recordsheet.Reader
}

// NewBatchHandler creates a new BatchHandler.
func NewBatchHandler(batchService service.BatchService, sheetReader *recordsheet.Reader) *BatchHandler {
	return &BatchHandler{batchService: batchService, sheetReader: sheetReader}
}

type addRecordRequest struct {
	ID             string            `json:"id"`
	SelectedFields []string          `json:"selected_fields" binding:"required,min=1"`
	NewValues      map[string]string `json:"new_values" binding:"required"`
}

// AddRecord handles POST /api/v1/templates/:id/records.
func (h *BatchHandler) AddRecord(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req addRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_BODY", "selected_fields and new_values are required")
		return
	}
	rec, err := h.batchService.AddRecord(c.Request.Context(), id, domain.ReplacementRecord{
		ID:             req.ID,
		SelectedFields: req.SelectedFields,
		NewValues:      req.NewValues,
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, rec)
}

// ImportRecords handles POST /api/v1/templates/:id/records/import. Accepts
// a multipart "file" holding an .xlsx or .csv record sheet.
func (h *BatchHandler) ImportRecords(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return
	}
	defer func() { _ = file.Close() }()

	var records []domain.ReplacementRecord
	switch strings.ToLower(filepath.Ext(header.Filename)) {
	case ".xlsx":
		records, err = h.sheetReader.ReadXLSX(file)
	case ".csv":
		records, err = h.sheetReader.ReadCSV(file)
	default:
		RespondError(c, http.StatusBadRequest, "UNSUPPORTED_FILE_TYPE", "record sheet must be .xlsx or .csv")
		return
	}
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_SHEET", err.Error())
		return
	}

	added, err := h.batchService.ImportRecords(c.Request.Context(), id, records)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, gin.H{"imported": added, "rows": len(records)})
}

// ListRecords handles GET /api/v1/templates/:id/records.
func (h *BatchHandler) ListRecords(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	records, err := h.batchService.ListRecords(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, records)
}

// RemoveRecord handles DELETE /api/v1/templates/:id/records/:rid.
func (h *BatchHandler) RemoveRecord(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.batchService.RemoveRecord(c.Request.Context(), id, c.Param("rid")); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"removed": c.Param("rid")})
}

// Run handles POST /api/v1/templates/:id/batch. The response body is the
// bundled ZIP archive; per-record counts travel in headers.
func (h *BatchHandler) Run(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	report, err := h.batchService.Run(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	name := batch.BuildArchiveName("documents", time.Now())
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Header("X-Batch-Processed", strconv.Itoa(report.ProcessedCount))
	c.Header("X-Batch-Total", strconv.Itoa(report.TotalCount))
	c.Data(http.StatusOK, "application/zip", report.Archive)
}

// Progress handles GET /api/v1/templates/:id/batch/progress.
func (h *BatchHandler) Progress(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	p, err := h.batchService.Progress(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, p)
}
