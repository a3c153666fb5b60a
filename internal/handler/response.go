package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ALIKZH777/dgdocs/internal/domain"
	"github.com/ALIKZH777/dgdocs/internal/middleware"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondCreated sends a 201 success response.
func RespondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", "resource not found"
	case errors.Is(err, domain.ErrUnsupportedFileType):
		return http.StatusBadRequest, "UNSUPPORTED_FILE_TYPE", "unsupported file type; only docx templates are accepted"
	case errors.Is(err, domain.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "file exceeds maximum allowed size"
	case errors.Is(err, domain.ErrTemplateCorrupt):
		return http.StatusBadRequest, "TEMPLATE_CORRUPT", "template container is not a readable document package"
	case errors.Is(err, domain.ErrMissingDocumentPart):
		return http.StatusBadRequest, "MISSING_DOCUMENT_PART", "template container has no document body part"
	case errors.Is(err, domain.ErrEmptyQueue):
		return http.StatusBadRequest, "EMPTY_QUEUE", "no records queued for this template"
	case errors.Is(err, domain.ErrQueueFull):
		return http.StatusBadRequest, "QUEUE_FULL", "record queue is full"
	case errors.Is(err, domain.ErrFieldNotDetected):
		return http.StatusBadRequest, "FIELD_NOT_DETECTED", "selected field was not detected in the template"
	case errors.Is(err, domain.ErrIncompleteRecord):
		return http.StatusBadRequest, "INCOMPLETE_RECORD", "record is missing a value for a selected field"
	case errors.Is(err, domain.ErrBatchRunning):
		return http.StatusConflict, "BATCH_RUNNING", "a batch run is already in progress for this template"
	case errors.Is(err, domain.ErrArchiveFinalize):
		return http.StatusInternalServerError, "ARCHIVE_FINALIZE_FAILED", "output archive finalization failed"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// HandleError maps a domain error and sends the appropriate error response.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if status >= 500 {
		requestID, _ := c.Get(middleware.RequestIDKey)
		log.Printf("handler.HandleError: [%v] internal error: %v", requestID, err)
	}
	RespondError(c, status, code, msg)
}
