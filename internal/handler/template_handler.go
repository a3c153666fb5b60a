package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ALIKZH777/dgdocs/internal/service"
)

// TemplateHandler handles template upload and session endpoints.
type TemplateHandler struct {
	templateService service.TemplateService
}

// NewTemplateHandler creates a new TemplateHandler.
func NewTemplateHandler(templateService service.TemplateService) *TemplateHandler {
	return &TemplateHandler{templateService: templateService}
}

// Upload handles POST /api/v1/templates. The multipart "file" field carries
// the docx template; the response is the session with its detected values.
func (h *TemplateHandler) Upload(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return
	}
	defer func() { _ = file.Close() }()

	session, err := h.templateService.Upload(c.Request.Context(), service.TemplateUploadInput{
		File:   file,
		Header: header,
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, session)
}

// List handles GET /api/v1/templates.
func (h *TemplateHandler) List(c *gin.Context) {
	sessions, err := h.templateService.List(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, sessions)
}

// GetByID handles GET /api/v1/templates/:id.
func (h *TemplateHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	session, err := h.templateService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, session)
}

// Delete handles DELETE /api/v1/templates/:id.
func (h *TemplateHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.templateService.Delete(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"deleted": id})
}

// Fields handles GET /api/v1/fields. An optional template_id query marks
// which catalog fields were detected in that session.
func (h *TemplateHandler) Fields(c *gin.Context) {
	var sessionID *uuid.UUID
	if raw := c.Query("template_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_ID", "template_id is not a valid UUID")
			return
		}
		sessionID = &id
	}
	fields, err := h.templateService.Fields(c.Request.Context(), sessionID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, fields)
}

// parseID extracts the :id path parameter as a UUID. Returns false if
// invalid (error response already written).
func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "id is not a valid UUID")
		return uuid.Nil, false
	}
	return id, true
}
