package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"subcheck/internal/domain"
	"subcheck/internal/ingest"
	"subcheck/internal/service"
)

// FileHandler handles master list and datasheet upload endpoints.
type FileHandler struct {
	sessions service.SessionService
	ingestor *ingest.Ingestor
}

// NewFileHandler creates a new FileHandler.
func NewFileHandler(sessions service.SessionService, ingestor *ingest.Ingestor) *FileHandler {
	return &FileHandler{sessions: sessions, ingestor: ingestor}
}

// SetMasterList handles PUT /api/v1/sessions/:id/master
func (h *FileHandler) SetMasterList(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return
	}
	defer func() { _ = file.Close() }()

	ingested, err := h.ingestor.Ingest(file, header)
	if err != nil {
		HandleError(c, err)
		return
	}

	sess, err := h.sessions.SetMasterList(c.Request.Context(), id, ingested)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, sess)
}

// AddDatasheets handles POST /api/v1/sessions/:id/datasheets
// Accepts one or more files under the "files" field. The whole batch is
// rejected if any single file fails ingestion.
func (h *FileHandler) AddDatasheets(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "multipart form is required")
		return
	}
	headers := form.File["files"]
	if len(headers) == 0 {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "at least one file is required under the files field")
		return
	}

	ingested := make([]domain.IngestedFile, 0, len(headers))
	for _, header := range headers {
		f, err := header.Open()
		if err != nil {
			HandleError(c, err)
			return
		}
		file, err := h.ingestor.Ingest(f, header)
		_ = f.Close()
		if err != nil {
			HandleError(c, err)
			return
		}
		ingested = append(ingested, *file)
	}

	sess, err := h.sessions.AddDatasheets(c.Request.Context(), id, ingested)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, sess)
}

// ListDatasheets handles GET /api/v1/sessions/:id/datasheets
func (h *FileHandler) ListDatasheets(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	sess, err := h.sessions.Get(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, sess.Datasheets)
}

// RemoveDatasheet handles DELETE /api/v1/sessions/:id/datasheets/:fileID
func (h *FileHandler) RemoveDatasheet(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	fileID, err := uuid.Parse(c.Param("fileID"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "file id must be a valid UUID")
		return
	}

	sess, err := h.sessions.RemoveDatasheet(c.Request.Context(), id, fileID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, sess)
}
