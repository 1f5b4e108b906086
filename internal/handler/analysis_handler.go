package handler

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"

	"subcheck/internal/csvexport"
	"subcheck/internal/domain"
	"subcheck/internal/service"
)

// AnalysisHandler handles the two phase endpoints and the report export.
type AnalysisHandler struct {
	sessions service.SessionService
	analysis service.AnalysisService
}

// NewAnalysisHandler creates a new AnalysisHandler.
func NewAnalysisHandler(sessions service.SessionService, analysis service.AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{sessions: sessions, analysis: analysis}
}

// CheckCompleteness handles POST /api/v1/sessions/:id/completeness
func (h *AnalysisHandler) CheckCompleteness(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	result, err := h.analysis.CheckCompleteness(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, result)
}

// RunAnalysis handles POST /api/v1/sessions/:id/analysis
func (h *AnalysisHandler) RunAnalysis(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	result, err := h.analysis.RunAnalysis(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, result)
}

// ExportCSV handles GET /api/v1/sessions/:id/analysis/export
func (h *AnalysisHandler) ExportCSV(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	sess, err := h.sessions.Get(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	if sess.Analysis == nil {
		HandleError(c, domain.ErrResultNotAvailable)
		return
	}

	var buf bytes.Buffer
	if err := csvexport.NewWriter(&buf).WriteReport(sess.Analysis); err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+csvexport.Filename+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}
