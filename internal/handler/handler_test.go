package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"subcheck/internal/domain"
	"subcheck/internal/handler"
	"subcheck/internal/ingest"
	"subcheck/internal/router"
	"subcheck/internal/service"
	"subcheck/internal/session"
	"subcheck/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newTestRouter wires real services around an in-memory store and the given
// mock generator.
func newTestRouter(gen *mocks.MockGenerator) *gin.Engine {
	store := session.NewStore()
	sessionSvc := service.NewSessionService(store)
	analysisSvc := service.NewAnalysisService(store, gen, 0.1)
	ingestor := ingest.New(25)

	return router.Setup(
		nil,
		handler.NewSessionHandler(sessionSvc),
		handler.NewFileHandler(sessionSvc, ingestor),
		handler.NewAnalysisHandler(sessionSvc, analysisSvc),
		handler.NewHealthHandler(true),
	)
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body *bytes.Buffer, contentType string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	if body == nil {
		body = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	if w.Header().Get("Content-Type") != "" && w.Body.Len() > 0 &&
		w.Header().Get("Content-Disposition") == "" {
		_ = json.Unmarshal(w.Body.Bytes(), &env)
	}
	return w, env
}

func multipartBody(t *testing.T, field string, files map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for name, content := range files {
		h := textproto.MIMEHeader{}
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, field, name))
		h.Set("Content-Type", "application/pdf")
		part, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &body, w.FormDataContentType()
}

func createSession(t *testing.T, r *gin.Engine) string {
	t.Helper()
	w, env := doJSON(t, r, http.MethodPost, "/api/v1/sessions", nil, "")
	require.Equal(t, http.StatusCreated, w.Code)

	var sess domain.Session
	require.NoError(t, json.Unmarshal(env.Data, &sess))
	return sess.ID.String()
}

const cannedCompleteness = `{
  "grouped_rows": [
    {"original": {"part_name": "M1", "status": "Provided", "matched_filename": "M1_datasheet.pdf"},
     "substitutes": [{"part_name": "M1-SUB", "status": "Missing"}]}
  ],
  "all_provided": false,
  "message": "M1-SUB datasheet is missing."
}`

func TestWorkflow_CompletenessOverHTTP(t *testing.T) {
	gen := new(mocks.MockGenerator)
	gen.On("Generate", mock.Anything, mock.Anything).Return(cannedCompleteness, nil)
	r := newTestRouter(gen)

	id := createSession(t, r)

	body, ct := multipartBody(t, "file", map[string]string{"master_list.pdf": "%PDF master"})
	w, _ := doJSON(t, r, http.MethodPut, "/api/v1/sessions/"+id+"/master", body, ct)
	require.Equal(t, http.StatusOK, w.Code)

	body, ct = multipartBody(t, "files", map[string]string{"M1_datasheet.pdf": "%PDF ds"})
	w, _ = doJSON(t, r, http.MethodPost, "/api/v1/sessions/"+id+"/datasheets", body, ct)
	require.Equal(t, http.StatusCreated, w.Code)

	w, env := doJSON(t, r, http.MethodPost, "/api/v1/sessions/"+id+"/completeness", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)

	var result domain.CompletenessResult
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.False(t, result.AllProvided)
	require.Len(t, result.GroupedRows, 1)
	assert.Equal(t, domain.PartMissing, result.GroupedRows[0].Substitutes[0].Status)
}

func TestAnalysis_WithoutDatasheetsIsRejected(t *testing.T) {
	gen := new(mocks.MockGenerator)
	r := newTestRouter(gen)

	id := createSession(t, r)
	body, ct := multipartBody(t, "file", map[string]string{"master_list.pdf": "%PDF master"})
	w, _ := doJSON(t, r, http.MethodPut, "/api/v1/sessions/"+id+"/master", body, ct)
	require.Equal(t, http.StatusOK, w.Code)

	w, env := doJSON(t, r, http.MethodPost, "/api/v1/sessions/"+id+"/analysis", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "INVALID_INPUT", env.Error.Code)
	gen.AssertNumberOfCalls(t, "Generate", 0)
}

func TestUpload_UnsupportedTypeNamesFile(t *testing.T) {
	gen := new(mocks.MockGenerator)
	r := newTestRouter(gen)
	id := createSession(t, r)

	body, ct := multipartBody(t, "files", map[string]string{"notes.docx": "word doc"})
	w, env := doJSON(t, r, http.MethodPost, "/api/v1/sessions/"+id+"/datasheets", body, ct)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "UNSUPPORTED_FILE_TYPE", env.Error.Code)
	assert.Contains(t, env.Error.Message, "notes.docx")
}

func TestSession_GetUnknown(t *testing.T) {
	r := newTestRouter(new(mocks.MockGenerator))
	w, env := doJSON(t, r, http.MethodGet, "/api/v1/sessions/6f1e20c3-10a4-4e44-86dd-4e1a79efae6b", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)
}

func TestExportCSV(t *testing.T) {
	sessions := new(mocks.MockSessionService)
	analysisH := handler.NewAnalysisHandler(sessions, new(mocks.MockAnalysisService))

	id := "6f1e20c3-10a4-4e44-86dd-4e1a79efae6b"
	analyzed := &domain.Session{
		Phase: domain.PhaseAnalyzed,
		Analysis: &domain.AnalysisResult{
			Groups: []domain.ComparisonGroup{{
				ID: "g1", RowNumber: 1,
				MappedParts:    domain.MappedParts{PartA: "A1", PartB: "B1"},
				Summary:        "ok",
				Recommendation: domain.RecommendB,
				Specs: []domain.SpecItem{{
					ID: 1, Parameter: "Vds", Unit: "V",
					ValueA: "100", ValueB: "100",
					ComplianceB: domain.FullyCompliant,
					ValueC:      "N/A (Missing File)", ComplianceC: domain.NonCompliant,
				}},
			}},
			MissingFiles: []string{},
		},
	}
	sessions.On("Get", mock.Anything, mock.Anything).Return(analyzed, nil)

	r := gin.New()
	r.GET("/api/v1/sessions/:id/analysis/export", analysisH.ExportCSV)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/sessions/"+id+"/analysis/export", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "Substitution_Analysis_Report.csv")
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte{0xEF, 0xBB, 0xBF}))
	assert.Contains(t, w.Body.String(), "Group 1: A1 vs B1")
}

func TestExportCSV_NotAnalyzed(t *testing.T) {
	sessions := new(mocks.MockSessionService)
	sessions.On("Get", mock.Anything, mock.Anything).Return(&domain.Session{Phase: domain.PhaseIdle}, nil)

	analysisH := handler.NewAnalysisHandler(sessions, new(mocks.MockAnalysisService))
	r := gin.New()
	r.GET("/api/v1/sessions/:id/analysis/export", analysisH.ExportCSV)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/sessions/6f1e20c3-10a4-4e44-86dd-4e1a79efae6b/analysis/export", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}
