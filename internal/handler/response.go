package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"subcheck/internal/domain"
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

// MapDomainError translates domain errors to HTTP status codes and error
// codes. The message keeps the domain error text because the taxonomy
// errors name the offending file or input.
func MapDomainError(err error) (status int, code string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrCredentialMissing):
		return http.StatusInternalServerError, "CREDENTIAL_MISSING"
	case errors.Is(err, domain.ErrUnsupportedType):
		return http.StatusBadRequest, "UNSUPPORTED_FILE_TYPE"
	case errors.Is(err, domain.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE"
	case errors.Is(err, domain.ErrDocumentParse):
		return http.StatusUnprocessableEntity, "DOCUMENT_PARSE_FAILED"
	case errors.Is(err, domain.ErrInputValidation):
		return http.StatusBadRequest, "INVALID_INPUT"
	case errors.Is(err, domain.ErrPhaseConflict):
		return http.StatusConflict, "PHASE_IN_FLIGHT"
	case errors.Is(err, domain.ErrResultNotAvailable):
		return http.StatusConflict, "RESULT_NOT_AVAILABLE"
	case errors.Is(err, domain.ErrSchemaMismatch):
		return http.StatusBadGateway, "SCHEMA_MISMATCH"
	case errors.Is(err, domain.ErrExtraction):
		return http.StatusBadGateway, "EXTRACTION_FAILED"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR"
	}
}

// HandleError maps a domain error and sends the appropriate error response.
func HandleError(c *gin.Context, err error) {
	status, code := MapDomainError(err)
	msg := err.Error()
	if status >= 500 && code == "INTERNAL_ERROR" {
		requestID, _ := c.Get("request_id")
		log.Printf("[%s] internal error: %v", requestID, err)
		msg = "an internal error occurred"
	}
	RespondError(c, status, code, msg)
}
