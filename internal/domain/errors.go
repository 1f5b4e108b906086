package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound           = errors.New("resource not found")
	ErrCredentialMissing  = errors.New("generation API credential is not configured")
	ErrUnsupportedType    = errors.New("unsupported file type")
	ErrFileTooLarge       = errors.New("file exceeds maximum allowed size")
	ErrDocumentParse      = errors.New("document could not be parsed")
	ErrInputValidation    = errors.New("input validation failed")
	ErrExtraction         = errors.New("extraction failed")
	ErrSchemaMismatch     = errors.New("response does not match the declared schema")
	ErrPhaseConflict      = errors.New("another phase is already in flight")
	ErrResultNotAvailable = errors.New("requested result has not been produced")
)

// UnsupportedTypeError rejects a specific file, naming it and its type.
type UnsupportedTypeError struct {
	Filename     string
	DeclaredType string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("unsupported file type %q for file %q", e.DeclaredType, e.Filename)
}

func (e *UnsupportedTypeError) Unwrap() error { return ErrUnsupportedType }

// DocumentParseError reports a spreadsheet that could not be decoded,
// naming the offending file so the user can correct it.
type DocumentParseError struct {
	Filename string
	Err      error
}

func (e *DocumentParseError) Error() string {
	return fmt.Sprintf("failed to parse spreadsheet %q: %v", e.Filename, e.Err)
}

func (e *DocumentParseError) Unwrap() error { return ErrDocumentParse }

// InputValidationError reports a precondition violation detected before any
// remote call is made.
type InputValidationError struct {
	Reason string
}

func (e *InputValidationError) Error() string {
	return fmt.Sprintf("invalid input: %s", e.Reason)
}

func (e *InputValidationError) Unwrap() error { return ErrInputValidation }

// ExtractionError reports a failed remote call or an undecodable response.
// The whole phase fails atomically; no partial result is recovered.
type ExtractionError struct {
	Err error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction failed: %v", e.Err)
}

func (e *ExtractionError) Unwrap() error { return ErrExtraction }

// SchemaMismatchError reports a response that parsed as JSON but violates
// the declared result shape.
type SchemaMismatchError struct {
	Detail string
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("schema mismatch: %s", e.Detail)
}

func (e *SchemaMismatchError) Unwrap() error { return ErrSchemaMismatch }
