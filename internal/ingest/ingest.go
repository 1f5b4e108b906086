// Package ingest reads user-provided files into transportable IngestedFile
// values: a base64 payload tagged with a normalized content kind.
package ingest

import (
	"encoding/base64"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"subcheck/internal/domain"
)

// Ingestor turns multipart uploads into IngestedFiles.
type Ingestor struct {
	maxBytes int64
}

// New creates an Ingestor enforcing the given size cap in megabytes.
func New(maxFileSizeMB int64) *Ingestor {
	return &Ingestor{maxBytes: maxFileSizeMB * 1024 * 1024}
}

// Ingest reads one uploaded file into an IngestedFile. The declared media
// type and filename must belong to the supported set; encoding failures
// propagate as-is with no retry.
func (i *Ingestor) Ingest(file multipart.File, header *multipart.FileHeader) (*domain.IngestedFile, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(header.Filename), "."))
	if _, ok := domain.AllowedExtensions[ext]; !ok {
		return nil, &domain.UnsupportedTypeError{
			Filename:     header.Filename,
			DeclaredType: header.Header.Get("Content-Type"),
		}
	}

	if i.maxBytes > 0 && header.Size > i.maxBytes {
		return nil, domain.ErrFileTooLarge
	}

	raw, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("reading file %q: %w", header.Filename, err)
	}

	return &domain.IngestedFile{
		ID:             uuid.New(),
		OriginalName:   header.Filename,
		EncodedPayload: base64.StdEncoding.EncodeToString(raw),
		ContentKind:    DetectKind(header.Header.Get("Content-Type"), header.Filename),
		Size:           header.Size,
		UploadedAt:     time.Now().UTC(),
	}, nil
}

// DetectKind infers the content kind from the declared media type and
// filename. Checks are priority-ordered; an ambiguous or missing declared
// type falls back to PDF, so callers must not rely on inference for files
// whose type and extension disagree.
func DetectKind(declaredType, filename string) domain.ContentKind {
	mt := strings.ToLower(declaredType)
	name := strings.ToLower(filename)
	switch {
	case strings.Contains(mt, "png"):
		return domain.KindPNG
	case strings.Contains(mt, "jpeg"), strings.Contains(mt, "jpg"):
		return domain.KindJPEG
	case strings.Contains(mt, "webp"):
		return domain.KindWEBP
	case strings.Contains(mt, "sheet"), strings.HasSuffix(name, ".xlsx"), strings.HasSuffix(name, ".xls"):
		return domain.KindSpreadsheet
	default:
		return domain.KindPDF
	}
}
