// Package normalize converts ingested files into prompt-ready content parts.
// Spreadsheets are flattened to labeled CSV text; PDF and image kinds pass
// through as binary vision payloads for the extractor to interpret.
package normalize

import (
	"bytes"
	"encoding/base64"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"subcheck/internal/domain"
)

const (
	contentHeader = "DOCUMENT_CONTENT"
	contentFooter = "[End of CSV content]"
)

// Normalize converts one IngestedFile into exactly one PromptPart under the
// given human-readable label. Spreadsheet kinds always normalize to text;
// PDF/image kinds always normalize to binary.
func Normalize(file *domain.IngestedFile, label string) (domain.PromptPart, error) {
	mediaType, ok := domain.MediaTypes[file.ContentKind]
	if !ok {
		return domain.PromptPart{}, &domain.UnsupportedTypeError{
			Filename:     file.OriginalName,
			DeclaredType: string(file.ContentKind),
		}
	}

	if file.ContentKind == domain.KindSpreadsheet {
		text, err := flattenSpreadsheet(file)
		if err != nil {
			return domain.PromptPart{}, err
		}
		return domain.TextPart(fmt.Sprintf("%s (%s):\n%s\n%s", contentHeader, label, text, contentFooter)), nil
	}

	return domain.BinaryPromptPart(mediaType, file.EncodedPayload), nil
}

// flattenSpreadsheet decodes the payload as a workbook and flattens the
// first sheet (by position, not name) to a comma-delimited text table with
// standard CSV quoting. Sheets past the first are not read.
func flattenSpreadsheet(file *domain.IngestedFile) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(file.EncodedPayload)
	if err != nil {
		return "", &domain.DocumentParseError{Filename: file.OriginalName, Err: err}
	}

	wb, err := excelize.OpenReader(bytes.NewReader(raw))
	if err != nil {
		return "", &domain.DocumentParseError{Filename: file.OriginalName, Err: err}
	}
	defer func() { _ = wb.Close() }()

	sheets := wb.GetSheetList()
	if len(sheets) == 0 {
		return "", &domain.DocumentParseError{Filename: file.OriginalName, Err: fmt.Errorf("workbook has no sheets")}
	}

	rows, err := wb.GetRows(sheets[0])
	if err != nil {
		return "", &domain.DocumentParseError{Filename: file.OriginalName, Err: err}
	}

	var buf strings.Builder
	w := csv.NewWriter(&buf)
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return "", &domain.DocumentParseError{Filename: file.OriginalName, Err: err}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", &domain.DocumentParseError{Filename: file.OriginalName, Err: err}
	}

	return strings.TrimRight(buf.String(), "\n"), nil
}
