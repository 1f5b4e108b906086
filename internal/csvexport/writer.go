// Package csvexport renders an AnalysisResult as the downloadable
// substitution analysis report.
package csvexport

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"subcheck/internal/domain"
)

// BOM is the UTF-8 byte-order mark, written first for Excel compatibility
// on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// Filename is the fixed download filename for the report.
const Filename = "Substitution_Analysis_Report.csv"

// columns defines the 9-column comparison table header.
var columns = []string{
	"ID",
	"Parameter",
	"Unit",
	"Spec A",
	"Spec B",
	"B Result",
	"Spec C",
	"C Result",
	"Comment",
}

// Writer renders analysis groups as CSV.
type Writer struct {
	out io.Writer
	csv *csv.Writer
}

// NewWriter creates a Writer that writes the report to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{out: w, csv: csv.NewWriter(w)}
}

// WriteReport writes the BOM and every comparison group. Groups are
// separated by two blank lines.
func (w *Writer) WriteReport(result *domain.AnalysisResult) error {
	if _, err := w.out.Write(BOM); err != nil {
		return err
	}
	for i := range result.Groups {
		if i > 0 {
			w.csv.Flush()
			if err := w.csv.Error(); err != nil {
				return err
			}
			if _, err := io.WriteString(w.out, "\n\n"); err != nil {
				return err
			}
		}
		if err := w.writeGroup(&result.Groups[i]); err != nil {
			return err
		}
	}
	w.csv.Flush()
	return w.csv.Error()
}

// writeGroup writes the three header lines (title, summary, recommendation)
// followed by the 9-column table.
func (w *Writer) writeGroup(g *domain.ComparisonGroup) error {
	title := fmt.Sprintf("Group %d: %s vs %s", g.RowNumber, g.MappedParts.PartA, g.MappedParts.PartB)
	if g.MappedParts.PartC != "" {
		title += " vs " + g.MappedParts.PartC
	}

	headerLines := [][]string{
		{title},
		{"Summary: " + g.Summary},
		{"Recommendation: " + string(g.Recommendation)},
	}
	for _, line := range headerLines {
		if err := w.csv.Write(line); err != nil {
			return err
		}
	}

	if err := w.csv.Write(columns); err != nil {
		return err
	}
	for _, item := range g.Specs {
		row := []string{
			strconv.Itoa(item.ID),
			item.Parameter,
			item.Unit,
			item.ValueA,
			item.ValueB,
			string(item.ComplianceB),
			item.ValueC,
			string(item.ComplianceC),
			item.Comment,
		}
		if err := w.csv.Write(row); err != nil {
			return err
		}
	}
	return nil
}
