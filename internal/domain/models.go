package domain

import (
	"time"

	"github.com/google/uuid"
)

// IngestedFile is a user-provided file read into a transportable form.
// Immutable once created; owned by its session until removed by the user.
type IngestedFile struct {
	ID             uuid.UUID   `json:"id"`
	OriginalName   string      `json:"original_name"`
	EncodedPayload string      `json:"-"`
	ContentKind    ContentKind `json:"content_kind"`
	Size           int64       `json:"size"`
	UploadedAt     time.Time   `json:"uploaded_at"`
}

// BinaryPart is the inline-data arm of a PromptPart.
type BinaryPart struct {
	MediaKind string
	Payload   string
}

// PromptPart is one element of a generation request: either extracted text
// or a binary vision payload. Exactly one arm is set.
type PromptPart struct {
	Text   string
	Binary *BinaryPart
}

// TextPart builds a text PromptPart.
func TextPart(s string) PromptPart {
	return PromptPart{Text: s}
}

// BinaryPromptPart builds a binary PromptPart.
func BinaryPromptPart(mediaKind, payload string) PromptPart {
	return PromptPart{Binary: &BinaryPart{MediaKind: mediaKind, Payload: payload}}
}

// PartStatus reports one part's datasheet availability.
type PartStatus struct {
	PartName        string           `json:"part_name"`
	Status          PartAvailability `json:"status"`
	MatchedFilename string           `json:"matched_filename,omitempty"`
}

// CompletenessRow groups one master-list row: the original part and its
// substitutes.
type CompletenessRow struct {
	Original    PartStatus   `json:"original"`
	Substitutes []PartStatus `json:"substitutes"`
}

// CompletenessResult is the phase 1 output: which required datasheets are
// present or missing per component group.
type CompletenessResult struct {
	GroupedRows []CompletenessRow `json:"grouped_rows"`
	AllProvided bool              `json:"all_provided"`
	Message     string            `json:"message"`
}

// Reconcile recomputes AllProvided from the row statuses so the invariant
// holds regardless of what the generator claimed.
func (r *CompletenessResult) Reconcile() {
	r.AllProvided = true
	for _, row := range r.GroupedRows {
		if row.Original.Status != PartProvided {
			r.AllProvided = false
			return
		}
		for _, sub := range row.Substitutes {
			if sub.Status != PartProvided {
				r.AllProvided = false
				return
			}
		}
	}
}

// SpecItem is one parameter row of a comparison table.
type SpecItem struct {
	ID          int             `json:"id"`
	Parameter   string          `json:"parameter"`
	Unit        string          `json:"unit"`
	ValueA      string          `json:"value_a"`
	ValueB      string          `json:"value_b"`
	ComplianceB ComplianceLevel `json:"compliance_b"`
	ValueC      string          `json:"value_c"`
	ComplianceC ComplianceLevel `json:"compliance_c"`
	Comment     string          `json:"comment"`
}

// MappedParts names the original (A) and substitute (B, C) parts of a group.
type MappedParts struct {
	PartA string `json:"part_a"`
	PartB string `json:"part_b"`
	PartC string `json:"part_c"`
}

// ComparisonGroup is one master-list row's full per-parameter comparison.
type ComparisonGroup struct {
	ID             string         `json:"id"`
	RowNumber      int            `json:"row_number"`
	MappedParts    MappedParts    `json:"mapped_parts"`
	Summary        string         `json:"summary"`
	Recommendation Recommendation `json:"recommendation"`
	Specs          []SpecItem     `json:"specs"`
}

// AnalysisResult is the phase 2 output across all comparison groups.
type AnalysisResult struct {
	Groups       []ComparisonGroup `json:"groups"`
	MissingFiles []string          `json:"missing_files"`
}

// Session is the single evolving state of one validation workflow: the
// uploaded file set, the current phase, and the last results. Results are
// write-once per invocation and discarded whenever the inputs change.
type Session struct {
	ID           uuid.UUID           `json:"id"`
	Phase        SessionPhase        `json:"phase"`
	MasterList   *IngestedFile       `json:"master_list,omitempty"`
	Datasheets   []IngestedFile      `json:"datasheets"`
	Completeness *CompletenessResult `json:"completeness,omitempty"`
	Analysis     *AnalysisResult     `json:"analysis,omitempty"`
	LastError    string              `json:"last_error,omitempty"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
}
