package domain

// ContentKind classifies an ingested file for prompt normalization.
type ContentKind string

const (
	KindPDF         ContentKind = "pdf"
	KindPNG         ContentKind = "png"
	KindJPEG        ContentKind = "jpeg"
	KindWEBP        ContentKind = "webp"
	KindSpreadsheet ContentKind = "spreadsheet"
)

// MediaTypes maps ContentKind to its MIME media type.
var MediaTypes = map[ContentKind]string{
	KindPDF:         "application/pdf",
	KindPNG:         "image/png",
	KindJPEG:        "image/jpeg",
	KindWEBP:        "image/webp",
	KindSpreadsheet: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}

// AllowedExtensions maps file extensions (without dot) to ContentKind.
var AllowedExtensions = map[string]ContentKind{
	"pdf":  KindPDF,
	"png":  KindPNG,
	"jpg":  KindJPEG,
	"jpeg": KindJPEG,
	"webp": KindWEBP,
	"xlsx": KindSpreadsheet,
	"xls":  KindSpreadsheet,
}

// PartAvailability marks whether a datasheet for a part was uploaded.
type PartAvailability string

const (
	PartProvided PartAvailability = "Provided"
	PartMissing  PartAvailability = "Missing"
)

// ComplianceLevel is the verdict for one specification row of one substitute.
type ComplianceLevel string

const (
	FullyCompliant ComplianceLevel = "Fully Compliant"
	Partial        ComplianceLevel = "Partial"
	NonCompliant   ComplianceLevel = "Non-Compliant"
)

// ValidComplianceLevels is the closed set accepted from the generator.
var ValidComplianceLevels = map[ComplianceLevel]bool{
	FullyCompliant: true,
	Partial:        true,
	NonCompliant:   true,
}

// Recommendation names which substitute (if any) a comparison group endorses.
type Recommendation string

const (
	RecommendB    Recommendation = "B"
	RecommendC    Recommendation = "C"
	RecommendNone Recommendation = "None"
	RecommendBoth Recommendation = "Both"
)

// ValidRecommendations is the closed set accepted from the generator.
var ValidRecommendations = map[Recommendation]bool{
	RecommendB:    true,
	RecommendC:    true,
	RecommendNone: true,
	RecommendBoth: true,
}

// SessionPhase tracks where a session sits in the two-phase workflow.
type SessionPhase string

const (
	PhaseIdle      SessionPhase = "idle"
	PhaseChecking  SessionPhase = "checking"
	PhaseChecked   SessionPhase = "checked"
	PhaseAnalyzing SessionPhase = "analyzing"
	PhaseAnalyzed  SessionPhase = "analyzed"
	PhaseFailed    SessionPhase = "failed"
)

// InFlight reports whether the phase has a remote call outstanding.
func (p SessionPhase) InFlight() bool {
	return p == PhaseChecking || p == PhaseAnalyzing
}
