// Package prompt builds the ordered prompt-part sequences for the two
// workflow phases: the cheap completeness check and the full analysis.
package prompt

import (
	"fmt"
	"strings"

	"subcheck/internal/domain"
)

// completenessTemplate instructs the extractor to parse the master list
// row by row and mark every part Provided or Missing against the uploaded
// filenames. Datasheets are represented by name only in this phase.
const completenessTemplate = `You are an electronics procurement assistant. You are given the content of a master list document that describes groups of electronic components. Each row of the master list contains one ORIGINAL part and one or more SUBSTITUTE parts proposed as replacements.

Your task:
1. Parse the master list row by row. For every row, identify the original part number and all substitute part numbers.
2. For each part, decide whether a datasheet for it has been uploaded, using the list of uploaded filenames below.
3. Matching is approximate, not exact: a part number matches a filename when the filename contains the part number or an obvious variant of it (ignore case, separators, and ordering/packaging suffixes). Example: the master-list part "NTTFS080N10" matches the uploaded filename "NTTFS080N10GTAG.pdf".
4. Mark each part "Provided" when a matching filename exists (and report which filename matched), otherwise "Missing".
5. Set all_provided to true only if every part in every row is Provided.
6. Write a one-sentence human-readable message summarizing the result.

Uploaded datasheet filenames:
%s

The master list content follows.`

// analysisTemplate instructs the extractor to produce the fixed-shape
// per-parameter comparison table for every group in the master list.
const analysisTemplate = `You are an electronics component substitution analyst. You are given a master list document describing groups of components (one ORIGINAL part A and up to two SUBSTITUTE parts B and C per row), followed by the uploaded datasheets for those parts. Each datasheet is preceded by a marker line naming the file it came from.

Your task, for EVERY row (group) of the master list:
1. Identify part A (original) and parts B and C (substitutes). If a row has only one substitute, leave part C empty.
2. Map each part to its uploaded datasheet by fuzzy name matching (a filename containing the part number or an obvious variant of it counts as a match).
3. Build a specification comparison table of EXACTLY 15 items per group, ordered by presentation position with id 1 through 15:
   - Items 1-10: the critical electrical specifications for this component class (e.g. voltage ratings, current ratings, on-resistance, gate charge, capacitances, thresholds, power dissipation).
   - Items 11-13: secondary specifications (e.g. package, pinout, thermal resistance, operating temperature range).
   - Items 14-15: lifecycle and general information (e.g. lifecycle status, manufacturer or qualification notes).
4. For each item record the parameter name, unit, part A value, part B value and compliance verdict, part C value and compliance verdict, and a short comment. Compliance verdicts are exactly one of "Fully Compliant", "Partial", "Non-Compliant".
5. If a substitute's datasheet is missing, you MUST still emit its column for every item with the value "N/A (Missing File)" and a "Non-Compliant" verdict; never omit the column. Also list the missing part names in missing_files.
6. Per group, write a short summary and a recommendation: "B", "C", "Both", or "None".

List critical items first and base every value strictly on the supplied documents; do not invent values.

The master list and datasheets follow.`

const datasheetMarker = "--- Uploaded datasheet file: %s ---"

// ComposeCompleteness builds the phase 1 prompt sequence: the completeness
// template (carrying the uploaded filenames) followed by the normalized
// master list parts. Datasheet content is never attached in this phase.
func ComposeCompleteness(masterParts []domain.PromptPart, datasheetNames []string) ([]domain.PromptPart, error) {
	if len(masterParts) == 0 {
		return nil, &domain.InputValidationError{Reason: "master list is required"}
	}

	names := "(none uploaded)"
	if len(datasheetNames) > 0 {
		names = "- " + strings.Join(datasheetNames, "\n- ")
	}

	parts := make([]domain.PromptPart, 0, len(masterParts)+1)
	parts = append(parts, domain.TextPart(fmt.Sprintf(completenessTemplate, names)))
	parts = append(parts, masterParts...)
	return parts, nil
}

// LabeledPart pairs a normalized datasheet part with its source filename.
type LabeledPart struct {
	Filename string
	Part     domain.PromptPart
}

// ComposeAnalysis builds the phase 2 prompt sequence: the analysis template,
// the normalized master list parts, then every datasheet part preceded by a
// marker naming its file. The datasheet set must be non-empty; this is
// checked before any remote call is made.
func ComposeAnalysis(masterParts []domain.PromptPart, datasheets []LabeledPart) ([]domain.PromptPart, error) {
	if len(masterParts) == 0 {
		return nil, &domain.InputValidationError{Reason: "master list is required"}
	}
	if len(datasheets) == 0 {
		return nil, &domain.InputValidationError{Reason: "at least one datasheet is required for full analysis"}
	}

	parts := make([]domain.PromptPart, 0, len(masterParts)+2*len(datasheets)+1)
	parts = append(parts, domain.TextPart(analysisTemplate))
	parts = append(parts, masterParts...)
	for _, ds := range datasheets {
		parts = append(parts, domain.TextPart(fmt.Sprintf(datasheetMarker, ds.Filename)))
		parts = append(parts, ds.Part)
	}
	return parts, nil
}
