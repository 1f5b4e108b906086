package prompt_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"subcheck/internal/domain"
	"subcheck/internal/prompt"
)

func masterPart() domain.PromptPart {
	return domain.TextPart("DOCUMENT_CONTENT (Master List: master.xlsx):\nOriginal,Substitute\n[End of CSV content]")
}

func TestComposeCompleteness_AttachesFilenamesNotContent(t *testing.T) {
	parts, err := prompt.ComposeCompleteness(
		[]domain.PromptPart{masterPart()},
		[]string{"NTTFS080N10GTAG.pdf", "AON6284.pdf"},
	)
	require.NoError(t, err)
	require.Len(t, parts, 2)

	// Template first, carrying the filename list and the matching policy.
	assert.Contains(t, parts[0].Text, "NTTFS080N10GTAG.pdf")
	assert.Contains(t, parts[0].Text, "AON6284.pdf")
	assert.Contains(t, parts[0].Text, "NTTFS080N10")
	assert.Contains(t, parts[0].Text, "Provided")
	assert.Contains(t, parts[0].Text, "Missing")

	// Master list content second; no binary datasheet parts in this phase.
	assert.Equal(t, masterPart(), parts[1])
	for _, p := range parts {
		assert.Nil(t, p.Binary)
	}
}

func TestComposeCompleteness_NoDatasheets(t *testing.T) {
	parts, err := prompt.ComposeCompleteness([]domain.PromptPart{masterPart()}, nil)
	require.NoError(t, err)
	assert.Contains(t, parts[0].Text, "(none uploaded)")
}

func TestComposeCompleteness_MissingMaster(t *testing.T) {
	_, err := prompt.ComposeCompleteness(nil, []string{"a.pdf"})
	assert.True(t, errors.Is(err, domain.ErrInputValidation))
}

func TestComposeAnalysis_OrderAndMarkers(t *testing.T) {
	ds1 := domain.BinaryPromptPart("application/pdf", "cGRmMQ==")
	ds2 := domain.BinaryPromptPart("image/png", "cG5nMQ==")

	parts, err := prompt.ComposeAnalysis(
		[]domain.PromptPart{masterPart()},
		[]prompt.LabeledPart{
			{Filename: "NTTFS080N10GTAG.pdf", Part: ds1},
			{Filename: "AON6284.png", Part: ds2},
		},
	)
	require.NoError(t, err)
	require.Len(t, parts, 6)

	assert.Contains(t, parts[0].Text, "15")
	assert.Contains(t, parts[0].Text, "N/A (Missing File)")
	assert.Equal(t, masterPart(), parts[1])

	// Each datasheet is preceded by a marker naming the file that follows.
	assert.Contains(t, parts[2].Text, "NTTFS080N10GTAG.pdf")
	assert.Equal(t, ds1, parts[3])
	assert.Contains(t, parts[4].Text, "AON6284.png")
	assert.Equal(t, ds2, parts[5])
}

func TestComposeAnalysis_EmptyDatasheetSet(t *testing.T) {
	_, err := prompt.ComposeAnalysis([]domain.PromptPart{masterPart()}, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInputValidation))
}
