// Package gemini implements port.Generator against Google's Gemini API
// using schema-constrained JSON output.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"subcheck/internal/config"
	"subcheck/internal/domain"
	"subcheck/internal/port"
)

const (
	apiBaseURL = "https://generativelanguage.googleapis.com/v1beta/models"
)

// Generator invokes the Gemini generateContent endpoint with a declared
// response schema and deterministic-leaning sampling.
type Generator struct {
	apiKey          string
	model           string
	endpoint        string
	maxOutputTokens int
	client          *http.Client
}

// NewGenerator creates a Gemini-backed generator. The API key must be set;
// its absence is a fatal precondition checked before any request is made.
func NewGenerator(cfg *config.GeminiConfig) (*Generator, error) {
	return newGenerator(cfg, "")
}

// NewGeneratorWithEndpoint creates a generator pointing at a custom API
// endpoint (for testing).
func NewGeneratorWithEndpoint(cfg *config.GeminiConfig, endpoint string) (*Generator, error) {
	return newGenerator(cfg, endpoint)
}

func newGenerator(cfg *config.GeminiConfig, endpoint string) (*Generator, error) {
	if cfg.APIKey == "" {
		return nil, domain.ErrCredentialMissing
	}
	model := cfg.Model
	if model == "" {
		model = "gemini-2.5-flash"
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 240 * time.Second
	}
	maxTokens := cfg.MaxOutputTokens
	if maxTokens == 0 {
		maxTokens = 32768
	}
	if endpoint == "" {
		endpoint = fmt.Sprintf("%s/%s:generateContent", apiBaseURL, model)
	}
	return &Generator{
		apiKey:          cfg.APIKey,
		model:           model,
		endpoint:        endpoint,
		maxOutputTokens: maxTokens,
		client:          &http.Client{Timeout: timeout},
	}, nil
}

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inline_data,omitempty"`
}

type geminiInlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type geminiContent struct {
	Role  string       `json:"role"`
	Parts []geminiPart `json:"parts"`
}

type geminiGenerationConfig struct {
	ResponseMIMEType string          `json:"responseMimeType"`
	ResponseSchema   json.RawMessage `json:"responseSchema,omitempty"`
	Temperature      float64         `json:"temperature"`
	MaxOutputTokens  int             `json:"maxOutputTokens"`
}

type geminiRequest struct {
	Contents         []geminiContent        `json:"contents"`
	GenerationConfig geminiGenerationConfig `json:"generationConfig"`
}

// geminiResponse models the Gemini API response.
type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
}

// Generate issues exactly one generateContent call and returns the raw
// response text. Transient failures surface immediately; there is no retry.
func (g *Generator) Generate(ctx context.Context, input port.GenerateInput) (string, error) {
	parts := make([]geminiPart, 0, len(input.Parts))
	for _, p := range input.Parts {
		if p.Binary != nil {
			parts = append(parts, geminiPart{InlineData: &geminiInlineData{
				MimeType: p.Binary.MediaKind,
				Data:     p.Binary.Payload,
			}})
			continue
		}
		parts = append(parts, geminiPart{Text: p.Text})
	}

	reqBody := geminiRequest{
		Contents: []geminiContent{{Role: "user", Parts: parts}},
		GenerationConfig: geminiGenerationConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   input.Schema,
			Temperature:      input.Temperature,
			MaxOutputTokens:  g.maxOutputTokens,
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", &domain.ExtractionError{Err: fmt.Errorf("marshaling request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", &domain.ExtractionError{Err: fmt.Errorf("creating request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", g.apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return "", &domain.ExtractionError{Err: fmt.Errorf("calling gemini API: %w", err)}
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &domain.ExtractionError{Err: fmt.Errorf("reading response: %w", err)}
	}

	if resp.StatusCode != http.StatusOK {
		return "", &domain.ExtractionError{Err: fmt.Errorf("gemini API error (status %d): %s", resp.StatusCode, truncate(string(respBody), 500))}
	}

	var parsed geminiResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", &domain.ExtractionError{Err: fmt.Errorf("unmarshaling response: %w", err)}
	}

	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", &domain.ExtractionError{Err: fmt.Errorf("empty response from API: no candidates")}
	}

	return parsed.Candidates[0].Content.Parts[0].Text, nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
