package gemini_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"subcheck/internal/config"
	"subcheck/internal/domain"
	"subcheck/internal/extractor"
	"subcheck/internal/extractor/gemini"
	"subcheck/internal/port"
)

func testConfig() *config.GeminiConfig {
	return &config.GeminiConfig{
		APIKey:      "test-gemini-key",
		Model:       "gemini-2.5-flash",
		TimeoutSecs: 30,
	}
}

func successResponse(text string) map[string]interface{} {
	return map[string]interface{}{
		"candidates": []map[string]interface{}{
			{
				"content": map[string]interface{}{
					"role": "model",
					"parts": []map[string]interface{}{
						{"text": text},
					},
				},
				"finishReason": "STOP",
			},
		},
	}
}

func TestGenerate_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-gemini-key", r.Header.Get("x-goog-api-key"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var reqBody map[string]interface{}
		err := json.NewDecoder(r.Body).Decode(&reqBody)
		require.NoError(t, err)

		contents := reqBody["contents"].([]interface{})
		require.Len(t, contents, 1)
		msg := contents[0].(map[string]interface{})
		assert.Equal(t, "user", msg["role"])

		parts := msg["parts"].([]interface{})
		require.Len(t, parts, 2)

		textPart := parts[0].(map[string]interface{})
		assert.Contains(t, textPart["text"], "procurement")

		dataPart := parts[1].(map[string]interface{})
		inlineData := dataPart["inline_data"].(map[string]interface{})
		assert.Equal(t, "application/pdf", inlineData["mime_type"])
		assert.Equal(t, "cGRmIGJ5dGVz", inlineData["data"])

		genConfig := reqBody["generationConfig"].(map[string]interface{})
		assert.Equal(t, "application/json", genConfig["responseMimeType"])
		assert.Equal(t, 0.1, genConfig["temperature"])
		schema := genConfig["responseSchema"].(map[string]interface{})
		assert.Equal(t, "OBJECT", schema["type"])

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(successResponse(`{"grouped_rows":[]}`))
	}))
	defer server.Close()

	g, err := gemini.NewGeneratorWithEndpoint(testConfig(), server.URL)
	require.NoError(t, err)

	text, err := g.Generate(context.Background(), port.GenerateInput{
		Parts: []domain.PromptPart{
			domain.TextPart("You are an electronics procurement assistant."),
			domain.BinaryPromptPart("application/pdf", "cGRmIGJ5dGVz"),
		},
		Schema:      extractor.CompletenessSchema,
		Temperature: 0.1,
	})
	require.NoError(t, err)
	assert.Equal(t, `{"grouped_rows":[]}`, text)
}

func TestGenerate_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error":{"message":"overloaded"}}`))
	}))
	defer server.Close()

	g, err := gemini.NewGeneratorWithEndpoint(testConfig(), server.URL)
	require.NoError(t, err)

	_, err = g.Generate(context.Background(), port.GenerateInput{
		Parts:       []domain.PromptPart{domain.TextPart("hello")},
		Schema:      extractor.CompletenessSchema,
		Temperature: 0.1,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrExtraction))
	assert.Contains(t, err.Error(), "503")
}

func TestGenerate_EmptyCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	}))
	defer server.Close()

	g, err := gemini.NewGeneratorWithEndpoint(testConfig(), server.URL)
	require.NoError(t, err)

	_, err = g.Generate(context.Background(), port.GenerateInput{
		Parts:       []domain.PromptPart{domain.TextPart("hello")},
		Schema:      extractor.CompletenessSchema,
		Temperature: 0.1,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrExtraction))
}

func TestNewGenerator_MissingCredential(t *testing.T) {
	cfg := testConfig()
	cfg.APIKey = ""

	_, err := gemini.NewGenerator(cfg)
	assert.ErrorIs(t, err, domain.ErrCredentialMissing)
}
