package llm

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/smartbridge/smartbridge/core/config"
)

const (
	ProviderGemini       = "gemini"
	defaultGeminiBaseURL = "https://generativelanguage.googleapis.com"
	defaultGeminiModel   = "gemini-2.5-flash"
)

// GeminiClient calls the generateContent endpoint of the Gemini API.
type GeminiClient struct {
	baseURL     string
	apiKey      string
	model       string
	temperature float64
	client      *http.Client
}

func NewGeminiClient(cfg config.LLMConfig) *GeminiClient {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultGeminiBaseURL
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultGeminiModel
	}
	return &GeminiClient{
		baseURL:     baseURL,
		apiKey:      strings.TrimSpace(cfg.APIKey),
		model:       model,
		temperature: cfg.Temperature,
		client:      httpClient(cfg.Timeout),
	}
}

func (c *GeminiClient) Provider() string {
	return "Gemini"
}

func (c *GeminiClient) Configured() bool {
	return UsableKey(c.apiKey)
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents         []geminiContent `json:"contents"`
	GenerationConfig map[string]any  `json:"generationConfig,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content      geminiContent `json:"content"`
		FinishReason string        `json:"finishReason"`
	} `json:"candidates"`
	PromptFeedback struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback"`
}

// Complete sends prompt as a single user turn and joins the text parts of the
// first candidate.
func (c *GeminiClient) Complete(ctx context.Context, prompt string) (string, error) {
	payload := geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	}
	if c.temperature > 0 {
		payload.GenerationConfig = map[string]any{"temperature": c.temperature}
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, url.PathEscape(c.model))
	var parsed geminiResponse
	if err := postJSON(ctx, c.client, endpoint, map[string]string{"x-goog-api-key": c.apiKey}, payload, &parsed); err != nil {
		return "", err
	}

	if len(parsed.Candidates) == 0 {
		if reason := parsed.PromptFeedback.BlockReason; reason != "" {
			return "", fmt.Errorf("prompt blocked: %s", reason)
		}
		return "", fmt.Errorf("empty response candidates")
	}

	var text strings.Builder
	for _, part := range parsed.Candidates[0].Content.Parts {
		text.WriteString(part.Text)
	}
	if text.Len() == 0 {
		return "", fmt.Errorf("response has no text (finish reason %s)", parsed.Candidates[0].FinishReason)
	}
	return text.String(), nil
}
