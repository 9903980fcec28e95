package backend

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/briefly-ai/briefly/internal/model"
)

type geminiConfig struct {
	APIKey string `json:"api_key"`
}

// geminiProvider is the prompt-based fallback backend. It approximates
// the seq2seq generation parameters through prompt constraints and the
// temperature setting.
type geminiProvider struct {
	apiKey string
}

func (p *geminiProvider) Name() string {
	return "gemini"
}

func (p *geminiProvider) Summarize(ctx context.Context, modelID string, text string, params model.GenerationParams) (string, error) {
	if p.apiKey == "" {
		return "", ErrAuth
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  p.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", err
	}
	prompt := buildGeminiPrompt(text, params)
	var config *genai.GenerateContentConfig
	if params.Temperature > 0 {
		temp := float32(params.Temperature)
		config = &genai.GenerateContentConfig{Temperature: &temp}
	}
	resp, err := client.Models.GenerateContent(
		ctx,
		modelID,
		[]*genai.Content{{Parts: []*genai.Part{{Text: prompt}}}},
		config,
	)
	if err != nil {
		return "", err
	}
	summary := strings.TrimSpace(resp.Text())
	if summary == "" {
		return "", fmt.Errorf("gemini response is empty")
	}
	return summary, nil
}

func buildGeminiPrompt(text string, params model.GenerationParams) string {
	maxWords := params.MaxLength
	if maxWords <= 0 {
		maxWords = 200
	}
	minWords := params.MinLength
	if minWords <= 0 {
		minWords = 30
	}
	return fmt.Sprintf(`Summarize the text below in %d to %d words.
- Keep factual accuracy, key numbers and named entities.
- Use the same language as the text.
- Output ONLY the summary.

TEXT:
%s`, minWords, maxWords, text)
}

func createGeminiFactory(args interface{}) (Provider, error) {
	cfg := &geminiConfig{}
	if err := decodeConfig(args, cfg); err != nil {
		return nil, err
	}
	return &geminiProvider{apiKey: strings.TrimSpace(cfg.APIKey)}, nil
}

func init() {
	Register("gemini", createGeminiFactory)
}
