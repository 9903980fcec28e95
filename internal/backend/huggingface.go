package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/briefly-ai/briefly/internal/model"
)

const defaultHFBaseURL = "https://api-inference.huggingface.co"

type hfConfig struct {
	APIKey  string `json:"api_key"`
	BaseURL string `json:"base_url"`
}

type hfProvider struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

type hfRequest struct {
	Inputs     string       `json:"inputs"`
	Parameters hfParameters `json:"parameters"`
	Options    hfOptions    `json:"options"`
}

type hfParameters struct {
	MaxLength         int     `json:"max_length,omitempty"`
	MinLength         int     `json:"min_length,omitempty"`
	DoSample          bool    `json:"do_sample"`
	Temperature       float64 `json:"temperature,omitempty"`
	NumBeams          int     `json:"num_beams,omitempty"`
	LengthPenalty     float64 `json:"length_penalty,omitempty"`
	RepetitionPenalty float64 `json:"repetition_penalty,omitempty"`
	TopP              float64 `json:"top_p,omitempty"`
	NoRepeatNgramSize int     `json:"no_repeat_ngram_size,omitempty"`
}

type hfOptions struct {
	WaitForModel bool `json:"wait_for_model"`
	UseCache     bool `json:"use_cache"`
}

type hfResult struct {
	SummaryText string `json:"summary_text"`
}

func (p *hfProvider) Name() string {
	return "huggingface"
}

func (p *hfProvider) Summarize(ctx context.Context, modelID string, text string, params model.GenerationParams) (string, error) {
	if p.apiKey == "" {
		return "", ErrAuth
	}
	endpoint := strings.TrimRight(p.baseURL, "/") + "/models/" + modelID
	reqBody := hfRequest{
		Inputs: text,
		Parameters: hfParameters{
			MaxLength:         params.MaxLength,
			MinLength:         params.MinLength,
			DoSample:          params.DoSample,
			Temperature:       params.Temperature,
			NumBeams:          params.NumBeams,
			LengthPenalty:     params.LengthPenalty,
			RepetitionPenalty: params.RepetitionPenalty,
			TopP:              params.TopP,
			NoRepeatNgramSize: params.NoRepeatNgramSize,
		},
		Options: hfOptions{WaitForModel: false, UseCache: true},
	}
	data, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+p.apiKey)
	req.Header.Set("Content-Type", "application/json")
	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", &StatusError{
			Status:     resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
		}
	}
	var out []hfResult
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	if len(out) == 0 || strings.TrimSpace(out[0].SummaryText) == "" {
		return "", fmt.Errorf("huggingface response has no summary")
	}
	return strings.TrimSpace(out[0].SummaryText), nil
}

func parseRetryAfter(value string) time.Duration {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0
	}
	secs, err := strconv.Atoi(value)
	if err != nil || secs <= 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}

func createHFFactory(args interface{}) (Provider, error) {
	cfg := &hfConfig{}
	if err := decodeConfig(args, cfg); err != nil {
		return nil, err
	}
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = defaultHFBaseURL
	}
	return &hfProvider{
		apiKey:  strings.TrimSpace(cfg.APIKey),
		baseURL: baseURL,
		client:  &http.Client{},
	}, nil
}

func init() {
	Register("huggingface", createHFFactory)
}
