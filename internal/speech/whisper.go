package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
)

const defaultWhisperBaseURL = "https://api.openai.com/v1"

type whisperConfig struct {
	APIKey  string `json:"api_key"`
	BaseURL string `json:"base_url"`
	Model   string `json:"model"`
}

type whisperProvider struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

type whisperResponse struct {
	Text     string `json:"text"`
	Segments []struct {
		Text string `json:"text"`
	} `json:"segments"`
}

func init() {
	Register(MethodWhisper, createWhisperProvider)
}

func createWhisperProvider(args interface{}) (Provider, error) {
	cfg := &whisperConfig{}
	if err := decodeConfig(args, cfg); err != nil {
		return nil, err
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultWhisperBaseURL
	}
	model := cfg.Model
	if model == "" {
		model = "whisper-1"
	}
	return &whisperProvider{
		apiKey:  strings.TrimSpace(cfg.APIKey),
		baseURL: baseURL,
		model:   model,
		client:  http.DefaultClient,
	}, nil
}

func (p *whisperProvider) Name() Method {
	return MethodWhisper
}

func (p *whisperProvider) Transcribe(ctx context.Context, req Request) (*Result, error) {
	if p.apiKey == "" {
		return nil, NewProviderError(KindAuth, "whisper api key is not configured")
	}
	endpoint := strings.TrimRight(p.baseURL, "/") + "/audio/transcriptions"

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	fileName := req.FileName
	if fileName == "" {
		fileName = "recording"
	}
	part, err := writer.CreateFormFile("file", fileName)
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(req.Media); err != nil {
		return nil, err
	}
	_ = writer.WriteField("model", p.model)
	_ = writer.WriteField("response_format", "verbose_json")
	if req.Language != "" {
		_ = writer.WriteField("language", req.Language)
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &body)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)
	httpReq.Header.Set("Content-Type", writer.FormDataContentType())
	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, NewProviderError(KindFatal, "whisper request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		raw, _ := io.ReadAll(resp.Body)
		return nil, NewProviderError(classifyStatus(resp.StatusCode, string(raw)),
			"whisper request failed: %s: %s", resp.Status, strings.TrimSpace(string(raw)))
	}
	var out whisperResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode whisper response: %w", err)
	}
	text := strings.TrimSpace(out.Text)
	if text == "" {
		return nil, NewProviderError(KindFatal, "whisper returned an empty transcript")
	}
	segments := make([]string, 0, len(out.Segments))
	for _, seg := range out.Segments {
		trimmed := strings.TrimSpace(seg.Text)
		if trimmed == "" {
			continue
		}
		segments = append(segments, trimmed)
	}
	return &Result{Text: text, Segments: segments}, nil
}

func classifyStatus(status int, body string) ErrorKind {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return KindAuth
	case http.StatusPaymentRequired:
		return KindPaymentRequired
	case http.StatusTooManyRequests:
		return KindRateLimited
	case http.StatusUnsupportedMediaType:
		return KindUnsupported
	}
	return classifyMessage(body)
}
