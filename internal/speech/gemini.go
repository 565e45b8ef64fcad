package speech

import (
	"context"
	"strings"

	"google.golang.org/genai"
)

// GeminiMaxBytes is the inline payload ceiling: larger recordings are never
// sent and fall back to the local method before any network call.
const GeminiMaxBytes = 10 * 1024 * 1024

type geminiConfig struct {
	APIKey string `json:"api_key"`
	Model  string `json:"model"`
}

type geminiProvider struct {
	apiKey string
	model  string
}

func init() {
	Register(MethodGemini, createGeminiProvider)
}

func createGeminiProvider(args interface{}) (Provider, error) {
	cfg := &geminiConfig{}
	if err := decodeConfig(args, cfg); err != nil {
		return nil, err
	}
	model := cfg.Model
	if model == "" {
		model = "gemini-2.0-flash"
	}
	return &geminiProvider{apiKey: strings.TrimSpace(cfg.APIKey), model: model}, nil
}

func (p *geminiProvider) Name() Method {
	return MethodGemini
}

func (p *geminiProvider) Transcribe(ctx context.Context, req Request) (*Result, error) {
	if p.apiKey == "" {
		return nil, NewProviderError(KindAuth, "gemini api key is not configured")
	}
	if len(req.Media) > GeminiMaxBytes {
		return nil, NewProviderError(KindUnsupported, "media exceeds %d bytes", GeminiMaxBytes)
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  p.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, NewProviderError(classifyMessage(err.Error()), "gemini client: %v", err)
	}
	prompt := transcriptionPrompt(req.Language)
	resp, err := client.Models.GenerateContent(
		ctx,
		p.model,
		[]*genai.Content{{Parts: []*genai.Part{
			{Text: prompt},
			{InlineData: &genai.Blob{MIMEType: req.MimeType, Data: req.Media}},
		}}},
		nil,
	)
	if err != nil {
		return nil, NewProviderError(classifyMessage(err.Error()), "gemini transcription: %v", err)
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return nil, NewProviderError(KindFatal, "gemini returned an empty transcript")
	}
	return &Result{Text: text}, nil
}

func transcriptionPrompt(language string) string {
	if language == "" {
		return "Transcribe the spoken content of this recording verbatim. Return only the transcript."
	}
	return "Transcribe the spoken content of this recording verbatim in language \"" + language + "\". Return only the transcript."
}
