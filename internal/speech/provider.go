package speech

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// Method names a transcription backend in caller-selectable priority:
// local is offline and always available, gemini is fast and cheap but
// size-capped, whisper is accurate, paid and credentialed.
type Method string

const (
	MethodLocal   Method = "local"
	MethodGemini  Method = "gemini"
	MethodWhisper Method = "whisper"
)

func ParseMethod(value string) (Method, error) {
	switch Method(strings.ToLower(strings.TrimSpace(value))) {
	case MethodLocal, "":
		return MethodLocal, nil
	case MethodGemini:
		return MethodGemini, nil
	case MethodWhisper:
		return MethodWhisper, nil
	}
	return "", fmt.Errorf("unsupported transcription method: %s", value)
}

// Request carries one recording to transcribe.
type Request struct {
	Media    []byte
	MimeType string
	FileName string
	Language string
}

// Result is a raw provider transcript. Segments holds provider-returned
// timed chunks and may be empty.
type Result struct {
	Text     string
	Segments []string
}

type Provider interface {
	Name() Method
	Transcribe(ctx context.Context, req Request) (*Result, error)
}

type ProviderFactory func(args interface{}) (Provider, error)

var registry = map[Method]ProviderFactory{}

func Register(name Method, factory ProviderFactory) {
	if name == "" || factory == nil {
		return
	}
	registry[name] = factory
}

func NewProvider(name Method, args interface{}) (Provider, error) {
	factory := registry[name]
	if factory == nil {
		return nil, fmt.Errorf("unsupported speech provider: %s", name)
	}
	return factory(args)
}

func decodeConfig(args interface{}, dst interface{}) error {
	if args == nil {
		return fmt.Errorf("speech provider config is required")
	}
	data, err := json.Marshal(args)
	if err != nil {
		return fmt.Errorf("encode speech provider config: %w", err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("decode speech provider config: %w", err)
	}
	return nil
}
