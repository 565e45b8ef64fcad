package ocr

import (
	"context"
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// Recognizer converts an encoded page image into text.
type Recognizer interface {
	Recognize(ctx context.Context, image []byte, languages []string) (string, error)
}

type tesseractRecognizer struct {
	tessdataDir   string
	clientFactory func() *gosseract.Client
}

// NewTesseractRecognizer builds the default gosseract-backed recognizer.
// tessdataDir may be empty to use the system install.
func NewTesseractRecognizer(tessdataDir string) Recognizer {
	return &tesseractRecognizer{
		tessdataDir:   tessdataDir,
		clientFactory: gosseract.NewClient,
	}
}

func (r *tesseractRecognizer) Recognize(ctx context.Context, image []byte, languages []string) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}
	client := r.clientFactory()
	defer client.Close()
	if r.tessdataDir != "" {
		if err := client.SetTessdataPrefix(r.tessdataDir); err != nil {
			return "", fmt.Errorf("set tessdata prefix: %w", err)
		}
	}
	if len(languages) > 0 {
		if err := client.SetLanguage(languages...); err != nil {
			return "", fmt.Errorf("set languages: %w", err)
		}
	}
	if err := client.SetImageFromBytes(image); err != nil {
		return "", fmt.Errorf("set image: %w", err)
	}
	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("recognize text: %w", err)
	}
	return strings.TrimSpace(text), nil
}
