package ocr

import (
	"bytes"
	"context"
	"fmt"
	"image/png"
	"strings"

	"github.com/khizana-app/khizana/internal/pdf"
)

// renderScale balances recognition accuracy against processing time.
const renderScale = 2.0

// Engine rasterizes PDF pages and feeds them to a Recognizer.
type Engine struct {
	recognizer Recognizer
}

func NewEngine(recognizer Recognizer) *Engine {
	return &Engine{recognizer: recognizer}
}

// RecognizePage renders one page at the fixed scale and recognizes it using
// the languages mapped from the catalog code.
func (e *Engine) RecognizePage(ctx context.Context, doc pdf.Document, pageNumber int, language string) (string, error) {
	img, err := doc.RenderPage(pageNumber, renderScale)
	if err != nil {
		return "", fmt.Errorf("render page %d: %w", pageNumber, err)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("encode page %d: %w", pageNumber, err)
	}
	text, err := e.recognizer.Recognize(ctx, buf.Bytes(), ResolveLanguages(language))
	if err != nil {
		return "", fmt.Errorf("recognize page %d: %w", pageNumber, err)
	}
	return strings.TrimSpace(text), nil
}
