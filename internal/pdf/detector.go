package pdf

import (
	"context"
	"strings"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"
)

const (
	// DefaultSamplePages bounds how many leading pages the detector inspects.
	DefaultSamplePages = 3
	// minTextItems is the collective token count sampled pages must exceed
	// before the document counts as carrying an embedded text layer.
	minTextItems = 8
)

type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

type Detection struct {
	HasEmbeddedText bool       `json:"has_embedded_text"`
	Confidence      Confidence `json:"confidence"`
}

// DetectTextLayer samples the first pages of a PDF and reports whether it
// already carries machine-readable text. Detection failures fall toward the
// slower recognition path rather than surfacing an error.
func DetectTextLayer(ctx context.Context, open Opener, data []byte, samplePages int) Detection {
	if samplePages <= 0 {
		samplePages = DefaultSamplePages
	}
	doc, err := open(data)
	if err != nil {
		logutil.GetLogger(ctx).Warn("text layer detection failed, assuming scanned document", zap.Error(err))
		return Detection{HasEmbeddedText: false, Confidence: ConfidenceLow}
	}
	defer doc.Close()

	pages := doc.PageCount()
	if pages < samplePages {
		samplePages = pages
	}
	items := 0
	for page := 1; page <= samplePages; page++ {
		text, err := doc.PageText(page)
		if err != nil {
			logutil.GetLogger(ctx).Warn("read text layer failed", zap.Int("page", page), zap.Error(err))
			continue
		}
		items += countTextItems(text)
	}
	if items < minTextItems {
		return Detection{HasEmbeddedText: false, Confidence: ConfidenceLow}
	}
	return Detection{HasEmbeddedText: true, Confidence: confidenceFor(items)}
}

func countTextItems(text string) int {
	count := 0
	for _, item := range strings.Fields(text) {
		if len(strings.TrimSpace(item)) > 1 {
			count++
		}
	}
	return count
}

func confidenceFor(items int) Confidence {
	switch {
	case items >= minTextItems*8:
		return ConfidenceHigh
	case items >= minTextItems*2:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}
