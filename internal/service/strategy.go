package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/khizana-app/khizana/internal/model"
	"github.com/khizana-app/khizana/internal/pdf"
	"github.com/khizana-app/khizana/internal/speech"
)

type StrategyKind string

const (
	StrategyExtract    StrategyKind = "extract"
	StrategyRecognize  StrategyKind = "ocr"
	StrategyTranscribe StrategyKind = "transcribe"
)

// Strategy is resolved once per run and then dispatched, instead of
// re-branching per page inside the pipeline.
type Strategy struct {
	Kind   StrategyKind
	Method speech.Method
}

// ResolveStrategy picks the acquisition strategy for one document. The
// caller's explicit choice always wins; otherwise media documents
// transcribe and PDFs are sampled for an embedded text layer.
func (s *AcquisitionService) ResolveStrategy(ctx context.Context, doc *model.Document, data []byte, opts AcquireOptions) (Strategy, error) {
	if doc.IsMedia() {
		method := speech.MethodLocal
		if opts.Method != "" {
			parsed, err := speech.ParseMethod(opts.Method)
			if err != nil {
				return Strategy{}, err
			}
			method = parsed
		}
		return Strategy{Kind: StrategyTranscribe, Method: method}, nil
	}
	switch strings.ToLower(strings.TrimSpace(opts.Strategy)) {
	case "":
	case string(StrategyExtract):
		return Strategy{Kind: StrategyExtract}, nil
	case string(StrategyRecognize):
		return Strategy{Kind: StrategyRecognize}, nil
	default:
		return Strategy{}, fmt.Errorf("unsupported strategy: %s", opts.Strategy)
	}
	detection := pdf.DetectTextLayer(ctx, s.opener, data, s.samplePages)
	if detection.HasEmbeddedText {
		return Strategy{Kind: StrategyExtract}, nil
	}
	return Strategy{Kind: StrategyRecognize}, nil
}
