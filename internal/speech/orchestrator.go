package speech

import (
	"context"
	"fmt"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"
)

// Outcome reports one finished transcription. MethodUsed may differ from the
// requested method when a fallback fired; Notice carries the user-visible
// reason in that case.
type Outcome struct {
	Text       string
	Segments   []string
	MethodUsed Method
	Notice     string
}

type attempt struct {
	method Method
	notice string
}

// Orchestrator folds over an ordered list of provider attempts, stopping at
// the first success or the first fatal error.
type Orchestrator struct {
	providers map[Method]Provider
}

func NewOrchestrator(providers ...Provider) *Orchestrator {
	byMethod := make(map[Method]Provider, len(providers))
	for _, p := range providers {
		if p == nil {
			continue
		}
		byMethod[p.Name()] = p
	}
	return &Orchestrator{providers: byMethod}
}

// Transcribe runs the requested method with automatic local fallback per the
// classification rules. Oversized gemini payloads are never sent; the chain
// starts at local directly.
func (o *Orchestrator) Transcribe(ctx context.Context, method Method, req Request) (*Outcome, error) {
	attempts := o.planAttempts(method, req)
	var lastNotice string
	for i, att := range attempts {
		provider := o.providers[att.method]
		if provider == nil {
			return nil, fmt.Errorf("transcription method %s is not configured", att.method)
		}
		if att.notice != "" {
			lastNotice = att.notice
			logutil.GetLogger(ctx).Info("transcription falling back",
				zap.String("method", string(att.method)),
				zap.String("reason", att.notice))
		}
		result, err := provider.Transcribe(ctx, req)
		if err == nil {
			segments := result.Segments
			if len(segments) == 0 {
				segments = SplitSentences(result.Text)
			}
			return &Outcome{
				Text:       result.Text,
				Segments:   segments,
				MethodUsed: att.method,
				Notice:     lastNotice,
			}, nil
		}
		if i+1 < len(attempts) && FallbackEligible(att.method, err) {
			logutil.GetLogger(ctx).Warn("transcription provider failed, retrying via local",
				zap.String("method", string(att.method)), zap.Error(err))
			attempts[i+1].notice = fmt.Sprintf("%s unavailable: %v", att.method, err)
			continue
		}
		return nil, err
	}
	return nil, fmt.Errorf("no transcription attempt available")
}

func (o *Orchestrator) planAttempts(method Method, req Request) []attempt {
	if method == MethodLocal {
		return []attempt{{method: MethodLocal}}
	}
	if method == MethodGemini && len(req.Media) > GeminiMaxBytes {
		return []attempt{{
			method: MethodLocal,
			notice: fmt.Sprintf("recording exceeds the %d MB gemini limit, using local transcription", GeminiMaxBytes/(1024*1024)),
		}}
	}
	return []attempt{{method: method}, {method: MethodLocal}}
}
