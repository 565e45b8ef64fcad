package speech_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/khizana-app/khizana/internal/speech"
)

type fakeProvider struct {
	method speech.Method
	result *speech.Result
	err    error
	calls  int
}

func (p *fakeProvider) Name() speech.Method {
	return p.method
}

func (p *fakeProvider) Transcribe(ctx context.Context, req speech.Request) (*speech.Result, error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	return p.result, nil
}

func TestOrchestratorSizeCeilingSkipsGemini(t *testing.T) {
	gemini := &fakeProvider{method: speech.MethodGemini, result: &speech.Result{Text: "cloud transcript"}}
	local := &fakeProvider{method: speech.MethodLocal, result: &speech.Result{Text: "local transcript here."}}
	orch := speech.NewOrchestrator(gemini, local)

	media := make([]byte, 15*1024*1024)
	outcome, err := orch.Transcribe(context.Background(), speech.MethodGemini, speech.Request{Media: media})
	require.NoError(t, err)
	require.Equal(t, speech.MethodLocal, outcome.MethodUsed)
	require.Zero(t, gemini.calls, "provider must never be called for oversized media")
	require.Equal(t, 1, local.calls)
	require.NotEmpty(t, outcome.Notice)
}

func TestOrchestratorFallbackOnEligibleError(t *testing.T) {
	cases := []struct {
		name   string
		method speech.Method
		err    error
	}{
		{"rate limited", speech.MethodGemini, speech.NewProviderError(speech.KindRateLimited, "429")},
		{"payment required", speech.MethodGemini, speech.NewProviderError(speech.KindPaymentRequired, "402")},
		{"unsupported", speech.MethodWhisper, speech.NewProviderError(speech.KindUnsupported, "bad format")},
		{"gemini memory", speech.MethodGemini, speech.NewProviderError(speech.KindMemory, "out of memory")},
		{"whisper auth", speech.MethodWhisper, speech.NewProviderError(speech.KindAuth, "invalid api key")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cloud := &fakeProvider{method: tc.method, err: tc.err}
			local := &fakeProvider{method: speech.MethodLocal, result: &speech.Result{Text: "fallback transcript."}}
			orch := speech.NewOrchestrator(cloud, local)

			outcome, err := orch.Transcribe(context.Background(), tc.method, speech.Request{Media: []byte("audio")})
			require.NoError(t, err)
			require.Equal(t, speech.MethodLocal, outcome.MethodUsed)
			require.Equal(t, 1, cloud.calls)
			require.Equal(t, 1, local.calls)
		})
	}
}

func TestOrchestratorFatalErrorSurfaces(t *testing.T) {
	cloud := &fakeProvider{method: speech.MethodWhisper, err: errors.New("connection reset")}
	local := &fakeProvider{method: speech.MethodLocal, result: &speech.Result{Text: "never used"}}
	orch := speech.NewOrchestrator(cloud, local)

	_, err := orch.Transcribe(context.Background(), speech.MethodWhisper, speech.Request{Media: []byte("audio")})
	require.Error(t, err)
	require.Zero(t, local.calls)
}

func TestOrchestratorMemoryErrorNotEligibleForWhisper(t *testing.T) {
	cloud := &fakeProvider{method: speech.MethodWhisper, err: speech.NewProviderError(speech.KindMemory, "out of memory")}
	local := &fakeProvider{method: speech.MethodLocal, result: &speech.Result{Text: "never used"}}
	orch := speech.NewOrchestrator(cloud, local)

	_, err := orch.Transcribe(context.Background(), speech.MethodWhisper, speech.Request{Media: []byte("audio")})
	require.Error(t, err)
	require.Zero(t, local.calls)
}

func TestOrchestratorPrefersProviderSegments(t *testing.T) {
	provider := &fakeProvider{method: speech.MethodWhisper, result: &speech.Result{
		Text:     "first chunk. second chunk.",
		Segments: []string{"first chunk", "second chunk"},
	}}
	local := &fakeProvider{method: speech.MethodLocal}
	orch := speech.NewOrchestrator(provider, local)

	outcome, err := orch.Transcribe(context.Background(), speech.MethodWhisper, speech.Request{Media: []byte("audio")})
	require.NoError(t, err)
	require.Equal(t, []string{"first chunk", "second chunk"}, outcome.Segments)
	require.Equal(t, speech.MethodWhisper, outcome.MethodUsed)
}

func TestOrchestratorDerivesSegmentsFromSentences(t *testing.T) {
	local := &fakeProvider{method: speech.MethodLocal, result: &speech.Result{
		Text: "One sentence here. Another one! A third? ",
	}}
	orch := speech.NewOrchestrator(local)

	outcome, err := orch.Transcribe(context.Background(), speech.MethodLocal, speech.Request{Media: []byte("audio")})
	require.NoError(t, err)
	require.Equal(t, []string{"One sentence here", "Another one", "A third"}, outcome.Segments)
}
