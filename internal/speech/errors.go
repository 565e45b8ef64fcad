package speech

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies provider failures into fallback-eligible and fatal
// groups. Only classified kinds trigger an automatic retry via the local
// method; everything else surfaces to the caller.
type ErrorKind string

const (
	KindUnsupported     ErrorKind = "unsupported"
	KindRateLimited     ErrorKind = "rate_limited"
	KindPaymentRequired ErrorKind = "payment_required"
	KindMemory          ErrorKind = "memory"
	KindAuth            ErrorKind = "auth"
	KindFatal           ErrorKind = "fatal"
)

type ProviderError struct {
	Kind ErrorKind
	Msg  string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func NewProviderError(kind ErrorKind, format string, args ...interface{}) *ProviderError {
	return &ProviderError{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// FallbackEligible reports whether a failed cloud attempt should be retried
// via the local method instead of surfacing. Memory errors only qualify for
// gemini; credential failures only for whisper.
func FallbackEligible(method Method, err error) bool {
	var pErr *ProviderError
	if !errors.As(err, &pErr) {
		return false
	}
	switch pErr.Kind {
	case KindUnsupported, KindRateLimited, KindPaymentRequired:
		return true
	case KindMemory:
		return method == MethodGemini
	case KindAuth:
		return method == MethodWhisper
	}
	return false
}

// classifyMessage maps a raw provider error string to an ErrorKind using the
// same signals the providers emit over the wire.
func classifyMessage(msg string) ErrorKind {
	lower := strings.ToLower(msg)
	switch {
	case strings.Contains(lower, "unsupported"):
		return KindUnsupported
	case strings.Contains(lower, "429") || strings.Contains(lower, "rate limit") || strings.Contains(lower, "resource_exhausted"):
		return KindRateLimited
	case strings.Contains(lower, "402") || strings.Contains(lower, "payment"):
		return KindPaymentRequired
	case strings.Contains(lower, "memory"):
		return KindMemory
	case strings.Contains(lower, "401") || strings.Contains(lower, "403") || strings.Contains(lower, "unauthorized") || strings.Contains(lower, "api key"):
		return KindAuth
	}
	return KindFatal
}
