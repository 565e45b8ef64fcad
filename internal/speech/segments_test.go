package speech_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/khizana-app/khizana/internal/speech"
)

func TestSplitSentences(t *testing.T) {
	require.Equal(t, []string{"a", "b", "c"}, speech.SplitSentences("a. b! c?"))
	require.Empty(t, speech.SplitSentences("..."))
	require.Empty(t, speech.SplitSentences(""))
	require.Equal(t, []string{"no punctuation at all"}, speech.SplitSentences("no punctuation at all"))
}
