package ocr

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveLanguages(t *testing.T) {
	require.Equal(t, []string{"ara"}, ResolveLanguages("ar"))
	require.Equal(t, []string{"fra"}, ResolveLanguages("FR"))
	require.Equal(t, []string{"eng"}, ResolveLanguages(" en "))
	require.Equal(t, []string{"lat"}, ResolveLanguages("lat"))
	require.Equal(t, []string{"ara", "fra", "eng"}, ResolveLanguages("amz"))
	require.Equal(t, []string{"ara", "fra", "eng"}, ResolveLanguages("mixed"))
}

func TestResolveLanguagesUnknownFallsBackToDefault(t *testing.T) {
	require.Equal(t, []string{"ara"}, ResolveLanguages("zz"))
	require.Equal(t, []string{"ara"}, ResolveLanguages(""))
}

func TestResolveLanguagesReturnsCopy(t *testing.T) {
	first := ResolveLanguages("amz")
	first[0] = "mutated"
	require.Equal(t, []string{"ara", "fra", "eng"}, ResolveLanguages("amz"))
}
