package ocr

import "strings"

// langTable maps catalog language codes to Tesseract trained-data names.
// "amz" covers mixed Arabic/French/Latin holdings and maps to a multi-lang
// recognition pass.
var langTable = map[string][]string{
	"ar":    {"ara"},
	"fr":    {"fra"},
	"en":    {"eng"},
	"es":    {"spa"},
	"lat":   {"lat"},
	"amz":   {"ara", "fra", "eng"},
	"mixed": {"ara", "fra", "eng"},
}

// DefaultLanguage is used for unrecognized codes; the catalog is
// predominantly Arabic.
const DefaultLanguage = "ar"

// ResolveLanguages maps a catalog language code to recognizer language
// identifiers. Unknown codes resolve to the default entry, never an error.
func ResolveLanguages(code string) []string {
	key := strings.ToLower(strings.TrimSpace(code))
	if langs, ok := langTable[key]; ok {
		out := make([]string, len(langs))
		copy(out, langs)
		return out
	}
	out := make([]string, len(langTable[DefaultLanguage]))
	copy(out, langTable[DefaultLanguage])
	return out
}
