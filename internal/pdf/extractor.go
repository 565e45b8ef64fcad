package pdf

import "strings"

// ExtractPageText reads the embedded text layer of one page, joining its
// items with single spaces. It never invokes recognition; pages without a
// text layer yield an empty string.
func ExtractPageText(doc Document, pageNumber int) (string, error) {
	text, err := doc.PageText(pageNumber)
	if err != nil {
		return "", err
	}
	return strings.Join(strings.Fields(text), " "), nil
}
