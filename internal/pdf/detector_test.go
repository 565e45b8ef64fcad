package pdf_test

import (
	"context"
	"errors"
	"fmt"
	"image"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/khizana-app/khizana/internal/pdf"
)

type fakeDocument struct {
	pages    []string
	textErrs map[int]error
	closed   bool
}

func (d *fakeDocument) PageCount() int {
	return len(d.pages)
}

func (d *fakeDocument) PageText(pageNumber int) (string, error) {
	if err := d.textErrs[pageNumber]; err != nil {
		return "", err
	}
	if pageNumber < 1 || pageNumber > len(d.pages) {
		return "", fmt.Errorf("page %d out of range", pageNumber)
	}
	return d.pages[pageNumber-1], nil
}

func (d *fakeDocument) RenderPage(pageNumber int, scale float64) (image.Image, error) {
	return nil, errors.New("not rendered in tests")
}

func (d *fakeDocument) Close() error {
	d.closed = true
	return nil
}

func openerFor(doc *fakeDocument) pdf.Opener {
	return func(data []byte) (pdf.Document, error) {
		return doc, nil
	}
}

func TestDetectTextLayerEmptyPages(t *testing.T) {
	doc := &fakeDocument{pages: []string{"", "", "", ""}}
	detection := pdf.DetectTextLayer(context.Background(), openerFor(doc), nil, 3)
	require.False(t, detection.HasEmbeddedText)
	require.Equal(t, pdf.ConfidenceLow, detection.Confidence)
	require.True(t, doc.closed)
}

func TestDetectTextLayerRichPages(t *testing.T) {
	page := strings.Repeat("meaningful words keep coming here ", 20)
	doc := &fakeDocument{pages: []string{page, page, page}}
	detection := pdf.DetectTextLayer(context.Background(), openerFor(doc), nil, 3)
	require.True(t, detection.HasEmbeddedText)
	require.Equal(t, pdf.ConfidenceHigh, detection.Confidence)
}

func TestDetectTextLayerSparseText(t *testing.T) {
	doc := &fakeDocument{pages: []string{"one two three four five six seven eight nine", "", ""}}
	detection := pdf.DetectTextLayer(context.Background(), openerFor(doc), nil, 3)
	require.True(t, detection.HasEmbeddedText)
	require.Equal(t, pdf.ConfidenceLow, detection.Confidence)
}

func TestDetectTextLayerOpenErrorFailsTowardRecognition(t *testing.T) {
	open := func(data []byte) (pdf.Document, error) {
		return nil, errors.New("broken file")
	}
	detection := pdf.DetectTextLayer(context.Background(), open, nil, 3)
	require.False(t, detection.HasEmbeddedText)
	require.Equal(t, pdf.ConfidenceLow, detection.Confidence)
}

func TestDetectTextLayerSamplesOnlyLeadingPages(t *testing.T) {
	rich := strings.Repeat("plenty of embedded words on this page ", 10)
	doc := &fakeDocument{pages: []string{"", "", "", rich, rich}}
	detection := pdf.DetectTextLayer(context.Background(), openerFor(doc), nil, 3)
	require.False(t, detection.HasEmbeddedText)
}

func TestExtractPageTextJoinsItems(t *testing.T) {
	doc := &fakeDocument{pages: []string{"  first   line\nsecond\tline  "}}
	text, err := pdf.ExtractPageText(doc, 1)
	require.NoError(t, err)
	require.Equal(t, "first line second line", text)
}

func TestExtractPageTextEmptyLayer(t *testing.T) {
	doc := &fakeDocument{pages: []string{""}}
	text, err := pdf.ExtractPageText(doc, 1)
	require.NoError(t, err)
	require.Empty(t, text)
}
