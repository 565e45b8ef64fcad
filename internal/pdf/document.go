package pdf

import (
	"fmt"
	"image"

	"github.com/gen2brain/go-fitz"
)

// Document is an opened, page-addressable PDF. Page numbers are 1-based.
type Document interface {
	PageCount() int
	// PageText returns the embedded text layer of a page, empty when none.
	PageText(pageNumber int) (string, error)
	// RenderPage rasterizes a page at the given scale factor relative to 72 DPI.
	RenderPage(pageNumber int, scale float64) (image.Image, error)
	Close() error
}

// Opener opens a PDF binary. Swappable so the pipeline can be exercised
// without a rendering backend.
type Opener func(data []byte) (Document, error)

func Open(data []byte) (Document, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	return &fitzDocument{doc: doc}, nil
}

type fitzDocument struct {
	doc *fitz.Document
}

func (d *fitzDocument) PageCount() int {
	return d.doc.NumPage()
}

func (d *fitzDocument) PageText(pageNumber int) (string, error) {
	if pageNumber < 1 || pageNumber > d.doc.NumPage() {
		return "", fmt.Errorf("page %d out of range", pageNumber)
	}
	return d.doc.Text(pageNumber - 1)
}

func (d *fitzDocument) RenderPage(pageNumber int, scale float64) (image.Image, error) {
	if pageNumber < 1 || pageNumber > d.doc.NumPage() {
		return nil, fmt.Errorf("page %d out of range", pageNumber)
	}
	if scale <= 0 {
		scale = 1.0
	}
	return d.doc.ImageDPI(pageNumber-1, 72*scale)
}

func (d *fitzDocument) Close() error {
	return d.doc.Close()
}
