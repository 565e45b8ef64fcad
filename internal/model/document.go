package model

const (
	DocumentKindText  = "text"
	DocumentKindAudio = "audio"
	DocumentKindVideo = "video"
)

type Document struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Kind         string `json:"kind"`
	Language     string `json:"language"`
	SourceKey    string `json:"source_key"`
	SourceURL    string `json:"source_url"`
	OCRProcessed bool   `json:"ocr_processed"`
	PagesCount   int    `json:"pages_count"`
	Ctime        int64  `json:"ctime"`
	Mtime        int64  `json:"mtime"`
}

// IsMedia reports whether the document carries a recording rather than pages.
func (d *Document) IsMedia() bool {
	return d.Kind == DocumentKindAudio || d.Kind == DocumentKindVideo
}
