package model

// Page is the durable per-page contract the search subsystem reads from.
// At most one row exists per (document_id, page_number).
type Page struct {
	ID         string `json:"id"`
	DocumentID string `json:"document_id"`
	PageNumber int    `json:"page_number"`
	OCRText    string `json:"ocr_text"`
	Ctime      int64  `json:"ctime"`
	Mtime      int64  `json:"mtime"`
}
