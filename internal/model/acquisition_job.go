package model

const (
	JobStatusQueued    = "queued"
	JobStatusRunning   = "running"
	JobStatusCompleted = "completed"
	JobStatusFailed    = "failed"
)

type AcquisitionJob struct {
	ID         string `json:"id"`
	DocumentID string `json:"document_id"`
	Title      string `json:"title"`
	Status     string `json:"status"`
	Progress   int    `json:"progress"`
	Processed  int    `json:"processed"`
	Total      int    `json:"total"`
	Language   string `json:"language"`
	Error      string `json:"error"`
	Ctime      int64  `json:"ctime"`
	Mtime      int64  `json:"mtime"`
}
