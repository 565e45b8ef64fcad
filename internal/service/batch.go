package service

import (
	"context"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"
)

type BatchDocumentResult struct {
	DocumentID     string `json:"document_id"`
	Title          string `json:"title"`
	Success        bool   `json:"success"`
	PagesProcessed int    `json:"pages_processed"`
	Error          string `json:"error,omitempty"`
}

type BatchResult struct {
	Results             []BatchDocumentResult `json:"results"`
	TotalSucceeded      int                   `json:"total_succeeded"`
	TotalFailed         int                   `json:"total_failed"`
	TotalUnitsProcessed int                   `json:"total_units_processed"`
}

// RunBatch fans a foreground acquisition across the selected documents in
// input order, one language for all. A failing document is recorded and the
// batch moves on.
func (s *AcquisitionService) RunBatch(ctx context.Context, documentIDs []string, language string) *BatchResult {
	out := &BatchResult{Results: make([]BatchDocumentResult, 0, len(documentIDs))}
	for _, docID := range documentIDs {
		entry := BatchDocumentResult{DocumentID: docID}
		if doc, err := s.docs.GetByID(ctx, docID); err == nil {
			entry.Title = doc.Title
		}
		summary, err := s.RunForeground(ctx, docID, AcquireOptions{Language: language}, nil)
		if err != nil {
			logutil.GetLogger(ctx).Warn("batch document failed",
				zap.String("document_id", docID), zap.Error(err))
			entry.Error = err.Error()
			out.TotalFailed++
			out.Results = append(out.Results, entry)
			continue
		}
		entry.Success = true
		entry.Title = summary.Title
		entry.PagesProcessed = summary.PagesProcessed
		out.TotalSucceeded++
		out.TotalUnitsProcessed += summary.PagesProcessed
		out.Results = append(out.Results, entry)
	}
	return out
}
