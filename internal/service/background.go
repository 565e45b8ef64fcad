package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/khizana-app/khizana/internal/model"
	appErr "github.com/khizana-app/khizana/internal/pkg/errors"
)

type StartJobInput struct {
	DocumentID string
	Title      string
	Language   string
	// Source carries a freshly uploaded binary; when nil the document's
	// stored source reference is used.
	Source []byte
}

// StartJob enqueues a background acquisition run. Background execution is
// only granted for the recognition strategy with an available source; plain
// extraction is near-instant and transcription stays foreground.
func (s *AcquisitionService) StartJob(ctx context.Context, in StartJobInput) (string, error) {
	doc, err := s.docs.GetByID(ctx, in.DocumentID)
	if err != nil {
		return "", err
	}
	data := in.Source
	if data == nil {
		data, err = s.loadSource(ctx, doc)
		if err != nil {
			return "", fmt.Errorf("document %s: %w", in.DocumentID, appErr.ErrNoSource)
		}
	}
	strategy, err := s.ResolveStrategy(ctx, doc, data, AcquireOptions{Strategy: "ocr"})
	if err != nil {
		return "", err
	}
	if strategy.Kind != StrategyRecognize {
		return "", fmt.Errorf("background acquisition is only available for recognition: %w", appErr.ErrInvalid)
	}
	language := normalizeLanguage(in.Language, doc.Language)
	title := in.Title
	if title == "" {
		title = doc.Title
	}

	now := time.Now().Unix()
	job := &model.AcquisitionJob{
		ID:         newID(),
		DocumentID: doc.ID,
		Title:      title,
		Status:     model.JobStatusQueued,
		Language:   language,
		Ctime:      now,
		Mtime:      now,
	}
	if err := s.jobs.Create(ctx, job); err != nil {
		return "", err
	}
	select {
	case s.queue <- queuedJob{jobID: job.ID, documentID: doc.ID, language: language, source: data}:
	default:
		_ = s.jobs.Finish(ctx, job.ID, model.JobStatusFailed, "job queue is full", time.Now().Unix())
		return "", fmt.Errorf("acquisition queue is full")
	}
	return job.ID, nil
}

// StartWorker launches the single background worker. Jobs are drained one at
// a time; the recognition stack is not safely parallelizable in-process.
func (s *AcquisitionService) StartWorker(ctx context.Context) *sync.WaitGroup {
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-ctx.Done():
				s.drainQueue(ctx)
				return
			case job := <-s.queue:
				s.runJob(ctx, job)
			}
		}
	}()
	return &wg
}

// drainQueue fails every job still waiting when the worker exits; a row left
// queued would otherwise never run and never be swept.
func (s *AcquisitionService) drainQueue(ctx context.Context) {
	for {
		select {
		case job := <-s.queue:
			s.finishJob(ctx, job, model.JobStatusFailed, fmt.Errorf("server shutting down"))
		default:
			return
		}
	}
}

func (s *AcquisitionService) runJob(ctx context.Context, queued queuedJob) {
	logger := logutil.GetLogger(ctx).With(
		zap.String("job_id", queued.jobID),
		zap.String("document_id", queued.documentID),
	)
	now := time.Now().Unix()
	if err := s.jobs.UpdateStatus(ctx, queued.jobID, model.JobStatusRunning, now); err != nil {
		logger.Error("mark job running failed", zap.Error(err))
	}
	doc, err := s.docs.GetByID(ctx, queued.documentID)
	if err != nil {
		s.finishJob(ctx, queued, model.JobStatusFailed, err)
		return
	}
	summary, err := s.run(ctx, doc, queued.source, Strategy{Kind: StrategyRecognize}, queued.language, nil, queued.jobID)
	if err != nil {
		logger.Error("background acquisition failed", zap.Error(err))
		s.finishJob(ctx, queued, model.JobStatusFailed, err)
		return
	}
	logger.Info("background acquisition completed",
		zap.Int("processed", summary.PagesProcessed),
		zap.Int("total", summary.TotalPages))
	s.finishJob(ctx, queued, model.JobStatusCompleted, nil)
}

func (s *AcquisitionService) finishJob(ctx context.Context, queued queuedJob, status string, runErr error) {
	errMsg := ""
	if runErr != nil {
		errMsg = runErr.Error()
	}
	// The worker context may already be canceled here; the final status write
	// must still land or the row stays running forever.
	writeCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.jobs.Finish(writeCtx, queued.jobID, status, errMsg, time.Now().Unix()); err != nil {
		logutil.GetLogger(ctx).Error("finish job failed", zap.String("job_id", queued.jobID), zap.Error(err))
	}
	s.publish(queued.jobID, queued.documentID, status == model.JobStatusCompleted)
}
