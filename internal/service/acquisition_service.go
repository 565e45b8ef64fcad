package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/khizana-app/khizana/internal/event"
	"github.com/khizana-app/khizana/internal/model"
	"github.com/khizana-app/khizana/internal/pdf"
	appErr "github.com/khizana-app/khizana/internal/pkg/errors"
	"github.com/khizana-app/khizana/internal/speech"
)

// minContentLength is the noise threshold: trimmed unit text must exceed it
// to be persisted at all.
const minContentLength = 10

type DocumentStore interface {
	GetByID(ctx context.Context, docID string) (*model.Document, error)
	UpdateAcquisition(ctx context.Context, docID string, pagesCount int, mtime int64) error
}

type PageStore interface {
	Upsert(ctx context.Context, documentID string, pageNumber int, text string) error
}

type JobStore interface {
	Create(ctx context.Context, job *model.AcquisitionJob) error
	UpdateStatus(ctx context.Context, jobID, status string, mtime int64) error
	UpdateProgress(ctx context.Context, jobID string, processed, total, progress int, mtime int64) error
	Finish(ctx context.Context, jobID, status, errMsg string, mtime int64) error
}

// PageRecognizer is the OCR branch of the pipeline.
type PageRecognizer interface {
	RecognizePage(ctx context.Context, doc pdf.Document, pageNumber int, language string) (string, error)
}

// Transcriber is the audio/video branch of the pipeline.
type Transcriber interface {
	Transcribe(ctx context.Context, method speech.Method, req speech.Request) (*speech.Outcome, error)
}

// SourceLoader resolves a document's source reference to its binary.
type SourceLoader func(ctx context.Context, doc *model.Document) ([]byte, error)

type AcquireOptions struct {
	Strategy string
	Method   string
	Language string
}

type ProgressFunc func(processed, total, percent int)

type RunSummary struct {
	DocumentID     string        `json:"document_id"`
	Title          string        `json:"title"`
	Strategy       StrategyKind  `json:"strategy"`
	Method         speech.Method `json:"method,omitempty"`
	Notice         string        `json:"notice,omitempty"`
	PagesProcessed int           `json:"pages_processed"`
	TotalPages     int           `json:"total_pages"`
}

type AcquisitionService struct {
	docs        DocumentStore
	pages       PageStore
	jobs        JobStore
	opener      pdf.Opener
	engine      PageRecognizer
	transcriber Transcriber
	loadSource  SourceLoader
	bus         *event.Bus
	samplePages int
	queue       chan queuedJob
}

type queuedJob struct {
	jobID      string
	documentID string
	language   string
	source     []byte
}

func NewAcquisitionService(
	docs DocumentStore,
	pages PageStore,
	jobs JobStore,
	opener pdf.Opener,
	engine PageRecognizer,
	transcriber Transcriber,
	loadSource SourceLoader,
	bus *event.Bus,
	samplePages int,
	queueSize int,
) *AcquisitionService {
	if samplePages <= 0 {
		samplePages = pdf.DefaultSamplePages
	}
	if queueSize <= 0 {
		queueSize = 64
	}
	return &AcquisitionService{
		docs:        docs,
		pages:       pages,
		jobs:        jobs,
		opener:      opener,
		engine:      engine,
		transcriber: transcriber,
		loadSource:  loadSource,
		bus:         bus,
		samplePages: samplePages,
		queue:       make(chan queuedJob, queueSize),
	}
}

// RunForeground executes the whole pipeline for one document synchronously,
// reporting per-unit progress through the callback.
func (s *AcquisitionService) RunForeground(ctx context.Context, docID string, opts AcquireOptions, progress ProgressFunc) (*RunSummary, error) {
	doc, err := s.docs.GetByID(ctx, docID)
	if err != nil {
		return nil, err
	}
	data, err := s.loadSource(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("document %s: %w", docID, appErr.ErrNoSource)
	}
	strategy, err := s.ResolveStrategy(ctx, doc, data, opts)
	if err != nil {
		return nil, err
	}
	language := normalizeLanguage(opts.Language, doc.Language)
	summary, err := s.run(ctx, doc, data, strategy, language, progress, "")
	if err != nil {
		return nil, err
	}
	s.publish("", doc.ID, true)
	return summary, nil
}

// run drives one document's unit loop: strictly sequential, ascending unit
// order, one upsert per unit that clears the content threshold.
func (s *AcquisitionService) run(ctx context.Context, doc *model.Document, data []byte, strategy Strategy, language string, progress ProgressFunc, jobID string) (*RunSummary, error) {
	units, closeUnits, err := s.unitSource(ctx, doc, data, strategy, language)
	if err != nil {
		return nil, err
	}
	defer closeUnits()

	summary := &RunSummary{
		DocumentID: doc.ID,
		Title:      doc.Title,
		Strategy:   strategy.Kind,
		Method:     units.method,
		Notice:     units.notice,
		TotalPages: units.total,
	}
	logger := logutil.GetLogger(ctx).With(
		zap.String("document_id", doc.ID),
		zap.String("strategy", string(strategy.Kind)),
		zap.Int("total", units.total),
	)
	logger.Info("acquisition started")

	for number := 1; number <= units.total; number++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		text, err := units.textOf(ctx, number)
		if err != nil {
			logger.Warn("unit failed, skipping", zap.Int("page", number), zap.Error(err))
		} else if text = strings.TrimSpace(text); len(text) > minContentLength {
			if err := s.pages.Upsert(ctx, doc.ID, number, text); err != nil {
				return nil, fmt.Errorf("persist page %d of document %s: %w", number, doc.ID, err)
			}
			summary.PagesProcessed++
		}
		s.reportProgress(ctx, jobID, progress, number, units.total)
	}

	if summary.PagesProcessed == 0 && units.total > 0 {
		return nil, fmt.Errorf("document %s: %w", doc.ID, appErr.ErrNoTextFound)
	}
	if err := s.docs.UpdateAcquisition(ctx, doc.ID, units.total, time.Now().Unix()); err != nil {
		return nil, err
	}
	logger.Info("acquisition finished", zap.Int("processed", summary.PagesProcessed))
	return summary, nil
}

// unitSource materializes the dispatch target for a resolved strategy: a
// total unit count plus a per-unit text function.
type unitSource struct {
	total  int
	method speech.Method
	notice string
	textOf func(ctx context.Context, number int) (string, error)
}

func (s *AcquisitionService) unitSource(ctx context.Context, doc *model.Document, data []byte, strategy Strategy, language string) (*unitSource, func(), error) {
	noop := func() {}
	switch strategy.Kind {
	case StrategyExtract:
		opened, err := s.opener(data)
		if err != nil {
			return nil, noop, fmt.Errorf("document %s: %w", doc.ID, appErr.ErrInvalid)
		}
		return &unitSource{
			total: opened.PageCount(),
			textOf: func(ctx context.Context, number int) (string, error) {
				return pdf.ExtractPageText(opened, number)
			},
		}, func() { _ = opened.Close() }, nil
	case StrategyRecognize:
		opened, err := s.opener(data)
		if err != nil {
			return nil, noop, fmt.Errorf("document %s: %w", doc.ID, appErr.ErrInvalid)
		}
		return &unitSource{
			total: opened.PageCount(),
			textOf: func(ctx context.Context, number int) (string, error) {
				return s.engine.RecognizePage(ctx, opened, number, language)
			},
		}, func() { _ = opened.Close() }, nil
	case StrategyTranscribe:
		outcome, err := s.transcriber.Transcribe(ctx, strategy.Method, speech.Request{
			Media:    data,
			MimeType: mimeTypeFor(doc),
			FileName: doc.SourceKey,
			Language: language,
		})
		if err != nil {
			return nil, noop, err
		}
		segments := outcome.Segments
		return &unitSource{
			total:  len(segments),
			method: outcome.MethodUsed,
			notice: outcome.Notice,
			textOf: func(ctx context.Context, number int) (string, error) {
				return segments[number-1], nil
			},
		}, noop, nil
	}
	return nil, noop, fmt.Errorf("unsupported strategy: %s", strategy.Kind)
}

func (s *AcquisitionService) reportProgress(ctx context.Context, jobID string, progress ProgressFunc, processed, total int) {
	percent := 0
	if total > 0 {
		percent = processed * 100 / total
	}
	if progress != nil {
		progress(processed, total, percent)
	}
	if jobID != "" && s.jobs != nil {
		if err := s.jobs.UpdateProgress(ctx, jobID, processed, total, percent, time.Now().Unix()); err != nil {
			logutil.GetLogger(ctx).Warn("update job progress failed", zap.String("job_id", jobID), zap.Error(err))
		}
	}
}

func (s *AcquisitionService) publish(jobID, documentID string, success bool) {
	if s.bus == nil {
		return
	}
	s.bus.Publish(event.JobCompleted{JobID: jobID, DocumentID: documentID, Success: success})
}

func normalizeLanguage(requested, fallback string) string {
	lang := strings.ToLower(strings.TrimSpace(requested))
	if lang == "" {
		lang = strings.ToLower(strings.TrimSpace(fallback))
	}
	return lang
}

func mimeTypeFor(doc *model.Document) string {
	key := strings.ToLower(doc.SourceKey)
	switch {
	case strings.HasSuffix(key, ".mp3"):
		return "audio/mpeg"
	case strings.HasSuffix(key, ".wav"):
		return "audio/wav"
	case strings.HasSuffix(key, ".ogg"):
		return "audio/ogg"
	case strings.HasSuffix(key, ".m4a"):
		return "audio/mp4"
	case strings.HasSuffix(key, ".mp4"):
		return "video/mp4"
	case strings.HasSuffix(key, ".webm"):
		return "video/webm"
	}
	if doc.Kind == model.DocumentKindVideo {
		return "video/mp4"
	}
	return "audio/mpeg"
}
