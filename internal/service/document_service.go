package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/khizana-app/khizana/internal/event"
	"github.com/khizana-app/khizana/internal/model"
	appErr "github.com/khizana-app/khizana/internal/pkg/errors"
	"github.com/khizana-app/khizana/internal/repo"
)

var knownLanguages = map[string]bool{
	"ar": true, "fr": true, "en": true, "es": true, "lat": true, "amz": true, "mixed": true,
}

type DocumentCreateInput struct {
	Title     string
	Kind      string
	Language  string
	SourceKey string
	SourceURL string
}

type DocumentService struct {
	docs      *repo.DocumentRepo
	pages     *repo.PageRepo
	listCache *expirable.LRU[string, []*model.Document]
}

// NewDocumentService builds the catalog-facing service. The listing cache is
// invalidated through JobCompleted events so updated flags become visible
// without the service knowing who completed the run.
func NewDocumentService(docs *repo.DocumentRepo, pages *repo.PageRepo, bus *event.Bus) *DocumentService {
	s := &DocumentService{
		docs:      docs,
		pages:     pages,
		listCache: expirable.NewLRU[string, []*model.Document](64, nil, 5*time.Minute),
	}
	if bus != nil {
		bus.Subscribe(func(evt event.JobCompleted) {
			s.listCache.Purge()
			logutil.GetLogger(context.Background()).Debug("document list cache invalidated",
				zap.String("document_id", evt.DocumentID))
		})
	}
	return s
}

func (s *DocumentService) Create(ctx context.Context, in DocumentCreateInput) (*model.Document, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, fmt.Errorf("title is required: %w", appErr.ErrInvalid)
	}
	kind := strings.ToLower(strings.TrimSpace(in.Kind))
	switch kind {
	case "":
		kind = model.DocumentKindText
	case model.DocumentKindText, model.DocumentKindAudio, model.DocumentKindVideo:
	default:
		return nil, fmt.Errorf("unsupported document kind %s: %w", in.Kind, appErr.ErrInvalid)
	}
	language := strings.ToLower(strings.TrimSpace(in.Language))
	if language == "" || !knownLanguages[language] {
		language = "ar"
	}
	now := time.Now().Unix()
	doc := &model.Document{
		ID:        newID(),
		Title:     strings.TrimSpace(in.Title),
		Kind:      kind,
		Language:  language,
		SourceKey: in.SourceKey,
		SourceURL: in.SourceURL,
		Ctime:     now,
		Mtime:     now,
	}
	if err := s.docs.Create(ctx, doc); err != nil {
		return nil, err
	}
	s.listCache.Purge()
	return doc, nil
}

func (s *DocumentService) Get(ctx context.Context, docID string) (*model.Document, error) {
	return s.docs.GetByID(ctx, docID)
}

func (s *DocumentService) List(ctx context.Context, offset, limit uint) ([]*model.Document, error) {
	if limit == 0 || limit > 200 {
		limit = 50
	}
	key := fmt.Sprintf("list:%d:%d", offset, limit)
	if cached, ok := s.listCache.Get(key); ok {
		return cached, nil
	}
	docs, err := s.docs.List(ctx, offset, limit)
	if err != nil {
		return nil, err
	}
	s.listCache.Add(key, docs)
	return docs, nil
}

func (s *DocumentService) Pages(ctx context.Context, docID string) ([]*model.Page, error) {
	if _, err := s.docs.GetByID(ctx, docID); err != nil {
		return nil, err
	}
	return s.pages.ListByDocument(ctx, docID)
}

func (s *DocumentService) AttachSource(ctx context.Context, docID, sourceKey string) error {
	if err := s.docs.UpdateSource(ctx, docID, sourceKey, time.Now().Unix()); err != nil {
		return err
	}
	s.listCache.Purge()
	return nil
}
