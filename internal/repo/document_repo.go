package repo

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"

	"github.com/khizana-app/khizana/internal/model"
	"github.com/khizana-app/khizana/internal/pkg/dbutil"
	appErr "github.com/khizana-app/khizana/internal/pkg/errors"
)

var documentFields = []string{"id", "title", "kind", "language", "source_key", "source_url", "ocr_processed", "pages_count", "ctime", "mtime"}

type DocumentRepo struct {
	db *sql.DB
}

func NewDocumentRepo(db *sql.DB) *DocumentRepo {
	return &DocumentRepo{db: db}
}

func (r *DocumentRepo) Create(ctx context.Context, doc *model.Document) error {
	data := map[string]interface{}{
		"id":            doc.ID,
		"title":         doc.Title,
		"kind":          doc.Kind,
		"language":      doc.Language,
		"source_key":    doc.SourceKey,
		"source_url":    doc.SourceURL,
		"ocr_processed": boolToInt(doc.OCRProcessed),
		"pages_count":   doc.PagesCount,
		"ctime":         doc.Ctime,
		"mtime":         doc.Mtime,
	}
	sqlStr, args, err := builder.BuildInsert("documents", []map[string]interface{}{data})
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	_, err = r.db.ExecContext(ctx, sqlStr, args...)
	return err
}

func (r *DocumentRepo) GetByID(ctx context.Context, docID string) (*model.Document, error) {
	where := map[string]interface{}{
		"id": docID,
	}
	sqlStr, args, err := builder.BuildSelect("documents", where, documentFields)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	if !rows.Next() {
		return nil, appErr.ErrNotFound
	}
	return scanDocument(rows)
}

func (r *DocumentRepo) List(ctx context.Context, offset, limit uint) ([]*model.Document, error) {
	where := map[string]interface{}{
		"_orderby": "mtime desc",
		"_limit":   []uint{offset, limit},
	}
	sqlStr, args, err := builder.BuildSelect("documents", where, documentFields)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	docs := make([]*model.Document, 0)
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

// UpdateAcquisition writes back the pipeline's aggregate flags after a run.
func (r *DocumentRepo) UpdateAcquisition(ctx context.Context, docID string, pagesCount int, mtime int64) error {
	where := map[string]interface{}{
		"id": docID,
	}
	update := map[string]interface{}{
		"ocr_processed": 1,
		"pages_count":   pagesCount,
		"mtime":         mtime,
	}
	sqlStr, args, err := builder.BuildUpdate("documents", where, update)
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	result, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return appErr.ErrNotFound
	}
	return nil
}

func (r *DocumentRepo) UpdateSource(ctx context.Context, docID, sourceKey string, mtime int64) error {
	where := map[string]interface{}{
		"id": docID,
	}
	update := map[string]interface{}{
		"source_key": sourceKey,
		"mtime":      mtime,
	}
	sqlStr, args, err := builder.BuildUpdate("documents", where, update)
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	result, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return appErr.ErrNotFound
	}
	return nil
}

func scanDocument(rows *sql.Rows) (*model.Document, error) {
	var doc model.Document
	var processed int
	if err := rows.Scan(&doc.ID, &doc.Title, &doc.Kind, &doc.Language, &doc.SourceKey, &doc.SourceURL, &processed, &doc.PagesCount, &doc.Ctime, &doc.Mtime); err != nil {
		return nil, err
	}
	doc.OCRProcessed = processed == 1
	return &doc, nil
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}
