package repo

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"time"

	"github.com/didi/gendry/builder"

	"github.com/khizana-app/khizana/internal/model"
	"github.com/khizana-app/khizana/internal/pkg/dbutil"
)

type PageRepo struct {
	db *sql.DB
}

func NewPageRepo(db *sql.DB) *PageRepo {
	return &PageRepo{db: db}
}

// Upsert guarantees at most one row per (document_id, page_number). The
// lookup-then-write protocol makes re-runs idempotent: a second run over the
// same document updates text in place instead of duplicating rows.
func (r *PageRepo) Upsert(ctx context.Context, documentID string, pageNumber int, text string) error {
	now := time.Now().Unix()
	existingID, err := r.findID(ctx, documentID, pageNumber)
	if err != nil {
		return err
	}
	if existingID != "" {
		where := map[string]interface{}{
			"id": existingID,
		}
		update := map[string]interface{}{
			"ocr_text": text,
			"mtime":    now,
		}
		sqlStr, args, err := builder.BuildUpdate("pages", where, update)
		if err != nil {
			return err
		}
		sqlStr, args = dbutil.Finalize(sqlStr, args)
		_, err = r.db.ExecContext(ctx, sqlStr, args...)
		return err
	}
	data := map[string]interface{}{
		"id":          newRowID(),
		"document_id": documentID,
		"page_number": pageNumber,
		"ocr_text":    text,
		"ctime":       now,
		"mtime":       now,
	}
	sqlStr, args, err := builder.BuildInsert("pages", []map[string]interface{}{data})
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	_, err = r.db.ExecContext(ctx, sqlStr, args...)
	return err
}

func (r *PageRepo) findID(ctx context.Context, documentID string, pageNumber int) (string, error) {
	where := map[string]interface{}{
		"document_id": documentID,
		"page_number": pageNumber,
	}
	sqlStr, args, err := builder.BuildSelect("pages", where, []string{"id"})
	if err != nil {
		return "", err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return "", err
	}
	defer rows.Close()
	if !rows.Next() {
		return "", rows.Err()
	}
	var id string
	if err := rows.Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

func (r *PageRepo) ListByDocument(ctx context.Context, documentID string) ([]*model.Page, error) {
	where := map[string]interface{}{
		"document_id": documentID,
		"_orderby":    "page_number asc",
	}
	sqlStr, args, err := builder.BuildSelect("pages", where, []string{"id", "document_id", "page_number", "ocr_text", "ctime", "mtime"})
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	pages := make([]*model.Page, 0)
	for rows.Next() {
		var page model.Page
		if err := rows.Scan(&page.ID, &page.DocumentID, &page.PageNumber, &page.OCRText, &page.Ctime, &page.Mtime); err != nil {
			return nil, err
		}
		pages = append(pages, &page)
	}
	return pages, rows.Err()
}

func (r *PageRepo) CountByDocument(ctx context.Context, documentID string) (int, error) {
	where := map[string]interface{}{
		"document_id": documentID,
	}
	sqlStr, args, err := builder.BuildSelect("pages", where, []string{"count(*)"})
	if err != nil {
		return 0, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	var count int
	if err := r.db.QueryRowContext(ctx, sqlStr, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func newRowID() string {
	bytes := make([]byte, 16)
	_, _ = rand.Read(bytes)
	return hex.EncodeToString(bytes)
}
