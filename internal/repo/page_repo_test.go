package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/khizana-app/khizana/internal/model"
	"github.com/khizana-app/khizana/internal/repo"
)

func TestPageRepoUpsertIsIdempotent(t *testing.T) {
	conn, cleanup := openTestDB(t)
	defer cleanup()

	ctx := context.Background()
	now := time.Now().Unix()
	docs := repo.NewDocumentRepo(conn)
	require.NoError(t, docs.Create(ctx, &model.Document{
		ID: "doc-1", Title: "kitab", Kind: model.DocumentKindText, Language: "ar", Ctime: now, Mtime: now,
	}))

	pages := repo.NewPageRepo(conn)
	require.NoError(t, pages.Upsert(ctx, "doc-1", 1, "first run text"))
	require.NoError(t, pages.Upsert(ctx, "doc-1", 2, "second page text"))
	require.NoError(t, pages.Upsert(ctx, "doc-1", 1, "second run text"))

	count, err := pages.CountByDocument(ctx, "doc-1")
	require.NoError(t, err)
	require.Equal(t, 2, count)

	listed, err := pages.ListByDocument(ctx, "doc-1")
	require.NoError(t, err)
	require.Len(t, listed, 2)
	require.Equal(t, 1, listed[0].PageNumber)
	require.Equal(t, "second run text", listed[0].OCRText)
	require.Equal(t, 2, listed[1].PageNumber)
	require.Equal(t, "second page text", listed[1].OCRText)
}

func TestPageRepoListOrdersByPageNumber(t *testing.T) {
	conn, cleanup := openTestDB(t)
	defer cleanup()

	ctx := context.Background()
	now := time.Now().Unix()
	docs := repo.NewDocumentRepo(conn)
	require.NoError(t, docs.Create(ctx, &model.Document{
		ID: "doc-1", Title: "kitab", Kind: model.DocumentKindText, Language: "ar", Ctime: now, Mtime: now,
	}))

	pages := repo.NewPageRepo(conn)
	for _, number := range []int{3, 1, 2} {
		require.NoError(t, pages.Upsert(ctx, "doc-1", number, "page text body"))
	}

	listed, err := pages.ListByDocument(ctx, "doc-1")
	require.NoError(t, err)
	require.Len(t, listed, 3)
	for i, page := range listed {
		require.Equal(t, i+1, page.PageNumber)
	}
}
