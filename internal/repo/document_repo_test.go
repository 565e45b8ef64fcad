package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/khizana-app/khizana/internal/model"
	appErr "github.com/khizana-app/khizana/internal/pkg/errors"
	"github.com/khizana-app/khizana/internal/repo"
)

func TestDocumentRepoCRUD(t *testing.T) {
	conn, cleanup := openTestDB(t)
	defer cleanup()

	ctx := context.Background()
	docs := repo.NewDocumentRepo(conn)
	now := time.Now().Unix()
	doc := &model.Document{
		ID:        "doc-1",
		Title:     "muqaddima",
		Kind:      model.DocumentKindText,
		Language:  "ar",
		SourceKey: "doc-1.pdf",
		Ctime:     now,
		Mtime:     now,
	}
	require.NoError(t, docs.Create(ctx, doc))

	fetched, err := docs.GetByID(ctx, "doc-1")
	require.NoError(t, err)
	require.Equal(t, "muqaddima", fetched.Title)
	require.False(t, fetched.OCRProcessed)

	_, err = docs.GetByID(ctx, "missing")
	require.ErrorIs(t, err, appErr.ErrNotFound)

	require.NoError(t, docs.UpdateAcquisition(ctx, "doc-1", 12, now+1))
	fetched, err = docs.GetByID(ctx, "doc-1")
	require.NoError(t, err)
	require.True(t, fetched.OCRProcessed)
	require.Equal(t, 12, fetched.PagesCount)

	require.NoError(t, docs.UpdateSource(ctx, "doc-1", "doc-1-v2.pdf", now+2))
	fetched, err = docs.GetByID(ctx, "doc-1")
	require.NoError(t, err)
	require.Equal(t, "doc-1-v2.pdf", fetched.SourceKey)

	require.ErrorIs(t, docs.UpdateAcquisition(ctx, "missing", 1, now), appErr.ErrNotFound)
}

func TestDocumentRepoListOrdersByMtimeDesc(t *testing.T) {
	conn, cleanup := openTestDB(t)
	defer cleanup()

	ctx := context.Background()
	docs := repo.NewDocumentRepo(conn)
	base := time.Now().Unix()
	for i, id := range []string{"doc-a", "doc-b", "doc-c"} {
		require.NoError(t, docs.Create(ctx, &model.Document{
			ID: id, Title: id, Kind: model.DocumentKindText, Language: "ar",
			Ctime: base, Mtime: base + int64(i),
		}))
	}

	listed, err := docs.List(ctx, 0, 2)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	require.Equal(t, "doc-c", listed[0].ID)
	require.Equal(t, "doc-b", listed[1].ID)

	listed, err = docs.List(ctx, 2, 2)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	require.Equal(t, "doc-a", listed[0].ID)
}
