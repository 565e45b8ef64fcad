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

func TestAcquisitionJobRepoLifecycle(t *testing.T) {
	conn, cleanup := openTestDB(t)
	defer cleanup()

	ctx := context.Background()
	jobs := repo.NewAcquisitionJobRepo(conn)
	now := time.Now().Unix()
	require.NoError(t, jobs.Create(ctx, &model.AcquisitionJob{
		ID:         "job-1",
		DocumentID: "doc-1",
		Title:      "kitab",
		Status:     model.JobStatusQueued,
		Language:   "ar",
		Ctime:      now,
		Mtime:      now,
	}))

	require.NoError(t, jobs.UpdateStatus(ctx, "job-1", model.JobStatusRunning, now+1))
	require.NoError(t, jobs.UpdateProgress(ctx, "job-1", 3, 10, 30, now+2))

	job, err := jobs.Get(ctx, "job-1")
	require.NoError(t, err)
	require.Equal(t, model.JobStatusRunning, job.Status)
	require.Equal(t, 3, job.Processed)
	require.Equal(t, 10, job.Total)
	require.Equal(t, 30, job.Progress)

	require.NoError(t, jobs.Finish(ctx, "job-1", model.JobStatusFailed, "recognizer crashed", now+3))
	job, err = jobs.Get(ctx, "job-1")
	require.NoError(t, err)
	require.Equal(t, model.JobStatusFailed, job.Status)
	require.Equal(t, "recognizer crashed", job.Error)

	_, err = jobs.Get(ctx, "missing")
	require.ErrorIs(t, err, appErr.ErrNotFound)
	require.ErrorIs(t, jobs.UpdateStatus(ctx, "missing", model.JobStatusRunning, now), appErr.ErrNotFound)
}

func TestAcquisitionJobRepoDeleteFinishedBefore(t *testing.T) {
	conn, cleanup := openTestDB(t)
	defer cleanup()

	ctx := context.Background()
	jobs := repo.NewAcquisitionJobRepo(conn)
	now := time.Now().Unix()
	seed := []struct {
		id     string
		status string
		ctime  int64
	}{
		{"job-old-done", model.JobStatusCompleted, now - 7200},
		{"job-old-failed", model.JobStatusFailed, now - 7200},
		{"job-old-running", model.JobStatusRunning, now - 7200},
		{"job-fresh-done", model.JobStatusCompleted, now},
	}
	for _, s := range seed {
		require.NoError(t, jobs.Create(ctx, &model.AcquisitionJob{
			ID: s.id, DocumentID: "doc-1", Status: s.status, Ctime: s.ctime, Mtime: s.ctime,
		}))
	}

	deleted, err := jobs.DeleteFinishedBefore(ctx, now-3600)
	require.NoError(t, err)
	require.EqualValues(t, 2, deleted)

	_, err = jobs.Get(ctx, "job-old-done")
	require.ErrorIs(t, err, appErr.ErrNotFound)
	_, err = jobs.Get(ctx, "job-old-running")
	require.NoError(t, err, "running jobs survive cleanup regardless of age")
	_, err = jobs.Get(ctx, "job-fresh-done")
	require.NoError(t, err)
}
