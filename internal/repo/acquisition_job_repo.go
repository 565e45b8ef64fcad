package repo

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"

	"github.com/khizana-app/khizana/internal/model"
	"github.com/khizana-app/khizana/internal/pkg/dbutil"
	appErr "github.com/khizana-app/khizana/internal/pkg/errors"
)

var jobFields = []string{"id", "document_id", "title", "status", "progress", "processed", "total", "language", "error", "ctime", "mtime"}

type AcquisitionJobRepo struct {
	db *sql.DB
}

func NewAcquisitionJobRepo(db *sql.DB) *AcquisitionJobRepo {
	return &AcquisitionJobRepo{db: db}
}

func (r *AcquisitionJobRepo) Create(ctx context.Context, job *model.AcquisitionJob) error {
	data := map[string]interface{}{
		"id":          job.ID,
		"document_id": job.DocumentID,
		"title":       job.Title,
		"status":      job.Status,
		"progress":    job.Progress,
		"processed":   job.Processed,
		"total":       job.Total,
		"language":    job.Language,
		"error":       job.Error,
		"ctime":       job.Ctime,
		"mtime":       job.Mtime,
	}
	sqlStr, args, err := builder.BuildInsert("acquisition_jobs", []map[string]interface{}{data})
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	_, err = r.db.ExecContext(ctx, sqlStr, args...)
	return err
}

func (r *AcquisitionJobRepo) Get(ctx context.Context, jobID string) (*model.AcquisitionJob, error) {
	where := map[string]interface{}{
		"id": jobID,
	}
	sqlStr, args, err := builder.BuildSelect("acquisition_jobs", where, jobFields)
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
	var job model.AcquisitionJob
	if err := rows.Scan(&job.ID, &job.DocumentID, &job.Title, &job.Status, &job.Progress, &job.Processed, &job.Total, &job.Language, &job.Error, &job.Ctime, &job.Mtime); err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *AcquisitionJobRepo) UpdateStatus(ctx context.Context, jobID, status string, mtime int64) error {
	return r.update(ctx, jobID, map[string]interface{}{
		"status": status,
		"mtime":  mtime,
	})
}

func (r *AcquisitionJobRepo) UpdateProgress(ctx context.Context, jobID string, processed, total, progress int, mtime int64) error {
	return r.update(ctx, jobID, map[string]interface{}{
		"processed": processed,
		"total":     total,
		"progress":  progress,
		"mtime":     mtime,
	})
}

func (r *AcquisitionJobRepo) Finish(ctx context.Context, jobID, status, errMsg string, mtime int64) error {
	return r.update(ctx, jobID, map[string]interface{}{
		"status": status,
		"error":  errMsg,
		"mtime":  mtime,
	})
}

func (r *AcquisitionJobRepo) update(ctx context.Context, jobID string, fields map[string]interface{}) error {
	where := map[string]interface{}{
		"id": jobID,
	}
	sqlStr, args, err := builder.BuildUpdate("acquisition_jobs", where, fields)
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

// DeleteFinishedBefore drops completed and failed jobs older than the cutoff.
func (r *AcquisitionJobRepo) DeleteFinishedBefore(ctx context.Context, cutoff int64) (int64, error) {
	const query = `DELETE FROM acquisition_jobs WHERE ctime < $1 AND status IN ($2, $3)`
	res, err := r.db.ExecContext(ctx, query, cutoff, model.JobStatusCompleted, model.JobStatusFailed)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
