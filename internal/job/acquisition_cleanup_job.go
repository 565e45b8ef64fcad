package job

import (
	"context"
	"time"

	"github.com/khizana-app/khizana/internal/repo"
)

type AcquisitionCleanupJob struct {
	jobs   *repo.AcquisitionJobRepo
	maxAge time.Duration
}

func NewAcquisitionCleanupJob(jobs *repo.AcquisitionJobRepo, maxAge time.Duration) *AcquisitionCleanupJob {
	return &AcquisitionCleanupJob{jobs: jobs, maxAge: maxAge}
}

func (j *AcquisitionCleanupJob) Name() string {
	return "acquisition_cleanup"
}

func (j *AcquisitionCleanupJob) Run(ctx context.Context) error {
	if j.jobs == nil {
		return nil
	}
	maxAge := j.maxAge
	if maxAge <= 0 {
		maxAge = 24 * time.Hour
	}
	cutoff := time.Now().Add(-maxAge).Unix()
	_, err := j.jobs.DeleteFinishedBefore(ctx, cutoff)
	return err
}
