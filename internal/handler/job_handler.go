package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/khizana-app/khizana/internal/pkg/errcode"
	"github.com/khizana-app/khizana/internal/pkg/response"
	"github.com/khizana-app/khizana/internal/repo"
)

type JobHandler struct {
	jobs *repo.AcquisitionJobRepo
}

func NewJobHandler(jobs *repo.AcquisitionJobRepo) *JobHandler {
	return &JobHandler{jobs: jobs}
}

func (h *JobHandler) Get(c *gin.Context) {
	jobID := c.Param("id")
	if jobID == "" {
		response.Error(c, errcode.ErrInvalid, "job id required")
		return
	}
	job, err := h.jobs.Get(c.Request.Context(), jobID)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, job)
}
