package handler

import (
	"io"

	"github.com/gin-gonic/gin"

	"github.com/khizana-app/khizana/internal/pkg/errcode"
	"github.com/khizana-app/khizana/internal/pkg/response"
	"github.com/khizana-app/khizana/internal/service"
)

type AcquisitionHandler struct {
	acquisition *service.AcquisitionService
}

func NewAcquisitionHandler(acquisition *service.AcquisitionService) *AcquisitionHandler {
	return &AcquisitionHandler{acquisition: acquisition}
}

type acquireRequest struct {
	Strategy string `json:"strategy"`
	Method   string `json:"method"`
	Language string `json:"language"`
}

func (h *AcquisitionHandler) Acquire(c *gin.Context) {
	var req acquireRequest
	if err := c.ShouldBindJSON(&req); err != nil && err != io.EOF {
		response.Error(c, errcode.ErrInvalid, "invalid request body")
		return
	}
	summary, err := h.acquisition.RunForeground(c.Request.Context(), c.Param("id"), service.AcquireOptions{
		Strategy: req.Strategy,
		Method:   req.Method,
		Language: req.Language,
	}, nil)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, summary)
}

type startJobRequest struct {
	Title    string `json:"title"`
	Language string `json:"language"`
}

func (h *AcquisitionHandler) StartJob(c *gin.Context) {
	var req startJobRequest
	if err := c.ShouldBindJSON(&req); err != nil && err != io.EOF {
		response.Error(c, errcode.ErrInvalid, "invalid request body")
		return
	}
	jobID, err := h.acquisition.StartJob(c.Request.Context(), service.StartJobInput{
		DocumentID: c.Param("id"),
		Title:      req.Title,
		Language:   req.Language,
	})
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"job_id": jobID})
}

type batchRequest struct {
	DocumentIDs []string `json:"document_ids"`
	Language    string   `json:"language"`
}

func (h *AcquisitionHandler) RunBatch(c *gin.Context) {
	var req batchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errcode.ErrInvalid, "invalid request body")
		return
	}
	if len(req.DocumentIDs) == 0 {
		response.Error(c, errcode.ErrInvalid, "document_ids is required")
		return
	}
	result := h.acquisition.RunBatch(c.Request.Context(), req.DocumentIDs, req.Language)
	response.Success(c, result)
}
