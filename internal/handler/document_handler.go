package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/khizana-app/khizana/internal/pkg/errcode"
	"github.com/khizana-app/khizana/internal/pkg/response"
	"github.com/khizana-app/khizana/internal/service"
)

type DocumentHandler struct {
	documents *service.DocumentService
}

func NewDocumentHandler(documents *service.DocumentService) *DocumentHandler {
	return &DocumentHandler{documents: documents}
}

type documentCreateRequest struct {
	Title     string `json:"title"`
	Kind      string `json:"kind"`
	Language  string `json:"language"`
	SourceKey string `json:"source_key"`
	SourceURL string `json:"source_url"`
}

func (h *DocumentHandler) Create(c *gin.Context) {
	var req documentCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errcode.ErrInvalid, "invalid request body")
		return
	}
	doc, err := h.documents.Create(c.Request.Context(), service.DocumentCreateInput{
		Title:     req.Title,
		Kind:      req.Kind,
		Language:  req.Language,
		SourceKey: req.SourceKey,
		SourceURL: req.SourceURL,
	})
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, doc)
}

func (h *DocumentHandler) Get(c *gin.Context) {
	doc, err := h.documents.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, doc)
}

func (h *DocumentHandler) List(c *gin.Context) {
	offset, _ := strconv.ParseUint(c.DefaultQuery("offset", "0"), 10, 32)
	limit, _ := strconv.ParseUint(c.DefaultQuery("limit", "50"), 10, 32)
	docs, err := h.documents.List(c.Request.Context(), uint(offset), uint(limit))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"documents": docs})
}

func (h *DocumentHandler) Pages(c *gin.Context) {
	pages, err := h.documents.Pages(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"pages": pages})
}
