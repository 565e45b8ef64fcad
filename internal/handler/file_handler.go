package handler

import (
	"crypto/rand"
	"encoding/hex"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/khizana-app/khizana/internal/filestore"
	"github.com/khizana-app/khizana/internal/pkg/errcode"
	"github.com/khizana-app/khizana/internal/pkg/response"
	"github.com/khizana-app/khizana/internal/service"
)

type FileHandler struct {
	store     filestore.Store
	documents *service.DocumentService
}

type UploadResponse struct {
	Key  string `json:"key"`
	URL  string `json:"url"`
	Name string `json:"name"`
}

func NewFileHandler(store filestore.Store, documents *service.DocumentService) *FileHandler {
	return &FileHandler{store: store, documents: documents}
}

// Upload stores a source binary; with a document_id form field the stored
// key is attached to that document as its source reference.
func (h *FileHandler) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		response.Error(c, errcode.ErrInvalidFile, "file is required")
		return
	}
	opened, err := file.Open()
	if err != nil {
		response.Error(c, errcode.ErrInvalidFile, "failed to open file")
		return
	}
	defer opened.Close()

	key := buildFileKey(file.Filename)
	if err := h.store.Save(c.Request.Context(), key, opened, file.Size); err != nil {
		response.Error(c, errcode.ErrUploadFailed, "failed to upload file")
		return
	}
	if docID := c.PostForm("document_id"); docID != "" {
		if err := h.documents.AttachSource(c.Request.Context(), docID, key); err != nil {
			handleError(c, err)
			return
		}
	}
	response.Success(c, UploadResponse{
		Key:  key,
		URL:  h.store.URL(key, requestBaseURL(c)),
		Name: file.Filename,
	})
}

func (h *FileHandler) Get(c *gin.Context) {
	if h.store.Type() != "local" {
		c.Status(http.StatusNotFound)
		return
	}
	key := c.Param("key")
	if key == "" || strings.Contains(key, "/") || strings.Contains(key, "\\") {
		c.Status(http.StatusBadRequest)
		return
	}
	file, err := h.store.Open(c.Request.Context(), key)
	if err != nil {
		c.Status(http.StatusNotFound)
		return
	}
	defer file.Close()
	contentType := mime.TypeByExtension(filepath.Ext(key))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Header("Content-Type", contentType)
	_, _ = file.Seek(0, io.SeekStart)
	_, _ = io.Copy(c.Writer, file)
}

func buildFileKey(filename string) string {
	bytes := make([]byte, 12)
	_, _ = rand.Read(bytes)
	ext := strings.ToLower(filepath.Ext(filename))
	return hex.EncodeToString(bytes) + ext
}

func requestBaseURL(c *gin.Context) string {
	scheme := "http"
	if c.Request.TLS != nil || c.GetHeader("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	return scheme + "://" + c.Request.Host
}
