package handler

import (
	"github.com/gin-gonic/gin"
)

type RouterDeps struct {
	Documents   *DocumentHandler
	Acquisition *AcquisitionHandler
	Jobs        *JobHandler
	Files       *FileHandler
}

func RegisterRoutes(api *gin.RouterGroup, deps RouterDeps) {
	api.POST("/documents", deps.Documents.Create)
	api.GET("/documents", deps.Documents.List)
	api.GET("/documents/:id", deps.Documents.Get)
	api.GET("/documents/:id/pages", deps.Documents.Pages)

	api.POST("/documents/:id/acquire", deps.Acquisition.Acquire)
	api.POST("/documents/:id/acquire/jobs", deps.Acquisition.StartJob)
	api.GET("/acquire/jobs/:id", deps.Jobs.Get)
	api.POST("/acquire/batch", deps.Acquisition.RunBatch)

	api.POST("/files/upload", deps.Files.Upload)
	api.GET("/files/:key", deps.Files.Get)
}
