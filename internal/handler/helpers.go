package handler

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/khizana-app/khizana/internal/pkg/errcode"
	appErr "github.com/khizana-app/khizana/internal/pkg/errors"
	"github.com/khizana-app/khizana/internal/pkg/response"
)

func handleError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	requestID, _ := c.Get("request_id")
	logutil.GetLogger(context.Background()).Warn("request failed",
		zap.Any("request_id", requestID),
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.Error(err))
	switch {
	case errors.Is(err, appErr.ErrNotFound):
		response.Error(c, errcode.ErrNotFound, "not found")
	case errors.Is(err, appErr.ErrInvalid):
		response.Error(c, errcode.ErrInvalid, err.Error())
	case errors.Is(err, appErr.ErrConflict):
		response.Error(c, errcode.ErrConflict, "conflict")
	case errors.Is(err, appErr.ErrNoSource):
		response.Error(c, errcode.ErrNoSource, err.Error())
	case errors.Is(err, appErr.ErrNoTextFound):
		response.Error(c, errcode.ErrAcquisitionFailed, err.Error())
	default:
		response.Error(c, errcode.ErrInternal, "internal error")
	}
}
