package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/briefly-ai/briefly/internal/backend"
	"github.com/briefly-ai/briefly/internal/pkg/errcode"
	appErr "github.com/briefly-ai/briefly/internal/pkg/errors"
	"github.com/briefly-ai/briefly/internal/pkg/response"
	"github.com/briefly-ai/briefly/internal/summarize"
)

func handleError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	logutil.GetLogger(c.Request.Context()).Error("request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.Error(err),
	)
	switch {
	case errors.Is(err, appErr.ErrEmptyInput):
		response.Error(c, errcode.ErrEmptyInput, "input text is empty")
	case errors.Is(err, appErr.ErrInputTooLarge):
		response.Error(c, errcode.ErrInputTooLarge, err.Error())
	case errors.Is(err, appErr.ErrUnsupportedDoc):
		response.Error(c, errcode.ErrInvalidFile, err.Error())
	case errors.Is(err, appErr.ErrNotFound):
		response.Error(c, errcode.ErrNotFound, err.Error())
	case errors.Is(err, appErr.ErrInvalid):
		response.Error(c, errcode.ErrInvalid, err.Error())
	case errors.Is(err, appErr.ErrFetchFailed):
		response.Error(c, errcode.ErrFetchFailed, err.Error())
	case errors.Is(err, backend.ErrAuth):
		response.Error(c, errcode.ErrBackendAuth, "summarization backend rejected the configured credentials")
	case errors.Is(err, summarize.ErrAllAttemptsFailed),
		errors.Is(err, backend.ErrRateLimited),
		errors.Is(err, backend.ErrModelWarming),
		errors.Is(err, backend.ErrUnreachable):
		response.Error(c, errcode.ErrBackendUnavailable, "summarization backend is unavailable, try again later")
	default:
		response.Error(c, errcode.ErrInternal, "internal error")
	}
}
