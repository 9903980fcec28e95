package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/briefly-ai/briefly/internal/model"
	"github.com/briefly-ai/briefly/internal/pkg/errcode"
	"github.com/briefly-ai/briefly/internal/pkg/response"
	"github.com/briefly-ai/briefly/internal/service"
)

type SummaryHandler struct {
	svc       *service.SummaryService
	maxUpload int64
}

func NewSummaryHandler(svc *service.SummaryService, maxUpload int64) *SummaryHandler {
	if maxUpload <= 0 {
		maxUpload = 16 << 20
	}
	return &SummaryHandler{svc: svc, maxUpload: maxUpload}
}

type summarizeTextRequest struct {
	Text string `json:"text"`
}

type summarizeURLRequest struct {
	URL string `json:"url"`
}

type analyzeRequest struct {
	Text string `json:"text"`
}

type summaryResponse struct {
	RecordID string               `json:"record_id"`
	Title    string               `json:"title"`
	Result   *model.SummaryResult `json:"result"`
	Article  *model.Article       `json:"article,omitempty"`
}

func (h *SummaryHandler) SummarizeText(c *gin.Context) {
	var req summarizeTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errcode.ErrInvalid, "invalid request")
		return
	}
	result, record, err := h.svc.SummarizeText(c.Request.Context(), req.Text)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, summaryResponse{RecordID: record.ID, Title: record.Title, Result: result})
}

func (h *SummaryHandler) SummarizeURL(c *gin.Context) {
	var req summarizeURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errcode.ErrInvalid, "invalid request")
		return
	}
	result, article, record, err := h.svc.SummarizeURL(c.Request.Context(), req.URL)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, summaryResponse{RecordID: record.ID, Title: record.Title, Result: result, Article: article})
}

func (h *SummaryHandler) SummarizeFile(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		response.Error(c, errcode.ErrInvalidFile, "file is required")
		return
	}
	if file.Size > h.maxUpload {
		response.Error(c, errcode.ErrInvalidFile, "file exceeds upload limit of "+formatUploadLimit(h.maxUpload))
		return
	}
	opened, err := file.Open()
	if err != nil {
		response.Error(c, errcode.ErrInvalidFile, "failed to open file")
		return
	}
	defer opened.Close()

	result, record, err := h.svc.SummarizeFile(c.Request.Context(), file.Filename, opened, file.Size)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, summaryResponse{RecordID: record.ID, Title: record.Title, Result: result})
}

func (h *SummaryHandler) AnalyzeKeywords(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errcode.ErrInvalid, "invalid request")
		return
	}
	report, err := h.svc.AnalyzeKeywords(c.Request.Context(), req.Text)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, report)
}
