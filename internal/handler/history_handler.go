package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/briefly-ai/briefly/internal/pkg/response"
	"github.com/briefly-ai/briefly/internal/service"
)

type HistoryHandler struct {
	svc *service.SummaryService
}

func NewHistoryHandler(svc *service.SummaryService) *HistoryHandler {
	return &HistoryHandler{svc: svc}
}

func (h *HistoryHandler) List(c *gin.Context) {
	limit := parseUintQuery(c, "limit", 20)
	offset := parseUintQuery(c, "offset", 0)
	if limit > 100 {
		limit = 100
	}
	records, total, err := h.svc.ListHistory(c.Request.Context(), c.Query("source_kind"), limit, offset)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"items": records, "total": total})
}

func (h *HistoryHandler) Get(c *gin.Context) {
	record, err := h.svc.GetRecord(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, record)
}

func (h *HistoryHandler) Delete(c *gin.Context) {
	if err := h.svc.DeleteRecord(c.Request.Context(), c.Param("id")); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{})
}

func parseUintQuery(c *gin.Context, name string, def uint) uint {
	raw := c.Query(name)
	if raw == "" {
		return def
	}
	value, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return def
	}
	return uint(value)
}
