package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/briefly-ai/briefly/internal/middleware"
)

type RouterDeps struct {
	Summaries *SummaryHandler
	History   *HistoryHandler
	Files     *FileHandler
	// Minimum interval between summarize calls per client; zero
	// disables rate limiting.
	SummarizeWindow time.Duration
}

func RegisterRoutes(api *gin.RouterGroup, deps RouterDeps) {
	summarizeGroup := api.Group("")
	summarizeGroup.Use(middleware.RateLimit(deps.SummarizeWindow))
	summarizeGroup.POST("/summaries/text", deps.Summaries.SummarizeText)
	summarizeGroup.POST("/summaries/url", deps.Summaries.SummarizeURL)
	summarizeGroup.POST("/summaries/file", deps.Summaries.SummarizeFile)
	summarizeGroup.POST("/analyze/keywords", deps.Summaries.AnalyzeKeywords)

	api.GET("/history", deps.History.List)
	api.GET("/history/:id", deps.History.Get)
	api.DELETE("/history/:id", deps.History.Delete)

	api.GET("/files/:key", deps.Files.Get)
}
