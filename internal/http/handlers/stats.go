package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/presslog/newsroom-backend/internal/http/response"
	"github.com/presslog/newsroom-backend/internal/services"
)

type StatsHandler struct {
	statsService services.StatsService
}

func NewStatsHandler(statsService services.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

func (sh *StatsHandler) Dashboard(c *gin.Context) {
	stats, err := sh.statsService.Dashboard(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, stats)
}

func (sh *StatsHandler) Sections(c *gin.Context) {
	report, err := sh.statsService.SectionReport(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"sections": report})
}

func (sh *StatsHandler) Journalists(c *gin.Context) {
	report, err := sh.statsService.JournalistReport(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"journalists": report})
}

func (sh *StatsHandler) Presence(c *gin.Context) {
	report, err := sh.statsService.PresenceReport(c.Request.Context(), c.Query("date"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"presence": report})
}
