package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/presslog/newsroom-backend/internal/http/response"
	"github.com/presslog/newsroom-backend/internal/services"
)

var errMissingDate = errors.New("date query parameter is required")

type PresenceHandler struct {
	presenceService services.PresenceService
}

func NewPresenceHandler(presenceService services.PresenceService) *PresenceHandler {
	return &PresenceHandler{presenceService: presenceService}
}

func (ph *PresenceHandler) Heartbeat(c *gin.Context) {
	var req struct {
		Interacted bool `json:"interacted"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	result, err := ph.presenceService.Heartbeat(c.Request.Context(), req.Interacted)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, result)
}

func (ph *PresenceHandler) Roster(c *gin.Context) {
	roster, err := ph.presenceService.Roster(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"roster": roster})
}

func (ph *PresenceHandler) DayLog(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_user_id", err)
		return
	}
	dateString := c.Query("date")
	if dateString == "" {
		response.RespondError(c, http.StatusBadRequest, "missing_date", errMissingDate)
		return
	}
	result, err := ph.presenceService.DayLog(c.Request.Context(), userID, dateString)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, result)
}
