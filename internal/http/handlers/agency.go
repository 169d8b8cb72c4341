package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/presslog/newsroom-backend/internal/http/response"
	"github.com/presslog/newsroom-backend/internal/services"
)

type AgencyHandler struct {
	agencyService services.AgencyService
}

func NewAgencyHandler(agencyService services.AgencyService) *AgencyHandler {
	return &AgencyHandler{agencyService: agencyService}
}

func (ah *AgencyHandler) GetAgency(c *gin.Context) {
	agency, err := ah.agencyService.GetAgency(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, agency)
}

func (ah *AgencyHandler) GetSettings(c *gin.Context) {
	settings, err := ah.agencyService.GetSettings(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, settings)
}

func (ah *AgencyHandler) UpdateSettings(c *gin.Context) {
	var patch services.SettingsPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	settings, err := ah.agencyService.UpdateSettings(c.Request.Context(), patch)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, settings)
}
