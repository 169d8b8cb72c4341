package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/presslog/newsroom-backend/internal/http/response"
	"github.com/presslog/newsroom-backend/internal/services"
)

type ProductionHandler struct {
	productionService services.ProductionService
}

func NewProductionHandler(productionService services.ProductionService) *ProductionHandler {
	return &ProductionHandler{productionService: productionService}
}

func (ph *ProductionHandler) CreateEntry(c *gin.Context) {
	var input services.CreateEntryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	entry, err := ph.productionService.CreateEntry(c.Request.Context(), input)
	if err != nil {
		switch err {
		case services.ErrNoRequestData, services.ErrNotFound, services.ErrForbidden:
			respondServiceError(c, err)
		default:
			response.RespondError(c, http.StatusBadRequest, "invalid_entry", err)
		}
		return
	}
	response.RespondOK(c, entry)
}

func (ph *ProductionHandler) ListEntries(c *gin.Context) {
	entries, err := ph.productionService.ListEntries(
		c.Request.Context(),
		c.Query("search"),
		c.Query("section"),
		c.Query("date"),
	)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"entries": entries})
}

func (ph *ProductionHandler) DeleteEntry(c *gin.Context) {
	entryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_entry_id", err)
		return
	}
	if err := ph.productionService.DeleteEntry(c.Request.Context(), entryID); err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}
