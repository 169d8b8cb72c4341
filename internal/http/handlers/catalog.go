package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/presslog/newsroom-backend/internal/catalog"
	"github.com/presslog/newsroom-backend/internal/http/response"
)

type CatalogHandler struct {
	catalog *catalog.Catalog
}

func NewCatalogHandler(cat *catalog.Catalog) *CatalogHandler {
	return &CatalogHandler{catalog: cat}
}

func (ch *CatalogHandler) GetCatalog(c *gin.Context) {
	response.RespondOK(c, ch.catalog)
}
