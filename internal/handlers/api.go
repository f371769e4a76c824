package handlers

import (
	"net/http"

	"avatar_platform/internal/models"

	"github.com/gin-gonic/gin"
)

const statusOK = "ok"

// ProductList is the JSON catalog payload.
type ProductList struct {
	Count    int              `json:"count" example:"4"`
	Products []models.Product `json:"products"`
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}

// @Summary      List products
// @Description  Returns the whole catalog in insertion order.
// @Tags         catalog
// @Produce      json
// @Success      200  {object}  ProductList
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/products [get]
func (h *Handler) listProducts(c *gin.Context) {
	products, err := h.services.List(c.Request.Context())
	if err != nil {
		h.logError("api_catalog_list_failed", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "catalog unavailable"})
		return
	}
	if products == nil {
		products = []models.Product{}
	}
	c.JSON(http.StatusOK, ProductList{Count: len(products), Products: products})
}
