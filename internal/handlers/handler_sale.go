package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/livro_caixa/internal/core/ports/services"
	"github.com/SscSPs/livro_caixa/internal/dto"
	"github.com/gin-gonic/gin"
)

// saleHandler handles HTTP requests related to the sales of the open drawer.
type saleHandler struct {
	saleService portssvc.SaleSvcFacade
}

func registerSaleRoutes(rg *gin.RouterGroup, saleService portssvc.SaleSvcFacade) {
	h := &saleHandler{saleService: saleService}

	sales := rg.Group("/sales")
	{
		sales.GET("", h.listSales)
		sales.POST("", h.createSale)
		sales.PUT("/:saleID", h.updateSale)
		sales.DELETE("/:saleID", h.deleteSale)
	}
}

// listSales godoc
// @Summary List sales
// @Description Sales of the open drawer, oldest first. Empty when no drawer is open.
// @Tags sales
// @Produce json
// @Success 200 {array} dto.SaleResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /sales [get]
func (h *saleHandler) listSales(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	sales, err := h.saleService.ListCurrentSales(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err, "Falha ao listar vendas")
		return
	}
	c.JSON(http.StatusOK, dto.ToSaleResponses(sales))
}

// createSale godoc
// @Summary Register a sale
// @Tags sales
// @Accept json
// @Produce json
// @Param sale body dto.CreateSaleRequest true "Sale"
// @Success 201 {object} dto.SaleResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "No open drawer"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /sales [post]
func (h *saleHandler) createSale(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	sale, err := h.saleService.CreateSale(c.Request.Context(), userID, req)
	if err != nil {
		handleServiceError(c, err, "Falha ao registrar venda")
		return
	}
	c.JSON(http.StatusCreated, dto.ToSaleResponse(sale))
}

// updateSale godoc
// @Summary Update a sale
// @Description Changes any subset of a sale of the open drawer. The total is recomputed.
// @Tags sales
// @Accept json
// @Produce json
// @Param saleID path string true "Sale ID"
// @Param sale body dto.UpdateSaleRequest true "Fields to change"
// @Success 200 {object} dto.SaleResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Sale belongs to a closed drawer"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /sales/{saleID} [put]
func (h *saleHandler) updateSale(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	sale, err := h.saleService.UpdateSale(c.Request.Context(), userID, c.Param("saleID"), req)
	if err != nil {
		handleServiceError(c, err, "Falha ao atualizar venda")
		return
	}
	c.JSON(http.StatusOK, dto.ToSaleResponse(sale))
}

// deleteSale godoc
// @Summary Delete a sale
// @Tags sales
// @Param saleID path string true "Sale ID"
// @Success 204
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /sales/{saleID} [delete]
func (h *saleHandler) deleteSale(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	if err := h.saleService.DeleteSale(c.Request.Context(), userID, c.Param("saleID")); err != nil {
		handleServiceError(c, err, "Falha ao excluir venda")
		return
	}
	c.Status(http.StatusNoContent)
}
