package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/livro_caixa/internal/core/ports/services"
	"github.com/SscSPs/livro_caixa/internal/dto"
	"github.com/gin-gonic/gin"
)

type withdrawalHandler struct {
	withdrawalService portssvc.WithdrawalSvcFacade
}

func registerWithdrawalRoutes(rg *gin.RouterGroup, withdrawalService portssvc.WithdrawalSvcFacade) {
	h := &withdrawalHandler{withdrawalService: withdrawalService}

	withdrawals := rg.Group("/withdrawals")
	{
		withdrawals.GET("", h.listWithdrawals)
		withdrawals.POST("", h.createWithdrawal)
		withdrawals.PUT("/:withdrawalID", h.updateWithdrawal)
		withdrawals.DELETE("/:withdrawalID", h.deleteWithdrawal)
	}
}

// listWithdrawals godoc
// @Summary List withdrawals
// @Description Withdrawals of the open drawer, oldest first. Empty when no drawer is open.
// @Tags withdrawals
// @Produce json
// @Success 200 {array} dto.WithdrawalResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /withdrawals [get]
func (h *withdrawalHandler) listWithdrawals(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	withdrawals, err := h.withdrawalService.ListCurrentWithdrawals(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err, "Falha ao listar retiradas")
		return
	}
	c.JSON(http.StatusOK, dto.ToWithdrawalResponses(withdrawals))
}

// createWithdrawal godoc
// @Summary Register a withdrawal
// @Tags withdrawals
// @Accept json
// @Produce json
// @Param withdrawal body dto.CreateWithdrawalRequest true "Withdrawal"
// @Success 201 {object} dto.WithdrawalResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "No open drawer"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /withdrawals [post]
func (h *withdrawalHandler) createWithdrawal(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.CreateWithdrawalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	withdrawal, err := h.withdrawalService.CreateWithdrawal(c.Request.Context(), userID, req)
	if err != nil {
		handleServiceError(c, err, "Falha ao registrar retirada")
		return
	}
	c.JSON(http.StatusCreated, dto.ToWithdrawalResponse(withdrawal))
}

// updateWithdrawal godoc
// @Summary Update a withdrawal
// @Tags withdrawals
// @Accept json
// @Produce json
// @Param withdrawalID path string true "Withdrawal ID"
// @Param withdrawal body dto.UpdateWithdrawalRequest true "Fields to change"
// @Success 200 {object} dto.WithdrawalResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Withdrawal belongs to a closed drawer"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /withdrawals/{withdrawalID} [put]
func (h *withdrawalHandler) updateWithdrawal(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateWithdrawalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	withdrawal, err := h.withdrawalService.UpdateWithdrawal(c.Request.Context(), userID, c.Param("withdrawalID"), req)
	if err != nil {
		handleServiceError(c, err, "Falha ao atualizar retirada")
		return
	}
	c.JSON(http.StatusOK, dto.ToWithdrawalResponse(withdrawal))
}

// deleteWithdrawal godoc
// @Summary Delete a withdrawal
// @Tags withdrawals
// @Param withdrawalID path string true "Withdrawal ID"
// @Success 204
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /withdrawals/{withdrawalID} [delete]
func (h *withdrawalHandler) deleteWithdrawal(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	if err := h.withdrawalService.DeleteWithdrawal(c.Request.Context(), userID, c.Param("withdrawalID")); err != nil {
		handleServiceError(c, err, "Falha ao excluir retirada")
		return
	}
	c.Status(http.StatusNoContent)
}
