package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/livro_caixa/internal/core/ports/services"
	"github.com/SscSPs/livro_caixa/internal/dto"
	"github.com/SscSPs/livro_caixa/internal/middleware"
	"github.com/gin-gonic/gin"
)

// drawerHandler serves the lifecycle of the cash drawer: status, opening, dashboard and closing.
type drawerHandler struct {
	drawerService  portssvc.DrawerSvcFacade
	closureService portssvc.ClosureSvcFacade
}

func registerDrawerRoutes(rg *gin.RouterGroup, drawerService portssvc.DrawerSvcFacade, closureService portssvc.ClosureSvcFacade) {
	h := &drawerHandler{drawerService: drawerService, closureService: closureService}

	drawer := rg.Group("/drawer")
	{
		drawer.GET("/status", h.getStatus)
		drawer.POST("/open", h.open)
		drawer.GET("/summary", h.getSummary)
		drawer.POST("/close", h.close)
	}
}

// getStatus godoc
// @Summary Drawer status
// @Description Tells whether a drawer is open and which screens the client may show.
// @Tags drawer
// @Produce json
// @Success 200 {object} dto.DrawerStatusResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /drawer/status [get]
func (h *drawerHandler) getStatus(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, dto.ToDrawerStatusResponse(h.drawerService.Status(c.Request.Context(), userID)))
}

// open godoc
// @Summary Open the drawer
// @Description Starts a new cash session with the given starting amount.
// @Tags drawer
// @Accept json
// @Produce json
// @Param opening body dto.OpenDrawerRequest true "Starting amount"
// @Success 201 {object} dto.OpeningResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "A drawer is already open"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /drawer/open [post]
func (h *drawerHandler) open(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.OpenDrawerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	opening, err := h.drawerService.Open(c.Request.Context(), userID, *req.StartingAmount)
	if err != nil {
		handleServiceError(c, err, "Falha ao abrir caixa")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Drawer opened", slog.String("opening_id", opening.OpeningID))
	c.JSON(http.StatusCreated, dto.ToOpeningResponse(opening))
}

// getSummary godoc
// @Summary Dashboard summary
// @Description Running totals of the open drawer.
// @Tags drawer
// @Produce json
// @Success 200 {object} dto.DrawerSummaryResponse
// @Failure 401 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "No open drawer"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /drawer/summary [get]
func (h *drawerHandler) getSummary(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	summary, err := h.drawerService.Summary(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err, "Falha ao carregar resumo do caixa")
		return
	}
	c.JSON(http.StatusOK, dto.ToDrawerSummaryResponse(summary))
}

// close godoc
// @Summary Close the drawer
// @Description Reconciles the open drawer against the counted cash and records the closure.
// @Tags drawer
// @Accept json
// @Produce json
// @Param closure body dto.CloseDrawerRequest true "Counted amount or cash breakdown"
// @Success 201 {object} dto.CloseDrawerResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "No open drawer"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /drawer/close [post]
func (h *drawerHandler) close(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.CloseDrawerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	closure, err := h.closureService.CloseDrawer(c.Request.Context(), userID, req)
	if err != nil {
		handleServiceError(c, err, "Falha ao fechar caixa")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Drawer closed",
		slog.String("closure_id", closure.ClosureID),
		slog.String("difference", closure.Difference.StringFixed(2)),
	)
	c.JSON(http.StatusCreated, dto.CloseDrawerResponse{
		Closure: dto.ToClosureResponse(closure),
		Drawer:  dto.ToDrawerStatusResponse(h.drawerService.Status(c.Request.Context(), userID)),
	})
}
