package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/livro_caixa/internal/core/ports/services"
	"github.com/SscSPs/livro_caixa/internal/dto"
	"github.com/SscSPs/livro_caixa/internal/export"
	"github.com/SscSPs/livro_caixa/internal/middleware"
	"github.com/gin-gonic/gin"
)

// closureHandler serves the closure history, reopening and per-closure exports.
type closureHandler struct {
	closureService portssvc.ClosureSvcFacade
	drawerService  portssvc.DrawerStateResolver
	reportService  portssvc.ReportSvcFacade
}

func registerClosureRoutes(rg *gin.RouterGroup, closureService portssvc.ClosureSvcFacade, drawerService portssvc.DrawerStateResolver, reportService portssvc.ReportSvcFacade) {
	h := &closureHandler{closureService: closureService, drawerService: drawerService, reportService: reportService}

	closures := rg.Group("/closures")
	{
		closures.GET("", h.listClosures)
		closures.GET("/months", h.listMonths)
		closures.GET("/:closureID", h.getClosure)
		closures.DELETE("/:closureID", h.deleteClosure)
		closures.POST("/:closureID/reopen", h.reopenClosure)
		closures.GET("/:closureID/export", h.exportClosure)
	}
}

// listClosures godoc
// @Summary List closures
// @Description History of closures, newest first, optionally filtered by month.
// @Tags closures
// @Produce json
// @Param month query string false "Month filter (YYYY-MM)"
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Token of the next page"
// @Success 200 {object} dto.ListClosuresResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /closures [get]
func (h *closureHandler) listClosures(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var params dto.ListClosuresParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err)
		return
	}

	closures, nextToken, err := h.closureService.ListClosures(c.Request.Context(), userID, params)
	if err != nil {
		handleServiceError(c, err, "Falha ao listar fechamentos")
		return
	}
	c.JSON(http.StatusOK, dto.ToListClosuresResponse(closures, nextToken))
}

// listMonths godoc
// @Summary Months with closures
// @Description Distinct months that have closures, newest first, with their counts.
// @Tags closures
// @Produce json
// @Success 200 {array} dto.ClosureMonthResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /closures/months [get]
func (h *closureHandler) listMonths(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	months, err := h.closureService.ListClosureMonths(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err, "Falha ao listar meses")
		return
	}
	c.JSON(http.StatusOK, dto.ToClosureMonthResponses(months))
}

// getClosure godoc
// @Summary Get a closure
// @Tags closures
// @Produce json
// @Param closureID path string true "Closure ID"
// @Success 200 {object} dto.ClosureResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /closures/{closureID} [get]
func (h *closureHandler) getClosure(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	closure, err := h.closureService.GetClosure(c.Request.Context(), userID, c.Param("closureID"))
	if err != nil {
		handleServiceError(c, err, "Falha ao carregar fechamento")
		return
	}
	c.JSON(http.StatusOK, dto.ToClosureResponse(closure))
}

// deleteClosure godoc
// @Summary Delete a closure
// @Tags closures
// @Param closureID path string true "Closure ID"
// @Success 204
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /closures/{closureID} [delete]
func (h *closureHandler) deleteClosure(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	if err := h.closureService.DeleteClosure(c.Request.Context(), userID, c.Param("closureID")); err != nil {
		handleServiceError(c, err, "Falha ao excluir fechamento")
		return
	}
	c.Status(http.StatusNoContent)
}

// reopenClosure godoc
// @Summary Reopen a closure
// @Description Undoes a closure so its drawer is open again. Any other open drawer is discarded.
// @Tags closures
// @Produce json
// @Param closureID path string true "Closure ID"
// @Success 200 {object} dto.ReopenResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /closures/{closureID}/reopen [post]
func (h *closureHandler) reopenClosure(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	closureID := c.Param("closureID")

	reopened, err := h.closureService.ReopenClosure(c.Request.Context(), userID, closureID)
	if err != nil {
		handleServiceError(c, err, "Falha ao reabrir caixa")
		return
	}
	if !reopened {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Fechamento não encontrado"})
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Closure reopened", slog.String("closure_id", closureID))
	c.JSON(http.StatusOK, dto.ReopenResponse{
		Reopened: true,
		Drawer:   dto.ToDrawerStatusResponse(h.drawerService.Status(c.Request.Context(), userID)),
	})
}

// exportClosure godoc
// @Summary Export a closure
// @Description Downloads a closure as PDF or HTML.
// @Tags closures
// @Produce application/pdf
// @Produce text/html
// @Param closureID path string true "Closure ID"
// @Param format query string false "pdf or html" default(pdf)
// @Success 200 {file} file
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /closures/{closureID}/export [get]
func (h *closureHandler) exportClosure(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var params dto.ExportParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err)
		return
	}

	doc, err := h.reportService.ExportClosure(c.Request.Context(), userID, c.Param("closureID"), export.Format(params.Format))
	if err != nil {
		handleServiceError(c, err, "Falha ao exportar fechamento")
		return
	}
	sendDocument(c, doc)
}

// sendDocument writes doc as a download.
func sendDocument(c *gin.Context, doc *export.Document) {
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, doc.Filename))
	c.Data(http.StatusOK, doc.ContentType, doc.Body)
}
