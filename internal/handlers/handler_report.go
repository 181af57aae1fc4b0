package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/livro_caixa/internal/core/ports/services"
	"github.com/SscSPs/livro_caixa/internal/dto"
	"github.com/SscSPs/livro_caixa/internal/export"
	"github.com/SscSPs/livro_caixa/internal/utils/datetime"
	"github.com/gin-gonic/gin"
)

type reportHandler struct {
	reportService portssvc.ReportSvcFacade
}

func registerReportRoutes(rg *gin.RouterGroup, reportService portssvc.ReportSvcFacade) {
	h := &reportHandler{reportService: reportService}

	reports := rg.Group("/reports")
	{
		reports.GET("/monthly", h.getMonthlyReport)
		reports.GET("/monthly/export", h.exportMonthlyReport)
	}
}

// getMonthlyReport godoc
// @Summary Monthly report
// @Description Totals of every closure in a month.
// @Tags reports
// @Produce json
// @Param month query string true "Month (YYYY-MM)"
// @Success 200 {object} dto.MonthlyReportResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "No closures in the month"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/monthly [get]
func (h *reportHandler) getMonthlyReport(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var params dto.MonthlyReportParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err)
		return
	}
	year, month, err := datetime.ParseMonth(params.Month)
	if err != nil {
		bindError(c, err)
		return
	}

	report, err := h.reportService.MonthlyReport(c.Request.Context(), userID, year, month)
	if err != nil {
		handleServiceError(c, err, "Falha ao gerar relatório")
		return
	}
	c.JSON(http.StatusOK, dto.ToMonthlyReportResponse(report))
}

// exportMonthlyReport godoc
// @Summary Export monthly report
// @Description Downloads the monthly report as PDF, HTML or XLSX.
// @Tags reports
// @Produce application/pdf
// @Produce text/html
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param month query string true "Month (YYYY-MM)"
// @Param format query string false "pdf, html or xlsx" default(pdf)
// @Success 200 {file} file
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "No closures in the month"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/monthly/export [get]
func (h *reportHandler) exportMonthlyReport(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var params dto.MonthlyReportParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err)
		return
	}
	var exportParams dto.ExportParams
	if err := c.ShouldBindQuery(&exportParams); err != nil {
		bindError(c, err)
		return
	}
	year, month, err := datetime.ParseMonth(params.Month)
	if err != nil {
		bindError(c, err)
		return
	}

	doc, err := h.reportService.ExportMonthlyReport(c.Request.Context(), userID, year, month, export.Format(exportParams.Format))
	if err != nil {
		handleServiceError(c, err, "Falha ao exportar relatório")
		return
	}
	sendDocument(c, doc)
}
