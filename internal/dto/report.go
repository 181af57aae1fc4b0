package dto

import (
	"time"

	"github.com/SscSPs/livro_caixa/internal/core/domain"
	"github.com/SscSPs/livro_caixa/internal/utils/datetime"
	"github.com/shopspring/decimal"
)

// MonthlyReportParams selects the month of a report.
type MonthlyReportParams struct {
	Month string `form:"month" binding:"required,datetime=2006-01"`
}

// ExportParams selects the output format of an export.
type ExportParams struct {
	Format string `form:"format,default=pdf" binding:"oneof=pdf html xlsx"`
}

// DailyClosureRowResponse is one closure line of the monthly report.
type DailyClosureRowResponse struct {
	ClosureID        string          `json:"closureID"`
	Date             string          `json:"date"`
	TotalSales       decimal.Decimal `json:"totalSales"`
	TotalWithdrawals decimal.Decimal `json:"totalWithdrawals"`
	Balance          decimal.Decimal `json:"balance"`
}

// MonthlyReportResponse is the JSON form of a monthly report.
type MonthlyReportResponse struct {
	Month            string                    `json:"month"`
	MonthName        string                    `json:"monthName"`
	CompanyName      string                    `json:"companyName"`
	TotalSales       decimal.Decimal           `json:"totalSales"`
	TotalWithdrawals decimal.Decimal           `json:"totalWithdrawals"`
	Balance          decimal.Decimal           `json:"balance"`
	DaysOperated     int                       `json:"daysOperated"`
	ByPaymentMethod  []PaymentTotalResponse    `json:"byPaymentMethod"`
	Days             []DailyClosureRowResponse `json:"days"`
	GeneratedAt      time.Time                 `json:"generatedAt"`
}

func ToMonthlyReportResponse(r *domain.MonthlyReport) MonthlyReportResponse {
	days := make([]DailyClosureRowResponse, len(r.Days))
	for i, d := range r.Days {
		days[i] = DailyClosureRowResponse{
			ClosureID:        d.ClosureID,
			Date:             datetime.FormatISODate(d.Date),
			TotalSales:       d.TotalSales,
			TotalWithdrawals: d.TotalWithdrawals,
			Balance:          d.Balance,
		}
	}
	return MonthlyReportResponse{
		Month:            datetime.FormatMonth(r.Year, r.Month),
		MonthName:        datetime.MonthName(r.Month),
		CompanyName:      r.CompanyName,
		TotalSales:       r.TotalSales,
		TotalWithdrawals: r.TotalWithdrawals,
		Balance:          r.Balance,
		DaysOperated:     r.DaysOperated,
		ByPaymentMethod:  ToPaymentTotalResponses(r.ByPaymentMethod),
		Days:             days,
		GeneratedAt:      r.GeneratedAt,
	}
}
