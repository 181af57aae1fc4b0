package domain

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// DailyClosureRow is one closure line of the monthly report.
type DailyClosureRow struct {
	ClosureID        string          `json:"closureID"`
	Date             time.Time       `json:"date"`
	TotalSales       decimal.Decimal `json:"totalSales"`
	TotalWithdrawals decimal.Decimal `json:"totalWithdrawals"`
	Balance          decimal.Decimal `json:"balance"`
}

// MonthlyReport aggregates the closures of one calendar month.
type MonthlyReport struct {
	Year             int               `json:"year"`
	Month            time.Month        `json:"month"`
	CompanyName      string            `json:"companyName"`
	TotalSales       decimal.Decimal   `json:"totalSales"`
	TotalWithdrawals decimal.Decimal   `json:"totalWithdrawals"`
	Balance          decimal.Decimal   `json:"balance"`
	DaysOperated     int               `json:"daysOperated"`
	ByPaymentMethod  []PaymentTotal    `json:"byPaymentMethod"`
	Days             []DailyClosureRow `json:"days"`
	GeneratedAt      time.Time         `json:"generatedAt"`
}

// BuildMonthlyReport aggregates closures. Payment totals come from the sales embedded in each closure;
// each closure counts as one operated day. Rows are ordered by date.
func BuildMonthlyReport(year int, month time.Month, companyName string, closures []Closure) MonthlyReport {
	report := MonthlyReport{
		Year:             year,
		Month:            month,
		CompanyName:      companyName,
		TotalSales:       decimal.Zero,
		TotalWithdrawals: decimal.Zero,
		DaysOperated:     len(closures),
		Days:             make([]DailyClosureRow, 0, len(closures)),
	}

	var allSales []Sale
	for _, c := range closures {
		report.TotalSales = report.TotalSales.Add(c.TotalSales)
		report.TotalWithdrawals = report.TotalWithdrawals.Add(c.TotalWithdrawals)
		allSales = append(allSales, c.Sales...)
		report.Days = append(report.Days, DailyClosureRow{
			ClosureID:        c.ClosureID,
			Date:             c.Date,
			TotalSales:       c.TotalSales,
			TotalWithdrawals: c.TotalWithdrawals,
			Balance:          c.ExpectedBalance,
		})
	}
	sort.SliceStable(report.Days, func(i, j int) bool {
		return report.Days[i].Date.Before(report.Days[j].Date)
	})

	report.Balance = report.TotalSales.Sub(report.TotalWithdrawals)
	report.ByPaymentMethod = TotalsByPaymentMethod(allSales)
	return report
}
