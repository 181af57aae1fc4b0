package dto

import (
	"fmt"

	"github.com/SscSPs/livro_caixa/internal/core/domain"
	"github.com/SscSPs/livro_caixa/internal/utils/datetime"
	"github.com/shopspring/decimal"
)

// CashBreakdownDTO splits the counted cash into notes and coins.
type CashBreakdownDTO struct {
	Notes decimal.Decimal `json:"notes" binding:"gte=0"`
	Coins decimal.Decimal `json:"coins" binding:"gte=0"`
}

// CloseDrawerRequest is the body of POST /drawer/close.
// CountedAmount may be omitted when CashBreakdown is given.
type CloseDrawerRequest struct {
	CountedAmount *decimal.Decimal  `json:"countedAmount" binding:"omitempty,gte=0"`
	CashBreakdown *CashBreakdownDTO `json:"cashBreakdown"`
}

// ListClosuresParams are the query parameters of GET /closures.
type ListClosuresParams struct {
	Month     string `form:"month" binding:"omitempty,datetime=2006-01"`
	Limit     int    `form:"limit,default=20" binding:"gte=1,lte=100"`
	NextToken string `form:"nextToken"`
}

// ClosureResponse is the public view of a closure.
type ClosureResponse struct {
	ClosureID        string               `json:"closureID"`
	OpeningID        *string              `json:"openingID,omitempty"`
	Date             string               `json:"date"`
	Time             string               `json:"time"`
	TotalSales       decimal.Decimal      `json:"totalSales"`
	TotalWithdrawals decimal.Decimal      `json:"totalWithdrawals"`
	StartingAmount   decimal.Decimal      `json:"startingAmount"`
	CountedAmount    decimal.Decimal      `json:"countedAmount"`
	ExpectedBalance  decimal.Decimal      `json:"expectedBalance"`
	Difference       decimal.Decimal      `json:"difference"`
	Sales            []SaleResponse       `json:"sales"`
	Withdrawals      []WithdrawalResponse `json:"withdrawals"`
	CashBreakdown    *CashBreakdownDTO    `json:"cashBreakdown,omitempty"`
	Status           string               `json:"status"`
}

func ToClosureResponse(c *domain.Closure) ClosureResponse {
	resp := ClosureResponse{
		ClosureID:        c.ClosureID,
		OpeningID:        c.OpeningID,
		Date:             datetime.FormatISODate(c.Date),
		Time:             c.Time,
		TotalSales:       c.TotalSales,
		TotalWithdrawals: c.TotalWithdrawals,
		StartingAmount:   c.StartingAmount,
		CountedAmount:    c.CountedAmount,
		ExpectedBalance:  c.ExpectedBalance,
		Difference:       c.Difference,
		Sales:            ToSaleResponses(c.Sales),
		Withdrawals:      ToWithdrawalResponses(c.Withdrawals),
		Status:           string(c.Status),
	}
	if c.CashBreakdown != nil {
		resp.CashBreakdown = &CashBreakdownDTO{Notes: c.CashBreakdown.Notes, Coins: c.CashBreakdown.Coins}
	}
	return resp
}

// CloseDrawerResponse returns the new closure together with the refreshed drawer state.
type CloseDrawerResponse struct {
	Closure ClosureResponse      `json:"closure"`
	Drawer  DrawerStatusResponse `json:"drawer"`
}

// ListClosuresResponse is one page of history.
type ListClosuresResponse struct {
	Closures  []ClosureResponse `json:"closures"`
	NextToken *string           `json:"nextToken,omitempty"`
}

func ToListClosuresResponse(closures []domain.Closure, nextToken string) ListClosuresResponse {
	resp := ListClosuresResponse{Closures: make([]ClosureResponse, len(closures))}
	for i := range closures {
		resp.Closures[i] = ToClosureResponse(&closures[i])
	}
	if nextToken != "" {
		resp.NextToken = &nextToken
	}
	return resp
}

// ClosureMonthResponse is one entry of the history month filter.
type ClosureMonthResponse struct {
	Month string `json:"month"` // YYYY-MM
	Label string `json:"label"`
	Count int    `json:"count"`
}

func ToClosureMonthResponses(months []domain.ClosureMonth) []ClosureMonthResponse {
	out := make([]ClosureMonthResponse, len(months))
	for i, m := range months {
		out[i] = ClosureMonthResponse{
			Month: datetime.FormatMonth(m.Year, m.Month),
			Label: fmt.Sprintf("%s/%d", datetime.MonthName(m.Month), m.Year),
			Count: m.Count,
		}
	}
	return out
}

// ReopenResponse reports whether the closure was reopened and the resulting drawer state.
type ReopenResponse struct {
	Reopened bool                 `json:"reopened"`
	Drawer   DrawerStatusResponse `json:"drawer"`
}
