package dto

import (
	"time"

	"github.com/SscSPs/livro_caixa/internal/core/domain"
	"github.com/SscSPs/livro_caixa/internal/utils/datetime"
	"github.com/shopspring/decimal"
)

// OpenDrawerRequest is the body of POST /drawer/open.
type OpenDrawerRequest struct {
	StartingAmount *decimal.Decimal `json:"startingAmount" binding:"required,gte=0"`
}

// OpeningResponse is the public view of an opening.
type OpeningResponse struct {
	OpeningID       string          `json:"openingID"`
	Date            string          `json:"date"`
	Time            string          `json:"time"`
	StartingAmount  decimal.Decimal `json:"startingAmount"`
	OriginClosureID *string         `json:"originClosureID,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
}

func ToOpeningResponse(o *domain.Opening) OpeningResponse {
	return OpeningResponse{
		OpeningID:       o.OpeningID,
		Date:            datetime.FormatISODate(o.Date),
		Time:            o.Time,
		StartingAmount:  o.StartingAmount,
		OriginClosureID: o.OriginClosureID,
		CreatedAt:       o.CreatedAt,
	}
}

// DrawerStatusResponse tells the client whether a drawer is open and which screens apply.
type DrawerStatusResponse struct {
	Open             bool             `json:"open"`
	Opening          *OpeningResponse `json:"opening,omitempty"`
	AvailableScreens []string         `json:"availableScreens"`
}

func ToDrawerStatusResponse(s domain.DrawerStatus) DrawerStatusResponse {
	resp := DrawerStatusResponse{
		Open:             s.Open,
		AvailableScreens: make([]string, len(s.AvailableScreens)),
	}
	for i, screen := range s.AvailableScreens {
		resp.AvailableScreens[i] = string(screen)
	}
	if s.Opening != nil {
		o := ToOpeningResponse(s.Opening)
		resp.Opening = &o
	}
	return resp
}

// PaymentTotalResponse is the total sold with one payment method.
type PaymentTotalResponse struct {
	Method string          `json:"method"`
	Total  decimal.Decimal `json:"total"`
}

func ToPaymentTotalResponses(totals []domain.PaymentTotal) []PaymentTotalResponse {
	out := make([]PaymentTotalResponse, len(totals))
	for i, t := range totals {
		out[i] = PaymentTotalResponse{Method: string(t.Method), Total: t.Total}
	}
	return out
}

// DrawerSummaryResponse is the dashboard view of the active opening.
type DrawerSummaryResponse struct {
	Opening          OpeningResponse        `json:"opening"`
	TotalSales       decimal.Decimal        `json:"totalSales"`
	TotalWithdrawals decimal.Decimal        `json:"totalWithdrawals"`
	Balance          decimal.Decimal        `json:"balance"`
	CashOnHand       decimal.Decimal        `json:"cashOnHand"`
	ByPaymentMethod  []PaymentTotalResponse `json:"byPaymentMethod"`
	RecentSales      []SaleResponse         `json:"recentSales"`
}

func ToDrawerSummaryResponse(s *domain.DrawerSummary) DrawerSummaryResponse {
	return DrawerSummaryResponse{
		Opening:          ToOpeningResponse(&s.Opening),
		TotalSales:       s.TotalSales,
		TotalWithdrawals: s.TotalWithdrawals,
		Balance:          s.Balance,
		CashOnHand:       s.CashOnHand,
		ByPaymentMethod:  ToPaymentTotalResponses(s.ByPaymentMethod),
		RecentSales:      ToSaleResponses(s.RecentSales),
	}
}
