package domain

import "github.com/shopspring/decimal"

// Screen names a client view; the set available depends on the drawer state.
type Screen string

const (
	ScreenOpening       Screen = "abertura"
	ScreenDashboard     Screen = "dashboard"
	ScreenSales         Screen = "vendas"
	ScreenWithdrawals   Screen = "retiradas"
	ScreenClosure       Screen = "fechamento"
	ScreenHistory       Screen = "historico"
	ScreenMonthlyReport Screen = "relatorio-mensal"
)

// DrawerStatus tells a client whether a drawer is open and what it may show.
type DrawerStatus struct {
	Open             bool     `json:"open"`
	Opening          *Opening `json:"opening,omitempty"`
	AvailableScreens []Screen `json:"availableScreens"`
}

// NewDrawerStatus derives the status from the active opening, nil meaning closed.
func NewDrawerStatus(active *Opening) DrawerStatus {
	if active == nil {
		return DrawerStatus{
			Open:             false,
			AvailableScreens: []Screen{ScreenOpening, ScreenHistory, ScreenMonthlyReport},
		}
	}
	return DrawerStatus{
		Open:    true,
		Opening: active,
		AvailableScreens: []Screen{
			ScreenDashboard, ScreenSales, ScreenWithdrawals,
			ScreenClosure, ScreenHistory, ScreenMonthlyReport,
		},
	}
}

// DrawerSummary is the running position of the active opening.
type DrawerSummary struct {
	Opening          Opening         `json:"opening"`
	TotalSales       decimal.Decimal `json:"totalSales"`
	TotalWithdrawals decimal.Decimal `json:"totalWithdrawals"`
	Balance          decimal.Decimal `json:"balance"`
	CashOnHand       decimal.Decimal `json:"cashOnHand"`
	ByPaymentMethod  []PaymentTotal  `json:"byPaymentMethod"`
	RecentSales      []Sale          `json:"recentSales"`
}

const recentSalesLimit = 5

// SummarizeDrawer computes the running totals for an opening. Sales are expected oldest first.
func SummarizeDrawer(opening Opening, sales []Sale, withdrawals []Withdrawal) DrawerSummary {
	totalSales := SumSales(sales)
	totalWithdrawals := SumWithdrawals(withdrawals)

	recent := make([]Sale, 0, recentSalesLimit)
	for i := len(sales) - 1; i >= 0 && len(recent) < recentSalesLimit; i-- {
		recent = append(recent, sales[i])
	}

	return DrawerSummary{
		Opening:          opening,
		TotalSales:       totalSales,
		TotalWithdrawals: totalWithdrawals,
		Balance:          totalSales.Sub(totalWithdrawals),
		CashOnHand:       CashOnHand(opening.StartingAmount, sales, withdrawals),
		ByPaymentMethod:  TotalsByPaymentMethod(sales),
		RecentSales:      recent,
	}
}
