package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ClosureStatus tracks whether a closure still stands.
type ClosureStatus string

const (
	ClosureClosed   ClosureStatus = "fechado"
	ClosureReopened ClosureStatus = "reaberto"
)

// CashBreakdown splits the counted cash into notes and coins.
type CashBreakdown struct {
	Notes decimal.Decimal `json:"notes"`
	Coins decimal.Decimal `json:"coins"`
}

// Total is notes plus coins.
func (b CashBreakdown) Total() decimal.Decimal {
	return b.Notes.Add(b.Coins)
}

// Closure reconciles an opening: what the drawer should hold against what was counted.
// Sales and Withdrawals are snapshots taken at closing time.
type Closure struct {
	ClosureID        string          `json:"closureID"`
	UserID           string          `json:"userID"`
	OpeningID        *string         `json:"openingID,omitempty"`
	Date             time.Time       `json:"date"`
	Time             string          `json:"time"`
	TotalSales       decimal.Decimal `json:"totalSales"`
	TotalWithdrawals decimal.Decimal `json:"totalWithdrawals"`
	StartingAmount   decimal.Decimal `json:"startingAmount"`
	CountedAmount    decimal.Decimal `json:"countedAmount"`
	ExpectedBalance  decimal.Decimal `json:"expectedBalance"`
	Difference       decimal.Decimal `json:"difference"`
	Sales            []Sale          `json:"sales"`
	Withdrawals      []Withdrawal    `json:"withdrawals"`
	CashBreakdown    *CashBreakdown  `json:"cashBreakdown,omitempty"`
	Status           ClosureStatus   `json:"status"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}

// ExpectedBalance is what the drawer should hold: sales minus withdrawals plus the starting amount.
func ExpectedBalance(totalSales, totalWithdrawals, startingAmount decimal.Decimal) decimal.Decimal {
	return totalSales.Sub(totalWithdrawals).Add(startingAmount)
}

// CashOnHand is the physical cash expected in the drawer: starting amount plus cash sales minus withdrawals.
func CashOnHand(startingAmount decimal.Decimal, sales []Sale, withdrawals []Withdrawal) decimal.Decimal {
	cash := decimal.Zero
	for _, s := range sales {
		if s.PaymentMethod == PaymentCash {
			cash = cash.Add(s.Total)
		}
	}
	return startingAmount.Add(cash).Sub(SumWithdrawals(withdrawals))
}

// ReconcileOpening builds the closure for opening from the session's records.
// Date, time and audit fields are left to the caller.
func ReconcileOpening(closureID string, opening Opening, sales []Sale, withdrawals []Withdrawal, counted decimal.Decimal, breakdown *CashBreakdown) Closure {
	totalSales := SumSales(sales)
	totalWithdrawals := SumWithdrawals(withdrawals)
	expected := ExpectedBalance(totalSales, totalWithdrawals, opening.StartingAmount)

	if sales == nil {
		sales = []Sale{}
	}
	if withdrawals == nil {
		withdrawals = []Withdrawal{}
	}

	openingID := opening.OpeningID
	return Closure{
		ClosureID:        closureID,
		UserID:           opening.UserID,
		OpeningID:        &openingID,
		TotalSales:       totalSales,
		TotalWithdrawals: totalWithdrawals,
		StartingAmount:   opening.StartingAmount,
		CountedAmount:    counted,
		ExpectedBalance:  expected,
		Difference:       counted.Sub(expected),
		Sales:            sales,
		Withdrawals:      withdrawals,
		CashBreakdown:    breakdown,
		Status:           ClosureClosed,
	}
}

// ClosureMonth counts closures in a calendar month.
type ClosureMonth struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
	Count int        `json:"count"`
}
