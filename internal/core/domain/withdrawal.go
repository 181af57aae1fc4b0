package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Withdrawal is cash taken out of the drawer during an opening.
type Withdrawal struct {
	WithdrawalID string          `json:"withdrawalID"`
	UserID       string          `json:"userID"`
	OpeningID    string          `json:"openingID"`
	Description  string          `json:"description"`
	Amount       decimal.Decimal `json:"amount"`
	Date         time.Time       `json:"date"`
	Time         string          `json:"time"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}

// SumWithdrawals adds up withdrawal amounts.
func SumWithdrawals(withdrawals []Withdrawal) decimal.Decimal {
	total := decimal.Zero
	for _, w := range withdrawals {
		total = total.Add(w.Amount)
	}
	return total
}
