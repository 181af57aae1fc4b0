package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale is a line sold during an opening.
type Sale struct {
	SaleID        string          `json:"saleID"`
	UserID        string          `json:"userID"`
	OpeningID     string          `json:"openingID"`
	Product       string          `json:"product"`
	Quantity      int             `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unitPrice"`
	Total         decimal.Decimal `json:"total"`
	PaymentMethod PaymentMethod   `json:"paymentMethod"`
	Date          time.Time       `json:"date"`
	Time          string          `json:"time"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}

// SaleTotal is quantity times unit price rounded to cents.
func SaleTotal(quantity int, unitPrice decimal.Decimal) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity))).Round(2)
}

// SumSales adds up sale totals.
func SumSales(sales []Sale) decimal.Decimal {
	total := decimal.Zero
	for _, s := range sales {
		total = total.Add(s.Total)
	}
	return total
}
