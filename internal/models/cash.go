package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// Opening is a row of the openings table.
type Opening struct {
	OpeningID       string          `db:"opening_id"`
	UserID          string          `db:"user_id"`
	OpeningDate     time.Time       `db:"opening_date"`
	OpeningTime     string          `db:"opening_time"`
	StartingAmount  decimal.Decimal `db:"starting_amount"`
	OriginClosureID sql.NullString  `db:"origin_closure_id"`
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`
}

// Sale is a row of the sales table.
type Sale struct {
	SaleID        string          `db:"sale_id"`
	UserID        string          `db:"user_id"`
	OpeningID     string          `db:"opening_id"`
	Product       string          `db:"product"`
	Quantity      int             `db:"quantity"`
	UnitPrice     decimal.Decimal `db:"unit_price"`
	Total         decimal.Decimal `db:"total"`
	PaymentMethod string          `db:"payment_method"`
	SaleDate      time.Time       `db:"sale_date"`
	SaleTime      string          `db:"sale_time"`
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`
}

// Withdrawal is a row of the withdrawals table.
type Withdrawal struct {
	WithdrawalID   string          `db:"withdrawal_id"`
	UserID         string          `db:"user_id"`
	OpeningID      string          `db:"opening_id"`
	Description    string          `db:"description"`
	Amount         decimal.Decimal `db:"amount"`
	WithdrawalDate time.Time       `db:"withdrawal_date"`
	WithdrawalTime string          `db:"withdrawal_time"`
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`
}

// Closure is a row of the closures table. Sales, Withdrawals and CashBreakdown hold raw JSONB.
type Closure struct {
	ClosureID        string          `db:"closure_id"`
	UserID           string          `db:"user_id"`
	OpeningID        sql.NullString  `db:"opening_id"`
	ClosureDate      time.Time       `db:"closure_date"`
	ClosureTime      string          `db:"closure_time"`
	TotalSales       decimal.Decimal `db:"total_sales"`
	TotalWithdrawals decimal.Decimal `db:"total_withdrawals"`
	StartingAmount   decimal.Decimal `db:"starting_amount"`
	CountedAmount    decimal.Decimal `db:"counted_amount"`
	ExpectedBalance  decimal.Decimal `db:"expected_balance"`
	Difference       decimal.Decimal `db:"difference"`
	Sales            []byte          `db:"sales"`
	Withdrawals      []byte          `db:"withdrawals"`
	CashBreakdown    []byte          `db:"cash_breakdown"`
	Status           string          `db:"status"`
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`
}

// ClosureSaleSnapshot is the JSONB shape of a sale embedded in a closure.
type ClosureSaleSnapshot struct {
	SaleID        string          `json:"id"`
	Product       string          `json:"produto"`
	Quantity      int             `json:"quantidade"`
	UnitPrice     decimal.Decimal `json:"precoUnitario"`
	Total         decimal.Decimal `json:"total"`
	PaymentMethod string          `json:"tipoPagamento"`
	Date          string          `json:"data"`
	Time          string          `json:"hora"`
}

// ClosureWithdrawalSnapshot is the JSONB shape of a withdrawal embedded in a closure.
type ClosureWithdrawalSnapshot struct {
	WithdrawalID string          `json:"id"`
	Description  string          `json:"descricao"`
	Amount       decimal.Decimal `json:"valor"`
	Date         string          `json:"data"`
	Time         string          `json:"hora"`
}

// CashBreakdownSnapshot is the JSONB shape of the counted notes and coins.
type CashBreakdownSnapshot struct {
	Notes decimal.Decimal `json:"notas"`
	Coins decimal.Decimal `json:"moedas"`
}

// UserSettings is a row of the user_settings table.
type UserSettings struct {
	UserID      string    `db:"user_id"`
	CompanyName string    `db:"company_name"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}
