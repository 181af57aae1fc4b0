package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Opening marks the start of a cash-register session.
// It is active while it is not deleted and no closure links to it.
type Opening struct {
	OpeningID      string          `json:"openingID"`
	UserID         string          `json:"userID"`
	Date           time.Time       `json:"date"` // calendar day, midnight UTC
	Time           string          `json:"time"` // HH:MM, business timezone
	StartingAmount decimal.Decimal `json:"startingAmount"`
	// OriginClosureID is set when a legacy closure without opening link was reopened.
	// Closing this opening again rewrites that closure instead of creating a new one.
	OriginClosureID *string `json:"originClosureID,omitempty"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}
