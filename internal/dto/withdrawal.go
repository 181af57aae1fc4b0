package dto

import (
	"github.com/SscSPs/livro_caixa/internal/core/domain"
	"github.com/SscSPs/livro_caixa/internal/utils/datetime"
	"github.com/shopspring/decimal"
)

// CreateWithdrawalRequest is the body of POST /withdrawals.
type CreateWithdrawalRequest struct {
	Description string           `json:"description" binding:"required,max=255"`
	Amount      *decimal.Decimal `json:"amount" binding:"required,gt=0"`
}

// UpdateWithdrawalRequest changes any subset of a withdrawal.
type UpdateWithdrawalRequest struct {
	Description *string          `json:"description" binding:"omitempty,max=255"`
	Amount      *decimal.Decimal `json:"amount" binding:"omitempty,gt=0"`
}

// WithdrawalResponse is the public view of a withdrawal.
type WithdrawalResponse struct {
	WithdrawalID string          `json:"withdrawalID"`
	OpeningID    string          `json:"openingID"`
	Description  string          `json:"description"`
	Amount       decimal.Decimal `json:"amount"`
	Date         string          `json:"date"`
	Time         string          `json:"time"`
}

func ToWithdrawalResponse(w *domain.Withdrawal) WithdrawalResponse {
	return WithdrawalResponse{
		WithdrawalID: w.WithdrawalID,
		OpeningID:    w.OpeningID,
		Description:  w.Description,
		Amount:       w.Amount,
		Date:         datetime.FormatISODate(w.Date),
		Time:         w.Time,
	}
}

func ToWithdrawalResponses(withdrawals []domain.Withdrawal) []WithdrawalResponse {
	responses := make([]WithdrawalResponse, len(withdrawals))
	for i := range withdrawals {
		responses[i] = ToWithdrawalResponse(&withdrawals[i])
	}
	return responses
}
