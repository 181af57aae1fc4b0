package dto

import (
	"github.com/SscSPs/livro_caixa/internal/core/domain"
	"github.com/SscSPs/livro_caixa/internal/utils/datetime"
	"github.com/shopspring/decimal"
)

// CreateSaleRequest is the body of POST /sales.
type CreateSaleRequest struct {
	Product       string               `json:"product" binding:"required,max=255"`
	Quantity      int                  `json:"quantity" binding:"required,gt=0"`
	UnitPrice     *decimal.Decimal     `json:"unitPrice" binding:"required,gt=0"`
	PaymentMethod domain.PaymentMethod `json:"paymentMethod" binding:"required,paymentmethod"`
}

// UpdateSaleRequest changes any subset of a sale. The total is recomputed.
type UpdateSaleRequest struct {
	Product       *string               `json:"product" binding:"omitempty,max=255"`
	Quantity      *int                  `json:"quantity" binding:"omitempty,gt=0"`
	UnitPrice     *decimal.Decimal      `json:"unitPrice" binding:"omitempty,gt=0"`
	PaymentMethod *domain.PaymentMethod `json:"paymentMethod" binding:"omitempty,paymentmethod"`
}

// SaleResponse is the public view of a sale.
type SaleResponse struct {
	SaleID        string          `json:"saleID"`
	OpeningID     string          `json:"openingID"`
	Product       string          `json:"product"`
	Quantity      int             `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unitPrice"`
	Total         decimal.Decimal `json:"total"`
	PaymentMethod string          `json:"paymentMethod"`
	Date          string          `json:"date"`
	Time          string          `json:"time"`
}

func ToSaleResponse(s *domain.Sale) SaleResponse {
	return SaleResponse{
		SaleID:        s.SaleID,
		OpeningID:     s.OpeningID,
		Product:       s.Product,
		Quantity:      s.Quantity,
		UnitPrice:     s.UnitPrice,
		Total:         s.Total,
		PaymentMethod: string(s.PaymentMethod),
		Date:          datetime.FormatISODate(s.Date),
		Time:          s.Time,
	}
}

func ToSaleResponses(sales []domain.Sale) []SaleResponse {
	responses := make([]SaleResponse, len(sales))
	for i := range sales {
		responses[i] = ToSaleResponse(&sales[i])
	}
	return responses
}
