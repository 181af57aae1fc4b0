package mapping

import (
	"github.com/SscSPs/livro_caixa/internal/core/domain"
	"github.com/SscSPs/livro_caixa/internal/models"
)

// ToModelOpening converts a domain Opening to a model Opening
func ToModelOpening(d domain.Opening) models.Opening {
	return models.Opening{
		OpeningID:       d.OpeningID,
		UserID:          d.UserID,
		OpeningDate:     d.Date,
		OpeningTime:     d.Time,
		StartingAmount:  d.StartingAmount,
		OriginClosureID: toNullString(d.OriginClosureID),
		AuditFields:     ToModelAuditFields(d.AuditFields),
		DeletedAt:       d.DeletedAt,
	}
}

// ToDomainOpening converts a model Opening to a domain Opening
func ToDomainOpening(m models.Opening) domain.Opening {
	return domain.Opening{
		OpeningID:       m.OpeningID,
		UserID:          m.UserID,
		Date:            m.OpeningDate,
		Time:            m.OpeningTime,
		StartingAmount:  m.StartingAmount,
		OriginClosureID: fromNullString(m.OriginClosureID),
		AuditFields:     ToDomainAuditFields(m.AuditFields),
		DeletedAt:       m.DeletedAt,
	}
}

// ToModelSale converts a domain Sale to a model Sale
func ToModelSale(d domain.Sale) models.Sale {
	return models.Sale{
		SaleID:        d.SaleID,
		UserID:        d.UserID,
		OpeningID:     d.OpeningID,
		Product:       d.Product,
		Quantity:      d.Quantity,
		UnitPrice:     d.UnitPrice,
		Total:         d.Total,
		PaymentMethod: string(d.PaymentMethod),
		SaleDate:      d.Date,
		SaleTime:      d.Time,
		AuditFields:   ToModelAuditFields(d.AuditFields),
		DeletedAt:     d.DeletedAt,
	}
}

// ToDomainSale converts a model Sale to a domain Sale
func ToDomainSale(m models.Sale) domain.Sale {
	return domain.Sale{
		SaleID:        m.SaleID,
		UserID:        m.UserID,
		OpeningID:     m.OpeningID,
		Product:       m.Product,
		Quantity:      m.Quantity,
		UnitPrice:     m.UnitPrice,
		Total:         m.Total,
		PaymentMethod: domain.PaymentMethod(m.PaymentMethod),
		Date:          m.SaleDate,
		Time:          m.SaleTime,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
		DeletedAt:     m.DeletedAt,
	}
}

// ToDomainSaleSlice converts a slice of model Sales to a slice of domain Sales
func ToDomainSaleSlice(ms []models.Sale) []domain.Sale {
	ds := make([]domain.Sale, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainSale(m)
	}
	return ds
}

// ToModelWithdrawal converts a domain Withdrawal to a model Withdrawal
func ToModelWithdrawal(d domain.Withdrawal) models.Withdrawal {
	return models.Withdrawal{
		WithdrawalID:   d.WithdrawalID,
		UserID:         d.UserID,
		OpeningID:      d.OpeningID,
		Description:    d.Description,
		Amount:         d.Amount,
		WithdrawalDate: d.Date,
		WithdrawalTime: d.Time,
		AuditFields:    ToModelAuditFields(d.AuditFields),
		DeletedAt:      d.DeletedAt,
	}
}

// ToDomainWithdrawal converts a model Withdrawal to a domain Withdrawal
func ToDomainWithdrawal(m models.Withdrawal) domain.Withdrawal {
	return domain.Withdrawal{
		WithdrawalID: m.WithdrawalID,
		UserID:       m.UserID,
		OpeningID:    m.OpeningID,
		Description:  m.Description,
		Amount:       m.Amount,
		Date:         m.WithdrawalDate,
		Time:         m.WithdrawalTime,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
		DeletedAt:    m.DeletedAt,
	}
}

// ToDomainWithdrawalSlice converts a slice of model Withdrawals to a slice of domain Withdrawals
func ToDomainWithdrawalSlice(ms []models.Withdrawal) []domain.Withdrawal {
	ds := make([]domain.Withdrawal, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainWithdrawal(m)
	}
	return ds
}

// ToModelUserSettings converts domain settings to a model row
func ToModelUserSettings(d domain.UserSettings) models.UserSettings {
	return models.UserSettings(d)
}

// ToDomainUserSettings converts a model row to domain settings
func ToDomainUserSettings(m models.UserSettings) domain.UserSettings {
	return domain.UserSettings(m)
}
