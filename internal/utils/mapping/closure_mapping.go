package mapping

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/SscSPs/livro_caixa/internal/core/domain"
	"github.com/SscSPs/livro_caixa/internal/models"
	"github.com/SscSPs/livro_caixa/internal/utils/datetime"
)

// ToModelClosure converts a domain Closure to a model Closure, encoding the snapshots as JSON.
func ToModelClosure(d domain.Closure) (models.Closure, error) {
	sales := make([]models.ClosureSaleSnapshot, 0, len(d.Sales))
	for _, s := range d.Sales {
		sales = append(sales, models.ClosureSaleSnapshot{
			SaleID:        s.SaleID,
			Product:       s.Product,
			Quantity:      s.Quantity,
			UnitPrice:     s.UnitPrice,
			Total:         s.Total,
			PaymentMethod: string(s.PaymentMethod),
			Date:          datetime.FormatISODate(s.Date),
			Time:          s.Time,
		})
	}
	withdrawals := make([]models.ClosureWithdrawalSnapshot, 0, len(d.Withdrawals))
	for _, w := range d.Withdrawals {
		withdrawals = append(withdrawals, models.ClosureWithdrawalSnapshot{
			WithdrawalID: w.WithdrawalID,
			Description:  w.Description,
			Amount:       w.Amount,
			Date:         datetime.FormatISODate(w.Date),
			Time:         w.Time,
		})
	}

	salesJSON, err := json.Marshal(sales)
	if err != nil {
		return models.Closure{}, fmt.Errorf("failed to encode closure sales: %w", err)
	}
	withdrawalsJSON, err := json.Marshal(withdrawals)
	if err != nil {
		return models.Closure{}, fmt.Errorf("failed to encode closure withdrawals: %w", err)
	}
	var breakdownJSON []byte
	if d.CashBreakdown != nil {
		breakdownJSON, err = json.Marshal(models.CashBreakdownSnapshot{Notes: d.CashBreakdown.Notes, Coins: d.CashBreakdown.Coins})
		if err != nil {
			return models.Closure{}, fmt.Errorf("failed to encode cash breakdown: %w", err)
		}
	}

	return models.Closure{
		ClosureID:        d.ClosureID,
		UserID:           d.UserID,
		OpeningID:        toNullString(d.OpeningID),
		ClosureDate:      d.Date,
		ClosureTime:      d.Time,
		TotalSales:       d.TotalSales,
		TotalWithdrawals: d.TotalWithdrawals,
		StartingAmount:   d.StartingAmount,
		CountedAmount:    d.CountedAmount,
		ExpectedBalance:  d.ExpectedBalance,
		Difference:       d.Difference,
		Sales:            salesJSON,
		Withdrawals:      withdrawalsJSON,
		CashBreakdown:    breakdownJSON,
		Status:           string(d.Status),
		AuditFields:      ToModelAuditFields(d.AuditFields),
		DeletedAt:        d.DeletedAt,
	}, nil
}

// ToDomainClosure converts a model Closure to a domain Closure. Snapshot records inherit
// the closure's user and opening.
func ToDomainClosure(m models.Closure) (domain.Closure, error) {
	d := domain.Closure{
		ClosureID:        m.ClosureID,
		UserID:           m.UserID,
		OpeningID:        fromNullString(m.OpeningID),
		Date:             m.ClosureDate,
		Time:             m.ClosureTime,
		TotalSales:       m.TotalSales,
		TotalWithdrawals: m.TotalWithdrawals,
		StartingAmount:   m.StartingAmount,
		CountedAmount:    m.CountedAmount,
		ExpectedBalance:  m.ExpectedBalance,
		Difference:       m.Difference,
		Sales:            []domain.Sale{},
		Withdrawals:      []domain.Withdrawal{},
		Status:           domain.ClosureStatus(m.Status),
		AuditFields:      ToDomainAuditFields(m.AuditFields),
		DeletedAt:        m.DeletedAt,
	}
	openingID := m.OpeningID.String

	if len(m.Sales) > 0 {
		var sales []models.ClosureSaleSnapshot
		if err := json.Unmarshal(m.Sales, &sales); err != nil {
			return domain.Closure{}, fmt.Errorf("failed to decode sales of closure %s: %w", m.ClosureID, err)
		}
		for _, s := range sales {
			d.Sales = append(d.Sales, domain.Sale{
				SaleID:        s.SaleID,
				UserID:        m.UserID,
				OpeningID:     openingID,
				Product:       s.Product,
				Quantity:      s.Quantity,
				UnitPrice:     s.UnitPrice,
				Total:         s.Total,
				PaymentMethod: domain.PaymentMethod(s.PaymentMethod),
				Date:          snapshotDate(s.Date, m.ClosureDate),
				Time:          s.Time,
			})
		}
	}

	if len(m.Withdrawals) > 0 {
		var withdrawals []models.ClosureWithdrawalSnapshot
		if err := json.Unmarshal(m.Withdrawals, &withdrawals); err != nil {
			return domain.Closure{}, fmt.Errorf("failed to decode withdrawals of closure %s: %w", m.ClosureID, err)
		}
		for _, w := range withdrawals {
			d.Withdrawals = append(d.Withdrawals, domain.Withdrawal{
				WithdrawalID: w.WithdrawalID,
				UserID:       m.UserID,
				OpeningID:    openingID,
				Description:  w.Description,
				Amount:       w.Amount,
				Date:         snapshotDate(w.Date, m.ClosureDate),
				Time:         w.Time,
			})
		}
	}

	if len(m.CashBreakdown) > 0 && string(m.CashBreakdown) != "null" {
		var b models.CashBreakdownSnapshot
		if err := json.Unmarshal(m.CashBreakdown, &b); err != nil {
			return domain.Closure{}, fmt.Errorf("failed to decode cash breakdown of closure %s: %w", m.ClosureID, err)
		}
		d.CashBreakdown = &domain.CashBreakdown{Notes: b.Notes, Coins: b.Coins}
	}

	return d, nil
}

// snapshotDate parses an embedded ISO date, falling back to the closure date for old rows.
func snapshotDate(s string, fallback time.Time) time.Time {
	d, err := datetime.ParseISODate(s)
	if err != nil {
		return fallback
	}
	return d
}
