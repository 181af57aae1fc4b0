package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/livro_caixa/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildMonthlyReport(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2024, time.May, d, 0, 0, 0, 0, time.UTC) }
	closures := []domain.Closure{
		{
			ClosureID: "late", Date: day(20),
			TotalSales: dec("200"), TotalWithdrawals: dec("50"), ExpectedBalance: dec("250"),
			Sales: []domain.Sale{
				{Total: dec("150"), PaymentMethod: domain.PaymentPix},
				{Total: dec("50"), PaymentMethod: domain.PaymentCash},
			},
		},
		{
			ClosureID: "early", Date: day(2),
			TotalSales: dec("100"), TotalWithdrawals: dec("0"), ExpectedBalance: dec("200"),
			Sales: []domain.Sale{
				{Total: dec("100"), PaymentMethod: domain.PaymentCredit},
				{Total: dec("999"), PaymentMethod: domain.PaymentMethod("Cheque")},
			},
		},
	}

	report := domain.BuildMonthlyReport(2024, time.May, "Padaria", closures)

	assert.Equal(t, 2, report.DaysOperated)
	assert.Equal(t, "Padaria", report.CompanyName)
	assert.True(t, dec("300").Equal(report.TotalSales))
	assert.True(t, dec("50").Equal(report.TotalWithdrawals))
	assert.True(t, dec("250").Equal(report.Balance))

	require.Len(t, report.Days, 2)
	assert.Equal(t, "early", report.Days[0].ClosureID)
	assert.True(t, dec("200").Equal(report.Days[0].Balance))

	require.Len(t, report.ByPaymentMethod, 4)
	assert.Equal(t, domain.PaymentPix, report.ByPaymentMethod[0].Method)
	assert.True(t, dec("150").Equal(report.ByPaymentMethod[0].Total))
	assert.True(t, dec("50").Equal(report.ByPaymentMethod[1].Total))
	assert.True(t, report.ByPaymentMethod[2].Total.IsZero())
	assert.True(t, dec("100").Equal(report.ByPaymentMethod[3].Total))
}
