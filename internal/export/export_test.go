package export_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/SscSPs/livro_caixa/internal/apperrors"
	"github.com/SscSPs/livro_caixa/internal/core/domain"
	"github.com/SscSPs/livro_caixa/internal/export"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleClosure() domain.Closure {
	date := time.Date(2024, time.May, 10, 0, 0, 0, 0, time.UTC)
	sales := []domain.Sale{
		{SaleID: "s1", Product: "Café", Quantity: 2, UnitPrice: decimal.RequireFromString("5.50"), Total: decimal.RequireFromString("11.00"), PaymentMethod: domain.PaymentPix, Time: "09:15"},
		{SaleID: "s2", Product: "Pão de queijo", Quantity: 1, UnitPrice: decimal.RequireFromString("1234.00"), Total: decimal.RequireFromString("1234.00"), PaymentMethod: domain.PaymentCash, Time: "10:00"},
	}
	withdrawals := []domain.Withdrawal{
		{WithdrawalID: "w1", Description: "Troco", Amount: decimal.RequireFromString("20.00"), Time: "11:00"},
	}
	opening := domain.Opening{OpeningID: "o1", UserID: "u1", StartingAmount: decimal.RequireFromString("100")}
	c := domain.ReconcileOpening("c1", opening, sales, withdrawals, decimal.RequireFromString("1300"), nil)
	c.Date = date
	c.Time = "18:30"
	return c
}

func sampleReport() domain.MonthlyReport {
	c := sampleClosure()
	r := domain.BuildMonthlyReport(2024, time.May, "Padaria Central", []domain.Closure{c})
	r.GeneratedAt = time.Date(2024, time.June, 1, 15, 4, 0, 0, time.UTC)
	return r
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    export.Format
		wantErr bool
	}{
		{"pdf", export.FormatPDF, false},
		{" HTML ", export.FormatHTML, false},
		{"xlsx", export.FormatXLSX, false},
		{"csv", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := export.ParseFormat(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRenderClosure_HTML(t *testing.T) {
	view := export.ClosureView{Closure: sampleClosure(), CompanyName: "Padaria <Central>", GeneratedAt: time.Now(), Location: time.UTC}

	doc, err := export.RenderClosure(view, export.FormatHTML)
	require.NoError(t, err)

	assert.Equal(t, "fechamento-2024-05-10.html", doc.Filename)
	assert.Contains(t, doc.ContentType, "text/html")
	body := string(doc.Body)
	assert.Contains(t, body, "Fechamento de Caixa")
	assert.Contains(t, body, "10/05/2024 às 18:30")
	assert.Contains(t, body, "Padaria &lt;Central&gt;")
	assert.Contains(t, body, "Vendas do Dia (2)")
	assert.Contains(t, body, "Retiradas do Dia (1)")
	assert.Contains(t, body, "R$ 1.234,00")
	assert.Contains(t, body, "Totais por Tipo de Pagamento")
	assert.Contains(t, body, "Gerado pelo Livro Caixa Profissional")
	assert.NotContains(t, body, "Nenhuma venda registrada")
}

func TestRenderClosure_HTMLEmptyLists(t *testing.T) {
	c := sampleClosure()
	c.Sales = []domain.Sale{}
	c.Withdrawals = []domain.Withdrawal{}

	doc, err := export.RenderClosure(export.ClosureView{Closure: c, GeneratedAt: time.Now(), Location: time.UTC}, export.FormatHTML)
	require.NoError(t, err)

	body := string(doc.Body)
	assert.Contains(t, body, "Nenhuma venda registrada")
	assert.Contains(t, body, "Nenhuma retirada registrada")
	assert.Contains(t, body, "Vendas do Dia (0)")
}

func TestRenderClosure_PDF(t *testing.T) {
	view := export.ClosureView{Closure: sampleClosure(), CompanyName: "Padaria Central", GeneratedAt: time.Now(), Location: time.UTC}

	doc, err := export.RenderClosure(view, export.FormatPDF)
	require.NoError(t, err)

	assert.Equal(t, "fechamento-2024-05-10.pdf", doc.Filename)
	assert.Equal(t, "application/pdf", doc.ContentType)
	assert.True(t, bytes.HasPrefix(doc.Body, []byte("%PDF")))
}

func TestRenderClosure_XLSXNotSupported(t *testing.T) {
	_, err := export.RenderClosure(export.ClosureView{Closure: sampleClosure(), Location: time.UTC}, export.FormatXLSX)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestRenderMonthly_HTML(t *testing.T) {
	doc, err := export.RenderMonthly(export.MonthlyView{Report: sampleReport(), Location: time.UTC}, export.FormatHTML)
	require.NoError(t, err)

	assert.Equal(t, "relatorio-mensal-2024-05.html", doc.Filename)
	body := string(doc.Body)
	assert.Contains(t, body, "Relatório Mensal")
	assert.Contains(t, body, "Maio de 2024")
	assert.Contains(t, body, "Padaria Central")
	assert.Contains(t, body, "Resumo do Mês")
	assert.Contains(t, body, "Fechamentos Diários")
	assert.Contains(t, body, "10/05/2024")
	assert.Contains(t, body, "Gerado em 01/06/2024 15:04")
}

func TestRenderMonthly_PDF(t *testing.T) {
	doc, err := export.RenderMonthly(export.MonthlyView{Report: sampleReport(), Location: time.UTC}, export.FormatPDF)
	require.NoError(t, err)

	assert.Equal(t, "relatorio-mensal-2024-05.pdf", doc.Filename)
	assert.True(t, bytes.HasPrefix(doc.Body, []byte("%PDF")))
}

func TestRenderMonthly_XLSX(t *testing.T) {
	doc, err := export.RenderMonthly(export.MonthlyView{Report: sampleReport(), Location: time.UTC}, export.FormatXLSX)
	require.NoError(t, err)
	assert.Equal(t, "relatorio-mensal-2024-05.xlsx", doc.Filename)

	f, err := excelize.OpenReader(bytes.NewReader(doc.Body))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Resumo", "Fechamentos"}, f.GetSheetList())

	company, err := f.GetCellValue("Resumo", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Padaria Central", company)

	rows, err := f.GetRows("Fechamentos")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"Data", "Vendas", "Retiradas", "Saldo"}, rows[0])
	assert.Equal(t, "10/05/2024", rows[1][0])
}
