package export

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/SscSPs/livro_caixa/internal/core/domain"
	"github.com/SscSPs/livro_caixa/internal/utils"
	"github.com/SscSPs/livro_caixa/internal/utils/datetime"
	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

const (
	pdfFont       = "Helvetica"
	pdfRowHeight  = 7.0
	pdfPageWidth  = 190.0 // A4 minus default margins
	pdfCardsInRow = 3
)

// pdfWriter wraps fpdf with the layout helpers shared by every report.
type pdfWriter struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

func newPDFWriter(title string) *pdfWriter {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(title, true)
	pdf.SetCreator("Livro Caixa", true)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()
	// Core fonts are cp1252, the translator keeps accents readable.
	return &pdfWriter{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
}

func (w *pdfWriter) header(company, title, subtitle string) {
	if company != "" {
		w.pdf.SetFont(pdfFont, "", 12)
		w.pdf.SetTextColor(107, 114, 128)
		w.pdf.CellFormat(0, 6, w.tr(company), "", 1, "C", false, 0, "")
	}
	w.pdf.SetFont(pdfFont, "B", 18)
	w.pdf.SetTextColor(29, 78, 216)
	w.pdf.CellFormat(0, 10, w.tr(title), "", 1, "C", false, 0, "")
	w.pdf.SetFont(pdfFont, "", 11)
	w.pdf.SetTextColor(31, 41, 55)
	w.pdf.CellFormat(0, 6, w.tr(subtitle), "", 1, "C", false, 0, "")
	w.pdf.Ln(4)
}

func (w *pdfWriter) section(title string) {
	w.pdf.Ln(3)
	w.pdf.SetFont(pdfFont, "B", 13)
	w.pdf.SetTextColor(31, 41, 55)
	w.pdf.CellFormat(0, 8, w.tr(title), "", 1, "L", false, 0, "")
}

type pdfCard struct {
	label string
	value decimal.Decimal
	// signed colours the value green or red.
	signed bool
}

func (w *pdfWriter) cards(cards []pdfCard) {
	width := pdfPageWidth / pdfCardsInRow
	for i, c := range cards {
		x := w.pdf.GetX()
		y := w.pdf.GetY()
		w.pdf.SetFillColor(249, 250, 251)
		w.pdf.SetFont(pdfFont, "", 8)
		w.pdf.SetTextColor(107, 114, 128)
		w.pdf.CellFormat(width-2, 6, w.tr(c.label), "", 2, "C", true, 0, "")
		w.pdf.SetFont(pdfFont, "B", 12)
		w.setAmountColor(c.value, c.signed)
		w.pdf.CellFormat(width-2, 8, w.tr(utils.FormatBRL(c.value)), "", 0, "C", true, 0, "")
		if (i+1)%pdfCardsInRow == 0 {
			left, _, _, _ := w.pdf.GetMargins()
			w.pdf.SetXY(left, y+16)
		} else {
			w.pdf.SetXY(x+width, y)
		}
	}
	w.pdf.SetTextColor(31, 41, 55)
	w.pdf.Ln(2)
}

func (w *pdfWriter) setAmountColor(v decimal.Decimal, signed bool) {
	switch {
	case !signed:
		w.pdf.SetTextColor(31, 41, 55)
	case v.IsNegative():
		w.pdf.SetTextColor(239, 68, 68)
	default:
		w.pdf.SetTextColor(16, 185, 129)
	}
}

type pdfColumn struct {
	title string
	width float64
	align string
}

func (w *pdfWriter) table(cols []pdfColumn, rows [][]string) {
	w.pdf.SetFont(pdfFont, "B", 9)
	w.pdf.SetFillColor(59, 130, 246)
	w.pdf.SetTextColor(255, 255, 255)
	for _, c := range cols {
		w.pdf.CellFormat(c.width, pdfRowHeight, w.tr(c.title), "", 0, c.align, true, 0, "")
	}
	w.pdf.Ln(-1)

	w.pdf.SetFont(pdfFont, "", 9)
	w.pdf.SetTextColor(31, 41, 55)
	for i, row := range rows {
		fill := i%2 == 1
		w.pdf.SetFillColor(243, 244, 246)
		for j, c := range cols {
			w.pdf.CellFormat(c.width, pdfRowHeight, w.tr(row[j]), "B", 0, c.align, fill, 0, "")
		}
		w.pdf.Ln(-1)
	}
}

func (w *pdfWriter) empty(message string) {
	w.pdf.SetFont(pdfFont, "I", 10)
	w.pdf.SetTextColor(156, 163, 175)
	w.pdf.CellFormat(0, 10, w.tr(message), "", 1, "C", false, 0, "")
	w.pdf.SetTextColor(31, 41, 55)
}

func (w *pdfWriter) footer(lines ...string) {
	w.pdf.Ln(6)
	w.pdf.SetFont(pdfFont, "", 8)
	w.pdf.SetTextColor(156, 163, 175)
	for _, l := range lines {
		w.pdf.CellFormat(0, 5, w.tr(l), "", 1, "C", false, 0, "")
	}
}

func (w *pdfWriter) bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := w.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func paymentTable(w *pdfWriter, totals []domain.PaymentTotal) {
	cols := []pdfColumn{{"Forma de Pagamento", 120, "L"}, {"Total", 70, "R"}}
	rows := make([][]string, 0, len(totals))
	for _, t := range totals {
		rows = append(rows, []string{string(t.Method), utils.FormatBRL(t.Total)})
	}
	w.table(cols, rows)
}

func closurePDF(view ClosureView) ([]byte, error) {
	c := view.Closure
	w := newPDFWriter("Fechamento de Caixa - " + datetime.FormatBRDate(c.Date))
	w.header(view.CompanyName, "Fechamento de Caixa", datetime.FormatBRDate(c.Date)+" às "+c.Time)

	w.cards([]pdfCard{
		{label: "Abertura", value: c.StartingAmount},
		{label: "Total de Vendas", value: c.TotalSales},
		{label: "Total de Retiradas", value: c.TotalWithdrawals},
		{label: "Valor Esperado", value: c.ExpectedBalance},
		{label: "Valor Contado", value: c.CountedAmount},
		{label: "Diferença", value: c.Difference, signed: true},
	})

	w.section("Totais por Tipo de Pagamento")
	paymentTable(w, view.paymentTotals())

	w.section(fmt.Sprintf("Vendas do Dia (%d)", len(c.Sales)))
	if len(c.Sales) == 0 {
		w.empty("Nenhuma venda registrada")
	} else {
		cols := []pdfColumn{
			{"Hora", 20, "L"}, {"Produto", 60, "L"}, {"Qtd", 15, "R"},
			{"Preço Unit.", 30, "R"}, {"Total", 30, "R"}, {"Pagamento", 35, "L"},
		}
		rows := make([][]string, 0, len(c.Sales))
		for _, s := range c.Sales {
			rows = append(rows, []string{
				s.Time, s.Product, strconv.Itoa(s.Quantity),
				utils.FormatBRL(s.UnitPrice), utils.FormatBRL(s.Total), string(s.PaymentMethod),
			})
		}
		w.table(cols, rows)
	}

	w.section(fmt.Sprintf("Retiradas do Dia (%d)", len(c.Withdrawals)))
	if len(c.Withdrawals) == 0 {
		w.empty("Nenhuma retirada registrada")
	} else {
		cols := []pdfColumn{{"Hora", 20, "L"}, {"Descrição", 120, "L"}, {"Valor", 50, "R"}}
		rows := make([][]string, 0, len(c.Withdrawals))
		for _, wd := range c.Withdrawals {
			rows = append(rows, []string{wd.Time, wd.Description, utils.FormatBRL(wd.Amount)})
		}
		w.table(cols, rows)
	}

	w.footer(footerText, "Gerado em "+datetime.FormatBRDateTime(view.GeneratedAt, view.Location))
	return w.bytes()
}

func monthlyPDF(view MonthlyView) ([]byte, error) {
	r := view.Report
	w := newPDFWriter("Relatório Mensal - " + view.title())
	w.header(r.CompanyName, "Relatório Mensal", view.title())

	w.section("Resumo do Mês")
	w.table(
		[]pdfColumn{{"Indicador", 120, "L"}, {"Valor", 70, "R"}},
		[][]string{
			{"Total de Vendas", utils.FormatBRL(r.TotalSales)},
			{"Total de Retiradas", utils.FormatBRL(r.TotalWithdrawals)},
			{"Saldo Mensal", utils.FormatBRL(r.Balance)},
			{"Dias Operados", strconv.Itoa(r.DaysOperated)},
		},
	)

	w.section("Formas de Pagamento")
	paymentTable(w, r.ByPaymentMethod)

	w.section("Fechamentos Diários")
	cols := []pdfColumn{{"Data", 40, "L"}, {"Vendas", 50, "R"}, {"Retiradas", 50, "R"}, {"Saldo", 50, "R"}}
	rows := make([][]string, 0, len(r.Days))
	for _, d := range r.Days {
		rows = append(rows, []string{
			datetime.FormatBRDate(d.Date), utils.FormatBRL(d.TotalSales),
			utils.FormatBRL(d.TotalWithdrawals), utils.FormatBRL(d.Balance),
		})
	}
	w.table(cols, rows)

	w.footer("Gerado em " + datetime.FormatBRDateTime(r.GeneratedAt, view.Location))
	return w.bytes()
}
