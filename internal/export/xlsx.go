package export

import (
	"fmt"

	"github.com/SscSPs/livro_caixa/internal/utils/datetime"
	"github.com/xuri/excelize/v2"
)

const (
	sheetSummary = "Resumo"
	sheetDays    = "Fechamentos"
	brlNumFmt    = `"R$" #,##0.00;-"R$" #,##0.00`
)

type xlsxStyles struct {
	title  int
	header int
	money  int
}

func newXLSXStyles(f *excelize.File) (xlsxStyles, error) {
	var s xlsxStyles
	var err error
	if s.title, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}}); err != nil {
		return s, err
	}
	if s.header, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"3B82F6"}},
	}); err != nil {
		return s, err
	}
	numFmt := brlNumFmt
	if s.money, err = f.NewStyle(&excelize.Style{CustomNumFmt: &numFmt}); err != nil {
		return s, err
	}
	return s, nil
}

// setRow writes values starting at column A of row.
func setRow(f *excelize.File, sheet string, row int, values ...any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

func monthlyXLSX(view MonthlyView) ([]byte, error) {
	r := view.Report
	f := excelize.NewFile()
	defer f.Close()

	styles, err := newXLSXStyles(f)
	if err != nil {
		return nil, fmt.Errorf("failed to create xlsx styles: %w", err)
	}
	if err := f.SetSheetName("Sheet1", sheetSummary); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}

	summaryRows := [][]any{
		{r.CompanyName},
		{"Relatório Mensal", view.title()},
		{},
		{"Resumo do Mês"},
		{"Total de Vendas", r.TotalSales.InexactFloat64()},
		{"Total de Retiradas", r.TotalWithdrawals.InexactFloat64()},
		{"Saldo Mensal", r.Balance.InexactFloat64()},
		{"Dias Operados", r.DaysOperated},
		{},
		{"Forma de Pagamento", "Total"},
	}
	for _, p := range r.ByPaymentMethod {
		summaryRows = append(summaryRows, []any{string(p.Method), p.Total.InexactFloat64()})
	}
	summaryRows = append(summaryRows, []any{}, []any{"Gerado em " + datetime.FormatBRDateTime(r.GeneratedAt, view.Location)})

	for i, row := range summaryRows {
		if err := setRow(f, sheetSummary, i+1, row...); err != nil {
			return nil, fmt.Errorf("failed to write summary row: %w", err)
		}
	}
	paymentEnd := 10 + len(r.ByPaymentMethod)
	styleCalls := []struct {
		from, to string
		style    int
	}{
		{"A1", "A1", styles.title},
		{"A4", "A4", styles.title},
		{"B5", "B7", styles.money},
		{"A10", "B10", styles.header},
		{"B11", fmt.Sprintf("B%d", paymentEnd), styles.money},
	}
	for _, sc := range styleCalls {
		if err := f.SetCellStyle(sheetSummary, sc.from, sc.to, sc.style); err != nil {
			return nil, fmt.Errorf("failed to style summary: %w", err)
		}
	}
	if err := f.SetColWidth(sheetSummary, "A", "A", 28); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(sheetSummary, "B", "B", 18); err != nil {
		return nil, err
	}

	if _, err := f.NewSheet(sheetDays); err != nil {
		return nil, fmt.Errorf("failed to add sheet: %w", err)
	}
	if err := setRow(f, sheetDays, 1, "Data", "Vendas", "Retiradas", "Saldo"); err != nil {
		return nil, err
	}
	for i, d := range r.Days {
		if err := setRow(f, sheetDays, i+2,
			datetime.FormatBRDate(d.Date),
			d.TotalSales.InexactFloat64(),
			d.TotalWithdrawals.InexactFloat64(),
			d.Balance.InexactFloat64(),
		); err != nil {
			return nil, fmt.Errorf("failed to write day row: %w", err)
		}
	}
	if err := f.SetCellStyle(sheetDays, "A1", "D1", styles.header); err != nil {
		return nil, err
	}
	if len(r.Days) > 0 {
		if err := f.SetCellStyle(sheetDays, "B2", fmt.Sprintf("D%d", len(r.Days)+1), styles.money); err != nil {
			return nil, err
		}
	}
	if err := f.SetColWidth(sheetDays, "A", "D", 16); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write xlsx: %w", err)
	}
	return buf.Bytes(), nil
}
