package export

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/SscSPs/livro_caixa/internal/utils"
	"github.com/SscSPs/livro_caixa/internal/utils/datetime"
	"github.com/shopspring/decimal"
)

var templateFuncs = template.FuncMap{
	"brl":    utils.FormatBRL,
	"brdate": datetime.FormatBRDate,
	"brdatetime": func(t time.Time, loc *time.Location) string {
		return datetime.FormatBRDateTime(t, loc)
	},
	"negative": func(d decimal.Decimal) bool { return d.IsNegative() },
}

const baseStyle = `
body { font-family: -apple-system, "Segoe UI", Roboto, Arial, sans-serif; background: #f3f4f6; color: #1f2937; margin: 0; padding: 24px; }
.container { max-width: 960px; margin: 0 auto; background: #fff; border-radius: 12px; overflow: hidden; box-shadow: 0 4px 12px rgba(0,0,0,.08); }
.header { background: linear-gradient(135deg, #3b82f6, #1d4ed8); color: #fff; padding: 32px; text-align: center; }
.header h1 { margin: 0 0 8px; font-size: 30px; }
.header h2 { margin: 0 0 4px; font-size: 22px; font-weight: 500; opacity: .9; }
.cards { display: grid; grid-template-columns: repeat(3, 1fr); gap: 16px; padding: 24px; }
.card { background: #f9fafb; border-radius: 8px; padding: 16px; text-align: center; }
.card h3 { margin: 0 0 8px; font-size: 13px; color: #6b7280; text-transform: uppercase; }
.card p { margin: 0; font-size: 22px; font-weight: 700; }
.section { padding: 0 24px 24px; }
table { width: 100%; border-collapse: collapse; }
th { background: #3b82f6; color: #fff; text-align: left; padding: 8px; }
td { padding: 8px; border-bottom: 1px solid #e5e7eb; }
td.num, th.num { text-align: right; }
.positive { color: #10b981; }
.negative { color: #ef4444; }
.empty-message { padding: 16px; text-align: center; color: #9ca3af; font-style: italic; }
.footer { padding: 16px; text-align: center; color: #9ca3af; font-size: 12px; border-top: 1px solid #e5e7eb; }
`

var closureTemplate = template.Must(template.New("closure").Funcs(templateFuncs).Parse(`<!DOCTYPE html>
<html lang="pt-BR">
<head>
<meta charset="UTF-8">
<title>Fechamento de Caixa - {{brdate .Closure.Date}}</title>
<style>{{.Style}}</style>
</head>
<body>
<div class="container">
  <div class="header">
    {{if .CompanyName}}<h2>{{.CompanyName}}</h2>{{end}}
    <h1>Fechamento de Caixa</h1>
    <p>{{brdate .Closure.Date}} às {{.Closure.Time}}</p>
  </div>
  <div class="cards">
    <div class="card"><h3>Abertura</h3><p>{{brl .Closure.StartingAmount}}</p></div>
    <div class="card"><h3>Total de Vendas</h3><p>{{brl .Closure.TotalSales}}</p></div>
    <div class="card"><h3>Total de Retiradas</h3><p>{{brl .Closure.TotalWithdrawals}}</p></div>
    <div class="card"><h3>Valor Esperado</h3><p>{{brl .Closure.ExpectedBalance}}</p></div>
    <div class="card"><h3>Valor Contado</h3><p>{{brl .Closure.CountedAmount}}</p></div>
    <div class="card"><h3>Diferença</h3><p class="{{if negative .Closure.Difference}}negative{{else}}positive{{end}}">{{brl .Closure.Difference}}</p></div>
  </div>
  <div class="section">
    <h2>Totais por Tipo de Pagamento</h2>
    <table>
      <tr><th>Forma de Pagamento</th><th class="num">Total</th></tr>
      {{range .PaymentTotals}}<tr><td>{{.Method}}</td><td class="num">{{brl .Total}}</td></tr>
      {{end}}
    </table>
  </div>
  <div class="section">
    <h2>Vendas do Dia ({{len .Closure.Sales}})</h2>
    {{if .Closure.Sales}}
    <table>
      <tr><th>Hora</th><th>Produto</th><th class="num">Qtd</th><th class="num">Preço Unit.</th><th class="num">Total</th><th>Pagamento</th></tr>
      {{range .Closure.Sales}}<tr><td>{{.Time}}</td><td>{{.Product}}</td><td class="num">{{.Quantity}}</td><td class="num">{{brl .UnitPrice}}</td><td class="num">{{brl .Total}}</td><td>{{.PaymentMethod}}</td></tr>
      {{end}}
    </table>
    {{else}}<div class="empty-message">Nenhuma venda registrada</div>{{end}}
  </div>
  <div class="section">
    <h2>Retiradas do Dia ({{len .Closure.Withdrawals}})</h2>
    {{if .Closure.Withdrawals}}
    <table>
      <tr><th>Hora</th><th>Descrição</th><th class="num">Valor</th></tr>
      {{range .Closure.Withdrawals}}<tr><td>{{.Time}}</td><td>{{.Description}}</td><td class="num">{{brl .Amount}}</td></tr>
      {{end}}
    </table>
    {{else}}<div class="empty-message">Nenhuma retirada registrada</div>{{end}}
  </div>
  <div class="footer">
    <p>{{.Footer}}</p>
    <p>Gerado em {{brdatetime .GeneratedAt .Location}}</p>
  </div>
</div>
</body>
</html>
`))

var monthlyTemplate = template.Must(template.New("monthly").Funcs(templateFuncs).Parse(`<!DOCTYPE html>
<html lang="pt-BR">
<head>
<meta charset="UTF-8">
<title>Relatório Mensal - {{.Title}}</title>
<style>{{.Style}}</style>
</head>
<body>
<div class="container">
  <div class="header">
    <h2>{{.Report.CompanyName}}</h2>
    <h1>Relatório Mensal</h1>
    <p>{{.Title}}</p>
  </div>
  <div class="section">
    <h2>Resumo do Mês</h2>
    <table>
      <tr><td>Total de Vendas</td><td class="num">{{brl .Report.TotalSales}}</td></tr>
      <tr><td>Total de Retiradas</td><td class="num">{{brl .Report.TotalWithdrawals}}</td></tr>
      <tr><td>Saldo Mensal</td><td class="num">{{brl .Report.Balance}}</td></tr>
      <tr><td>Dias Operados</td><td class="num">{{.Report.DaysOperated}}</td></tr>
    </table>
  </div>
  <div class="section">
    <h2>Formas de Pagamento</h2>
    <table>
      <tr><th>Forma de Pagamento</th><th class="num">Total</th></tr>
      {{range .Report.ByPaymentMethod}}<tr><td>{{.Method}}</td><td class="num">{{brl .Total}}</td></tr>
      {{end}}
    </table>
  </div>
  <div class="section">
    <h2>Fechamentos Diários</h2>
    <table>
      <tr><th>Data</th><th class="num">Vendas</th><th class="num">Retiradas</th><th class="num">Saldo</th></tr>
      {{range .Report.Days}}<tr><td>{{brdate .Date}}</td><td class="num">{{brl .TotalSales}}</td><td class="num">{{brl .TotalWithdrawals}}</td><td class="num">{{brl .Balance}}</td></tr>
      {{end}}
    </table>
  </div>
  <div class="footer"><p>Gerado em {{brdatetime .Report.GeneratedAt .Location}}</p></div>
</div>
</body>
</html>
`))

func closureHTML(view ClosureView) ([]byte, error) {
	data := struct {
		ClosureView
		PaymentTotals any
		Footer        string
		Style         template.CSS
	}{
		ClosureView:   view,
		PaymentTotals: view.paymentTotals(),
		Footer:        footerText,
		Style:         template.CSS(baseStyle),
	}

	var buf bytes.Buffer
	if err := closureTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render closure html: %w", err)
	}
	return buf.Bytes(), nil
}

func monthlyHTML(view MonthlyView) ([]byte, error) {
	data := struct {
		MonthlyView
		Title string
		Style template.CSS
	}{
		MonthlyView: view,
		Title:       view.title(),
		Style:       template.CSS(baseStyle),
	}

	var buf bytes.Buffer
	if err := monthlyTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render monthly html: %w", err)
	}
	return buf.Bytes(), nil
}
