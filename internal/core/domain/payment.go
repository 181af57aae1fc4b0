package domain

import "github.com/shopspring/decimal"

// PaymentMethod is how a sale was paid.
type PaymentMethod string

const (
	PaymentPix    PaymentMethod = "PIX"
	PaymentCash   PaymentMethod = "Dinheiro"
	PaymentDebit  PaymentMethod = "Débito"
	PaymentCredit PaymentMethod = "Crédito"
)

// PaymentMethods lists every accepted method in report order.
var PaymentMethods = []PaymentMethod{PaymentPix, PaymentCash, PaymentDebit, PaymentCredit}

// IsValid reports whether p is one of PaymentMethods.
func (p PaymentMethod) IsValid() bool {
	for _, m := range PaymentMethods {
		if m == p {
			return true
		}
	}
	return false
}

// PaymentTotal is the sum of sales for one payment method.
type PaymentTotal struct {
	Method PaymentMethod   `json:"method"`
	Total  decimal.Decimal `json:"total"`
}

// TotalsByPaymentMethod sums sale totals per method. All methods are present,
// in PaymentMethods order, even when zero. Unknown methods are ignored.
func TotalsByPaymentMethod(sales []Sale) []PaymentTotal {
	sums := make(map[PaymentMethod]decimal.Decimal, len(PaymentMethods))
	for _, s := range sales {
		if !s.PaymentMethod.IsValid() {
			continue
		}
		sums[s.PaymentMethod] = sums[s.PaymentMethod].Add(s.Total)
	}
	out := make([]PaymentTotal, 0, len(PaymentMethods))
	for _, m := range PaymentMethods {
		out = append(out, PaymentTotal{Method: m, Total: sums[m]})
	}
	return out
}
