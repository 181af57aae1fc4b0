package dto

import (
	"fmt"
	"reflect"

	"github.com/SscSPs/livro_caixa/internal/core/domain"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// RegisterValidators teaches v about the types used in request bodies:
// decimals compare as numbers for gt/gte, and "paymentmethod" accepts domain.PaymentMethods.
func RegisterValidators(v *validator.Validate) error {
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})

	if err := v.RegisterValidation("paymentmethod", func(fl validator.FieldLevel) bool {
		return domain.PaymentMethod(fl.Field().String()).IsValid()
	}); err != nil {
		return fmt.Errorf("failed to register paymentmethod validator: %w", err)
	}
	return nil
}
