package validation

import (
	"fmt"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// RegisterCustomValidations wires decimal-aware rules into gin's binding
// validator. Must run once before the engine starts serving.
func RegisterCustomValidations() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected gin validator engine type")
	}

	if err := v.RegisterValidation("decimalgtzero", decimalGreaterThanZero); err != nil {
		return fmt.Errorf("failed to register decimalgtzero validation: %w", err)
	}
	return nil
}

// decimalGreaterThanZero enforces amount > 0 on decimal fields. Binding fails
// closed: a non-decimal field never passes.
func decimalGreaterThanZero(fl validator.FieldLevel) bool {
	value, ok := fl.Field().Interface().(decimal.Decimal)
	if !ok {
		return false
	}
	return value.IsPositive()
}
