package handlers

import (
	"fmt"
	"reflect"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// RegisterValidators installs the decimal binding rules on gin's validator:
//
//	dgt0  - the decimal is strictly positive
//	dgte0 - the decimal is zero or positive
//
// decimal.Decimal is exposed to the validator as its string form so both rules
// also apply to map values through dive.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}

	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.String()
		}
		return nil
	}, decimal.Decimal{})

	if err := v.RegisterValidation("dgt0", decimalRule(func(d decimal.Decimal) bool { return d.IsPositive() })); err != nil {
		return fmt.Errorf("failed to register dgt0: %w", err)
	}
	if err := v.RegisterValidation("dgte0", decimalRule(func(d decimal.Decimal) bool { return !d.IsNegative() })); err != nil {
		return fmt.Errorf("failed to register dgte0: %w", err)
	}
	return nil
}

func decimalRule(ok func(decimal.Decimal) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		s, isString := fl.Field().Interface().(string)
		if !isString {
			return false
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return false
		}
		return ok(d)
	}
}
