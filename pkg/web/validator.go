package web

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/go-petr/pet-ledger/pkg/currencypkg"
)

// ErrValidatorEngine indicates that gin is not backed by go-playground/validator.
var ErrValidatorEngine = errors.New("unexpected validator engine")

var (
	registerOnce sync.Once
	registerErr  error
)

// decimalValue lets numeric tags such as gt and gte validate decimal fields.
// Amounts outside currencypkg bounds become NaN, which fails money and every comparison.
func decimalValue(field reflect.Value) interface{} {
	d, ok := field.Interface().(decimal.Decimal)
	if !ok {
		return nil
	}

	if !currencypkg.IsValidAmount(d) {
		return math.NaN()
	}

	return d.InexactFloat64()
}

// validMoney is the money tag. It must come first in the tag list so that
// out of range amounts are reported as such rather than as failed comparisons.
var validMoney validator.Func = func(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.Float64 {
		return false
	}

	return !math.IsNaN(field.Float())
}

// RegisterValidators teaches the gin binding validator about decimal amounts.
// It is safe to call more than once; the validator is changed only on the first call.
func RegisterValidators() error {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			registerErr = ErrValidatorEngine
			return
		}

		v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})
		registerErr = v.RegisterValidation("money", validMoney)
	})

	return registerErr
}

// GetErrorMsg returns human readable message for the failed validation tag.
func GetErrorMsg(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return " is required"
	case "money":
		return fmt.Sprintf(" must be a whole number of cents below %s", currencypkg.MaxAmount.String())
	case "gt":
		return fmt.Sprintf(" must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf(" must be greater than or equal to %s", fe.Param())
	case "min":
		return fmt.Sprintf(" must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf(" must be at most %s", fe.Param())
	case "nefield":
		return fmt.Sprintf(" must differ from %s", fe.Param())
	}

	return " is invalid"
}

// BindingErrorMsg converts an error returned by gin binding into a message for the client.
// Errors other than validation errors are returned as is.
func BindingErrorMsg(err error) string {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		field := ve[0]
		return field.Field() + GetErrorMsg(field)
	}

	return err.Error()
}
