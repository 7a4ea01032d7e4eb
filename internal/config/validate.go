package config

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Package-level validator instance; decimals are compared as float64 so the
// numeric tags (gt, gte, ...) work on money and rate fields.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})

	// halfyear accepts whole ages and ages ending in .5
	if err := v.RegisterValidation("halfyear", func(fl validator.FieldLevel) bool {
		f := fl.Field().Float()
		_, frac := math.Modf(f * 2)
		return frac == 0
	}); err != nil {
		panic(fmt.Sprintf("register halfyear validation: %v", err))
	}
	return v
}

// describeValidation turns validator errors into a single readable message
func describeValidation(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			parts = append(parts, fmt.Sprintf("%s fails %s=%s (got %v)", fe.Field(), fe.Tag(), fe.Param(), fe.Value()))
		} else {
			parts = append(parts, fmt.Sprintf("%s fails %s (got %v)", fe.Field(), fe.Tag(), fe.Value()))
		}
	}
	return strings.Join(parts, "; ")
}
