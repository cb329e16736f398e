package model

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("currency", validCurrency)
	}
}

// validCurrency accepts the two currencies the clinic bills in.
func validCurrency(fl validator.FieldLevel) bool {
	switch Currency(fl.Field().String()) {
	case CurrencyUSD, CurrencyIQD:
		return true
	}
	return false
}
