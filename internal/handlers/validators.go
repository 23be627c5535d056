package handlers

import (
	"sync"

	"github.com/SscSPs/dkk_exchange_service/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerValidatorsOnce sync.Once

// registerValidators adds the custom binding tags used by request DTOs.
func registerValidators() {
	registerValidatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("currencycode", validateCurrencyCode)
	})
}

// validateCurrencyCode accepts exactly three letters of either case.
func validateCurrencyCode(fl validator.FieldLevel) bool {
	return domain.IsValidCurrencyCode(fl.Field().String())
}
