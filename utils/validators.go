package utils

import (
	"log"
	"regexp"

	"eightify/model"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var clientIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,128}$`)

// RegisterCustomValidators adds the tracker's tags to a validator instance.
func RegisterCustomValidators(v *validator.Validate) error {
	if err := v.RegisterValidation("category", ValidateCategoryRule); err != nil {
		return err
	}
	return v.RegisterValidation("clientid", ValidateClientIDRule)
}

// InitValidator wires the custom tags into gin's binding engine.
func InitValidator() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := RegisterCustomValidators(v); err != nil {
			log.Printf("Failed to register validators: %v", err)
		}
	}
}

func ValidateCategoryRule(fl validator.FieldLevel) bool {
	_, err := model.ParseCategory(fl.Field().String())
	return err == nil
}

// ValidateClientIDRule accepts the ids this service mints (uuids) and other
// short url-safe tokens.
func ValidateClientIDRule(fl validator.FieldLevel) bool {
	return clientIDPattern.MatchString(fl.Field().String())
}
