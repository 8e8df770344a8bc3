package validator

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

func validateStruct(payload interface{}) *[]error {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		errs := []error{err}
		return &errs
	}
	errs := []error{}
	for _, fieldErr := range validationErrors {
		errs = append(errs, fmt.Errorf("%s failed validation for rule %s", strings.ToLower(fieldErr.Field()), fieldErr.Tag()))
	}
	if len(errs) == 0 {
		return nil
	}
	return &errs
}

func validateField(value any, rules string) error {
	return validate.Var(value, rules)
}

// movement labels accepted in a challenge sequence
func validateMovementDirection(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "LEFT", "RIGHT":
		return true
	}
	return false
}
