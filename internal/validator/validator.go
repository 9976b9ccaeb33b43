package validator

import (
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
)

// pinCodePattern is a six-digit Indian postal code. A leading zero is never valid.
var pinCodePattern = regexp.MustCompile(`^[1-9]\d{5}$`)

// Validator wraps go-playground/validator with the domain tags registered:
//
//	pincode  six-digit postal code without a leading zero
type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	v := validator.New()
	// Registration only fails for an empty tag or nil func.
	_ = v.RegisterValidation("pincode", func(fl validator.FieldLevel) bool {
		return pinCodePattern.MatchString(fl.Field().String())
	})
	return &Validator{validate: v}
}

// ValidateStruct validates a struct based on its tags.
func (v *Validator) ValidateStruct(s interface{}) error {
	if err := v.validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}
